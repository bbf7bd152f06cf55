package auth

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
	"github.com/vbsbroadcast/go-tenant-login/users"
)

var _ Authenticator = (*LegacyJSONAuthenticator)(nil)

// LegacyJSONAuthenticator checks credentials against locally hosted fixture
// documents: first the tenant registry, then, strictly after the registry
// resolves the tenant's data path, that tenant's users document. Passwords
// are compared by direct equality with no hashing. This is an intentionally
// insecure demo/seed path and must never front real accounts.
type LegacyJSONAuthenticator struct {
	tenants          tenants.Repo
	users            users.Repo
	insecureDemoMode bool
	logger           zerolog.Logger
}

type LegacyOption func(*LegacyJSONAuthenticator)

// WithInsecureDemoMode opts in to accepting ANY non-empty password for user
// records that have no stored password. This exists for seeded demo accounts
// only; with the flag off such records can never authenticate.
func WithInsecureDemoMode() LegacyOption {
	return func(a *LegacyJSONAuthenticator) {
		a.insecureDemoMode = true
	}
}

func WithLegacyLogger(logger zerolog.Logger) LegacyOption {
	return func(a *LegacyJSONAuthenticator) {
		a.logger = logger
	}
}

func NewLegacyJSONAuthenticator(tenantRepo tenants.Repo, userRepo users.Repo, options ...LegacyOption) (*LegacyJSONAuthenticator, error) {
	if tenantRepo == nil {
		return nil, errors.New("[NewLegacyJSONAuthenticator] tenant repo is required")
	}
	if userRepo == nil {
		return nil, errors.New("[NewLegacyJSONAuthenticator] user repo is required")
	}
	a := &LegacyJSONAuthenticator{
		tenants: tenantRepo,
		users:   userRepo,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a, nil
}

func (a *LegacyJSONAuthenticator) Authenticate(ctx context.Context, creds Credentials, password string) (*Result, error) {
	registry, err := a.tenants.Registry(ctx)
	if err != nil {
		return nil, errors.Wrapf(AuthenticationFailedErr, "[LegacyJSONAuthenticator.Authenticate] %v", err)
	}

	tenant := registry.Find(creds.TenantID)
	if tenant == nil {
		return nil, errors.Wrap(AuthenticationFailedErr, "tenant not found")
	}
	if !tenant.IsActive {
		return nil, errors.Wrap(AuthenticationFailedErr, "tenant account is inactive")
	}

	directory, err := a.users.Directory(ctx, tenant)
	if err != nil {
		return nil, errors.Wrapf(AuthenticationFailedErr, "[LegacyJSONAuthenticator.Authenticate] %v", err)
	}

	user := directory.FindActive(creds.Composite())
	if user == nil {
		return nil, errors.Wrap(AuthenticationFailedErr, "invalid credentials")
	}

	if err := a.checkPassword(user, password); err != nil {
		return nil, err
	}

	return &Result{
		UserID:      user.UserID,
		Username:    user.Credentials.Username,
		TenantID:    tenant.TenantID,
		TenantName:  tenant.TenantName,
		UserType:    user.UserType,
		Role:        user.Credentials.Role,
		Permissions: user.Credentials.Permissions,
		FirstName:   user.PersonalInfo.FirstName,
		LastName:    user.PersonalInfo.LastName,
	}, nil
}

func (a *LegacyJSONAuthenticator) checkPassword(user *users.User, password string) error {
	stored := user.Credentials.Password
	if stored != "" {
		// Direct equality on the stored value; the fixture documents are
		// unhashed.
		if stored != password {
			return errors.Wrap(AuthenticationFailedErr, "invalid credentials")
		}
		return nil
	}
	if !a.insecureDemoMode || password == "" {
		return errors.Wrap(AuthenticationFailedErr, "invalid credentials")
	}
	a.logger.Warn().Str("user", user.Credentials.Username).Msg("no stored password, accepting any password (insecure demo mode)")
	return nil
}
