package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vbsbroadcast/go-tenant-login/lockout"
	"github.com/vbsbroadcast/go-tenant-login/sessions"
)

// LoginRequest carries one submission of the login form.
type LoginRequest struct {
	Username   string
	Password   string
	RememberMe bool
}

// LoginResult is returned on successful authentication. DashboardURL is
// constructed client-side from the session's tenant ID; there is no
// server-side redirect negotiation.
type LoginResult struct {
	Session      *sessions.Session
	DashboardURL string
}

// DashboardPath builds the tenant-scoped dashboard location.
func DashboardPath(tenantID string) string {
	return fmt.Sprintf("/dashboards/%s/pages/index.html", tenantID)
}

// LoginService owns the login lifecycle for one page context: input
// validation, the lockout gate, the configured authentication strategy, and
// the persisted session record.
type LoginService struct {
	authenticator Authenticator
	store         sessions.Store
	guard         *lockout.Guard
	dashboardURL  func(tenantID string) string
	sessionTTL    time.Duration
	rememberTTL   time.Duration
	nowTime       func() time.Time
	logger        zerolog.Logger
}

type LoginServiceOption func(*LoginService)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) LoginServiceOption {
	return func(s *LoginService) {
		s.nowTime = nowFunc
	}
}

// WithSessionTTL overrides the default 24h session lifetime.
func WithSessionTTL(ttl time.Duration) LoginServiceOption {
	return func(s *LoginService) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithRememberMeTTL overrides the extended remember-me lifetime.
func WithRememberMeTTL(ttl time.Duration) LoginServiceOption {
	return func(s *LoginService) {
		if ttl > 0 {
			s.rememberTTL = ttl
		}
	}
}

// WithDashboardURL overrides the dashboard location pattern.
func WithDashboardURL(fn func(tenantID string) string) LoginServiceOption {
	return func(s *LoginService) {
		s.dashboardURL = fn
	}
}

// WithLoginLogger sets the service logger.
func WithLoginLogger(logger zerolog.Logger) LoginServiceOption {
	return func(s *LoginService) {
		s.logger = logger
	}
}

func NewLoginService(authenticator Authenticator, store sessions.Store, guard *lockout.Guard, options ...LoginServiceOption) (*LoginService, error) {
	if authenticator == nil {
		return nil, errors.New("[NewLoginService] authenticator is required")
	}
	if store == nil {
		return nil, errors.New("[NewLoginService] session store is required")
	}
	if guard == nil {
		return nil, errors.New("[NewLoginService] lockout guard is required")
	}

	s := &LoginService{
		authenticator: authenticator,
		store:         store,
		guard:         guard,
		dashboardURL:  DashboardPath,
		sessionTTL:    sessions.DefaultTTL,
		rememberTTL:   sessions.RememberMeTTL,
		nowTime:       time.Now,
		logger:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Init runs the page-load lifecycle: recover persisted lockout state, then
// re-check any persisted session. An expired or partial record is dropped;
// a still-valid one is returned so callers can report the active session.
func (s *LoginService) Init() (*sessions.Session, error) {
	if err := s.guard.Init(); err != nil {
		return nil, errors.Wrap(err, "[LoginService.Init]")
	}

	session, err := s.store.Load()
	if err != nil {
		return nil, nil
	}
	if err := session.ValidFor("", s.nowTime()); err != nil {
		s.logger.Info().Err(err).Msg("dropping stale session")
		if err := s.store.Clear(); err != nil {
			return nil, errors.Wrap(err, "[LoginService.Init] clear stale session")
		}
		return nil, nil
	}
	s.logger.Info().Str("user", session.Username).Str("tenant", session.TenantID).Msg("session active")
	return session, nil
}

// Login runs one submission through the full lifecycle. While locked out it
// rejects immediately, without contacting the backend or counting the
// attempt. Format errors are also rejected pre-network and uncounted. Every
// authenticator failure counts exactly one attempt.
func (s *LoginService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := s.guard.Check(); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, MissingCredentialsErr
	}
	creds, err := ParseUsername(username)
	if err != nil {
		return nil, err
	}

	result, err := s.authenticator.Authenticate(ctx, creds, req.Password)
	if err != nil {
		remaining, nowLocked := s.guard.RecordFailure()
		s.logger.Info().Err(err).Int("remaining", remaining).Bool("locked", nowLocked).Msg("login failed")
		if nowLocked {
			return nil, errors.Wrap(lockout.ErrLockedOut, err.Error())
		}
		return nil, err
	}

	if err := s.guard.Reset(); err != nil {
		s.logger.Error().Err(err).Msg("reset lockout state after login")
	}

	ttl := s.sessionTTL
	if req.RememberMe {
		ttl = s.rememberTTL
	}
	now := s.nowTime()
	session := &sessions.Session{
		Token:       result.Token,
		UserID:      result.UserID,
		Username:    result.Username,
		TenantID:    result.TenantID,
		TenantName:  result.TenantName,
		UserType:    result.UserType,
		Role:        result.Role,
		Permissions: result.Permissions,
		FirstName:   result.FirstName,
		LastName:    result.LastName,
		LoginTime:   now,
		ExpiresAt:   now.Add(ttl).UnixMilli(),
		RememberMe:  req.RememberMe,
	}
	if err := s.store.Save(session); err != nil {
		return nil, errors.Wrap(err, "[LoginService.Login] save session")
	}

	s.logger.Info().Str("user", session.Username).Str("tenant", session.TenantID).Msg("login successful")
	return &LoginResult{
		Session:      session,
		DashboardURL: s.dashboardURL(session.TenantID),
	}, nil
}

// Logout deletes the persisted session regardless of its expiry state.
func (s *LoginService) Logout() error {
	return s.store.Clear()
}

// Guard exposes the lockout state for attempt/lockout messaging.
func (s *LoginService) Guard() *lockout.Guard {
	return s.guard
}
