// Command login is the interactive multi-tenant sign-in front-end. It
// prompts for a composite "user@tenant_id" name, runs the configured
// authentication strategy, persists the session record, and prints the
// tenant dashboard location on success.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vbsbroadcast/go-tenant-login/auth"
	"github.com/vbsbroadcast/go-tenant-login/internal/config"
	"github.com/vbsbroadcast/go-tenant-login/lockout"
	"github.com/vbsbroadcast/go-tenant-login/sessions"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
	"github.com/vbsbroadcast/go-tenant-login/users"
)

func main() {
	logoutFlag := flag.Bool("logout", false, "delete the stored session and exit")
	rememberFlag := flag.Bool("remember", false, "keep the session for 30 days instead of 24 hours")
	flag.Parse()

	if err := run(*logoutFlag, *rememberFlag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logout, remember bool) error {
	_ = godotenv.Load()
	c := config.New()
	configureLogging(c)

	service, err := buildLoginService(c)
	if err != nil {
		return err
	}

	if logout {
		if err := service.Logout(); err != nil {
			return errors.Wrap(err, "logout")
		}
		fmt.Println("Session cleared.")
		return nil
	}

	displayAppname(c.GetAppName())

	existing, err := service.Init()
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Printf("Session active for %s in tenant %s.\n", existing.Username, existing.TenantID)
		fmt.Printf("Dashboard: %s\n", auth.DashboardPath(existing.TenantID))
		fmt.Println("Use -logout to sign out first.")
		return nil
	}

	return loginLoop(service, remember)
}

func loginLoop(service *auth.LoginService, remember bool) error {
	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	for {
		guard := service.Guard()
		if guard.Locked() {
			fmt.Println(lockoutMessage(guard.Until()))
			return errors.New("account locked")
		}

		username, err := prompt(reader, "Username (user@tenant_id): ")
		if err != nil {
			return err
		}
		password, err := prompt(reader, "Password: ")
		if err != nil {
			return err
		}

		result, err := service.Login(ctx, auth.LoginRequest{
			Username:   username,
			Password:   password,
			RememberMe: remember,
		})
		if err == nil {
			fmt.Println("Login successful!")
			fmt.Printf("Dashboard: %s\n", result.DashboardURL)
			return nil
		}

		switch {
		case errors.Is(err, lockout.ErrLockedOut):
			fmt.Println(lockoutMessage(guard.Until()))
			return errors.New("account locked")
		case errors.Is(err, auth.InvalidUsernameFormatErr):
			fmt.Println("Invalid username format. Use: username@tenant_id")
		case errors.Is(err, auth.MissingCredentialsErr):
			fmt.Println("Please enter username and password.")
		default:
			remaining := guard.Remaining()
			plural := "s"
			if remaining == 1 {
				plural = ""
			}
			fmt.Printf("Invalid credentials. %d attempt%s remaining.\n", remaining, plural)
		}
	}
}

func buildLoginService(c config.Config) (*auth.LoginService, error) {
	sessionStore, err := sessions.NewFileStore(filepath.Join(c.GetStateFolder(), "session.json"))
	if err != nil {
		return nil, err
	}
	deadlineStore, err := lockout.NewFileStore(filepath.Join(c.GetStateFolder(), "lockout_until"))
	if err != nil {
		return nil, err
	}
	guard, err := lockout.New(deadlineStore,
		lockout.WithThreshold(c.GetMaxLoginAttempts()),
		lockout.WithDuration(c.GetLockoutDuration()),
		lockout.WithLogger(log.Logger),
	)
	if err != nil {
		return nil, err
	}

	authenticator, err := buildAuthenticator(c)
	if err != nil {
		return nil, err
	}

	return auth.NewLoginService(authenticator, sessionStore, guard,
		auth.WithSessionTTL(c.GetSessionTTL()),
		auth.WithRememberMeTTL(c.GetRememberMeTTL()),
		auth.WithLoginLogger(log.Logger),
	)
}

// buildAuthenticator selects the strategy once, from static configuration.
func buildAuthenticator(c config.Config) (auth.Authenticator, error) {
	if c.GetUseAPI() {
		return auth.NewRemoteAuthenticator(c.GetAPIBaseURL(), auth.WithRemoteLogger(log.Logger)), nil
	}

	var tenantRepo tenants.Repo
	var userRepo users.Repo
	if base := c.GetFixtureBaseURL(); base != "" {
		tenantRepo = tenants.NewHTTPRepo(base)
		userRepo = users.NewHTTPRepo(base)
	} else {
		tenantRepo = tenants.NewFileRepo(c.GetDataFolder())
		userRepo = users.NewFileRepo(c.GetDataFolder())
	}

	options := []auth.LegacyOption{auth.WithLegacyLogger(log.Logger)}
	if c.GetInsecureDemoMode() {
		log.Warn().Msg("insecure demo mode enabled: seeded accounts without passwords accept any password")
		options = append(options, auth.WithInsecureDemoMode())
	}
	return auth.NewLegacyJSONAuthenticator(tenantRepo, userRepo, options...)
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "read input")
	}
	return strings.TrimSpace(line), nil
}

func lockoutMessage(until time.Time) string {
	minutes := int(math.Ceil(time.Until(until).Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	plural := "s"
	if minutes == 1 {
		plural = ""
	}
	return fmt.Sprintf("Too many failed login attempts. Please try again in %d minute%s.", minutes, plural)
}

func configureLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
