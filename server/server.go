// Package server implements the backend API the remote login strategy and
// the dashboard clients talk to. Data lives in the same JSON fixture folder
// the legacy strategy reads; authentication issues HS256 bearer tokens.
package server

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/vbsbroadcast/go-tenant-login/internal/config"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
	"github.com/vbsbroadcast/go-tenant-login/token"
	"github.com/vbsbroadcast/go-tenant-login/users"
)

type Server struct {
	env     string
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	tenants tenants.Repo
	users   users.Repo
	tokens  *token.Manager
	dataDir string
}

func New(cfg config.Config, tenantRepo tenants.Repo, userRepo users.Repo, tokens *token.Manager) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[server.New] config is required")
	}
	if tenantRepo == nil {
		return nil, errors.New("[server.New] tenant repo is required")
	}
	if userRepo == nil {
		return nil, errors.New("[server.New] user repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[server.New] token manager is required")
	}

	s := &Server{
		env:     cfg.GetEnv(),
		mux:     http.NewServeMux(),
		config:  cfg,
		tenants: tenantRepo,
		users:   userRepo,
		tokens:  tokens,
		dataDir: cfg.GetDataFolder(),
	}
	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) == 2 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			log.Debug().Str("path", route).Msg("route registered")
		}
	}
}
