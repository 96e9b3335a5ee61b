package http

import (
	"librarium/internal/auth"
	"librarium/internal/circulation"
	"librarium/internal/config"
	"librarium/internal/database"
	"librarium/internal/database/catalog"
	"librarium/internal/database/issues"
	"librarium/internal/database/members"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router. This replaces a long parameter list in
// NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database    *database.Database
	Catalog     *catalog.Repository
	Members     *members.Repository
	Issues      *issues.Repository
	Circulation *circulation.Service

	// Authentication
	AuthService    *auth.Service
	AuthConfig     config.Auth
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	CSRFSecret     []byte
	SecureCookies  bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
