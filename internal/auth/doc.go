// Package auth provides session-based authentication for the application.
//
// Members sign up with a username, email and membership type; the service
// creates the user identity and the member profile together. Login accepts
// either the username or the email address and issues a server-side
// session backed by the application database.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//	AUTH_MAX_LOGIN_ATTEMPTS=5           # Failed attempts before lockout
//	AUTH_LOCKOUT_DURATION=30m           # Lockout duration
//
// # Usage
//
// Initialize in the entrypoint:
//
//	authService := auth.NewService(db.DB, cfg.Auth)
//	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(sessionManager)
//	router.Use(sessionManager.SessionLoadSave(), authMiddleware.Handler())
//
// Extract the current user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
