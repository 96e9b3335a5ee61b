package http

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"librarium/internal/auth"
	"librarium/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	funcMap := template.FuncMap{
		"formatDate":  formatDate,
		"statusBadge": statusBadgeClass,
	}

	if cfg.TemplatesPath != "" {
		tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
		router.SetHTMLTemplate(tmpl)
	}

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	// Auth routes (login, signup, logout)
	if cfg.AuthService != nil {
		authController, err := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.TemplatesPath, cfg.AuthConfig)
		if err == nil {
			authController.RegisterRoutes(router)
		}
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Member-facing catalog and circulation pages
	catalogController := NewCatalogController(cfg.Catalog, cfg.Members, cfg.Issues, cfg.Circulation, cfg.SessionManager)
	router.GET("/", catalogController.HomePage)
	router.GET("/categories/:id", catalogController.CategoryPage)
	router.GET("/books/:id", catalogController.BookPage)
	router.POST("/books/:id/request", catalogController.RequestBook)
	router.GET("/requests", catalogController.RequestStatusPage)

	// Staff back-office
	adminController := NewAdminController(cfg.Catalog, cfg.Members, cfg.Issues, cfg.SessionManager)
	admin := router.Group("/admin")
	if cfg.AuthMiddleware != nil {
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
	}
	admin.GET("", adminController.Dashboard)
	admin.GET("/categories", adminController.CategoriesPage)
	admin.GET("/authors", adminController.AuthorsPage)
	admin.GET("/publishers", adminController.PublishersPage)
	admin.GET("/books", adminController.BooksPage)
	admin.GET("/books/:id", adminController.BookDetailPage)
	admin.GET("/editions", adminController.EditionsPage)
	admin.GET("/members", adminController.MembersPage)
	admin.GET("/members/:id", adminController.MemberDetailPage)
	admin.GET("/issued-books", adminController.IssuedBooksPage)
	admin.POST("/issued-books/action", adminController.IssuedBookAction(cfg.Circulation))

	return router
}

// formatDate renders a date for templates. Accepts both time.Time and
// *time.Time because some record dates are nullable.
func formatDate(v any) string {
	var t time.Time
	switch d := v.(type) {
	case time.Time:
		t = d
	case *time.Time:
		if d == nil {
			return ""
		}
		t = *d
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// statusBadgeClass maps a circulation status to its CSS badge class.
func statusBadgeClass(status entities.IssueStatus) string {
	switch status {
	case entities.StatusRequested:
		return "badge-requested"
	case entities.StatusIssued:
		return "badge-issued"
	case entities.StatusReturned:
		return "badge-returned"
	case entities.StatusOverdue:
		return "badge-overdue"
	case entities.StatusRejected:
		return "badge-rejected"
	default:
		return "badge-default"
	}
}
