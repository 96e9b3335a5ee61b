package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"

	"librarium/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newSessionRouter wires the session and auth middleware the way the
// entrypoint does, with an in-memory session store.
func newSessionRouter() (*gin.Engine, *Middleware, *SessionManager) {
	sm := &SessionManager{SessionManager: scs.New()}
	middleware := NewMiddleware(sm)

	router := gin.New()
	router.Use(sm.SessionLoadSave())
	router.Use(middleware.Handler())
	return router, middleware, sm
}

func TestMiddleware_PublicPaths(t *testing.T) {
	publicPaths := []string{
		"/",
		"/health",
		"/ping",
		"/login",
		"/signup",
		"/static/style.css",
		"/favicon.ico",
	}

	for _, path := range publicPaths {
		t.Run(path, func(t *testing.T) {
			router, _, _ := newSessionRouter()
			router.GET(path, func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("Expected status 200 for public path %s, got %d", path, rr.Code)
			}
		})
	}
}

func TestMiddleware_ProtectedPath_RedirectsToLogin(t *testing.T) {
	router, _, _ := newSessionRouter()
	router.GET("/requests", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Errorf("Expected redirect (302), got %d", rr.Code)
	}

	location := rr.Header().Get("Location")
	if location != "/login?next=/requests" {
		t.Errorf("Expected redirect to /login?next=/requests, got %s", location)
	}
}

func TestMiddleware_SessionGrantsAccess(t *testing.T) {
	router, _, sm := newSessionRouter()

	// Stand-in for the login handler: establishes a session on a public path
	router.POST("/login", func(c *gin.Context) {
		user := &entities.User{ID: 7, Username: "alice"}
		if err := sm.CreateSession(c.Request, user); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	router.GET("/requests", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
		})
	})

	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	loginRR := httptest.NewRecorder()
	router.ServeHTTP(loginRR, loginReq)

	if loginRR.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 from login, got %d", loginRR.Code)
	}

	cookies := loginRR.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie after login")
	}

	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200 with session cookie, got %d", rr.Code)
	}
	if body := rr.Body.String(); !strings.Contains(body, `"user_id":7`) || !strings.Contains(body, `"username":"alice"`) {
		t.Errorf("Expected session identity in response, got %s", body)
	}
}

func TestMiddleware_RequireAdmin(t *testing.T) {
	setUser := func(isAdmin bool) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(ContextKeyUserID, uint(7))
			c.Set(ContextKeyUsername, "alice")
			c.Set(ContextKeyIsAdmin, isAdmin)
			c.Next()
		}
	}

	t.Run("non-admin user gets 403", func(t *testing.T) {
		_, middleware, _ := newSessionRouter()

		router := gin.New()
		router.Use(setUser(false))
		router.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected 403 for non-admin user, got %d", rr.Code)
		}
	})

	t.Run("anonymous request gets 403", func(t *testing.T) {
		_, middleware, _ := newSessionRouter()

		router := gin.New()
		router.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected 403 for anonymous request, got %d", rr.Code)
		}
	})

	t.Run("admin user passes through", func(t *testing.T) {
		_, middleware, _ := newSessionRouter()

		router := gin.New()
		router.Use(setUser(true))
		router.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("Expected 200 for admin user, got %d", rr.Code)
		}
	})
}
