package auth

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"librarium/internal/config"
	"librarium/internal/entities"
)

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	// Reject protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to "/" if
// invalid.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// AuthController handles the login, signup and logout endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	templates      *template.Template
	config         config.Auth
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, templatesPath string, cfg config.Auth) (*AuthController, error) {
	// Parse auth templates
	pattern := filepath.Join(templatesPath, "auth", "*.html")
	tmpl, err := template.ParseGlob(pattern)
	if err != nil {
		// Templates might not exist yet, create controller without them
		tmpl = nil
	}

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		templates:      tmpl,
		config:         cfg,
	}, nil
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/signup", ac.SignupPage)
	router.POST("/signup", ac.Signup)
	router.POST("/logout", ac.Logout)
	router.GET("/logout", ac.Logout) // Support GET for simple logout links
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ac.renderTemplate(c, "login.html", gin.H{
		"Title":     "Login",
		"Next":      sanitizeRedirectPath(c.Query("next")),
		"CSRFToken": GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

// Login handles the login form submission. The identifier field accepts
// either the username or the email address.
func (ac *AuthController) Login(c *gin.Context) {
	identifier := strings.TrimSpace(c.PostForm("username_or_email"))
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))

	user, err := ac.service.Authenticate(identifier, password)
	if err != nil {
		errorMsg := "Invalid username/email or password"
		if errors.Is(err, ErrAccountLocked) {
			errorMsg = "Account is locked. Please try again later."
		}

		ac.renderTemplate(c, "login.html", gin.H{
			"Title":      "Login",
			"Next":       next,
			"Identifier": identifier,
			"CSRFToken":  GetCSRFToken(c),
			"Error":      errorMsg,
		})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		ac.renderTemplate(c, "login.html", gin.H{
			"Title":      "Login",
			"Next":       next,
			"Identifier": identifier,
			"CSRFToken":  GetCSRFToken(c),
			"Error":      "Failed to create session",
		})
		return
	}

	ac.sessionManager.AddFlash(c.Request, FlashSuccess, "Welcome, "+user.Username+"!")
	c.Redirect(http.StatusFound, next)
}

// Logout destroys the session and redirects to login.
func (ac *AuthController) Logout(c *gin.Context) {
	_ = ac.sessionManager.DestroySession(c.Request)
	c.Redirect(http.StatusFound, "/login")
}

// SignupPage renders the signup form.
func (ac *AuthController) SignupPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ac.renderTemplate(c, "signup.html", gin.H{
		"Title":       "Sign up",
		"MemberTypes": entities.MemberTypes,
		"CSRFToken":   GetCSRFToken(c),
		"Error":       c.Query("error"),
	})
}

// Signup handles the signup form submission. Validation failures re-render
// the form with a message; persistence failures are reported generically.
func (ac *AuthController) Signup(c *gin.Context) {
	input := SignupInput{
		Username:        strings.TrimSpace(c.PostForm("username")),
		Email:           strings.ToLower(strings.TrimSpace(c.PostForm("email"))),
		FirstName:       strings.TrimSpace(c.PostForm("first_name")),
		LastName:        strings.TrimSpace(c.PostForm("last_name")),
		Password:        c.PostForm("password"),
		PasswordConfirm: c.PostForm("password2"),
		MemberType:      entities.MemberType(c.PostForm("member_type")),
	}
	if input.MemberType == "" {
		input.MemberType = entities.MemberTypeStudent
	}

	_, err := ac.service.Signup(input)
	if err != nil {
		errorMsg := "Could not create account. Please try again."
		switch {
		case errors.Is(err, ErrFieldsRequired),
			errors.Is(err, ErrPasswordMismatch),
			errors.Is(err, ErrUsernameTaken),
			errors.Is(err, ErrEmailTaken),
			errors.Is(err, ErrUsernameInvalid),
			errors.Is(err, ErrEmailInvalid),
			errors.Is(err, ErrInvalidMemberType),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrPasswordTooLong):
			errorMsg = capitalize(err.Error())
		}

		ac.renderTemplate(c, "signup.html", gin.H{
			"Title":       "Sign up",
			"MemberTypes": entities.MemberTypes,
			"Username":    input.Username,
			"Email":       input.Email,
			"FirstName":   input.FirstName,
			"LastName":    input.LastName,
			"MemberType":  input.MemberType,
			"CSRFToken":   GetCSRFToken(c),
			"Error":       errorMsg,
		})
		return
	}

	ac.sessionManager.AddFlash(c.Request, FlashSuccess, "Account created successfully! Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

// renderTemplate renders an auth template or falls back to JSON.
func (ac *AuthController) renderTemplate(c *gin.Context, name string, data gin.H) {
	if ac.templates == nil {
		c.JSON(http.StatusOK, data)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := ac.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		c.String(http.StatusInternalServerError, "Template error: %v", err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
