package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-sessiongate/sessiongate/internal/metrics"
	sessionpkg "github.com/go-sessiongate/sessiongate/internal/session"
	"github.com/go-sessiongate/sessiongate/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// isRedirectSafe validates that a redirect URL is safe to use.
// It only allows:
// 1. Relative paths starting with "/" but not "//"
// 2. Absolute URLs that match the baseURL host
func isRedirectSafe(redirectURL, baseURL string) bool {
	// Empty redirect is safe (will use default)
	if redirectURL == "" {
		return true
	}

	// Must not contain newlines or carriage returns (header injection)
	if strings.ContainsAny(redirectURL, "\r\n") {
		return false
	}

	// Check if it's a relative path
	if strings.HasPrefix(redirectURL, "/") {
		// Reject protocol-relative URLs like "//evil.com"
		if strings.HasPrefix(redirectURL, "//") {
			return false
		}
		// Reject backslash variations like "/\evil.com"
		if strings.Contains(redirectURL, "\\") {
			return false
		}
		// Valid relative path
		return true
	}

	// If it's an absolute URL, parse and validate against baseURL
	parsedRedirect, err := url.Parse(redirectURL)
	if err != nil {
		return false
	}

	// Reject javascript:, data:, and other non-http(s) schemes
	if parsedRedirect.Scheme != "" && parsedRedirect.Scheme != "http" &&
		parsedRedirect.Scheme != "https" {
		return false
	}

	// If there's a host specified, it must match baseURL
	if parsedRedirect.Host != "" {
		parsedBase, err := url.Parse(baseURL)
		if err != nil {
			return false
		}
		// Host must match exactly
		if parsedRedirect.Host != parsedBase.Host {
			return false
		}
	}

	return true
}

type AuthHandler struct {
	userService *services.UserService
	binder      *sessionpkg.Binder
	baseURL     string
	metrics     metrics.Recorder
}

func NewAuthHandler(
	us *services.UserService,
	binder *sessionpkg.Binder,
	baseURL string,
	m metrics.Recorder,
) *AuthHandler {
	return &AuthHandler{
		userService: us,
		binder:      binder,
		baseURL:     baseURL,
		metrics:     m,
	}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(c *gin.Context) {
	sess := sessions.Default(c)
	flashes := sess.Flashes()
	if len(flashes) > 0 {
		// Flashes are consumed on read; persist the removal. The page still
		// renders if the save fails, the flash just reappears next time.
		if err := sess.Save(); err != nil {
			log.Printf("[Auth] Failed to persist flash consumption: %v", err)
		}
	}

	redirectTo := c.Query("redirect")
	if !isRedirectSafe(redirectTo, h.baseURL) {
		redirectTo = ""
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Redirect": redirectTo,
		"Flashes":  flashes,
	})
}

// Login handles the login form submission. Rejected credentials re-render
// the form with a generic message; verifier faults surface as a server
// error, never as a redirect.
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	redirectTo := c.PostForm("redirect")
	if !isRedirectSafe(redirectTo, h.baseURL) {
		redirectTo = ""
	}

	clientIP := c.GetString("client_ip") // Set by IPMiddleware
	user, err := h.userService.Authenticate(c.Request.Context(), email, password, clientIP)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"Error":    "Invalid email or password",
				"Redirect": redirectTo,
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Error":   "Server Error",
			"Message": "Something went wrong. Please try again later.",
		})
		return
	}

	// Bind identity to session
	if err := sessionpkg.SignIn(sessions.Default(c), h.binder, user); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error":    "Failed to create session",
			"Redirect": redirectTo,
		})
		return
	}

	if redirectTo != "" {
		c.Redirect(http.StatusFound, redirectTo)
	} else {
		c.Redirect(http.StatusFound, "/")
	}
}

// Logout clears the session and redirects to login. A failure to persist
// the cleared session is surfaced to the caller and suppresses the
// redirect; clearing an already-empty session succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := sessionpkg.SignOut(sessions.Default(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save session",
		})
		return
	}
	h.metrics.RecordLogout()
	c.Redirect(http.StatusFound, "/login")
}
