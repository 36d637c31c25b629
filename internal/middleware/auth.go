package middleware

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-sessiongate/sessiongate/internal/metrics"
	"github.com/go-sessiongate/sessiongate/internal/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth is a middleware that requires the user to be logged in. The
// resolved user is stored in the context for downstream handlers. A session
// whose identity no longer resolves is cleared and treated as anonymous; a
// store fault renders a server error instead of a redirect.
func RequireAuth(binder *session.Binder, m metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		token, ok := session.Token(sess)
		if !ok {
			redirectToLogin(c)
			return
		}

		user, err := binder.Resolve(token)
		if err != nil {
			if errors.Is(err, session.ErrIdentityNotFound) {
				// Lazy downgrade: the bound user was deleted after the
				// session was issued.
				sess.Clear()
				if err := sess.Save(); err != nil {
					log.Printf("[Auth] Failed to persist session downgrade: %v", err)
				}
				m.RecordSessionDowngrade()
				redirectToLogin(c)
				return
			}
			log.Printf("[Auth] Identity resolution failed: %v", err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"Error":   "Server Error",
				"Message": "Something went wrong. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireGuest is a middleware that keeps authenticated users out of the
// login and registration pages by redirecting them to the home page
func RequireGuest(binder *session.Binder) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		token, ok := session.Token(sess)
		if !ok {
			c.Next()
			return
		}

		if _, err := binder.Resolve(token); err != nil {
			if errors.Is(err, session.ErrIdentityNotFound) {
				sess.Clear()
				if err := sess.Save(); err != nil {
					log.Printf("[Auth] Failed to persist session downgrade: %v", err)
				}
				c.Next()
				return
			}
			log.Printf("[Auth] Identity resolution failed: %v", err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"Error":   "Server Error",
				"Message": "Something went wrong. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

func redirectToLogin(c *gin.Context) {
	// Redirect to login with return URL
	redirectURL := c.Request.URL.String()
	c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(redirectURL))
	c.Abort()
}
