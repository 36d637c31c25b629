package handlers

import (
	"net/http"

	"github.com/go-sessiongate/sessiongate/internal/middleware"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomePage renders the home page for the authenticated user
func (h *HomeHandler) HomePage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		// RequireAuth guards this route; a missing user is a wiring bug.
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Error":   "Server Error",
			"Message": "Something went wrong. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Name": user.Name,
	})
}
