package handlers

import (
	"errors"
	"net/http"

	"github.com/go-sessiongate/sessiongate/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type RegisterHandler struct {
	userService *services.UserService
}

func NewRegisterHandler(us *services.UserService) *RegisterHandler {
	return &RegisterHandler{userService: us}
}

// RegisterPage renders the registration form
func (h *RegisterHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Name":  "",
		"Email": "",
	})
}

// Register handles the registration form submission. Any failure routes the
// caller back to the form with no partial state; success redirects to the
// login page without creating a session.
func (h *RegisterHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, err := h.userService.Register(c.Request.Context(), name, email, password)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Registration failed. Please try again."
		if errors.Is(err, services.ErrIncompleteRegistration) {
			status = http.StatusBadRequest
			message = "Name, email and password are required"
		}
		c.HTML(status, "register.html", gin.H{
			"Error": message,
			"Name":  name,
			"Email": email,
		})
		return
	}

	// The new account is not signed in automatically.
	sess := sessions.Default(c)
	sess.AddFlash("Account created. Please log in.")
	_ = sess.Save()

	c.Redirect(http.StatusFound, "/login")
}
