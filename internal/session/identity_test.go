package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-sessiongate/sessiongate/internal/models"
	"github.com/go-sessiongate/sessiongate/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)
	return s
}

func TestBinder_BindResolveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         "Ada",
		Email:        "ada@x.com",
		PasswordHash: "hash",
	}
	require.NoError(t, s.CreateUser(user))

	b := NewBinder(s)
	token := b.Bind(user)
	assert.Equal(t, user.ID, token)

	resolved, err := b.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)
}

func TestBinder_ResolveUnknownToken(t *testing.T) {
	s := newTestStore(t)
	b := NewBinder(s)

	_, err := b.Resolve("gone-user-id")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestSignInSignOut(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))

	s := newTestStore(t)
	user := &models.User{ID: uuid.New().String(), Name: "Ada", Email: "ada@x.com"}
	require.NoError(t, s.CreateUser(user))
	b := NewBinder(s)

	r.GET("/in", func(c *gin.Context) {
		sess := sessions.Default(c)
		require.NoError(t, SignIn(sess, b, user))

		token, ok := Token(sess)
		assert.True(t, ok)
		assert.Equal(t, user.ID, token)
		c.Status(http.StatusOK)
	})
	r.GET("/out", func(c *gin.Context) {
		sess := sessions.Default(c)
		sess.Set(IdentityKey, user.ID)
		require.NoError(t, sess.Save())

		require.NoError(t, SignOut(sess))
		// Clearing twice in a row must not fail.
		require.NoError(t, SignOut(sess))

		_, ok := Token(sess)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/in", "/out"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestToken_EmptySession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))

	r.GET("/", func(c *gin.Context) {
		_, ok := Token(sessions.Default(c))
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// failingSaveSession stubs the session interface with a Save that always
// fails. Only Clear and Save are exercised; other calls would panic on the
// nil embedded interface.
type failingSaveSession struct {
	sessions.Session
	cleared bool
}

func (s *failingSaveSession) Clear()      { s.cleared = true }
func (s *failingSaveSession) Save() error { return errors.New("session store unavailable") }

func TestSignOut_SurfacesSaveFailure(t *testing.T) {
	sess := &failingSaveSession{}

	err := SignOut(sess)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear session")
	assert.True(t, sess.cleared)
}
