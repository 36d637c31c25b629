package session

import (
	"errors"
	"fmt"

	"github.com/go-sessiongate/sessiongate/internal/models"
	"github.com/go-sessiongate/sessiongate/internal/store"

	"github.com/gin-contrib/sessions"
)

// IdentityKey is the session value under which the bound user id is stored
const IdentityKey = "user_id"

// ErrIdentityNotFound is returned by Resolve when the bound user no longer
// exists. Callers must treat it as unauthenticated, not as a server fault.
var ErrIdentityNotFound = errors.New("session identity not found")

// UserResolver is the store capability the binder depends on
type UserResolver interface {
	GetUserByID(id string) (*models.User, error)
}

// Binder converts an authenticated user into a durable session token and
// back. The token is the user id, not a secret; the signed session cookie
// provides the tamper guarantee.
type Binder struct {
	users UserResolver
}

// NewBinder creates an identity binder backed by the given store
func NewBinder(users UserResolver) *Binder {
	return &Binder{users: users}
}

// Bind returns the session token for an authenticated user
func (b *Binder) Bind(user *models.User) string {
	return user.ID
}

// Resolve looks the token's user up in the store. A missing user (deleted
// after the session was issued) yields ErrIdentityNotFound; any other store
// failure is returned as-is.
func (b *Binder) Resolve(token string) (*models.User, error) {
	user, err := b.users.GetUserByID(token)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("identity lookup failed: %w", err)
	}
	return user, nil
}

// SignIn binds the user's identity into the session and persists it
func SignIn(s sessions.Session, b *Binder, user *models.User) error {
	s.Set(IdentityKey, b.Bind(user))
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SignOut clears the session and persists the cleared state. The save error
// is surfaced to the caller rather than swallowed; clearing an already
// anonymous session is a no-op that succeeds.
func SignOut(s sessions.Session) error {
	s.Clear()
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Token returns the bound identity token, if any
func Token(s sessions.Session) (string, bool) {
	v := s.Get(IdentityKey)
	if v == nil {
		return "", false
	}
	token, ok := v.(string)
	return token, ok && token != ""
}
