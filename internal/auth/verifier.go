package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sessiongate/sessiongate/internal/models"
	"github.com/go-sessiongate/sessiongate/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// Reason explains why a credential check was rejected. Reasons are computed
// distinctly but must not be distinguished at the UI boundary.
type Reason string

const (
	ReasonNoSuchUser    Reason = "no_such_user"
	ReasonWrongPassword Reason = "wrong_password"
)

// Decision is the outcome of a credential check: either an authenticated
// user or a rejection reason. A nil User means rejected.
type Decision struct {
	User   *models.User
	Reason Reason
}

// Authenticated reports whether the check succeeded
func (d *Decision) Authenticated() bool {
	return d.User != nil
}

// UserFinder is the store capability the verifier depends on
type UserFinder interface {
	GetUserByEmail(email string) (*models.User, error)
}

// Verifier checks credentials against the user store
type Verifier struct {
	users UserFinder
}

// NewVerifier creates a credential verifier backed by the given store
func NewVerifier(users UserFinder) *Verifier {
	return &Verifier{users: users}
}

// Verify looks up the user by exact email match and compares the password
// against the stored bcrypt hash. A store miss yields ReasonNoSuchUser and a
// hash mismatch yields ReasonWrongPassword; any other store or comparator
// failure is returned as an error distinct from rejection. The comparison is
// constant time relative to the hash length (bcrypt property).
func (v *Verifier) Verify(ctx context.Context, email, password string) (*Decision, error) {
	user, err := v.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return &Decision{Reason: ReasonNoSuchUser}, nil
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(password),
	)
	switch {
	case err == nil:
		return &Decision{User: user}, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return &Decision{Reason: ReasonWrongPassword}, nil
	default:
		// Malformed hash or comparator failure, not a mismatch
		return nil, fmt.Errorf("password comparison failed: %w", err)
	}
}
