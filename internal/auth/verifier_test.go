package auth

import (
	"context"
	"testing"

	"github.com/go-sessiongate/sessiongate/internal/models"
	"github.com/go-sessiongate/sessiongate/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)
	return s
}

func seedUser(t *testing.T, s *store.Store, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         "Ada",
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, s.CreateUser(user))
	return user
}

func TestVerifier_CorrectPassword(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, "ada@x.com", "secret123")
	v := NewVerifier(s)

	decision, err := v.Verify(context.Background(), "ada@x.com", "secret123")
	require.NoError(t, err)
	require.True(t, decision.Authenticated())
	assert.Equal(t, user.ID, decision.User.ID)
}

func TestVerifier_WrongPassword(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "ada@x.com", "secret123")
	v := NewVerifier(s)

	decision, err := v.Verify(context.Background(), "ada@x.com", "wrong")
	require.NoError(t, err)
	assert.False(t, decision.Authenticated())
	assert.Equal(t, ReasonWrongPassword, decision.Reason)
	assert.Nil(t, decision.User)
}

func TestVerifier_UnknownEmail(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "ada@x.com", "secret123")
	v := NewVerifier(s)

	decision, err := v.Verify(context.Background(), "nobody@x.com", "x")
	require.NoError(t, err)
	assert.False(t, decision.Authenticated())
	assert.Equal(t, ReasonNoSuchUser, decision.Reason)
}

func TestVerifier_EmptyInputs(t *testing.T) {
	s := newTestStore(t)
	v := NewVerifier(s)

	// Empty values are still processed; an empty email is a store miss.
	decision, err := v.Verify(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, ReasonNoSuchUser, decision.Reason)
}

func TestVerifier_MalformedHashIsFault(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser(&models.User{
		ID:           uuid.New().String(),
		Name:         "Broken",
		Email:        "broken@x.com",
		PasswordHash: "not-a-bcrypt-hash",
	}))
	v := NewVerifier(s)

	// A comparator execution error must surface as an error, not a rejection.
	decision, err := v.Verify(context.Background(), "broken@x.com", "anything")
	require.Error(t, err)
	assert.Nil(t, decision)
}

func TestVerifier_DuplicateEmailPicksFirstMatch(t *testing.T) {
	s := newTestStore(t)
	first := seedUser(t, s, "dup@x.com", "first-pass")
	seedUser(t, s, "dup@x.com", "second-pass")
	v := NewVerifier(s)

	for i := 0; i < 3; i++ {
		decision, err := v.Verify(context.Background(), "dup@x.com", "first-pass")
		require.NoError(t, err)
		require.True(t, decision.Authenticated())
		assert.Equal(t, first.ID, decision.User.ID)
	}

	// The later duplicate's password never authenticates.
	decision, err := v.Verify(context.Background(), "dup@x.com", "second-pass")
	require.NoError(t, err)
	assert.Equal(t, ReasonWrongPassword, decision.Reason)
}
