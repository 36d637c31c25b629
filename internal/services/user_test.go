package services

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/go-sessiongate/sessiongate/internal/auth"
	"github.com/go-sessiongate/sessiongate/internal/metrics"
	"github.com/go-sessiongate/sessiongate/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(t *testing.T) (*UserService, *store.Store) {
	t.Helper()

	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)

	svc := NewUserService(s, auth.NewVerifier(s), bcrypt.MinCost, metrics.NewNoopMetrics())
	return svc, s
}

func TestUserService_RegisterThenAuthenticate(t *testing.T) {
	svc, s := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada", "ada@x.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	// The stored password is never the plaintext and verifies against it.
	stored, err := s.GetUserByEmail("ada@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(stored.PasswordHash), []byte("secret123"),
	))

	authed, err := svc.Authenticate(ctx, "ada@x.com", "secret123", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "ada@x.com", "wrong", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@x.com", "x", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_RegisterMissingFields(t *testing.T) {
	svc, s := newTestUserService(t)
	ctx := context.Background()

	for _, tc := range []struct{ name, email, password string }{
		{"", "ada@x.com", "secret123"},
		{"Ada", "", "secret123"},
		{"Ada", "ada@x.com", ""},
	} {
		_, err := svc.Register(ctx, tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, ErrIncompleteRegistration)
	}

	// No partial record is visible after a failed registration.
	count, err := s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserService_RegisterHashFaultLeavesNoRecord(t *testing.T) {
	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)

	// An out-of-range cost makes bcrypt fail at hash time.
	svc := NewUserService(s, auth.NewVerifier(s), bcrypt.MaxCost+1, metrics.NewNoopMetrics())

	_, err = svc.Register(context.Background(), "Ada", "ada@x.com", "secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	count, err := s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserService_DuplicateEmailRegistrationsBothSucceed(t *testing.T) {
	svc, s := newTestUserService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, "First", "dup@x.com", "first-pass")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Second", "dup@x.com", "second-pass")
	require.NoError(t, err)

	count, err := s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Authentication picks the first-created record consistently.
	authed, err := svc.Authenticate(ctx, "dup@x.com", "first-pass", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, authed.ID)
}

func TestUserService_RejectionIsAuditLoggedWithClientIP(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	_, err := svc.Authenticate(ctx, "nobody@x.com", "x", "203.0.113.9")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	line := buf.String()
	assert.True(t, strings.Contains(line, "Login rejected"), "audit line missing: %q", line)
	assert.True(t, strings.Contains(line, "ip=203.0.113.9"), "client ip missing: %q", line)
}
