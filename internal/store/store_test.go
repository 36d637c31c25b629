package store

import (
	"testing"
	"time"

	"github.com/go-sessiongate/sessiongate/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New("sqlite", ":memory:")
	require.NoError(t, err)
	return s
}

func TestGetDialector_UnknownDriver(t *testing.T) {
	_, err := GetDialector("mysql", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestStore_CreateAndGetUser(t *testing.T) {
	s := newTestStore(t)

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         "Ada",
		Email:        "ada@x.com",
		PasswordHash: "$2a$10$notarealhash",
	}
	require.NoError(t, s.CreateUser(user))

	byEmail, err := s.GetUserByEmail("ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "Ada", byEmail.Name)

	byID, err := s.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", byID.Email)
}

func TestStore_GetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByEmail("nobody@x.com")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.GetUserByID("missing-id")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestStore_EmailLookupIsCaseSensitive(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(&models.User{
		ID:           uuid.New().String(),
		Name:         "Ada",
		Email:        "Ada@x.com",
		PasswordHash: "hash",
	}))

	_, err := s.GetUserByEmail("ada@x.com")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestStore_DuplicateEmailsResolveToFirstCreated(t *testing.T) {
	s := newTestStore(t)

	first := &models.User{
		ID:           uuid.New().String(),
		Name:         "First",
		Email:        "dup@x.com",
		PasswordHash: "hash-1",
		CreatedAt:    time.Now().Add(-time.Minute),
	}
	second := &models.User{
		ID:           uuid.New().String(),
		Name:         "Second",
		Email:        "dup@x.com",
		PasswordHash: "hash-2",
	}
	require.NoError(t, s.CreateUser(first))
	require.NoError(t, s.CreateUser(second))

	// Repeated lookups must deterministically pick the same record.
	for i := 0; i < 5; i++ {
		user, err := s.GetUserByEmail("dup@x.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, user.ID)
	}
}

func TestStore_CountUsers(t *testing.T) {
	s := newTestStore(t)

	count, err := s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, s.CreateUser(&models.User{
		ID:    uuid.New().String(),
		Name:  "Ada",
		Email: "ada@x.com",
	}))

	count, err = s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_Health(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Health())
}
