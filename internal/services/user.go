package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-sessiongate/sessiongate/internal/auth"
	"github.com/go-sessiongate/sessiongate/internal/metrics"
	"github.com/go-sessiongate/sessiongate/internal/models"
	"github.com/go-sessiongate/sessiongate/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is the single rejection error exposed to the UI
	// boundary. The verifier's reject reasons stay internal to avoid account
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrIncompleteRegistration is returned when a required field is missing
	ErrIncompleteRegistration = errors.New("name, email and password are required")
)

type UserService struct {
	store      *store.Store
	verifier   *auth.Verifier
	bcryptCost int
	metrics    metrics.Recorder
}

func NewUserService(
	s *store.Store,
	verifier *auth.Verifier,
	bcryptCost int,
	m metrics.Recorder,
) *UserService {
	return &UserService{
		store:      s,
		verifier:   verifier,
		bcryptCost: bcryptCost,
		metrics:    m,
	}
}

// Authenticate verifies credentials and returns the matched user. Rejections
// collapse to ErrInvalidCredentials; verifier faults pass through so the
// caller can surface a server error instead of a failed login. The client IP
// is recorded in the audit log alongside the rejection reason.
func (s *UserService) Authenticate(
	ctx context.Context,
	email, password, clientIP string,
) (*models.User, error) {
	decision, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		s.metrics.RecordLogin(metrics.LoginResult(false, true))
		return nil, fmt.Errorf("credential verification failed: %w", err)
	}

	if !decision.Authenticated() {
		log.Printf("[Auth] Login rejected for email=%s reason=%s ip=%s", email, decision.Reason, clientIP)
		s.metrics.RecordLogin(metrics.LoginResult(false, false))
		return nil, ErrInvalidCredentials
	}

	s.metrics.RecordLogin(metrics.LoginResult(true, false))
	return decision.User, nil
}

// Register hashes the password and commits a new user record. The new user
// is not authenticated here; the caller logs in separately. On any hashing
// or storage fault the operation fails as a whole and no partial record is
// left behind.
func (s *UserService) Register(
	ctx context.Context,
	name, email, password string,
) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		s.metrics.RecordRegistration(false)
		return nil, ErrIncompleteRegistration
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.metrics.RecordRegistration(false)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(user); err != nil {
		s.metrics.RecordRegistration(false)
		return nil, err
	}

	log.Printf("[Auth] New user registered: email=%s id=%s", email, user.ID)
	s.metrics.RecordRegistration(true)
	return user, nil
}
