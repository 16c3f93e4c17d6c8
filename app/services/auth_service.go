package services

import (
	"errors"
	"fmt"
	"strings"

	"inkwell/app/models"
	"inkwell/app/policy"
	"inkwell/app/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// AuthService manages accounts and server-side sessions. It is the only
// component that touches credentials; the rest of the system sees actors.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// Register creates an account with a bcrypt-hashed password. Usernames are
// unique; a taken name surfaces repositories.ErrConflict.
func (s *AuthService) Register(username, password string, isStaff bool) (*models.User, error) {
	username = strings.TrimSpace(username)
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		IsStaff:      isStaff,
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues an opaque session token.
func (s *AuthService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessionRepo.Create(token, user.ID); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout invalidates a session token. Unknown tokens are not an error.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(token)
}

// ActorFromToken resolves a session token to an actor. Empty, unknown or
// stale tokens yield the anonymous actor rather than an error.
func (s *AuthService) ActorFromToken(token string) policy.Actor {
	if token == "" {
		return policy.Actor{}
	}
	userID, err := s.sessionRepo.Get(token)
	if err != nil {
		return policy.Actor{}
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return policy.Actor{}
	}
	return policy.Actor{ID: user.ID, IsStaff: user.IsStaff, Authenticated: true}
}
