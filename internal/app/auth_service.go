package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"todoapp/internal/model"
)

var (
	ErrEmptyField        = errors.New("all fields are required")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrEmailExists       = errors.New("email already exists")
	ErrInvalidCredential = errors.New("invalid email or password")
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
}

// SessionStore mints and revokes opaque login tokens.
type SessionStore interface {
	Create(ctx context.Context, userID uint, remember bool) (string, error)
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	userStore UserStore
	sessions  SessionStore
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
	Remember bool
}

// SessionIdentity is the result of a successful login: the logged-in
// user plus the session token the transport layer hands back as a cookie.
type SessionIdentity struct {
	Token string
	User  *model.User
}

func NewAuthService(userStore UserStore, sessions SessionStore) *AuthService {
	return &AuthService{
		userStore: userStore,
		sessions:  sessions,
	}
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	name := strings.TrimSpace(input.Name)
	password := strings.TrimSpace(input.Password)

	if email == "" || name == "" || password == "" {
		return nil, ErrEmptyField
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.userStore.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userStore.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and establishes a session. Unknown
// email and wrong password are deliberately indistinguishable so a
// caller cannot probe which addresses are registered.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*SessionIdentity, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return nil, ErrEmptyField
	}

	user, err := s.userStore.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := s.sessions.Create(ctx, user.ID, input.Remember)
	if err != nil {
		return nil, err
	}
	return &SessionIdentity{Token: token, User: user}, nil
}

// Logout revokes the session token. Calling it without an active
// session is a no-op, not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, nil
	}
	return s.userStore.GetByID(id)
}
