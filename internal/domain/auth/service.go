package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"godrive/internal/pkg/validator"
)

const minPasswordLen = 6

type tokenIssuer interface {
	GenerateToken(userID int64, email string) (string, error)
}

// Service handles registration and sign-in. Sign-out is client-side token
// discard; the tokens are stateless.
type Service struct {
	users Repository
	jwt   tokenIssuer
}

func NewService(users Repository, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Register creates an account and returns the user with a signed token.
func (s *Service) Register(ctx context.Context, creds Credentials) (*User, string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if errs := validator.Validate(Credentials{Email: email, Password: creds.Password}); errs != nil {
		return nil, "", ErrInvalidEmail
	}
	if len(creds.Password) < minPasswordLen {
		return nil, "", ErrWeakPassword
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         creds.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Login verifies the credentials and returns the user with a signed token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*User, string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return nil, "", ErrWrongPassword
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Me returns the principal for an authenticated user ID.
func (s *Service) Me(ctx context.Context, userID int64) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
