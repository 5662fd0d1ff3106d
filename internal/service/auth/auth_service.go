package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/repository"
)

const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLen     = 32
	saltBytes        = 16
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, username string, now time.Time) (string, error)
}

type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	now    func() time.Time
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if len(input.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	salt, err := newSalt()
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: hashPassword(input.Password, salt),
		Salt:         salt,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the password against the stored PBKDF2 hash and issues
// an access token. Unknown user and wrong password are deliberately the
// same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	candidate := hashPassword(password, user.Salt)
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(user.PasswordHash)) != 1 {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, s.now())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func hashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hex.EncodeToString(key)
}

func newSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

var _ AuthUseCase = (*AuthService)(nil)
