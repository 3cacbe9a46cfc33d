package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Claims is what a verified access token asserts about the caller.
type Claims struct {
	UserID  int64
	IsAdmin bool
}

type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error)
	ParseToken(token string) (*Claims, error)
}

type Service struct {
	users     repository.UserRepository
	secret    []byte
	accessTTL time.Duration
}

func NewService(users repository.UserRepository, secret string, accessTTL time.Duration) *Service {
	return &Service{users: users, secret: []byte(secret), accessTTL: accessTTL}
}

func (s *Service) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" {
		return nil, &domain.FieldError{Field: "email", Message: "is required"}
	}
	if len(password) < 8 {
		return nil, &domain.FieldError{Field: "password", Message: "must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	exp := time.Now().UTC().Add(s.accessTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"admin": user.IsAdmin,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *Service) ParseToken(raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	admin, _ := claims["admin"].(bool)
	return &Claims{UserID: int64(sub), IsAdmin: admin}, nil
}

var _ AuthUseCase = (*Service)(nil)
