package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/gophqueue/internal/client/storage"
)

//go:generate moq -out service_mock.go . Service

var (
	// ErrNotAuthenticated возвращается, когда токен не сохранен
	ErrNotAuthenticated = errors.New("not authenticated, run 'gophqueue login' first")

	// ErrTokenExpired возвращается для токена с истекшим сроком
	ErrTokenExpired = errors.New("access token has expired, run 'gophqueue login' again")
)

// Service manages the access token stored on the client.
// The token is issued by the server (`gophqueue-server token <user>`) and only
// decoded here to show the user and expiry; the server verifies the signature.
type Service interface {
	// Login проверяет формат токена и сохраняет его вместе с адресом сервера
	Login(ctx context.Context, serverURL, token string) (*storage.AuthData, error)

	// Logout удаляет сохраненный токен
	Logout(ctx context.Context) error

	// Session возвращает сохраненные данные или ErrNotAuthenticated
	Session(ctx context.Context) (*storage.AuthData, error)

	// AccessToken возвращает действующий токен
	AccessToken(ctx context.Context) (string, error)
}

type service struct {
	storage storage.AuthStorage
	now     func() time.Time
}

// NewService создает сервис авторизации поверх хранилища токена
func NewService(authStorage storage.AuthStorage) Service {
	return &service{
		storage: authStorage,
		now:     time.Now,
	}
}

func (s *service) Login(ctx context.Context, serverURL, token string) (*storage.AuthData, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	data := &storage.AuthData{
		AccessToken: token,
		ServerURL:   serverURL,
		SavedAt:     s.now().Unix(),
	}

	if username, ok := claims["username"].(string); ok {
		data.Username = username
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if !exp.After(s.now()) {
			return nil, ErrTokenExpired
		}
		data.ExpiresAt = exp.Unix()
	}

	if err := s.storage.SaveAuth(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	return data, nil
}

func (s *service) Logout(ctx context.Context) error {
	err := s.storage.DeleteAuth(ctx)
	if err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (s *service) Session(ctx context.Context) (*storage.AuthData, error) {
	data, err := s.storage.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	return data, nil
}

func (s *service) AccessToken(ctx context.Context) (string, error) {
	data, err := s.Session(ctx)
	if err != nil {
		return "", err
	}

	if data.ExpiresAt != 0 && s.now().Unix() >= data.ExpiresAt {
		return "", ErrTokenExpired
	}

	return data.AccessToken, nil
}
