package storage

import (
	"context"
)

// AuthStorage defines interface for storing the access token on client
type AuthStorage interface {
	// SaveAuth stores authentication data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	DeleteAuth(ctx context.Context) error
}

// AuthData represents authentication information in storage
type AuthData struct {
	AccessToken string `json:"access_token"`
	ServerURL   string `json:"server_url"`
	Username    string `json:"username,omitempty"`
	ExpiresAt   int64  `json:"expires_at,omitempty"` // 0 - срок не указан в токене
	SavedAt     int64  `json:"saved_at"`
}
