package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/gophqueue/internal/client/auth"
	"github.com/iudanet/gophqueue/internal/client/iocli"
	"github.com/iudanet/gophqueue/internal/client/sync"
)

// TokenEnv переменная окружения с access token
const TokenEnv = "GOPHQUEUE_TOKEN"

// TokenSources источники токена для команды login
type TokenSources struct {
	FromFile string
	FromArgs string
}

// Cli выполняет команды клиента
type Cli struct {
	io          iocli.IO
	authService auth.Service
	syncService sync.Service
	setToken    func(token string) // передает токен HTTP клиенту
	serverURL   string
}

// New создает Cli
func New(io iocli.IO, authService auth.Service, syncService sync.Service, setToken func(string), serverURL string) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		syncService: syncService,
		setToken:    setToken,
		serverURL:   serverURL,
	}
}

// authorize загружает сохраненный токен для запросов к серверу
func (c *Cli) authorize(ctx context.Context) error {
	token, err := c.authService.AccessToken(ctx)
	if err != nil {
		return err
	}
	if c.setToken != nil {
		c.setToken(token)
	}
	return nil
}

// getToken retrieves the access token from various sources with priority:
// 1. Environment variable GOPHQUEUE_TOKEN
// 2. File specified in sources.FromFile
// 3. Command-line argument
// 4. Interactive prompt (fallback)
func (c *Cli) getToken(sources TokenSources) (string, error) {
	// Priority 1: Environment variable
	if envToken := os.Getenv(TokenEnv); envToken != "" {
		return envToken, nil
	}

	// Priority 2: File
	if sources.FromFile != "" {
		content, err := os.ReadFile(sources.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read token file: %w", err)
		}
		token := strings.TrimSpace(string(content))
		if token == "" {
			return "", fmt.Errorf("token file is empty")
		}
		return token, nil
	}

	// Priority 3: CLI argument
	if sources.FromArgs != "" {
		return sources.FromArgs, nil
	}

	// Priority 4: Interactive prompt (fallback)
	token, err := c.io.ReadPassword("Access token: ")
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("token cannot be empty")
	}

	return token, nil
}
