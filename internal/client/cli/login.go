package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context, sources TokenSources) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	token, err := c.getToken(sources)
	if err != nil {
		return err
	}

	data, err := c.authService.Login(ctx, c.serverURL, token)
	if err != nil {
		return err
	}

	c.io.Println("✓ Login successful!")
	c.io.Printf("Server:   %s\n", data.ServerURL)
	if data.Username != "" {
		c.io.Printf("Username: %s\n", data.Username)
	}
	if data.ExpiresAt != 0 {
		c.io.Printf("Token expires: %s\n", time.Unix(data.ExpiresAt, 0).Format(time.RFC3339))
	}

	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logged out. Queued changes are kept until the next replay.")
	return nil
}
