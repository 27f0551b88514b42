package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/gophqueue/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context, collections []string) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	session, err := c.authService.Session(ctx)
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		c.io.Println("Status: Not authenticated")
		c.io.Println("Run 'gophqueue login' to authenticate.")
	case err != nil:
		return fmt.Errorf("failed to check authentication: %w", err)
	default:
		c.io.Println("Status: Authenticated")
		c.io.Printf("Server:   %s\n", session.ServerURL)
		if session.Username != "" {
			c.io.Printf("Username: %s\n", session.Username)
		}
		if session.ExpiresAt != 0 {
			expiresAt := time.Unix(session.ExpiresAt, 0)
			if remaining := time.Until(expiresAt); remaining > 0 {
				c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
			} else {
				c.io.Println("⚠️  Token has expired. Please login again.")
			}
		}
	}

	if len(collections) == 0 {
		return nil
	}

	statuses, err := c.syncService.Status(ctx, collections)
	if err != nil {
		return fmt.Errorf("failed to read queues: %w", err)
	}

	for _, st := range statuses {
		c.io.Println()
		c.io.Printf("Collection: %s\n", st.Collection)
		c.io.Printf("Pending creations: %s\n", formatList(st.CreateQueue))
		c.io.Printf("Pending updates:   %s\n", formatList(st.Updates))
		c.io.Printf("Pending deletions: %s\n", formatList(st.DestroyQueue))

		if st.LastReplay.IsZero() {
			c.io.Println("Last replay: never")
		} else {
			c.io.Printf("Last replay: %s\n", st.LastReplay.Format(time.RFC3339))
		}

		if st.Pending() > 0 {
			c.io.Printf("⚠️  %d operation(s) waiting for replay\n", st.Pending())
		} else {
			c.io.Println("✓ Nothing to replay")
		}
	}

	return nil
}
