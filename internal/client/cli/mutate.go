package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/gophqueue/internal/client/sync"
)

func (c *Cli) runCreate(ctx context.Context, collection string, fields []string) error {
	attrs, err := parseAssignments(fields)
	if err != nil {
		return err
	}
	if err := c.authorize(ctx); err != nil {
		return err
	}

	result, err := c.syncService.Create(ctx, collection, attrs)
	if err != nil {
		return fmt.Errorf("create failed: %w", err)
	}

	if result.Queued {
		c.reportQueued(result)
		c.io.Printf("Client id: %s\n", result.ClientID)
		return nil
	}

	c.io.Printf("✓ Created record %s in %s\n", result.ID, collection)
	return nil
}

func (c *Cli) runUpdate(ctx context.Context, collection, id string, fields []string) error {
	attrs, err := parseAssignments(fields)
	if err != nil {
		return err
	}
	if len(attrs) == 0 {
		return fmt.Errorf("nothing to update, pass at least one key=value")
	}
	if err := c.authorize(ctx); err != nil {
		return err
	}

	result, err := c.syncService.Update(ctx, collection, id, attrs)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	if result.Queued {
		c.reportQueued(result)
		return nil
	}

	c.io.Printf("✓ Updated record %s in %s\n", id, collection)
	return nil
}

func (c *Cli) runDelete(ctx context.Context, collection, id string) error {
	if err := c.authorize(ctx); err != nil {
		return err
	}

	result, err := c.syncService.Delete(ctx, collection, id)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if result.Queued {
		c.reportQueued(result)
		return nil
	}

	c.io.Printf("✓ Deleted record %s from %s\n", id, collection)
	return nil
}

func (c *Cli) reportQueued(result *sync.MutationResult) {
	c.io.Printf("⚠️  Server unavailable, change queued: %v\n", result.Cause)
	c.io.Println("Run 'gophqueue replay <collection>' to send it later.")
}
