package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runReplay(ctx context.Context, collections []string) error {
	c.io.Println("=== Replay ===")

	if err := c.authorize(ctx); err != nil {
		return err
	}

	reports, err := c.syncService.Replay(ctx, collections)

	pending := 0
	for _, report := range reports {
		res := report.Result

		c.io.Println()
		c.io.Printf("Collection: %s\n", report.Collection)
		if report.Recovered > 0 {
			c.io.Printf("Recovered from storage: %d\n", report.Recovered)
		}
		c.io.Printf("Restored creations: %d\n", res.Materialized)
		c.io.Printf("Saved:              %d\n", res.Saved)
		c.io.Printf("Destroyed:          %d\n", res.Destroyed)
		if res.Failed() > 0 {
			c.io.Printf("Failed:             %d\n", res.Failed())
			for _, e := range res.Errors {
				c.io.Printf("  - %v\n", e)
			}
		}
		c.io.Printf("Duration:           %s\n", res.Duration)

		pending += res.Failed()
	}

	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	c.io.Println()
	if pending > 0 {
		return fmt.Errorf("%d operation(s) still pending, run replay again later", pending)
	}

	c.io.Println("✓ All queued changes were sent to the server.")
	return nil
}
