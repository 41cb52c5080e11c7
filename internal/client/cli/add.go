package cli

import (
	"context"
	"fmt"
)

func (c *Cli) RunAdd(ctx context.Context, in Input) error {
	c.io.Println("=== Add Credential ===")
	c.io.Println()

	req, err := c.readInput(in, nil)
	if err != nil {
		return err
	}

	record, err := c.client.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Credential saved successfully!")
	c.io.Printf("ID: %s\n", record.ID)
	return nil
}
