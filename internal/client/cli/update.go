package cli

import (
	"context"
	"fmt"
)

// RunUpdate заменяет все поля записи. Незаданные поля запрашиваются,
// пустой ввод сохраняет текущее значение.
func (c *Cli) RunUpdate(ctx context.Context, id string, in Input) error {
	current, err := c.find(ctx, id)
	if err != nil {
		return err
	}

	c.io.Println("=== Update Credential ===")
	c.io.Println()

	req, err := c.readInput(in, current)
	if err != nil {
		return err
	}

	if _, err := c.client.Update(ctx, id, req); err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Credential updated successfully!")
	return nil
}
