package cli

import (
	"context"
	"fmt"
	"strings"
)

// RunDelete удаляет запись после подтверждения (force пропускает вопрос)
func (c *Cli) RunDelete(ctx context.Context, id string, force bool) error {
	if !force {
		// Показываем информацию о записи, которая будет удалена
		cred, err := c.find(ctx, id)
		if err != nil {
			return err
		}

		c.io.Println("About to delete:")
		c.io.Printf("  Website:  %s\n", cred.Website)
		c.io.Printf("  Username: %s\n", cred.Username)
		c.io.Println()

		confirm, err := c.io.ReadInput("Are you sure you want to delete this credential? (yes/no): ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}

		confirm = strings.ToLower(strings.TrimSpace(confirm))
		if confirm != "yes" && confirm != "y" {
			c.io.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := c.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	c.io.Println("✓ Credential deleted successfully!")
	return nil
}
