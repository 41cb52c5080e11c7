package cli

import (
	"context"
	"fmt"
)

// RunStatus выводит состояние сервера
func (c *Cli) RunStatus(ctx context.Context, serverURL string) error {
	health, err := c.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("server %s is not available: %w", serverURL, err)
	}

	c.io.Printf("Server:  %s\n", serverURL)
	c.io.Printf("Status:  %s\n", health.Status)
	if health.Version != "" {
		c.io.Printf("Version: %s\n", health.Version)
	}
	return nil
}
