package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

const maskedPassword = "********"

// RunList выводит записи таблицей. Пароли скрыты, если не задан showPasswords.
func (c *Cli) RunList(ctx context.Context, showPasswords bool) error {
	records, err := c.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list credentials: %w", err)
	}

	c.io.Println("=== Saved Credentials ===")
	c.io.Println()

	if len(records) == 0 {
		c.io.Println("No credentials found.")
		c.io.Println()
		c.io.Println("Use 'passkeeper add' to add a credential.")
		return nil
	}

	tw := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWEBSITE\tUSERNAME\tPASSWORD\tUPDATED")
	for _, r := range records {
		password := maskedPassword
		if showPasswords {
			password = r.Password
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Website, r.Username, password, r.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	c.io.Println()
	c.io.Printf("Total: %d credential(s)\n", len(records))
	return nil
}
