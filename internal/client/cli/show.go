package cli

import (
	"context"
	"fmt"
	"text/template"
)

var credentialTmpl = template.Must(template.New("credential").Parse(credentialTemplate))

// RunShow выводит запись полностью, включая пароль
func (c *Cli) RunShow(ctx context.Context, id string) error {
	record, err := c.find(ctx, id)
	if err != nil {
		return err
	}

	if err := credentialTmpl.Execute(c.io, record); err != nil {
		return fmt.Errorf("failed to render credential: %w", err)
	}
	return nil
}
