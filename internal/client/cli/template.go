package cli

const credentialTemplate = `
=== Credential Details ===

ID:       {{.ID}}
Website:  {{.Website}}
Username: {{.Username}}
Password: {{.Password}}
Created:  {{.CreatedAt.Local.Format "2006-01-02 15:04:05"}}
Updated:  {{.UpdatedAt.Local.Format "2006-01-02 15:04:05"}}
`
