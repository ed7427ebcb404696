package migrations

import "embed"

// FS holds the embedded SQL migration files, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
