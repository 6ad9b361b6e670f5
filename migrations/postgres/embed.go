// Package migrations embebe los archivos SQL de migración.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Dir es el directorio dentro de FS donde viven las migraciones.
const Dir = "."
