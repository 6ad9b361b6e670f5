package pg

import (
	"strings"
	"testing"
)

// El UPDATE tiene que cubrir todas las columnas que el service puede
// modificar: una columna que falte acá hace del cambio un no-op silencioso
// contra Postgres.
func TestUpdateUserSQL_CoversMutableColumns(t *testing.T) {
	for _, col := range []string{
		"email",
		"password_hash",
		"first_name",
		"last_name",
		"phone",
		"role",
		"gym_id",
		"gym_location_id",
		"updated_at",
	} {
		if !strings.Contains(updateUserSQL, col+" =") {
			t.Errorf("updateUserSQL does not set column %q", col)
		}
	}
	if !strings.Contains(updateUserSQL, "deleted_at IS NULL") {
		t.Error("updateUserSQL must not touch soft-deleted rows")
	}
}
