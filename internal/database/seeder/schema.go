package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talent-match/internal/database"

	sqrl "github.com/Masterminds/squirrel"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// EnsureTableColumns fails when the migrated schema lacks any of the columns a
// seeder writes. Every missing column is reported at once.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return errors.New("nil db")
	}
	if strings.TrimSpace(table) == "" || len(columns) == 0 {
		return fmt.Errorf("%w: table and columns are required", ErrSchemaMismatch)
	}

	query, args, err := sqrl.Select("column_name").
		From("information_schema.columns").
		Where(sqrl.Eq{"table_schema": "public", "table_name": table, "column_name": columns}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	present := make(map[string]bool, len(columns))
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		present[c] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return missingColumns(table, columns, present)
}

func missingColumns(table string, want []string, present map[string]bool) error {
	var missing []string
	for _, c := range want {
		if !present[c] {
			missing = append(missing, table+"."+c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}
