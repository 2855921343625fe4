package workbook

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"limeharvest/lib/survey"
)

// SqliteSink stores tables in a local sqlite database, one relation per
// table. Every write replaces whatever a previous run left behind. All
// columns are TEXT: the views are already rendered to strings.
type SqliteSink struct {
	db *sql.DB
}

func NewSqliteSink(db *sql.DB) SqliteSink {
	return SqliteSink{db: db}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s SqliteSink) WriteTable(ctx context.Context, t survey.Table) error {
	name := quoteIdent(t.Name)

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", name)); err != nil {
		return err
	}

	colDefs := make([]string, len(t.Columns))
	placeholders := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		colDefs[i] = quoteIdent(col) + " TEXT"
		placeholders[i] = "?"
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(colDefs, ", "))
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := fmt.Sprintf(
		"INSERT INTO %s VALUES (%s)",
		name, strings.Join(placeholders, ", "),
	)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]any, len(row))
		for i, cell := range row {
			args[i] = cell
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "wrote table to sqlite", "table", t.Name, "rows", len(t.Rows))
	return nil
}
