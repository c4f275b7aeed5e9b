package execute

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// SchemaText describes every user table as "table: col, col, ..." lines
// for the translator prompt. sqlite is introspected through
// sqlite_master and PRAGMA table_info; postgres and duckdb through
// information_schema.
func (l *Local) SchemaText(ctx context.Context) (string, error) {
	if strings.EqualFold(supportedDrivers[strings.ToLower(l.Driver)], "sqlite3") || l.Driver == "" {
		return l.sqliteSchemaText(ctx)
	}
	return l.informationSchemaText(ctx)
}

func (l *Local) sqliteSchemaText(ctx context.Context) (string, error) {
	rows, err := l.DB.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate tables: %w", err)
	}

	lines := make([]string, 0, len(tables))
	for _, table := range tables {
		columnRows, err := l.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
		if err != nil {
			return "", fmt.Errorf("describe table %s: %w", table, err)
		}
		var columns []string
		for columnRows.Next() {
			var (
				cid        int
				name       string
				columnType string
				notNull    int
				defaultVal any
				primaryKey int
			)
			if err := columnRows.Scan(&cid, &name, &columnType, &notNull, &defaultVal, &primaryKey); err != nil {
				_ = columnRows.Close()
				return "", fmt.Errorf("scan column of %s: %w", table, err)
			}
			columns = append(columns, name)
		}
		if err := columnRows.Err(); err != nil {
			_ = columnRows.Close()
			return "", fmt.Errorf("iterate columns of %s: %w", table, err)
		}
		_ = columnRows.Close()
		lines = append(lines, table+": "+strings.Join(columns, ", "))
	}
	return strings.Join(lines, "\n"), nil
}

func (l *Local) informationSchemaText(ctx context.Context) (string, error) {
	rows, err := l.DB.QueryContext(ctx, `
		SELECT table_name, column_name
		FROM information_schema.columns
		WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY table_name, ordinal_position`)
	if err != nil {
		return "", fmt.Errorf("list columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byTable := map[string][]string{}
	var order []string
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return "", fmt.Errorf("scan column: %w", err)
		}
		if _, seen := byTable[table]; !seen {
			order = append(order, table)
		}
		byTable[table] = append(byTable[table], column)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate columns: %w", err)
	}

	sort.Strings(order)
	lines := make([]string, 0, len(order))
	for _, table := range order {
		lines = append(lines, table+": "+strings.Join(byTable[table], ", "))
	}
	return strings.Join(lines, "\n"), nil
}

func quoteIdent(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
