package source

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"crosstab/internal/matrix"
)

type sqliteSource struct {
	db   *sql.DB
	rows *sql.Rows
}

// IsSQLite reports whether path looks like a SQLite database by extension.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// OpenSQLite opens a table of a SQLite database as a record source. Values
// keep their storage class, so integer columns arrive as int64 and NULLs as
// nil. The connection is pinned and forced read-only so the input file is
// never modified.
func OpenSQLite(path string, opts Options) (matrix.RecordSource, error) {
	if opts.Table == "" {
		return nil, errors.New("sqlite input requires a table name")
	}
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}

	fields, err := tableFields(db, opts.Table)
	if err != nil {
		db.Close()
		return nil, err
	}
	ri, err := ResolveField(fields, opts.RowField)
	if err != nil {
		db.Close()
		return nil, err
	}
	ci, err := ResolveField(fields, opts.ColField)
	if err != nil {
		db.Close()
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s",
		quoteIdent(fields[ri]), quoteIdent(fields[ci]), quoteIdent(opts.Table))
	rows, err := db.Query(query)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("reading table %s: %w", opts.Table, err)
	}

	return &sqliteSource{db: db, rows: rows}, nil
}

func (s *sqliteSource) Next() (matrix.Record, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return matrix.Record{}, err
		}
		return matrix.Record{}, io.EOF
	}
	var row, col any
	if err := s.rows.Scan(&row, &col); err != nil {
		return matrix.Record{}, err
	}
	return matrix.Record{Row: row, Col: col}, nil
}

func (s *sqliteSource) Close() error {
	s.rows.Close()
	return s.db.Close()
}

// SQLiteFields returns the column names of a table.
func SQLiteFields(path, table string) ([]string, error) {
	if table == "" {
		return nil, errors.New("sqlite input requires a table name")
	}
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return tableFields(db, table)
}

// Tables lists the user tables of a SQLite database in name order.
func Tables(path string) ([]string, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// openSQLite opens an existing database read-only. The stat guards against
// the driver creating an empty database at a mistyped path, and the single
// pinned connection keeps the query_only pragma in effect for every query.
func openSQLite(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %s", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA query_only=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting query_only: %w", err)
	}
	return db, nil
}

func tableFields(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []string
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		fields = append(fields, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("table not found: %s", table)
	}
	return fields, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
