package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// dialect holds the statements that differ between SQLite and PostgreSQL.
// Everything else is portable SQL with sqlx named parameters.
type dialect struct {
	name  string
	reset []string

	// missingTable reports whether err means the schema has not been migrated yet
	missingTable func(err error) bool
}

var sqliteDialect = dialect{
	name: "sqlite",
	reset: []string{
		"DELETE FROM cities",
		"DELETE FROM states",
		"DELETE FROM countries",
	},
	missingTable: func(err error) bool {
		var sqliteErr sqlite3.Error
		return errors.As(err, &sqliteErr) && strings.Contains(sqliteErr.Error(), "no such table")
	},
}

var postgresDialect = dialect{
	name: "postgres",
	reset: []string{
		"TRUNCATE cities, states, countries",
	},
	missingTable: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == "42P01" // undefined_table
	},
}
