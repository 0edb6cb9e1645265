package store

import (
	"fmt"
	"strings"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	MemoryPath = ":memory:"
)

type Config struct {
	Driver string
	// Path is the SQLite database file. MemoryPath opens a private in-memory database.
	Path string

	User     string
	Host     string
	Port     string
	Password string
	Database string

	Debug bool
}

func (c Config) driver() string {
	if c.Driver == "" {
		return DriverSQLite
	}
	return strings.ToLower(c.Driver)
}

// sqliteDSN enables foreign keys on the connection so that deleting a
// customer cascades to its transactions.
func sqliteDSN(path string) string {
	if path == "" {
		path = MemoryPath
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

func postgresDSN(c Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", c.Host, c.User, c.Password, c.Database, c.Port)
}
