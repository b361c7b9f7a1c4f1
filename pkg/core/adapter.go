package core

import "database/sql"

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string            `koanf:"type"`
	Path     string            `koanf:"path"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	Username string            `koanf:"username"`
	Password string            `koanf:"password"`
	Schema   string            `koanf:"schema"`
	Options  map[string]string `koanf:"options"`
}

// Column represents a column in a database table.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
	Position   int
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}
