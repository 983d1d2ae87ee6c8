package dialect

import (
	"errors"
	"fmt"
)

var ErrUnsupportedDriver = errors.New("unsupported driver")

// GetDialect returns the Dialect implementation for a database/sql driver name.
func GetDialect(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return &MysqlDialect{}, nil
	case "mariadb":
		return &MariaDBDialect{}, nil
	case "postgres":
		return &PostgresDialect{}, nil
	case "sqlserver", "mssql":
		return &MSSQLDialect{}, nil
	case "oracle":
		return &OracleDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// SQLDriverName returns the database/sql driver registered for a dialect name.
func SQLDriverName(name string) string {
	if name == "mariadb" {
		return "mysql"
	}
	return name
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*MariaDBDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
