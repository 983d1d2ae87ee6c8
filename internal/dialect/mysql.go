package dialect

import (
	"fmt"
	"strings"
)

type MysqlDialect struct{}

func (d *MysqlDialect) GetTablesQuery(schema string) string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

// GetColumnsQuery returns the information_schema equivalent of SHOW FULL COLUMNS.
func (d *MysqlDialect) GetColumnsQuery(schema string) string {
	return `SELECT TABLE_NAME, COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_KEY, COLUMN_DEFAULT, EXTRA, COLUMN_COMMENT FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

// GetUniqueKeysQuery is empty: unique keys are read from SHOW CREATE TABLE.
func (d *MysqlDialect) GetUniqueKeysQuery(schema string) string {
	return ""
}

func (d *MysqlDialect) ShowCreateTableQuery(schema, table string) string {
	if schema == "" {
		return fmt.Sprintf("SHOW CREATE TABLE %s", QuoteIdent(table))
	}
	return fmt.Sprintf("SHOW CREATE TABLE %s.%s", QuoteIdent(schema), QuoteIdent(table))
}

// NormalizeType keeps COLUMN_TYPE as reported; it already is the classifier's vocabulary.
func (d *MysqlDialect) NormalizeType(sqlType string) string {
	return strings.TrimSpace(sqlType)
}

func (d *MysqlDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}
