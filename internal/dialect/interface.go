package dialect

// Dialect abstracts how one database engine exposes its schema.
//
// Every engine reports columns in the shape of MySQL's DESCRIBE output so that
// a single classifier can serve all of them:
//
//	TABLE_NAME, Field, Type, Null, Key, Default, Extra, Comment
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	GetTablesQuery(schema string) string
	GetColumnsQuery(schema string) string

	// Unique constraints. Engines with SHOW CREATE TABLE return an empty
	// GetUniqueKeysQuery; the others return rows of
	// (TABLE_NAME, CONSTRAINT_NAME, COLUMN_NAME) ordered by table, constraint
	// and position, and an empty ShowCreateTableQuery.
	GetUniqueKeysQuery(schema string) string
	ShowCreateTableQuery(schema, table string) string

	// Helpers
	NormalizeType(sqlType string) string
	GetSchemaName(input string) string
}
