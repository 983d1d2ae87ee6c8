package dialect

import "strings"

type PostgresDialect struct{}

func (d *PostgresDialect) GetTablesQuery(schema string) string {
	// use $1 placeholder
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = $1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

// GetColumnsQuery reads pg_catalog directly: format_type keeps the length
// modifiers that information_schema splits into separate columns, and enum
// types are rendered as MySQL-style enum('a','b') declarations.
// Serial and identity columns report auto_increment in Extra.
func (d *PostgresDialect) GetColumnsQuery(schema string) string {
	return `
SELECT
    c.relname,
    a.attname,
    CASE
        WHEN t.typtype = 'e' THEN 'enum(' || (
            SELECT string_agg(quote_literal(e.enumlabel), ',' ORDER BY e.enumsortorder)
            FROM pg_enum e WHERE e.enumtypid = t.oid) || ')'
        ELSE format_type(a.atttypid, a.atttypmod)
    END,
    CASE WHEN a.attnotnull THEN 'NO' ELSE 'YES' END,
    CASE
        WHEN EXISTS (SELECT 1 FROM pg_index i WHERE i.indrelid = c.oid AND i.indisprimary AND a.attnum = ANY(i.indkey)) THEN 'PRI'
        WHEN EXISTS (SELECT 1 FROM pg_index i WHERE i.indrelid = c.oid AND i.indisunique AND a.attnum = ANY(i.indkey)) THEN 'UNI'
        ELSE ''
    END,
    CASE
        WHEN a.attidentity <> '' OR pg_get_expr(ad.adbin, ad.adrelid) LIKE 'nextval(%' THEN NULL
        ELSE pg_get_expr(ad.adbin, ad.adrelid)
    END,
    CASE
        WHEN a.attidentity <> '' OR pg_get_expr(ad.adbin, ad.adrelid) LIKE 'nextval(%' THEN 'auto_increment'
        ELSE ''
    END,
    COALESCE(col_description(c.oid, a.attnum), '')
FROM pg_attribute a
JOIN pg_class c ON c.oid = a.attrelid
JOIN pg_namespace n ON n.oid = c.relnamespace
JOIN pg_type t ON t.oid = a.atttypid
LEFT JOIN pg_attrdef ad ON ad.adrelid = a.attrelid AND ad.adnum = a.attnum
WHERE n.nspname = $1 AND c.relkind IN ('r', 'p') AND a.attnum > 0 AND NOT a.attisdropped
ORDER BY c.relname, a.attnum`
}

func (d *PostgresDialect) GetUniqueKeysQuery(schema string) string {
	return `
SELECT tbl.relname, idx.relname, a.attname
FROM pg_index i
JOIN pg_class idx ON idx.oid = i.indexrelid
JOIN pg_class tbl ON tbl.oid = i.indrelid
JOIN pg_namespace n ON n.oid = tbl.relnamespace
CROSS JOIN LATERAL unnest(i.indkey) WITH ORDINALITY AS k(attnum, ord)
JOIN pg_attribute a ON a.attrelid = tbl.oid AND a.attnum = k.attnum
WHERE n.nspname = $1 AND i.indisunique AND NOT i.indisprimary
ORDER BY tbl.relname, i.indexrelid, k.ord`
}

func (d *PostgresDialect) ShowCreateTableQuery(schema, table string) string {
	return ""
}

// NormalizeType maps format_type output onto MySQL type names. Types with no
// MySQL counterpart, such as intervals and ranges, get names outside every
// classified family.
func (d *PostgresDialect) NormalizeType(sqlType string) string {
	if strings.HasSuffix(strings.TrimSpace(sqlType), "[]") {
		return "array"
	}
	base, args := splitType(sqlType)
	switch {
	case base == "enum":
		return strings.TrimSpace(sqlType)
	case strings.HasSuffix(base, "range"):
		// int4range, daterange, tstzmultirange, ...
		return "range"
	case strings.HasPrefix(base, "interval"):
		return "duration"
	case strings.HasPrefix(base, "timestamp"):
		return "timestamp"
	case strings.HasPrefix(base, "time"):
		return "time"
	}
	switch base {
	case "integer", "int", "int4", "serial":
		return "int"
	case "smallint", "int2", "smallserial":
		return "smallint"
	case "bigint", "int8", "bigserial":
		return "bigint"
	case "boolean", "bool":
		return "bit(1)"
	case "bit varying", "varbit":
		return withArgs("varbinary", args)
	case "character varying", "varchar":
		return withArgs("varchar", args)
	case "character", "char", "bpchar":
		return withArgs("char", args)
	case "text", "citext", "name":
		return "text"
	case "numeric", "decimal":
		return withArgs("decimal", args)
	case "real", "float4":
		return "float"
	case "double precision", "float8":
		return "double"
	case "money":
		return "decimal(19,2)"
	case "bytea":
		return "blob"
	case "uuid":
		return "char(36)"
	case "json", "jsonb":
		return "json"
	case "geometry", "geography":
		return "geometry"
	}
	return withArgs(base, args)
}

// Helper to fix schema name if needed (usually public)
func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
