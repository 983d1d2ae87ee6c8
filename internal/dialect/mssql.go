package dialect

import (
	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) prefers @p1, @p2 named parameters over ?

func (d *MSSQLDialect) GetTablesQuery(schema string) string {
	// Use @p1 for schema binding
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

// GetColumnsQuery rebuilds a COLUMN_TYPE-like declaration from the split
// INFORMATION_SCHEMA length and precision columns. Identity columns report
// auto_increment and MS_Description is used as the comment.
func (d *MSSQLDialect) GetColumnsQuery(schema string) string {
	return `
		SELECT
			c.TABLE_NAME,
			c.COLUMN_NAME,
			c.DATA_TYPE +
				CASE
					WHEN c.CHARACTER_MAXIMUM_LENGTH = -1 THEN ''
					WHEN c.CHARACTER_MAXIMUM_LENGTH IS NOT NULL THEN '(' + CAST(c.CHARACTER_MAXIMUM_LENGTH AS VARCHAR(10)) + ')'
					WHEN c.DATA_TYPE IN ('decimal', 'numeric') THEN '(' + CAST(c.NUMERIC_PRECISION AS VARCHAR(10)) + ',' + CAST(c.NUMERIC_SCALE AS VARCHAR(10)) + ')'
					ELSE ''
				END,
			c.IS_NULLABLE,
			CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 'PRI' ELSE '' END,
			c.COLUMN_DEFAULT,
			CASE WHEN COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'IsIdentity') = 1 THEN 'auto_increment' ELSE '' END,
			COALESCE(CAST(ep.value AS NVARCHAR(MAX)), '')
		FROM INFORMATION_SCHEMA.COLUMNS c
		LEFT JOIN (
			SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME
			FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
			JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
				ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
			WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = @p1
		) pk ON c.TABLE_NAME = pk.TABLE_NAME AND c.COLUMN_NAME = pk.COLUMN_NAME
		LEFT JOIN sys.columns sc
			ON sc.object_id = OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME)
			AND sc.name = c.COLUMN_NAME
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = sc.object_id
			AND ep.minor_id = sc.column_id
			AND ep.name = 'MS_Description'
		WHERE c.TABLE_SCHEMA = @p1
		ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION
	`
}

func (d *MSSQLDialect) GetUniqueKeysQuery(schema string) string {
	return `
		SELECT t.name, idx.name, col.name
		FROM sys.indexes idx
		JOIN sys.index_columns ic ON idx.object_id = ic.object_id AND idx.index_id = ic.index_id
		JOIN sys.columns col ON ic.object_id = col.object_id AND ic.column_id = col.column_id
		JOIN sys.tables t ON idx.object_id = t.object_id
		JOIN sys.schemas s ON t.schema_id = s.schema_id
		WHERE idx.is_unique = 1
			AND idx.is_primary_key = 0
			AND ic.is_included_column = 0
			AND s.name = @p1
		ORDER BY t.name, idx.index_id, ic.key_ordinal
	`
}

func (d *MSSQLDialect) ShowCreateTableQuery(schema, table string) string {
	return ""
}

// NormalizeType maps SQL Server types onto MySQL type names. TINYINT is
// unsigned on SQL Server.
func (d *MSSQLDialect) NormalizeType(sqlType string) string {
	base, args := splitType(sqlType)
	switch base {
	case "tinyint":
		return "tinyint unsigned"
	case "bit":
		return "bit(1)"
	case "varchar", "nvarchar":
		if args == "" {
			return "text"
		}
		return withArgs("varchar", args)
	case "char", "nchar":
		return withArgs("char", args)
	case "text", "ntext", "xml":
		return "text"
	case "decimal", "numeric":
		return withArgs("decimal", args)
	case "money":
		return "decimal(19,4)"
	case "smallmoney":
		return "decimal(10,4)"
	case "real":
		return "float"
	case "float":
		return "double"
	case "datetime", "datetime2", "smalldatetime":
		return "datetime"
	case "datetimeoffset":
		return "timestamp"
	case "varbinary":
		if args == "" {
			return "blob"
		}
		return withArgs("varbinary", args)
	case "image":
		return "blob"
	case "uniqueidentifier":
		return "char(36)"
	case "geometry", "geography":
		return "geometry"
	}
	return withArgs(base, args)
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
