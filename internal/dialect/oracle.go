package dialect

import (
	"strconv"
	"strings"

	_ "github.com/sijms/go-ora/v2" // Oracle Driver
)

type OracleDialect struct{}

func (d *OracleDialect) GetTablesQuery(schema string) string {
	// USER_TABLES lists tables owned by the current user.
	// We include a dummy clause to consume the schema argument if passed by standard callers.
	return `SELECT TABLE_NAME FROM USER_TABLES WHERE :1 IS NOT NULL ORDER BY TABLE_NAME`
}

// GetColumnsQuery rebuilds a declaration such as NUMBER(10,2) or VARCHAR2(40)
// from USER_TAB_COLUMNS and reports identity columns as auto_increment.
func (d *OracleDialect) GetColumnsQuery(schema string) string {
	return `
SELECT
    t.TABLE_NAME,
    t.COLUMN_NAME,
    CASE
        WHEN t.DATA_TYPE = 'NUMBER' AND t.DATA_PRECISION IS NOT NULL
            THEN 'NUMBER(' || t.DATA_PRECISION || ',' || NVL(t.DATA_SCALE, 0) || ')'
        WHEN t.DATA_TYPE = 'RAW' THEN 'RAW(' || t.DATA_LENGTH || ')'
        WHEN t.CHAR_LENGTH > 0 THEN t.DATA_TYPE || '(' || t.CHAR_LENGTH || ')'
        ELSE t.DATA_TYPE
    END,
    CASE WHEN t.NULLABLE = 'N' THEN 'NO' ELSE 'YES' END,
    CASE WHEN p.CONSTRAINT_NAME IS NOT NULL THEN 'PRI' ELSE '' END,
    t.DATA_DEFAULT,
    CASE WHEN t.IDENTITY_COLUMN = 'YES' THEN 'auto_increment' ELSE '' END,
    NVL(c.COMMENTS, '')
FROM USER_TAB_COLUMNS t
LEFT JOIN (
    SELECT cc.TABLE_NAME, cc.COLUMN_NAME, cc.CONSTRAINT_NAME
    FROM USER_CONS_COLUMNS cc
    JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
    WHERE uc.CONSTRAINT_TYPE = 'P'
) p ON t.TABLE_NAME = p.TABLE_NAME AND t.COLUMN_NAME = p.COLUMN_NAME
LEFT JOIN USER_COL_COMMENTS c ON t.TABLE_NAME = c.TABLE_NAME AND t.COLUMN_NAME = c.COLUMN_NAME
WHERE :1 IS NOT NULL
ORDER BY t.TABLE_NAME, t.COLUMN_ID`
}

func (d *OracleDialect) GetUniqueKeysQuery(schema string) string {
	return `
SELECT cc.TABLE_NAME, cc.CONSTRAINT_NAME, cc.COLUMN_NAME
FROM USER_CONS_COLUMNS cc
JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
WHERE uc.CONSTRAINT_TYPE = 'U' AND :1 IS NOT NULL
ORDER BY cc.TABLE_NAME, cc.CONSTRAINT_NAME, cc.POSITION`
}

func (d *OracleDialect) ShowCreateTableQuery(schema, table string) string {
	return ""
}

// NormalizeType maps Oracle types onto MySQL type names. NUMBER(p,0) becomes
// the narrowest integer type that holds p digits.
func (d *OracleDialect) NormalizeType(sqlType string) string {
	base, args := splitType(sqlType)
	switch {
	case strings.HasPrefix(base, "timestamp"):
		return "timestamp"
	case strings.HasPrefix(base, "interval"):
		return "duration"
	}
	switch base {
	case "number":
		return normalizeOracleNumber(args)
	case "varchar2", "nvarchar2", "varchar":
		return withArgs("varchar", args)
	case "char", "nchar":
		return withArgs("char", args)
	case "clob", "nclob", "long":
		return "text"
	case "blob", "long raw", "bfile":
		return "blob"
	case "raw":
		return withArgs("varbinary", args)
	case "date":
		return "datetime"
	case "float", "binary_double":
		return "double"
	case "binary_float":
		return "float"
	case "sdo_geometry":
		return "geometry"
	}
	return withArgs(base, args)
}

func normalizeOracleNumber(args string) string {
	if args == "" {
		return "decimal"
	}
	precision, scale := args, "0"
	if i := strings.IndexByte(args, ','); i >= 0 {
		precision, scale = strings.TrimSpace(args[:i]), strings.TrimSpace(args[i+1:])
	}
	p, err := strconv.Atoi(precision)
	if err != nil {
		return withArgs("decimal", args)
	}
	if scale != "0" {
		return withArgs("decimal", precision+","+scale)
	}
	switch {
	case p <= 2:
		return "tinyint"
	case p <= 4:
		return "smallint"
	case p <= 9:
		return "int"
	case p <= 18:
		return "bigint"
	}
	return withArgs("decimal", precision+",0")
}

func (d *OracleDialect) GetSchemaName(input string) string {
	if input == "" {
		return "USER"
	}
	return strings.ToUpper(input)
}
