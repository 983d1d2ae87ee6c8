package dialect

// MariaDBDialect reads MariaDB through the mysql driver. Since 10.2.7
// information_schema.COLUMNS reports COLUMN_DEFAULT as SQL text: a NULL
// default is the word NULL and string defaults are quoted. The columns query
// turns both back into the DESCRIBE shape.
type MariaDBDialect struct {
	MysqlDialect
}

func (d *MariaDBDialect) GetColumnsQuery(schema string) string {
	return `
SELECT
    TABLE_NAME,
    COLUMN_NAME,
    COLUMN_TYPE,
    IS_NULLABLE,
    COLUMN_KEY,
    CASE
        WHEN COLUMN_DEFAULT IS NULL OR COLUMN_DEFAULT = 'NULL' THEN NULL
        WHEN COLUMN_DEFAULT LIKE '''%''' THEN REPLACE(SUBSTRING(COLUMN_DEFAULT, 2, CHAR_LENGTH(COLUMN_DEFAULT) - 2), '''''', '''')
        ELSE COLUMN_DEFAULT
    END,
    EXTRA,
    COLUMN_COMMENT
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ?
ORDER BY TABLE_NAME, ORDINAL_POSITION`
}
