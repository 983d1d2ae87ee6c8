package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"schema-rules/internal/dialect"
)

// Analyze reads the DESCRIBE rows and DDL text of every base table in
// schemaName and registers them in a new Catalog.
func Analyze(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName string) (*Catalog, error) {
	// [Interface-First]: Delegate schema resolution to the dialect
	target := d.GetSchemaName(schemaName)
	cat := NewCatalog()

	// Normalized keys for case-insensitive matching (Oracle support)
	byKey := make(map[string]string)

	// --- Step 1: Fetch Tables ---
	rows, err := db.QueryContext(ctx, d.GetTablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		cat.AddTable(name)
		byKey[strings.ToUpper(name)] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	// --- Step 2: Fetch Columns ---
	if err := loadColumns(ctx, db, d, target, cat, byKey); err != nil {
		return nil, err
	}

	// --- Step 3: Fetch DDL ---
	if d.GetUniqueKeysQuery(target) != "" {
		err = loadUniqueKeys(ctx, db, d, target, cat, byKey)
	} else {
		err = loadCreateTables(ctx, db, d, target, cat)
	}
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().
		Str("Schema", target).
		Int("Tables", len(cat.Tables())).
		Msg("schema introspected")
	return cat, nil
}

func loadColumns(ctx context.Context, db *sql.DB, d dialect.Dialect, target string, cat *Catalog, byKey map[string]string) error {
	rows, err := db.QueryContext(ctx, d.GetColumnsQuery(target), target)
	if err != nil {
		return fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tName, cName, cType, isNull, cKey, def, extra, comment sql.NullString
		if err := rows.Scan(&tName, &cName, &cType, &isNull, &cKey, &def, &extra, &comment); err != nil {
			return fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue
		}
		table, ok := byKey[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}
		col := ColumnDescriptor{
			Name:     cName.String,
			Type:     d.NormalizeType(cType.String),
			Nullable: strings.EqualFold(isNull.String, "YES"),
			Key:      cKey.String,
			Default:  def,
			Extra:    extra.String,
			Comment:  comment.String,
		}
		if err := cat.AddColumn(table, col); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating columns: %w", err)
	}
	return nil
}

func loadCreateTables(ctx context.Context, db *sql.DB, d dialect.Dialect, target string, cat *Catalog) error {
	for _, table := range cat.Tables() {
		var name, ddl string
		if err := db.QueryRowContext(ctx, d.ShowCreateTableQuery(target, table)).Scan(&name, &ddl); err != nil {
			return fmt.Errorf("show create table %s: %w", table, err)
		}
		if err := cat.SetDDL(table, ddl); err != nil {
			return err
		}
		log.Ctx(ctx).Debug().Str("Table", table).Msg("ddl loaded")
	}
	return nil
}

// loadUniqueKeys synthesizes DDL text for engines without SHOW CREATE TABLE.
func loadUniqueKeys(ctx context.Context, db *sql.DB, d dialect.Dialect, target string, cat *Catalog, byKey map[string]string) error {
	rows, err := db.QueryContext(ctx, d.GetUniqueKeysQuery(target), target)
	if err != nil {
		return fmt.Errorf("failed to query unique keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string][]dialect.UniqueKey)
	for rows.Next() {
		var tName, kName, cName string
		if err := rows.Scan(&tName, &kName, &cName); err != nil {
			return fmt.Errorf("failed to scan unique key: %w", err)
		}
		table, ok := byKey[strings.ToUpper(tName)]
		if !ok {
			continue
		}
		tk := keys[table]
		if n := len(tk); n > 0 && tk[n-1].Name == kName {
			tk[n-1].Columns = append(tk[n-1].Columns, cName)
		} else {
			tk = append(tk, dialect.UniqueKey{Name: kName, Columns: []string{cName}})
		}
		keys[table] = tk
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating unique keys: %w", err)
	}

	for table, tk := range keys {
		if err := cat.SetDDL(table, dialect.RenderUniqueKeys(table, tk)); err != nil {
			return err
		}
	}
	return nil
}
