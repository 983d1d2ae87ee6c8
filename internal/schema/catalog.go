package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrUnknownTable    = errors.New("unknown table")
)

// Catalog holds the introspection output for a batch of tables: the DESCRIBE
// rows of every table and the DDL index. It is filled before parsing starts
// and only read while tables are parsed.
type Catalog struct {
	tables  []string
	columns map[string][]ColumnDescriptor
	seen    map[string]map[string]struct{}
	ddl     DDLIndex
}

func NewCatalog() *Catalog {
	return &Catalog{
		columns: make(map[string][]ColumnDescriptor),
		seen:    make(map[string]map[string]struct{}),
		ddl:     make(DDLIndex),
	}
}

// AddTable registers a table. Registering the same table twice is a no-op.
func (c *Catalog) AddTable(name string) {
	if _, ok := c.seen[name]; ok {
		return
	}
	c.tables = append(c.tables, name)
	c.seen[name] = make(map[string]struct{})
}

// AddColumn appends a DESCRIBE row to a registered table.
func (c *Catalog) AddColumn(table string, col ColumnDescriptor) error {
	names, ok := c.seen[table]
	if !ok {
		return fmt.Errorf("add column %s: %w: %s", col.Name, ErrUnknownTable, table)
	}
	if _, dup := names[col.Name]; dup {
		return fmt.Errorf("table %s: %w: %s", table, ErrDuplicateColumn, col.Name)
	}
	names[col.Name] = struct{}{}
	c.columns[table] = append(c.columns[table], col)
	return nil
}

// SetDDL stores the CREATE TABLE text of a registered table.
func (c *Catalog) SetDDL(table, ddl string) error {
	if _, ok := c.seen[table]; !ok {
		return fmt.Errorf("set ddl: %w: %s", ErrUnknownTable, table)
	}
	c.ddl[table] = ddl
	return nil
}

func (c *Catalog) Tables() []string {
	return c.tables
}

func (c *Catalog) Columns(table string) []ColumnDescriptor {
	return c.columns[table]
}

func (c *Catalog) DDL() DDLIndex {
	return c.ddl
}

// Filter returns a catalog restricted to the named tables. Names match
// case-insensitively; the catalog's own order is kept.
func (c *Catalog) Filter(names []string) (*Catalog, error) {
	if len(names) == 0 {
		return c, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(n)] = true
	}

	out := NewCatalog()
	for _, t := range c.tables {
		if !want[strings.ToLower(t)] {
			continue
		}
		out.AddTable(t)
		out.columns[t] = c.columns[t]
		out.seen[t] = c.seen[t]
		if ddl, ok := c.ddl[t]; ok {
			out.ddl[t] = ddl
		}
	}
	if len(out.tables) == 0 {
		return nil, fmt.Errorf("no matching tables found for inputs %v: %w", names, ErrUnknownTable)
	}
	return out, nil
}

// ParseTable classifies one registered table.
func (c *Catalog) ParseTable(table string, cfg ParserConfig) (TableSchema, error) {
	if _, ok := c.seen[table]; !ok {
		return TableSchema{}, fmt.Errorf("parse: %w: %s", ErrUnknownTable, table)
	}
	return Parse(table, c.columns[table], c.ddl, cfg), nil
}

// ParseAll classifies every registered table using up to workers goroutines.
// Results keep the registration order. onProgress, if set, is called once per
// finished table and must be safe for concurrent use.
func (c *Catalog) ParseAll(ctx context.Context, cfg ParserConfig, workers int, onProgress func()) ([]TableSchema, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]TableSchema, len(c.tables))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, table := range c.tables {
		i, table := i, table
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ts, err := c.ParseTable(table, cfg)
			if err != nil {
				return err
			}
			out[i] = ts
			if onProgress != nil {
				onProgress()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	return out, nil
}
