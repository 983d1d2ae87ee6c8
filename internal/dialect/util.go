package dialect

import (
	"fmt"
	"strings"
)

// UniqueKey is one unique constraint read from an engine without SHOW CREATE TABLE.
type UniqueKey struct {
	Name    string
	Columns []string
}

// QuoteIdent quotes an identifier with backticks, doubling embedded backticks.
func QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// RenderUniqueKeys synthesizes MySQL-style CREATE TABLE text holding only the
// unique keys of a table, so that engines without SHOW CREATE TABLE feed the
// same DDL scanner.
func RenderUniqueKeys(table string, keys []UniqueKey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", QuoteIdent(table))
	for i, k := range keys {
		cols := make([]string, len(k.Columns))
		for j, c := range k.Columns {
			cols[j] = QuoteIdent(c)
		}
		fmt.Fprintf(&b, "  UNIQUE KEY %s (%s)", QuoteIdent(k.Name), strings.Join(cols, ","))
		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(")")
	return b.String()
}

// DefaultNormalizeType is a default implementation for type normalization (lowercase).
func DefaultNormalizeType(sqlType string) string {
	return strings.ToLower(strings.TrimSpace(sqlType))
}

// DefaultGetSchemaName is a default implementation for Getting Schema Name (identity).
func DefaultGetSchemaName(input string) string {
	return input
}

// splitType separates "NUMERIC(10,2)" into "numeric" and "10,2". The base is
// lower-cased; the arguments keep their case because they may hold enum labels.
func splitType(sqlType string) (base, args string) {
	t := strings.TrimSpace(sqlType)
	start := strings.IndexByte(t, '(')
	if start < 0 {
		return strings.ToLower(t), ""
	}
	end := strings.LastIndexByte(t, ')')
	if end < start {
		return strings.ToLower(strings.TrimSpace(t[:start])), ""
	}
	return strings.ToLower(strings.TrimSpace(t[:start])), strings.TrimSpace(t[start+1 : end])
}

func withArgs(base, args string) string {
	if args == "" {
		return base
	}
	return base + "(" + args + ")"
}
