package schema

import "strings"

// Parse classifies the columns of one table and then extracts its unique
// constraints from the DDL text registered for the table, if any.
func Parse(table string, rows []ColumnDescriptor, ddl DDLIndex, cfg ParserConfig) TableSchema {
	b := newBuilder(table)
	for _, row := range rows {
		classifyColumn(b, row, cfg)
	}
	text, _ := ddl.Lookup(table)
	extractUnique(b, text)
	return b.finalize()
}

func classifyColumn(b *builder, col ColumnDescriptor, cfg ParserConfig) {
	t := parseTypeDecl(col.Type)
	ctx := ruleContext{
		autoGenerated:     isAutoGenerated(col.Extra),
		maximumValidation: cfg.MaximumValidation,
	}

	b.addColumn(col.Name, col.Type)

	if isRequired(col, t, ctx) {
		b.addRequired(col.Name)
	}

	kind, length := coarseKind(t, ctx)
	b.addKind(col.Name, kind, length)

	if t.isEnumerated() {
		list := t.valueList()
		b.addRange(col.Name, list, parseQuotedValues(list))
	}

	if r, ok := temporalKind(t); ok {
		if r.timeOfDay {
			b.addTime(col.Name)
		} else {
			b.addDate(col.Name, r.kind)
		}
	}

	if !ctx.autoGenerated {
		if label, ok := subtypeLabel(t, integerSubtypes); ok {
			b.addIntegerRange(col.Name, label)
		}
	}
	if label, ok := subtypeLabel(t, numberSubtypes); ok {
		b.addNumberRange(col.Name, label)
	}

	if t.unsigned() {
		b.addPositive(col.Name)
	}

	// A NOT NULL column without a literal default has no meaningful default.
	if col.Nullable || col.Default.Valid {
		b.addDefault(col.Name, col.Default)
	}

	b.addComment(col.Name, col.Comment)
}

func isAutoGenerated(extra string) bool {
	return strings.Contains(strings.ToLower(extra), "auto")
}

func isRequired(col ColumnDescriptor, t typeDecl, c ruleContext) bool {
	if col.Nullable || c.autoGenerated || col.Default.Valid {
		return false
	}
	return !t.isBitFlag() || c.maximumValidation
}

// parseQuotedValues returns the single-quoted literals of an enum or set
// value list in declaration order. Doubled quotes and backslash escapes
// inside a literal are unescaped.
func parseQuotedValues(list string) []string {
	values := make([]string, 0)
	var (
		cur    strings.Builder
		quoted bool
	)
	for i := 0; i < len(list); i++ {
		c := list[i]
		if !quoted {
			if c == '\'' {
				quoted = true
				cur.Reset()
			}
			continue
		}
		switch {
		case c == '\\' && i+1 < len(list):
			i++
			cur.WriteByte(list[i])
		case c == '\'' && i+1 < len(list) && list[i+1] == '\'':
			i++
			cur.WriteByte('\'')
		case c == '\'':
			quoted = false
			values = append(values, cur.String())
		default:
			cur.WriteByte(c)
		}
	}
	return values
}
