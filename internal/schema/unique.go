package schema

import (
	"regexp"
	"strings"
)

var (
	uniqueClauseRe = regexp.MustCompile("(?i)\\bUNIQUE\\s+(?:KEY|INDEX)\\b")
	identifierRe   = regexp.MustCompile("`((?:``|[^`])+)`")
)

// ExtractUniqueClauses returns the raw column list of every UNIQUE KEY or
// UNIQUE INDEX clause in ddl, in declaration order. Fragments without a
// well-formed column list are skipped.
func ExtractUniqueClauses(ddl string) []string {
	var lists []string
	for _, loc := range uniqueClauseRe.FindAllStringIndex(ddl, -1) {
		if list, ok := columnList(ddl, loc[1]); ok {
			lists = append(lists, list)
		}
	}
	return lists
}

// columnList reads the parenthesized list that follows the (optional) index
// name starting at pos. Nested parentheses such as prefix lengths are kept.
func columnList(ddl string, pos int) (string, bool) {
	i := pos
	for ; i < len(ddl); i++ {
		switch ddl[i] {
		case '`':
			end := strings.IndexByte(ddl[i+1:], '`')
			if end < 0 {
				return "", false
			}
			i += end + 1
			continue
		case ',', '\n':
			return "", false
		}
		if ddl[i] == '(' {
			break
		}
	}
	if i >= len(ddl) {
		return "", false
	}

	start := i + 1
	depth := 1
	for j := start; j < len(ddl); j++ {
		switch ddl[j] {
		case '`':
			end := strings.IndexByte(ddl[j+1:], '`')
			if end < 0 {
				return "", false
			}
			j += end + 1
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return ddl[start:j], true
			}
		}
	}
	return "", false
}

// ExtractIdentifiers returns the backtick-quoted identifiers of a column
// list in order.
func ExtractIdentifiers(list string) []string {
	var names []string
	for _, m := range identifierRe.FindAllStringSubmatch(list, -1) {
		names = append(names, strings.ReplaceAll(m[1], "``", "`"))
	}
	return names
}

// extractUnique appends every unique constraint of ddl whose columns can all
// be compared by equality. An empty ddl produces no groups.
func extractUnique(b *builder, ddl string) {
	if ddl == "" {
		return
	}
	for _, list := range ExtractUniqueClauses(ddl) {
		group := ExtractIdentifiers(list)
		if len(group) == 0 || hasSpatialColumn(group, b.ts.ColumnTypes) {
			continue
		}
		b.addUnique(group)
	}
}

func hasSpatialColumn(group []string, types map[string]string) bool {
	for _, name := range group {
		typ, ok := types[name]
		if ok && parseTypeDecl(typ).isSpatial() {
			return true
		}
	}
	return false
}
