package schema

import (
	"strconv"
	"strings"
)

// typeDecl is a column type declaration split into the parts the rules look at.
type typeDecl struct {
	raw   string
	lower string
	base  string // type name without arguments or attributes, lower case
}

func parseTypeDecl(raw string) typeDecl {
	lower := strings.ToLower(strings.TrimSpace(raw))
	base := lower
	if i := strings.IndexAny(lower, "( "); i >= 0 {
		base = lower[:i]
	}
	return typeDecl{raw: raw, lower: lower, base: base}
}

func (t typeDecl) hasPrefix(prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(t.base, p) {
			return true
		}
	}
	return false
}

func (t typeDecl) baseContains(needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(t.base, n) {
			return true
		}
	}
	return false
}

func (t typeDecl) unsigned() bool {
	return strings.Contains(t.lower, "unsigned")
}

// args returns the text of the first parenthesized argument list.
func (t typeDecl) args() string {
	start := strings.IndexByte(t.lower, '(')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(t.lower[start:], ')')
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(t.lower[start+1 : start+end])
}

func (t typeDecl) isBitFlag() bool {
	if t.base != "bit" {
		return false
	}
	a := t.args()
	return a == "" || a == "1"
}

func (t typeDecl) isEnumerated() bool {
	return t.base == "enum" || t.base == "set"
}

func (t typeDecl) isSpatial() bool {
	_, ok := spatialTypes[t.base]
	return ok
}

// length returns the declared maximum length, or DefaultLength when the
// declaration has no numeric argument.
func (t typeDecl) length() int {
	a := t.args()
	end := 0
	for end < len(a) && a[end] >= '0' && a[end] <= '9' {
		end++
	}
	if end == 0 {
		return DefaultLength
	}
	n, err := strconv.Atoi(a[:end])
	if err != nil || n <= 0 {
		return DefaultLength
	}
	return n
}

// valueList returns the raw text between the outer parentheses of an
// enum or set declaration, case preserved.
func (t typeDecl) valueList() string {
	start := strings.IndexByte(t.raw, '(')
	end := strings.LastIndexByte(t.raw, ')')
	if start < 0 || end <= start {
		return ""
	}
	return t.raw[start+1 : end]
}

var (
	integerFamily = []string{"tinyint", "smallint", "mediumint", "bigint", "int", "bit"}
	numericFamily = []string{"decimal", "float", "double"}
	stringFamily  = []string{"char", "text", "blob", "binary"}

	// Longer names first so that "int" never shadows another subtype.
	integerSubtypes = []string{"tinyint", "smallint", "mediumint", "bigint", "int"}
	numberSubtypes  = []string{"float", "double", "decimal"}

	spatialTypes = map[string]struct{}{
		"point":              {},
		"geometry":           {},
		"linestring":         {},
		"polygon":            {},
		"multipoint":         {},
		"multilinestring":    {},
		"multipolygon":       {},
		"geometrycollection": {},
	}
)

type ruleContext struct {
	autoGenerated     bool
	maximumValidation bool
}

type coarseRule struct {
	name  string
	kind  CoarseKind
	sized bool
	match func(t typeDecl, c ruleContext) bool
}

// coarseRules is evaluated top to bottom; the first match decides the kind.
var coarseRules = []coarseRule{
	{
		name:  "bit flag",
		kind:  KindBoolean,
		match: func(t typeDecl, _ ruleContext) bool { return t.isBitFlag() },
	},
	{
		name: "integer",
		kind: KindInteger,
		match: func(t typeDecl, c ruleContext) bool {
			return t.hasPrefix(integerFamily...) && !c.autoGenerated
		},
	},
	{
		name:  "numeric",
		kind:  KindNumeric,
		match: func(t typeDecl, _ ruleContext) bool { return t.hasPrefix(numericFamily...) },
	},
	{
		name:  "string",
		kind:  KindString,
		sized: true,
		match: func(t typeDecl, _ ruleContext) bool { return t.baseContains(stringFamily...) },
	},
	{
		name: "enumerated",
		kind: KindString,
		match: func(t typeDecl, c ruleContext) bool {
			return t.isEnumerated() && !c.maximumValidation
		},
	},
	{
		name:  "point",
		kind:  KindString,
		match: func(t typeDecl, _ ruleContext) bool { return t.base == "point" },
	},
}

// coarseKind returns the kind of t and, for strings, its length bucket.
func coarseKind(t typeDecl, c ruleContext) (CoarseKind, int) {
	for _, r := range coarseRules {
		if !r.match(t, c) {
			continue
		}
		if r.kind != KindString {
			return r.kind, 0
		}
		if r.sized {
			return r.kind, t.length()
		}
		return r.kind, DefaultLength
	}
	return KindOther, 0
}

type temporalRule struct {
	prefix    string
	kind      DateKind
	timeOfDay bool
}

var temporalRules = []temporalRule{
	{prefix: "datetime", kind: DateKindDatetime},
	{prefix: "timestamp", kind: DateKindTimestamp},
	{prefix: "date", kind: DateKindDate},
	{prefix: "time", timeOfDay: true},
}

func temporalKind(t typeDecl) (temporalRule, bool) {
	for _, r := range temporalRules {
		if strings.HasPrefix(t.base, r.prefix) {
			return r, true
		}
	}
	return temporalRule{}, false
}

// subtypeLabel returns the first matching prefix, suffixed with " unsigned"
// when the declaration carries the unsigned marker.
func subtypeLabel(t typeDecl, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if !strings.HasPrefix(t.base, p) {
			continue
		}
		if t.unsigned() {
			return p + " unsigned", true
		}
		return p, true
	}
	return "", false
}
