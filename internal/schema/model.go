package schema

import "database/sql"

// DefaultLength buckets string columns whose type carries no explicit length.
const DefaultLength = -1

type DateKind string

const (
	DateKindDatetime  DateKind = "datetime"
	DateKindTimestamp DateKind = "timestamp"
	DateKindDate      DateKind = "date"
)

type CoarseKind string

const (
	KindBoolean CoarseKind = "boolean"
	KindInteger CoarseKind = "integer"
	KindNumeric CoarseKind = "numeric"
	KindString  CoarseKind = "string"
	KindOther   CoarseKind = "other"
)

// ColumnDescriptor is one row of DESCRIBE output.
type ColumnDescriptor struct {
	Name     string
	Type     string // e.g. "int(11) unsigned"
	Nullable bool
	Key      string         // PRI, UNI, MUL or empty
	Default  sql.NullString // Valid=false is the NULL marker
	Extra    string         // e.g. "auto_increment"
	Comment  string
}

type ParserConfig struct {
	// MaximumValidation makes bit(1) columns eligible for required and
	// moves enum/set columns out of the plain string bucket.
	MaximumValidation bool `mapstructure:"maximum_validation"`
}

// DDLIndex maps a table name to its SHOW CREATE TABLE text. Parsers only read it.
type DDLIndex map[string]string

func (x DDLIndex) Lookup(table string) (string, bool) {
	ddl, ok := x[table]
	return ddl, ok
}

// TableSchema groups the columns of one table by validation category.
// Column sets are kept in declared column order. A TableSchema returned by
// Parse must be treated as read-only.
type TableSchema struct {
	Name        string
	Columns     []string
	ColumnTypes map[string]string

	RequiredColumns []string

	BooleanColumns []string
	IntegerColumns []string
	NumericColumns []string
	StringColumns  map[int][]string
	OtherColumns   []string

	RangeColumns map[string][]string
	EnumValues   map[string][]string

	DateColumns map[DateKind][]string
	TimeColumns []string

	IntegerWithRange map[string][]string
	NumberWithRange  map[string][]string
	PositiveColumns  []string

	DefaultColumns map[sql.NullString][]string
	Comments       map[string]string

	UniqueColumns [][]string
}

// KindOf reports the coarse kind the column was classified into.
func (ts *TableSchema) KindOf(column string) (CoarseKind, bool) {
	switch {
	case contains(ts.BooleanColumns, column):
		return KindBoolean, true
	case contains(ts.IntegerColumns, column):
		return KindInteger, true
	case contains(ts.NumericColumns, column):
		return KindNumeric, true
	case contains(ts.OtherColumns, column):
		return KindOther, true
	}
	if _, ok := ts.StringLength(column); ok {
		return KindString, true
	}
	return "", false
}

// StringLength returns the length bucket of a string column.
func (ts *TableSchema) StringLength(column string) (int, bool) {
	for length, names := range ts.StringColumns {
		if contains(names, column) {
			return length, true
		}
	}
	return 0, false
}

// IsRequired reports whether the caller must always supply a value for column.
func (ts *TableSchema) IsRequired(column string) bool {
	return contains(ts.RequiredColumns, column)
}

func (ts *TableSchema) IsPositive(column string) bool {
	return contains(ts.PositiveColumns, column)
}

// DateKindOf returns the temporal subkind of a date column.
func (ts *TableSchema) DateKindOf(column string) (DateKind, bool) {
	for kind, names := range ts.DateColumns {
		if contains(names, column) {
			return kind, true
		}
	}
	return "", false
}

func (ts *TableSchema) IsTime(column string) bool {
	return contains(ts.TimeColumns, column)
}

// IntegerLabel returns the integer subtype label of column, e.g. "int unsigned".
func (ts *TableSchema) IntegerLabel(column string) (string, bool) {
	return labelOf(ts.IntegerWithRange, column)
}

func (ts *TableSchema) NumberLabel(column string) (string, bool) {
	return labelOf(ts.NumberWithRange, column)
}

func labelOf(groups map[string][]string, column string) (string, bool) {
	for label, names := range groups {
		if contains(names, column) {
			return label, true
		}
	}
	return "", false
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
