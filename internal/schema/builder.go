package schema

import "database/sql"

// builder accumulates category memberships while the rows of one table are
// classified. It is not safe for concurrent use.
type builder struct {
	ts TableSchema
}

func newBuilder(table string) *builder {
	return &builder{
		ts: TableSchema{
			Name:             table,
			ColumnTypes:      make(map[string]string),
			StringColumns:    make(map[int][]string),
			RangeColumns:     make(map[string][]string),
			EnumValues:       make(map[string][]string),
			DateColumns:      make(map[DateKind][]string),
			IntegerWithRange: make(map[string][]string),
			NumberWithRange:  make(map[string][]string),
			DefaultColumns:   make(map[sql.NullString][]string),
			Comments:         make(map[string]string),
		},
	}
}

func (b *builder) addColumn(name, typ string) {
	b.ts.Columns = append(b.ts.Columns, name)
	b.ts.ColumnTypes[name] = typ
}

func (b *builder) addRequired(name string) {
	b.ts.RequiredColumns = append(b.ts.RequiredColumns, name)
}

func (b *builder) addKind(name string, kind CoarseKind, length int) {
	switch kind {
	case KindBoolean:
		b.ts.BooleanColumns = append(b.ts.BooleanColumns, name)
	case KindInteger:
		b.ts.IntegerColumns = append(b.ts.IntegerColumns, name)
	case KindNumeric:
		b.ts.NumericColumns = append(b.ts.NumericColumns, name)
	case KindString:
		b.ts.StringColumns[length] = append(b.ts.StringColumns[length], name)
	default:
		b.ts.OtherColumns = append(b.ts.OtherColumns, name)
	}
}

func (b *builder) addRange(name, valueList string, values []string) {
	b.ts.RangeColumns[valueList] = append(b.ts.RangeColumns[valueList], name)
	b.ts.EnumValues[name] = values
}

func (b *builder) addDate(name string, kind DateKind) {
	b.ts.DateColumns[kind] = append(b.ts.DateColumns[kind], name)
}

func (b *builder) addTime(name string) {
	b.ts.TimeColumns = append(b.ts.TimeColumns, name)
}

func (b *builder) addIntegerRange(name, label string) {
	b.ts.IntegerWithRange[label] = append(b.ts.IntegerWithRange[label], name)
}

func (b *builder) addNumberRange(name, label string) {
	b.ts.NumberWithRange[label] = append(b.ts.NumberWithRange[label], name)
}

func (b *builder) addPositive(name string) {
	b.ts.PositiveColumns = append(b.ts.PositiveColumns, name)
}

func (b *builder) addDefault(name string, value sql.NullString) {
	b.ts.DefaultColumns[value] = append(b.ts.DefaultColumns[value], name)
}

func (b *builder) addComment(name, comment string) {
	b.ts.Comments[name] = comment
}

func (b *builder) addUnique(group []string) {
	b.ts.UniqueColumns = append(b.ts.UniqueColumns, group)
}

// finalize hands the accumulated schema over; the builder must not be used afterwards.
func (b *builder) finalize() TableSchema {
	ts := b.ts
	b.ts = TableSchema{}
	return ts
}
