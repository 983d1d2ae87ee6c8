package schema

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func def(v string) sql.NullString { return sql.NullString{String: v, Valid: true} }

var nullDefault = sql.NullString{}

func col(name, typ string) ColumnDescriptor {
	return ColumnDescriptor{Name: name, Type: typ}
}

func usersRows() []ColumnDescriptor {
	return []ColumnDescriptor{
		{Name: "id", Type: "int(10) unsigned", Key: "PRI", Extra: "auto_increment", Comment: "pk"},
		{Name: "email", Type: "varchar(255)", Key: "UNI"},
		{Name: "nickname", Type: "varchar(32)", Nullable: true, Default: nullDefault},
		{Name: "age", Type: "tinyint(3) unsigned", Default: def("0")},
		{Name: "balance", Type: "decimal(10,2)", Nullable: true},
		{Name: "ratio", Type: "double unsigned"},
		{Name: "status", Type: "enum('a','b','c')", Default: def("a")},
		{Name: "active", Type: "bit(1)", Default: def("b'1'")},
		{Name: "flags", Type: "bit(8)"},
		{Name: "bio", Type: "text", Nullable: true},
		{Name: "created_at", Type: "datetime"},
		{Name: "updated_at", Type: "timestamp", Nullable: true},
		{Name: "birthday", Type: "date", Nullable: true},
		{Name: "alarm", Type: "time"},
		{Name: "location", Type: "point"},
		{Name: "meta", Type: "json", Nullable: true},
	}
}

func TestParse_Users(t *testing.T) {
	ts := Parse("users", usersRows(), DDLIndex{}, ParserConfig{})

	assert.Equal(t, "users", ts.Name)
	assert.Equal(t, []string{"email", "ratio", "flags", "created_at", "alarm", "location"}, ts.RequiredColumns)

	assert.Equal(t, []string{"active"}, ts.BooleanColumns)
	assert.Equal(t, []string{"age", "flags"}, ts.IntegerColumns)
	assert.Equal(t, []string{"balance", "ratio"}, ts.NumericColumns)
	assert.Equal(t, map[int][]string{
		255:           {"email"},
		32:            {"nickname"},
		DefaultLength: {"status", "bio", "location"},
	}, ts.StringColumns)
	assert.Equal(t, []string{"id", "created_at", "updated_at", "birthday", "alarm", "meta"}, ts.OtherColumns)

	assert.Equal(t, map[string][]string{"'a','b','c'": {"status"}}, ts.RangeColumns)
	assert.Equal(t, map[string][]string{"status": {"a", "b", "c"}}, ts.EnumValues)

	assert.Equal(t, map[DateKind][]string{
		DateKindDatetime:  {"created_at"},
		DateKindTimestamp: {"updated_at"},
		DateKindDate:      {"birthday"},
	}, ts.DateColumns)
	assert.Equal(t, []string{"alarm"}, ts.TimeColumns)

	assert.Equal(t, map[string][]string{"tinyint unsigned": {"age"}}, ts.IntegerWithRange)
	assert.Equal(t, map[string][]string{
		"decimal":         {"balance"},
		"double unsigned": {"ratio"},
	}, ts.NumberWithRange)
	assert.Equal(t, []string{"id", "age", "ratio"}, ts.PositiveColumns)

	assert.Equal(t, map[sql.NullString][]string{
		nullDefault: {"nickname", "balance", "bio", "updated_at", "birthday", "meta"},
		def("0"):    {"age"},
		def("a"):    {"status"},
		def("b'1'"): {"active"},
	}, ts.DefaultColumns)

	assert.Len(t, ts.Comments, len(usersRows()))
	assert.Equal(t, "pk", ts.Comments["id"])
	assert.Empty(t, ts.UniqueColumns)
}

func TestParse_CoarseKindsPartitionColumns(t *testing.T) {
	for _, cfg := range []ParserConfig{{}, {MaximumValidation: true}} {
		ts := Parse("users", usersRows(), DDLIndex{}, cfg)

		seen := make(map[string]int)
		for _, group := range [][]string{ts.BooleanColumns, ts.IntegerColumns, ts.NumericColumns, ts.OtherColumns} {
			for _, c := range group {
				seen[c]++
			}
		}
		for _, group := range ts.StringColumns {
			for _, c := range group {
				seen[c]++
			}
		}

		for _, row := range usersRows() {
			assert.Equal(t, 1, seen[row.Name], "column %s with %+v", row.Name, cfg)
		}
		assert.Len(t, seen, len(usersRows()))
	}
}

func TestParse_PositiveMatchesUnsignedMarker(t *testing.T) {
	ts := Parse("users", usersRows(), DDLIndex{}, ParserConfig{})
	for _, row := range usersRows() {
		assert.Equal(t, strings.Contains(row.Type, "unsigned"), ts.IsPositive(row.Name), row.Name)
	}
}

func TestParse_RequiredRule(t *testing.T) {
	tests := []struct {
		name string
		row  ColumnDescriptor
		cfg  ParserConfig
		want bool
	}{
		{"not null without default", col("a", "int"), ParserConfig{}, true},
		{"nullable", ColumnDescriptor{Name: "a", Type: "int", Nullable: true}, ParserConfig{}, false},
		{"literal default", ColumnDescriptor{Name: "a", Type: "int", Default: def("1")}, ParserConfig{}, false},
		{"empty literal default", ColumnDescriptor{Name: "a", Type: "varchar(3)", Default: def("")}, ParserConfig{}, false},
		{"auto increment", ColumnDescriptor{Name: "a", Type: "int", Extra: "auto_increment"}, ParserConfig{}, false},
		{"bit flag lenient", col("a", "bit(1)"), ParserConfig{}, false},
		{"bit flag strict", col("a", "bit(1)"), ParserConfig{MaximumValidation: true}, true},
		{"wide bit lenient", col("a", "bit(8)"), ParserConfig{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := Parse("t", []ColumnDescriptor{tt.row}, nil, tt.cfg)
			assert.Equal(t, tt.want, ts.IsRequired("a"))
		})
	}
}

func TestParse_MaximumValidation(t *testing.T) {
	rows := []ColumnDescriptor{
		col("kind", "enum('x','y')"),
		col("tags", "set('p','q')"),
		col("flag", "bit(1)"),
	}

	lenient := Parse("t", rows, nil, ParserConfig{})
	assert.Equal(t, map[int][]string{DefaultLength: {"kind", "tags"}}, lenient.StringColumns)
	assert.Equal(t, []string{"flag"}, lenient.BooleanColumns)
	assert.Equal(t, []string{"kind", "tags"}, lenient.RequiredColumns)

	strict := Parse("t", rows, nil, ParserConfig{MaximumValidation: true})
	assert.Empty(t, strict.StringColumns)
	assert.Equal(t, []string{"kind", "tags"}, strict.OtherColumns)
	assert.Equal(t, []string{"flag"}, strict.BooleanColumns)
	assert.Equal(t, []string{"kind", "tags", "flag"}, strict.RequiredColumns)

	// Range membership does not depend on the mode.
	assert.Equal(t, lenient.RangeColumns, strict.RangeColumns)
	assert.Equal(t, []string{"x", "y"}, strict.EnumValues["kind"])
}

func TestParse_TinyintOneUnsigned(t *testing.T) {
	ts := Parse("t", []ColumnDescriptor{col("a", "tinyint(1) unsigned")}, nil, ParserConfig{})

	assert.Equal(t, []string{"a"}, ts.IntegerColumns)
	assert.Empty(t, ts.BooleanColumns)
	label, ok := ts.IntegerLabel("a")
	require.True(t, ok)
	assert.Equal(t, "tinyint unsigned", label)
	assert.True(t, ts.IsPositive("a"))
}

func TestParse_SubtypeLabels(t *testing.T) {
	tests := []struct {
		typ     string
		integer string
		number  string
	}{
		{"tinyint(4)", "tinyint", ""},
		{"smallint(6) unsigned", "smallint unsigned", ""},
		{"mediumint(9)", "mediumint", ""},
		{"int(11)", "int", ""},
		{"bigint(20) unsigned", "bigint unsigned", ""},
		{"BIGINT(20)", "bigint", ""},
		{"float", "", "float"},
		{"float(7,4) unsigned", "", "float unsigned"},
		{"double", "", "double"},
		{"decimal(65,30)", "", "decimal"},
		{"bit(8)", "", ""},
		{"varchar(10)", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			ts := Parse("t", []ColumnDescriptor{col("a", tt.typ)}, nil, ParserConfig{})

			label, ok := ts.IntegerLabel("a")
			assert.Equal(t, tt.integer != "", ok)
			assert.Equal(t, tt.integer, label)

			label, ok = ts.NumberLabel("a")
			assert.Equal(t, tt.number != "", ok)
			assert.Equal(t, tt.number, label)
		})
	}
}

func TestParse_AutoIncrementSkipsIntegerBuckets(t *testing.T) {
	ts := Parse("t", []ColumnDescriptor{
		{Name: "id", Type: "bigint(20) unsigned", Extra: "auto_increment"},
	}, nil, ParserConfig{})

	assert.Empty(t, ts.IntegerColumns)
	assert.Empty(t, ts.IntegerWithRange)
	assert.Empty(t, ts.RequiredColumns)
	assert.Equal(t, []string{"id"}, ts.OtherColumns)
	assert.Equal(t, []string{"id"}, ts.PositiveColumns)
}

func TestParse_StringLengths(t *testing.T) {
	rows := []ColumnDescriptor{
		col("a", "varchar(100)"),
		col("b", "char(2)"),
		col("c", "VARBINARY(16)"),
		col("d", "longtext"),
		col("e", "mediumblob"),
		col("f", "varchar(100)"),
		col("g", "char(0)"),
	}
	ts := Parse("t", rows, nil, ParserConfig{})

	assert.Equal(t, map[int][]string{
		100:           {"a", "f"},
		2:             {"b"},
		16:            {"c"},
		DefaultLength: {"d", "e", "g"},
	}, ts.StringColumns)
}

func TestParse_EnumValueEscapes(t *testing.T) {
	ts := Parse("t", []ColumnDescriptor{
		col("a", `enum('it''s','a,b','back\\slash','Mixed Case')`),
		col("b", "enum('x','y')"),
		col("c", "enum('x','y')"),
	}, nil, ParserConfig{})

	assert.Equal(t, []string{"it's", "a,b", `back\slash`, "Mixed Case"}, ts.EnumValues["a"])
	assert.Equal(t, []string{"b", "c"}, ts.RangeColumns["'x','y'"])
}

func TestParse_DefaultsOnlyForNullableOrLiteral(t *testing.T) {
	ts := Parse("t", []ColumnDescriptor{
		col("required", "int"),
		{Name: "zero", Type: "int", Default: def("0")},
		{Name: "empty", Type: "varchar(4)", Default: def("")},
		{Name: "maybe", Type: "int", Nullable: true},
		{Name: "auto", Type: "int", Extra: "auto_increment"},
	}, nil, ParserConfig{})

	assert.Equal(t, map[sql.NullString][]string{
		def("0"):    {"zero"},
		def(""):     {"empty"},
		nullDefault: {"maybe"},
	}, ts.DefaultColumns)
}

func TestParse_EmptyTable(t *testing.T) {
	ts := Parse("empty", nil, DDLIndex{"empty": "CREATE TABLE `empty` (UNIQUE KEY `u` (`a`))"}, ParserConfig{})

	assert.Equal(t, "empty", ts.Name)
	assert.Empty(t, ts.Columns)
	assert.Empty(t, ts.RequiredColumns)
	assert.Empty(t, ts.Comments)
	// Unique groups come from the DDL, independent of the DESCRIBE rows.
	assert.Equal(t, [][]string{{"a"}}, ts.UniqueColumns)
}

func TestParseQuotedValues(t *testing.T) {
	assert.Equal(t, []string{}, parseQuotedValues(""))
	assert.Equal(t, []string{""}, parseQuotedValues("''"))
	assert.Equal(t, []string{"a", "b"}, parseQuotedValues("'a', 'b'"))
}
