package report

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"schema-rules/internal/schema"
)

func accountsSchema() schema.TableSchema {
	rows := []schema.ColumnDescriptor{
		{Name: "id", Type: "bigint(20) unsigned", Extra: "auto_increment", Comment: "pk"},
		{Name: "login", Type: "varchar(32)"},
		{Name: "bio", Type: "text", Nullable: true},
		{Name: "level", Type: "tinyint(3) unsigned", Default: sql.NullString{String: "1", Valid: true}},
		{Name: "score", Type: "float"},
		{Name: "kind", Type: "enum('free','paid')"},
		{Name: "joined", Type: "date"},
	}
	ddl := schema.DDLIndex{"accounts": "CREATE TABLE `accounts` (\n  UNIQUE KEY `uq_login` (`login`)\n)"}
	return schema.Parse("accounts", rows, ddl, schema.ParserConfig{})
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(accountsSchema())

	assert.Equal(t, "accounts", doc.Table)
	assert.Equal(t, []string{"login", "score", "kind", "joined"}, doc.Required)

	require.Len(t, doc.String, 2)
	assert.Nil(t, doc.String[0].Length)
	assert.Equal(t, []string{"bio", "kind"}, doc.String[0].Columns)
	require.NotNil(t, doc.String[1].Length)
	assert.Equal(t, 32, *doc.String[1].Length)

	require.Len(t, doc.IntegerWithRange, 1)
	assert.Equal(t, RangeGroup{Label: "tinyint unsigned", Min: "0", Max: "255", Columns: []string{"level"}}, doc.IntegerWithRange[0])
	require.Len(t, doc.NumberWithRange, 1)
	assert.Equal(t, "float", doc.NumberWithRange[0].Label)

	assert.Equal(t, []DefaultGroup{
		{Null: true, Columns: []string{"bio"}},
		{Value: "1", Columns: []string{"level"}},
	}, doc.Defaults)
	assert.Equal(t, map[string][]string{"date": {"joined"}}, doc.Date)
	assert.Equal(t, [][]string{{"login"}}, doc.Unique)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []schema.TableSchema{accountsSchema()}, FormatYAML))

	var docs []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "accounts", docs[0]["table"])
	assert.Equal(t, map[string]any{"kind": []any{"free", "paid"}}, docs[0]["enum_values"])
	assert.Contains(t, buf.String(), "comments:\n")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []schema.TableSchema{accountsSchema()}, FormatJSON))

	var docs []Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, NewDocument(accountsSchema()), docs[0])
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []schema.TableSchema{accountsSchema()}, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "accounts")
	assert.Contains(t, out, "string(32)")
	assert.Contains(t, out, "in [free, paid]")
	assert.Contains(t, out, "default NULL")
	assert.Contains(t, out, "tinyint unsigned [0, 255]")
	assert.Contains(t, out, "float [-340282346600000000000000000000000000000, 340282346600000000000000000000000000000]")
}

func TestRangeCategory(t *testing.T) {
	assert.Equal(t, "decimal unsigned [0, 9]", rangeCategory(RangeGroup{Label: "decimal unsigned", Min: "0", Max: "9"}))
	assert.Equal(t, "custom", rangeCategory(RangeGroup{Label: "custom"}))
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, nil, "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderRows(t *testing.T) {
	var buf bytes.Buffer
	RenderRows(&buf, "accounts", []string{"id", "login"}, [][]any{{nil, "bob"}})

	assert.Contains(t, buf.String(), "accounts (1 rows)")
	assert.Contains(t, buf.String(), "NULL")
	assert.Contains(t, buf.String(), "bob")
}
