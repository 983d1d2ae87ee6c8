package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"schema-rules/internal/schema"
)

const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Document is the serializable form of a TableSchema.
type Document struct {
	Table            string              `yaml:"table" json:"table"`
	Columns          []string            `yaml:"columns" json:"columns"`
	Required         []string            `yaml:"required,omitempty" json:"required,omitempty"`
	Boolean          []string            `yaml:"boolean,omitempty" json:"boolean,omitempty"`
	Integer          []string            `yaml:"integer,omitempty" json:"integer,omitempty"`
	Numeric          []string            `yaml:"numeric,omitempty" json:"numeric,omitempty"`
	String           []StringGroup       `yaml:"string,omitempty" json:"string,omitempty"`
	Other            []string            `yaml:"other,omitempty" json:"other,omitempty"`
	Range            map[string][]string `yaml:"range,omitempty" json:"range,omitempty"`
	EnumValues       map[string][]string `yaml:"enum_values,omitempty" json:"enum_values,omitempty"`
	Date             map[string][]string `yaml:"date,omitempty" json:"date,omitempty"`
	Time             []string            `yaml:"time,omitempty" json:"time,omitempty"`
	IntegerWithRange []RangeGroup        `yaml:"integer_with_range,omitempty" json:"integer_with_range,omitempty"`
	NumberWithRange  []RangeGroup        `yaml:"number_with_range,omitempty" json:"number_with_range,omitempty"`
	Positive         []string            `yaml:"positive,omitempty" json:"positive,omitempty"`
	Defaults         []DefaultGroup      `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Comments         map[string]string   `yaml:"comments" json:"comments"`
	Unique           [][]string          `yaml:"unique,omitempty" json:"unique,omitempty"`
}

// StringGroup lists string columns sharing a maximum length; Length is
// omitted for columns without a declared length.
type StringGroup struct {
	Length  *int     `yaml:"length,omitempty" json:"length,omitempty"`
	Columns []string `yaml:"columns" json:"columns"`
}

type RangeGroup struct {
	Label   string   `yaml:"label" json:"label"`
	Min     string   `yaml:"min,omitempty" json:"min,omitempty"`
	Max     string   `yaml:"max,omitempty" json:"max,omitempty"`
	Columns []string `yaml:"columns" json:"columns"`
}

// DefaultGroup lists columns sharing a default. Null marks a NULL default.
type DefaultGroup struct {
	Value   string   `yaml:"value" json:"value"`
	Null    bool     `yaml:"null,omitempty" json:"null,omitempty"`
	Columns []string `yaml:"columns" json:"columns"`
}

func NewDocument(ts schema.TableSchema) Document {
	doc := Document{
		Table:      ts.Name,
		Columns:    ts.Columns,
		Required:   ts.RequiredColumns,
		Boolean:    ts.BooleanColumns,
		Integer:    ts.IntegerColumns,
		Numeric:    ts.NumericColumns,
		Other:      ts.OtherColumns,
		Range:      ts.RangeColumns,
		EnumValues: ts.EnumValues,
		Time:       ts.TimeColumns,
		Positive:   ts.PositiveColumns,
		Comments:   ts.Comments,
		Unique:     ts.UniqueColumns,
	}

	lengths := make([]int, 0, len(ts.StringColumns))
	for l := range ts.StringColumns {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	for _, l := range lengths {
		l := l
		g := StringGroup{Columns: ts.StringColumns[l]}
		if l != schema.DefaultLength {
			g.Length = &l
		}
		doc.String = append(doc.String, g)
	}

	if len(ts.DateColumns) > 0 {
		doc.Date = make(map[string][]string, len(ts.DateColumns))
		for k, v := range ts.DateColumns {
			doc.Date[string(k)] = v
		}
	}

	doc.IntegerWithRange = rangeGroups(ts.IntegerWithRange, schema.IntegerBounds)
	doc.NumberWithRange = rangeGroups(ts.NumberWithRange, schema.NumberBounds)

	for v, cols := range ts.DefaultColumns {
		doc.Defaults = append(doc.Defaults, DefaultGroup{Value: v.String, Null: !v.Valid, Columns: cols})
	}
	sort.Slice(doc.Defaults, func(i, j int) bool {
		a, b := doc.Defaults[i], doc.Defaults[j]
		if a.Null != b.Null {
			return a.Null
		}
		return a.Value < b.Value
	})
	return doc
}

func rangeGroups(groups map[string][]string, bounds func(string) (schema.Bounds, bool)) []RangeGroup {
	labels := make([]string, 0, len(groups))
	for l := range groups {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	var out []RangeGroup
	for _, l := range labels {
		g := RangeGroup{Label: l, Columns: groups[l]}
		if b, ok := bounds(l); ok {
			g.Min, g.Max = b.Min.String(), b.Max.String()
		}
		out = append(out, g)
	}
	return out
}

// Render writes tables to w in the given format.
func Render(w io.Writer, tables []schema.TableSchema, format string) error {
	docs := make([]Document, len(tables))
	for i, ts := range tables {
		docs[i] = NewDocument(ts)
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatTable, "":
		for _, d := range docs {
			renderTable(w, d)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func renderTable(w io.Writer, d Document) {
	fmt.Fprintf(w, "\n%s\n", d.Table)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Columns"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	add := func(category string, cols []string) {
		if len(cols) > 0 {
			table.Append([]string{category, strings.Join(cols, ", ")})
		}
	}

	add("required", d.Required)
	add("boolean", d.Boolean)
	add("integer", d.Integer)
	add("numeric", d.Numeric)
	for _, g := range d.String {
		if g.Length == nil {
			add("string", g.Columns)
		} else {
			add("string("+strconv.Itoa(*g.Length)+")", g.Columns)
		}
	}
	add("other", d.Other)
	for _, kind := range []schema.DateKind{schema.DateKindDatetime, schema.DateKindTimestamp, schema.DateKindDate} {
		add(string(kind), d.Date[string(kind)])
	}
	add("time", d.Time)
	for _, g := range d.IntegerWithRange {
		add(rangeCategory(g), g.Columns)
	}
	for _, g := range d.NumberWithRange {
		add(rangeCategory(g), g.Columns)
	}
	add("positive", d.Positive)
	for _, c := range d.Columns {
		if v, ok := d.EnumValues[c]; ok {
			add("in ["+strings.Join(v, ", ")+"]", []string{c})
		}
	}
	for _, g := range d.Defaults {
		if g.Null {
			add("default NULL", g.Columns)
		} else {
			add(fmt.Sprintf("default %q", g.Value), g.Columns)
		}
	}
	for _, u := range d.Unique {
		add("unique", u)
	}

	table.Render()
}

// rangeCategory labels a range group with its bounds when they are known.
func rangeCategory(g RangeGroup) string {
	if g.Min == "" && g.Max == "" {
		return g.Label
	}
	return fmt.Sprintf("%s [%s, %s]", g.Label, g.Min, g.Max)
}

// RenderRows writes sample rows as a table. Nil values print as NULL.
func RenderRows(w io.Writer, title string, header []string, rows [][]any) {
	fmt.Fprintf(w, "\n%s (%d rows)\n", title, len(rows))

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, v := range r {
			if v == nil {
				cells[i] = "NULL"
			} else {
				cells[i] = fmt.Sprint(v)
			}
		}
		table.Append(cells)
	}
	table.Render()
}
