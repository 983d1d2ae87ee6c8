package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"schema-rules/internal/schema"
)

// sampleLimit caps generated magnitudes so that samples stay readable.
const sampleLimit = 100000

// defaultTextLength applies to string columns without a declared length.
const defaultTextLength = 64

// Row is one generated record keyed by column name.
type Row map[string]any

// Sampler generates example rows whose values satisfy every category of a
// TableSchema.
type Sampler struct {
	f   *gofakeit.Faker
	now time.Time
}

func NewSampler(seed int64) *Sampler {
	return &Sampler{f: gofakeit.New(seed), now: time.Now()}
}

// Rows generates up to n rows. Rows that would repeat a unique group are
// retried; the result is shorter than n when retries run out.
func (s *Sampler) Rows(ts schema.TableSchema, n int) []Row {
	used := make([]map[string]bool, len(ts.UniqueColumns))
	for i := range used {
		used[i] = make(map[string]bool)
	}

	var rows []Row
	for attempts := 0; len(rows) < n && attempts < n*10; attempts++ {
		row := s.Row(ts)
		if !markUnique(ts.UniqueColumns, used, row) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func markUnique(groups [][]string, used []map[string]bool, row Row) bool {
	keys := make([]string, len(groups))
	for i, g := range groups {
		parts := make([]string, len(g))
		for j, c := range g {
			parts[j] = fmt.Sprint(row[c])
		}
		keys[i] = strings.Join(parts, "|")
		if used[i][keys[i]] {
			return false
		}
	}
	for i, k := range keys {
		used[i][k] = true
	}
	return true
}

// Row generates one record.
func (s *Sampler) Row(ts schema.TableSchema) Row {
	row := make(Row, len(ts.Columns))
	for _, c := range ts.Columns {
		row[c] = s.Value(ts, c)
	}
	return row
}

// Values returns the row's values in declared column order.
func Values(ts schema.TableSchema, row Row) []any {
	out := make([]any, len(ts.Columns))
	for i, c := range ts.Columns {
		out[i] = row[c]
	}
	return out
}

// Value generates a value for one column. Columns of kind other that are
// neither temporal nor enumerated get nil.
func (s *Sampler) Value(ts schema.TableSchema, col string) any {
	if values, ok := ts.EnumValues[col]; ok {
		if len(values) == 0 {
			return ""
		}
		return values[s.f.Number(0, len(values)-1)]
	}
	if kind, ok := ts.DateKindOf(col); ok {
		return s.date(kind)
	}
	if ts.IsTime(col) {
		return s.f.DateRange(s.now.AddDate(0, 0, -1), s.now).Format("15:04:05")
	}

	kind, _ := ts.KindOf(col)
	switch kind {
	case schema.KindBoolean:
		return s.f.Bool()
	case schema.KindInteger:
		return s.integer(ts, col)
	case schema.KindNumeric:
		return s.number(ts, col)
	case schema.KindString:
		if strings.HasPrefix(strings.ToLower(ts.ColumnTypes[col]), "point") {
			return fmt.Sprintf("POINT(%.6f %.6f)", s.f.Longitude(), s.f.Latitude())
		}
		length, _ := ts.StringLength(col)
		return s.text(col, ts.Comments[col], length)
	}
	return nil
}

func (s *Sampler) date(kind schema.DateKind) string {
	val := s.f.DateRange(s.now.AddDate(-1, 0, 0), s.now)
	if kind == schema.DateKindDate {
		return val.Format("2006-01-02")
	}
	// datetime, timestamp
	return val.Format("2006-01-02 15:04:05")
}

func (s *Sampler) integer(ts schema.TableSchema, col string) int64 {
	// bit(n) and other unlabelled integer columns
	lo, hi := int64(0), int64(1)
	if label, ok := ts.IntegerLabel(col); ok {
		if b, ok := schema.IntegerBounds(label); ok {
			lo, hi = clamp(b.Min).IntPart(), clamp(b.Max).IntPart()
		}
	}
	if ts.IsPositive(col) && lo < 0 {
		lo = 0
	}
	return int64(s.f.Number(int(lo), int(hi)))
}

func (s *Sampler) number(ts schema.TableSchema, col string) decimal.Decimal {
	lo, hi := decimal.NewFromInt(-sampleLimit), decimal.NewFromInt(sampleLimit)
	if label, ok := ts.NumberLabel(col); ok {
		if b, ok := schema.NumberBounds(label); ok {
			lo, hi = clamp(b.Min), clamp(b.Max)
		}
	}
	scale := int32(2)
	if p, sc, ok := precision(ts.ColumnTypes[col]); ok {
		// decimal(p,s) holds at most p-s integer digits.
		limit := decimal.New(1, p-sc).Sub(decimal.New(1, -sc))
		lo, hi = decimal.Max(lo, limit.Neg()), decimal.Min(hi, limit)
		scale = sc
	}
	if ts.IsPositive(col) && lo.IsNegative() {
		lo = decimal.Zero
	}
	v := decimal.NewFromFloat(s.f.Float64Range(lo.InexactFloat64(), hi.InexactFloat64()))
	return decimal.Min(decimal.Max(v.Truncate(scale), lo), hi)
}

func (s *Sampler) text(col, comment string, length int) string {
	limit := length
	if length == schema.DefaultLength {
		limit = defaultTextLength
	}

	var v string
	switch schema.AnalyzeMeaning(col, comment) {
	case schema.MeaningEmail:
		v = s.f.Email()
	case schema.MeaningPhone:
		v = s.f.Phone()
	case schema.MeaningAddress:
		v = s.f.Street()
	case schema.MeaningZipcode:
		v = s.f.Zip()
	case schema.MeaningName:
		v = s.f.Name()
	case schema.MeaningPassword:
		v = s.f.Password(true, true, true, false, false, 12)
	case schema.MeaningURL:
		v = s.f.URL()
	case schema.MeaningIP:
		v = s.f.IPv4Address()
	case schema.MeaningCountry:
		v = s.f.Country()
	case schema.MeaningCity:
		v = s.f.City()
	case schema.MeaningTitle:
		v = s.f.Sentence(3)
	case schema.MeaningText:
		v = s.f.Sentence(10)
	case schema.MeaningCode:
		v = strings.ToUpper(s.f.Lexify("???")) + s.f.Numerify("####")
	default:
		if limit < 20 {
			v = s.f.Word()
		} else {
			v = s.f.Sentence(5)
		}
	}
	return truncate(v, limit)
}

func clamp(d decimal.Decimal) decimal.Decimal {
	limit := decimal.NewFromInt(sampleLimit)
	return decimal.Min(decimal.Max(d, limit.Neg()), limit)
}

// precision reads p and s from a "decimal(p,s)" declaration.
func precision(typ string) (int32, int32, bool) {
	t := strings.ToLower(typ)
	if !strings.HasPrefix(t, "decimal(") {
		return 0, 0, false
	}
	end := strings.IndexByte(t, ')')
	if end < 0 {
		return 0, 0, false
	}
	parts := strings.Split(t[len("decimal("):end], ",")
	p, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || p <= 0 {
		return 0, 0, false
	}
	sc := 0
	if len(parts) > 1 {
		if sc, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil || sc < 0 || sc > p {
			return 0, 0, false
		}
	}
	return int32(p), int32(sc), true
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
