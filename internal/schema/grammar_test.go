package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeDecl_Length(t *testing.T) {
	tests := map[string]int{
		"varchar(255)":       255,
		"char(1)":            1,
		"CHAR(36)":           36,
		"varchar( 12 )":      12,
		"decimal(10,2)":      10,
		"text":               DefaultLength,
		"char(0)":            DefaultLength,
		"enum('a','b')":      DefaultLength,
		"varchar(20) binary": 20,
		"int(10) unsigned":   10,
	}
	for typ, want := range tests {
		assert.Equal(t, want, parseTypeDecl(typ).length(), typ)
	}
}

func TestTypeDecl_LengthIsStable(t *testing.T) {
	for _, typ := range []string{"varchar(64)", "text", "char(0)"} {
		first := parseTypeDecl(typ).length()
		assert.Equal(t, first, parseTypeDecl(typ).length(), typ)
	}
}

func TestTypeDecl_BitFlag(t *testing.T) {
	assert.True(t, parseTypeDecl("bit(1)").isBitFlag())
	assert.True(t, parseTypeDecl("bit").isBitFlag())
	assert.True(t, parseTypeDecl("BIT(1)").isBitFlag())
	assert.False(t, parseTypeDecl("bit(2)").isBitFlag())
	assert.False(t, parseTypeDecl("tinyint(1)").isBitFlag())
}

func TestTypeDecl_ValueListKeepsCase(t *testing.T) {
	assert.Equal(t, "'On','Off'", parseTypeDecl("ENUM('On','Off')").valueList())
	assert.Equal(t, "", parseTypeDecl("int").valueList())
}

func TestCoarseKind_RuleOrder(t *testing.T) {
	tests := []struct {
		typ    string
		ctx    ruleContext
		kind   CoarseKind
		length int
	}{
		{"bit(1)", ruleContext{}, KindBoolean, 0},
		{"bit(1)", ruleContext{maximumValidation: true}, KindBoolean, 0},
		{"bit(64)", ruleContext{}, KindInteger, 0},
		{"int(11)", ruleContext{autoGenerated: true}, KindOther, 0},
		{"point", ruleContext{}, KindString, DefaultLength},
		{"polygon", ruleContext{}, KindOther, 0},
		{"enum('a')", ruleContext{}, KindString, DefaultLength},
		{"enum('a')", ruleContext{maximumValidation: true}, KindOther, 0},
		{"tinytext", ruleContext{}, KindString, DefaultLength},
		{"binary(4)", ruleContext{}, KindString, 4},
		{"year(4)", ruleContext{}, KindOther, 0},
		{"json", ruleContext{}, KindOther, 0},
	}
	for _, tt := range tests {
		kind, length := coarseKind(parseTypeDecl(tt.typ), tt.ctx)
		assert.Equal(t, tt.kind, kind, "%s %+v", tt.typ, tt.ctx)
		assert.Equal(t, tt.length, length, "%s %+v", tt.typ, tt.ctx)
	}
}

func TestTemporalKind(t *testing.T) {
	r, ok := temporalKind(parseTypeDecl("datetime(6)"))
	assert.True(t, ok)
	assert.Equal(t, DateKindDatetime, r.kind)

	r, ok = temporalKind(parseTypeDecl("timestamp"))
	assert.True(t, ok)
	assert.Equal(t, DateKindTimestamp, r.kind)
	assert.False(t, r.timeOfDay)

	r, ok = temporalKind(parseTypeDecl("time(3)"))
	assert.True(t, ok)
	assert.True(t, r.timeOfDay)

	_, ok = temporalKind(parseTypeDecl("year"))
	assert.False(t, ok)
}
