package annotation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name       string
		quantity   decimal.Decimal
		annotation string
		want       string
	}{
		{"no annotation", decimal.NewFromInt(12), "", "12"},
		{"letters", decimal.NewFromInt(5), "ab", "5ᵃᵇ"},
		{"digits and dot", decimal.NewFromInt(3), "1.2", "3¹‧²"},
		{"uppercase", decimal.NewFromInt(7), "AB", "7ᴬᴮ"},
		{"zero", decimal.Zero, "", "0"},
		{"unmapped rune leaks", decimal.NewFromInt(4), "q-", "4q-"},
		{"fraction", decimal.RequireFromString("3.5"), "x", "3.5ˣ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.quantity, tt.annotation))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantQuantity   int64
		wantAnnotation string
	}{
		{"empty", "", 0, ""},
		{"plain number", "25", 25, ""},
		{"annotated", "10ᵃ¹", 10, "a1"},
		{"legacy g glyph", "2ᶢ", 2, "g"},
		{"no digits", "ᵃᵇ", 0, "ab"},
		{"garbage", "abc", 0, "abc"},
		{"unmapped passes through", "6q", 6, "q"},
		{"comma fraction", "3,75ˣ", 3, "x"},
		{"trailing spaces", " 8 ", 8, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, a := Decode(tt.text)
			assert.True(t, decimal.NewFromInt(tt.wantQuantity).Equal(q), "quantity: got %s", q)
			assert.Equal(t, tt.wantAnnotation, a)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	annotations := []string{"", "a", "lot7", "ABW", "1.2,3", "xyz", "partia"}
	quantities := []int64{0, 1, 9, 10, 250, 100000}

	for _, a := range annotations {
		for _, q := range quantities {
			assert.True(t, Valid(a), a)
			gotQ, gotA := Decode(Encode(decimal.NewFromInt(q), a))
			assert.True(t, decimal.NewFromInt(q).Equal(gotQ), "quantity %d annotation %q: got %s", q, a, gotQ)
			assert.Equal(t, a, gotA)
		}
	}
}

func TestDecode_FractionIsLost(t *testing.T) {
	q, a := Decode(Encode(decimal.RequireFromString("3.5"), "x"))

	assert.True(t, decimal.NewFromInt(3).Equal(q), "got %s", q)
	assert.Equal(t, "x", a)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("abc123"))
	assert.True(t, Valid(""))
	assert.False(t, Valid("q"))
	assert.False(t, Valid("C"))
	assert.False(t, Valid("a b"))
}

func TestGlyphTableIsBijective(t *testing.T) {
	seen := make(map[rune]rune)
	for _, g := range glyphs {
		prev, dup := seen[g.sup]
		assert.False(t, dup, "glyph %q used for %q and %q", g.sup, prev, g.plain)
		seen[g.sup] = g.plain
	}
}
