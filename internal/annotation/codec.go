// Package annotation packs a quantity and a short lot marker into one cell:
// the quantity as plain digits followed by the marker in superscript glyphs.
package annotation

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var glyphs = []struct {
	plain, sup rune
}{
	{'0', '⁰'}, {'1', '¹'}, {'2', '²'}, {'3', '³'}, {'4', '⁴'},
	{'5', '⁵'}, {'6', '⁶'}, {'7', '⁷'}, {'8', '⁸'}, {'9', '⁹'},

	{'a', 'ᵃ'}, {'b', 'ᵇ'}, {'c', 'ᶜ'}, {'d', 'ᵈ'}, {'e', 'ᵉ'},
	{'f', 'ᶠ'}, {'g', 'ᵍ'}, {'h', 'ʰ'}, {'i', 'ⁱ'}, {'j', 'ʲ'},
	{'k', 'ᵏ'}, {'l', 'ˡ'}, {'m', 'ᵐ'}, {'n', 'ⁿ'}, {'o', 'ᵒ'},
	{'p', 'ᵖ'}, {'r', 'ʳ'}, {'s', 'ˢ'}, {'t', 'ᵗ'}, {'u', 'ᵘ'},
	{'v', 'ᵛ'}, {'w', 'ʷ'}, {'x', 'ˣ'}, {'y', 'ʸ'}, {'z', 'ᶻ'},

	{'A', 'ᴬ'}, {'B', 'ᴮ'}, {'D', 'ᴰ'}, {'E', 'ᴱ'}, {'G', 'ᴳ'},
	{'H', 'ᴴ'}, {'I', 'ᴵ'}, {'J', 'ᴶ'}, {'K', 'ᴷ'}, {'L', 'ᴸ'},
	{'M', 'ᴹ'}, {'N', 'ᴺ'}, {'O', 'ᴼ'}, {'P', 'ᴾ'}, {'R', 'ᴿ'},
	{'T', 'ᵀ'}, {'U', 'ᵁ'}, {'V', 'ⱽ'}, {'W', 'ᵂ'},

	{'.', '‧'}, {',', '˒'},
}

// Filled once in init, read-only afterwards.
var (
	toSuper   map[rune]rune
	fromSuper map[rune]rune
)

func init() {
	toSuper = make(map[rune]rune, len(glyphs))
	fromSuper = make(map[rune]rune, len(glyphs)+1)
	for _, g := range glyphs {
		toSuper[g.plain] = g.sup
		fromSuper[g.sup] = g.plain
	}
	// старые файлы писали g как ᶢ
	fromSuper['ᶢ'] = 'g'
}

// Encode renders quantity followed by the superscript form of annotation.
// Runes without a glyph are appended as they are.
func Encode(quantity decimal.Decimal, annotation string) string {
	var b strings.Builder
	b.WriteString(quantity.String())
	for _, r := range annotation {
		if s, ok := toSuper[r]; ok {
			b.WriteRune(s)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Decode splits cell text into the leading ASCII digits (the quantity) and
// the trailing annotation. It never fails: unparsable text yields quantity 0.
//
// Only the integer part of a quantity survives: a fractional part written by
// Encode (".5" in "3.5ˣ") is dropped.
func Decode(text string) (decimal.Decimal, string) {
	text = strings.TrimSpace(text)

	n := leadingDigits(text)
	quantity, err := decimal.NewFromString(text[:n])
	if err != nil {
		quantity = decimal.Zero
	}

	rest := text[n:]
	if n > 0 {
		rest = rest[fraction(rest):]
	}
	if rest == "" {
		return quantity, ""
	}

	var b strings.Builder
	for _, r := range rest {
		if p, ok := fromSuper[r]; ok {
			b.WriteRune(p)
			continue
		}
		b.WriteRune(r)
	}
	return quantity, b.String()
}

// Valid reports whether every rune of annotation has a superscript glyph,
// i.e. whether it round-trips through Encode and Decode unchanged.
func Valid(annotation string) bool {
	if !utf8.ValidString(annotation) {
		return false
	}
	for _, r := range annotation {
		if _, ok := toSuper[r]; !ok {
			return false
		}
	}
	return true
}

func leadingDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// fraction returns the length of a ".digits" or ",digits" prefix of s.
func fraction(s string) int {
	if len(s) < 2 || (s[0] != '.' && s[0] != ',') {
		return 0
	}
	n := leadingDigits(s[1:])
	if n == 0 {
		return 0
	}
	return n + 1
}
