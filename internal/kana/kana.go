package kana

import "strings"

const (
	hiraganaFirst = 0x3040
	hiraganaLast  = 0x309F
	katakanaFirst = 0x30A1 // ァ
	katakanaLast  = 0x30F6 // ヶ
	kanaBlockLast = 0x30FF
	ideographLo   = 0x4E00
	ideographHi   = 0x9FFF
	katakanaShift = 0x60
)

// ContainsIdeograph reports whether text has a CJK Unified Ideograph.
func ContainsIdeograph(text string) bool {
	for _, r := range text {
		if r >= ideographLo && r <= ideographHi {
			return true
		}
	}
	return false
}

// ToHiragana maps katakana to the matching hiragana and leaves other runes alone.
func ToHiragana(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= katakanaFirst && r <= katakanaLast {
			r -= katakanaShift
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsHiragana reports whether text is non-empty and made only of hiragana block runes.
func IsHiragana(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < hiraganaFirst || r > hiraganaLast {
			return false
		}
	}
	return true
}

// HasKana reports whether text contains any hiragana or katakana rune.
func HasKana(text string) bool {
	for _, r := range text {
		if r >= hiraganaFirst && r <= kanaBlockLast {
			return true
		}
	}
	return false
}

// Matches reports whether answer equals one of the readings, ignoring kana script.
func Matches(answer string, readings []string) bool {
	normalized := ToHiragana(answer)
	for _, reading := range readings {
		if normalized == ToHiragana(reading) {
			return true
		}
	}
	return false
}
