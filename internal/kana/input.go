package kana

import "strings"

// Input tracks what the player has typed for the current question.
// Kana typed directly is committed as-is; everything else goes through the romaji buffer
// and the visible text is re-derived from that buffer after every keystroke.
type Input struct {
	committed string
	romaji    string
	text      string
}

// Type appends a keystroke or a chunk of text.
func (in *Input) Type(s string) {
	if s == "" {
		return
	}
	if HasKana(s) {
		in.committed = in.text + s
		in.romaji = ""
		in.text = in.committed
		return
	}
	in.romaji += strings.ToLower(s)
	in.text = in.committed + RomajiToHiragana(in.romaji)
}

// Backspace removes the last visible rune. The romaji buffer shrinks one raw rune at
// a time until it converts to the shorter text again.
func (in *Input) Backspace() {
	runes := []rune(in.text)
	if len(runes) == 0 {
		return
	}
	target := string(runes[:len(runes)-1])
	for in.romaji != "" {
		r := []rune(in.romaji)
		in.romaji = string(r[:len(r)-1])
		if in.committed+RomajiToHiragana(in.romaji) == target {
			break
		}
	}
	if in.romaji == "" {
		in.committed = target
	}
	in.text = target
}

// Text returns the kana shown to the player.
func (in *Input) Text() string {
	return in.text
}

// Romaji returns the raw romaji buffer still pending conversion.
func (in *Input) Romaji() string {
	return in.romaji
}

// Answer returns the trimmed text that would be submitted.
func (in *Input) Answer() string {
	return strings.TrimSpace(in.text)
}

// Reset clears all buffers.
func (in *Input) Reset() {
	*in = Input{}
}
