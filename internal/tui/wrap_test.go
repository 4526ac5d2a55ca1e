package tui

import "testing"

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	got := wrapText("to eat; to consume", 8)
	want := "to eat;\nto\nconsume"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextBreaksWideRunes(t *testing.T) {
	got := wrapText("日本語です", 4)
	want := "日本\n語で\nす"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextNoWidth(t *testing.T) {
	got := wrapText("Japan; Nippon", 0)
	if got != "Japan; Nippon" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestWrapTextFits(t *testing.T) {
	got := wrapText("cat", 10)
	if got != "cat" {
		t.Fatalf("expected single line, got %q", got)
	}
}
