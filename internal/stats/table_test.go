package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Word", "Accuracy", "Correct"}
	rows := [][]string{
		{"日本", "97.50%", "12"},
		{"<none>", "8.00%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word   Accuracy Correct" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "日本     97.50%      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<none>    8.00%       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTrimsTrailingPadding(t *testing.T) {
	lines := formatTable([]string{"A", "Word"}, [][]string{{"1", "猫"}, {"2", "ねこです"}}, nil)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "1 猫" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("to eat; to live on", 8); got != "to eat;…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("日本語です", 5); got != "日本…" {
		t.Fatalf("unexpected wide truncation: %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("unexpected untouched value: %q", got)
	}
}
