package stats

import "testing"

func TestLayoutTableAlignsColumns(t *testing.T) {
	columns := []Column{{Title: "Set"}, {Title: "Reviews", Right: true}, {Title: "Rate", Right: true}}
	rows := [][]string{
		{"Animals", "12", "75%"},
		{"Colors", "3", "100%"},
	}

	lines := layoutTable(columns, rows)
	want := []string{
		"Set      Reviews  Rate",
		"Animals       12   75%",
		"Colors         3  100%",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLayoutTableUsesDisplayWidth(t *testing.T) {
	lines := layoutTable([]Column{{Title: "Set"}, {Title: "N", Right: true}}, [][]string{{"漢字", "1"}, {"ab", "2"}})
	if lines[1] != "漢字  1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ab    2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}

func TestLayoutTableTrimsTrailingPadding(t *testing.T) {
	lines := layoutTable([]Column{{Title: "Set"}, {Title: "Last reviewed"}}, [][]string{{"Animals", "-"}, {"Colors"}})
	if lines[1] != "Animals  -" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "Colors" {
		t.Fatalf("missing cell should render empty: %q", lines[2])
	}
}

func TestColumnsMatchRows(t *testing.T) {
	rows := Rows(Summarize(nil), nil)
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
	if len(Columns) != 5 || Columns[0].Title != "Set" || !Columns[1].Right {
		t.Fatalf("unexpected history columns: %+v", Columns)
	}
}
