package output

import (
	"strings"
	"testing"

	"github.com/hearthside-labs/memberpulse/internal/engagement"
)

func TestVisualLen_PlainText(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"hello", 5},
		{"", 0},
		{"abc def", 7},
	}

	for _, tc := range tests {
		got := visualLen(tc.input)
		if got != tc.want {
			t.Errorf("visualLen(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestVisualLen_StripsANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"bold", "\x1b[1mhello\x1b[0m", 5},
		{"color", "\x1b[31mred\x1b[0m", 3},
		{"multiple sequences", "\x1b[1m\x1b[34mblue bold\x1b[0m", 9},
		{"no ansi", "plain text", 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := visualLen(tc.input)
			if got != tc.want {
				t.Errorf("visualLen() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  int // expected length of output
	}{
		{"needs padding", "hi", 10, 10},
		{"exact width", "hello", 5, 5},
		{"over width", "toolong", 3, 7}, // no truncation
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pad(tc.input, tc.width)
			if len(got) != tc.want {
				t.Errorf("pad(%q, %d) len = %d, want %d", tc.input, tc.width, len(got), tc.want)
			}
		})
	}
}

func TestTable_Render(t *testing.T) {
	// Disable color so we get predictable output.
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Member", "Score")
	tbl.AddRow("Ada", "95")
	tbl.AddRow("Ben", "12")

	out := tbl.Render()

	for _, want := range []string{"Member", "Score", "Ada", "Ben", "─"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}

	// Header + separator + 2 data rows = 4 lines.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(lines))
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	tbl := NewTable()
	if out := tbl.Render(); out != "" {
		t.Errorf("expected empty output for empty table, got %q", out)
	}
}

func TestTable_StyledCellWidths(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("A", "LongHeader")
	// Styled cell must align by visual width, not byte length.
	tbl.AddRow("\x1b[32mVeryLongValue\x1b[0m", "X")

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "VeryLongValue") {
		t.Error("expected data row to contain 'VeryLongValue'")
	}
}

func TestScoreBar_Bounds(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	full := ScoreBar(100, 10)
	if !strings.Contains(full, "100/100") {
		t.Errorf("expected 100/100 label, got %q", full)
	}
	if strings.Contains(full, "░") {
		t.Error("expected no empty cells at full score")
	}

	empty := ScoreBar(0, 10)
	if strings.Contains(empty, "█") {
		t.Error("expected no filled cells at zero score")
	}
}

func TestLevelBadge_AllLevels(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	for _, level := range engagement.Levels {
		if got := LevelBadge(level); got != string(level) {
			t.Errorf("LevelBadge(%q) = %q with color disabled", level, got)
		}
	}
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	if rendered := StyleHeader.Render("test"); strings.Contains(rendered, "\x1b[") {
		t.Error("expected no ANSI codes after SetNoColor(true)")
	}
	SetNoColor(false)
}
