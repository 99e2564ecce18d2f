package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/tonal/internal/colour"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"Role", "Hex", "HCT"})

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Role", "Hex"})

	table.AddRow("main", "#0081a9")
	table.AddRow("sub")
	table.AddRow("accent", "#7b7294", "extra")

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected short row to be padded, got %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected long row to be truncated, got %q", table.rows[2])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Role", "Hex"})
	table.AddRow("neutral-accent", "#6d7377")
	table.AddRow("main", "#0081a9")

	want := "Role            Hex\n" +
		"--------------  -------\n" +
		"neutral-accent  #6d7377\n" +
		"main            #0081a9\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderWithoutHeaders(t *testing.T) {
	table := NewTable(nil)
	table.AddRow("a", "1")
	table.AddRow("bbb", "2")

	want := "a    1\nbbb  2\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if NewTable(nil).Render() != "" {
		t.Error("empty table should render nothing")
	}
}

func TestTableMeasuresStyledCells(t *testing.T) {
	table := NewTable([]string{"Swatch", "Hex"})
	table.AddRow(swatch(colour.RGB{R: 19, G: 149, B: 192}, 4), "#1395c0")
	table.AddRow("xx", "#000000")

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines", len(lines))
	}
	// Column two starts at the same cell offset on every line.
	if !strings.HasPrefix(lines[3], "xx      #000000") {
		t.Errorf("styled cell misaligned the table: %q", lines[3])
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 3, "abcdef"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}
