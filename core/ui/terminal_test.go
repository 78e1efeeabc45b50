package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

// TestTableAlignsWideRunes proves columns line up by display width
func TestTableAlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	tbl := w.NewTable("Item", "Amount")
	tbl.AlignRight(1)
	tbl.AddRow("Sivut × kompleksisuus (5 × 1.25×)", "3 125 €")
	tbl.AddRow("Logo", "1 500 €")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	width := runewidth.StringWidth(lines[2])
	if got := runewidth.StringWidth(lines[3]); got != width {
		t.Errorf("rows differ in width: %d vs %d", width, got)
	}
	if !strings.HasSuffix(lines[3], "1 500 €") {
		t.Errorf("amount not right aligned: %q", lines[3])
	}
}

// TestColorDisabled proves no escape codes are written without color
func TestColorDisabled(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Header("Estimate")
	w.Success("done %d", 1)
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("unexpected escape codes: %q", buf.String())
	}

	buf.Reset()
	w = NewWriter(&buf, false)
	w.Warning("careful")
	if !strings.Contains(buf.String(), Yellow) {
		t.Errorf("expected colored output, got %q", buf.String())
	}
}

// TestVerbosity proves info and debug lines respect the level
func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Debug("hidden")
	w.SetVerbosity(0)
	w.Info("hidden too")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	w.SetVerbosity(2)
	w.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected debug output at verbosity 2")
	}
}

// TestSummaryBox proves every row and the note are rendered inside a box
func TestSummaryBox(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	s := w.NewSummary("This website includes")
	s.Add(SummaryRow{Label: "Project price (one-off)", Value: "€11,863"})
	s.Add(SummaryRow{Label: "Maintenance", Value: "€199", Sub: true})
	s.Add(SummaryRow{Label: "First month total", Value: "€12,261", Highlight: true})
	s.Note = "non-binding"
	s.Render()

	out := buf.String()
	for _, want := range []string{"This website includes", "€11,863", "    Maintenance", "€12,261", "╭", "╰", "non-binding"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	var widths []int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "│") || strings.HasPrefix(line, "╭") {
			widths = append(widths, runewidth.StringWidth(line))
		}
	}
	for _, wd := range widths {
		if wd != widths[0] {
			t.Errorf("box lines differ in width: %v", widths)
			break
		}
	}
}

// TestTableWithoutHeaders proves empty headers suppress the header lines
func TestTableWithoutHeaders(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	tbl := w.NewTable("", "")
	tbl.AddRow("Pages", "5")
	tbl.Render()

	if strings.Contains(buf.String(), "─") {
		t.Errorf("unexpected separator: %q", buf.String())
	}
	if got := strings.TrimRight(buf.String(), "\n"); got != "Pages │ 5" {
		t.Errorf("got %q", got)
	}
}
