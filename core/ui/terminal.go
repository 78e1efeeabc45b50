// Package ui - Terminal user interface
// Colored CLI output with headers, tables and summary boxes.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Color applies color if enabled
func (w *Writer) Color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.Color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.Color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Green, "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Yellow, "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Red, "✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.Color(Blue, "ℹ "), fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Println("%s", w.Color(Dim, "  "+fmt.Sprintf(format, args...)))
}

// Table renders a table. Widths are measured in terminal cells, so labels
// with multiplication signs or Finnish letters line up.
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	right   []bool
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		widths:  widths,
		right:   make([]bool, len(headers)),
	}
}

// AlignRight right-aligns the given columns
func (t *Table) AlignRight(cols ...int) {
	for _, c := range cols {
		if c >= 0 && c < len(t.right) {
			t.right[c] = true
		}
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if cw := runewidth.StringWidth(row[i]); cw > t.widths[i] {
			t.widths[i] = cw
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) line(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" │ ")
		}
		if t.right[i] {
			b.WriteString(runewidth.FillLeft(cell, t.widths[i]))
		} else {
			b.WriteString(runewidth.FillRight(cell, t.widths[i]))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Render prints the table. A table whose headers are all empty is printed
// without the header and separator lines.
func (t *Table) Render() {
	if strings.Join(t.headers, "") != "" {
		t.w.Println("%s", t.w.Color(Bold, t.line(t.headers)))

		sep := make([]string, len(t.widths))
		for i, w := range t.widths {
			sep[i] = strings.Repeat("─", w)
		}
		t.w.Println("%s", strings.Join(sep, "─┼─"))
	}

	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
}

// SummaryRow is one labelled value of a summary box
type SummaryRow struct {
	Label string
	Value string

	// Sub rows are indented and dimmed
	Sub bool

	// Highlight renders the value in green
	Highlight bool
}

// Summary renders a boxed list of labelled values
type Summary struct {
	w     *Writer
	Title string
	Rows  []SummaryRow
	Note  string
}

// NewSummary creates a summary box
func (w *Writer) NewSummary(title string) *Summary {
	return &Summary{w: w, Title: title}
}

// Add appends a row
func (s *Summary) Add(row SummaryRow) {
	s.Rows = append(s.Rows, row)
}

// Render prints the summary box
func (s *Summary) Render() {
	s.w.Header(s.Title)

	labelW, valueW := 0, 0
	for _, r := range s.Rows {
		labelW = max(labelW, runewidth.StringWidth(s.label(r)))
		valueW = max(valueW, runewidth.StringWidth(r.Value))
	}
	inner := labelW + valueW + 6

	s.w.Println("%s", s.w.Color(Bold, "╭"+strings.Repeat("─", inner)+"╮"))
	for _, r := range s.Rows {
		label := "  " + runewidth.FillRight(s.label(r), labelW) + "  "
		value := runewidth.FillLeft(r.Value, valueW) + "  "
		switch {
		case r.Highlight:
			value = s.w.Color(Green, value)
		case r.Sub:
			label = s.w.Color(Dim, label)
			value = s.w.Color(Dim, value)
		}
		s.w.Println("%s%s%s%s", s.w.Color(Bold, "│"), label, value, s.w.Color(Bold, "│"))
	}
	s.w.Println("%s", s.w.Color(Bold, "╰"+strings.Repeat("─", inner)+"╯"))

	if s.Note != "" {
		s.w.Println("")
		s.w.Println("%s", s.w.Color(Dim, s.Note))
	}
}

func (s *Summary) label(r SummaryRow) string {
	if r.Sub {
		return "  " + r.Label
	}
	return r.Label
}
