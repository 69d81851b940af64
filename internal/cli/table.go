package cli

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Table is a simple column-aligned text table.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	capColumn  int // column whose width adapts to the terminal, -1 = none
	capMinimum int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		capColumn: -1,
	}
}

// EnableTerminalAwareWidth caps the given column so the rendered table fits
// the terminal width, never shrinking it below minWidth. No effect when
// stdout is not a terminal.
func (t *Table) EnableTerminalAwareWidth(colIndex, minWidth int) {
	t.capColumn = colIndex
	t.capMinimum = minWidth
}

// AddRow adds a row to the table. Short rows are padded to the header count
// and long rows truncated.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	t.applyTerminalCap(widths)

	gap := strings.Repeat(" ", t.padding)
	var sb strings.Builder

	cells := make([]string, len(t.headers))
	for i, h := range t.headers {
		cells[i] = padRight(h, widths[i])
	}
	sb.WriteString(strings.TrimRight(strings.Join(cells, gap), " "))
	sb.WriteString("\n")

	for i, w := range widths {
		cells[i] = strings.Repeat("-", w)
	}
	sb.WriteString(strings.Join(cells, gap))
	sb.WriteString("\n")

	for _, row := range t.rows {
		for i, cell := range row {
			cells[i] = padRight(truncate(cell, widths[i]), widths[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, gap), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// applyTerminalCap shrinks the adaptive column until the table fits the
// terminal, if one is attached.
func (t *Table) applyTerminalCap(widths []int) {
	if t.capColumn < 0 || t.capColumn >= len(widths) {
		return
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		return
	}

	total := t.padding * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	if total <= termWidth {
		return
	}
	capped := widths[t.capColumn] - (total - termWidth)
	widths[t.capColumn] = max(capped, t.capMinimum)
}

// displayWidth returns the printable width of a cell, ignoring ANSI escape
// sequences so colour previews align correctly.
func displayWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			width++
		}
	}
	return width
}

// padRight pads a cell with spaces to the desired printable width.
func padRight(s string, width int) string {
	if w := displayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// truncate trims a plain cell to width. Cells containing escape sequences
// are returned unchanged, cutting one mid-sequence would corrupt the line.
func truncate(s string, width int) string {
	if strings.ContainsRune(s, '\033') || len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}
