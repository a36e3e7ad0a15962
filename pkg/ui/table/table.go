// Package table renders tabular data for the terminal with lipgloss, or as
// markdown for output which is passed through a markdown renderer.
package table

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TableData is the interface that data sources implement to be rendered
// as a table.
type TableData interface {
	// Header returns the column header labels. Empty labels for every
	// column suppress the header row.
	Header() []string

	// Len returns the number of rows.
	Len() int

	// Row returns the cell values for row i. Return nil to skip a row.
	// Wrap a value in Bold{} to render it in bold.
	Row(i int) []any
}

// Bold wraps a cell value so that it is rendered emphasised.
type Bold struct{ Value any }

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(1)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render renders the table for terminal output, constrained to the width
// of stdout when it is a terminal.
func Render(data TableData) string {
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	return RenderWidth(data, width)
}

// RenderWidth renders the table for terminal output. A positive width
// constrains the table when its natural width exceeds it.
func RenderWidth(data TableData, width int) string {
	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if header := data.Header(); hasHeader(header) {
		t = t.Headers(header...)
	}
	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatCell(v)
		}
		t.Row(cells...)
	}

	result := t.Render()
	if width > 0 && widest(result) > width {
		t.Width(width)
		result = t.Render()
	}
	return result
}

// Write renders the table to w followed by a newline
func Write(w io.Writer, data TableData) error {
	_, err := fmt.Fprintln(w, Render(data))
	return err
}

// RenderMarkdown renders the table data as a markdown table.
func RenderMarkdown(data TableData) string {
	header := data.Header()
	if len(header) == 0 {
		return ""
	}
	var buf strings.Builder

	buf.WriteString("|")
	for _, h := range header {
		buf.WriteString(" " + h + " |")
	}
	buf.WriteString("\n|")
	for range header {
		buf.WriteString("---|")
	}
	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		buf.WriteString("\n|")
		for j := range header {
			cell := "-"
			if j < len(row) {
				cell = formatMarkdownCell(row[j])
			}
			buf.WriteString(" " + cell + " |")
		}
	}
	return buf.String()
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// Truncate shortens s to max runes, collapsing newlines and appending "…"
// if truncated.
func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// FormatCell converts a value to a display string for a terminal cell.
func FormatCell(v any) string {
	if b, ok := v.(Bold); ok {
		return boldStyle.Render(FormatCell(b.Value))
	}
	return formatValue(v)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func formatMarkdownCell(v any) string {
	if b, ok := v.(Bold); ok {
		inner := formatMarkdownCell(b.Value)
		if inner == "-" {
			return inner
		}
		return "**" + inner + "**"
	}
	return strings.ReplaceAll(formatValue(v), "|", "\\|")
}

// formatValue renders nil, empty and zero values as "-"
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	case time.Time:
		if val.IsZero() {
			return "-"
		}
		return val.Format("2006-01-02 15:04")
	case time.Duration:
		return val.Truncate(time.Millisecond).String()
	case int:
		if val == 0 {
			return "-"
		}
		return strconv.Itoa(val)
	case uint:
		if val == 0 {
			return "-"
		}
		return strconv.FormatUint(uint64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	}
	if s := fmt.Sprint(v); s != "" {
		return s
	}
	return "-"
}

func hasHeader(header []string) bool {
	for _, h := range header {
		if h != "" {
			return true
		}
	}
	return false
}

func widest(s string) int {
	var result int
	for _, line := range strings.Split(s, "\n") {
		if n := lipgloss.Width(line); n > result {
			result = n
		}
	}
	return result
}
