package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
)

// FieldRow is one field shown by RenderFieldTable.
type FieldRow struct {
	Label string
	Type  string
	Value string
}

const (
	maxLabelColumn = 24
	minValueColumn = 20
	columnPadding  = 2
)

// RenderFieldTable lays out fields as label, type and value columns sized
// to the display. Long values wrap inside the value column.
func RenderFieldTable(display *DisplayContext, rows []FieldRow) string {
	if len(rows) == 0 {
		return ""
	}

	labelWidth, typeWidth := 0, 0
	data := make([][]string, len(rows))
	for i, r := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.Label))
		typeWidth = max(typeWidth, runewidth.StringWidth(r.Type))
		data[i] = []string{r.Label, r.Type, strings.TrimRight(r.Value, "\n")}
	}
	labelWidth = min(labelWidth, maxLabelColumn)
	valueWidth := display.AvailableWidth(2) - labelWidth - typeWidth - 2*columnPadding
	valueWidth = max(valueWidth, minValueColumn)
	widths := []int{labelWidth, typeWidth, valueWidth}

	tbl := table.New().
		Border(lipgloss.Border{Middle: "─"}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch col {
			case 0:
				style = Accent
			case 1:
				style = Muted
			default:
				style = lipgloss.NewStyle()
			}
			style = style.Width(widths[col])
			if col < len(widths)-1 {
				style = style.PaddingRight(columnPadding)
			}
			return style
		}).
		Rows(data...)

	return tbl.Render()
}

// TruncateWithEllipsis truncates a string to maxLen, adding ellipsis if needed.
// It tries to break at word boundaries.
func TruncateWithEllipsis(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}

	truncated := runewidth.Truncate(s, maxLen-3, "")
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}
