// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// columnGap is the number of spaces between table columns.
const columnGap = 2

// MaxCellWidth is the widest a table cell is drawn. Longer cells are
// cut and end in an ellipsis.
const MaxCellWidth = 40

// RenderTable writes rows under a header line and a rule. Columns are
// left-aligned and sized to their widest cell; the last column is not
// padded. Rows shorter than the header are padded with empty cells.
// Cells wider than [MaxCellWidth] are truncated.
func RenderTable(w io.Writer, theme Theme, headers []string, rows [][]string) error {
	renderer := newRenderer(w)

	cellRows := make([][]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(headers))
		for i := 0; i < len(row) && i < len(cells); i++ {
			cells[i] = ansi.Truncate(row[i], MaxCellWidth, "…")
		}
		cellRows[r] = cells
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = ansi.StringWidth(header)
	}
	for _, cells := range cellRows {
		for i, cell := range cells {
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}

	headerStyle := renderer.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	cellStyle := renderer.NewStyle().Foreground(theme.NormalText)
	ruleStyle := renderer.NewStyle().Foreground(theme.BorderColor)

	var output strings.Builder
	output.WriteString(renderRow(headers, widths, headerStyle))
	output.WriteByte('\n')

	total := 0
	for _, width := range widths {
		total += width
	}
	total += columnGap * max(len(widths)-1, 0)
	output.WriteString(ruleStyle.Render(strings.Repeat("─", total)))
	output.WriteByte('\n')

	for _, cells := range cellRows {
		output.WriteString(renderRow(cells, widths, cellStyle))
		output.WriteByte('\n')
	}

	_, err := io.WriteString(w, output.String())
	return err
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	var line strings.Builder
	for i, cell := range cells {
		if i == len(cells)-1 {
			line.WriteString(style.Render(cell))
			break
		}
		line.WriteString(style.Width(widths[i] + columnGap).Render(cell))
	}
	return strings.TrimRight(line.String(), " ")
}
