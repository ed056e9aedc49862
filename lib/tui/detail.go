// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// detailWidth is the line width long detail values are wrapped to.
const detailWidth = 80

// Section is a titled group of labeled values in a detail view.
type Section struct {
	Title string
	Items []Item
}

// Item is one labeled value. Unknown items are drawn in the theme's
// UnknownField color and suffixed with "(unknown)" so they stand out
// without color too.
type Item struct {
	Label   string
	Value   string
	Unknown bool
}

// RenderDetail writes a title followed by each section, labels aligned
// across the whole view. Empty sections are skipped.
func RenderDetail(w io.Writer, theme Theme, title string, sections []Section) error {
	renderer := newRenderer(w)
	titleStyle := renderer.NewStyle().Bold(true).Foreground(theme.Accent)
	sectionStyle := renderer.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	valueStyle := renderer.NewStyle().Foreground(theme.NormalText)
	unknownStyle := renderer.NewStyle().Foreground(theme.UnknownField)

	labelWidth := 0
	for _, section := range sections {
		for _, item := range section.Items {
			labelWidth = max(labelWidth, ansi.StringWidth(item.Label))
		}
	}
	labelStyle := renderer.NewStyle().Foreground(theme.FaintText).Width(labelWidth + columnGap)
	indent := strings.Repeat(" ", 2+labelWidth+columnGap)
	valueWidth := max(detailWidth-len(indent), 20)

	var output strings.Builder
	output.WriteString(titleStyle.Render(title))
	output.WriteByte('\n')
	for _, section := range sections {
		if len(section.Items) == 0 {
			continue
		}
		output.WriteByte('\n')
		output.WriteString(sectionStyle.Render(section.Title))
		output.WriteByte('\n')
		for _, item := range section.Items {
			text, style := item.Value, valueStyle
			if item.Unknown {
				text, style = text+" (unknown)", unknownStyle
			}
			lines := strings.Split(ansi.Wordwrap(text, valueWidth, ""), "\n")
			output.WriteString("  " + labelStyle.Render(item.Label) + style.Render(lines[0]))
			output.WriteByte('\n')
			for _, line := range lines[1:] {
				output.WriteString(indent + style.Render(line))
				output.WriteByte('\n')
			}
		}
	}

	_, err := io.WriteString(w, output.String())
	return err
}

// RenderStatus writes one status line: a colored OK or FAIL marker, the
// subject, and an optional detail.
func RenderStatus(w io.Writer, theme Theme, ok bool, subject, detail string) error {
	renderer := newRenderer(w)
	marker := renderer.NewStyle().Bold(true).Foreground(theme.Success).Render("OK  ")
	if !ok {
		marker = renderer.NewStyle().Bold(true).Foreground(theme.Failure).Render("FAIL")
	}
	line := marker + " " + subject
	if detail != "" {
		line += renderer.NewStyle().Foreground(theme.FaintText).Render("  " + detail)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
