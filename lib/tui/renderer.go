// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// newRenderer returns a lipgloss renderer for w. The color profile is
// detected from w unless the environment overrides it: NO_COLOR turns
// color off, and CLICOLOR_FORCE (any value but "0") forces 256-color
// output, for example when piping into "less -R".
func newRenderer(w io.Writer) *lipgloss.Renderer {
	if os.Getenv("NO_COLOR") != "" {
		renderer := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii))
		renderer.SetColorProfile(termenv.Ascii)
		return renderer
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		renderer := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
		renderer.SetColorProfile(termenv.ANSI256)
		return renderer
	}
	return lipgloss.NewRenderer(w)
}
