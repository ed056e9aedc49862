// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette for terminal output. Colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color

	// Accent highlights section titles and character names.
	Accent lipgloss.Color

	// UnknownField marks properties outside the field registry.
	UnknownField lipgloss.Color

	Success lipgloss.Color
	Failure lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),

	Accent:       lipgloss.Color("75"),  // blue
	UnknownField: lipgloss.Color("220"), // amber

	Success: lipgloss.Color("114"), // green
	Failure: lipgloss.Color("196"), // red
}
