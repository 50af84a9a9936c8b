// Package ui renders styled terminal output for the git-pair CLI.
package ui

import (
	"os"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"
)

// Color modes accepted by SetColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fb95f"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af3c"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e05c5c")).Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fa8e0"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a"))
)

var colorEnabled = detectColor(ColorAuto)

// SetColorMode switches colour on or off. Unknown modes behave like auto.
func SetColorMode(mode string) {
	colorEnabled = detectColor(mode)
}

// ColorEnabled reports whether Render* functions emit ANSI styling.
func ColorEnabled() bool {
	return colorEnabled
}

func detectColor(mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- fd fits in int
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// RenderPass styles a success marker or message.
func RenderPass(s string) string { return render(passStyle, s) }

// RenderWarn styles a warning.
func RenderWarn(s string) string { return render(warnStyle, s) }

// RenderFail styles an error.
func RenderFail(s string) string { return render(failStyle, s) }

// RenderAccent highlights commands, paths and names.
func RenderAccent(s string) string { return render(accentStyle, s) }

// RenderMuted de-emphasizes secondary detail.
func RenderMuted(s string) string { return render(mutedStyle, s) }
