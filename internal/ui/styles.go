// Package ui holds the terminal output styles and the interactive
// project-ID prompt.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorDim    = lipgloss.Color("#6b7280")

	// Styles
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	failedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
)

// ErrorBanner renders the uniform banner used on every fatal path.
func ErrorBanner(step string, err error) string {
	return failedStyle.Render(fmt.Sprintf("%s %s: %v", crossMark, step, err))
}

// Failed renders a failed-check line without an error value.
func Failed(msg string) string {
	return failedStyle.Render(fmt.Sprintf("%s %s", crossMark, msg))
}

// Success renders a completed-step line.
func Success(msg string) string {
	return successStyle.Render(fmt.Sprintf("%s %s", checkMark, msg))
}

// Warn renders a non-fatal warning line.
func Warn(msg string) string {
	return warningStyle.Render(fmt.Sprintf("%s %s", warnMark, msg))
}

// Dim renders secondary detail text.
func Dim(msg string) string {
	return dimStyle.Render(msg)
}
