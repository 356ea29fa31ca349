package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#1E6FD9")
	warnColor    = lipgloss.Color("#FFA500")
	badColor     = lipgloss.Color("#C62828")
	goodColor    = lipgloss.Color("#00AA00")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warnColor).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(badColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("trfdesign"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

func printKV(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(fmt.Sprint(value)))
}

func ratingStyle(rating string) lipgloss.Style {
	switch rating {
	case "good":
		return lipgloss.NewStyle().Bold(true).Foreground(goodColor)
	case "fair":
		return lipgloss.NewStyle().Bold(true).Foreground(warnColor)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(badColor)
	}
}
