// Package styles holds the lipgloss styles shared by the logger, the
// progress tree and the merge result messages.
package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/teammerge/teammerge/internal/utils"
	"golang.org/x/term"
)

var Colors = struct {
	Yellow, Red, Green, Grey, Blue, Foreground lipgloss.AdaptiveColor
}{
	Yellow:     lipgloss.AdaptiveColor{Dark: "#FBE331", Light: "#C0A802"},
	Red:        lipgloss.AdaptiveColor{Dark: "#D93337", Light: "#54121B"},
	Green:      lipgloss.AdaptiveColor{Dark: "#63AC67", Light: "#5B8537"},
	Grey:       lipgloss.AdaptiveColor{Dark: "#8A887D", Light: "#68675F"},
	Blue:       lipgloss.AdaptiveColor{Dark: "#679FE1", Light: "#1D2A3A"},
	Foreground: lipgloss.AdaptiveColor{Dark: "#F3F0E3", Light: "#16150E"},
}

var (
	HeavilyEmphasized = lipgloss.NewStyle().Foreground(Colors.Yellow).Bold(true)

	Info    = HeavilyEmphasized.Foreground(Colors.Blue)
	Warning = HeavilyEmphasized.Foreground(Colors.Yellow)
	Error   = HeavilyEmphasized.Foreground(Colors.Red)
	Success = HeavilyEmphasized.Foreground(Colors.Green)

	Dimmed       = lipgloss.NewStyle().Foreground(Colors.Grey)
	DimmedItalic = Dimmed.Italic(true)
)

func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// RenderSuccessMessage boxes a green heading above dimmed detail lines.
func RenderSuccessMessage(heading string, lines ...string) string {
	return renderBox(Success, Dimmed, Colors.Green, heading, lines)
}

// RenderErrorMessage boxes a red heading above red detail lines.
func RenderErrorMessage(heading string, lines ...string) string {
	return renderBox(Error, lipgloss.NewStyle().Foreground(Colors.Red), Colors.Red, heading, lines)
}

func renderBox(headingStyle, lineStyle lipgloss.Style, border lipgloss.AdaptiveColor, heading string, lines []string) string {
	s := headingStyle.Render(utils.CapitalizeFirst(heading))
	for _, line := range lines {
		s += "\n" + lineStyle.Render(line)
	}

	// wrap inside the terminal, but never pad past the content
	width := min(TerminalWidth()-2, lipgloss.Width(s)+2)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		AlignHorizontal(lipgloss.Center).
		Width(width).
		Render(s)
}
