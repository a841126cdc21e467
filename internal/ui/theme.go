package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style
	BoxUnchecked, BoxChecked                      string
	SymDone, SymPending                           string
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
}

var current = themeFor("classic")

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

// SetTheme switches the theme; unknown names fall back to classic.
func SetTheme(name string) { current = themeFor(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

func themeFor(name string) Theme {
	s := lipgloss.NewStyle
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title:   s().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:   s().Faint(true),
			Accent:  s().Foreground(lipgloss.Color("14")),
			Success: s().Foreground(lipgloss.Color("10")),
			Error:   s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: s().Foreground(lipgloss.Color("11")),

			Selected: s().Bold(true).Foreground(lipgloss.Color("13")),
			Done:     s().Faint(true).Strikethrough(true),

			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		return Theme{
			Title: s(), Muted: s(), Accent: s(), Success: s(), Error: s(), Pending: s(),
			Selected: s(), Done: s(),

			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			Border:      asciiBorder,
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		return Theme{
			Title:   s().Bold(true),
			Muted:   s().Faint(true),
			Accent:  s().Foreground(lipgloss.Color("12")),
			Success: s().Foreground(lipgloss.Color("42")),
			Error:   s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: s().Foreground(lipgloss.Color("214")),

			Selected: s().Bold(true).Reverse(true),
			Done:     s().Faint(true).Strikethrough(true),

			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}
