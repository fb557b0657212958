package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Available, Today, Advisory          lipgloss.Style
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
	SymOK, SymFail, SymWarn, SymSlot              string
	BarFull, BarEmpty                             string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	plain := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title:     plain.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:     plain.Faint(true),
			Accent:    plain.Foreground(lipgloss.Color("14")),
			Success:   plain.Foreground(lipgloss.Color("10")),
			Error:     plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:   plain.Foreground(lipgloss.Color("11")),
			Selected:  plain.Bold(true).Reverse(true).Foreground(lipgloss.Color("13")),
			Available: plain.Foreground(lipgloss.Color("10")).Bold(true),
			Today:     plain.Underline(true),
			Advisory:  plain.Foreground(lipgloss.Color("11")).Italic(true),
			Border:    lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("13"),
			SymOK: "✔", SymFail: "✖", SymWarn: "!", SymSlot: "◼",
			BarFull: "█", BarEmpty: "░",
		}
	case "mono":
		current = Theme{
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Selected: plain.Reverse(true), Available: plain.Bold(true),
			Today: plain, Advisory: plain,
			Border: lipgloss.NormalBorder(), BorderColor: lipgloss.NoColor{},
			SymOK: "ok", SymFail: "x", SymWarn: "!", SymSlot: "*",
			BarFull: "#", BarEmpty: "-",
		}
	default: // classic
		current = Theme{
			Title:     plain.Bold(true),
			Muted:     plain.Faint(true),
			Accent:    plain.Foreground(lipgloss.Color("12")),
			Success:   plain.Foreground(lipgloss.Color("42")),
			Error:     plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:   plain.Foreground(lipgloss.Color("214")),
			Selected:  plain.Bold(true).Reverse(true),
			Available: plain.Foreground(lipgloss.Color("42")).Bold(true),
			Today:     plain.Underline(true),
			Advisory:  plain.Foreground(lipgloss.Color("214")),
			Border:    lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("8"),
			SymOK: "✔", SymFail: "✖", SymWarn: "!", SymSlot: "●",
			BarFull: "█", BarEmpty: "░",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
