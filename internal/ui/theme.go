package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Fight Club theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconMission  = "🎯"
	IconSparkle  = "✨"
	IconDone     = "✅"
	IconFail     = "💀"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconHeart    = "❤️"
	IconFlame    = "🔥"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconLock     = "🔒"
	IconUnlock   = "🔓"
	IconScroll   = "📜"
	IconCalendar = "📅"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cCyan    = lipgloss.Color("51")  // cyan
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	// Persona styles: water, tech, fire.
	Kei     = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	MrRobot = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Tyler   = lipgloss.NewStyle().Bold(true).Foreground(cBad)

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// PersonaStyle returns the display style for an alter-ego id.
func PersonaStyle(persona string) lipgloss.Style {
	switch persona {
	case "kei":
		return Kei
	case "mr-robot":
		return MrRobot
	case "tyler":
		return Tyler
	default:
		return Muted
	}
}

func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed":
		return Good.Render("completed")
	case "in-progress":
		return H2.Render("in-progress")
	case "not-started":
		return Warn.Render("not-started")
	case "failed":
		return Bad.Render("failed")
	default:
		return Muted.Render(status)
	}
}

// SignedDelta renders a stat change with its sign, green for gains and red
// for losses.
func SignedDelta(v int) string {
	switch {
	case v > 0:
		return Good.Render(fmt.Sprintf("+%d", v))
	case v < 0:
		return Bad.Render(fmt.Sprintf("%d", v))
	default:
		return Muted.Render("0")
	}
}
