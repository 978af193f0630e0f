package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"keyquest/internal/engine"
)

// KeyQuest theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconNote    = "🎵"
	IconPiano   = "🎹"
	IconStreak  = "🔥"
	IconToken   = "🪙"
	IconMic     = "🎤"
	IconBolt    = "⚡"
	IconGift    = "🎁"
	IconLock    = "🔒"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconSparkle = "✨"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconShop    = "🛍️"
	IconQuest   = "🗺️"
	IconFriend  = "🤝"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
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

// XPBar renders level progress as a fixed-width gauge.
func XPBar(xp int, width int) string {
	if width <= 0 {
		width = 20
	}
	into := xp % engine.XPPerLevel
	filled := into * width / engine.XPPerLevel
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d/%d XP", Good.Render(bar), into, engine.XPPerLevel)
}

func KindIcon(kind engine.LessonKind) string {
	switch kind {
	case engine.KindNoteID:
		return IconNote
	case engine.KindQuiz:
		return "❓"
	case engine.KindChord, engine.KindBoss:
		return IconPiano
	case engine.KindSong:
		return "🎼"
	default:
		return IconNote
	}
}
