package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/retrodungeon/engine/quest"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleRoomDesc = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleRoomName = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleMagic = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			Italic(true)

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	stylePanelTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// Room grid tiles.
var (
	styleWall      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleFloor     = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	styleFurniture = lipgloss.NewStyle().Foreground(lipgloss.Color("94"))
	styleDoor      = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	stylePlayer    = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	styleMonster   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleCorpse    = lipgloss.NewStyle().Foreground(lipgloss.Color("52"))
)

// Map cells.
var (
	styleMapCurrent = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	styleMapVisited = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styleMapUnknown = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleMapLink    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Stats panel.
var (
	styleLabel    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	styleBarFull  = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	styleBarLow   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleBarEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	styleEquipped = lipgloss.NewStyle().Foreground(lipgloss.Color("228"))
)

// endingColors maps each ending phase to its overlay background.
var endingColors = map[quest.Phase]lipgloss.Color{
	quest.White:    lipgloss.Color("255"),
	quest.Yellow:   lipgloss.Color("226"),
	quest.Red:      lipgloss.Color("196"),
	quest.Black:    lipgloss.Color("16"),
	quest.GameOver: lipgloss.Color("16"),
}

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindRoomDesc lineKind = iota
	kindYouSee
	kindExits
	kindDialogue
	kindMagic
	kindCombat
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "You see:"), strings.HasPrefix(line, "Creatures:"):
		return kindYouSee
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasPrefix(line, "*") && strings.HasSuffix(line, "*"):
		return kindMagic
	case strings.Contains(line, "attacks you for"),
		strings.HasPrefix(line, "You attack the"),
		strings.HasSuffix(line, "is defeated!"),
		strings.HasPrefix(line, "You have been defeated"):
		return kindCombat
	case strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "I don't understand"):
		return kindError
	case containsQuotedSpeech(line):
		return kindDialogue
	default:
		return kindRoomDesc
	}
}

// containsQuotedSpeech checks if a line contains speech in single quotes.
func containsQuotedSpeech(line string) bool {
	inQuote := false
	quoteLen := 0
	for _, r := range line {
		if r == '\'' {
			if inQuote && quoteLen > 5 {
				return true
			}
			inQuote = !inQuote
			quoteLen = 0
		} else if inQuote {
			quoteLen++
		}
	}
	return false
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindYouSee:
		return styledYouSee(line)
	case kindExits:
		return styleExits.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindMagic:
		return styleMagic.Render(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleRoomDesc.Render(line)
	}
}

// styledYouSee renders "You see: a, b" with the names bold.
func styledYouSee(line string) string {
	prefix, rest, ok := strings.Cut(line, ": ")
	if !ok {
		return styleRoomDesc.Render(line)
	}
	return styleRoomDesc.Render(prefix+": ") + styleYouSee.Render(rest)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
