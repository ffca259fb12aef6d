package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/retrodungeon/engine/state"
)

const (
	statsWidth = 30
	barWidth   = 10
)

// healthBar renders cur/max as a fixed-width bar. Empty when max is not
// positive.
func healthBar(cur, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	cur = min(max, cur)
	filled := cur * width / max
	if cur > 0 && filled == 0 {
		filled = 1
	}
	fill := styleBarFull
	if cur*4 <= max {
		fill = styleBarLow
	}
	return fill.Render(strings.Repeat("█", filled)) + styleBarEmpty.Render(strings.Repeat("░", width-filled))
}

// renderStatusBar produces a full-width inverted status line showing the
// current room, exits, and the player's combat totals.
func (m Model) renderStatusBar() string {
	s := m.engine.Session
	room := m.engine.Room()

	left := fmt.Sprintf(" %s | Exits: %s", room.Name, strings.Join(room.Exits(), ","))
	right := fmt.Sprintf("HP:%d ATK:%d ARM:%d ", s.Player.Health, s.TotalAttack(), s.TotalArmor())

	// Show the carried count if it fits.
	if n := s.Inventory.Len(); n > 0 {
		candidate := fmt.Sprintf("Items:%d | %s", n, right)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// statsLines builds the stats panel body: health, equipment, inventory, and
// the creatures in the room.
func statsLines(s *state.Session, defs *state.Defs) []string {
	p := s.Player
	lines := []string{
		styleLabel.Render("Health ") + healthBar(p.Health, state.MaxHealth, barWidth) + fmt.Sprintf(" %d/%d", p.Health, state.MaxHealth),
		styleLabel.Render("Attack ") + fmt.Sprintf("%-4d", s.TotalAttack()) + styleLabel.Render("Armor ") + fmt.Sprint(s.TotalArmor()),
	}

	weapon, armor := "-", "-"
	if it, ok := s.Inventory.Weapon(); ok {
		weapon = it.Name
	}
	if it, ok := s.Inventory.Armor(); ok {
		armor = it.Name
	}
	lines = append(lines,
		styleLabel.Render("Weapon ")+weapon,
		styleLabel.Render("Wearing ")+armor,
		"",
		stylePanelTitle.Render("Inventory"),
	)

	items := s.Inventory.Items()
	if len(items) == 0 {
		lines = append(lines, styleLabel.Render("  (empty)"))
	}
	for i, it := range items {
		line := "  " + it.Name
		switch w, a := s.Inventory.Equipped(i); {
		case w && a:
			line += styleEquipped.Render(" (W,A)")
		case w:
			line += styleEquipped.Render(" (W)")
		case a:
			line += styleEquipped.Render(" (A)")
		}
		lines = append(lines, line)
	}

	var creatures []string
	for _, mon := range s.Room().Monsters() {
		if !mon.Alive {
			continue
		}
		creatures = append(creatures, fmt.Sprintf("  %-9s ", mon.Name)+healthBar(mon.Health, defs.MaxHealth(mon.Species), barWidth/2))
	}
	if len(creatures) > 0 {
		lines = append(lines, "", stylePanelTitle.Render("Creatures"))
		lines = append(lines, creatures...)
	}

	if s.MapView && s.Flags.HasTeleport {
		lines = append(lines, "", styleMagic.Render("Click a room to teleport"))
	}
	return lines
}
