package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/engine/world"
)

// Tile glyphs for the room grid.
const (
	glyphWall      = '#'
	glyphFloor     = '.'
	glyphFurniture = '='
	glyphDoor      = '+'
	glyphPlayer    = '@'
	glyphCorpse    = '%'
)

// Each room tile is drawn two cells wide to keep the grid roughly square.
const tileWidth = 2

// doorTiles lists the wall tiles opened by each exit direction.
var doorTiles = map[string][][2]int{
	"north": {{world.GridWidth/2 - 1, 0}, {world.GridWidth / 2, 0}},
	"south": {{world.GridWidth/2 - 1, world.GridHeight - 1}, {world.GridWidth / 2, world.GridHeight - 1}},
	"west":  {{0, world.GridHeight/2 - 1}, {0, world.GridHeight / 2}},
	"east":  {{world.GridWidth - 1, world.GridHeight/2 - 1}, {world.GridWidth - 1, world.GridHeight / 2}},
}

// roomTiles lays out the room as glyph rows: walls, doors, furniture,
// monsters, and the player on top.
func roomTiles(room *world.Room, px, py float64) [][]rune {
	grid := make([][]rune, world.GridHeight)
	for y := range grid {
		grid[y] = make([]rune, world.GridWidth)
		for x := range grid[y] {
			switch {
			case x == 0 || y == 0 || x == world.GridWidth-1 || y == world.GridHeight-1:
				grid[y][x] = glyphWall
			default:
				grid[y][x] = glyphFloor
			}
		}
	}

	for _, f := range room.Furniture() {
		for y := max(1, f.Y1); y <= min(world.GridHeight-2, f.Y2); y++ {
			for x := max(1, f.X1); x <= min(world.GridWidth-2, f.X2); x++ {
				grid[y][x] = glyphFurniture
			}
		}
	}

	for _, dir := range room.Exits() {
		for _, t := range doorTiles[dir] {
			grid[t[1]][t[0]] = glyphDoor
		}
	}

	// Corpses first so a living monster on the same tile stays visible.
	for _, m := range room.Monsters() {
		if !m.Alive {
			setTile(grid, m.X, m.Y, glyphCorpse)
		}
	}
	for _, m := range room.Monsters() {
		if m.Alive {
			setTile(grid, m.X, m.Y, monsterGlyph(m.Name))
		}
	}
	setTile(grid, px, py, glyphPlayer)
	return grid
}

func setTile(grid [][]rune, x, y float64, r rune) {
	tx, ty := int(x), int(y)
	if ty < 0 || ty >= len(grid) || tx < 0 || tx >= len(grid[ty]) {
		return
	}
	grid[ty][tx] = r
}

func monsterGlyph(name string) rune {
	for _, r := range name {
		return unicode.ToUpper(r)
	}
	return 'M'
}

// renderRoom styles the room grid, one string per row.
func renderRoom(room *world.Room, px, py float64) []string {
	tiles := roomTiles(room, px, py)
	rows := make([]string, len(tiles))
	for y, row := range tiles {
		var b strings.Builder
		for _, r := range row {
			b.WriteString(renderTile(r))
		}
		rows[y] = b.String()
	}
	return rows
}

func renderTile(r rune) string {
	switch r {
	case glyphWall:
		return styleWall.Render("##")
	case glyphFurniture:
		return styleFurniture.Render("==")
	case glyphFloor:
		return styleFloor.Render(". ")
	case glyphDoor:
		return styleDoor.Render("++")
	case glyphPlayer:
		return stylePlayer.Render("@ ")
	case glyphCorpse:
		return styleCorpse.Render("% ")
	default:
		return styleMonster.Render(string(r) + " ")
	}
}

// Map layout. Each map cell is a bracketed label followed by one connector
// column; rows alternate between cells and vertical connectors.
const (
	mapLabelWidth = 10
	mapCellWidth  = mapLabelWidth + 1
	mapRowHeight  = 2
)

// mapSize returns the number of map columns and rows spanned by the world.
func mapSize(w *world.World) (cols, rows int) {
	for _, r := range w.Rooms() {
		cols = max(cols, r.MapX+1)
		rows = max(rows, r.MapY+1)
	}
	return cols, rows
}

// mapRoomAt returns the revealed room drawn at map cell (col, row).
func mapRoomAt(s *state.Session, col, row int) (*world.Room, bool) {
	for _, r := range s.World.Rooms() {
		if r.MapX == col && r.MapY == row && s.Revealed(r.ID) {
			return r, true
		}
	}
	return nil, false
}

// mapCellAt converts a position inside the map body into a map cell.
func mapCellAt(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 || y%mapRowHeight != 0 || x%mapCellWidth >= mapLabelWidth {
		return 0, 0, false
	}
	return x / mapCellWidth, y / mapRowHeight, true
}

// linked reports whether from has an exit in direction leading to to.
func linked(from *world.Room, direction string, to *world.Room) bool {
	id, ok := from.Exit(direction)
	return ok && id == to.ID
}

func mapLabel(name string) string {
	runes := []rune(name)
	if len(runes) > mapLabelWidth-2 {
		runes = runes[:mapLabelWidth-2]
	}
	return fmt.Sprintf("[%-*s]", mapLabelWidth-2, string(runes))
}

// renderMap draws the revealed rooms on their map grid. Visited rooms are
// named; revealed but unvisited rooms show as unknown.
func renderMap(s *state.Session) []string {
	cols, rows := mapSize(s.World)
	var lines []string
	for y := range rows {
		var cells, links strings.Builder
		for x := range cols {
			room, ok := mapRoomAt(s, x, y)
			switch {
			case !ok:
				cells.WriteString(strings.Repeat(" ", mapLabelWidth))
			case room.ID == s.Current:
				cells.WriteString(styleMapCurrent.Render(mapLabel(room.Name)))
			case room.Visited:
				cells.WriteString(styleMapVisited.Render(mapLabel(room.Name)))
			default:
				cells.WriteString(styleMapUnknown.Render(mapLabel("???")))
			}

			east, eastOK := mapRoomAt(s, x+1, y)
			if ok && eastOK && linked(room, "east", east) {
				cells.WriteString(styleMapLink.Render("-"))
			} else {
				cells.WriteString(" ")
			}

			south, southOK := mapRoomAt(s, x, y+1)
			if ok && southOK && linked(room, "south", south) {
				links.WriteString(strings.Repeat(" ", mapLabelWidth/2) + styleMapLink.Render("|") + strings.Repeat(" ", mapCellWidth-mapLabelWidth/2-1))
			} else {
				links.WriteString(strings.Repeat(" ", mapCellWidth))
			}
		}
		lines = append(lines, cells.String())
		if y < rows-1 {
			lines = append(lines, links.String())
		}
	}
	return lines
}
