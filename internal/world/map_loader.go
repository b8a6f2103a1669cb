package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// MapData is a town read from a map file.
type MapData struct {
	Grid   *Grid
	Spawns []Cell
}

// LoadMap loads a town from a text map.
//
// One line per row. Symbols: '.' ground, '1'-'9' ground raised by that many
// half levels, '=' path, '@' spawn point on ground, '#' wall, '~' water,
// 'T' tree, ' ' void. Lines starting with "//" are comments.
func LoadMap(path string) (*MapData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", path, err)
	}
	defer file.Close()
	return ParseMap(file)
}

// ParseMap reads a text map from r. Short rows are padded with void.
func ParseMap(r io.Reader) (*MapData, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, "//") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data")
	}

	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	data := &MapData{Grid: NewGrid(width, len(lines))}
	for y, line := range lines {
		for x := 0; x < width; x++ {
			sym := byte(' ')
			if x < len(line) {
				sym = line[x]
			}
			t, err := terrainFromSymbol(sym)
			if err != nil {
				return nil, fmt.Errorf("map row %d column %d: %w", y+1, x+1, err)
			}
			data.Grid.SetTerrain(x, y, t)
			if sym == '@' {
				data.Spawns = append(data.Spawns, Cell{x, y})
			}
		}
	}
	return data, nil
}

func terrainFromSymbol(sym byte) (Terrain, error) {
	switch {
	case sym == '.' || sym == '@':
		return Terrain{Kind: TerrainGround}, nil
	case sym >= '1' && sym <= '9':
		return Terrain{Kind: TerrainGround, Height: float64(sym-'0') / 2}, nil
	case sym == '=':
		return Terrain{Kind: TerrainPath}, nil
	case sym == '#':
		return Terrain{Kind: TerrainWall}, nil
	case sym == '~':
		return Terrain{Kind: TerrainWater}, nil
	case sym == 'T':
		return Terrain{Kind: TerrainTree}, nil
	case sym == ' ':
		return Terrain{Kind: TerrainVoid}, nil
	}
	return Terrain{}, fmt.Errorf("unknown map symbol %q", sym)
}
