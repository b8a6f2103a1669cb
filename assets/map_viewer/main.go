package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"dzone/internal/config"
	"dzone/internal/render"
	"dzone/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type mapInfo struct {
	Key  string
	Data *world.MapData
	Err  error
}

type viewer struct {
	maps         []mapInfo
	mapIndex     int
	legendLines  []string
	legendScroll int
	sidebarTab   int
	lastErr      string
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	ensureRuntimeCWD()

	cfg := config.MustLoadConfig("config.yaml")

	maps, err := loadMaps(cfg)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	v := &viewer{
		maps:        maps,
		legendLines: buildLegendLines(),
		sidebarTab:  tabInfo,
	}
	if len(maps) == 0 {
		v.lastErr = "no maps loaded"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("dzone Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

// ensureRuntimeCWD moves to the repository root when started from this directory.
func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	if _, err := os.Stat(filepath.Join("..", "..", "config.yaml")); err == nil {
		_ = os.Chdir(filepath.Join("..", ".."))
	}
}

// loadMaps reads every map under assets/maps plus the town generated from the
// configured seed.
func loadMaps(cfg *config.Config) ([]mapInfo, error) {
	paths, err := filepath.Glob(filepath.Join("assets", "maps", "*.map"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	maps := make([]mapInfo, 0, len(paths)+1)
	for _, p := range paths {
		data, err := world.LoadMap(p)
		maps = append(maps, mapInfo{Key: filepath.Base(p), Data: data, Err: err})
	}

	w, h := cfg.GetWorldSize()
	grid := world.Generate(world.GenerateOptions{Width: w, Height: h, Terraces: cfg.World.Terraces},
		rand.New(rand.NewSource(cfg.World.Seed)))
	maps = append(maps, mapInfo{
		Key:  fmt.Sprintf("generated (seed %d)", cfg.World.Seed),
		Data: &world.MapData{Grid: grid},
	})
	return maps, nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if len(v.maps) > 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
			v.mapIndex = (v.mapIndex + 1) % len(v.maps)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
			v.mapIndex = (v.mapIndex + len(v.maps) - 1) % len(v.maps)
		}
	}

	if v.sidebarTab == tabLegend {
		_, wheelY := ebiten.Wheel()
		v.legendScroll -= int(wheelY * 14)
		if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
			v.legendScroll += 14
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
			v.legendScroll -= 14
		}
		v.legendScroll = min(max(v.legendScroll, 0), v.maxLegendScroll())
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Key, m.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	drawMapPanel(screen, m, padding, padding, mapAreaW, mapAreaH)
	drawSidebar(screen, m, sidebarX, padding, sidebarWidth, mapAreaH, v.sidebarTab, v.legendLines, v.legendScroll)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func (v *viewer) maxLegendScroll() int {
	lineHeight := 14
	contentHeight := max(windowHeight-24-24-12, lineHeight)
	return max(len(v.legendLines)*lineHeight-contentHeight, 0)
}

// drawMapPanel shows the grid top-down, one square per cell, shaded by height.
func drawMapPanel(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	g := m.Data.Grid
	if g.Width <= 0 || g.Height <= 0 {
		ebitenutil.DebugPrintAt(screen, "invalid map size", x+12, y+12)
		return
	}

	tileSize := max(min(w/g.Width, (h-40)/g.Height), 2)
	originX := x + (w-g.Width*tileSize)/2
	originY := y + 40 + (h-40-g.Height*tileSize)/2

	for ty := 0; ty < g.Height; ty++ {
		for tx := 0; tx < g.Width; tx++ {
			t := g.TerrainAt(tx, ty)
			c, ok := render.TerrainColor(t.Kind)
			if !ok {
				continue
			}
			// Higher ground is lighter.
			c = render.Shade(c, 0.3-min(t.Height, 3)*0.1)
			vector.DrawFilledRect(screen, float32(originX+tx*tileSize), float32(originY+ty*tileSize),
				float32(tileSize), float32(tileSize), c, false)
		}
	}

	for _, s := range m.Data.Spawns {
		cx := float32(originX + s.X*tileSize + tileSize/2)
		cy := float32(originY + s.Y*tileSize + tileSize/2)
		vector.DrawFilledCircle(screen, cx, cy, float32(tileSize)*0.35, color.RGBA{50, 200, 255, 255}, true)
	}

	ebitenutil.DebugPrintAt(screen, m.Key, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch maps, Esc to quit", x+12, y+24)
}

func drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int, tab int, legendLines []string, scroll int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	if tab == tabLegend {
		drawLegendList(screen, x, row, h-(row-y)-12, legendLines, scroll)
		return
	}

	g := m.Data.Grid
	lines := []string{
		fmt.Sprintf("Cells: %dx%d", g.Width, g.Height),
		fmt.Sprintf("Open cells: %d", len(g.OpenCells())),
		fmt.Sprintf("Spawns: %d", len(m.Data.Spawns)),
		"",
	}
	lines = append(lines, terrainSummary(g)...)
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

// terrainSummary counts cells per terrain kind and ground height.
func terrainSummary(g *world.Grid) []string {
	kinds := make(map[world.TerrainKind]int)
	heights := make(map[float64]int)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.TerrainAt(x, y)
			kinds[t.Kind]++
			if t.Kind.Walkable() {
				heights[t.Height]++
			}
		}
	}

	var lines []string
	for k := world.TerrainGround; k <= world.TerrainVoid; k++ {
		if n := kinds[k]; n > 0 {
			lines = append(lines, fmt.Sprintf("%-8s %d", k, n))
		}
	}
	levels := make([]float64, 0, len(heights))
	for h := range heights {
		levels = append(levels, h)
	}
	sort.Float64s(levels)
	for _, h := range levels {
		lines = append(lines, fmt.Sprintf("height %.1f: %d", h, heights[h]))
	}
	return lines
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

func drawLegendList(screen *ebiten.Image, x, y, h int, lines []string, scroll int) {
	lineHeight := 14
	startY := y - scroll
	for i, line := range lines {
		drawY := startY + i*lineHeight
		if drawY < y-lineHeight {
			continue
		}
		if drawY > y+h-lineHeight {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+10, drawY)
	}
}

func buildLegendLines() []string {
	return []string{
		"Map symbols:",
		"  .    ground",
		"  1-9  ground raised by N half levels",
		"  =    path",
		"  @    spawn point",
		"  #    wall",
		"  ~    water",
		"  T    tree",
		"  ' '  void",
		"  //   comment line",
		"",
		"Actors climb at most half a level",
		"per hop. Walls, water and trees",
		"block movement.",
	}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	drawFilledRect(screen, x, y, w, thickness, clr)
	drawFilledRect(screen, x, y+h-thickness, w, thickness, clr)
	drawFilledRect(screen, x, y, thickness, h, clr)
	drawFilledRect(screen, x+w-thickness, y, thickness, h, clr)
}
