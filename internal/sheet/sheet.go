// Package sheet describes where each actor pose lives on the sprite sheet.
package sheet

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dzone/internal/geometry"
)

// State is the first key of the metric table.
type State string

const (
	Online  State = "online"
	Idle    State = "idle"
	Offline State = "offline"
	Hopping State = "hopping"
)

// States lists every state a complete sheet must describe.
var States = []State{Online, Idle, Offline, Hopping}

// Region is a rectangle on the sheet plus the draw offset from the actor's anchor.
type Region struct {
	X  int `yaml:"x"`
	Y  int `yaml:"y"`
	W  int `yaml:"w"`
	H  int `yaml:"h"`
	OX int `yaml:"ox"`
	OY int `yaml:"oy"`
}

// Animation describes the hopping strip.
type Animation struct {
	Frames      int `yaml:"frames"`
	ZStartFrame int `yaml:"z_start_frame"`
}

// TintRegion lowers the tint strength over part of the sheet.
type TintRegion struct {
	Region `yaml:",inline"`
	Alpha  float64 `yaml:"alpha"`
}

// Tint controls how role colors are laid over the sheet.
type Tint struct {
	Alpha   float64      `yaml:"alpha"`
	Regions []TintRegion `yaml:"regions"`
}

// Sheet is the metric table for one sprite sheet.
type Sheet struct {
	Name      string
	Animation Animation
	Tint      Tint
	regions   map[State]map[geometry.Facing]Region
}

type sheetFile struct {
	Name      string                               `yaml:"name"`
	Animation Animation                            `yaml:"animation"`
	Tint      Tint                                 `yaml:"tint"`
	States    map[State]map[geometry.Facing]Region `yaml:"states"`
}

// Lookup returns the region for a state and facing.
func (s *Sheet) Lookup(state State, f geometry.Facing) (Region, bool) {
	byFacing, ok := s.regions[state]
	if !ok {
		return Region{}, false
	}
	r, ok := byFacing[f]
	return r, ok
}

// Size returns the pixel size the sheet image needs to cover every region,
// including the full hopping strip and the talking phases below each online pose.
func (s *Sheet) Size(talkPhases int) (w, h int) {
	for state, byFacing := range s.regions {
		for _, r := range byFacing {
			rw, rh := r.W, r.H
			if state == Hopping {
				rw = r.W * s.Animation.Frames
			}
			if state == Online && talkPhases > 1 {
				rh = r.H * talkPhases
			}
			w = max(w, r.X+rw)
			h = max(h, r.Y+rh)
		}
	}
	return w, h
}

// Validate checks that every state and facing is present and the animation is usable.
func (s *Sheet) Validate() error {
	if s.Animation.Frames <= 0 {
		return fmt.Errorf("sheet %q: animation frames must be positive", s.Name)
	}
	if s.Animation.ZStartFrame < 0 || s.Animation.ZStartFrame > s.Animation.Frames {
		return fmt.Errorf("sheet %q: z_start_frame %d outside 0..%d", s.Name, s.Animation.ZStartFrame, s.Animation.Frames)
	}
	for _, st := range States {
		for _, f := range geometry.Facings {
			r, ok := s.Lookup(st, f)
			if !ok {
				return fmt.Errorf("sheet %q: missing %s/%s", s.Name, st, f)
			}
			if r.W <= 0 || r.H <= 0 {
				return fmt.Errorf("sheet %q: %s/%s has empty size", s.Name, st, f)
			}
		}
	}
	return nil
}

// Load reads a sheet table from a YAML file.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML sheet table.
func Parse(data []byte) (*Sheet, error) {
	var f sheetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse sheet: %w", err)
	}
	s := &Sheet{
		Name:      f.Name,
		Animation: f.Animation,
		Tint:      f.Tint,
		regions:   f.States,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadOrDefault loads path, falling back to the built-in actor sheet when path is empty.
func LoadOrDefault(path string) (*Sheet, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

const cell = 14

// Default returns the built-in actor sheet.
//
// Online poses sit in the first row, one column per facing, with talking phases
// stacked below them. Idle follows at x=56 and the two offline poses at x=70 and
// x=84. Each facing has a hopping strip starting at y=56.
func Default() *Sheet {
	regions := map[State]map[geometry.Facing]Region{
		Online:  {},
		Idle:    {},
		Offline: {},
		Hopping: {},
	}
	for i, f := range geometry.Facings {
		regions[Online][f] = pose(i*cell, 0)
		regions[Idle][f] = pose(4*cell, 0)
		if f == geometry.North || f == geometry.West {
			regions[Offline][f] = pose(5*cell, 0)
		} else {
			regions[Offline][f] = pose(6*cell, 0)
		}
		regions[Hopping][f] = pose(0, (4+i)*cell)
	}
	return &Sheet{
		Name:      "actor",
		Animation: Animation{Frames: 12, ZStartFrame: 4},
		Tint: Tint{
			Alpha: 0.8,
			Regions: []TintRegion{
				{Region: Region{X: 5 * cell, Y: 0, W: 2 * cell, H: cell}, Alpha: 0.4},
			},
		},
		regions: regions,
	}
}

func pose(x, y int) Region {
	return Region{X: x, Y: y, W: cell, H: cell, OX: -cell / 2, OY: -cell + 2}
}
