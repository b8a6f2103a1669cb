package geometry

import "strings"

// Facing is the direction an actor looks in.
type Facing int

const (
	North Facing = iota
	East
	South
	West
)

// Facings lists every facing in sheet order.
var Facings = []Facing{North, East, South, West}

func (f Facing) String() string {
	switch f {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseFacing converts a facing name, case-insensitively.
func ParseFacing(s string) (Facing, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north":
		return North, true
	case "east":
		return East, true
	case "south":
		return South, true
	case "west":
		return West, true
	}
	return North, false
}

// FacingOf picks the facing for a step. The x axis wins; a zero step faces south.
func FacingOf(dx, dy float64) Facing {
	switch {
	case dx < 0:
		return West
	case dx > 0:
		return East
	case dy < 0:
		return North
	default:
		return South
	}
}

// Step returns the unit grid step for f.
func (f Facing) Step() (dx, dy int) {
	switch f {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// TalkingFacing remaps facings that have no talking art: north shows east and
// west shows south.
func (f Facing) TalkingFacing() Facing {
	switch f {
	case North:
		return East
	case West:
		return South
	}
	return f
}

// UnmarshalText lets facings appear by name in YAML and TOML.
func (f *Facing) UnmarshalText(b []byte) error {
	v, ok := ParseFacing(string(b))
	if !ok {
		return &UnknownFacingError{Name: string(b)}
	}
	*f = v
	return nil
}

func (f Facing) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

type UnknownFacingError struct {
	Name string
}

func (e *UnknownFacingError) Error() string {
	return "geometry: unknown facing " + `"` + e.Name + `"`
}
