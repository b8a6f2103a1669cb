package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds all town configuration values
type Config struct {
	Display      DisplayConfig      `yaml:"display" toml:"display"`
	World        WorldConfig        `yaml:"world" toml:"world"`
	Animation    AnimationConfig    `yaml:"animation" toml:"animation"`
	Behavior     BehaviorConfig     `yaml:"behavior" toml:"behavior"`
	Conversation ConversationConfig `yaml:"conversation" toml:"conversation"`
	Actors       ActorsConfig       `yaml:"actors" toml:"actors"`
	Logging      LoggingConfig      `yaml:"logging" toml:"logging"`
	Transport    TransportConfig    `yaml:"transport" toml:"transport"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width" toml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height" toml:"screen_height"`
	WindowTitle  string `yaml:"window_title" toml:"window_title"`
	Resizable    bool   `yaml:"resizable" toml:"resizable"`
	Scale        int    `yaml:"scale" toml:"scale"`
	ShowStats    bool   `yaml:"show_stats" toml:"show_stats"`
}

type WorldConfig struct {
	Width  int   `yaml:"width" toml:"width"`
	Height int   `yaml:"height" toml:"height"`
	Seed   int64 `yaml:"seed" toml:"seed"`
	// Optional map file; the town is generated when empty
	Map string `yaml:"map" toml:"map"`
	// Number of raised terraces sprinkled over the generated town
	Terraces int `yaml:"terraces" toml:"terraces"`
}

// AnimationConfig describes the tick clock and hop animation timing.
// Frame counts of the hop itself come from the sprite sheet.
type AnimationConfig struct {
	TicksPerSecond int `yaml:"ticks_per_second" toml:"ticks_per_second"`
	FramesPerStep  int `yaml:"frames_per_step" toml:"frames_per_step"`
	HalfwayFrame   int `yaml:"halfway_frame" toml:"halfway_frame"`
	DrawOrderFrame int `yaml:"draw_order_frame" toml:"draw_order_frame"`
	HopOffsetCap   int `yaml:"hop_offset_cap" toml:"hop_offset_cap"`
	TalkPhaseTicks int `yaml:"talk_phase_ticks" toml:"talk_phase_ticks"`
	TalkPhases     int `yaml:"talk_phases" toml:"talk_phases"`
}

type BehaviorConfig struct {
	WanderDelayMin  int `yaml:"wander_delay_min" toml:"wander_delay_min"`
	WanderDelayMax  int `yaml:"wander_delay_max" toml:"wander_delay_max"`
	GoToRetryLimit  int `yaml:"goto_retry_limit" toml:"goto_retry_limit"`
	GoToRetryDelay  int `yaml:"goto_retry_delay" toml:"goto_retry_delay"`
	GoToSearchNodes int `yaml:"goto_search_nodes" toml:"goto_search_nodes"`
}

type ConversationConfig struct {
	ReactJitterTicks   int     `yaml:"react_jitter_ticks" toml:"react_jitter_ticks"`
	NearbyDistance     float64 `yaml:"nearby_distance" toml:"nearby_distance"`
	ScrollTicksPerChar int     `yaml:"scroll_ticks_per_char" toml:"scroll_ticks_per_char"`
	HoldTicks          int     `yaml:"hold_ticks" toml:"hold_ticks"`
}

type ActorsConfig struct {
	Sheet      string           `yaml:"sheet" toml:"sheet"`
	SheetImage string           `yaml:"sheet_image" toml:"sheet_image"`
	Residents  []ResidentConfig `yaml:"residents" toml:"residents"`
}

// ResidentConfig seeds an actor at startup, before the transport reports anyone.
type ResidentConfig struct {
	UID       string `yaml:"uid" toml:"uid"`
	Username  string `yaml:"username" toml:"username"`
	RoleColor string `yaml:"role_color" toml:"role_color"`
	Presence  string `yaml:"presence" toml:"presence"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" or "console"
}

type TransportConfig struct {
	ListenAddress string        `yaml:"listen_address" toml:"listen_address"`
	Path          string        `yaml:"path" toml:"path"`
	ReadTimeout   time.Duration `yaml:"read_timeout" toml:"read_timeout"`
	MaxFrameBytes int64         `yaml:"max_frame_bytes" toml:"max_frame_bytes"`
}

var GlobalConfig *Config

// LoadConfig loads the configuration from a YAML or TOML file, chosen by extension
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = &config

	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values that cannot be repaired by a getter fallback.
func (c *Config) Validate() error {
	if c.Behavior.WanderDelayMax > 0 && c.Behavior.WanderDelayMax < c.Behavior.WanderDelayMin {
		return fmt.Errorf("behavior.wander_delay_max (%d) is below wander_delay_min (%d)",
			c.Behavior.WanderDelayMax, c.Behavior.WanderDelayMin)
	}
	if c.Animation.DrawOrderFrame < 0 || c.Animation.HalfwayFrame < 0 {
		return fmt.Errorf("animation checkpoints must not be negative")
	}
	seen := make(map[string]bool, len(c.Actors.Residents))
	for _, r := range c.Actors.Residents {
		if r.UID == "" {
			return fmt.Errorf("actors.residents: entry %q has no uid", r.Username)
		}
		if seen[r.UID] {
			return fmt.Errorf("actors.residents: duplicate uid %q", r.UID)
		}
		seen[r.UID] = true
	}
	return nil
}

// Helper functions for easy access to commonly used values

func (c *Config) GetScreenWidth() int {
	if c.Display.ScreenWidth <= 0 {
		return 640
	}
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	if c.Display.ScreenHeight <= 0 {
		return 480
	}
	return c.Display.ScreenHeight
}

func (c *Config) GetWorldSize() (width, height int) {
	width, height = c.World.Width, c.World.Height
	if width <= 0 {
		width = 24
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}

// GetTPS returns the tick rate of the animation clock
func (c *Config) GetTPS() int {
	if c.Animation.TicksPerSecond <= 0 {
		return 60
	}
	return c.Animation.TicksPerSecond
}

func (c *Config) GetFramesPerStep() int {
	if c.Animation.FramesPerStep <= 0 {
		return 3
	}
	return c.Animation.FramesPerStep
}

func (c *Config) GetHalfwayFrame() int {
	if c.Animation.HalfwayFrame <= 0 {
		return 6
	}
	return c.Animation.HalfwayFrame
}

func (c *Config) GetDrawOrderFrame() int {
	if c.Animation.DrawOrderFrame <= 0 {
		return 8
	}
	return c.Animation.DrawOrderFrame
}

func (c *Config) GetHopOffsetCap() int {
	if c.Animation.HopOffsetCap <= 0 {
		return 8
	}
	return c.Animation.HopOffsetCap
}

func (c *Config) GetTalkPhase() (ticks, phases int) {
	ticks, phases = c.Animation.TalkPhaseTicks, c.Animation.TalkPhases
	if ticks <= 0 {
		ticks = 4
	}
	if phases <= 0 {
		phases = 4
	}
	return ticks, phases
}

func (c *Config) GetWanderDelay() (min, max int) {
	min, max = c.Behavior.WanderDelayMin, c.Behavior.WanderDelayMax
	if min <= 0 {
		min = 20
	}
	if max < min {
		max = min + 200
	}
	return min, max
}

func (c *Config) GetGoToRetry() (limit, delay int) {
	limit, delay = c.Behavior.GoToRetryLimit, c.Behavior.GoToRetryDelay
	if limit <= 0 {
		limit = 3
	}
	if delay <= 0 {
		delay = 20
	}
	return limit, delay
}

func (c *Config) GetGoToSearchNodes() int {
	if c.Behavior.GoToSearchNodes <= 0 {
		return 500
	}
	return c.Behavior.GoToSearchNodes
}

func (c *Config) GetReactJitter() int {
	if c.Conversation.ReactJitterTicks < 0 {
		return 0
	}
	if c.Conversation.ReactJitterTicks == 0 {
		return 60
	}
	return c.Conversation.ReactJitterTicks
}

func (c *Config) GetNearbyDistance() float64 {
	if c.Conversation.NearbyDistance <= 0 {
		return 3
	}
	return c.Conversation.NearbyDistance
}

func (c *Config) GetScrollTicksPerChar() int {
	if c.Conversation.ScrollTicksPerChar <= 0 {
		return 3
	}
	return c.Conversation.ScrollTicksPerChar
}

func (c *Config) GetHoldTicks() int {
	if c.Conversation.HoldTicks <= 0 {
		return 120
	}
	return c.Conversation.HoldTicks
}

func (c *Config) GetTransportPath() string {
	if c.Transport.Path == "" {
		return "/ws"
	}
	return c.Transport.Path
}

func (c *Config) GetReadTimeout() time.Duration {
	if c.Transport.ReadTimeout <= 0 {
		return 60 * time.Second
	}
	return c.Transport.ReadTimeout
}

func (c *Config) GetMaxFrameBytes() int64 {
	if c.Transport.MaxFrameBytes <= 0 {
		return 16 * 1024
	}
	return c.Transport.MaxFrameBytes
}
