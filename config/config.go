package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/vi-life/board"
	"github.com/lixenwraith/vi-life/constants"
	"github.com/lixenwraith/vi-life/engine"
	"github.com/lixenwraith/vi-life/modes"
)

// EnvPath overrides the default config file location
const EnvPath = "VI_LIFE_CONFIG"

// DefaultPath is used when neither -config nor EnvPath is set
const DefaultPath = "vi-life.toml"

type Config struct {
	Engine  EngineConfig        `toml:"engine"`
	Board   BoardConfig         `toml:"board"`
	Keys    map[string][]string `toml:"keys"` // action name -> key names
	Audio   AudioConfig         `toml:"audio"`
	Logging LoggingConfig       `toml:"logging"`
	Network NetworkConfig       `toml:"network"`
}

type EngineConfig struct {
	FrameInterval time.Duration `toml:"frame_interval"`
	MaxStep       float64       `toml:"max_step"` // seconds
}

type BoardConfig struct {
	Rows         int     `toml:"rows"` // 0 fits the screen
	Cols         int     `toml:"cols"` // 0 fits the screen
	TileWidth    int     `toml:"tile_width"`
	TileHeight   int     `toml:"tile_height"`
	Wrap         bool    `toml:"wrap"`
	Rule         string  `toml:"rule"`
	StepInterval float64 `toml:"step_interval"` // game seconds per generation
	PatternFile  string  `toml:"pattern_file"`
	Pattern      string  `toml:"pattern"` // stamped at the centre on start, "" for an empty board
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	Dir    string `toml:"dir"`
}

type NetworkConfig struct {
	Enabled        bool     `toml:"enabled"`
	BindAddress    string   `toml:"bind_address"`
	BroadcastRate  float64  `toml:"broadcast_rate"` // snapshots per second per hub
	BroadcastBurst int      `toml:"broadcast_burst"`
	ImageTileSize  int      `toml:"image_tile_size"` // pixels per cell on /board.png
	MaxClients     int      `toml:"max_clients"`
	CORSOrigins    []string `toml:"cors_origins"`
}

// Load reads path over the defaults. An empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns a fresh default configuration
func Default() *Config {
	return defaults()
}

// Validate checks value ranges and the rule and key notation
func (c *Config) Validate() error {
	if c.Engine.FrameInterval <= 0 {
		return fmt.Errorf("engine.frame_interval must be positive, got %s", c.Engine.FrameInterval)
	}
	if c.Engine.MaxStep <= 0 {
		return fmt.Errorf("engine.max_step must be positive, got %v", c.Engine.MaxStep)
	}
	if c.Board.Rows < 0 || c.Board.Cols < 0 {
		return fmt.Errorf("board size must not be negative, got %dx%d", c.Board.Rows, c.Board.Cols)
	}
	if c.Board.TileWidth <= 0 || c.Board.TileHeight <= 0 {
		return fmt.Errorf("board tile size must be positive, got %dx%d", c.Board.TileWidth, c.Board.TileHeight)
	}
	if c.Board.StepInterval <= 0 {
		return fmt.Errorf("board.step_interval must be positive, got %v", c.Board.StepInterval)
	}
	if _, err := board.ParseRule(c.Board.Rule); err != nil {
		return err
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	if err := validateKeys(c.Keys); err != nil {
		return err
	}
	if c.Network.Enabled && c.Network.BindAddress == "" {
		return fmt.Errorf("network.bind_address is required when network is enabled")
	}
	if c.Network.BroadcastRate <= 0 || c.Network.BroadcastBurst <= 0 {
		return fmt.Errorf("network broadcast rate and burst must be positive")
	}
	return nil
}

// validateKeys rejects key names no terminal event maps to
func validateKeys(bindings map[string][]string) error {
	for action, keys := range bindings {
		for _, key := range keys {
			if name := engine.NormalizeKey(key); !modes.ValidKeyName(name) {
				return fmt.Errorf("%w: %q for %s", engine.ErrUnknownKey, key, action)
			}
		}
	}
	return nil
}

// Rule returns the parsed automaton rule
func (c *Config) Rule() (board.Rule, error) {
	return board.ParseRule(c.Board.Rule)
}

// KeyMap builds the engine key map. Actions not listed keep their default keys
func (c *Config) KeyMap() (engine.KeyMap, error) {
	return engine.ParseKeyMap(c.Keys)
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			FrameInterval: constants.FrameUpdateInterval,
			MaxStep:       constants.MaxStep,
		},
		Board: BoardConfig{
			TileWidth:    constants.TileWidth,
			TileHeight:   constants.TileHeight,
			Wrap:         true,
			Rule:         constants.DefaultRule,
			StepInterval: constants.DefaultStepInterval,
			Pattern:      "glider",
		},
		Audio: AudioConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level:  "debug",
			Format: "console",
			Dir:    "logs",
		},
		Network: NetworkConfig{
			Enabled:        false,
			BindAddress:    "127.0.0.1:8080",
			BroadcastRate:  10,
			BroadcastBurst: 2,
			ImageTileSize:  constants.ImageTileSize,
			MaxClients:     64,
		},
	}
}
