package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"werewolf/internal/game"
)

// ServerConfig is the full server configuration. Loading is handled by
// viper in viper_config.go.
type ServerConfig struct {
	Server ServerSettings `yaml:"server"`
	Game   GameSettings   `yaml:"game"`
}

// ServerSettings contains server-wide settings.
type ServerSettings struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"` // 0 for SSE support
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// Rate limiting (golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`

	MaxRequestSize int64 `yaml:"maxRequestSize"`
}

// GameSettings contains the engine's per-game defaults.
type GameSettings struct {
	NightDuration time.Duration `yaml:"nightDuration"`
	DayDuration   time.Duration `yaml:"dayDuration"`
	PresetFile    string        `yaml:"presetFile"` // optional YAML preset overrides
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Port:            "8080",
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     0,
			ShutdownTimeout: 30 * time.Second,
			RateLimit:       10,
			RateLimitBurst:  20,
			MaxRequestSize:  1048576, // 1MB
		},
		Game: GameSettings{
			NightDuration: 60 * time.Second,
			DayDuration:   90 * time.Second,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *ServerConfig) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must be set")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server host must be set")
	}
	if c.Game.NightDuration <= 0 {
		return fmt.Errorf("nightDuration must be positive")
	}
	if c.Game.DayDuration <= 0 {
		return fmt.Errorf("dayDuration must be positive")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rateLimit must be positive")
	}
	return nil
}

// presetFile is the shape of an operator-supplied preset overrides file.
type presetFile struct {
	Presets map[string]struct {
		MinPlayers int             `yaml:"minPlayers"`
		MaxPlayers int             `yaml:"maxPlayers"`
		Roles      []game.RoleType `yaml:"roles"`
	} `yaml:"presets"`
}

// LoadPresetFile registers operator-defined role presets from a YAML
// file on top of the built-in catalog. Called once at startup.
func LoadPresetFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading preset file: %w", err)
	}

	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parsing preset file: %w", err)
	}

	for name, p := range pf.Presets {
		err := game.RegisterPreset(name, game.Preset{
			MinPlayers: p.MinPlayers,
			MaxPlayers: p.MaxPlayers,
			Roles:      p.Roles,
		})
		if err != nil {
			return fmt.Errorf("preset file %s: %w", path, err)
		}
	}
	return nil
}
