package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [yaml.Marshaler]
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// [Duration] implements [yaml.Unmarshaler]
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

type Game struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	MineCount int `yaml:"mine_count"`
}

func (g Game) Params() mines.GameParams {
	return mines.GameParams{Width: g.Width, Height: g.Height, MineCount: g.MineCount}
}

type Limits struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// Allow reports whether p fits within the limits.
func (l Limits) Allow(p mines.GameParams) bool {
	return p.Width <= l.MaxWidth && p.Height <= l.MaxHeight
}

type Session struct {
	TTL           Duration `yaml:"ttl"`
	SweepInterval Duration `yaml:"sweep_interval"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Config struct {
	Mode    string  `yaml:"mode"`
	Addr    string  `yaml:"addr"`
	Game    Game    `yaml:"game"`
	Limits  Limits  `yaml:"limits"`
	Session Session `yaml:"session"`
	Log     Log     `yaml:"log"`
}

func Default() Config {
	return Config{
		Mode: "production",
		Addr: ":8080",
		Game: Game{Width: 9, Height: 9, MineCount: 10},
		Limits: Limits{
			MaxWidth:  100,
			MaxHeight: 100,
		},
		Session: Session{
			TTL:           Duration{24 * time.Hour},
			SweepInterval: Duration{10 * time.Minute},
		},
		Log: Log{
			Level:      "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

var ErrInvalidConfig = errors.New("invalid config")

// Load starts from [Default], applies the YAML file at path when path is not
// empty, then the environment.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &config); err != nil {
			return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}

	applyEnv(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c Config) Validate() error {
	if c.Mode != "production" && c.Mode != "development" {
		return fmt.Errorf("%w: mode must be production or development, got %q", ErrInvalidConfig, c.Mode)
	}
	if err := c.Game.Params().Validate(); err != nil {
		return fmt.Errorf("%w: game: %w", ErrInvalidConfig, err)
	}
	if c.Limits.MaxWidth <= 0 || c.Limits.MaxHeight <= 0 {
		return fmt.Errorf("%w: limits must be positive", ErrInvalidConfig)
	}
	if c.Session.TTL.Duration <= 0 || c.Session.SweepInterval.Duration <= 0 {
		return fmt.Errorf("%w: session ttl and sweep_interval must be positive", ErrInvalidConfig)
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                   c.Mode,
		"addr":                   c.Addr,
		"game":                   c.Game.Params().String(),
		"max_width":              c.Limits.MaxWidth,
		"max_height":             c.Limits.MaxHeight,
		"session_ttl":            c.Session.TTL.String(),
		"session_sweep_interval": c.Session.SweepInterval.String(),
		"log_level":              c.Log.Level,
		"log_file":               c.Log.File,
	}
}
