// Package config loads todocal settings from a TOML file with TODOCAL_*
// environment overrides layered on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/sandeepkv93/todocal/internal/model"
)

const (
	DefaultConfigFileName = "config.toml"
	EnvConfigPath         = "TODOCAL_CONFIG"

	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var ErrInvalidConfig = errors.New("config: invalid value")

// Keymap values are comma separated key names as reported by bubbletea,
// e.g. "ctrl+left,[".
type Keymap struct {
	Quit         string `toml:"quit"`
	Add          string `toml:"add"`
	Toggle       string `toml:"toggle"`
	Delete       string `toml:"delete"`
	Edit         string `toml:"edit"`
	Help         string `toml:"help"`
	Palette      string `toml:"palette"`
	ListView     string `toml:"list_view"`
	CalendarView string `toml:"calendar_view"`
	PrevMonth    string `toml:"prev_month"`
	NextMonth    string `toml:"next_month"`
	Filter       string `toml:"filter"`
	Tab          string `toml:"tab"`
}

type Config struct {
	DefaultView     string `toml:"default_view"`
	DefaultFilter   string `toml:"default_filter"`
	DefaultTab      string `toml:"default_tab"`
	StartMonth      string `toml:"start_month"`
	Backend         string `toml:"backend"`
	CreatedAtLayout string `toml:"created_at_layout"`
	Seed            bool   `toml:"seed"`
	SeedValue       int64  `toml:"seed_value"`
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
	RolloverBuffer  int    `toml:"rollover_buffer"`
	Keys            Keymap `toml:"keys"`
}

func Default() Config {
	return Config{
		DefaultView:     "calendar",
		DefaultFilter:   "all",
		DefaultTab:      "today",
		Backend:         BackendMemory,
		CreatedAtLayout: model.CreatedAtLayout,
		SeedValue:       1,
		LogLevel:        "info",
		RolloverBuffer:  4,
		Keys: Keymap{
			Quit:         "q,ctrl+c",
			Add:          "a",
			Toggle:       " ,x",
			Delete:       "d",
			Edit:         "e",
			Help:         "?",
			Palette:      ":",
			ListView:     "L",
			CalendarView: "C",
			PrevMonth:    "ctrl+left,[",
			NextMonth:    "ctrl+right,]",
			Filter:       "f",
			Tab:          "t",
		},
	}
}

// DefaultPath is $TODOCAL_CONFIG, else todocal/config.toml under the user
// config directory.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "todocal", DefaultConfigFileName)
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error and nothing is
// written.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromEnv overrides fields from TODOCAL_* variables. Unparseable values are
// ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TODOCAL_DEFAULT_VIEW"); ok {
		cfg.DefaultView = v
	}
	if v, ok := getEnvString("TODOCAL_DEFAULT_FILTER"); ok {
		cfg.DefaultFilter = v
	}
	if v, ok := getEnvString("TODOCAL_DEFAULT_TAB"); ok {
		cfg.DefaultTab = v
	}
	if v, ok := getEnvString("TODOCAL_START_MONTH"); ok {
		cfg.StartMonth = v
	}
	if v, ok := getEnvString("TODOCAL_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := getEnvBool("TODOCAL_SEED"); ok {
		cfg.Seed = v
	}
	if v, ok := getEnvInt("TODOCAL_SEED_VALUE"); ok {
		cfg.SeedValue = int64(v)
	}
	if v, ok := getEnvString("TODOCAL_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TODOCAL_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvInt("TODOCAL_ROLLOVER_BUFFER"); ok && v > 0 {
		cfg.RolloverBuffer = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.DefaultView {
	case "list", "calendar":
	default:
		return fmt.Errorf("%w: default_view %q", ErrInvalidConfig, c.DefaultView)
	}
	switch c.DefaultTab {
	case "today", "week":
	default:
		return fmt.Errorf("%w: default_tab %q", ErrInvalidConfig, c.DefaultTab)
	}
	switch c.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("%w: backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.StartMonth != "" {
		if _, err := model.ParseMonth(c.StartMonth); err != nil {
			return fmt.Errorf("%w: start_month: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.RolloverBuffer <= 0 {
		return fmt.Errorf("%w: rollover_buffer must be positive", ErrInvalidConfig)
	}
	return nil
}

// Cursor is the parsed start month; zero when unset.
func (c Config) Cursor() model.Month {
	m, err := model.ParseMonth(c.StartMonth)
	if err != nil {
		return model.Month{}
	}
	return m
}

func (c Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	return enc.Encode(c)
}

// Keys splits a comma separated key list. A lone "," is kept as a key.
func Keys(raw string) []string {
	if strings.TrimSpace(raw) == "," {
		return []string{","}
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part == " " {
			out = append(out, part)
			continue
		}
		if k := strings.TrimSpace(part); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
