// Package config loads tabata settings from TOML files and TABATA_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/tabata/internal/audio"
	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/workout"
)

const (
	appName   = "tabata"
	envPrefix = "TABATA_"
)

// Config is the merged configuration from the config files and the
// environment. Unset values are filled in by the Get* helpers.
type Config struct {
	Workout WorkoutConfig `koanf:"workout" envPrefix:"WORKOUT_"`
	Audio   AudioConfig   `koanf:"audio"   envPrefix:"AUDIO_"`
	Timer   TimerConfig   `koanf:"timer"   envPrefix:"TIMER_"`
	Log     LogConfig     `koanf:"log"     envPrefix:"LOG_"`
	Notify  NotifyConfig  `koanf:"notify"  envPrefix:"NOTIFY_"`
	History HistoryConfig `koanf:"history" envPrefix:"HISTORY_"`

	// YAML file of named workouts (default: ~/.config/tabata/presets.yaml)
	PresetsFile string `koanf:"presets_file" env:"PRESETS_FILE"`
}

// WorkoutConfig holds the workout used when no preset or flag overrides it.
type WorkoutConfig struct {
	Preset          string `koanf:"preset"           env:"PRESET"`
	Rounds          int    `koanf:"rounds"           env:"ROUNDS"`        // 1-8 (default: 8)
	RoundSeconds    int    `koanf:"round_seconds"    env:"ROUND_SECONDS"` // 1-300 (default: 20)
	RestSeconds     *int   `koanf:"rest_seconds"     env:"REST_SECONDS"`  // 0-300, 0 disables rest (default: 10)
	BackgroundTrack string `koanf:"background_track" env:"BACKGROUND_TRACK"`
}

// AudioConfig holds audio output settings.
type AudioConfig struct {
	Enabled          *bool   `koanf:"enabled"           env:"ENABLED"`           // default: true
	AssetsDir        string  `koanf:"assets_dir"        env:"ASSETS_DIR"`        // cue recordings (default: ./assets)
	BackgroundVolume float64 `koanf:"background_volume" env:"BACKGROUND_VOLUME"` // 0-1 (default: 0.7)
	DuckFraction     float64 `koanf:"duck_fraction"     env:"DUCK_FRACTION"`     // 0-1 (default: 0.5)
}

// TimerConfig holds the tick cadence and cue windows.
type TimerConfig struct {
	TickMS       int          `koanf:"tick_ms"        env:"TICK_MS"` // default: 100
	StopCue      WindowConfig `koanf:"stop_cue"       envPrefix:"STOP_CUE_"`
	NextRoundCue WindowConfig `koanf:"next_round_cue" envPrefix:"NEXT_ROUND_CUE_"`
	GoCue        WindowConfig `koanf:"go_cue"         envPrefix:"GO_CUE_"`
}

// WindowConfig is an inclusive range of remaining milliseconds. Zero values
// keep the default window.
type WindowConfig struct {
	MinMS int `koanf:"min_ms" env:"MIN_MS"`
	MaxMS int `koanf:"max_ms" env:"MAX_MS"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level" env:"LEVEL"` // zerolog level name (default: info)
	File  string `koanf:"file"  env:"FILE"`  // default: $XDG_STATE_HOME/tabata/tabata.log
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	Enabled *bool `koanf:"enabled" env:"ENABLED"` // default: true
}

// HistoryConfig holds the session history database settings.
type HistoryConfig struct {
	Enabled *bool  `koanf:"enabled" env:"ENABLED"` // default: true
	File    string `koanf:"file"    env:"FILE"`    // default: $XDG_DATA_HOME/tabata/tabata.db
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the existing files among paths in order (last wins), then
// applies environment overrides.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Workout.BackgroundTrack = expandPath(cfg.Workout.BackgroundTrack)
	cfg.Audio.AssetsDir = expandPath(cfg.Audio.AssetsDir)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.PresetsFile = expandPath(cfg.PresetsFile)
	cfg.History.File = expandPath(cfg.History.File)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tabata/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetWorkoutConfig returns the configured workout, falling back to the
// classic protocol for unset fields. It is not validated.
func (c *Config) GetWorkoutConfig() workout.Config {
	w := workout.Default()
	if c.Workout.Rounds > 0 {
		w.Rounds = c.Workout.Rounds
	}
	if c.Workout.RoundSeconds > 0 {
		w.Round = time.Duration(c.Workout.RoundSeconds) * time.Second
	}
	if c.Workout.RestSeconds != nil {
		w.Rest = time.Duration(*c.Workout.RestSeconds) * time.Second
	}
	w.BackgroundTrack = c.Workout.BackgroundTrack
	return w
}

// GetAudioConfig returns the audio configuration with defaults applied.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio

	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = "assets"
	}
	if cfg.BackgroundVolume <= 0 || cfg.BackgroundVolume > 1 {
		cfg.BackgroundVolume = audio.DefaultBackgroundVolume
	}
	if cfg.DuckFraction <= 0 || cfg.DuckFraction > 1 {
		cfg.DuckFraction = audio.DefaultDuckFraction
	}

	return cfg
}

// AudioEnabled reports whether cues should be played.
func (c *Config) AudioEnabled() bool {
	return *c.GetAudioConfig().Enabled
}

// PlayerOptions maps the audio section onto player options.
func (c *Config) PlayerOptions() audio.Options {
	cfg := c.GetAudioConfig()
	return audio.Options{
		AssetsDir:        cfg.AssetsDir,
		BackgroundVolume: cfg.BackgroundVolume,
		DuckFraction:     cfg.DuckFraction,
		Preload:          audio.AllCues(workout.MaxRounds),
	}
}

// TickInterval returns the tick driver cadence.
func (c *Config) TickInterval() time.Duration {
	if c.Timer.TickMS <= 0 {
		return timer.DefaultTickInterval
	}
	return time.Duration(c.Timer.TickMS) * time.Millisecond
}

// CueWindows returns the cue windows with per-field defaults applied.
func (c *Config) CueWindows() (timer.CueWindows, error) {
	w := timer.DefaultCueWindows()
	w.Stop = c.Timer.StopCue.apply(w.Stop)
	w.NextRound = c.Timer.NextRoundCue.apply(w.NextRound)
	w.Go = c.Timer.GoCue.apply(w.Go)
	if err := w.Validate(); err != nil {
		return timer.CueWindows{}, err
	}
	return w, nil
}

func (w WindowConfig) apply(def timer.Window) timer.Window {
	if w.MinMS > 0 {
		def.Min = time.Duration(w.MinMS) * time.Millisecond
	}
	if w.MaxMS > 0 {
		def.Max = time.Duration(w.MaxMS) * time.Millisecond
	}
	return def
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// NotifyEnabled reports whether a desktop notification is sent on completion.
func (c *Config) NotifyEnabled() bool {
	return c.Notify.Enabled == nil || *c.Notify.Enabled
}

// HistoryEnabled reports whether sessions are recorded and the last workout
// restored.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// GetPresetsFile returns the presets path, defaulting next to the user config.
func (c *Config) GetPresetsFile() string {
	if c.PresetsFile != "" {
		return c.PresetsFile
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", appName, "presets.yaml")
	}
	return "presets.yaml"
}
