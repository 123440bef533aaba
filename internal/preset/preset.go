// Package preset stores named workouts in a YAML file.
package preset

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/llehouerou/tabata/internal/workout"
)

// DefaultName is the built-in preset used when nothing else is selected.
const DefaultName = "tabata"

// ErrUnknownPreset is returned by Lookup for a name with no preset.
var ErrUnknownPreset = errors.New("unknown preset")

type yamlPreset struct {
	Rounds          int    `yaml:"rounds"`
	RoundSeconds    int    `yaml:"round_seconds"`
	RestSeconds     *int   `yaml:"rest_seconds,omitempty"`
	BackgroundTrack string `yaml:"background_track,omitempty"`
}

type yamlFile struct {
	Presets map[string]yamlPreset `yaml:"presets"`
}

// Set is a collection of validated presets keyed by name.
type Set struct {
	presets map[string]workout.Config
}

// Builtin returns the presets available without a file.
func Builtin() *Set {
	return &Set{presets: map[string]workout.Config{
		DefaultName: workout.Default(),
	}}
}

// Load reads presets from path on top of the built-in ones. A missing file
// is not an error.
func Load(path string) (*Set, error) {
	set := Builtin()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return set, nil
		}
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var data yamlFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse presets yaml: %w", err)
	}

	for name, p := range data.Presets {
		if err := set.Add(name, p.workout()); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Save writes every preset in s to path.
func Save(path string, s *Set) error {
	data := yamlFile{Presets: make(map[string]yamlPreset, len(s.presets))}
	for name, cfg := range s.presets {
		data.Presets[name] = fromWorkout(cfg)
	}

	serialized, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal presets yaml: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create presets directory: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write presets file: %w", err)
	}
	return nil
}

// Add validates cfg and stores it under name, replacing any previous preset.
func (s *Set) Add(name string, cfg workout.Config) error {
	if name == "" {
		return errors.New("preset name is empty")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}
	s.presets[name] = cfg
	return nil
}

// Lookup returns the preset called name.
func (s *Set) Lookup(name string) (workout.Config, error) {
	cfg, ok := s.presets[name]
	if !ok {
		return workout.Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return cfg, nil
}

// Names returns the preset names in sorted order.
func (s *Set) Names() []string {
	return slices.Sorted(maps.Keys(s.presets))
}

func (p yamlPreset) workout() workout.Config {
	cfg := workout.Config{
		Rounds:          p.Rounds,
		Round:           time.Duration(p.RoundSeconds) * time.Second,
		BackgroundTrack: p.BackgroundTrack,
	}
	if p.RestSeconds != nil {
		cfg.Rest = time.Duration(*p.RestSeconds) * time.Second
	}
	return cfg
}

func fromWorkout(cfg workout.Config) yamlPreset {
	rest := int(cfg.Rest / time.Second)
	return yamlPreset{
		Rounds:          cfg.Rounds,
		RoundSeconds:    int(cfg.Round / time.Second),
		RestSeconds:     &rest,
		BackgroundTrack: cfg.BackgroundTrack,
	}
}
