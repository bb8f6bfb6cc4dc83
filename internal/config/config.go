// Package config loads the launcher's YAML configuration file: the MIDI
// port and optional slider bindings, plus a textual chord progression.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SliderBinding names the (channel, control change) a slider parameter is
// read from. Channel is stored 1-indexed in the config file, matching how
// musicians think about MIDI channels; Load keeps it 1-indexed, and the
// caller converts it to 0-indexed when binding a slider listener.
type SliderBinding struct {
	Channel       uint8 `yaml:"channel"`
	ControlChange uint8 `yaml:"control_change"`
}

// MidiConfig configures the MIDI port and the three optional slider
// bindings (duration ratio, ahead-or-behind ratio, and randomize-note-
// start-time ratio).
type MidiConfig struct {
	Port                *string        `yaml:"port"`
	DurationRatioSlider *SliderBinding `yaml:"duration_ratio_slider"`
	AheadOrBehindSlider *SliderBinding `yaml:"ahead_or_behind_slider"`
	RandomizeSlider     *SliderBinding `yaml:"randomize_slider"`
}

// Config is the root of the YAML configuration file.
type Config struct {
	Midi        MidiConfig `yaml:"midi"`
	Progression string     `yaml:"progression"`
}

// Default returns the zero-value configuration: no port override, no
// slider bindings, and an empty progression string.
func Default() Config {
	return Config{}
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks structural constraints Load cannot express through YAML
// tags alone: channel values must fit the 4-bit MIDI channel range, and
// control-change function numbers must be in [0, 127].
func (c Config) Validate() error {
	for _, binding := range []struct {
		name string
		b    *SliderBinding
	}{
		{"midi.duration_ratio_slider", c.Midi.DurationRatioSlider},
		{"midi.ahead_or_behind_slider", c.Midi.AheadOrBehindSlider},
		{"midi.randomize_slider", c.Midi.RandomizeSlider},
	} {
		if binding.b == nil {
			continue
		}
		if binding.b.Channel < 1 || binding.b.Channel > 16 {
			return fmt.Errorf("%s: channel %d out of range [1, 16]", binding.name, binding.b.Channel)
		}
		if binding.b.ControlChange > 127 {
			return fmt.Errorf("%s: control_change %d out of range [0, 127]", binding.name, binding.b.ControlChange)
		}
	}
	return nil
}
