// Implements the optional --config YAML defaults file: a way to pin a run's
// simulator/output/general settings without repeating every CLI flag.
// Explicit flags always override values loaded here.

package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultsSpec mirrors sim.SimulatorSettings/OutputSettings/GeneralSettings
// in YAML form. All top-level sections must be listed to satisfy
// KnownFields(true) strict parsing: a typo'd key is a fatal configuration
// error, not a silently ignored one.
type DefaultsSpec struct {
	Simulator SimulatorDefaults `yaml:"simulator"`
	Output    OutputDefaults    `yaml:"output"`
	General   GeneralDefaults   `yaml:"general"`
}

// SimulatorDefaults is the YAML-shaped counterpart of sim.SimulatorSettings.
// Pointer fields distinguish "not set in this file" from a genuine zero
// value, so CLI flag defaults aren't silently clobbered by an absent key.
type SimulatorDefaults struct {
	Timesteps          *int     `yaml:"timesteps,omitempty"`
	StartTimeOfDay     *string  `yaml:"start_time,omitempty"`
	MaxRequestDuration *int     `yaml:"max_request_duration,omitempty"`
	MaxTimeTillArrival *int     `yaml:"max_time_till_arrival,omitempty"`
	MinParkingTime     *int     `yaml:"minimum_parking_time,omitempty"`
	RequestRate        *float64 `yaml:"request_rate,omitempty"`
	BatchInterval      *int     `yaml:"batch_interval,omitempty"`
	CommitInterval     *int     `yaml:"commit_interval,omitempty"`
	WeightedParking    *bool    `yaml:"weighted_parking,omitempty"`
	RandomGenerator    *string  `yaml:"random_generator,omitempty"`
	Seed               *uint64  `yaml:"seed,omitempty"`
}

// OutputDefaults is the YAML-shaped counterpart of sim.OutputSettings.
type OutputDefaults struct {
	OutputPath *string `yaml:"output_path,omitempty"`
	Aggregate  *int    `yaml:"aggregate,omitempty"`
	Prettify   *bool   `yaml:"prettify,omitempty"`
	Trace      *bool   `yaml:"trace,omitempty"`
}

// GeneralDefaults is the YAML-shaped counterpart of sim.GeneralSettings.
type GeneralDefaults struct {
	Jobs *int `yaml:"jobs,omitempty"`
}

// LoadDefaultsSpec reads and strictly parses a YAML defaults file.
func LoadDefaultsSpec(path string) (*DefaultsSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var spec DefaultsSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &spec, nil
}
