package bench

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
)

const ConfigFileName = ".hsize.yaml"

type Config struct {
	Rounds    int
	Scenarios []Scenario
}

// Scenario is a pipeline collected twice: once as is, once with its
// estimate stages applied.
type Scenario struct {
	Name     string
	Segments []Segment
	// Stages run on the concatenation of all segments.
	Stages []Stage
	// Payload, when > 0, maps every element to a slice of that width.
	Payload int
	// Collect is one of the Collect* kinds, CollectSlice when empty.
	Collect string
}

// Segment is the integer range [Start, End) run through Stages.
type Segment struct {
	Start  int
	End    int
	Stages []Stage
}

type Stage struct {
	Kind    string
	Options map[string]any
}

func (c Config) Scenario(name string) (Scenario, bool) {
	i := slices.IndexFunc(c.Scenarios, func(s Scenario) bool {
		return s.Name == name
	})
	if i < 0 {
		return Scenario{}, false
	}

	return c.Scenarios[i], true
}

// Select returns the scenarios whose name matches any of the glob patterns,
// in config order. A pattern matching nothing is an error.
func (c Config) Select(patterns []string) ([]Scenario, error) {
	if len(patterns) == 0 {
		return c.Scenarios, nil
	}

	selected := make([]bool, len(c.Scenarios))
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid scenario pattern: %q", pattern)
		}

		var matched bool
		for i, s := range c.Scenarios {
			match, err := doublestar.Match(pattern, s.Name)
			if err != nil {
				return nil, err
			}

			if match {
				selected[i] = true
				matched = true
			}
		}

		if !matched {
			return nil, fmt.Errorf("unknown scenario: %q", pattern)
		}
	}

	scenarios := make([]Scenario, 0, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if selected[i] {
			scenarios = append(scenarios, s)
		}
	}

	return scenarios, nil
}

func (c Config) Names() []string {
	names := make([]string, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		names = append(names, s.Name)
	}

	return names
}

type YAMLConfig struct {
	Rounds    *int           `yaml:"rounds"`
	Scenarios []YAMLScenario `yaml:"scenarios"`
}

type YAMLScenario struct {
	Name     string        `yaml:"name"`
	Segments []YAMLSegment `yaml:"segments"`
	Stages   []YAMLStage   `yaml:"stages"`
	Payload  *int          `yaml:"payload"`
	Collect  *string       `yaml:"collect"`
}

type YAMLSegment struct {
	Start  int         `yaml:"start"`
	End    int         `yaml:"end"`
	Stages []YAMLStage `yaml:"stages"`
}

type YAMLStage struct {
	Kind    string         `yaml:"kind"`
	Options map[string]any `yaml:"options,omitempty"`
}

func ParseYAMLConfig(filepath string) (YAMLConfig, error) {
	b, err := os.ReadFile(filepath)
	if err != nil {
		return YAMLConfig{}, err
	}

	cfg, err := ParseYAMLConfigBytes(b)
	if err != nil {
		return YAMLConfig{}, fmt.Errorf("%v: %w", filepath, err)
	}

	return cfg, nil
}

func ParseYAMLConfigBytes(b []byte) (YAMLConfig, error) {
	var cfg YAMLConfig
	err := yaml.UnmarshalWithOptions(b, &cfg, yaml.Strict())
	if err != nil {
		return YAMLConfig{}, err
	}

	return cfg, nil
}

func stagesFromYAML(ystages []YAMLStage) []Stage {
	stages := make([]Stage, 0, len(ystages))
	for _, s := range ystages {
		stages = append(stages, Stage{Kind: s.Kind, Options: s.Options})
	}

	return stages
}

// ApplyYAMLConfig layers inc over cfg. Scenarios are matched by name; fields
// set in inc replace the existing ones.
func ApplyYAMLConfig(cfg Config, inc YAMLConfig) (Config, error) {
	if inc.Rounds != nil {
		if *inc.Rounds <= 0 {
			return Config{}, fmt.Errorf("rounds must be positive, got %v", *inc.Rounds)
		}
		cfg.Rounds = *inc.Rounds
	}

	cfg.Scenarios = slices.Clone(cfg.Scenarios)

	for _, incs := range inc.Scenarios {
		if incs.Name == "" {
			return Config{}, errors.New("scenario name is required")
		}

		i := slices.IndexFunc(cfg.Scenarios, func(s Scenario) bool {
			return s.Name == incs.Name
		})

		if i < 0 {
			cfg.Scenarios = append(cfg.Scenarios, Scenario{
				Name: incs.Name,
			})
			i = len(cfg.Scenarios) - 1
		}

		cs := cfg.Scenarios[i]
		if incs.Segments != nil {
			cs.Segments = make([]Segment, 0, len(incs.Segments))
			for _, seg := range incs.Segments {
				cs.Segments = append(cs.Segments, Segment{
					Start:  seg.Start,
					End:    seg.End,
					Stages: stagesFromYAML(seg.Stages),
				})
			}
		}
		if incs.Stages != nil {
			cs.Stages = stagesFromYAML(incs.Stages)
		}
		if incs.Payload != nil {
			cs.Payload = *incs.Payload
		}
		if incs.Collect != nil {
			cs.Collect = *incs.Collect
		}
		cfg.Scenarios[i] = cs
	}

	return cfg, nil
}
