package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyYAMLConfig(t *testing.T) {
	inc, err := ParseYAMLConfigBytes([]byte(`
rounds: 3
scenarios:
  - name: sparse
    payload: 8
  - name: large
    collect: map
  - name: evens
    segments:
      - start: 0
        end: 10
        stages:
          - kind: modulo
            options:
              divisor: 2
          - kind: estimate
            options:
              mode: exact
              n: 5
`))
	require.NoError(t, err)

	cfg, err := ApplyYAMLConfig(DefaultConfig(), inc)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Rounds)
	assert.Len(t, cfg.Scenarios, len(DefaultConfig().Scenarios)+1)

	sparse, ok := cfg.Scenario("sparse")
	require.True(t, ok)
	assert.Equal(t, 8, sparse.Payload)
	assert.Equal(t, DefaultConfig().Scenarios[0].Segments, sparse.Segments)

	evens, ok := cfg.Scenario("evens")
	require.True(t, ok)
	require.Len(t, evens.Segments, 1)
	assert.Equal(t, 10, evens.Segments[0].End)
	assert.Equal(t, StageEstimate, evens.Segments[0].Stages[1].Kind)

	large, ok := cfg.Scenario("large")
	require.True(t, ok)
	assert.Equal(t, CollectMap, large.Collect)

	def, _ := DefaultConfig().Scenario("sparse")
	assert.Equal(t, 0, def.Payload)
}

func TestConfigSelect(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		patterns []string
		expected []string
	}{
		{"all", nil, cfg.Names()},
		{"exact", []string{"chain"}, []string{"chain"}},
		{"glob", []string{"s*"}, []string{"sparse", "string"}},
		{"config order", []string{"string", "large"}, []string{"large", "string"}},
		{"dedup", []string{"sparse", "sp*"}, []string{"sparse"}},
		{"class", []string{"[lm]*"}, []string{"large", "map", "lower-bound"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			scenarios, err := cfg.Select(test.patterns)
			require.NoError(t, err)

			names := make([]string, 0, len(scenarios))
			for _, s := range scenarios {
				names = append(names, s.Name)
			}
			assert.Equal(t, test.expected, names)
		})
	}
}

func TestConfigSelectErrors(t *testing.T) {
	cfg := DefaultConfig()

	_, err := cfg.Select([]string{"sparse", "zz*"})
	assert.ErrorContains(t, err, `unknown scenario: "zz*"`)

	_, err = cfg.Select([]string{"[sparse"})
	assert.ErrorContains(t, err, `invalid scenario pattern: "[sparse"`)
}

func TestApplyYAMLConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero rounds", "rounds: 0"},
		{"missing name", "scenarios:\n  - payload: 1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			inc, err := ParseYAMLConfigBytes([]byte(test.yaml))
			require.NoError(t, err)

			_, err = ApplyYAMLConfig(DefaultConfig(), inc)
			assert.Error(t, err)
		})
	}
}

func TestParseYAMLConfigStrict(t *testing.T) {
	_, err := ParseYAMLConfigBytes([]byte("roundz: 3"))
	assert.Error(t, err)
}

func TestParseYAMLConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), ConfigFileName)
	err := os.WriteFile(p, []byte("rounds: 2\n"), 0644)
	require.NoError(t, err)

	inc, err := ParseYAMLConfig(p)
	require.NoError(t, err)
	require.NotNil(t, inc.Rounds)
	assert.Equal(t, 2, *inc.Rounds)

	_, err = ParseYAMLConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
