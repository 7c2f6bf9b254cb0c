package config

import (
	"os"
	"path/filepath"
	"testing"

	"myGreenField/business/yield"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "field.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadScenario_Defaults(t *testing.T) {
	s, err := LoadScenario("")
	require.NoError(t, err)
	assert.Equal(t, yield.DefaultScenario(), s)

	s, err = LoadScenario(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, yield.DefaultScenario(), s)
}

func TestLoadScenario_File(t *testing.T) {
	path := writeScenario(t, `
noise_std = 0.1
actions   = ["Drip", "Sprinkler"]

context "North" {
  base_means = [0.3, 0.6]
}

context "South" {
  base_means = [0.8, 0.2]
}
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, s.NoiseStd, 1e-12)
	assert.Equal(t, []string{"Drip", "Sprinkler"}, s.Actions)
	assert.Equal(t, []string{"North", "South"}, s.ContextLabels())
	assert.Equal(t, [][]float64{{0.3, 0.6}, {0.8, 0.2}}, s.BaseMeans())

	gen, err := yield.NewGenerator(s)
	require.NoError(t, err)
	assert.Equal(t, 2, gen.NumContexts())
	assert.Equal(t, 2, gen.NumActions())
}

func TestLoadScenario_NoiseOptional(t *testing.T) {
	path := writeScenario(t, `
actions = ["Only"]
context "Solo" { base_means = [1] }
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Zero(t, s.NoiseStd)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "syntax", body: `actions = [`},
		{name: "missing actions", body: `context "A" { base_means = [1] }`},
		{name: "unknown attribute", body: "actions = [\"a\"]\narms = 3\n"},
		{name: "wrong type", body: "actions = [\"a\"]\ncontext \"A\" { base_means = \"high\" }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenario_RaggedRowsRejectedByGenerator(t *testing.T) {
	path := writeScenario(t, `
actions = ["a", "b"]
context "A" { base_means = [0.1, 0.2] }
context "B" { base_means = [0.1] }
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	_, err = yield.NewGenerator(s)
	assert.Error(t, err)
}
