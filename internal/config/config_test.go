package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "corpus", cfg.Corpus.Dir)
	assert.Equal(t, 70, cfg.Gate.ConfidenceThreshold)
	assert.Equal(t, 3, cfg.Gate.TripThreshold)
	assert.Equal(t, "out/circuit-breaker.json", cfg.Output.CheckpointPath)
	assert.Equal(t, "out/lexgate.db", cfg.Store.Path)
	assert.Equal(t, 500, cfg.Watch.DebounceMS)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Corpus: CorpusConfig{Dir: "corpus"},
		Gate:   GateConfig{ConfidenceThreshold: 70, TripThreshold: 3},
	}
	assert.NoError(t, cfg.Validate())

	bad := *cfg
	bad.Corpus.Dir = ""
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Gate.ConfidenceThreshold = 101
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Gate.TripThreshold = 0
	assert.Error(t, bad.Validate())
}
