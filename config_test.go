package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsFillMissingFields(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"title": "demo", "width": 800, "debug": true, "background": {"R": 1, "A": 1}}`))
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, defaultHeight, cfg.Height)
	assert.Equal(t, defaultTPS, cfg.TPS)
	assert.True(t, cfg.Debug)
	assert.Equal(t, Color{R: 1, A: 1}, cfg.Background)
}

func TestLoadConfig_ZeroMeansDefault(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"width": 0, "tps": 0}`))
	require.NoError(t, err)
	assert.Equal(t, defaultWidth, cfg.Width)
	assert.Equal(t, defaultTPS, cfg.TPS)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := map[string]string{
		"malformed":       `{"width": `,
		"wrong type":      `{"width": "wide"}`,
		"negative width":  `{"width": -1}`,
		"negative height": `{"height": -5}`,
		"negative tps":    `{"tps": -30}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig([]byte(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse run config")
		})
	}
}

func TestDefaultRunConfig(t *testing.T) {
	cfg := DefaultRunConfig()
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, ColorBlack, cfg.Background)
	assert.NoError(t, cfg.validate())
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	err := Run(NewScene(), RunConfig{Width: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run:")
}
