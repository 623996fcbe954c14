package stage

import (
	"encoding/json"
	"fmt"
)

const (
	defaultWidth  = 640
	defaultHeight = 480
	defaultTPS    = 60
)

// RunConfig configures the window and frame loop created by Run.
type RunConfig struct {
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// Debug puts the scene in debug mode.
	Debug bool `json:"debug"`
	// Background is the color the screen is cleared to each frame.
	Background Color `json:"background"`
	// TPS is the fixed update rate. Each update advances the scene by
	// 1000/TPS milliseconds.
	TPS     int  `json:"tps"`
	ShowFPS bool `json:"showFPS"`
}

// DefaultRunConfig returns a 640x480 window at 60 updates per second on a
// black background.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:      "stage",
		Width:      defaultWidth,
		Height:     defaultHeight,
		Background: ColorBlack,
		TPS:        defaultTPS,
	}
}

// LoadConfig parses a JSON run config. Fields missing from the document
// keep their DefaultRunConfig values.
func LoadConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// validate rejects negative sizes and rates. Zero means "use the default".
func (c RunConfig) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.TPS < 0 {
		return fmt.Errorf("invalid tps %d", c.TPS)
	}
	return nil
}

// withDefaults fills zero sizes and rates.
func (c RunConfig) withDefaults() RunConfig {
	if c.Width == 0 {
		c.Width = defaultWidth
	}
	if c.Height == 0 {
		c.Height = defaultHeight
	}
	if c.TPS == 0 {
		c.TPS = defaultTPS
	}
	return c
}
