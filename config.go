package flipbook

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Sentinel errors returned at the engine's edges. Per-frame and navigation
// operations never fail; they clamp.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("flipbook: invalid config")

	// ErrEmptyBook indicates a book with no pages.
	ErrEmptyBook = errors.New("flipbook: book has no pages")
)

const (
	DefaultSegments           = 30
	DefaultPageWidth          = 1.28
	DefaultPageHeight         = 1.71
	DefaultPageDepth          = 0.003
	DefaultHighlightIntensity = 0.22
	DefaultHighlightFade      = 200 * time.Millisecond
	DefaultDragDeadZone       = 4.0 // pixels
)

// Config holds every tunable of a Reader.
type Config struct {
	Segments   int     `yaml:"segments"`
	PageWidth  float64 `yaml:"page_width"`
	PageHeight float64 `yaml:"page_height"`
	PageDepth  float64 `yaml:"page_depth"`

	DoubleTap time.Duration `yaml:"double_tap"`
	Steps     StepConfig    `yaml:"steps"`
	Curl      CurlParams    `yaml:"curl"`

	HighlightIntensity float64       `yaml:"highlight_intensity"`
	HighlightFade      time.Duration `yaml:"highlight_fade"`
	ZoomFade           time.Duration `yaml:"zoom_fade"`
	DragDeadZone       float64       `yaml:"drag_dead_zone"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the configuration the engine was tuned with.
func DefaultConfig() *Config {
	return &Config{
		Segments:           DefaultSegments,
		PageWidth:          DefaultPageWidth,
		PageHeight:         DefaultPageHeight,
		PageDepth:          DefaultPageDepth,
		DoubleTap:          DefaultDoubleTap,
		Steps:              DefaultStepConfig(),
		Curl:               DefaultCurlParams(),
		HighlightIntensity: DefaultHighlightIntensity,
		HighlightFade:      DefaultHighlightFade,
		ZoomFade:           DefaultZoomFade,
		DragDeadZone:       DefaultDragDeadZone,
	}
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first out-of-range value, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Segments < 1:
		return fmt.Errorf("%w: segments must be at least 1, got %d", ErrInvalidConfig, c.Segments)
	case c.PageWidth <= 0 || c.PageHeight <= 0:
		return fmt.Errorf("%w: page size must be positive, got %gx%g", ErrInvalidConfig, c.PageWidth, c.PageHeight)
	case c.PageDepth < 0:
		return fmt.Errorf("%w: page depth must not be negative", ErrInvalidConfig)
	case c.DoubleTap <= 0:
		return fmt.Errorf("%w: double_tap must be positive, got %v", ErrInvalidConfig, c.DoubleTap)
	case c.Steps.Far <= 0 || c.Steps.Near <= 0:
		return fmt.Errorf("%w: step intervals must be positive", ErrInvalidConfig)
	case c.Steps.NearDistance < 1:
		return fmt.Errorf("%w: steps.near_distance must be at least 1", ErrInvalidConfig)
	case c.Curl.TurnDuration <= 0:
		return fmt.Errorf("%w: curl.turn_duration must be positive", ErrInvalidConfig)
	case c.Curl.SmoothTimeY <= 0 || c.Curl.SmoothTimeFold <= 0:
		return fmt.Errorf("%w: curl smoothing times must be positive", ErrInvalidConfig)
	case c.HighlightFade < 0 || c.ZoomFade < 0:
		return fmt.Errorf("%w: fade durations must not be negative", ErrInvalidConfig)
	case c.DragDeadZone < 0:
		return fmt.Errorf("%w: drag_dead_zone must not be negative", ErrInvalidConfig)
	}
	return nil
}
