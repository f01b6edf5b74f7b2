// ABOUTME: Configuration management for header bounds, page layout and scroll physics
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"accordion-pager/header"
	"accordion-pager/surface"
)

// ErrInvalidConfig is returned by Validate for values the program cannot run with
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the program
type Config struct {
	Header  HeaderConfig  `toml:"header"`
	Pages   PagesConfig   `toml:"pages"`
	Gesture GestureConfig `toml:"gesture"`
}

// HeaderConfig holds the accordion header bounds and transition tuning.
// These are fixed for the lifetime of a session.
type HeaderConfig struct {
	MinHeight        float64 `toml:"min_height"`
	MaxHeight        float64 `toml:"max_height"`
	InitialHeight    float64 `toml:"initial_height"`
	SnapThreshold    float64 `toml:"snap_threshold"`
	DurationFactor   float64 `toml:"duration_factor"`
	TransitionPolicy string  `toml:"transition_policy"` // "cancel" or "overlap"
}

// PagesConfig holds the page set layout
type PagesConfig struct {
	Count     int     `toml:"count"`
	RowHeight float64 `toml:"row_height"` // Points per content row
}

// GestureConfig holds the scroll physics. These can be changed while running.
type GestureConfig struct {
	PointsPerLine    float64 `toml:"points_per_line"` // Points per terminal line
	WheelStep        float64 `toml:"wheel_step"`      // Points per wheel notch
	ReleaseDelayMS   int     `toml:"release_delay_ms"`
	FrameMS          int     `toml:"frame_ms"`
	DecelerationRate float64 `toml:"deceleration_rate"` // Velocity kept per millisecond
	MinFlingVelocity float64 `toml:"min_fling_velocity"`
	FlingVelocity    float64 `toml:"fling_velocity"` // Page up/down fling speed
	BounceResistance float64 `toml:"bounce_resistance"`
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/accordion-pager/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./accordion-pager.toml"); err == nil {
		return "./accordion-pager.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./accordion-pager.toml"
	}

	return filepath.Join(home, ".config", "accordion-pager", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Round floats to match UI precision so repeated saves don't drift
	config = roundConfigPrecision(config)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Header: HeaderConfig{
			MinHeight:        header.DefaultMinHeight,
			MaxHeight:        header.DefaultMaxHeight,
			InitialHeight:    header.DefaultMaxHeight,
			SnapThreshold:    header.DefaultSnapThreshold,
			DurationFactor:   header.DefaultDurationFactor,
			TransitionPolicy: header.PolicyCancel.String(),
		},
		Pages: PagesConfig{
			Count:     7,
			RowHeight: 100,
		},
		Gesture: DefaultGestureConfig(),
	}
}

// DefaultGestureConfig returns the default scroll physics
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		PointsPerLine:    10,
		WheelStep:        10,
		ReleaseDelayMS:   120,
		FrameMS:          16,
		DecelerationRate: 0.998,
		MinFlingVelocity: 50,
		FlingVelocity:    2400,
		BounceResistance: 0.5,
	}
}

// Validate reports values the program cannot run with
func (c Config) Validate() error {
	h := c.Header
	switch {
	case h.MinHeight <= 0:
		return fmt.Errorf("%w: header.min_height must be positive, got %.2f", ErrInvalidConfig, h.MinHeight)
	case h.MinHeight > h.MaxHeight:
		return fmt.Errorf("%w: header.min_height %.2f exceeds header.max_height %.2f", ErrInvalidConfig, h.MinHeight, h.MaxHeight)
	case h.SnapThreshold < 0:
		return fmt.Errorf("%w: header.snap_threshold must not be negative", ErrInvalidConfig)
	case h.DurationFactor < 0:
		return fmt.Errorf("%w: header.duration_factor must not be negative", ErrInvalidConfig)
	}

	if _, err := header.ParsePolicy(h.TransitionPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Pages.Count < 1 {
		return fmt.Errorf("%w: pages.count must be at least 1, got %d", ErrInvalidConfig, c.Pages.Count)
	}
	if c.Pages.RowHeight <= 0 {
		return fmt.Errorf("%w: pages.row_height must be positive", ErrInvalidConfig)
	}

	return c.Gesture.Validate()
}

// Validate reports physics values the scroll simulation cannot run with
func (g GestureConfig) Validate() error {
	switch {
	case g.PointsPerLine <= 0:
		return fmt.Errorf("%w: gesture.points_per_line must be positive", ErrInvalidConfig)
	case g.WheelStep <= 0:
		return fmt.Errorf("%w: gesture.wheel_step must be positive", ErrInvalidConfig)
	case g.ReleaseDelayMS <= 0 || g.FrameMS <= 0:
		return fmt.Errorf("%w: gesture.release_delay_ms and gesture.frame_ms must be positive", ErrInvalidConfig)
	case g.DecelerationRate <= 0 || g.DecelerationRate >= 1:
		return fmt.Errorf("%w: gesture.deceleration_rate must be in (0, 1), got %.4f", ErrInvalidConfig, g.DecelerationRate)
	case g.MinFlingVelocity < 0 || g.FlingVelocity < 0:
		return fmt.Errorf("%w: gesture velocities must not be negative", ErrInvalidConfig)
	case g.BounceResistance < 0 || g.BounceResistance > 1:
		return fmt.Errorf("%w: gesture.bounce_resistance must be in [0, 1]", ErrInvalidConfig)
	}

	return nil
}

// HeaderSettings converts the header table into state machine settings
func (c Config) HeaderSettings() (header.Config, error) {
	policy, err := header.ParsePolicy(c.Header.TransitionPolicy)
	if err != nil {
		return header.Config{}, err
	}

	return header.Config{
		MinHeight:      c.Header.MinHeight,
		MaxHeight:      c.Header.MaxHeight,
		InitialHeight:  c.Header.InitialHeight,
		SnapThreshold:  c.Header.SnapThreshold,
		DurationFactor: c.Header.DurationFactor,
		Policy:         policy,
	}, nil
}

// Physics converts the gesture table into scroll view physics
func (g GestureConfig) Physics() surface.Physics {
	return surface.Physics{
		DecelerationRate: g.DecelerationRate,
		MinFlingVelocity: g.MinFlingVelocity,
		BounceResistance: g.BounceResistance,
		Frame:            g.Frame(),
	}
}

// Frame returns the momentum frame interval
func (g GestureConfig) Frame() time.Duration {
	return time.Duration(g.FrameMS) * time.Millisecond
}

// ReleaseDelay returns the idle time that ends a wheel drag
func (g GestureConfig) ReleaseDelay() time.Duration {
	return time.Duration(g.ReleaseDelayMS) * time.Millisecond
}

// roundConfigPrecision rounds the gesture fields to the precision shown in the
// tuning panel. Header and page tables are not edited in the UI and are saved
// as given. The deceleration rate keeps four decimals since 0.998 and 0.99
// differ sharply.
func roundConfigPrecision(config Config) Config {
	round := func(x, places float64) float64 {
		return math.Round(x*places) / places
	}

	g := &config.Gesture
	g.PointsPerLine = round(g.PointsPerLine, 100)
	g.WheelStep = round(g.WheelStep, 100)
	g.DecelerationRate = round(g.DecelerationRate, 10000)
	g.MinFlingVelocity = round(g.MinFlingVelocity, 100)
	g.FlingVelocity = round(g.FlingVelocity, 100)
	g.BounceResistance = round(g.BounceResistance, 100)

	return config
}
