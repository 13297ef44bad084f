package fold

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Default tuning values.
const (
	DefaultPerItemDuration  = 600 * time.Millisecond
	DefaultTouchSlop        = 16.0 // pixels
	DefaultMinFlingVelocity = 50.0 // pixels per second
	DefaultCameraDistance   = 10.0 // pane heights
	DefaultShadowMaxAlpha   = 192.0 / 255.0
)

// envPrefix marks environment variables that override loaded configuration,
// e.g. FOLD_PER_ITEM_DURATION=300ms.
const envPrefix = "FOLD_"

// Config tunes a Foldable. Zero fields take the defaults above.
type Config struct {
	// PerItemDuration is how long a settle animation takes to cover one page
	// (180 degrees). Shorter distances scale linearly.
	PerItemDuration time.Duration `koanf:"per_item_duration"`
	// CacheWindow is the page distance inside which active panes are never
	// evicted for reuse.
	CacheWindow int `koanf:"cache_window"`
	// TouchSlop is the drag distance in pixels before a drag becomes a fold.
	TouchSlop float64 `koanf:"touch_slop"`
	// MinFlingVelocity is the release speed in pixels per second above which
	// a release is treated as a fling.
	MinFlingVelocity float64 `koanf:"min_fling_velocity"`
	// AutoScale shrinks panes while they rotate toward the viewer.
	AutoScale bool `koanf:"auto_scale"`
	// CameraDistance is the perspective distance, in pane heights, used when
	// projecting rotated halves.
	CameraDistance float64 `koanf:"camera_distance"`
	// ShadowMaxAlpha is the opacity of the default shading at full intensity.
	ShadowMaxAlpha float64 `koanf:"shadow_max_alpha"`
	// Debug enables [fold] diagnostics on stderr.
	Debug bool `koanf:"debug"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{
		PerItemDuration:  DefaultPerItemDuration,
		CacheWindow:      DefaultCacheWindow,
		TouchSlop:        DefaultTouchSlop,
		MinFlingVelocity: DefaultMinFlingVelocity,
		CameraDistance:   DefaultCameraDistance,
		ShadowMaxAlpha:   DefaultShadowMaxAlpha,
	}
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PerItemDuration <= 0 {
		c.PerItemDuration = d.PerItemDuration
	}
	if c.CacheWindow <= 0 {
		c.CacheWindow = d.CacheWindow
	}
	if c.TouchSlop <= 0 {
		c.TouchSlop = d.TouchSlop
	}
	if c.MinFlingVelocity <= 0 {
		c.MinFlingVelocity = d.MinFlingVelocity
	}
	if c.CameraDistance <= 0 {
		c.CameraDistance = d.CameraDistance
	}
	if c.ShadowMaxAlpha <= 0 {
		c.ShadowMaxAlpha = d.ShadowMaxAlpha
	}
	return c
}

// LoadConfig parses YAML configuration and applies FOLD_ environment
// overrides on top of it. Durations accept Go duration strings ("450ms").
// Missing keys keep their defaults.
//
//	per_item_duration: 450ms
//	cache_window: 3
//	auto_scale: true
func LoadConfig(data []byte) (Config, error) {
	k := koanf.New(".")

	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load fold config: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load fold environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode fold config: %w", err)
	}
	return cfg.withDefaults(), nil
}
