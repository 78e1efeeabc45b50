package surface

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"site-quote/internal/errors"
)

// Config holds the per-session surface parameters. It is read by the
// simulators and never written by them.
type Config struct {
	// Variant selects the effect (rain, ripple)
	Variant string `json:"variant"`

	// FPS is the target frame rate of the animation loop
	FPS int `json:"fps"`

	// RespectReducedMotion renders a single static frame when the host
	// reports a reduced-motion preference
	RespectReducedMotion bool `json:"respect_reduced_motion"`

	// Seed seeds the effect's random source, 0 picks one at startup
	Seed uint64 `json:"seed"`

	// Rain configures the drop-particle effect
	Rain RainConfig `json:"rain"`

	// Ripple configures the heightfield effect
	Ripple RippleConfig `json:"ripple"`
}

// RainConfig configures the drop-particle effect
type RainConfig struct {
	// Density scales the drop count, ~0.3 to 1.2
	Density float64 `json:"density"`

	// Speed scales drop velocity, ~0.6 to 1.6
	Speed float64 `json:"speed"`

	// Wind is the horizontal drift, negative blows left
	Wind float64 `json:"wind"`

	// Color is the drop color, CSS rgb()/rgba()/hex notation
	Color string `json:"color"`

	// Background is the radial gradient behind the drops, inner to outer
	Background []string `json:"background"`

	// FlashProbability is the chance per second of a lightning flash
	FlashProbability float64 `json:"flash_probability"`

	// FlashColor is the flash overlay color
	FlashColor string `json:"flash_color"`

	// FlashMaxAlpha caps the flash opacity
	FlashMaxAlpha float64 `json:"flash_max_alpha"`
}

// RippleConfig configures the heightfield effect
type RippleConfig struct {
	// DropsPerSecond is the impulse rate, 0 to 500
	DropsPerSecond float64 `json:"drops_per_second"`

	// DropStrength is the impulse height, 0.5 to 3
	DropStrength float64 `json:"drop_strength"`

	// Damping is the per-step energy retention, below 1
	Damping float64 `json:"damping"`

	// ResolutionScale is the grid size relative to the display
	ResolutionScale float64 `json:"resolution_scale"`

	// Tint is the overlay color applied to the shaded water
	Tint string `json:"tint"`

	// LightDir is the light direction, normalized before use
	LightDir [2]float64 `json:"light_dir"`
}

// DefaultConfig returns the default surface configuration
func DefaultConfig() Config {
	return Config{
		Variant:              string(VariantRain),
		FPS:                  60,
		RespectReducedMotion: true,
		Rain:                 DefaultRainConfig(),
		Ripple:               DefaultRippleConfig(),
	}
}

// DefaultRainConfig returns the default rain parameters
func DefaultRainConfig() RainConfig {
	return RainConfig{
		Density:          0.7,
		Speed:            1.0,
		Wind:             0.12,
		Color:            "rgba(255,255,255,0.08)",
		Background:       []string{"#2b2b2b", "#1a1a1a", "#0e0e0e"},
		FlashProbability: 0.02,
		FlashColor:       "rgba(255,255,255,0.85)",
		FlashMaxAlpha:    0.22,
	}
}

// DefaultRippleConfig returns the default ripple parameters
func DefaultRippleConfig() RippleConfig {
	return RippleConfig{
		DropsPerSecond:  120,
		DropStrength:    1.2,
		Damping:         0.985,
		ResolutionScale: 0.5,
		Tint:            "#1a1a1a",
		LightDir:        [2]float64{0.6, -0.8},
	}
}

// Validate checks parameter ranges that would break the simulation
func (c Config) Validate() error {
	if _, err := ParseVariant(c.Variant); err != nil {
		return err
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return errors.Newf(errors.TypeConfig, "fps must be in 1..240, got %d", c.FPS)
	}
	if c.Rain.Density < 0 {
		return errors.Newf(errors.TypeConfig, "rain density must not be negative, got %g", c.Rain.Density)
	}
	if c.Ripple.Damping <= 0 || c.Ripple.Damping >= 1 {
		return errors.Newf(errors.TypeConfig, "ripple damping must be in (0, 1), got %g", c.Ripple.Damping)
	}
	if c.Ripple.ResolutionScale <= 0 {
		return errors.Newf(errors.TypeConfig, "ripple resolution scale must be positive, got %g", c.Ripple.ResolutionScale)
	}
	for _, s := range append([]string{c.Rain.Color, c.Rain.FlashColor, c.Ripple.Tint}, c.Rain.Background...) {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	return nil
}

// Color is a straight-alpha color with 8-bit channels
type Color struct {
	R, G, B uint8
	A       float64
}

// Lerp blends towards o by t in RGB space
func (c Color) Lerp(o Color, t float64) Color {
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(o.R) / 255, G: float64(o.G) / 255, B: float64(o.B) / 255}
	r, g, bl := a.BlendRgb(b, clamp01(t)).Clamped().RGB255()
	return Color{R: r, G: g, B: bl, A: c.A + (o.A-c.A)*clamp01(t)}
}

// ParseColor parses #rgb, #rrggbb, rgb(r,g,b) and rgba(r,g,b,a)
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, errors.Wrap(errors.TypeConfig, fmt.Sprintf("invalid color %q", s), err)
		}
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b, A: 1}, nil
	}

	lower := strings.ToLower(s)
	var body string
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		body = lower[5 : len(lower)-1]
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		body = lower[4 : len(lower)-1]
	default:
		return Color{}, errors.Newf(errors.TypeConfig, "invalid color %q", s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, errors.Newf(errors.TypeConfig, "invalid color %q", s)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, errors.Newf(errors.TypeConfig, "invalid color channel %q in %q", parts[i], s)
		}
		ch[i] = uint8(v)
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, errors.Newf(errors.TypeConfig, "invalid alpha %q in %q", parts[3], s)
		}
		alpha = a
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func mustColor(s string, fallback Color) Color {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
