// Package surface provides decorative animated backgrounds rendered into
// raster frames: falling rain with lightning flashes and a rippling water
// heightfield.
//
// Simulators own their particle or grid state exclusively. They are driven
// by an Animator, which owns the frame ticker and the resize subscription
// and releases both when it stops.
package surface

import (
	"image"
	"math/rand/v2"
	"strings"
	"time"

	"site-quote/internal/errors"
)

// Variant names an effect
type Variant string

const (
	VariantRain   Variant = "rain"
	VariantRipple Variant = "ripple"
)

// ParseVariant parses an effect name
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantRain, VariantRipple:
		return v, nil
	}
	return "", errors.Newf(errors.TypeConfig, "unknown surface variant %q (expected rain or ripple)", s)
}

// Size is a surface size in pixels
type Size struct {
	W, H int
}

// Usable reports whether a simulation can run at this size
func (s Size) Usable() bool {
	return s.W > 0 && s.H > 0
}

// Simulator is a procedural effect advanced once per animation tick
type Simulator interface {
	// Resize discards all state and reinitializes it for a w×h surface
	Resize(w, h int)

	// Step advances the simulation by dt
	Step(dt time.Duration)

	// Render draws the current state into dst
	Render(dst *image.RGBA)

	// RenderStatic draws the reduced-motion frame into dst
	RenderStatic(dst *image.RGBA)

	// Bounds returns the size the simulator was last resized to
	Bounds() (w, h int)
}

// New creates a simulator for the configured variant
func New(cfg Config) (Simulator, error) {
	variant, err := ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	rng := NewRand(cfg.Seed)
	switch variant {
	case VariantRipple:
		return NewRipple(cfg.Ripple, rng), nil
	default:
		return NewRain(cfg.Rain, rng), nil
	}
}

// NewRand returns a deterministic random source for a seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return rng.Float64()*(hi-lo) + lo
}
