package surface

import (
	"image"
	"math"
	"math/rand/v2"
	"time"

	xdraw "golang.org/x/image/draw"
)

const (
	// rippleStep is the fixed simulation timestep
	rippleStep = time.Second / 60

	// maxRippleSteps bounds catch-up work after a stall
	maxRippleSteps = 4

	// minGrid is the smallest grid edge regardless of resolution scale
	minGrid = 64

	// dropRadius is the impulse radius in grid cells
	dropRadius = 2

	tintAlpha  = 0.12
	shadeBase  = 18
	shadeRange = 120
	shadeGain  = 1.6
)

// Ripple is a damped wave heightfield lit from a fixed direction
type Ripple struct {
	cfg        RippleConfig
	rng        *rand.Rand
	staticSeed uint64

	w, h   int
	gw, gh int

	// curr and prev alternate roles each step; prev holds the latest state
	curr, prev []float32

	dropAcc float64
	stepAcc time.Duration

	lx, ly float64
	tint   Color
	shade  *image.RGBA
}

// NewRipple creates the heightfield effect. It draws nothing until resized.
func NewRipple(cfg RippleConfig, rng *rand.Rand) *Ripple {
	lx, ly := cfg.LightDir[0], cfg.LightDir[1]
	n := math.Hypot(lx, ly)
	if n == 0 {
		n = 1
	}
	return &Ripple{
		cfg:        cfg,
		rng:        rng,
		staticSeed: rng.Uint64(),
		lx:         lx / n,
		ly:         ly / n,
		tint:       mustColor(cfg.Tint, Color{R: 26, G: 26, B: 26, A: 1}),
	}
}

// Resize reallocates both height buffers for the new surface
func (r *Ripple) Resize(w, h int) {
	r.w, r.h = max(1, w), max(1, h)
	r.gw = max(minGrid, int(math.Floor(float64(r.w)*r.cfg.ResolutionScale)))
	r.gh = max(minGrid, int(math.Floor(float64(r.h)*r.cfg.ResolutionScale)))

	r.curr = make([]float32, r.gw*r.gh)
	r.prev = make([]float32, r.gw*r.gh)
	r.shade = image.NewRGBA(image.Rect(0, 0, r.gw, r.gh))
	r.dropAcc = 0
	r.stepAcc = 0
}

// Bounds returns the current surface size
func (r *Ripple) Bounds() (int, int) {
	return r.w, r.h
}

// Grid returns the simulation grid size
func (r *Ripple) Grid() (int, int) {
	return r.gw, r.gh
}

// Height returns the latest height at a grid cell
func (r *Ripple) Height(x, y int) float32 {
	return r.prev[y*r.gw+x]
}

// Energy returns the sum of absolute heights in the latest buffer
func (r *Ripple) Energy() float64 {
	var e float64
	for _, v := range r.prev {
		e += math.Abs(float64(v))
	}
	return e
}

// Step runs as many fixed timesteps as dt covers
func (r *Ripple) Step(dt time.Duration) {
	if r.curr == nil || dt <= 0 {
		return
	}
	r.stepAcc += dt
	if limit := maxRippleSteps * rippleStep; r.stepAcc > limit {
		r.stepAcc = limit
	}
	for r.stepAcc >= rippleStep {
		r.stepAcc -= rippleStep
		r.emit(rippleStep.Seconds())
		r.advance()
	}
}

// Disturb adds an impulse of strength s within radius cells of (x, y).
// Cells on or next to the border are left alone.
func (r *Ripple) Disturb(x, y, radius int, s float64) {
	for j := -radius; j <= radius; j++ {
		for i := -radius; i <= radius; i++ {
			xx, yy := x+i, y+j
			if xx <= 1 || xx >= r.gw-1 || yy <= 1 || yy >= r.gh-1 {
				continue
			}
			d := math.Hypot(float64(i), float64(j))
			if d <= float64(radius) {
				r.curr[yy*r.gw+xx] += float32(s * (1 - d/(float64(radius)+0.001)))
			}
		}
	}
}

func (r *Ripple) emit(sec float64) {
	r.dropAcc += sec * r.cfg.DropsPerSecond
	for r.dropAcc >= 1 {
		r.dropAcc--
		x := int(2 + r.rng.Float64()*float64(r.gw-4))
		y := int(2 + r.rng.Float64()*float64(r.gh-4))
		r.Disturb(x, y, dropRadius, r.cfg.DropStrength)
	}
}

// advance applies one damped wave update and swaps the buffers
func (r *Ripple) advance() {
	gw, damping := r.gw, float32(r.cfg.Damping)
	for y := 1; y < r.gh-1; y++ {
		row := y * gw
		for x := 1; x < gw-1; x++ {
			i := row + x
			sum := (r.prev[i-1] + r.prev[i+1] + r.prev[i-gw] + r.prev[i+gw]) / 2
			r.curr[i] = (sum - r.curr[i]) * damping
		}
	}
	r.curr, r.prev = r.prev, r.curr
}

// Render shades the grid, scales it onto dst and applies the tint
func (r *Ripple) Render(dst *image.RGBA) {
	if r.shade == nil {
		fill(dst, Color{R: shadeBase, G: shadeBase, B: shadeBase, A: 1})
		return
	}
	gw, gh := r.gw, r.gh
	at := func(x, y int) float64 {
		x = min(max(x, 0), gw-1)
		y = min(max(y, 0), gh-1)
		return float64(r.prev[y*gw+x])
	}
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			dx := at(x-1, y) - at(x+1, y)
			dy := at(x, y-1) - at(x, y+1)
			s := math.Max(-1, math.Min(1, (dx*r.lx+dy*r.ly)*shadeGain))
			v := uint8(shadeBase + int(shadeRange*(s+1)*0.5))
			o := r.shade.PixOffset(x, y)
			r.shade.Pix[o], r.shade.Pix[o+1], r.shade.Pix[o+2], r.shade.Pix[o+3] = v, v, v, 0xff
		}
	}

	xdraw.BiLinear.Scale(dst, dst.Bounds(), r.shade, r.shade.Bounds(), xdraw.Src, nil)
	overlay(dst, r.tint, tintAlpha*r.tint.A)
}

// RenderStatic seeds the latest buffer with faint noise and renders it once
func (r *Ripple) RenderStatic(dst *image.RGBA) {
	rng := NewRand(r.staticSeed)
	for i := range r.prev {
		r.prev[i] = float32((rng.Float64() - 0.5) * 0.05)
	}
	r.Render(dst)
}
