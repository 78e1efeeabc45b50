package surface

import (
	"image"
	"math"
	"math/rand/v2"
	"time"
)

const (
	// maxRainStep caps elapsed time per tick so a stalled host does not
	// teleport the drops
	maxRainStep = 40 * time.Millisecond

	// splashChance is the probability a drop leaving the bottom edge splashes
	splashChance = 0.08

	// wrapMargin is how far past a side edge a drop travels before wrapping
	wrapMargin = 50.0

	// areaPerDrop is the surface area, in pixels, served by one drop at
	// density 1
	areaPerDrop = 10000.0

	// flashDecay is the fraction of flash intensity left after one second
	flashDecay = 0.35
)

// Drop is a single rain streak
type Drop struct {
	X, Y   float64
	VX, VY float64 // px/s
	Len    float64
	Thick  float64
	Alpha  float64
}

type splash struct {
	x, y, r, alpha float64
}

// Rain is the drop-particle effect with occasional lightning flashes
type Rain struct {
	cfg RainConfig
	rng *rand.Rand

	// seeds the static scatter so every static render matches
	staticSeed uint64

	w, h  int
	drops []Drop
	flash float64

	// splashes emitted by Step, drawn and cleared by the next Render
	splashes []splash

	color      Color
	flashColor Color
	stops      []Color
	bg         *image.RGBA
}

// NewRain creates the rain effect. It draws nothing until resized.
func NewRain(cfg RainConfig, rng *rand.Rand) *Rain {
	r := &Rain{
		cfg:        cfg,
		rng:        rng,
		staticSeed: rng.Uint64(),
		color:      mustColor(cfg.Color, Color{R: 255, G: 255, B: 255, A: 0.08}),
		flashColor: mustColor(cfg.FlashColor, Color{R: 255, G: 255, B: 255, A: 0.85}),
	}
	for _, s := range cfg.Background {
		r.stops = append(r.stops, mustColor(s, Color{A: 1}))
	}
	return r
}

// Resize discards every drop and spawns a fresh set for the new area
func (r *Rain) Resize(w, h int) {
	r.w, r.h = max(1, w), max(1, h)
	r.flash = 0
	r.splashes = r.splashes[:0]

	count := int(math.Floor(float64(r.w*r.h) / areaPerDrop * r.cfg.Density))
	r.drops = make([]Drop, count)
	for i := range r.drops {
		r.drops[i] = r.spawn()
	}

	r.bg = image.NewRGBA(image.Rect(0, 0, r.w, r.h))
	radius := math.Max(float64(r.w), float64(r.h))
	radialGradient(r.bg, float64(r.w)*0.12, float64(r.h)*0.10, radius, r.stops)
}

// Bounds returns the current surface size
func (r *Rain) Bounds() (int, int) {
	return r.w, r.h
}

// DropCount returns the number of live drops
func (r *Rain) DropCount() int {
	return len(r.drops)
}

// Flash returns the current flash intensity
func (r *Rain) Flash() float64 {
	return r.flash
}

func (r *Rain) spawn() Drop {
	speed := r.cfg.Speed
	vy := randRange(r.rng, 480, 920) * speed
	return Drop{
		X:     randRange(r.rng, 0, float64(r.w)),
		Y:     randRange(r.rng, -float64(r.h), float64(r.h)),
		VY:    vy,
		VX:    r.cfg.Wind * randRange(r.rng, 30, 70) * speed,
		Len:   randRange(r.rng, 10, 22) * (vy / 700),
		Thick: randRange(r.rng, 0.8, 1.7),
		Alpha: randRange(r.rng, 0.25, 0.7),
	}
}

// Step advances every drop and the flash state
func (r *Rain) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if dt > maxRainStep {
		dt = maxRainStep
	}
	sec := dt.Seconds()

	if r.rng.Float64() < r.cfg.FlashProbability*sec {
		r.flash = math.Min(r.cfg.FlashMaxAlpha, r.flash+randRange(r.rng, 0.12, r.cfg.FlashMaxAlpha))
	}
	r.flash *= math.Pow(flashDecay, sec)

	w, h := float64(r.w), float64(r.h)
	for i := range r.drops {
		d := &r.drops[i]
		d.Y += d.VY * sec
		d.X += d.VX * sec

		if d.Y-d.Len > h {
			if r.rng.Float64() < splashChance {
				r.splashes = append(r.splashes, splash{x: d.X, y: h - 2, r: d.Thick * 1.2, alpha: d.Alpha * 0.8})
			}
			*d = r.spawn()
			d.Y = randRange(r.rng, -h*0.5, -20)
		}
		if d.X < -wrapMargin {
			d.X = w + wrapMargin
		}
		if d.X > w+wrapMargin {
			d.X = -wrapMargin
		}
	}
}

// Render draws the background, drops, pending splashes and flash overlay
func (r *Rain) Render(dst *image.RGBA) {
	r.background(dst)

	for _, d := range r.drops {
		line(dst, d.X, d.Y, d.X-d.VX*0.02, d.Y-d.Len, d.Thick, r.color, d.Alpha*r.color.A)
	}

	for _, s := range r.splashes {
		a := math.Max(0.05, math.Min(0.25, s.alpha))
		upperArc(dst, s.x, s.y, s.r*1.8, r.color, a*r.color.A)
	}
	r.splashes = r.splashes[:0]

	if r.flash > 0.001 {
		w, h := float64(r.w), float64(r.h)
		overlay(dst, r.flashColor, r.flash*r.flashColor.A)
		glow(dst, w*0.5, h*0.5, math.Min(w, h)*0.1, math.Max(w, h)*0.8,
			Color{R: 255, G: 255, B: 255, A: 1}, 0.15*r.flash*0.6)
	}
}

// RenderStatic draws a fixed scatter of faint marks
func (r *Rain) RenderStatic(dst *image.RGBA) {
	r.background(dst)

	rng := NewRand(r.staticSeed)
	n := min(160, r.w*r.h/25000)
	for i := 0; i < n; i++ {
		x := int(rng.Float64() * float64(r.w))
		y := int(rng.Float64() * float64(r.h))
		length := int(rng.Float64()*14 + 6)
		fillRect(dst, x, y, 1, length, r.color, 0.35*r.color.A)
	}
}

func (r *Rain) background(dst *image.RGBA) {
	if r.bg != nil && r.bg.Rect == dst.Rect {
		copy(dst.Pix, r.bg.Pix)
		return
	}
	if len(r.stops) > 0 {
		fill(dst, r.stops[len(r.stops)-1])
		return
	}
	fill(dst, Color{A: 1})
}
