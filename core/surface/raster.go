package surface

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// blend composites c with opacity a over the opaque pixel at (x, y)
func blend(dst *image.RGBA, x, y int, c Color, a float64) {
	if a <= 0 || !(image.Point{X: x, Y: y}).In(dst.Rect) {
		return
	}
	if a > 1 {
		a = 1
	}
	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	inv := 1 - a
	p[0] = uint8(float64(c.R)*a + float64(p[0])*inv + 0.5)
	p[1] = uint8(float64(c.G)*a + float64(p[1])*inv + 0.5)
	p[2] = uint8(float64(c.B)*a + float64(p[2])*inv + 0.5)
	p[3] = 0xff
}

// fill paints every pixel of dst with an opaque color
func fill(dst *image.RGBA, c Color) {
	xdraw.Draw(dst, dst.Rect, image.NewUniform(c.opaque()), image.Point{}, xdraw.Src)
}

// overlay composites c with opacity a over the whole of dst
func overlay(dst *image.RGBA, c Color, a float64) {
	fillRect(dst, dst.Rect.Min.X, dst.Rect.Min.Y, dst.Rect.Dx(), dst.Rect.Dy(), c, a)
}

// fillRect composites c over a w×h rectangle clipped to dst
func fillRect(dst *image.RGBA, x0, y0, w, h int, c Color, a float64) {
	if a <= 0 {
		return
	}
	r := image.Rect(x0, y0, x0+w, y0+h).Intersect(dst.Rect)
	if r.Empty() {
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(math.Min(1, a)*255 + 0.5)})
	xdraw.DrawMask(dst, r, image.NewUniform(c.opaque()), image.Point{}, mask, image.Point{}, xdraw.Over)
}

func (c Color) opaque() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// line draws a stroke from (x0, y0) to (x1, y1). Strokes thinner than a
// pixel lose opacity instead of width.
func line(dst *image.RGBA, x0, y0, x1, y1, thick float64, c Color, a float64) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}

	core := a * math.Min(1, thick)
	side := a * math.Max(0, math.Min(1, thick-1))

	// perpendicular neighbor for strokes wider than one pixel
	px, py := 1, 0
	if math.Abs(dx) > math.Abs(dy) {
		px, py = 0, 1
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(x0 + dx*t))
		y := int(math.Round(y0 + dy*t))
		blend(dst, x, y, c, core)
		if side > 0 {
			blend(dst, x+px, y+py, c, side)
		}
	}
}

// upperArc draws the top half of a circle centered at (cx, cy)
func upperArc(dst *image.RGBA, cx, cy, r float64, c Color, a float64) {
	if r <= 0 {
		return
	}
	n := int(math.Ceil(math.Pi * r * 2))
	if n < 4 {
		n = 4
	}
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= n; i++ {
		theta := math.Pi * float64(i) / float64(n)
		x := int(math.Round(cx + r*math.Cos(theta)))
		y := int(math.Round(cy - r*math.Sin(theta)))
		if x == lastX && y == lastY {
			continue
		}
		blend(dst, x, y, c, a)
		lastX, lastY = x, y
	}
}

// radialGradient fills dst opaquely with evenly spaced stops radiating from
// (cx, cy) out to radius r
func radialGradient(dst *image.RGBA, cx, cy, r float64, stops []Color) {
	if len(stops) == 0 {
		return
	}
	if len(stops) == 1 || r <= 0 {
		fill(dst, stops[len(stops)-1])
		return
	}
	segments := float64(len(stops) - 1)
	b := dst.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := clamp01(math.Hypot(float64(x)-cx, float64(y)-cy) / r)
			pos := t * segments
			i := int(pos)
			if i >= len(stops)-1 {
				i = len(stops) - 2
			}
			c := stops[i].Lerp(stops[i+1], pos-float64(i))
			o := dst.PixOffset(x, y)
			dst.Pix[o], dst.Pix[o+1], dst.Pix[o+2], dst.Pix[o+3] = c.R, c.G, c.B, 0xff
		}
	}
}

// glow composites c with opacity fading from a at radius r0 to zero at r1
func glow(dst *image.RGBA, cx, cy, r0, r1 float64, c Color, a float64) {
	if a <= 0 || r1 <= r0 {
		return
	}
	b := dst.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			t := clamp01((d - r0) / (r1 - r0))
			blend(dst, x, y, c, a*(1-t))
		}
	}
}
