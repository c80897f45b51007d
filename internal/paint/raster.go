package paint

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// drawState is the part of the context that Save and Restore preserve.
type drawState struct {
	ctm         rasterx.Matrix2D
	lineWidth   float64
	strokeColor color.Color
	fillColor   color.Color
}

// subpath holds device-space points, or a circle when radius > 0.
type subpath struct {
	pts    [][2]float64
	cx, cy float64
	radius float64
}

// Raster is a Surface backed by an *image.RGBA. Paths are rasterized with
// rasterx and glyphs with x/image/font.
//
// A Raster is not safe for concurrent use.
type Raster struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	stroker *rasterx.Stroker
	filler  *rasterx.Filler
	fonts   *Fonts

	st    drawState
	stack []drawState
	path  []subpath
}

var _ Surface = (*Raster)(nil)

// NewRaster allocates a transparent width x height surface.
func NewRaster(width, height int, fonts *Fonts) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Raster{
		img:     img,
		scanner: scanner,
		stroker: rasterx.NewStroker(width, height, scanner),
		filler:  rasterx.NewFiller(width, height, scanner),
		fonts:   fonts,
		st:      defaultState(),
	}
}

func defaultState() drawState {
	return drawState{
		ctm:         rasterx.Identity,
		lineWidth:   1,
		strokeColor: color.Black,
		fillColor:   color.Black,
	}
}

// Image returns the backing image. It is updated in place by every draw.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) FillBackground(c color.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) SetLineWidth(w float64)       { r.st.lineWidth = w }
func (r *Raster) SetStrokeColor(c color.Color) { r.st.strokeColor = c }
func (r *Raster) SetFillColor(c color.Color)   { r.st.fillColor = c }

func (r *Raster) BeginPath() {
	r.path = r.path[:0]
}

func (r *Raster) MoveTo(x, y float64) {
	dx, dy := r.st.ctm.Transform(x, y)
	r.path = append(r.path, subpath{pts: [][2]float64{{dx, dy}}})
}

func (r *Raster) LineTo(x, y float64) {
	if len(r.path) == 0 || r.path[len(r.path)-1].radius > 0 {
		r.MoveTo(x, y)
		return
	}
	dx, dy := r.st.ctm.Transform(x, y)
	sp := &r.path[len(r.path)-1]
	sp.pts = append(sp.pts, [2]float64{dx, dy})
}

func (r *Raster) Circle(cx, cy, radius float64) {
	if radius <= 0 {
		return
	}
	dx, dy := r.st.ctm.Transform(cx, cy)
	r.path = append(r.path, subpath{cx: dx, cy: dy, radius: radius * r.scale()})
}

// Stroke outlines every polyline of the current path. Circles are ignored.
func (r *Raster) Stroke() {
	w := r.st.lineWidth * r.scale()
	if w <= 0 {
		return
	}
	r.stroker.SetStroke(fixed.Int26_6(w*64), fixed.Int26_6(10*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	drawn := false
	for _, sp := range r.path {
		if sp.radius > 0 || !addPolyline(r.stroker, sp.pts, false) {
			continue
		}
		drawn = true
	}
	if drawn {
		r.scanner.SetColor(r.st.strokeColor)
		r.stroker.Draw()
	}
	r.stroker.Clear()
}

// Fill fills every circle and closed polyline of the current path with the
// nonzero winding rule.
func (r *Raster) Fill() {
	drawn := false
	for _, sp := range r.path {
		if sp.radius > 0 {
			rasterx.AddCircle(sp.cx, sp.cy, sp.radius, r.filler)
			drawn = true
			continue
		}
		if addPolyline(r.filler, sp.pts, true) {
			drawn = true
		}
	}
	if drawn {
		r.scanner.SetColor(r.st.fillColor)
		r.filler.Draw()
	}
	r.filler.Clear()
}

// addPolyline feeds pts to a, dropping repeated samples. It reports false if
// fewer than two distinct points remain.
func addPolyline(a rasterx.Adder, pts [][2]float64, closed bool) bool {
	if len(pts) < 2 {
		return false
	}
	first := rasterx.ToFixedP(pts[0][0], pts[0][1])
	last := first
	started := false
	for _, p := range pts[1:] {
		fp := rasterx.ToFixedP(p[0], p[1])
		if fp == last {
			continue
		}
		if !started {
			a.Start(first)
			started = true
		}
		a.Line(fp)
		last = fp
	}
	if started {
		a.Stop(closed)
	}
	return started
}

func (r *Raster) Save() {
	r.stack = append(r.stack, r.st)
}

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.st = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Raster) Translate(x, y float64) { r.st.ctm = r.st.ctm.Translate(x, y) }
func (r *Raster) Rotate(radians float64) { r.st.ctm = r.st.ctm.Rotate(radians) }
func (r *Raster) Scale(sx, sy float64)   { r.st.ctm = r.st.ctm.Scale(sx, sy) }

// scale is the linear magnification of the current transform.
func (r *Raster) scale() float64 {
	m := r.st.ctm
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

func (r *Raster) MeasureText(text string) TextMetrics {
	if text == "" || r.fonts == nil {
		return TextMetrics{}
	}
	_, b, adv, err := r.fonts.layout(text, 1)
	if err != nil {
		log.Printf("[PAINT] measure %q: %v", text, err)
		return TextMetrics{}
	}
	return TextMetrics{
		Width:   fixedToFloat(adv),
		Left:    fixedToFloat(b.Min.X),
		Right:   fixedToFloat(b.Max.X),
		Ascent:  -fixedToFloat(b.Min.Y),
		Descent: fixedToFloat(b.Max.Y),
	}
}

// FillText rasterizes text at the device resolution implied by the current
// transform, then composites it through the rest of the transform (rotation
// and translation) so scaled exports stay sharp.
func (r *Raster) FillText(text string, x, y float64) {
	if text == "" || r.fonts == nil {
		return
	}
	k := r.scale()
	if k == 0 {
		return
	}
	runs, b, _, err := r.fonts.layout(text, k)
	if err != nil {
		log.Printf("[PAINT] draw %q: %v", text, err)
		return
	}
	minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
	w, h := b.Max.X.Ceil()-minX, b.Max.Y.Ceil()-minY
	if w <= 0 || h <= 0 {
		return
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	src := image.NewUniform(r.st.fillColor)
	for _, run := range runs {
		d := font.Drawer{
			Dst:  glyphs,
			Src:  src,
			Face: run.face,
			Dot:  fixed.Point26_6{X: run.dot - fixed.I(minX), Y: -fixed.I(minY)},
		}
		d.DrawString(run.text)
	}

	m := r.st.ctm.Translate(x, y).Scale(1/k, 1/k).Translate(float64(minX), float64(minY))
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
	xdraw.BiLinear.Transform(r.img, s2d, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}
