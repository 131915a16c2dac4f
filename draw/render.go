// seehuhn.de/go/motorcycle - motorcycle graphs on triangle meshes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package draw

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/motorcycle"
)

// Style controls the appearance of rendered graphs.  Lengths are in pixels.
type Style struct {
	MeshWidth      float64
	MeshCoverage   float64 // coverage of mesh edges, from 0 to 1
	TraceWidth     float64
	JunctionRadius float64
	Margin         float64
}

// DefaultStyle is used by [Render].
var DefaultStyle = Style{
	MeshWidth:      0.5,
	MeshCoverage:   0.35,
	TraceWidth:     2,
	JunctionRadius: 3,
	Margin:         4,
}

// capSegments is the number of polygon segments used for a full circle.
const capSegments = 16

// Renderer draws motorcycle graphs into grayscale coverage buffers.
// Internal buffers are reused between calls.
type Renderer struct {
	Style Style

	// Projection maps the mesh into the picture.  If U and V are zero,
	// the mesh is projected onto its own plane and scaled to fit.
	Projection Projection

	r *vector.Rasterizer
}

// NewRenderer returns a renderer using [DefaultStyle].
func NewRenderer() *Renderer {
	return &Renderer{Style: DefaultStyle}
}

// Render draws g into buf using [DefaultStyle].
func Render(g *motorcycle.Graph, buf []byte, width, height, stride int) {
	NewRenderer().Render(g, buf, width, height, stride)
}

// Render draws the mesh edges and the traces of all motorcycles of g.
// The buffer is in row-major order with the given stride.  Each byte
// represents coverage from 0 (transparent) to 255 (opaque).  Existing
// content of the buffer is painted over.
func (rd *Renderer) Render(g *motorcycle.Graph, buf []byte, width, height, stride int) {
	if width <= 0 || height <= 0 {
		return
	}
	dst := &image.Alpha{
		Pix:    buf,
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
	}
	proj := rd.projection(g.Mesh(), width, height)

	rd.stroke(dst, MeshPath(g.Mesh(), proj), rd.Style.MeshWidth, rd.Style.MeshCoverage)

	d := g.Dictionary()
	for _, mc := range g.Motorcycles() {
		rd.stroke(dst, TracePath(d, mc, proj), rd.Style.TraceWidth, 1)
	}

	if rd.Style.JunctionRadius > 0 && len(g.Junctions()) > 0 {
		rd.reset(width, height)
		for _, j := range g.Junctions() {
			rd.circle(proj.Apply(d.Entry(j.Entry).Point()), rd.Style.JunctionRadius)
		}
		rd.draw(dst, 1)
	}
}

// ViewProjection returns the projection used for a picture of the given size.
func (rd *Renderer) ViewProjection(m motorcycle.Mesh, width, height int) Projection {
	return rd.projection(m, width, height)
}

func (rd *Renderer) projection(m motorcycle.Mesh, width, height int) Projection {
	if !rd.Projection.isZero() {
		return rd.Projection
	}
	p := ProjectionFor(m)
	p.M = Fit(Bounds(m, p), width, height, rd.Style.Margin)
	return p
}

func (rd *Renderer) reset(width, height int) {
	if rd.r == nil {
		rd.r = vector.NewRasterizer(width, height)
	} else {
		rd.r.Reset(width, height)
	}
}

func (rd *Renderer) draw(dst *image.Alpha, coverage float64) {
	a := uint8(math.Round(255 * min(max(coverage, 0), 1)))
	rd.r.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: a}), image.Point{})
}

// stroke draws the line segments of p with round caps and joins.  All
// outlines have the same orientation, so that overlaps do not cancel.
func (rd *Renderer) stroke(dst *image.Alpha, p *path.Data, width, coverage float64) {
	if width <= 0 || coverage <= 0 {
		return
	}
	b := dst.Bounds()
	rd.reset(b.Dx(), b.Dy())

	hw := width / 2
	var cur vec.Vec2
	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			cur = pts[0]
			rd.circle(cur, hw)
		case path.CmdLineTo:
			next := pts[0]
			rd.segment(cur, next, hw)
			rd.circle(next, hw)
			cur = next
		}
	}
	rd.draw(dst, coverage)
}

func (rd *Renderer) segment(a, b vec.Vec2, hw float64) {
	t := b.Sub(a)
	l := math.Hypot(t.X, t.Y)
	if l == 0 {
		return
	}
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(hw / l)
	rd.polygon(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

func (rd *Renderer) circle(c vec.Vec2, r float64) {
	var pts [capSegments]vec.Vec2
	for i := range pts {
		phi := -2 * math.Pi * float64(i) / capSegments
		pts[i] = vec.Vec2{X: c.X + r*math.Cos(phi), Y: c.Y + r*math.Sin(phi)}
	}
	rd.polygon(pts[:]...)
}

func (rd *Renderer) polygon(pts ...vec.Vec2) {
	rd.r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		rd.r.LineTo(float32(p.X), float32(p.Y))
	}
	rd.r.ClosePath()
}
