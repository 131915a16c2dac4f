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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/motorcycle"
)

// MeshPath returns the edges of m as a path made of separate line segments.
// Every edge occurs once.
func MeshPath(m motorcycle.Mesh, proj Projection) *path.Data {
	p := &path.Data{}
	for f := range motorcycle.FaceID(m.NumFaces()) {
		for h := range motorcycle.HalfedgesAroundFace(m, m.FaceHalfedge(f)) {
			opp := m.Opposite(h)
			if !motorcycle.IsBorder(m, opp) && opp < h {
				continue
			}
			p = p.
				MoveTo(proj.Apply(m.Point(m.Source(h)))).
				LineTo(proj.Apply(m.Point(m.Target(h))))
		}
	}
	return p
}

// TracePath returns the points visited by mc as an open polyline.
func TracePath(d *motorcycle.Dictionary, mc *motorcycle.Motorcycle, proj Projection) *path.Data {
	p := &path.Data{}
	for i, tgt := range mc.Path() {
		q := proj.Apply(d.Entry(tgt.Entry).Point())
		if i == 0 {
			p = p.MoveTo(q)
		} else {
			p = p.LineTo(q)
		}
	}
	return p
}

// Bounds returns the bounding box of the projected vertices of m.
func Bounds(m motorcycle.Mesh, proj Projection) rect.Rect {
	n := m.NumVertices()
	if n == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for v := range motorcycle.VertexID(n) {
		q := proj.Apply(m.Point(v))
		b.LLx = min(b.LLx, q.X)
		b.LLy = min(b.LLy, q.Y)
		b.URx = max(b.URx, q.X)
		b.URy = max(b.URy, q.Y)
	}
	return b
}

// Fit returns a matrix which maps the rectangle b into a picture of the
// given size, keeping a margin around the border.  The aspect ratio is
// preserved and the result is centred.  The y-axis is flipped, so that y
// grows downwards in the picture.
func Fit(b rect.Rect, width, height int, margin float64) matrix.Matrix {
	w, h := float64(width), float64(height)
	bw, bh := b.URx-b.LLx, b.URy-b.LLy

	s := math.Inf(1)
	if bw > 0 {
		s = min(s, (w-2*margin)/bw)
	}
	if bh > 0 {
		s = min(s, (h-2*margin)/bh)
	}
	if math.IsInf(s, 1) || s <= 0 {
		s = 1
	}

	ox := (w - s*bw) / 2
	oy := (h + s*bh) / 2
	return matrix.Matrix{s, 0, 0, -s, ox - s*b.LLx, oy + s*b.LLy}
}
