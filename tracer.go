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

package motorcycle

import (
	"fmt"
	"log/slog"

	"github.com/golang/geo/r3"
)

// Result describes the next leg of a motorcycle's path.
type Result struct {
	// Found is true if a destination was found.
	Found bool

	// Source is where the leg starts.  This can differ from the current
	// position of the motorcycle: it is the same point, expressed in the face
	// the leg runs through.
	Source EntryID

	// Destination is the end of the leg.
	Destination EntryID

	// Time is the time at which the motorcycle reaches Destination.
	Time float64

	// Final is set if the motorcycle stops at Destination.
	Final bool
}

// A Tracer computes the next destination of a motorcycle, given the mesh
// element which contains its current position.
//
// Trace may insert new entries into the dictionary.
type Tracer interface {
	Trace(el Element, mc *Motorcycle, d *Dictionary, m Mesh) Result
}

// Selection chooses among the points where a ray leaves a face.
type Selection int

const (
	// Farthest selects the crossing with the largest arrival time.  This
	// moves a motorcycle straight through the whole face in one step.
	Farthest Selection = iota

	// Nearest selects the first crossing ahead of the current time.
	Nearest
)

// UniformTracer moves motorcycles along a fixed direction until they reach
// the border of the mesh.  The direction of travel should lie in the plane
// of the faces; a motorcycle whose direction leaves the plane of the next
// face stops at the edge in between.
//
// The zero value is ready to use.
type UniformTracer struct {
	// Selection picks the boundary crossing used within a face.
	// The default is Farthest.
	Selection Selection

	// Tolerance is the relative tolerance for geometric tests.
	// If zero, DefaultTolerance is used.
	Tolerance float64

	// Logger receives diagnostics.  If nil, the package logger is used.
	Logger *slog.Logger
}

var _ Tracer = (*UniformTracer)(nil)

func (tr *UniformTracer) tol() float64 {
	if tr.Tolerance > 0 {
		return tr.Tolerance
	}
	return DefaultTolerance
}

func (tr *UniformTracer) log() *slog.Logger {
	if tr.Logger != nil {
		return tr.Logger
	}
	return Logger()
}

// Trace implements the [Tracer] interface.  The direction of mc must be
// known.
func (tr *UniformTracer) Trace(el Element, mc *Motorcycle, d *Dictionary, m Mesh) Result {
	dir, ok := mc.Direction()
	if !ok {
		panic(fmt.Sprintf("motorcycle: direction of %d is unknown", mc.id))
	}
	if dir == (r3.Vector{}) {
		tr.log().Warn("null direction, motorcycle stays in place",
			"motorcycle", mc.id, "time", mc.time)
		return Result{
			Found:       true,
			Source:      mc.position,
			Destination: mc.position,
			Time:        mc.time,
			Final:       true,
		}
	}

	switch el := el.(type) {
	case VertexElement:
		return tr.fromVertex(el.Vertex, mc, d, m)
	case HalfedgeElement:
		return tr.fromHalfedge(el.Halfedge, mc, d, m)
	case FaceElement:
		return tr.NextDestination(mc.position, el.Face, mc, d, m)
	default:
		panic(fmt.Sprintf("motorcycle: unexpected element %T", el))
	}
}

// NextDestination follows the ray from start along the direction of mc to
// the border of face f.  Start must be an entry located in f.  The
// destination is snapped onto the border of f.
//
// If the direction leaves f immediately, the result has Found == false.
func (tr *UniformTracer) NextDestination(start EntryID, f FaceID, mc *Motorcycle, d *Dictionary, m Mesh) Result {
	se := d.Entry(start)
	if se.loc.Face != f {
		panic(fmt.Sprintf("motorcycle: entry %d is not located in face %d", start, f))
	}
	tol := tr.tol()
	dir, _ := mc.Direction()
	origin := se.point

	var scale float64
	for h := range HalfedgesAroundFace(m, m.FaceHalfedge(f)) {
		scale = max(scale, m.Point(m.Target(h)).Distance(m.Point(m.Source(h))))
	}
	minDist := tol * max(scale, 1)

	var best r3.Vector
	bestTime := mc.time
	found := false
	for h := range HalfedgesAroundFace(m, m.FaceHalfedge(f)) {
		a := m.Point(m.Source(h))
		b := m.Point(m.Target(h))
		p, _, ok := intersectRaySegment(origin, dir, a, b, tol)
		if !ok {
			continue
		}
		dist := origin.Distance(p)
		if dist <= minDist {
			continue
		}
		t := mc.time + dist/mc.speed

		var better bool
		switch tr.Selection {
		case Nearest:
			better = !found || t < bestTime
		default:
			better = t > bestTime
		}
		if better {
			best = p
			bestTime = t
			found = true
		}
	}

	if !found {
		tr.log().Debug("no intersection with the border of the face ahead",
			"motorcycle", mc.id, "face", f, "time", mc.time)
		return Result{}
	}

	loc, ok := Locate(m, f, best)
	if !ok {
		tr.log().Warn("degenerate face", "face", f)
		return Result{}
	}
	// The motorcycle ends on the border of f.  One barycentric coordinate
	// must be exactly zero, so that the next step knows which edge or vertex
	// it is on.
	loc = SnapToBorder(loc, tol)
	p := PointOf(m, loc)
	dest, _ := d.Insert(loc, p)
	t := mc.time + origin.Distance(p)/mc.speed

	tr.log().Debug("destination",
		"motorcycle", mc.id,
		"source", start, "from", se.loc,
		"destination", dest, "to", loc,
		"time", t)

	return Result{
		Found:       true,
		Source:      start,
		Destination: dest,
		Time:        t,
	}
}

func (tr *UniformTracer) fromVertex(v VertexID, mc *Motorcycle, d *Dictionary, m Mesh) Result {
	pos := d.Entry(mc.position)

	for f := range FacesAroundTarget(m, m.VertexHalfedge(v)) {
		if f == NullFace {
			continue
		}

		src := mc.position
		isNew := false
		if pos.loc.Face != f {
			loc, ok := LocateIn(m, pos.loc, f)
			if !ok {
				continue
			}
			src, isNew = d.Insert(loc, pos.point)
		}

		res := tr.NextDestination(src, f, mc, d, m)
		if res.Found && res.Time > mc.time {
			return res
		}

		// The probe in f is not used by anybody.
		if isNew {
			d.Erase(src)
		}
	}

	if !IsBorderVertex(m, v) {
		tr.log().Warn("direction leaves all faces around an interior vertex",
			"motorcycle", mc.id, "vertex", v)
	}
	return Result{
		Source:      mc.position,
		Destination: mc.position,
		Time:        mc.time,
		Final:       true,
	}
}

func (tr *UniformTracer) fromHalfedge(h HalfedgeID, mc *Motorcycle, d *Dictionary, m Mesh) Result {
	// A motorcycle starting on an edge may move into either face.  Later on,
	// it reaches the edge through face(h) and continues on the other side.
	if _, ok := mc.InputDestination(); !ok {
		res := tr.NextDestination(mc.position, m.Face(h), mc, d, m)
		if res.Found && res.Time > mc.time {
			return res
		}
	}

	opp := m.Opposite(h)
	if IsBorder(m, opp) {
		return Result{
			Source:      mc.position,
			Destination: mc.position,
			Time:        mc.time,
			Final:       true,
		}
	}

	pos := d.Entry(mc.position)
	oppFace := m.Face(opp)
	loc, ok := LocateIn(m, pos.loc, oppFace)
	if !ok {
		panic(fmt.Sprintf("motorcycle: cannot locate %v in face %d", pos.loc, oppFace))
	}
	src, isNew := d.Insert(loc, pos.point)

	res := tr.NextDestination(src, oppFace, mc, d, m)
	if !res.Found {
		// The faces are not coplanar, or the direction leaves the plane.
		tr.log().Warn("direction leaves the face across an interior edge",
			"motorcycle", mc.id, "halfedge", h, "face", oppFace)
		if isNew {
			d.Erase(src)
		}
	}
	return res
}
