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
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

// A motorcycle at the centroid of a triangle, heading for the midpoint of
// an edge, stops on that edge.
func TestTraceCentroidToEdge(t *testing.T) {
	m := unitSquare(t)
	d := NewDictionary(0)
	third := 1.0 / 3
	start := Location{0, [3]float64{third, third, third}}
	target := r3.Vector{X: 1, Y: 0.5}
	dir := target.Sub(PointOf(m, start))
	mc := place(m, d, 0, start, dir)

	tr := &UniformTracer{}
	res := tr.Trace(ElementOf(m, start), mc, d, m)
	if !res.Found || res.Final {
		t.Fatalf("got %+v", res)
	}
	if res.Source != mc.CurrentPosition() {
		t.Errorf("source %d differs from the position %d", res.Source, mc.CurrentPosition())
	}

	dest := d.Entry(res.Destination)
	diff(t, Location{0, [3]float64{0, 0.5, 0.5}}, dest.Location(), approx)
	if dest.Location().Bary[0] != 0 {
		t.Errorf("coordinate of the opposite vertex is %g, not 0", dest.Location().Bary[0])
	}
	diff(t, target, dest.Point(), approx)
	diff(t, math.Sqrt(5)/6, res.Time, approx)
}

// Arrival times scale with the inverse of the speed.
func TestTraceSpeed(t *testing.T) {
	m := unitSquare(t)
	d := NewDictionary(0)
	start := Location{0, [3]float64{0.5, 0.25, 0.25}} // (0.5, 0.25)
	e, _ := d.Insert(start, PointOf(m, start))
	mc := NewMotorcycle(0, e, 2, 4)
	mc.SetDirection(r3.Vector{X: 1})

	res := (&UniformTracer{}).Trace(ElementOf(m, start), mc, d, m)
	if !res.Found {
		t.Fatal("no destination")
	}
	diff(t, 2+0.5/4, res.Time, approx)
}

// Within a face, the crossing farthest along the ray is used, unless the
// tracer is configured to use the nearest one.
func TestTraceSelection(t *testing.T) {
	m := unitSquare(t)

	// The vertical line x = 0.5 enters face 0 at (0.5, 0) and leaves it at
	// (0.5, 0.5).  The ray starts below the face.
	origin := r3.Vector{X: 0.5, Y: -1}
	loc, _ := Locate(m, 0, origin)

	cases := []struct {
		sel      Selection
		wantTime float64
		want     r3.Vector
	}{
		{Farthest, 1.5, r3.Vector{X: 0.5, Y: 0.5}},
		{Nearest, 1, r3.Vector{X: 0.5}},
	}
	for _, c := range cases {
		d := NewDictionary(0)
		mc := place(m, d, 0, loc, r3.Vector{Y: 1})
		tr := &UniformTracer{Selection: c.sel}
		res := tr.NextDestination(mc.CurrentPosition(), 0, mc, d, m)
		if !res.Found {
			t.Errorf("selection %d: no destination", c.sel)
			continue
		}
		diff(t, c.wantTime, res.Time, approx)
		diff(t, c.want, d.Entry(res.Destination).Point(), approx)
	}
}

// Repeated tracing of one motorcycle never goes back in time.
func TestTraceMonotonic(t *testing.T) {
	m := grid(t, 4)
	d := NewDictionary(0)
	loc, ok := NewFaceTree(m).Locate(r3.Vector{X: 0.3, Y: 0.1})
	if !ok {
		t.Fatal("start point not found")
	}
	mc := place(m, d, 0, loc, r3.Vector{X: 2, Y: 1})
	tr := &UniformTracer{}

	for range 100 {
		pos := d.Entry(mc.CurrentPosition())
		res := tr.Trace(ElementOf(m, pos.Location()), mc, d, m)
		if !res.Found {
			if !res.Final {
				t.Fatal("no destination, but not final either")
			}
			break
		}
		if res.Time <= mc.CurrentTime() {
			t.Fatalf("time goes from %g to %g", mc.CurrentTime(), res.Time)
		}
		mc.moveTo(res.Source)
		mc.addTarget(res.Destination, res.Time)
		mc.dropCurrent()
		mc.advance()
	}

	// the ray from (0.3, 0.1) with slope 1/2 leaves the grid at x = 4
	end := d.Entry(mc.CurrentPosition()).Point()
	diff(t, r3.Vector{X: 4, Y: 1.95}, end, approx)
	diff(t, math.Sqrt(3.7*3.7+1.85*1.85), mc.CurrentTime(), approx)
}

// A null direction makes every variant of the tracer return the current
// position as a final destination.
func TestTraceNullDirection(t *testing.T) {
	m := unitSquare(t)
	third := 1.0 / 3
	locs := map[string]Location{
		"face":     {0, [3]float64{third, third, third}},
		"halfedge": {0, [3]float64{0.5, 0, 0.5}},
		"vertex":   {1, [3]float64{0, 0, 1}},
	}
	for name, loc := range locs {
		t.Run(name, func(t *testing.T) {
			d := NewDictionary(0)
			mc := place(m, d, 0, loc, r3.Vector{})
			n := d.Len()

			res := (&UniformTracer{}).Trace(ElementOf(m, loc), mc, d, m)
			want := Result{
				Found:       true,
				Source:      mc.CurrentPosition(),
				Destination: mc.CurrentPosition(),
				Time:        0,
				Final:       true,
			}
			diff(t, want, res)
			if d.Len() != n {
				t.Errorf("dictionary grew from %d to %d entries", n, d.Len())
			}
		})
	}
}

func TestTraceUnknownDirectionPanics(t *testing.T) {
	m := unitSquare(t)
	d := NewDictionary(0)
	loc := Location{0, [3]float64{0.5, 0.25, 0.25}}
	e, _ := d.Insert(loc, PointOf(m, loc))
	mc := NewMotorcycle(0, e, 0, 1)

	defer func() {
		if recover() == nil {
			t.Error("tracing without a direction did not panic")
		}
	}()
	(&UniformTracer{}).Trace(ElementOf(m, loc), mc, d, m)
}

// Probes which do not lead anywhere are removed from the dictionary.
func TestTraceVertexErasesProbe(t *testing.T) {
	m := unitSquare(t)
	d := NewDictionary(0)

	// Vertex 0 is tried in face 1 first, but the direction points into
	// face 0.
	start := Location{0, [3]float64{1, 0, 0}}
	mc := place(m, d, 0, start, r3.Vector{X: 1, Y: 0.5})

	res := (&UniformTracer{}).Trace(ElementOf(m, start), mc, d, m)
	if !res.Found || res.Source != mc.CurrentPosition() {
		t.Fatalf("got %+v", res)
	}
	diff(t, r3.Vector{X: 1, Y: 0.5}, d.Entry(res.Destination).Point(), approx)

	if _, ok := d.Find(Location{1, [3]float64{1, 0, 0}}); ok {
		t.Error("probe in face 1 was not erased")
	}
	if d.Len() != 2 {
		t.Errorf("got %d entries, want 2", d.Len())
	}
}

// Probes which are in use stay in the dictionary.
func TestTraceVertexKeepsVisitedProbe(t *testing.T) {
	m := unitSquare(t)
	d := NewDictionary(0)

	probe := Location{1, [3]float64{1, 0, 0}}
	p, _ := d.Insert(probe, r3.Vector{})
	d.Visit(p, 9, 0)

	start := Location{0, [3]float64{1, 0, 0}}
	mc := place(m, d, 0, start, r3.Vector{X: 1, Y: 0.5})
	(&UniformTracer{}).Trace(ElementOf(m, start), mc, d, m)

	if !d.Contains(p) {
		t.Error("visited entry was erased")
	}
}

// At a border vertex with the direction pointing outwards, the motorcycle
// stops.
func TestTraceVertexOutward(t *testing.T) {
	m := unitSquare(t)
	d := NewDictionary(0)
	start := Location{1, [3]float64{0, 0, 1}} // vertex 3 at (0, 1)
	mc := place(m, d, 0, start, r3.Vector{X: -1, Y: 1})

	res := (&UniformTracer{}).Trace(ElementOf(m, start), mc, d, m)
	want := Result{
		Found:       false,
		Source:      mc.CurrentPosition(),
		Destination: mc.CurrentPosition(),
		Time:        0,
		Final:       true,
	}
	diff(t, want, res)
}

// A motorcycle on the shared edge, registered in face A but heading into
// face B, first tries A and then continues in B.
func TestTraceSharedEdge(t *testing.T) {
	m := unitSquare(t)
	d := NewDictionary(0)
	start := Location{0, [3]float64{0.5, 0, 0.5}} // (0.5, 0.5) in face 0
	mc := place(m, d, 0, start, r3.Vector{Y: 1})

	if _, ok := ElementOf(m, start).(HalfedgeElement); !ok {
		t.Fatal("start is not on an edge")
	}

	res := (&UniformTracer{}).Trace(ElementOf(m, start), mc, d, m)
	if !res.Found || res.Final {
		t.Fatalf("got %+v", res)
	}
	if res.Source == mc.CurrentPosition() {
		t.Error("source should be the start point seen from face 1")
	}
	src := d.Entry(res.Source)
	diff(t, Location{1, [3]float64{0.5, 0.5, 0}}, src.Location())

	dest := d.Entry(res.Destination)
	if dest.Location().Face != 1 {
		t.Errorf("destination in face %d, want 1", dest.Location().Face)
	}
	diff(t, r3.Vector{X: 0.5, Y: 1}, dest.Point(), approx)
	diff(t, 0.5, res.Time, approx)
}

// A motorcycle on a border edge heading outwards stops.
func TestTraceBorderEdge(t *testing.T) {
	m := unitSquare(t)
	d := NewDictionary(0)
	start := Location{0, [3]float64{0, 0.5, 0.5}} // (1, 0.5)
	mc := place(m, d, 0, start, r3.Vector{X: 1})

	res := (&UniformTracer{}).Trace(ElementOf(m, start), mc, d, m)
	if res.Found || !res.Final {
		t.Errorf("got %+v", res)
	}
	if res.Source != mc.CurrentPosition() || res.Destination != mc.CurrentPosition() {
		t.Errorf("got %+v", res)
	}
}

func TestNextDestinationWrongFacePanics(t *testing.T) {
	m := unitSquare(t)
	d := NewDictionary(0)
	mc := place(m, d, 0, Location{0, [3]float64{0.5, 0.25, 0.25}}, r3.Vector{X: 1})
	defer func() {
		if recover() == nil {
			t.Error("NextDestination in the wrong face did not panic")
		}
	}()
	(&UniformTracer{}).NextDestination(mc.CurrentPosition(), 1, mc, d, m)
}
