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

// Package motorcycle computes motorcycle graphs on triangle meshes.
//
// Motorcycles start at points of the mesh and travel in straight lines
// across its faces at constant speed.  A motorcycle stops when it reaches
// the border of the mesh, its destination, the time limit, or a point
// which another motorcycle passed before.  The points visited by all
// motorcycles are kept in a shared [Dictionary], and events are processed
// in order of time by a [Graph].
package motorcycle

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/golang/geo/r3"
)

// Errors returned by Graph methods.
var (
	ErrNoPosition    = errors.New("motorcycle: no start position")
	ErrNoDirection   = errors.New("motorcycle: neither direction nor destination given")
	ErrSpeed         = errors.New("motorcycle: speed must be positive")
	ErrDirection     = errors.New("motorcycle: direction does not lie in a face at the start")
	ErrLocation      = errors.New("motorcycle: invalid location")
	ErrOutside       = errors.New("motorcycle: point is not on the mesh")
	ErrDestination   = errors.New("motorcycle: destination does not share a face with the start")
	ErrTooManyEvents = errors.New("motorcycle: event limit reached")
)

// Start describes a motorcycle to be added to a graph.
type Start struct {
	// Location is the start position on the surface.  If nil, Point is
	// used instead.
	Location *Location

	// Point is the start position in Cartesian coordinates.  It must lie on
	// the mesh.
	Point *r3.Vector

	// Direction is the direction of travel.  It must lie in the plane of a
	// face containing the start position.  A zero vector makes the
	// motorcycle stop immediately.
	Direction *r3.Vector

	// Destination, if set, is a point where the motorcycle stops.  It must
	// lie in a face which also contains the start position.  The direction
	// of travel is taken from the start towards the destination.
	Destination *r3.Vector

	// Speed is the speed of the motorcycle.  If zero, 1 is used.
	Speed float64

	// Time is the time at which the motorcycle starts.
	Time float64
}

// Junction records a motorcycle stopping at a point another motorcycle
// passed through earlier.
type Junction struct {
	Entry      EntryID
	Motorcycle MotorcycleID // the motorcycle which stopped
	Other      MotorcycleID // the motorcycle which was there first
	Time       float64      // arrival time of Motorcycle
}

// Graph runs motorcycles on a mesh.  Events are processed in order of time;
// ties are broken by motorcycle id.
//
// A motorcycle stops when it reaches the border of the mesh, its
// destination, the time limit, or a point some other motorcycle reached
// before.  The graph does not detect crossings of paths in the interior of
// faces.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	mesh    Mesh
	dict    *Dictionary
	tracer  Tracer
	shooter RayShooter
	opt     options
	log     *slog.Logger

	motorcycles []*Motorcycle
	queue       Queue
	junctions   []Junction
	events      int
}

// NewGraph creates an empty graph on the mesh m.
func NewGraph(m Mesh, opts ...Option) *Graph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &Graph{
		mesh:    m,
		dict:    NewDictionary(o.tolerance),
		tracer:  o.tracer,
		shooter: o.shooter,
		opt:     o,
		log:     o.logger,
	}
	if g.log == nil {
		g.log = Logger()
	}
	if g.tracer == nil {
		g.tracer = &UniformTracer{Tolerance: o.tolerance, Logger: o.logger}
	}
	return g
}

// Mesh returns the mesh the graph lives on.
func (g *Graph) Mesh() Mesh { return g.mesh }

// Dictionary returns the dictionary of points shared by all motorcycles.
func (g *Graph) Dictionary() *Dictionary { return g.dict }

// Motorcycles returns all motorcycles, in order of their ids.
func (g *Graph) Motorcycles() []*Motorcycle { return g.motorcycles }

// Motorcycle returns the motorcycle with the given id.
func (g *Graph) Motorcycle(id MotorcycleID) *Motorcycle { return g.motorcycles[id] }

// Junctions returns the points where motorcycles stopped because another
// motorcycle was there first.
func (g *Graph) Junctions() []Junction { return g.junctions }

// Events returns the number of events processed so far.
func (g *Graph) Events() int { return g.events }

// Pending returns the number of motorcycles which still have events.
func (g *Graph) Pending() int { return g.queue.Len() }

// RayShooter returns the structure used for point location, building a
// [FaceTree] if none was configured.
func (g *Graph) RayShooter() RayShooter {
	if g.shooter == nil {
		ft := NewFaceTree(g.mesh)
		ft.Tolerance = g.opt.tolerance
		g.shooter = ft
	}
	return g.shooter
}

// AddMotorcycle places a new motorcycle on the mesh.  Motorcycles can be
// added while the graph is being traced, as long as their start time is not
// before the time of the last processed event.
func (g *Graph) AddMotorcycle(s Start) (MotorcycleID, error) {
	speed := s.Speed
	if speed == 0 {
		speed = 1
	}
	if !(speed > 0) || math.IsInf(speed, 1) {
		return 0, ErrSpeed
	}

	loc, err := g.startLocation(s)
	if err != nil {
		return 0, err
	}
	start := PointOf(g.mesh, loc)

	var dest Location
	hasDest := false
	if s.Destination != nil {
		loc, dest, err = g.destination(loc, *s.Destination)
		if err != nil {
			return 0, err
		}
		hasDest = true
	} else if s.Direction == nil {
		return 0, ErrNoDirection
	} else if err := g.checkDirection(loc, *s.Direction); err != nil {
		return 0, err
	}

	id := MotorcycleID(len(g.motorcycles))
	pos, _ := g.dict.Insert(loc, start)
	mc := NewMotorcycle(id, pos, s.Time, speed)
	if hasDest {
		end := PointOf(g.mesh, dest)
		destID, _ := g.dict.Insert(dest, end)
		mc.SetInputDestination(destID)
		mc.SetDirection(end.Sub(start))
		arrival := s.Time + start.Distance(end)/speed
		if arrival > g.opt.timeLimit && s.Time < g.opt.timeLimit {
			if id, limit, ok := g.cut(mc, pos); ok {
				destID, arrival = id, limit
			}
		}
		mc.addTarget(destID, arrival)
		mc.final = true
	} else {
		mc.SetDirection(*s.Direction)
	}
	mc.state = Advancing

	g.motorcycles = append(g.motorcycles, mc)
	g.queue.Push(mc)
	g.log.Debug("motorcycle added", "motorcycle", id, "location", loc, "time", s.Time)
	return id, nil
}

func (g *Graph) startLocation(s Start) (Location, error) {
	tol := g.opt.tolerance
	switch {
	case s.Location != nil:
		loc := *s.Location
		if loc.Face < 0 || int(loc.Face) >= g.mesh.NumFaces() {
			return Location{}, fmt.Errorf("face %d: %w", loc.Face, ErrLocation)
		}
		sum := loc.Bary[0] + loc.Bary[1] + loc.Bary[2]
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return Location{}, fmt.Errorf("%v: %w", loc, ErrLocation)
		}
		if min(loc.Bary[0], loc.Bary[1], loc.Bary[2]) < -tol || math.Abs(sum-1) > tol {
			return Location{}, fmt.Errorf("%v: %w", loc, ErrLocation)
		}
		return cleanLocation(loc, tol), nil
	case s.Point != nil:
		loc, ok := g.RayShooter().Locate(*s.Point)
		if !ok {
			return Location{}, fmt.Errorf("%v: %w", *s.Point, ErrOutside)
		}
		return loc, nil
	default:
		return Location{}, ErrNoPosition
	}
}

// checkDirection verifies that dir lies in the plane of at least one face
// containing loc.
func (g *Graph) checkDirection(loc Location, dir r3.Vector) error {
	if dir == (r3.Vector{}) {
		return nil
	}
	tol := g.opt.tolerance
	for _, f := range g.incidentFaces(loc) {
		p := FacePoints(g.mesh, f)
		n := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
		if math.Abs(n.Dot(dir)) <= tol*n.Norm()*dir.Norm() {
			return nil
		}
	}
	return fmt.Errorf("%v: %w", dir, ErrDirection)
}

// destination finds a face containing both the start location and the
// destination point.  Both are returned as locations in that face.
func (g *Graph) destination(start Location, p r3.Vector) (Location, Location, error) {
	tol := g.opt.tolerance
	for _, f := range g.incidentFaces(start) {
		loc, ok := Locate(g.mesh, f, p)
		if !ok || min(loc.Bary[0], loc.Bary[1], loc.Bary[2]) < -tol {
			continue
		}
		if PointOf(g.mesh, loc).Distance(p) > tol*max(p.Norm(), 1) {
			continue
		}
		src, ok := LocateIn(g.mesh, start, f)
		if !ok {
			continue
		}
		return src, cleanLocation(loc, tol), nil
	}
	return Location{}, Location{}, fmt.Errorf("%v: %w", p, ErrDestination)
}

// incidentFaces lists the faces containing a location: the face itself, the
// two faces of an edge, or all faces around a vertex.
func (g *Graph) incidentFaces(loc Location) []FaceID {
	m := g.mesh
	switch el := ElementOf(m, loc).(type) {
	case VertexElement:
		var res []FaceID
		for f := range FacesAroundTarget(m, m.VertexHalfedge(el.Vertex)) {
			if f != NullFace {
				res = append(res, f)
			}
		}
		return res
	case HalfedgeElement:
		res := []FaceID{m.Face(el.Halfedge)}
		if opp := m.Opposite(el.Halfedge); !IsBorder(m, opp) {
			res = append(res, m.Face(opp))
		}
		return res
	default:
		return []FaceID{loc.Face}
	}
}

// Step processes the earliest pending event.  It returns false if no events
// are left.
func (g *Graph) Step() bool {
	if g.queue.Len() == 0 {
		return false
	}
	g.events++

	mc := g.queue.Pop().Motorcycle()
	tgt := mc.advance()
	g.dict.Visit(tgt.Entry, mc.id, tgt.Time)

	if len(mc.path) > 1 {
		other, t, ok := g.firstVisitor(tgt.Entry, mc.id)
		if ok && t <= tgt.Time {
			g.junctions = append(g.junctions, Junction{
				Entry:      tgt.Entry,
				Motorcycle: mc.id,
				Other:      other,
				Time:       tgt.Time,
			})
			g.log.Debug("junction", "motorcycle", mc.id, "other", other, "time", tgt.Time)
			mc.stop()
			return true
		}
	}

	if len(mc.targets) > 1 {
		mc.dropCurrent()
		g.queue.Push(mc)
		return true
	}
	if mc.final || mc.time >= g.opt.timeLimit {
		mc.stop()
		return true
	}

	el := ElementOf(g.mesh, g.dict.Entry(mc.position).Location())
	res := g.tracer.Trace(el, mc, g.dict, g.mesh)
	if !res.Found || res.Time <= mc.time {
		if !res.Final {
			g.log.Warn("no destination found, stopping",
				"motorcycle", mc.id, "time", mc.time)
		}
		mc.final = true
		mc.stop()
		return true
	}

	if res.Source != mc.position {
		g.dict.Visit(res.Source, mc.id, mc.time)
		mc.moveTo(res.Source)
	}
	dest, t, final := res.Destination, res.Time, res.Final
	if t > g.opt.timeLimit {
		if id, limit, ok := g.cut(mc, res.Source); ok {
			dest, t = id, limit
		}
		final = true
	}
	mc.addTarget(dest, t)
	mc.final = final
	mc.dropCurrent()
	g.queue.Push(mc)
	return true
}

// firstVisitor finds the earliest motorcycle other than mc which passed
// through the point of entry id.  Points on edges and vertices have one
// entry per incident face; all of them are checked.
func (g *Graph) firstVisitor(id EntryID, mc MotorcycleID) (MotorcycleID, float64, bool) {
	best, bestTime, found := g.dict.FirstVisitor(id, mc)

	loc := g.dict.Entry(id).loc
	if _, inFace := ElementOf(g.mesh, loc).(FaceElement); inFace {
		return best, bestTime, found
	}
	for _, f := range g.incidentFaces(loc) {
		if f == loc.Face {
			continue
		}
		other, ok := LocateIn(g.mesh, loc, f)
		if !ok {
			continue
		}
		e, ok := g.dict.Find(other)
		if !ok {
			continue
		}
		o, t, ok := g.dict.FirstVisitor(e, mc)
		if ok && (!found || t < bestTime || t == bestTime && o < best) {
			best, bestTime, found = o, t, true
		}
	}
	return best, bestTime, found
}

// cut shortens a leg starting at src so that it ends at the time limit.
func (g *Graph) cut(mc *Motorcycle, src EntryID) (EntryID, float64, bool) {
	e := g.dict.Entry(src)
	dir, _ := mc.Direction()
	dist := (g.opt.timeLimit - mc.time) * mc.speed
	p := e.point.Add(dir.Normalize().Mul(dist))

	loc, ok := Locate(g.mesh, e.loc.Face, p)
	if !ok {
		return NoEntry, 0, false
	}
	loc = cleanLocation(loc, g.opt.tolerance)
	id, _ := g.dict.Insert(loc, PointOf(g.mesh, loc))
	return id, g.opt.timeLimit, true
}

// Trace processes events until all motorcycles have stopped.
func (g *Graph) Trace() error {
	n := 0
	for g.Step() {
		n++
		if n >= g.opt.maxEvents && g.queue.Len() > 0 {
			return fmt.Errorf("after %d events: %w", n, ErrTooManyEvents)
		}
	}
	return nil
}

// Pick shoots a ray at the mesh and returns the location of the first hit.
// This can be used to place motorcycles from a view point.
func (g *Graph) Pick(origin, dir r3.Vector) (Location, bool) {
	hit, ok := g.RayShooter().Shoot(origin, dir)
	if !ok {
		return Location{}, false
	}
	return hit.Location, true
}
