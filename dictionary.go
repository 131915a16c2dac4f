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
	"iter"
	"maps"
	"math"
	"slices"

	"github.com/golang/geo/r3"
)

// EntryID is a stable handle for a dictionary entry.  Handles are never
// reused, not even after the entry has been erased.
type EntryID int

// NoEntry is the zero value for "no entry".
const NoEntry EntryID = -1

// Entry is a point on the surface which has been visited or probed by at
// least one motorcycle.
type Entry struct {
	loc   Location
	point r3.Vector

	// visitors maps motorcycles which passed through this point to their
	// arrival time.
	visitors map[MotorcycleID]float64
}

// Location returns the surface location of the entry.
func (e *Entry) Location() Location { return e.loc }

// Point returns the Cartesian coordinates of the entry.
func (e *Entry) Point() r3.Vector { return e.point }

// VisitingMotorcycles returns the motorcycles which passed through the
// entry, in increasing order of arrival time.  Motorcycles arriving at the
// same time are ordered by id.
func (e *Entry) VisitingMotorcycles() []MotorcycleID {
	ids := slices.Collect(maps.Keys(e.visitors))
	slices.SortFunc(ids, func(a, b MotorcycleID) int {
		if ta, tb := e.visitors[a], e.visitors[b]; ta != tb {
			if ta < tb {
				return -1
			}
			return 1
		}
		return int(a - b)
	})
	return ids
}

// VisitTime returns the time at which mc passed through the entry.
func (e *Entry) VisitTime(mc MotorcycleID) (float64, bool) {
	t, ok := e.visitors[mc]
	return t, ok
}

// Dictionary is the registry of surface points shared by all motorcycles of
// a graph.  Two locations in the same face whose barycentric coordinates
// agree up to the tolerance map to the same entry.
//
// Entries live in an arena and are addressed by [EntryID].  A Dictionary is
// not safe for concurrent use.
type Dictionary struct {
	// Tolerance is the maximal difference between barycentric coordinates
	// of locations which are considered equal.
	Tolerance float64

	entries []*Entry // nil for erased entries
	byFace  map[FaceID][]EntryID
	live    int
}

// NewDictionary returns an empty dictionary.  If tol is not positive,
// [DefaultTolerance] is used.
func NewDictionary(tol float64) *Dictionary {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return &Dictionary{
		Tolerance: tol,
		byFace:    make(map[FaceID][]EntryID),
	}
}

// Insert returns the entry for loc.  If an entry with an equal location
// exists, it is returned together with false.  Otherwise a new entry with
// the given Cartesian point is created and returned together with true.
func (d *Dictionary) Insert(loc Location, p r3.Vector) (EntryID, bool) {
	if id, ok := d.Find(loc); ok {
		return id, false
	}

	id := EntryID(len(d.entries))
	d.entries = append(d.entries, &Entry{
		loc:      loc,
		point:    p,
		visitors: make(map[MotorcycleID]float64),
	})
	d.byFace[loc.Face] = append(d.byFace[loc.Face], id)
	d.live++
	return id, true
}

// Find looks up the entry for loc without inserting.
func (d *Dictionary) Find(loc Location) (EntryID, bool) {
	for _, id := range d.byFace[loc.Face] {
		if d.sameLocation(d.entries[id].loc, loc) {
			return id, true
		}
	}
	return NoEntry, false
}

func (d *Dictionary) sameLocation(a, b Location) bool {
	if a.Face != b.Face {
		return false
	}
	for i := range a.Bary {
		if math.Abs(a.Bary[i]-b.Bary[i]) > d.Tolerance {
			return false
		}
	}
	return true
}

// Erase removes an entry.  The entry must not have been visited by any
// motorcycle.
func (d *Dictionary) Erase(id EntryID) {
	e := d.Entry(id)
	if len(e.visitors) > 0 {
		panic(fmt.Sprintf("motorcycle: erasing entry %d with %d visitors", id, len(e.visitors)))
	}

	ids := d.byFace[e.loc.Face]
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	}
	if len(ids) == 0 {
		delete(d.byFace, e.loc.Face)
	} else {
		d.byFace[e.loc.Face] = ids
	}
	d.entries[id] = nil
	d.live--
}

// Entry returns the entry for id.  It panics if id does not refer to a live
// entry.
func (d *Dictionary) Entry(id EntryID) *Entry {
	if id < 0 || int(id) >= len(d.entries) || d.entries[id] == nil {
		panic(fmt.Sprintf("motorcycle: invalid dictionary entry %d", id))
	}
	return d.entries[id]
}

// Contains reports whether id refers to a live entry.
func (d *Dictionary) Contains(id EntryID) bool {
	return id >= 0 && int(id) < len(d.entries) && d.entries[id] != nil
}

// Len returns the number of live entries.
func (d *Dictionary) Len() int {
	return d.live
}

// All iterates over the live entries in order of creation.
func (d *Dictionary) All() iter.Seq2[EntryID, *Entry] {
	return func(yield func(EntryID, *Entry) bool) {
		for i, e := range d.entries {
			if e == nil {
				continue
			}
			if !yield(EntryID(i), e) {
				return
			}
		}
	}
}

// Visit records that motorcycle mc reached entry id at time t.  An earlier
// visit by the same motorcycle is kept.
func (d *Dictionary) Visit(id EntryID, mc MotorcycleID, t float64) {
	e := d.Entry(id)
	if old, ok := e.visitors[mc]; ok && old <= t {
		return
	}
	e.visitors[mc] = t
}

// Visitors returns the motorcycles which passed through entry id, ordered by
// arrival time.
func (d *Dictionary) Visitors(id EntryID) []MotorcycleID {
	return d.Entry(id).VisitingMotorcycles()
}

// FirstVisitor returns the motorcycle other than mc which reached entry id
// first, together with its arrival time.
func (d *Dictionary) FirstVisitor(id EntryID, mc MotorcycleID) (MotorcycleID, float64, bool) {
	e := d.Entry(id)
	for _, other := range e.VisitingMotorcycles() {
		if other != mc {
			return other, e.visitors[other], true
		}
	}
	return 0, 0, false
}
