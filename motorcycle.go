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
	"slices"

	"github.com/golang/geo/r3"
)

// MotorcycleID identifies a motorcycle within a graph.
type MotorcycleID int

// State is the stage of a motorcycle's life.
type State int

const (
	// Unpositioned motorcycles have not been placed in a graph yet.
	Unpositioned State = iota

	// Advancing motorcycles are still moving.
	Advancing

	// Terminal motorcycles have stopped for good.
	Terminal
)

func (s State) String() string {
	switch s {
	case Unpositioned:
		return "unpositioned"
	case Advancing:
		return "advancing"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Target is a point a motorcycle will reach, and the time of arrival.
type Target struct {
	Entry EntryID
	Time  float64
}

// Motorcycle is a point moving across the mesh in a straight line with
// constant speed.
//
// The targets of a motorcycle are kept in order of increasing time.  While
// the motorcycle is alive, the first target is either the current position
// at the current time, or the next destination.
type Motorcycle struct {
	id    MotorcycleID
	speed float64

	dir    r3.Vector
	hasDir bool

	inputDest    EntryID
	hasInputDest bool

	position EntryID
	time     float64
	targets  []Target
	state    State

	// final is set when the last destination computed by the tracer is a
	// point where the motorcycle must stop.
	final bool

	path []Target
}

// NewMotorcycle creates a motorcycle at the given position and time.  The
// position must be an entry of the dictionary the motorcycle will be traced
// with.
func NewMotorcycle(id MotorcycleID, position EntryID, t, speed float64) *Motorcycle {
	if !(speed > 0) {
		panic(fmt.Sprintf("motorcycle: speed %g is not positive", speed))
	}
	return &Motorcycle{
		id:        id,
		speed:     speed,
		inputDest: NoEntry,
		position:  position,
		time:      t,
		targets:   []Target{{Entry: position, Time: t}},
		path:      []Target{{Entry: position, Time: t}},
	}
}

func (mc *Motorcycle) String() string {
	return fmt.Sprintf("motorcycle %d (%s, t=%g)", mc.id, mc.state, mc.time)
}

// ID returns the identifier of the motorcycle.
func (mc *Motorcycle) ID() MotorcycleID { return mc.id }

// Speed returns the constant speed of the motorcycle.
func (mc *Motorcycle) Speed() float64 { return mc.speed }

// Direction returns the direction of travel.  The second return value is
// false if the direction has not been determined yet.
func (mc *Motorcycle) Direction() (r3.Vector, bool) { return mc.dir, mc.hasDir }

// SetDirection fixes the direction of travel.
func (mc *Motorcycle) SetDirection(dir r3.Vector) {
	mc.dir = dir
	mc.hasDir = true
}

// InputDestination returns the destination given by the user, if any.
func (mc *Motorcycle) InputDestination() (EntryID, bool) { return mc.inputDest, mc.hasInputDest }

// SetInputDestination records the destination given by the user.
func (mc *Motorcycle) SetInputDestination(e EntryID) {
	mc.inputDest = e
	mc.hasInputDest = true
}

// CurrentPosition returns the dictionary entry of the current position.
func (mc *Motorcycle) CurrentPosition() EntryID { return mc.position }

// CurrentTime returns the time at the current position.
func (mc *Motorcycle) CurrentTime() float64 { return mc.time }

// State returns the current stage of the motorcycle.
func (mc *Motorcycle) State() State { return mc.state }

// Targets returns the pending targets in order of increasing time.
// The returned slice must not be modified.
func (mc *Motorcycle) Targets() []Target { return mc.targets }

// Path returns the points visited so far, starting with the initial
// position.
func (mc *Motorcycle) Path() []Target { return mc.path }

// IsFinal reports whether the last computed destination is a point where
// the motorcycle stops.
func (mc *Motorcycle) IsFinal() bool { return mc.final }

// addTarget inserts a target, keeping the targets sorted by time.  Targets
// with equal time are ordered by entry.  The motorcycle must not be in a
// [Queue] while its targets change.
func (mc *Motorcycle) addTarget(e EntryID, t float64) {
	tgt := Target{Entry: e, Time: t}
	i, found := slices.BinarySearchFunc(mc.targets, tgt, compareTargets)
	if found {
		return
	}
	mc.targets = slices.Insert(mc.targets, i, tgt)
}

// removeTarget deletes all targets at entry e.
func (mc *Motorcycle) removeTarget(e EntryID) {
	mc.targets = slices.DeleteFunc(mc.targets, func(t Target) bool {
		return t.Entry == e
	})
}

func compareTargets(a, b Target) int {
	switch {
	case a.Time < b.Time:
		return -1
	case a.Time > b.Time:
		return 1
	}
	return int(a.Entry - b.Entry)
}

// advance moves the motorcycle to its first target.  The target stays in the
// target list as the trivial lower bound until the next destination is
// known.
func (mc *Motorcycle) advance() Target {
	if len(mc.targets) == 0 {
		panic(fmt.Sprintf("motorcycle: %d has no targets", mc.id))
	}
	tgt := mc.targets[0]
	if tgt.Time < mc.time {
		panic(fmt.Sprintf("motorcycle: %d moving back in time (%g < %g)", mc.id, tgt.Time, mc.time))
	}
	mc.position = tgt.Entry
	mc.time = tgt.Time
	if last := mc.path[len(mc.path)-1]; last != tgt {
		mc.path = append(mc.path, tgt)
	}
	return tgt
}

// moveTo replaces the current position by an equivalent entry at the same
// time, for example the same point seen from a neighbouring face.
func (mc *Motorcycle) moveTo(e EntryID) {
	if e == mc.position {
		return
	}
	for i, t := range mc.targets {
		if t.Entry == mc.position && t.Time == mc.time {
			mc.targets[i].Entry = e
		}
	}
	slices.SortFunc(mc.targets, compareTargets)
	mc.position = e
}

// dropCurrent removes the target at the current position once a later
// target is known.
func (mc *Motorcycle) dropCurrent() {
	if len(mc.targets) < 2 {
		return
	}
	if t := mc.targets[0]; t.Entry == mc.position && t.Time == mc.time {
		mc.targets = slices.Delete(mc.targets, 0, 1)
	}
}

// stop makes the motorcycle terminal.  Only the current position remains as
// a target.
func (mc *Motorcycle) stop() {
	mc.state = Terminal
	mc.targets = append(mc.targets[:0], Target{Entry: mc.position, Time: mc.time})
}
