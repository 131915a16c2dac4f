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
	"container/heap"
	"fmt"
)

// QueueEntry orders a motorcycle by the time of its earliest pending target.
// The entry does not own the motorcycle; it must be recreated whenever the
// targets of the motorcycle change.
type QueueEntry struct {
	mc *Motorcycle
}

// NewQueueEntry wraps mc.  The motorcycle must have at least one target.
func NewQueueEntry(mc *Motorcycle) QueueEntry {
	if len(mc.targets) == 0 {
		panic(fmt.Sprintf("motorcycle: %d has no targets", mc.id))
	}
	return QueueEntry{mc: mc}
}

// Time returns the time of the earliest target.
func (q QueueEntry) Time() float64 { return q.mc.targets[0].Time }

// Entry returns the dictionary entry of the earliest target.
func (q QueueEntry) Entry() EntryID { return q.mc.targets[0].Entry }

// Motorcycle returns the wrapped motorcycle.
func (q QueueEntry) Motorcycle() *Motorcycle { return q.mc }

// Less orders entries by time.  Entries with equal time are ordered by
// motorcycle id, so that the order of events does not depend on insertion
// order.
func (q QueueEntry) Less(o QueueEntry) bool {
	if t, u := q.Time(), o.Time(); t != u {
		return t < u
	}
	return q.mc.id < o.mc.id
}

// Queue is a min-queue of motorcycles, ordered by [QueueEntry.Less].
// The zero value is an empty queue.
type Queue struct {
	h entryHeap
}

// Push adds a motorcycle to the queue.
func (q *Queue) Push(mc *Motorcycle) {
	heap.Push(&q.h, NewQueueEntry(mc))
}

// Pop removes and returns the entry with the earliest time.
func (q *Queue) Pop() QueueEntry {
	return heap.Pop(&q.h).(QueueEntry)
}

// Peek returns the entry with the earliest time without removing it.
func (q *Queue) Peek() (QueueEntry, bool) {
	if len(q.h) == 0 {
		return QueueEntry{}, false
	}
	return q.h[0], true
}

// Len returns the number of queued motorcycles.
func (q *Queue) Len() int { return len(q.h) }

// Reset empties the queue.
func (q *Queue) Reset() { q.h = q.h[:0] }

type entryHeap []QueueEntry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(QueueEntry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = QueueEntry{}
	*h = old[:n-1]
	return x
}
