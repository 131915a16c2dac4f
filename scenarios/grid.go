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

package scenarios

import (
	"math"

	"github.com/golang/geo/r3"

	"seehuhn.de/go/motorcycle"
)

var gridScenarios = []Scenario{
	{
		// The paths cross at (2.5, 2.5) on a diagonal edge.  The horizontal
		// motorcycle gets there later and stops.
		Name:      "cross",
		Points:    gridPoints(5),
		Triangles: gridTriangles(5),
		Starts: []motorcycle.Start{
			{Point: pt(0.25, 2.5), Direction: pt(1, 0)},
			{Point: pt(2.5, 0.75), Direction: pt(0, 1)},
		},
		Width:  256,
		Height: 256,
	},
	{
		Name:      "tilted",
		Points:    tilt(gridPoints(4), 0.5, 0.25),
		Triangles: gridTriangles(4),
		Starts: []motorcycle.Start{
			{
				Point:     &r3.Vector{X: 0.3, Y: 0.2, Z: 0.2},
				Direction: &r3.Vector{X: 1, Y: 0.5, Z: 0.625},
			},
			{
				Point:       &r3.Vector{X: 3.6, Y: 0.4, Z: 1.9},
				Destination: &r3.Vector{X: 3.9, Y: 0.7, Z: 2.125},
			},
		},
		Width:  256,
		Height: 256,
	},
	{
		Name:      "ring",
		Points:    gridPoints(8),
		Triangles: gridTriangles(8),
		Starts:    ring(12, r3.Vector{X: 4, Y: 4}, 3.3),
		Width:     256,
		Height:    256,
	},
	{
		Name:      "time_limit",
		Points:    gridPoints(8),
		Triangles: gridTriangles(8),
		Starts:    ring(12, r3.Vector{X: 4, Y: 4}, 3.3),
		TimeLimit: 2,
		Width:     256,
		Height:    256,
	},
}

// ring places n motorcycles on a circle, heading roughly towards the
// centre.  The directions are turned a little, so that the paths do not all
// meet in one point.
func ring(n int, centre r3.Vector, r float64) []motorcycle.Start {
	starts := make([]motorcycle.Start, n)
	for i := range starts {
		phi := 2*math.Pi*float64(i)/float64(n) + 0.1
		p := centre.Add(r3.Vector{X: r * math.Cos(phi), Y: r * math.Sin(phi)})
		psi := phi + math.Pi + 0.35
		starts[i] = motorcycle.Start{
			Point:     &p,
			Direction: &r3.Vector{X: math.Cos(psi), Y: math.Sin(psi)},
			Speed:     1 + 0.1*float64(i%3),
		}
	}
	return starts
}
