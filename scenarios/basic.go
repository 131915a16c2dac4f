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
	"github.com/golang/geo/r3"

	"seehuhn.de/go/motorcycle"
)

var squarePoints, squareTriangles = square()

var basicScenarios = []Scenario{
	{
		Name:      "centroid",
		Points:    squarePoints,
		Triangles: squareTriangles,
		Starts: []motorcycle.Start{
			{Point: pt(2.0/3, 1.0/3), Direction: pt(1.0/3, 1.0/6)},
		},
		Width:  128,
		Height: 128,
	},
	{
		Name:      "destination",
		Points:    squarePoints,
		Triangles: squareTriangles,
		Starts: []motorcycle.Start{
			{Point: pt(0.25, 0.1), Destination: pt(0.75, 0.5), Speed: 2, Time: 1},
		},
		Width:  128,
		Height: 128,
	},
	{
		Name:      "junction",
		Points:    squarePoints,
		Triangles: squareTriangles,
		Starts: []motorcycle.Start{
			{Point: pt(0.75, 0.25), Direction: pt(-1, 1)},
			{Point: pt(0.5, 0.9), Direction: pt(0, -1)},
		},
		Width:  128,
		Height: 128,
	},
	{
		Name:      "null_direction",
		Points:    squarePoints,
		Triangles: squareTriangles,
		Starts: []motorcycle.Start{
			{Point: pt(0.5, 0.25), Direction: &r3.Vector{}},
		},
		Width:  128,
		Height: 128,
	},
	{
		Name:      "speeds",
		Points:    gridPoints(2),
		Triangles: gridTriangles(2),
		Starts: []motorcycle.Start{
			{Point: pt(0.1, 0.3), Direction: pt(1, 0)},
			{Point: pt(0.1, 1.3), Direction: pt(1, 0), Speed: 3},
			{Point: pt(0.1, 1.7), Direction: pt(1, 0), Speed: 0.5, Time: 0.5},
		},
		Width:  128,
		Height: 128,
	},
}

func gridPoints(n int) []r3.Vector {
	points, _ := grid(n)
	return points
}

func gridTriangles(n int) [][3]int {
	_, tris := grid(n)
	return tris
}
