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

import "seehuhn.de/go/motorcycle"

var hexPoints, hexTriangles = fan(6, 1)

var vertexScenarios = []Scenario{
	{
		// runs through the grid vertices on the diagonal
		Name:      "diagonal",
		Points:    gridPoints(3),
		Triangles: gridTriangles(3),
		Starts: []motorcycle.Start{
			{Point: pt(0.25, 0.25), Direction: pt(1, 1)},
		},
		Width:  128,
		Height: 128,
	},
	{
		Name:      "star",
		Points:    hexPoints,
		Triangles: hexTriangles,
		Starts: []motorcycle.Start{
			{Point: pt(0, 0), Direction: pt(1, 0.3)},
			{Point: pt(0, 0), Direction: pt(-0.2, 1)},
			{Point: pt(0, 0), Direction: pt(-1, -0.5)},
			{Point: pt(0, 0), Direction: pt(0.4, -1)},
		},
		Width:  128,
		Height: 128,
	},
	{
		// motorcycles leave from corners of the hexagon
		Name:      "from_corners",
		Points:    hexPoints,
		Triangles: hexTriangles,
		Starts: []motorcycle.Start{
			{Point: &hexPoints[1], Direction: pt(-1, 0.2)},
			{Point: &hexPoints[3], Direction: pt(1, -1), Speed: 0.5},
		},
		Width:  128,
		Height: 128,
	},
	{
		// two motorcycles meet at an interior grid vertex
		Name:      "meet_at_vertex",
		Points:    gridPoints(2),
		Triangles: gridTriangles(2),
		Starts: []motorcycle.Start{
			{Point: pt(0.5, 0.25), Direction: pt(0.5, 0.75)},
			{Point: pt(1.75, 1.5), Direction: pt(-0.75, -0.5), Speed: 0.5},
		},
		Width:  128,
		Height: 128,
	},
}
