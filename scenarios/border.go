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

var lPoints, lTriangles = lShape()

var borderScenarios = []Scenario{
	{
		Name:      "exit",
		Points:    squarePoints,
		Triangles: squareTriangles,
		Starts: []motorcycle.Start{
			{Point: pt(0.5, 0.25), Direction: pt(0, -1)},
		},
		Width:  128,
		Height: 128,
	},
	{
		Name:      "corner_outward",
		Points:    squarePoints,
		Triangles: squareTriangles,
		Starts: []motorcycle.Start{
			{Point: pt(0, 0), Direction: pt(-1, -1)},
		},
		Width:  128,
		Height: 128,
	},
	{
		Name:      "from_edge",
		Points:    squarePoints,
		Triangles: squareTriangles,
		Starts: []motorcycle.Start{
			{Point: pt(1, 0.5), Direction: pt(-1, 0.2)},
		},
		Width:  128,
		Height: 128,
	},
	{
		// both motorcycles stop at the edges of the missing square
		Name:      "l_shape",
		Points:    lPoints,
		Triangles: lTriangles,
		Starts: []motorcycle.Start{
			{Point: pt(0.5, 1.5), Direction: pt(1, 0)},
			{Point: pt(0.2, 0.4), Direction: pt(1, 1)},
		},
		Width:  128,
		Height: 128,
	},
}
