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

// Package scenarios contains named meshes with motorcycles on them, used
// for tests, drawings and the interactive viewer.
package scenarios

//go:generate go run ./export
//go:generate go run ./genpdf

import (
	"fmt"

	"github.com/golang/geo/r3"

	"seehuhn.de/go/motorcycle"
)

// Scenario defines a mesh together with the motorcycles running on it.
type Scenario struct {
	Name      string // lowercase a-z, 0-9 and _ only
	Points    []r3.Vector
	Triangles [][3]int
	Starts    []motorcycle.Start
	TimeLimit float64 // zero means no limit
	Width     int     // picture width in pixels
	Height    int     // picture height in pixels
}

// Mesh builds the triangle mesh of the scenario.
func (s Scenario) Mesh() (*motorcycle.TriMesh, error) {
	return motorcycle.NewTriMesh(s.Points, s.Triangles)
}

// Graph builds the mesh and places all motorcycles on it.  No events are
// processed yet.
func (s Scenario) Graph(opts ...motorcycle.Option) (*motorcycle.Graph, error) {
	m, err := s.Mesh()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	if s.TimeLimit > 0 {
		opts = append([]motorcycle.Option{motorcycle.WithTimeLimit(s.TimeLimit)}, opts...)
	}
	g := motorcycle.NewGraph(m, opts...)
	for i, start := range s.Starts {
		if _, err := g.AddMotorcycle(start); err != nil {
			return nil, fmt.Errorf("%s: motorcycle %d: %w", s.Name, i, err)
		}
	}
	return g, nil
}

// Run builds the graph and traces all motorcycles until they stop.
func (s Scenario) Run(opts ...motorcycle.Option) (*motorcycle.Graph, error) {
	g, err := s.Graph(opts...)
	if err != nil {
		return nil, err
	}
	if err := g.Trace(); err != nil {
		return g, fmt.Errorf("%s: %w", s.Name, err)
	}
	return g, nil
}

// Find returns the scenario with the given full name, "category_name".
func Find(fullName string) (Scenario, bool) {
	for category, list := range All {
		for _, s := range list {
			if category+"_"+s.Name == fullName {
				return s, true
			}
		}
	}
	return Scenario{}, false
}

// pt returns a pointer to a point in the plane z = 0.
func pt(x, y float64) *r3.Vector {
	return &r3.Vector{X: x, Y: y}
}
