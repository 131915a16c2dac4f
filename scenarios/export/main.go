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

// Command export traces all scenarios and writes the results to JSON.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/golang/geo/r3"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/motorcycle/draw"
	"seehuhn.de/go/motorcycle/scenarios"
)

const outFile = "testdata/scenarios.json"

func main() {
	var out struct {
		Scenarios []jsonScenario `json:"scenarios"`
	}

	for _, category := range slices.Sorted(maps.Keys(scenarios.All)) {
		for _, s := range scenarios.All[category] {
			js, err := toJSON(category, s)
			if err != nil {
				panic(err)
			}
			out.Scenarios = append(out.Scenarios, js)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
		panic(err)
	}
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonScenario struct {
	Name      string         `json:"name"`
	Points    [][3]float64   `json:"points"`
	Triangles [][3]int       `json:"triangles"`
	TimeLimit float64        `json:"time_limit,omitempty"`
	Events    int            `json:"events"`
	Traces    []jsonTrace    `json:"traces"`
	Junctions []jsonJunction `json:"junctions,omitempty"`
}

type jsonTrace struct {
	Motorcycle int           `json:"motorcycle"`
	Speed      float64       `json:"speed"`
	Points     [][3]float64  `json:"points"`
	Times      []float64     `json:"times"`
	Final      bool          `json:"final"`
	Picture    []jsonSegment `json:"picture"`
}

type jsonJunction struct {
	Point      [3]float64 `json:"point"`
	Motorcycle int        `json:"motorcycle"`
	Other      int        `json:"other"`
	Time       float64    `json:"time"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func toJSON(category string, s scenarios.Scenario) (jsonScenario, error) {
	g, err := s.Run()
	if err != nil {
		return jsonScenario{}, fmt.Errorf("%s: %w", category, err)
	}
	d := g.Dictionary()
	proj := draw.NewRenderer().ViewProjection(g.Mesh(), s.Width, s.Height)

	js := jsonScenario{
		Name:      category + "_" + s.Name,
		Triangles: s.Triangles,
		TimeLimit: s.TimeLimit,
		Events:    g.Events(),
	}
	for _, p := range s.Points {
		js.Points = append(js.Points, point(p))
	}
	for _, mc := range g.Motorcycles() {
		jt := jsonTrace{
			Motorcycle: int(mc.ID()),
			Speed:      mc.Speed(),
			Final:      mc.IsFinal(),
			Picture:    pathToJSON(draw.TracePath(d, mc, proj).Iter()),
		}
		for _, tgt := range mc.Path() {
			jt.Points = append(jt.Points, point(d.Entry(tgt.Entry).Point()))
			jt.Times = append(jt.Times, tgt.Time)
		}
		js.Traces = append(js.Traces, jt)
	}
	for _, j := range g.Junctions() {
		js.Junctions = append(js.Junctions, jsonJunction{
			Point:      point(d.Entry(j.Entry).Point()),
			Motorcycle: int(j.Motorcycle),
			Other:      int(j.Other),
			Time:       j.Time,
		})
	}
	return js, nil
}

func point(p r3.Vector) [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

// pathToJSON converts a trace in picture coordinates.
func pathToJSON(p path.Path) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p {
		seg := jsonSegment{Pts: make([][]float64, len(pts))}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		default:
			continue
		}
		for i, pt := range pts {
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		segs = append(segs, seg)
	}
	return segs
}
