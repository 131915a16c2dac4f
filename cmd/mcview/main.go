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

// Command mcview shows motorcycle scenarios in the terminal.
//
// Keys:
//
//	space  process the next event
//	enter  trace all motorcycles until they stop
//	r      reset the scenario
//	n, p   next or previous scenario
//	q      quit
//
// Two mouse clicks add a new motorcycle: the first click sets the start
// point, the second one the direction.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r3"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/motorcycle"
	"seehuhn.de/go/motorcycle/draw"
	"seehuhn.de/go/motorcycle/scenarios"
)

type viewer struct {
	screen        tcell.Screen
	width, height int

	names []string
	index int

	g       *motorcycle.Graph
	rd      *draw.Renderer
	buf     []byte
	picked  *r3.Vector
	message string
}

func newViewer(start string) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	v := &viewer{
		screen: screen,
		rd:     draw.NewRenderer(),
	}
	v.rd.Style.MeshWidth = 1
	v.rd.Style.MeshCoverage = 0.4
	v.rd.Style.TraceWidth = 1.5
	v.rd.Style.JunctionRadius = 1.5
	v.rd.Style.Margin = 1

	for _, category := range slices.Sorted(maps.Keys(scenarios.All)) {
		for _, s := range scenarios.All[category] {
			v.names = append(v.names, category+"_"+s.Name)
		}
	}
	if start != "" {
		v.index = slices.Index(v.names, start)
		if v.index < 0 {
			screen.Fini()
			return nil, fmt.Errorf("unknown scenario %q", start)
		}
	}

	v.width, v.height = screen.Size()
	v.reset()
	return v, nil
}

func (v *viewer) reset() {
	s, _ := scenarios.Find(v.names[v.index])
	g, err := s.Graph()
	if err != nil {
		v.message = err.Error()
		g = nil
	} else {
		v.message = ""
	}
	v.g = g
	v.picked = nil
}

// pictureSize returns the size of the picture in pixels.  Every terminal
// cell shows two pixels, one above the other.  The last line is used for
// status messages.
func (v *viewer) pictureSize() (int, int) {
	return max(v.width, 1), max(2*(v.height-1), 1)
}

func (v *viewer) draw() {
	v.screen.Clear()

	w, h := v.pictureSize()
	if v.g != nil {
		if cap(v.buf) < w*h {
			v.buf = make([]byte, w*h)
		}
		v.buf = v.buf[:w*h]
		clear(v.buf)
		v.rd.Render(v.g, v.buf, w, h, w)

		for y := 0; y+1 < h; y += 2 {
			for x := range w {
				top := int32(v.buf[y*w+x])
				bottom := int32(v.buf[(y+1)*w+x])
				style := tcell.StyleDefault.
					Foreground(tcell.NewRGBColor(top, top, top)).
					Background(tcell.NewRGBColor(bottom, bottom, bottom))
				v.screen.SetContent(x, y/2, '▀', nil, style)
			}
		}
	}

	v.drawStatus()
	v.screen.Show()
}

func (v *viewer) drawStatus() {
	status := v.names[v.index]
	if v.g != nil {
		status += fmt.Sprintf("  events %d  pending %d  junctions %d",
			v.g.Events(), v.g.Pending(), len(v.g.Junctions()))
	}
	if v.picked != nil {
		status += "  [click to set the direction]"
	}
	if v.message != "" {
		status += "  " + v.message
	}
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= v.width {
			break
		}
		v.screen.SetContent(x, v.height-1, r, nil, style)
		x++
	}
	for ; x < v.width; x++ {
		v.screen.SetContent(x, v.height-1, ' ', nil, style)
	}
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyEnter && v.g != nil {
			if err := v.g.Trace(); err != nil {
				v.message = err.Error()
			}
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			if v.g != nil && !v.g.Step() {
				v.message = "done"
			}
		case 'r':
			v.reset()
		case 'n':
			v.index = (v.index + 1) % len(v.names)
			v.reset()
		case 'p':
			v.index = (v.index + len(v.names) - 1) % len(v.names)
			v.reset()
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			v.click(x, y)
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

// click picks the mesh point under the terminal cell (x, y).
func (v *viewer) click(x, y int) {
	if v.g == nil || y >= v.height-1 {
		return
	}
	w, h := v.pictureSize()
	proj := v.rd.ViewProjection(v.g.Mesh(), w, h)
	q, ok := proj.Invert(vec.Vec2{X: float64(x) + 0.5, Y: 2*float64(y) + 1})
	if !ok {
		return
	}

	// shoot from in front of the mesh towards the viewer's plane
	n := proj.Normal()
	far := 1.0
	m := v.g.Mesh()
	for i := range motorcycle.VertexID(m.NumVertices()) {
		far = max(far, 2*math.Abs(m.Point(i).Dot(n))+1)
	}
	loc, ok := v.g.Pick(q.Add(n.Mul(far)), n.Mul(-1))
	if !ok {
		v.message = "no face there"
		return
	}
	p := motorcycle.PointOf(m, loc)

	if v.picked == nil {
		v.picked = &p
		v.message = ""
		return
	}
	start := *v.picked
	dir := p.Sub(start)
	v.picked = nil

	// new motorcycles start at the time of the last event
	var now float64
	for _, mc := range v.g.Motorcycles() {
		now = max(now, mc.CurrentTime())
	}
	_, err := v.g.AddMotorcycle(motorcycle.Start{Point: &start, Direction: &dir, Time: now})
	if err != nil {
		v.message = err.Error()
	} else {
		v.message = "motorcycle added"
	}
}

func (v *viewer) run() {
	for {
		v.draw()
		if !v.handleInput(v.screen.PollEvent()) {
			return
		}
	}
}

func main() {
	start := flag.String("scenario", "", "name of the first scenario")
	logFile := flag.String("log", "", "write debug messages to this file")
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		motorcycle.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	v, err := newViewer(*start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.screen.Fini()

	v.run()
}
