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

// Command genpdf draws all scenarios.
//
// For every scenario it writes a PDF file, made with the PDF library, and a
// PNG file, made with the draw package.  With -gs, the PDF files are also
// rendered with Ghostscript into testdata/reference, for comparison with the
// draw package.  Run from the scenarios directory.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/motorcycle"
	"seehuhn.de/go/motorcycle/draw"
	"seehuhn.de/go/motorcycle/scenarios"
)

const (
	outDir = "testdata/pictures"
	refDir = "testdata/reference"
)

func main() {
	useGS := flag.Bool("gs", false, "render reference images with Ghostscript")
	flag.Parse()

	for _, dir := range []string{outDir, refDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
	}

	for _, category := range slices.Sorted(maps.Keys(scenarios.All)) {
		for _, s := range scenarios.All[category] {
			name := category + "_" + s.Name
			pdfPath := filepath.Join(outDir, name+".pdf")
			pngPath := filepath.Join(outDir, name+".png")

			g, err := s.Run()
			if err != nil {
				panic(err)
			}

			if err := generatePDF(g, s.Width, s.Height, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := generatePNG(g, s.Width, s.Height, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if *useGS {
				refPath := filepath.Join(refDir, name+".png")
				if err := renderPNG(pdfPath, refPath); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func generatePDF(g *motorcycle.Graph, width, height int, pdfPath string) error {
	style := draw.DefaultStyle
	proj := draw.NewRenderer().ViewProjection(g.Mesh(), width, height)

	// Page size in points (1 point = 1 pixel at 72 DPI)
	paper := &pdf.Rectangle{
		URx: float64(width),
		URy: float64(height),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// black background, so that gray levels are coverage values
	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, float64(width), float64(height))
	page.Fill()

	// PDF origin is bottom-left; pictures use top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(height)})

	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	if style.MeshWidth > 0 {
		page.SetStrokeColor(color.DeviceGray(style.MeshCoverage))
		page.SetLineWidth(style.MeshWidth)
		addPath(page, draw.MeshPath(g.Mesh(), proj))
		page.Stroke()
	}

	page.SetStrokeColor(color.DeviceGray(1))
	page.SetLineWidth(style.TraceWidth)
	d := g.Dictionary()
	for _, mc := range g.Motorcycles() {
		addPath(page, draw.TracePath(d, mc, proj))
	}
	page.Stroke()

	if js := g.Junctions(); len(js) > 0 && style.JunctionRadius > 0 {
		page.SetFillColor(color.DeviceGray(1))
		for _, j := range js {
			addPath(page, circle(proj.Apply(d.Entry(j.Entry).Point()), style.JunctionRadius))
		}
		page.Fill()
	}

	return page.Close()
}

func addPath(page *document.Page, p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

// circle approximates a circle by four cubic Bézier curves.
func circle(c vec.Vec2, r float64) *path.Data {
	const k = 0.5522847498
	p := (&path.Data{}).MoveTo(vec.Vec2{X: c.X + r, Y: c.Y})
	corners := []vec.Vec2{{X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0}}
	prev := vec.Vec2{X: 1, Y: 0}
	for _, q := range corners {
		p = p.CubeTo(
			vec.Vec2{X: c.X + r*(prev.X+k*q.X), Y: c.Y + r*(prev.Y+k*q.Y)},
			vec.Vec2{X: c.X + r*(q.X+k*prev.X), Y: c.Y + r*(q.Y+k*prev.Y)},
			vec.Vec2{X: c.X + r*q.X, Y: c.Y + r*q.Y},
		)
		prev = q
	}
	return p.Close()
}

func generatePNG(g *motorcycle.Graph, width, height int, pngPath string) error {
	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Render(g, img.Pix, width, height, img.Stride)

	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
