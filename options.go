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
	"log/slog"
	"math"
)

// Option configures a [Graph].
//
// Example:
//
//	g := motorcycle.NewGraph(mesh,
//		motorcycle.WithTimeLimit(10),
//		motorcycle.WithLogger(slog.Default()))
type Option func(*options)

type options struct {
	tolerance float64
	tracer    Tracer
	shooter   RayShooter
	timeLimit float64
	maxEvents int
	logger    *slog.Logger
}

// defaultMaxEvents bounds the number of events processed by Graph.Trace.
const defaultMaxEvents = 1 << 20

func defaultOptions() options {
	return options{
		tolerance: DefaultTolerance,
		timeLimit: math.Inf(1),
		maxEvents: defaultMaxEvents,
	}
}

// WithTolerance sets the tolerance used for comparing barycentric
// coordinates in the dictionary and for geometric tests.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithTracer replaces the default [UniformTracer].
func WithTracer(tr Tracer) Option {
	return func(o *options) {
		o.tracer = tr
	}
}

// WithRayShooter sets the structure used to locate start points given in
// Cartesian coordinates.  By default a [FaceTree] is built on first use.
func WithRayShooter(rs RayShooter) Option {
	return func(o *options) {
		o.shooter = rs
	}
}

// WithTimeLimit stops all motorcycles at time t.  Legs extending past t are
// cut short.  Without a time limit, motorcycles on closed surfaces may run
// until the event limit is reached.
func WithTimeLimit(t float64) Option {
	return func(o *options) {
		o.timeLimit = t
	}
}

// WithMaxEvents bounds the number of events processed by [Graph.Trace].
func WithMaxEvents(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxEvents = n
		}
	}
}

// WithLogger sets the logger for the graph and its default tracer.
// By default the package logger (see [SetLogger]) is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
