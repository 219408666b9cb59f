// Package post turns pen tagged polyline artwork into a plotter program.
package post

import (
	"errors"
	"math"

	"github.com/mastercactapus/gplot/coord"
	"github.com/mastercactapus/gplot/gcode"
	"github.com/mastercactapus/gplot/machine"
)

const (
	// PendropDistance is the pen-down travel after which the pen is pressed
	// again, to keep ink flowing on long strokes.
	PendropDistance = 1500.0

	// DefaultKeepdown is the optimizer join threshold when the machine
	// does not set a keepdown distance.
	DefaultKeepdown = 1.0
)

var (
	ErrInvalidMachine = errors.New("no machine profile")
	ErrMissingOrigin  = errors.New("no origin set")
)

// TemplateRenderError is returned when a machine template fails to render.
type TemplateRenderError struct {
	Name string
	Err  error
}

func (e *TemplateRenderError) Error() string {
	return "render template " + e.Name + ": " + e.Err.Error()
}
func (e *TemplateRenderError) Unwrap() error { return e.Err }

// Options tune a post run. The zero value uses Greedy and PendropDistance.
type Options struct {
	Optimizer       Optimizer
	PendropDistance float64
}

type penState int

const (
	penUnknown penState = iota
	penUp
	penDown
)

type poster struct {
	prof  *machine.Profile
	lines []string
	err   error
}

func (p *poster) emit(t machine.Template, params machine.Params) {
	if p.err != nil {
		return
	}
	l, err := p.prof.Render(t, params)
	if err != nil {
		p.err = &TemplateRenderError{Name: t.String(), Err: err}
		return
	}
	p.lines = append(p.lines, l...)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Post generates a program for items, in order, using a snapshot of profile.
//
// origin is in artwork coordinates; artwork Y grows downward and machine Y
// grows upward. No partial program is returned on error.
func Post(items []Item, profile *machine.Profile, origin *coord.Point, opt Options) (gcode.Program, error) {
	if origin == nil {
		return gcode.Program{}, ErrMissingOrigin
	}
	if profile == nil {
		return gcode.Program{}, ErrInvalidMachine
	}
	if opt.Optimizer == nil {
		opt.Optimizer = Greedy{}
	}
	if opt.PendropDistance <= 0 {
		opt.PendropDistance = PendropDistance
	}

	p := &poster{prof: profile.Clone()}
	tr := coord.NewTransform(*origin)

	_, skim := p.prof.Skim()
	penUpT, penDownT := machine.PenUp, machine.PenDown
	if skim {
		penUpT, penDownT = machine.PenUpSkim, machine.PenDownSkim
	}

	joinDist := DefaultKeepdown
	var fallback float64
	if kd, ok := p.prof.Keepdown(); ok {
		joinDist = kd
		fallback = kd
	}

	p.emit(machine.Prelude, machine.Params{})
	state := penUnknown
	if skim {
		p.emit(machine.PenUpSkim, machine.Params{})
		state = penUp
	}

	var (
		tool     int
		haveTool bool
		last     coord.Point
		haveLast bool
		drawn    float64
	)
	for _, it := range items {
		lines := make([]Polyline, 0, len(it.Polylines))
		for _, pl := range it.Polylines {
			if len(pl) == 0 {
				continue
			}
			lines = append(lines, tr.ApplyAll(pl))
		}
		// last is the machine origin until something is drawn
		lines = opt.Optimizer.Optimize(lines, last, "greedy", joinDist)
		if len(lines) == 0 {
			continue
		}

		if !haveTool || it.Tool() != tool {
			p.emit(machine.PenUp, machine.Params{})
			p.emit(machine.ToolChange, machine.Params{Tool: it.Tool()})
			tool, haveTool = it.Tool(), true
			state = penUp
		}

		keep := it.keepdown().Threshold(it.Pen, fallback)
		feed := round2(it.Pen.FeedrateOr(p.prof.Feedrate()))

		for _, pl := range lines {
			if len(pl) == 0 {
				continue
			}
			first := pl[0]
			dist := math.Inf(1)
			if haveLast {
				dist = last.Distance(first)
			}
			if !(dist < keep) || state == penUp {
				p.emit(penUpT, machine.Params{})
				drawn = 0
				state = penUp
			}

			p.emit(machine.MoveTo, machine.Params{X: first.X, Y: first.Y, Tool: tool})
			if state != penDown {
				p.emit(penDownT, machine.Params{Tool: tool})
				state = penDown
			}
			last, haveLast = first, true

			for _, pt := range pl[1:] {
				drawn += last.Distance(pt)
				p.emit(machine.LineTo, machine.Params{X: pt.X, Y: pt.Y, Feedrate: feed, Tool: tool})
				last = pt
				if drawn > opt.PendropDistance {
					p.emit(machine.PenDrop, machine.Params{X: pt.X, Y: pt.Y, Feedrate: feed, Tool: tool})
					drawn = 0
				}
			}
		}
	}

	p.emit(machine.Epilog, machine.Params{})
	if p.err != nil {
		return gcode.Program{}, p.err
	}

	return gcode.NewProgram(p.lines), nil
}
