package gcode

import (
	"fmt"
	"math"
	"time"
)

// Summary describes a program for display purposes.
type Summary struct {
	Lines    int
	Comments int

	// Unparsed counts lines the VM could not interpret. Programs are
	// template driven, so these are expected for non-gcode devices.
	Unparsed int

	// Rapid and Feed are the XY distances covered with the pen up and
	// down. Feed moves made above Z0 count as travel.
	Rapid float64
	Feed  float64

	// Draw estimates the time spent on pen down moves at their
	// programmed feed rate. Moves without a feed rate add nothing.
	Draw time.Duration
}

// Summarize runs p through a fresh VM.
func Summarize(p Program) Summary {
	s := Summary{Lines: p.Len()}
	vm := NewVM()
	for _, line := range p.lines {
		b, err := ParseLine(line)
		if err != nil {
			s.Unparsed++
			continue
		}
		if b == nil {
			s.Comments++
			continue
		}
		old := vm.Pos()
		err = vm.Run(b)
		if err != nil {
			s.Unparsed++
			continue
		}
		dist := old.Distance(vm.Pos())
		if vm.Rapid() || vm.Z() > 0 {
			s.Rapid += dist
			continue
		}
		s.Feed += dist
		f := vm.Feed()
		if vm.Inches() {
			f *= 25.4
		}
		if f > 0 {
			s.Draw += time.Duration(math.Round(dist * float64(time.Minute) / f))
		}
	}
	return s
}

func (s Summary) String() string {
	str := fmt.Sprintf("%d lines, %.1fmm drawn, %.1fmm travel", s.Lines, s.Feed, s.Rapid)
	if s.Unparsed > 0 {
		str += fmt.Sprintf(", %d uninterpreted", s.Unparsed)
	}
	return str
}
