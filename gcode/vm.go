package gcode

import (
	"errors"

	"github.com/mastercactapus/gplot/coord"
)

// VM will track state and interpret the subset of gcode a pen plotter uses.
type VM struct {
	pos coord.Point
	z   float64

	modal [256]float64
}

// NewVM constructs a new VM with default state.
func NewVM() *VM {
	vm := &VM{}

	// using grbl defaults
	vm.modal[ModalGroupMotion] = 0
	vm.modal[ModalGroupPlaneSelection] = 17
	vm.modal[ModalGroupDistanceMode] = 90
	vm.modal[ModalGroupFeedRateMode] = 94
	vm.modal[ModalGroupUnits] = 21
	vm.modal[ModalGroupStopping] = 0
	vm.modal[ModalGroupSpindle] = 5

	return vm
}

func (vm VM) Inches() bool         { return vm.modal[ModalGroupUnits] == 20 }
func (vm VM) RelativeMotion() bool { return vm.modal[ModalGroupDistanceMode] == 91 }

// Rapid reports whether the active motion mode is G0.
func (vm VM) Rapid() bool { return vm.modal[ModalGroupMotion] == 0 }

// Feed returns the last programmed feedrate.
func (vm VM) Feed() float64 { return vm.modal[ModalGroupFeedRate] }

func (vm VM) Pos() coord.Point { return vm.pos }
func (vm VM) Z() float64       { return vm.z }

func isSupported(g Word) bool {
	if g.isAxis() {
		return true
	}

	switch g.Letter {
	case 'G':
		switch g.Value {
		case 0, 1, 4, 17, 20, 21, 90, 91, 94:
			return true
		}
	case 'M':
		switch g.Value {
		case 0, 1, 2, 3, 5, 6, 30:
			return true
		}
	case 'F', 'T', 'S', 'P':
		return true
	}

	return false
}

// Run applies a single block to the VM state.
func (vm *VM) Run(b Block) error {
	err := b.Validate()
	if err != nil {
		return err
	}
	var dwell bool
	for _, g := range b {
		if !isSupported(g) {
			return errors.New("unsupported code: " + g.String())
		}
		mg := g.ModalGroup()
		if mg != ModalGroupNone && mg != ModalGroupNonModal {
			vm.modal[mg] = g.Value
		}
		if g == (Word{Letter: 'G', Value: 4}) {
			dwell = true
		}
	}
	if dwell {
		return nil
	}

	mul := 1.0
	if vm.Inches() {
		mul = 25.4
	}
	rel := vm.RelativeMotion()
	for _, g := range b.params() {
		val := g.Value * mul
		switch g.Letter {
		case 'X':
			if rel {
				val += vm.pos.X
			}
			vm.pos.X = val
		case 'Y':
			if rel {
				val += vm.pos.Y
			}
			vm.pos.Y = val
		case 'Z':
			if rel {
				val += vm.z
			}
			vm.z = val
		}
	}

	return nil
}
