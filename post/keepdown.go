package post

import (
	"errors"

	"github.com/mastercactapus/gplot/machine"
)

// Keepdown computes the largest gap between polylines that may be crossed
// without lifting the pen. The pen lifts when the gap is not below the threshold.
//
// fallback is the machine keepdown distance, or 0 if the machine has none.
type Keepdown interface {
	Threshold(pen *machine.Pen, fallback float64) float64
}

// LiftAlways lifts the pen between every polyline.
type LiftAlways struct{}

func (LiftAlways) Threshold(*machine.Pen, float64) float64 { return 0 }

// MachineDefault uses the machine keepdown distance.
type MachineDefault struct{}

func (MachineDefault) Threshold(_ *machine.Pen, fallback float64) float64 { return fallback }

// PenWidth keeps the pen down across gaps narrower than the stroke
// width times Factor. A zero Factor is treated as 1.
//
// Pens without a width use the machine keepdown distance.
type PenWidth struct {
	Factor float64
}

func (k PenWidth) Threshold(pen *machine.Pen, fallback float64) float64 {
	if pen == nil || pen.Width <= 0 {
		return fallback
	}
	f := k.Factor
	if f == 0 {
		f = 1
	}
	return pen.Width * f
}

// ParseKeepdown returns the strategy with the given name:
// "always", "machine" (or empty) and "penwidth".
func ParseKeepdown(name string, factor float64) (Keepdown, error) {
	switch name {
	case "always":
		return LiftAlways{}, nil
	case "", "machine":
		return MachineDefault{}, nil
	case "penwidth":
		return PenWidth{Factor: factor}, nil
	}
	return nil, errors.New("unknown keepdown strategy: " + name)
}
