package post

import (
	"github.com/mastercactapus/gplot/coord"
	"github.com/mastercactapus/gplot/machine"
)

// Polyline is an open sequence of points.
type Polyline []coord.Point

// Item is one piece of artwork geometry drawn with a single pen.
type Item struct {
	Polylines []Polyline

	// Keepdown decides when the pen may stay down between polylines.
	// nil means MachineDefault.
	Keepdown Keepdown

	Pen *machine.Pen
}

// Tool returns the tool id of the item's pen.
func (it Item) Tool() int {
	if it.Pen == nil {
		return 0
	}
	return it.Pen.Tool
}

func (it Item) keepdown() Keepdown {
	if it.Keepdown == nil {
		return MachineDefault{}
	}
	return it.Keepdown
}
