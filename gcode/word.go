package gcode

import (
	"strconv"
	"strings"
)

// Word is one letter/value pair of a block, e.g. G1 or X12.5.
type Word struct {
	Letter byte
	Value  float64
}

// ModalGroup identifies words that can not share a block.
type ModalGroup byte

const (
	ModalGroupNone ModalGroup = iota
	ModalGroupNonModal
	ModalGroupMotion
	ModalGroupPlaneSelection
	ModalGroupDistanceMode
	ModalGroupFeedRateMode
	ModalGroupUnits
	ModalGroupStopping
	ModalGroupToolChange
	ModalGroupSpindle
	ModalGroupFeedRate
)

var (
	gGroups = map[float64]ModalGroup{
		0: ModalGroupMotion, 1: ModalGroupMotion, 2: ModalGroupMotion, 3: ModalGroupMotion,
		4: ModalGroupNonModal, 10: ModalGroupNonModal, 28: ModalGroupNonModal,
		30: ModalGroupNonModal, 53: ModalGroupNonModal, 92: ModalGroupNonModal,
		17: ModalGroupPlaneSelection, 18: ModalGroupPlaneSelection, 19: ModalGroupPlaneSelection,
		20: ModalGroupUnits, 21: ModalGroupUnits,
		90: ModalGroupDistanceMode, 91: ModalGroupDistanceMode,
		93: ModalGroupFeedRateMode, 94: ModalGroupFeedRateMode, 95: ModalGroupFeedRateMode,
	}
	mGroups = map[float64]ModalGroup{
		0: ModalGroupStopping, 1: ModalGroupStopping, 2: ModalGroupStopping, 30: ModalGroupStopping,
		3: ModalGroupSpindle, 4: ModalGroupSpindle, 5: ModalGroupSpindle,
		6: ModalGroupToolChange,
	}
)

// ModalGroup returns the group of w. Axis and parameter words are in
// ModalGroupNone.
func (w Word) ModalGroup() ModalGroup {
	switch w.Letter {
	case 'G':
		return gGroups[w.Value]
	case 'M':
		return mGroups[w.Value]
	case 'F':
		return ModalGroupFeedRate
	}
	return ModalGroupNone
}

// isAxis reports whether w moves X, Y or the pen axis.
func (w Word) isAxis() bool { return strings.IndexByte("XYZ", w.Letter) >= 0 }

func (w Word) String() string {
	v := strconv.FormatFloat(w.Value, 'f', 3, 64)
	v = strings.TrimRight(strings.TrimRight(v, "0"), ".")
	return string(w.Letter) + v
}
