package gcode

import (
	"errors"
	"strings"
)

// Block is one parsed program line.
type Block []Word

// params returns the words outside any modal group: axes, tool and dwell values.
func (b Block) params() []Word {
	res := make([]Word, 0, len(b))
	for _, w := range b {
		if w.ModalGroup() == ModalGroupNone {
			res = append(res, w)
		}
	}
	return res
}

// String formats b the way program lines are written, one space between words.
func (b Block) String() string {
	parts := make([]string, len(b))
	for i, w := range b {
		parts[i] = w.String()
	}
	return strings.Join(parts, " ")
}

// Validate rejects blocks a controller would refuse. G and M words may
// repeat as long as they are in different modal groups; other letters may not.
func (b Block) Validate() error {
	seen := make(map[byte]bool, len(b))
	groups := make(map[ModalGroup]bool, len(b))
	for _, w := range b {
		if w.Letter < 'A' || w.Letter > 'Z' {
			return errors.New("invalid word in block")
		}
		if w.Letter != 'G' && w.Letter != 'M' && seen[w.Letter] {
			return errors.New("repeated " + string(w.Letter) + " word in block")
		}
		seen[w.Letter] = true

		g := w.ModalGroup()
		if g == ModalGroupNone {
			continue
		}
		if groups[g] {
			return errors.New("multiple words from one modal group: " + b.String())
		}
		groups[g] = true
	}

	return nil
}
