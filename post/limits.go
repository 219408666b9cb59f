package post

import (
	"fmt"

	"github.com/mastercactapus/gplot/coord"
	"github.com/mastercactapus/gplot/machine"
)

// OutOfBoundsError reports a point outside the machine travel limits.
type OutOfBoundsError struct {
	Point  coord.Point
	Limits coord.Point
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("point (%.2f,%.2f) outside travel limits (%.2f,%.2f)",
		e.Point.X, e.Point.Y, e.Limits.X, e.Limits.Y)
}

// CheckLimits verifies every point of items lands inside the profile
// travel limits once transformed to machine space. A zero limit is unbounded.
func CheckLimits(items []Item, profile *machine.Profile, origin *coord.Point) error {
	if origin == nil {
		return ErrMissingOrigin
	}
	if profile == nil {
		return ErrInvalidMachine
	}
	lim := profile.Limits()
	tr := coord.NewTransform(*origin)
	for _, it := range items {
		for _, pl := range it.Polylines {
			for _, pt := range pl {
				m := tr.Apply(pt)
				if (lim.X > 0 && (m.X < 0 || m.X > lim.X)) ||
					(lim.Y > 0 && (m.Y < 0 || m.Y > lim.Y)) {
					return &OutOfBoundsError{Point: m, Limits: lim}
				}
			}
		}
	}
	return nil
}
