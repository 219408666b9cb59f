package post

import (
	"math"

	"github.com/mastercactapus/gplot/coord"
)

// Optimizer reorders polylines to reduce pen-up travel, starting with the
// pen at from. Implementations may reverse polylines and join polylines
// whose ends are within threshold.
type Optimizer interface {
	Optimize(lines []Polyline, from coord.Point, strategy string, threshold float64) []Polyline
}

// OptimizerFunc adapts a function to the Optimizer interface.
type OptimizerFunc func(lines []Polyline, from coord.Point, strategy string, threshold float64) []Polyline

func (fn OptimizerFunc) Optimize(lines []Polyline, from coord.Point, strategy string, threshold float64) []Polyline {
	return fn(lines, from, strategy, threshold)
}

// Identity keeps polylines in their original order.
var Identity = OptimizerFunc(func(lines []Polyline, _ coord.Point, _ string, _ float64) []Polyline { return lines })

// Greedy is a nearest neighbour optimizer.
//
// Strategies other than "greedy" leave the order untouched.
type Greedy struct{}

func (Greedy) Optimize(lines []Polyline, from coord.Point, strategy string, threshold float64) []Polyline {
	if strategy != "greedy" {
		return lines
	}

	todo := make([]Polyline, 0, len(lines))
	for _, l := range lines {
		if len(l) > 0 {
			todo = append(todo, l)
		}
	}

	var res []Polyline
	pos := from
	for len(todo) > 0 {
		best, bestDist, reverse := 0, math.Inf(1), false
		for i, l := range todo {
			if d := pos.Distance(l[0]); d < bestDist {
				best, bestDist, reverse = i, d, false
			}
			if d := pos.Distance(l[len(l)-1]); d < bestDist {
				best, bestDist, reverse = i, d, true
			}
		}

		next := todo[best]
		todo = append(todo[:best], todo[best+1:]...)
		if reverse {
			next = reversed(next)
		}

		if len(res) > 0 && bestDist <= threshold {
			last := res[len(res)-1]
			if last[len(last)-1].Equal(next[0]) {
				next = next[1:]
			}
			res[len(res)-1] = append(last, next...)
		} else {
			res = append(res, append(Polyline(nil), next...))
		}
		l := res[len(res)-1]
		pos = l[len(l)-1]
	}

	return res
}

func reversed(l Polyline) Polyline {
	r := make(Polyline, len(l))
	for i, p := range l {
		r[len(l)-1-i] = p
	}
	return r
}
