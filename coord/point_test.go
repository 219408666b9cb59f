package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Sub(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 4, Y: 5}

	assert.Equal(t, Point{X: -3, Y: -3}, a.Sub(b))
	assert.True(t, b.Sub(a).Equal(Point{X: 3, Y: 3}))
}

func TestPoint_Distance(t *testing.T) {
	dist := Point{X: 1, Y: 2}.Distance(Point{X: 4, Y: 5})
	assert.InEpsilon(t, 4.24264, dist, .01)

	assert.Equal(t, 5.0, Point{}.Distance(Point{X: 3, Y: 4}))
}

func TestPoint_IsFinite(t *testing.T) {
	assert.True(t, Point{X: 1, Y: -1}.IsFinite())
	assert.False(t, Point{X: math.NaN()}.IsFinite())
	assert.False(t, Point{Y: math.Inf(1)}.IsFinite())
}
