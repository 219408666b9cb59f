package machine

import (
	"errors"
	"testing"

	"github.com/mastercactapus/gplot/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	p := NewProfile("test")
	assert.Equal(t, "test", p.Name())
	assert.Equal(t, "grbl", p.Variant())
	assert.Equal(t, float64(DefaultFeedrate), p.Feedrate())

	_, ok := p.Skim()
	assert.False(t, ok)
	_, ok = p.Keepdown()
	assert.False(t, ok)
}

func TestProfile_Setters(t *testing.T) {
	p := NewProfile("test")

	p.SetSkim(2)
	h, ok := p.Skim()
	assert.True(t, ok)
	assert.Equal(t, 2.0, h)
	p.ClearSkim()
	_, ok = p.Skim()
	assert.False(t, ok)

	require.NoError(t, p.SetKeepdown(0.5))
	d, ok := p.Keepdown()
	assert.True(t, ok)
	assert.Equal(t, 0.5, d)
	assert.Error(t, p.SetKeepdown(-1))

	assert.Error(t, p.SetFeedrate(0))
	require.NoError(t, p.SetFeedrate(1200))
	assert.Equal(t, 1200.0, p.Feedrate())

	assert.Error(t, p.SetLimits(-1, 10))
	require.NoError(t, p.SetLimits(300, 200))
	assert.Equal(t, coord.Point{X: 300, Y: 200}, p.Limits())

	assert.Error(t, p.SetTemplateText(MoveTo, "{{bogus}}"))
}

func TestProfile_Clone(t *testing.T) {
	p := NewProfile("orig")
	p.SetSkim(1)
	c := p.Clone()

	c.SetSkim(5)
	c.SetName("copy")
	c.SetTemplate(PenUp, Static("UP"))

	h, _ := p.Skim()
	assert.Equal(t, 1.0, h)
	assert.Equal(t, "orig", p.Name())

	lines, err := p.Render(PenUp, Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"G0 Z5"}, lines)
}

func TestProfile_Render(t *testing.T) {
	p := NewProfile("test")
	p.SetSkim(1.5)

	lines, err := p.Render(PenUpSkim, Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"G0 Z1.50"}, lines)

	p.SetTemplate(Prelude, Static("G21\n\n  G90  \n"))
	lines, err = p.Render(Prelude, Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"G21", "G90"}, lines)

	p.SetTemplate(PenDrop, nil)
	_, err = p.Render(PenDrop, Params{})
	assert.True(t, errors.Is(err, ErrNoTemplate))
}

func TestPen_FeedrateOr(t *testing.T) {
	var nilPen *Pen
	assert.Equal(t, 100.0, nilPen.FeedrateOr(100))

	f := 250.0
	p := &Pen{Feedrate: &f}
	assert.Equal(t, 250.0, p.FeedrateOr(100))
	assert.Equal(t, 100.0, (&Pen{}).FeedrateOr(100))
}
