package machine

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_String(t *testing.T) {
	assert.Equal(t, "penup_skim", PenUpSkim.String())
	assert.Equal(t, "toolchange", ToolChange.String())
	assert.Equal(t, "template(99)", Template(99).String())

	for _, tmpl := range Templates() {
		parsed, err := ParseTemplate(tmpl.String())
		require.NoError(t, err)
		assert.Equal(t, tmpl, parsed)
	}

	_, err := ParseTemplate("penwiggle")
	assert.Error(t, err)
}

func TestText_Rounding(t *testing.T) {
	f := MustText("G0 X{{xmm}} Y{{ymm}}")

	s, err := f(Params{X: 12.345, Y: 67.891})
	require.NoError(t, err)
	assert.Equal(t, "G0 X12.35 Y67.89", s)

	rx := regexp.MustCompile(`^G0 X-?\d+\.\d{2} Y-?\d+\.\d{2}$`)
	for _, p := range []Params{
		{X: 1, Y: 2},
		{X: 0.1 + 0.2, Y: 1.0 / 3},
		{X: -123.456789, Y: 1e-9},
		{X: 99999.999, Y: -0.004},
	} {
		s, err := f(p)
		require.NoError(t, err)
		assert.Regexp(t, rx, s)
	}

	s, err = f(Params{X: -0.001, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, "G0 X0.00 Y0.00", s)
}

func TestText_Tags(t *testing.T) {
	f := MustText("T{{tool}} F{{ feedrate }} Z{{skim}} {{x}},{{y}}")
	s, err := f(Params{Tool: 3, Feedrate: 1500, Skim: 2.5, X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, "T3 F1500.00 Z2.50 1.00,2.00", s)
}

func TestText_Errors(t *testing.T) {
	_, err := Text("G0 X{{zmm}}")
	assert.Error(t, err)

	_, err = Text("G0 X{{xmm")
	assert.Error(t, err)

	f := MustText("G0 X{{xmm}}")
	_, err = f(Params{X: math.NaN()})
	assert.Error(t, err)

	assert.Panics(t, func() { MustText("{{nope}}") })
}

func TestDefaultTemplates(t *testing.T) {
	d := DefaultTemplates()
	for _, tmpl := range Templates() {
		assert.NotNil(t, d[tmpl], tmpl.String())
	}
}
