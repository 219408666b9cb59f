package gcode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_Immutable(t *testing.T) {
	src := []string{"G21", "G0 X1 Y1"}
	p := NewProgram(src)
	src[0] = "M2"
	assert.Equal(t, "G21", p.Line(0))

	l := p.Lines()
	l[1] = "M2"
	assert.Equal(t, "G0 X1 Y1", p.Line(1))
	assert.Equal(t, 2, p.Len())
}

func TestProgram_WriteTo(t *testing.T) {
	p := NewProgram([]string{"G21", "G0 X1 Y1"})
	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("G21\nG0 X1 Y1\n")), n)
	assert.Equal(t, "G21\nG0 X1 Y1\n", buf.String())
	assert.Equal(t, buf.String(), p.String())
}

func TestReadProgram(t *testing.T) {
	p, err := ReadProgram(strings.NewReader("  G21\r\n\n; comment\nG0 X1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"G21", "; comment", "G0 X1"}, p.Lines())

	p, err = ReadProgram(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
}
