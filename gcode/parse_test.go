package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	b, err := ParseLine("G1 X1.50 Y-2 F3000.00")
	require.NoError(t, err)
	assert.Equal(t, Block{{Letter: 'G', Value: 1}, {Letter: 'X', Value: 1.5}, {Letter: 'Y', Value: -2}, {Letter: 'F', Value: 3000}}, b)
	assert.Equal(t, "G1 X1.5 Y-2 F3000", b.String())

	b, err = ParseLine("m0 ; change to tool 2")
	require.NoError(t, err)
	assert.Equal(t, Block{{Letter: 'M', Value: 0}}, b)

	b, err = ParseLine("(header) G21")
	require.NoError(t, err)
	assert.Equal(t, Block{{Letter: 'G', Value: 21}}, b)

	b, err = ParseLine("; only a comment")
	assert.NoError(t, err)
	assert.Nil(t, b)

	_, err = ParseLine("PU;")
	assert.Error(t, err)
}

func TestBlock_Validate(t *testing.T) {
	assert.NoError(t, Block{{Letter: 'G', Value: 90}, {Letter: 'G', Value: 0}, {Letter: 'X', Value: 1}}.Validate())
	assert.Error(t, Block{{Letter: 'X', Value: 1}, {Letter: 'X', Value: 2}}.Validate())
	assert.Error(t, Block{{Letter: 'G', Value: 0}, {Letter: 'G', Value: 1}}.Validate())
	assert.Error(t, Block{{Letter: '1', Value: 0}}.Validate())
}
