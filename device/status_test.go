package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gplot/coord"
)

func TestParseStatus(t *testing.T) {
	stat, err := ParseStatus("<Run|MPos:12.500,-3.000,0.000|FS:3000,0|WCO:1.000,2.000,0.000>")
	require.NoError(t, err)
	assert.Equal(t, "Run", stat.Status)
	assert.Equal(t, coord.Point{X: 12.5, Y: -3}, stat.MPos)
	assert.Equal(t, 0.0, stat.Z)
	assert.Equal(t, coord.Point{X: 1, Y: 2}, stat.WCO)
	assert.Equal(t, coord.Point{X: 11.5, Y: -5}, stat.WorkPos())

	stat, err = ParseStatus("<Idle|MPos:1,2,5>")
	require.NoError(t, err)
	assert.Equal(t, 5.0, stat.Z)
	assert.Equal(t, stat.MPos, stat.WorkPos())

	stat, err = ParseStatus("<Hold:0>")
	require.NoError(t, err)
	assert.Equal(t, "Hold:0", stat.Status)

	_, err = ParseStatus("ok")
	assert.Error(t, err)
	_, err = ParseStatus("<Idle|MPos:1>")
	assert.Error(t, err)
	_, err = ParseStatus("<Idle|MPos:a,b,c>")
	assert.Error(t, err)
}
