package gcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_Move(t *testing.T) {
	ln, err := ParseLine("G1 X10.5 Y-3 Z0.25 F1200 E5.1 ; perimeter")
	require.NoError(t, err)

	assert.True(t, ln.IsCommand())
	assert.Equal(t, Command{'G', 1}, ln.Cmd)

	assert.True(t, ln.HasX)
	assert.Equal(t, 10.5, ln.X)
	assert.True(t, ln.HasY)
	assert.Equal(t, -3.0, ln.Y)
	assert.True(t, ln.HasZ)
	assert.Equal(t, 0.25, ln.Z)
	assert.True(t, ln.HasF)
	assert.Equal(t, 1200.0, ln.F)
	assert.True(t, ln.HasE)
	assert.Equal(t, 5.1, ln.E)

	assert.False(t, ln.HasS)
	assert.False(t, ln.HasP)

	assert.True(t, ln.HasComment)
	assert.Equal(t, "perimeter", ln.Comment)
}

func TestParseLine_Params(t *testing.T) {
	ln, err := ParseLine("M104 S210")
	require.NoError(t, err)
	assert.Equal(t, SetExtruderTemp, ln.Cmd)
	assert.True(t, ln.HasS)
	assert.Equal(t, 210, ln.S)

	ln, err = ParseLine("G4 P2000")
	require.NoError(t, err)
	assert.Equal(t, Dwell, ln.Cmd)
	assert.True(t, ln.HasP)
	assert.Equal(t, 2000, ln.P)
}

func TestParseLine_LowerCaseAndAlias(t *testing.T) {
	ln, err := ParseLine("g1 x-1.5 a2.5")
	require.NoError(t, err)
	assert.Equal(t, LinearMove, ln.Cmd)
	assert.Equal(t, -1.5, ln.X)

	// A is the extrusion field under another name
	assert.True(t, ln.HasE)
	assert.Equal(t, 2.5, ln.E)
}

func TestParseLine_ToolChange(t *testing.T) {
	ln, err := ParseLine("T1")
	require.NoError(t, err)
	assert.Equal(t, Command{'T', 1}, ln.Cmd)
	assert.True(t, ln.Cmd.IsToolChange())
	assert.Equal(t, 1, ln.Tool)
}

func TestParseLine_StringData(t *testing.T) {
	ln, err := ParseLine("M23 test_print.gco")
	require.NoError(t, err)
	assert.Equal(t, SelectSDFile, ln.Cmd)
	assert.Equal(t, "test_print.gco", ln.StringData)

	ln, err = ParseLine("M117 Hello World")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", ln.StringData)
}

func TestParseLine_CommentOnly(t *testing.T) {
	ln, err := ParseLine("; just a note")
	require.NoError(t, err)
	assert.False(t, ln.IsCommand())
	assert.True(t, ln.HasComment)
	assert.Equal(t, "just a note", ln.Comment)

	// parameters without a command still count as comment-only when a
	// comment is present
	ln, err = ParseLine("X10 ; leftover")
	require.NoError(t, err)
	assert.False(t, ln.IsCommand())

	// blank input is a valid non-command
	ln, err = ParseLine("   \r\n")
	require.NoError(t, err)
	assert.False(t, ln.IsCommand())
	assert.False(t, ln.HasComment)
}

func TestParseLine_Invalid(t *testing.T) {
	_, err := ParseLine("hello world")
	assert.ErrorIs(t, err, ErrNotCommand)

	_, err = ParseLine("X10 Y20")
	assert.ErrorIs(t, err, ErrNotCommand)

	_, err = ParseLine("thing")
	assert.ErrorIs(t, err, ErrNotCommand)
}

func TestParse(t *testing.T) {
	lns, err := Parse("G28\n\n; header\nG1 X10 E1 F1200\n")
	require.NoError(t, err)
	require.Len(t, lns, 3)

	assert.Equal(t, Home, lns[0].Cmd)
	assert.False(t, lns[1].IsCommand())
	assert.Equal(t, "header", lns[1].Comment)
	assert.Equal(t, LinearMove, lns[2].Cmd)
}

func TestParser_LineNumberInError(t *testing.T) {
	p := NewParser(strings.NewReader("G1 X1\nnot gcode\n"))

	_, err := p.Read()
	require.NoError(t, err)

	_, err = p.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParser_CommentDelim(t *testing.T) {
	p := NewParser(strings.NewReader("G1 X1 # note\n"))
	p.Comment = '#'

	ln, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, LinearMove, ln.Cmd)
	assert.Equal(t, "note", ln.Comment)
}

func TestMustParse(t *testing.T) {
	assert.Panics(t, func() { MustParse("junk line") })
	assert.Len(t, MustParse("G90\nG1 X1"), 2)
}
