package analyze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveTime_ConstantSpeed(t *testing.T) {
	// no speed change: plain distance over speed
	assert.Equal(t, 1.0, moveTime(10, 10, 10, 1500))
}

func TestMoveTime_Trapezoid(t *testing.T) {
	// 10 -> 40 mm/s over 1mm at 1500 mm/s²: ramp over 0.5mm, cruise
	// the rest
	got := moveTime(1, 10, 40, 1500)
	want := 0.5/25 + 0.5/40
	assert.InDelta(t, want, got, 1e-9)

	// deceleration uses the same magnitudes
	got = moveTime(1, 40, 10, 1500)
	want = 0.5/25 + 0.5/10
	assert.InDelta(t, want, got, 1e-9)
}

func TestMoveTime_ShortMove(t *testing.T) {
	// not enough room to reach the target speed: rest-to-rest over the
	// transition span
	got := moveTime(0.1, 10, 40, 1500)
	want := 2 * math.Sqrt(0.5/1500)
	assert.InDelta(t, want, got, 1e-9)
}

func TestMoveTime_ZeroSpeedBoundary(t *testing.T) {
	// a zero endpoint forces the square-root fallback, no division by
	// zero
	got := moveTime(10, 0, 30, 1500)
	ad := 900.0 / 3000
	assert.InDelta(t, 2*math.Sqrt(ad/1500), got, 1e-9)

	assert.Equal(t, 0.0, moveTime(0, 10, 10, 1500))
}

func TestDocument_Duration(t *testing.T) {
	// 600 mm/min = 10 mm/s carried from the default: 10mm in exactly 1s
	d := mustDoc(t, []string{"G1 X10 F600"}, WithDefaultFeedRate(600))
	assert.InDelta(t, 1.0, d.TotalDuration(), 1e-9)

	// feed carries forward to lines that omit it
	d = mustDoc(t, []string{
		"G1 X10 F600",
		"G1 X20",
	}, WithDefaultFeedRate(600))
	assert.InDelta(t, 2.0, d.TotalDuration(), 1e-9)

	require.Equal(t, d.Duration().Seconds(), d.TotalDuration())
}

func TestDocument_DurationDiagonal(t *testing.T) {
	// euclidean distance, not per-axis
	d := mustDoc(t, []string{"G1 X3 Y4 F600"}, WithDefaultFeedRate(600))
	assert.InDelta(t, 0.5, d.TotalDuration(), 1e-9)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", FormatDuration(0))
	assert.Equal(t, "45s", FormatDuration(45.2))
	assert.Equal(t, "2m 5s", FormatDuration(125))
	assert.Equal(t, "1h 4m 5s", FormatDuration(3845))
}
