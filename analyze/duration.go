package analyze

import (
	"fmt"
	"math"

	"github.com/PrintToPeer/gcode"
)

// countDuration adds the trapezoidal-profile estimate for one
// controlled move. A line without a feed rate inherits the previous
// effective speed, and optionally has it written back for output
// regeneration.
func (d *Document) countDuration(st *state, ln *gcode.Line, dist, mul float64) {
	speed := st.speed
	if ln.HasF {
		speed = ln.F * mul / 60
	} else if d.injectFeed {
		ln.F = st.speed * 60 / mul
		ln.HasF = true
	}

	d.duration += moveTime(dist, st.speed, speed, d.accel)
	st.speed = speed
}

// moveTime estimates the time to cover dist while transitioning from
// speed v0 to v1 under constant acceleration.
//
// The transition needs |v1²−v0²|/2a of travel. When the move is long
// enough and neither endpoint is at rest, the move ramps over that
// span at the average speed and runs the remainder at v1. Otherwise
// the move is modelled as a rest-to-rest ramp over the transition
// span alone.
func moveTime(dist, v0, v1, accel float64) float64 {
	ad := math.Abs(v1*v1-v0*v0) / (2 * accel)
	if ad <= dist && v0 > 0 && v1 > 0 {
		return ad/((v0+v1)/2) + (dist-ad)/v1
	}
	return 2 * math.Sqrt(ad/accel)
}

// FormatDuration renders estimated seconds as "1h 4m 5s".
func FormatDuration(seconds float64) string {
	s := int(math.Round(seconds))
	h := s / 3600
	m := s % 3600 / 60
	s %= 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
