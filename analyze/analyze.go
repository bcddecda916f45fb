package analyze

import (
	"math"

	"github.com/PrintToPeer/gcode"
	"github.com/PrintToPeer/gcode/coord"
)

const inchesToMM = 25.4

// state is the machine state replayed across the pass.
type state struct {
	pos coord.Point

	relative  bool // X/Y/Z fields are deltas
	relativeE bool // E field is a delta
	inches    bool

	tool  int
	speed float64 // effective speed of the previous controlled move, mm/s
}

// extruder tracks cumulative filament for one tool. The tracked
// current value after a move is the cumulative total; a set-position
// reset banks the pre-reset value and arms an overwrite so the next
// extrusion replaces the current value instead of adding to it.
type extruder struct {
	banked    float64
	current   float64
	overwrite bool
}

func (e *extruder) total() float64 { return e.banked + e.current }

// Analyze runs the single forward pass. It is a no-op once run.
func (d *Document) Analyze() {
	if d.analyzed {
		return
	}
	d.analyzed = true

	st := &state{speed: d.feed / 60}
	d.layers = []LayerRange{{Lower: 0}}

	for i, ln := range d.lines {
		d.run(st, ln, i)
	}

	d.layers[len(d.layers)-1].Upper = len(d.lines) - 1
}

func (d *Document) run(st *state, ln *gcode.Line, idx int) {
	if ln.Cmd.IsToolChange() {
		st.tool = ln.Cmd.Code
	}
	ln.Tool = st.tool

	switch ln.Cmd {
	case gcode.RapidMove:
		d.move(st, ln, idx, false)
	case gcode.LinearMove:
		d.move(st, ln, idx, true)
	case gcode.Dwell:
		if ln.HasP {
			d.duration += float64(ln.P) / 1000
		}
	case gcode.InchUnits:
		st.inches = true
	case gcode.MillimeterUnits:
		st.inches = false
	case gcode.Home:
		d.home(st, ln)
	case gcode.AbsolutePositioning:
		st.relative = false
	case gcode.RelativePositioning:
		st.relative = true
	case gcode.AbsoluteExtrusion:
		st.relativeE = false
	case gcode.RelativeExtrusion:
		st.relativeE = true
	case gcode.SetPosition:
		d.setPosition(st, ln)
	}
	// everything else leaves the tracked statistics alone
}

func (st *state) unitScale() float64 {
	if st.inches {
		return inchesToMM
	}
	return 1
}

func (d *Document) extruderFor(tool int) *extruder {
	ext, ok := d.extruders[tool]
	if !ok {
		ext = &extruder{}
		d.extruders[tool] = ext
		d.toolOrder = append(d.toolOrder, tool)
	}
	return ext
}

// move handles rapid and controlled moves. Controlled moves
// additionally take part in layer detection and duration estimation.
func (d *Document) move(st *state, ln *gcode.Line, idx int, controlled bool) {
	mul := st.unitScale()
	prev := st.pos
	next := prev

	apply := func(has bool, field float64, cur float64, travel *float64) float64 {
		if !has {
			return cur
		}
		v := field * mul
		if st.relative {
			*travel += math.Abs(v)
			return cur + v
		}
		*travel += math.Abs(v - cur)
		return v
	}
	next.X = apply(ln.HasX, ln.X, prev.X, &d.xTravel)
	next.Y = apply(ln.HasY, ln.Y, prev.Y, &d.yTravel)
	next.Z = apply(ln.HasZ, ln.Z, prev.Z, &d.zTravel)

	if ln.HasE {
		ext := d.extruderFor(st.tool)
		e := ln.E * mul
		switch {
		case ext.overwrite:
			ext.current = e
			ext.overwrite = false
		case st.relativeE:
			ext.current += e
		default:
			ext.current = e
		}
	}

	if ln.Extrudes() {
		if ln.HasX {
			d.growX(next.X)
		}
		if ln.HasY {
			d.growY(next.Y)
		}
	}
	if ln.HasZ {
		d.growZ(next.Z)
	}

	if controlled {
		if ln.HasZ && next.Z > prev.Z {
			d.nextLayer(idx, next.Z)
		}
		d.countDuration(st, ln, prev.Distance(next), mul)
	}

	st.pos = next
}

func (d *Document) growX(v float64) {
	if !d.hasX || v < d.xMin {
		d.xMin = v
	}
	if !d.hasX || v > d.xMax {
		d.xMax = v
	}
	d.hasX = true
}
func (d *Document) growY(v float64) {
	if !d.hasY || v < d.yMin {
		d.yMin = v
	}
	if !d.hasY || v > d.yMax {
		d.yMax = v
	}
	d.hasY = true
}
func (d *Document) growZ(v float64) {
	if !d.hasZ || v < d.zMin {
		d.zMin = v
	}
	if !d.hasZ || v > d.zMax {
		d.zMax = v
	}
	d.hasZ = true
}

// nextLayer closes the current layer at idx and opens the next one at
// the same index; consecutive ranges share their boundary.
func (d *Document) nextLayer(idx int, z float64) {
	d.layers[len(d.layers)-1].Upper = idx
	d.layers = append(d.layers, LayerRange{Lower: idx})

	if d.progress != nil {
		d.progress(Progress{
			Layer:        len(d.layers),
			CommandIndex: idx,
			Z:            z,
			Duration:     d.duration,
		})
	}
}

// home accumulates travel back to the origin for each named axis, or
// all three for a bare home command, then zeroes those axes.
func (d *Document) home(st *state, ln *gcode.Line) {
	all := !ln.HasX && !ln.HasY && !ln.HasZ
	if all || ln.HasX {
		d.xTravel += math.Abs(st.pos.X)
		st.pos.X = 0
	}
	if all || ln.HasY {
		d.yTravel += math.Abs(st.pos.Y)
		st.pos.Y = 0
	}
	if all || ln.HasZ {
		d.zTravel += math.Abs(st.pos.Z)
		st.pos.Z = 0
	}
}

// setPosition assigns current coordinates directly, with no travel or
// mode interpretation. A reset of E banks the running total for the
// current tool and arms the overwrite state on its accumulator.
func (d *Document) setPosition(st *state, ln *gcode.Line) {
	mul := st.unitScale()
	if ln.HasX {
		st.pos.X = ln.X * mul
	}
	if ln.HasY {
		st.pos.Y = ln.Y * mul
	}
	if ln.HasZ {
		st.pos.Z = ln.Z * mul
	}
	if ln.HasE {
		ext := d.extruderFor(st.tool)
		ext.banked += ext.current
		ext.current = ln.E * mul
		ext.overwrite = true
	}
}
