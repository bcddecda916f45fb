package gcode

// Line is one parsed line of the command stream. It is built once by
// ParseLine and not modified afterward, except for the Tool annotation
// (filled in by the analyzer) and the output override fields.
type Line struct {
	// Raw is the original text, line ending included.
	Raw string

	Cmd    Command
	HasCmd bool

	S    int
	HasS bool
	P    int
	HasP bool

	X    float64
	HasX bool
	Y    float64
	HasY bool
	Z    float64
	HasZ bool

	// F is the feed rate in the line's native units per minute. Unit
	// conversion happens during analysis, never here.
	F    float64
	HasF bool

	// E is the extrusion distance. An A word parses to the same field.
	E    float64
	HasE bool

	// StringData is non-parameter text trailing the command, e.g. the
	// filename of a file-select command.
	StringData string

	Comment    string
	HasComment bool

	// Tool is set directly for T commands; for every other line the
	// analyzer annotates it with the tool active when the line runs.
	Tool int

	// Output overrides, applied by String and Numbered. Zero values
	// leave the line untouched.
	OffsetX, OffsetY, OffsetZ float64

	// Multipliers apply only when positive. ExtrusionMultiplier scales
	// E; SpeedMultiplier scales F on extrusion moves and
	// TravelMultiplier scales F on moves without extrusion.
	ExtrusionMultiplier float64
	SpeedMultiplier     float64
	TravelMultiplier    float64
}

// IsCommand reports whether the line carries a command identifier.
// Lines that do not are comment-only and excluded from analysis.
func (ln *Line) IsCommand() bool { return ln.HasCmd }

// Extrudes reports whether the line deposits material: an extrusion
// field present and positive.
func (ln *Line) Extrudes() bool { return ln.HasE && ln.E > 0 }
