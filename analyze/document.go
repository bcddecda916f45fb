package analyze

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/PrintToPeer/gcode"
)

const (
	// DefaultAcceleration matches common firmware defaults, in mm/s².
	DefaultAcceleration = 1500

	// DefaultFeedRate is assumed until the stream sets one, in mm/min.
	DefaultFeedRate = 2400
)

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrNoCommands      = errors.New("no command lines in input")
	ErrBadAcceleration = errors.New("acceleration must be positive")
	ErrBadFeedRate     = errors.New("default feed rate must be positive")
)

// LayerRange is the command-index span of one layer. Spans are closed
// on both ends and consecutive layers share their boundary index.
type LayerRange struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// ToolUsage is the cumulative extruded length for one tool.
type ToolUsage struct {
	Tool   int     `json:"tool"`
	Length float64 `json:"length"`
}

// Progress is a snapshot pushed to the progress callback each time a
// layer boundary is crossed during analysis.
type Progress struct {
	Layer        int     `json:"layer"`
	CommandIndex int     `json:"commandIndex"`
	Z            float64 `json:"z"`
	Duration     float64 `json:"duration"`
}

// Document replays a parsed command stream once and accumulates its
// statistics. All accessors are read-only after the pass.
type Document struct {
	lines    []*gcode.Line
	comments []string

	accel      float64
	feed       float64
	auto       bool
	injectFeed bool
	progress   func(Progress)

	analyzed bool

	xMin, xMax float64
	yMin, yMax float64
	zMin, zMax float64

	hasX, hasY, hasZ bool

	xTravel, yTravel, zTravel float64

	layers   []LayerRange
	duration float64

	extruders map[int]*extruder
	toolOrder []int
}

type Option func(*Document)

// WithAcceleration sets the acceleration constant in mm/s².
func WithAcceleration(a float64) Option {
	return func(d *Document) { d.accel = a }
}

// WithDefaultFeedRate sets the feed rate assumed before the stream
// specifies one, in units/min.
func WithDefaultFeedRate(f float64) Option {
	return func(d *Document) { d.feed = f }
}

// WithDeferredAnalysis skips the analysis pass at construction; the
// caller runs it later with Analyze.
func WithDeferredAnalysis() Option {
	return func(d *Document) { d.auto = false }
}

// WithFeedRateInjection writes the carried-forward feed rate into
// controlled-move lines that omit one, so re-serialized output carries
// explicit speeds.
func WithFeedRateInjection() Option {
	return func(d *Document) { d.injectFeed = true }
}

// WithProgress registers a callback invoked at each layer boundary.
func WithProgress(fn func(Progress)) Option {
	return func(d *Document) { d.progress = fn }
}

// New builds a Document from raw text lines and, unless deferred, runs
// the analysis pass.
func New(raw []string, opts ...Option) (*Document, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyInput
	}

	var lns []*gcode.Line
	for i, s := range raw {
		if isBlank(s) {
			continue
		}
		ln, err := gcode.ParseLine(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lns = append(lns, ln)
	}

	return build(lns, opts)
}

// NewFromReader builds a Document from a stream of raw text.
func NewFromReader(r io.Reader, opts ...Option) (*Document, error) {
	lns, err := gcode.NewParser(r).ReadAll()
	if err != nil {
		return nil, err
	}
	return build(lns, opts)
}

// NewFromFile builds a Document from the named file.
func NewFromFile(path string, opts ...Option) (*Document, error) {
	lns, err := gcode.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return build(lns, opts)
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

func build(lns []*gcode.Line, opts []Option) (*Document, error) {
	d := &Document{
		accel:     DefaultAcceleration,
		feed:      DefaultFeedRate,
		auto:      true,
		extruders: make(map[int]*extruder),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.accel <= 0 {
		return nil, ErrBadAcceleration
	}
	if d.feed <= 0 {
		return nil, ErrBadFeedRate
	}

	for _, ln := range lns {
		if ln.IsCommand() {
			d.lines = append(d.lines, ln)
		} else if ln.HasComment {
			d.comments = append(d.comments, ln.Comment)
		}
	}
	if len(d.lines) == 0 {
		return nil, ErrNoCommands
	}

	if d.auto {
		d.Analyze()
	}
	return d, nil
}

// Lines returns the command lines in stream order. Comment-only lines
// are excluded.
func (d *Document) Lines() []*gcode.Line { return d.lines }

// Comments returns the text of comment-only lines in stream order.
func (d *Document) Comments() []string { return d.comments }

func (d *Document) XMin() float64 { return d.xMin }
func (d *Document) XMax() float64 { return d.xMax }
func (d *Document) YMin() float64 { return d.yMin }
func (d *Document) YMax() float64 { return d.yMax }
func (d *Document) ZMin() float64 { return d.zMin }
func (d *Document) ZMax() float64 { return d.zMax }

func (d *Document) Width() float64  { return d.xMax - d.xMin }
func (d *Document) Depth() float64  { return d.yMax - d.yMin }
func (d *Document) Height() float64 { return d.zMax - d.zMin }

func (d *Document) XTravel() float64 { return d.xTravel }
func (d *Document) YTravel() float64 { return d.yTravel }
func (d *Document) ZTravel() float64 { return d.zTravel }

// LayerRanges returns one entry per detected layer, in order. The
// first layer is at index 0.
func (d *Document) LayerRanges() []LayerRange { return d.layers }

func (d *Document) LayerCount() int { return len(d.layers) }

// FilamentUsed returns per-tool extruded lengths in first-use order.
func (d *Document) FilamentUsed() []ToolUsage {
	res := make([]ToolUsage, 0, len(d.toolOrder))
	for _, t := range d.toolOrder {
		res = append(res, ToolUsage{Tool: t, Length: d.extruders[t].total()})
	}
	return res
}

// FilamentFor returns the extruded length for one tool.
func (d *Document) FilamentFor(tool int) (float64, bool) {
	ext, ok := d.extruders[tool]
	if !ok {
		return 0, false
	}
	return ext.total(), true
}

// TotalDuration is the estimated execution time in seconds.
func (d *Document) TotalDuration() float64 { return d.duration }

func (d *Document) Duration() time.Duration {
	return time.Duration(d.duration * float64(time.Second))
}

// Stats is the full analysis result in one serializable value.
type Stats struct {
	Lines    int `json:"lines"`
	Comments int `json:"comments"`

	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`
	YMin float64 `json:"yMin"`
	YMax float64 `json:"yMax"`
	ZMin float64 `json:"zMin"`
	ZMax float64 `json:"zMax"`

	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`

	XTravel float64 `json:"xTravel"`
	YTravel float64 `json:"yTravel"`
	ZTravel float64 `json:"zTravel"`

	Filament []ToolUsage  `json:"filament"`
	Layers   []LayerRange `json:"layers"`

	Duration float64 `json:"duration"`
}

func (d *Document) Stats() Stats {
	return Stats{
		Lines:    len(d.lines),
		Comments: len(d.comments),
		XMin:     d.xMin, XMax: d.xMax,
		YMin: d.yMin, YMax: d.yMax,
		ZMin: d.zMin, ZMax: d.zMax,
		Width:  d.Width(),
		Depth:  d.Depth(),
		Height: d.Height(),
		XTravel: d.xTravel, YTravel: d.yTravel, ZTravel: d.zTravel,
		Filament: d.FilamentUsed(),
		Layers:   d.layers,
		Duration: d.duration,
	}
}
