package gcode

import "strconv"

// Command identifies one instruction in the command stream: a letter
// (G, M or T) plus an integer code.
type Command struct {
	Letter byte
	Code   int
}

// Commands the analyzer dispatches on.
var (
	RapidMove           = Command{'G', 0}
	LinearMove          = Command{'G', 1}
	Dwell               = Command{'G', 4}
	InchUnits           = Command{'G', 20}
	MillimeterUnits     = Command{'G', 21}
	Home                = Command{'G', 28}
	AbsolutePositioning = Command{'G', 90}
	RelativePositioning = Command{'G', 91}
	SetPosition         = Command{'G', 92}
	AbsoluteExtrusion   = Command{'M', 82}
	RelativeExtrusion   = Command{'M', 83}
)

// Recognized but state-inert commands.
var (
	ListSD            = Command{'M', 20}
	InitSD            = Command{'M', 21}
	SelectSDFile      = Command{'M', 23}
	StartSDPrint      = Command{'M', 24}
	StopIdleHold      = Command{'M', 84}
	SetExtruderTemp   = Command{'M', 104}
	GetTemp           = Command{'M', 105}
	FanOn             = Command{'M', 106}
	FanOff            = Command{'M', 107}
	WaitExtruderTemp  = Command{'M', 109}
	SetLineNumber     = Command{'M', 110}
	DisplayMessage    = Command{'M', 117}
	SetBedTemp        = Command{'M', 140}
	WaitBedTemp       = Command{'M', 190}
)

func (c Command) IsValid() bool {
	switch c.Letter {
	case 'G', 'M', 'T':
		return c.Code >= 0
	}
	return false
}

// IsToolChange reports whether the command selects a tool.
func (c Command) IsToolChange() bool { return c.Letter == 'T' }

// IsMove reports whether the command is a rapid or controlled move.
func (c Command) IsMove() bool { return c == RapidMove || c == LinearMove }

func (c Command) String() string {
	return string(c.Letter) + strconv.Itoa(c.Code)
}
