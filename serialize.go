package gcode

import (
	"strconv"
	"strings"
)

// ChecksumDelim separates a numbered line from its checksum.
const ChecksumDelim = '*'

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	return strings.TrimRight(s, ".")
}

// String reconstructs the line's text from the parsed fields, applying
// any offsets and multipliers set on the line.
func (ln *Line) String() string {
	var b strings.Builder
	add := func(tok string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}

	if ln.HasCmd {
		add(ln.Cmd.String())
	}
	if ln.HasS {
		add("S" + strconv.Itoa(ln.S))
	}
	if ln.HasP {
		add("P" + strconv.Itoa(ln.P))
	}
	if ln.HasX {
		add("X" + formatFloat(ln.X+ln.OffsetX))
	}
	if ln.HasY {
		add("Y" + formatFloat(ln.Y+ln.OffsetY))
	}
	if ln.HasZ {
		add("Z" + formatFloat(ln.Z+ln.OffsetZ))
	}
	if ln.HasF {
		f := ln.F
		if ln.Extrudes() {
			if ln.SpeedMultiplier > 0 {
				f *= ln.SpeedMultiplier
			}
		} else if ln.TravelMultiplier > 0 {
			f *= ln.TravelMultiplier
		}
		add("F" + formatFloat(f))
	}
	if ln.HasE {
		e := ln.E
		if ln.ExtrusionMultiplier > 0 {
			e *= ln.ExtrusionMultiplier
		}
		add("E" + formatFloat(e))
	}
	if ln.StringData != "" {
		add(ln.StringData)
	}
	if ln.HasComment {
		add(string(DefaultCommentDelim) + ln.Comment)
	}

	return b.String()
}

// Numbered renders the line prefixed with line number n and suffixed
// with the XOR checksum of every byte of the prefixed text, as expected
// by firmware that verifies streamed jobs.
func (ln *Line) Numbered(n int) string {
	body := "N" + strconv.Itoa(n) + " " + ln.String()
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return body + string(ChecksumDelim) + strconv.Itoa(int(sum))
}
