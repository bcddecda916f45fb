// Package sender streams a parsed job to a printer over a serial
// connection, one numbered and checksummed line at a time.
package sender

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/PrintToPeer/gcode"
)

// Sender writes lines and blocks on each firmware acknowledgement.
// Firmware may ask for a line to be resent by number; Send rewinds and
// replays from there.
type Sender struct {
	rw   io.ReadWriter
	scan *bufio.Scanner

	// Progress, when set, is called after each acknowledged line.
	Progress func(sent, total int)
}

func New(rw io.ReadWriter) *Sender {
	return &Sender{rw: rw, scan: bufio.NewScanner(rw)}
}

// Send transmits every line and returns once the last one has been
// acknowledged.
func (s *Sender) Send(lines []*gcode.Line) error {
	// reset the firmware line counter so numbering starts at 1
	reset := &gcode.Line{HasCmd: true, Cmd: gcode.SetLineNumber}
	err := s.writeLine(reset.Numbered(0))
	if err != nil {
		return err
	}
	_, err = s.readAck()
	if err != nil {
		return err
	}

	for i := 0; i < len(lines); {
		n := i + 1
		err = s.writeLine(lines[i].Numbered(n))
		if err != nil {
			return err
		}

		resend, err := s.readAck()
		if err != nil {
			return err
		}
		if resend > 0 {
			i = resend - 1
			continue
		}

		i++
		if s.Progress != nil {
			s.Progress(i, len(lines))
		}
	}

	return nil
}

func (s *Sender) writeLine(line string) error {
	_, err := io.WriteString(s.rw, line+"\n")
	return err
}

// readAck consumes responses until an ok, a resend request, or an
// error report. Unsolicited chatter (temperature reports and the like)
// is skipped.
func (s *Sender) readAck() (resend int, err error) {
	for s.scan.Scan() {
		t := strings.TrimSpace(s.scan.Text())
		switch {
		case t == "":
		case strings.HasPrefix(t, "ok"):
			return 0, nil
		case strings.HasPrefix(t, "rs"):
			return parseResend(t[2:])
		case strings.HasPrefix(t, "Resend:"):
			return parseResend(t[len("Resend:"):])
		case strings.HasPrefix(t, "Error") || strings.HasPrefix(t, "!!"):
			return 0, errors.New(t)
		}
	}
	if err = s.scan.Err(); err != nil {
		return 0, err
	}
	return 0, io.ErrUnexpectedEOF
}

func parseResend(arg string) (int, error) {
	arg = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(arg), "N"))
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New("invalid resend request: " + arg)
	}
	if n < 1 {
		// counter reset replays everything
		n = 1
	}
	return n, nil
}
