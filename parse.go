package gcode

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// DefaultCommentDelim separates a command from its trailing comment.
const DefaultCommentDelim = ';'

// ErrNotCommand is returned for a line that matches neither the
// command grammar nor the comment-only shape.
var ErrNotCommand = errors.New("line carries no command or comment")

var lineRx = regexp.MustCompile(`(?i)^` +
	`(?:([GMT])(\d{1,3}))?\s*` +
	`(?:S(\d+))?\s*` +
	`(?:P(\d+))?\s*` +
	`(?:X([-+]?\d*\.?\d+))?\s*` +
	`(?:Y([-+]?\d*\.?\d+))?\s*` +
	`(?:Z([-+]?\d*\.?\d+))?\s*` +
	`(?:F(\d*\.?\d+))?\s*` +
	`(?:[EA]([-+]?\d*\.?\d+))?\s*` +
	`(.*?)\s*$`)

// ParseLine parses one raw text line using the default comment
// delimiter. The result is either a command line or, for
// blank/comment-only input, a line with IsCommand() == false.
func ParseLine(raw string) (*Line, error) {
	return parseLine(raw, DefaultCommentDelim)
}

func parseLine(raw string, delim byte) (*Line, error) {
	ln := &Line{Raw: raw}

	s := strings.TrimRight(raw, "\r\n")
	code := s
	if i := strings.IndexByte(s, delim); i >= 0 {
		ln.Comment = strings.TrimSpace(s[i+1:])
		ln.HasComment = true
		code = s[:i]
	}
	code = strings.TrimSpace(code)
	if code == "" {
		// blank or comment-only
		return ln, nil
	}

	m := lineRx.FindStringSubmatch(code)

	if m[1] != "" {
		ln.HasCmd = true
		ln.Cmd.Letter = m[1][0] &^ 0x20
		ln.Cmd.Code, _ = strconv.Atoi(m[2])
		if ln.Cmd.Letter == 'T' {
			ln.Tool = ln.Cmd.Code
		}
	} else if !ln.HasComment {
		return nil, fmt.Errorf("%w: %q", ErrNotCommand, code)
	}

	setInt := func(dst *int, has *bool, s string) {
		if s == "" {
			return
		}
		*dst, _ = strconv.Atoi(s)
		*has = true
	}
	setFloat := func(dst *float64, has *bool, s string) {
		if s == "" {
			return
		}
		*dst, _ = strconv.ParseFloat(s, 64)
		*has = true
	}
	setInt(&ln.S, &ln.HasS, m[3])
	setInt(&ln.P, &ln.HasP, m[4])
	setFloat(&ln.X, &ln.HasX, m[5])
	setFloat(&ln.Y, &ln.HasY, m[6])
	setFloat(&ln.Z, &ln.HasZ, m[7])
	setFloat(&ln.F, &ln.HasF, m[8])
	setFloat(&ln.E, &ln.HasE, m[9])

	if m[10] != "" {
		if !ln.HasCmd {
			return nil, fmt.Errorf("%w: %q", ErrNotCommand, code)
		}
		ln.StringData = m[10]
	}

	return ln, nil
}

// Parse parses a full document of newline-separated lines. Blank lines
// are dropped; comment-only lines are kept.
func Parse(data string) ([]*Line, error) {
	p := NewParser(strings.NewReader(data))
	return p.ReadAll()
}

func MustParse(data string) []*Line {
	lns, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return lns
}

// ParseFile reads and parses the named file.
func ParseFile(path string) ([]*Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewParser(f).ReadAll()
}
