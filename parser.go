package gcode

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parser reads parsed lines from a stream.
type Parser struct {
	br *bufio.Reader

	// Comment overrides the comment delimiter. Zero means ';'.
	Comment byte

	n int
}

func NewParser(r io.Reader) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br}
	}

	return &Parser{br: bufio.NewReader(r)}
}

func (p *Parser) delim() byte {
	if p.Comment == 0 {
		return DefaultCommentDelim
	}
	return p.Comment
}

// Read returns the next non-blank line, comment-only lines included.
// It returns io.EOF once the stream is exhausted.
func (p *Parser) Read() (*Line, error) {
	for {
		s, err := p.br.ReadString('\n')
		if err == io.EOF && s != "" {
			err = nil
		}
		if err != nil {
			return nil, err
		}
		p.n++

		if strings.TrimSpace(s) == "" {
			continue
		}

		ln, err := parseLine(s, p.delim())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", p.n, err)
		}
		return ln, nil
	}
}

// ReadAll drains the stream.
func (p *Parser) ReadAll() ([]*Line, error) {
	var lns []*Line
	for {
		ln, err := p.Read()
		if err == io.EOF {
			return lns, nil
		}
		if err != nil {
			return nil, err
		}
		lns = append(lns, ln)
	}
}
