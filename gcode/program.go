package gcode

import (
	"bufio"
	"io"
	"strings"
)

// Program is an immutable, ordered list of device command lines.
//
// Lines never include the trailing newline.
type Program struct {
	lines []string
}

// NewProgram creates a Program from a copy of lines.
func NewProgram(lines []string) Program {
	l := make([]string, len(lines))
	copy(l, lines)
	return Program{lines: l}
}

// Len returns the number of lines.
func (p Program) Len() int { return len(p.lines) }

// Line returns the line at index i.
func (p Program) Line(i int) string { return p.lines[i] }

// Lines returns a copy of all lines.
func (p Program) Lines() []string {
	l := make([]string, len(p.lines))
	copy(l, p.lines)
	return l
}

// WriteTo writes the program, newline terminated, to w.
func (p Program) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)
	for _, l := range p.lines {
		c, err := bw.WriteString(l + "\n")
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

func (p Program) String() string {
	var sb strings.Builder
	p.WriteTo(&sb)
	return sb.String()
}

// ReadProgram reads a newline delimited program, dropping blank lines.
func ReadProgram(r io.Reader) (Program, error) {
	var lines []string
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		s := strings.TrimSpace(scan.Text())
		if s == "" {
			continue
		}
		lines = append(lines, s)
	}
	if err := scan.Err(); err != nil {
		return Program{}, err
	}

	return Program{lines: lines}, nil
}
