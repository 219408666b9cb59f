package machine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Template names one of the fixed command templates a machine provides.
type Template int

const (
	Prelude Template = iota
	Epilog
	PenUp
	PenUpSkim
	PenDown
	PenDownSkim
	PenDrop
	MoveTo
	LineTo
	ToolChange

	numTemplates
)

var templateNames = [numTemplates]string{
	Prelude:     "prelude",
	Epilog:      "epilog",
	PenUp:       "penup",
	PenUpSkim:   "penup_skim",
	PenDown:     "pendown",
	PenDownSkim: "pendown_skim",
	PenDrop:     "pendrop",
	MoveTo:      "moveto",
	LineTo:      "lineto",
	ToolChange:  "toolchange",
}

func (t Template) String() string {
	if t < 0 || t >= numTemplates {
		return "template(" + strconv.Itoa(int(t)) + ")"
	}
	return templateNames[t]
}

// ParseTemplate returns the Template with the given name.
func ParseTemplate(name string) (Template, error) {
	for i, n := range templateNames {
		if n == name {
			return Template(i), nil
		}
	}
	return 0, errors.New("unknown template: " + name)
}

// Templates returns every known template in declaration order.
func Templates() []Template {
	res := make([]Template, numTemplates)
	for i := range res {
		res[i] = Template(i)
	}
	return res
}

// Params are the values available to a Formatter.
type Params struct {
	// X and Y are machine coordinates in millimeters.
	X, Y float64

	Feedrate float64
	Tool     int
	Skim     float64
}

// A Formatter renders a template into one or more newline separated lines.
type Formatter func(Params) (string, error)

// Static returns a Formatter that always renders s.
func Static(s string) Formatter {
	return func(Params) (string, error) { return s, nil }
}

// formatNumber renders v with exactly two decimals.
func formatNumber(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("non-finite value %v", v)
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		s = "0.00"
	}
	return s, nil
}

func tagValue(tag string, p Params) (string, error) {
	switch tag {
	case "x", "xmm":
		return formatNumber(p.X)
	case "y", "ymm":
		return formatNumber(p.Y)
	case "feedrate":
		return formatNumber(p.Feedrate)
	case "skim":
		return formatNumber(p.Skim)
	case "tool":
		return strconv.Itoa(p.Tool), nil
	}
	return "", errors.New("unknown tag {{" + tag + "}}")
}

// Text compiles a text template using `{{tag}}` placeholders.
//
// Available tags are x, y, xmm, ymm, feedrate, skim (rendered with two decimals)
// and tool.
func Text(text string) (Formatter, error) {
	t, err := fasttemplate.NewTemplate(text, "{{", "}}")
	if err != nil {
		return nil, err
	}

	render := func(p Params) (string, error) {
		return t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
			s, err := tagValue(strings.TrimSpace(tag), p)
			if err != nil {
				return 0, err
			}
			return io.WriteString(w, s)
		})
	}

	// unknown tags are caught here rather than mid-post
	_, err = render(Params{})
	if err != nil {
		return nil, err
	}

	return render, nil
}

// MustText is like Text but panics on error.
func MustText(text string) Formatter {
	f, err := Text(text)
	if err != nil {
		panic(err)
	}
	return f
}

var defaultText = map[Template]string{
	Prelude:     "G21\nG90\nG17",
	Epilog:      "G0 Z5\nG0 X0 Y0\nM2",
	PenUp:       "G0 Z5",
	PenUpSkim:   "G0 Z{{skim}}",
	PenDown:     "G1 Z0 F1000",
	PenDownSkim: "G1 Z0 F1000",
	PenDrop:     "G1 Z-0.2 F500\nG1 Z0 F500",
	MoveTo:      "G0 X{{xmm}} Y{{ymm}}",
	LineTo:      "G1 X{{xmm}} Y{{ymm}} F{{feedrate}}",
	ToolChange:  "M0 (tool {{tool}})",
}

// DefaultTemplates returns the grbl style templates used when a profile
// does not provide its own.
func DefaultTemplates() map[Template]Formatter {
	res := make(map[Template]Formatter, len(defaultText))
	for t, text := range defaultText {
		res[t] = MustText(text)
	}
	return res
}
