package machine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mastercactapus/gplot/coord"
)

// DefaultFeedrate is used when a profile does not set one.
const DefaultFeedrate = 3000

// ErrNoTemplate is returned when rendering a template the profile does not define.
var ErrNoTemplate = errors.New("template not defined")

// Profile describes a plotter: its limits, speeds and command templates.
//
// A Profile is only changed through its setters. Code that must not observe
// changes mid-operation should work on a Clone.
type Profile struct {
	name    string
	variant string

	templates map[Template]Formatter

	skim     *float64
	keepdown *float64

	limits   coord.Point
	feedrate float64
}

// NewProfile returns a grbl profile using the default templates.
func NewProfile(name string) *Profile {
	return &Profile{
		name:      name,
		variant:   "grbl",
		templates: DefaultTemplates(),
		feedrate:  DefaultFeedrate,
	}
}

func (p *Profile) Name() string    { return p.name }
func (p *Profile) Variant() string { return p.variant }

// Feedrate is the default drawing feedrate in mm/min.
func (p *Profile) Feedrate() float64 { return p.feedrate }

// Limits returns the X and Y travel limits. Zero means unbounded.
func (p *Profile) Limits() coord.Point { return p.limits }

// Skim returns the skim height, if configured.
func (p *Profile) Skim() (float64, bool) {
	if p.skim == nil {
		return 0, false
	}
	return *p.skim, true
}

// Keepdown returns the keepdown distance, if configured.
func (p *Profile) Keepdown() (float64, bool) {
	if p.keepdown == nil {
		return 0, false
	}
	return *p.keepdown, true
}

func (p *Profile) SetName(name string)       { p.name = name }
func (p *Profile) SetVariant(variant string) { p.variant = variant }

func (p *Profile) SetSkim(h float64) { p.skim = &h }
func (p *Profile) ClearSkim()        { p.skim = nil }

func (p *Profile) SetKeepdown(d float64) error {
	if d < 0 {
		return fmt.Errorf("keepdown must not be negative: %g", d)
	}
	p.keepdown = &d
	return nil
}
func (p *Profile) ClearKeepdown() { p.keepdown = nil }

func (p *Profile) SetFeedrate(f float64) error {
	if f <= 0 {
		return fmt.Errorf("feedrate must be positive: %g", f)
	}
	p.feedrate = f
	return nil
}

func (p *Profile) SetLimits(x, y float64) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("limits must not be negative: %g,%g", x, y)
	}
	p.limits = coord.Point{X: x, Y: y}
	return nil
}

// SetTemplate replaces a template formatter. A nil formatter removes it.
func (p *Profile) SetTemplate(t Template, f Formatter) {
	if f == nil {
		delete(p.templates, t)
		return
	}
	p.templates[t] = f
}

// SetTemplateText compiles text with Text and sets it.
func (p *Profile) SetTemplateText(t Template, text string) error {
	f, err := Text(text)
	if err != nil {
		return fmt.Errorf("template %s: %w", t, err)
	}
	p.SetTemplate(t, f)
	return nil
}

// Clone returns an independent copy of p.
func (p *Profile) Clone() *Profile {
	c := *p
	c.templates = make(map[Template]Formatter, len(p.templates))
	for t, f := range p.templates {
		c.templates[t] = f
	}
	if p.skim != nil {
		v := *p.skim
		c.skim = &v
	}
	if p.keepdown != nil {
		v := *p.keepdown
		c.keepdown = &v
	}
	return &c
}

// Render renders a template into program lines. Blank lines are dropped.
//
// The skim height is filled in from the profile.
func (p *Profile) Render(t Template, params Params) ([]string, error) {
	f, ok := p.templates[t]
	if !ok {
		return nil, ErrNoTemplate
	}
	if p.skim != nil {
		params.Skim = *p.skim
	}
	s, err := f(params)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines, nil
}
