package machine

// Pen is a drawing tool. Geometry refers to pens by pointer, so many
// items can share one Pen.
type Pen struct {
	Name    string  `json:"name" yaml:"name"`
	Tool    int     `json:"tool" yaml:"tool"`
	Width   float64 `json:"width" yaml:"width"`
	Density float64 `json:"density" yaml:"density"`
	Color   string  `json:"color" yaml:"color"`

	// Feedrate overrides the machine default when set.
	Feedrate *float64 `json:"feedrate,omitempty" yaml:"feedrate,omitempty"`
}

// FeedrateOr returns the pen feedrate, or def if the pen has none.
func (p *Pen) FeedrateOr(def float64) float64 {
	if p == nil || p.Feedrate == nil {
		return def
	}
	return *p.Feedrate
}
