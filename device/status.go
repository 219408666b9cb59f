package device

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mastercactapus/gplot/coord"
)

// Status is a grbl style real-time status report, e.g.
// "<Idle|MPos:0.000,0.000,5.000|FS:0,0>".
type Status struct {
	Status string

	// MPos is the machine position, Z the pen axis.
	MPos coord.Point
	Z    float64

	// WCO is the work coordinate offset, when reported.
	WCO coord.Point
}

// WorkPos returns the pen position in work coordinates.
func (s Status) WorkPos() coord.Point {
	return s.MPos.Sub(s.WCO)
}

func parseCoords(data string) (p coord.Point, z float64, err error) {
	parts := strings.Split(data, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return p, 0, errors.New("invalid number of elements")
	}
	p.X, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return p, 0, err
	}
	p.Y, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return p, 0, err
	}
	if len(parts) == 3 {
		z, err = strconv.ParseFloat(parts[2], 64)
	}
	return p, z, err
}

// ParseStatus parses a status report line.
func ParseStatus(line string) (*Status, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "<") || !strings.HasSuffix(line, ">") {
		return nil, errors.New("not a status report: " + line)
	}
	parts := strings.Split(line[1:len(line)-1], "|")

	var stat Status
	stat.Status = parts[0]
	var err error
	for _, s := range parts[1:] {
		key, val, _ := strings.Cut(s, ":")
		switch key {
		case "MPos":
			stat.MPos, stat.Z, err = parseCoords(val)
		case "WCO":
			stat.WCO, _, err = parseCoords(val)
		}
		if err != nil {
			return nil, err
		}
	}
	return &stat, nil
}
