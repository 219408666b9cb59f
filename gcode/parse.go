package gcode

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	rx        = regexp.MustCompile(`^([A-Z][0-9.\-]+)+$`)
	rxSplit   = regexp.MustCompile(`[A-Z][0-9.\-]+`)
	rxComment = regexp.MustCompile(`\([^)]*\)`)
)

// StripComment removes `;` and `( )` style comments and surrounding whitespace.
func StripComment(s string) string {
	s = strings.SplitN(s, ";", 2)[0]
	s = rxComment.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseLine parses a single program line.
//
// Comment-only and blank lines return a nil Block and no error.
func ParseLine(s string) (Block, error) {
	s = StripComment(s)
	s = strings.Replace(s, " ", "", -1)
	s = strings.ToUpper(s)

	if s == "" {
		return nil, nil
	}

	if !rx.MatchString(s) {
		return nil, errors.New("invalid or unhandled line: " + s)
	}

	codes := rxSplit.FindAllString(s, -1)
	res := make(Block, len(codes))

	for i, c := range codes {
		_, err := fmt.Sscanf(c, "%c%f", &res[i].Letter, &res[i].Value)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}
