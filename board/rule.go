package board

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRule = errors.New("invalid rule")

// Rule is a life-like birth/survival rule indexed by live neighbour count
type Rule struct {
	Birth    [9]bool
	Survival [9]bool
}

// Conway is B3/S23
var Conway = Rule{
	Birth:    [9]bool{3: true},
	Survival: [9]bool{2: true, 3: true},
}

// ParseRule parses B/S notation such as "B3/S23" or "B36/S23". Sections may
// appear in either order and are case-insensitive
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return r, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}

	var seenB, seenS bool
	for _, part := range parts {
		if part == "" {
			return r, fmt.Errorf("%w: %q", ErrInvalidRule, s)
		}
		var target *[9]bool
		switch part[0] {
		case 'B':
			if seenB {
				return r, fmt.Errorf("%w: duplicate birth section in %q", ErrInvalidRule, s)
			}
			seenB = true
			target = &r.Birth
		case 'S':
			if seenS {
				return r, fmt.Errorf("%w: duplicate survival section in %q", ErrInvalidRule, s)
			}
			seenS = true
			target = &r.Survival
		default:
			return r, fmt.Errorf("%w: %q", ErrInvalidRule, s)
		}
		for _, ch := range part[1:] {
			if ch < '0' || ch > '8' {
				return r, fmt.Errorf("%w: neighbour count %q in %q", ErrInvalidRule, ch, s)
			}
			target[ch-'0'] = true
		}
	}
	return r, nil
}

// String formats the rule in B/S notation
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for n, on := range r.Birth {
		if on {
			b.WriteByte(byte('0' + n))
		}
	}
	b.WriteString("/S")
	for n, on := range r.Survival {
		if on {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}

// Next returns the next state of a cell given its live neighbour count
func (r Rule) Next(alive bool, neighbours int) bool {
	if alive {
		return r.Survival[neighbours]
	}
	return r.Birth[neighbours]
}
