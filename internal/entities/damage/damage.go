package damage

import (
	"regexp"
	"strconv"

	"github.com/MeJosh/combat-odds/internal/errors"
)

// Spec describes damage dealt by a single hit: either a dice expression
// like 1d8+3 or a flat amount. Immutable once parsed.
type Spec struct {
	DiceCount int
	DiceSize  int
	Bonus     int // signed flat modifier, applied once even on crits

	Flat   int
	IsFlat bool
}

var (
	diceRe = regexp.MustCompile(`^\s*(\d+)\s*[dD]\s*(\d+)\s*(?:([+-])\s*(\d+))?\s*$`)
	flatRe = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// Parse parses a damage expression. It accepts a non-negative integer
// ("8") or a dice expression ("2d6+3", "1d8-1", case-insensitive d).
// Anything else is rejected; Parse never substitutes a default.
func Parse(expr string) (*Spec, error) {
	if m := flatRe.FindStringSubmatch(expr); m != nil {
		flat, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid damage amount %q", expr)
		}
		return &Spec{Flat: flat, IsFlat: true}, nil
	}

	m := diceRe.FindStringSubmatch(expr)
	if m == nil {
		return nil, errors.InvalidArgumentf("invalid damage expression %q", expr)
	}

	count, err := strconv.Atoi(m[1])
	if err != nil || count < 1 {
		return nil, errors.InvalidArgumentf("invalid dice count in %q", expr)
	}
	size, err := strconv.Atoi(m[2])
	if err != nil || size < 1 {
		return nil, errors.InvalidArgumentf("invalid dice size in %q", expr)
	}

	bonus := 0
	if m[3] != "" {
		bonus, err = strconv.Atoi(m[4])
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid modifier in %q", expr)
		}
		if m[3] == "-" {
			bonus = -bonus
		}
	}

	return &Spec{DiceCount: count, DiceSize: size, Bonus: bonus}, nil
}

// ParseOrDefault is the best-effort variant of Parse: expressions that
// fail to parse fall back to 1 flat damage. Callers that need to know
// whether the input was valid must use Parse.
func ParseOrDefault(expr string) *Spec {
	spec, err := Parse(expr)
	if err != nil {
		return &Spec{Flat: 1, IsFlat: true}
	}
	return spec
}

// Min returns the minimum damage of a single hit, clamped at 0
func (s *Spec) Min() int {
	if s.IsFlat {
		return s.Flat
	}
	return clamp(s.DiceCount + s.Bonus)
}

// Max returns the maximum damage of a single hit, clamped at 0
func (s *Spec) Max() int {
	if s.IsFlat {
		return s.Flat
	}
	return clamp(s.DiceCount*s.DiceSize + s.Bonus)
}

// Average returns the expected damage of a single hit
func (s *Spec) Average() float64 {
	if s.IsFlat {
		return float64(s.Flat)
	}
	return float64(s.DiceCount)*float64(s.DiceSize+1)/2 + float64(s.Bonus)
}

// CritMin returns the minimum damage of a critical hit: the dice are
// rolled twice, the modifier counts once. Flat damage is doubled.
func (s *Spec) CritMin() int {
	if s.IsFlat {
		return s.Flat * 2
	}
	return clamp(2*s.DiceCount + s.Bonus)
}

// CritMax returns the maximum damage of a critical hit
func (s *Spec) CritMax() int {
	if s.IsFlat {
		return s.Flat * 2
	}
	return clamp(2*s.DiceCount*s.DiceSize + s.Bonus)
}

// CritAverage returns the expected damage of a critical hit
func (s *Spec) CritAverage() float64 {
	if s.IsFlat {
		return float64(s.Flat * 2)
	}
	return float64(s.DiceCount)*float64(s.DiceSize+1) + float64(s.Bonus)
}

func (s *Spec) String() string {
	if s.IsFlat {
		return strconv.Itoa(s.Flat)
	}
	out := strconv.Itoa(s.DiceCount) + "d" + strconv.Itoa(s.DiceSize)
	switch {
	case s.Bonus > 0:
		out += "+" + strconv.Itoa(s.Bonus)
	case s.Bonus < 0:
		out += strconv.Itoa(s.Bonus)
	}
	return out
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
