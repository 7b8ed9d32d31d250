package dice

import (
	"fmt"
	"strings"

	"github.com/MeJosh/combat-odds/internal/errors"
)

// RollResult contains detailed information about a dice roll
type RollResult struct {
	Total    int   // Sum of all dice plus bonus
	RawTotal int   // Sum of all dice without the bonus
	Rolls    []int // Individual die results
	Bonus    int   // Bonus applied
	Count    int   // Number of dice rolled
	Sides    int   // Number of sides on each die
	IsCrit   bool  // Natural 20 on a single d20
	IsFumble bool  // Natural 1 on a single d20
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("%d : %s", r.Total, compact)
}

func validateRoll(count, sides int) error {
	if count < 1 {
		return errors.InvalidArgumentf("invalid dice count %d", count)
	}
	if sides < 1 {
		return errors.InvalidArgumentf("invalid dice size %d", sides)
	}
	return nil
}

// markD20 flags crits and fumbles on single d20 rolls
func markD20(result *RollResult) {
	if result.Count == 1 && result.Sides == 20 && len(result.Rolls) > 0 {
		result.IsCrit = result.Rolls[0] == 20
		result.IsFumble = result.Rolls[0] == 1
	}
}
