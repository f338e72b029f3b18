package scoring

import (
	"github.com/Dev-06-06/cricket-tracker/internal/match"
)

// ShouldRotateStrike decides whether striker and non-striker swap after a
// delivery. Rule A: an odd number of runs rotates strike. Rule B: if the
// delivery was a valid ball that completed an over, the outcome is inverted,
// because ends change at over boundaries. Wide/no-ball extras never count
// toward Rule A and cannot complete an over.
//
// runsForRotation is the runs physically run: runs off the bat, plus extra
// runs only for byes and leg-byes (the caller builds this).
func ShouldRotateStrike(runsForRotation int, extraType match.ExtraType, totalValidBalls int) bool {
	rotates := runsForRotation%2 == 1

	if extraType.IsValidBall() && totalValidBalls > 0 && totalValidBalls%6 == 0 {
		rotates = !rotates
	}

	return rotates
}
