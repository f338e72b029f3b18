package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateChaseTargetReached(t *testing.T) {
	eval := EvaluateChase(ChaseState{
		FirstInningsScore: 150,
		ChasingScore:      151,
		ChasingWickets:    4,
		ChasingTeamSize:   11,
		ValidBalls:        108,
		TotalOvers:        20,
	})

	assert.True(t, eval.MatchOver)
	assert.Equal(t, "Team B won by 6 wickets", eval.ResultMessage)
}

func TestEvaluateChaseTargetReachedMidOver(t *testing.T) {
	// The chase ends the moment the score passes the target, even with balls
	// left in the over.
	eval := EvaluateChase(ChaseState{
		FirstInningsScore: 100,
		ChasingScore:      104,
		ChasingWickets:    0,
		ChasingTeamSize:   11,
		ValidBalls:        62,
		TotalOvers:        20,
	})

	assert.True(t, eval.MatchOver)
	assert.Equal(t, "Team B won by 10 wickets", eval.ResultMessage)
}

func TestEvaluateChaseAllOutShort(t *testing.T) {
	eval := EvaluateChase(ChaseState{
		FirstInningsScore: 150,
		ChasingScore:      140,
		ChasingWickets:    10,
		ChasingTeamSize:   11,
		ValidBalls:        95,
		TotalOvers:        20,
	})

	assert.True(t, eval.MatchOver)
	assert.Equal(t, "Team A won by 10 runs", eval.ResultMessage)
}

func TestEvaluateChaseOversExhaustedShort(t *testing.T) {
	eval := EvaluateChase(ChaseState{
		FirstInningsScore: 150,
		ChasingScore:      149,
		ChasingWickets:    6,
		ChasingTeamSize:   11,
		ValidBalls:        120,
		TotalOvers:        20,
	})

	assert.True(t, eval.MatchOver)
	assert.Equal(t, "Team A won by 1 runs", eval.ResultMessage)
}

func TestEvaluateChaseTied(t *testing.T) {
	eval := EvaluateChase(ChaseState{
		FirstInningsScore: 150,
		ChasingScore:      150,
		ChasingWickets:    7,
		ChasingTeamSize:   11,
		ValidBalls:        120,
		TotalOvers:        20,
	})

	assert.True(t, eval.MatchOver)
	assert.Equal(t, "Match Tied", eval.ResultMessage)
}

func TestEvaluateChaseStillInProgress(t *testing.T) {
	eval := EvaluateChase(ChaseState{
		FirstInningsScore: 150,
		ChasingScore:      100,
		ChasingWickets:    5,
		ChasingTeamSize:   11,
		ValidBalls:        90,
		TotalOvers:        20,
	})

	assert.False(t, eval.MatchOver)
	assert.Empty(t, eval.ResultMessage)
}

func TestEvaluateChaseDefaultsTeamSize(t *testing.T) {
	// A missing or degenerate roster size falls back to 11 so the wicket cap
	// stays 10.
	eval := EvaluateChase(ChaseState{
		FirstInningsScore: 50,
		ChasingScore:      51,
		ChasingWickets:    2,
		ChasingTeamSize:   0,
		ValidBalls:        30,
		TotalOvers:        20,
	})

	assert.True(t, eval.MatchOver)
	assert.Equal(t, "Team B won by 8 wickets", eval.ResultMessage)
}

func TestEvaluateChaseSmallTeams(t *testing.T) {
	// 3-a-side: innings closes at 2 wickets.
	eval := EvaluateChase(ChaseState{
		FirstInningsScore: 30,
		ChasingScore:      20,
		ChasingWickets:    2,
		ChasingTeamSize:   3,
		ValidBalls:        10,
		TotalOvers:        5,
	})

	assert.True(t, eval.MatchOver)
	assert.Equal(t, "Team A won by 10 runs", eval.ResultMessage)
}
