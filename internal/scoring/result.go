package scoring

import "fmt"

// ChaseState is the input to the match result evaluator. It describes the
// second (chasing) innings against the first-innings total.
type ChaseState struct {
	FirstInningsScore int
	ChasingScore      int
	ChasingWickets    int
	ChasingTeamSize   int
	ValidBalls        int
	TotalOvers        int
}

// Evaluation is the evaluator's verdict.
type Evaluation struct {
	MatchOver     bool
	ResultMessage string
}

// EvaluateChase determines whether the match is over and with what result.
// It is the single evaluator for both the mid-delivery check (last-ball
// finishes, target reached) and the over-boundary check (overs exhausted);
// both paths must see identical logic.
func EvaluateChase(s ChaseState) Evaluation {
	teamSize := s.ChasingTeamSize
	if teamSize <= 1 {
		teamSize = 11
	}
	wicketCap := teamSize - 1

	// Target reached: the chase ends immediately, mid-over included.
	if s.ChasingScore > s.FirstInningsScore {
		wicketsInHand := wicketCap - s.ChasingWickets
		if wicketsInHand < 0 {
			wicketsInHand = 0
		}
		return Evaluation{
			MatchOver:     true,
			ResultMessage: fmt.Sprintf("Team B won by %d wickets", wicketsInHand),
		}
	}

	inningsComplete := s.ChasingWickets >= wicketCap ||
		(s.TotalOvers > 0 && s.ValidBalls >= s.TotalOvers*6)
	if !inningsComplete {
		return Evaluation{}
	}

	if s.ChasingScore < s.FirstInningsScore {
		return Evaluation{
			MatchOver:     true,
			ResultMessage: fmt.Sprintf("Team A won by %d runs", s.FirstInningsScore-s.ChasingScore),
		}
	}

	return Evaluation{MatchOver: true, ResultMessage: "Match Tied"}
}
