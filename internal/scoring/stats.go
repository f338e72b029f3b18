package scoring

import (
	"github.com/Dev-06-06/cricket-tracker/internal/match"
)

// BowlingFigures is a bowler's derived view over the timeline. Bowling is
// never stored as mutable counters: deriving it from the retained deliveries
// keeps it exact across undo.
type BowlingFigures struct {
	Balls   int `json:"balls"`
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
}

// BowlingFromTimeline folds the timeline into per-bowler figures, keyed by the
// stable player id stamped on each delivery. Byes and leg-byes are not charged
// to the bowler; wide and no-ball extras are. Run-outs are not credited to the
// bowler.
func BowlingFromTimeline(timeline match.Timeline) map[uint]BowlingFigures {
	byBowler := make(map[uint]BowlingFigures)

	for _, d := range timeline {
		if d.BowlerID == nil {
			continue
		}
		f := byBowler[*d.BowlerID]

		if d.ExtraType.IsValidBall() {
			f.Balls++
		}
		if d.ExtraType != match.ExtraWide {
			f.Runs += d.RunsOffBat
		}
		if d.ExtraType != match.ExtraBye && d.ExtraType != match.ExtraLegBye {
			f.Runs += d.ExtraRuns
		}
		if d.IsWicket && d.WicketType != match.WicketRunOut {
			f.Wickets++
		}

		byBowler[*d.BowlerID] = f
	}

	return byBowler
}

// updateCareerStats folds a completed match's per-player figures into the
// persistent career totals. It must run at most once per match completion;
// rerunning it would double-count.
func (e *Engine) updateCareerStats(m *match.Match) error {
	bowlingByID := BowlingFromTimeline(m.Timeline)

	for i := range m.PlayerStats {
		ps := &m.PlayerStats[i]

		p, err := e.players.GetPlayerByID(ps.PlayerID)
		if err != nil {
			return err
		}
		if p == nil {
			continue
		}

		changed := false

		if ps.DidBat {
			p.Batting.Matches++
			p.Batting.Innings++
			p.Batting.Runs += ps.Batting.Runs
			p.Batting.Balls += ps.Batting.Balls
			p.Batting.Fours += ps.Batting.Fours
			p.Batting.Sixes += ps.Batting.Sixes

			if !ps.IsOut {
				p.Batting.NotOuts++
			}
			if ps.Batting.Runs > p.Batting.HighestScore {
				p.Batting.HighestScore = ps.Batting.Runs
			}
			// A hundred takes precedence over a fifty; the buckets are
			// mutually exclusive.
			if ps.Batting.Runs >= 100 {
				p.Batting.Hundreds++
			} else if ps.Batting.Runs >= 50 {
				p.Batting.Fifties++
			}
			changed = true
		}

		if ps.DidBowl {
			figures := bowlingByID[ps.PlayerID]

			p.Bowling.Matches++
			p.Bowling.Innings++
			p.Bowling.Balls += figures.Balls
			p.Bowling.Runs += figures.Runs
			p.Bowling.Wickets += figures.Wickets
			p.Bowling.Overs = OversFromBalls(p.Bowling.Balls)

			isBetter := figures.Wickets > p.Bowling.BestFiguresWickets ||
				(figures.Wickets == p.Bowling.BestFiguresWickets &&
					figures.Runs < p.Bowling.BestFiguresRuns)
			if isBetter {
				p.Bowling.BestFiguresWickets = figures.Wickets
				p.Bowling.BestFiguresRuns = figures.Runs
			}

			if figures.Wickets >= 5 {
				p.Bowling.FiveWickets++
			} else if figures.Wickets == 4 {
				p.Bowling.FourWickets++
			}
			changed = true
		}

		if changed {
			if err := e.players.UpdatePlayer(p); err != nil {
				return err
			}
		}
	}

	return nil
}
