package scoring

import (
	"fmt"
	"sync"

	"github.com/Dev-06-06/cricket-tracker/internal/match"
	"github.com/Dev-06-06/cricket-tracker/internal/player"
)

// MatchStore is the persistence the engine needs for match documents. The
// engine loads a match fresh at the start of every event and writes the whole
// document back once; nothing stays resident between events.
type MatchStore interface {
	CreateMatch(m *match.Match) error
	GetMatchByID(id uint) (*match.Match, error)
	UpdateMatch(m *match.Match) error
}

// PlayerStore is the persistence the engine needs for player records.
type PlayerStore interface {
	GetPlayerByID(id uint) (*player.Player, error)
	GetPlayersByIDs(ids []uint) ([]player.Player, error)
	UpdatePlayer(p *player.Player) error
}

// Broadcaster publishes events to all subscribers of a match id.
type Broadcaster interface {
	Broadcast(matchID uint, event string, payload interface{})
}

// Engine is the delivery-processing core. All mutations for a given match id
// are serialized through a per-match mutex: two concurrent events for the same
// match cannot interleave their load-mutate-persist cycles.
type Engine struct {
	matches      MatchStore
	players      PlayerStore
	bus          Broadcaster
	defaultOvers int

	locks sync.Map // match id -> *sync.Mutex
}

// NewEngine creates a scoring engine.
func NewEngine(matches MatchStore, players PlayerStore, bus Broadcaster, defaultOvers int) *Engine {
	if defaultOvers <= 0 {
		defaultOvers = 20
	}
	return &Engine{
		matches:      matches,
		players:      players,
		bus:          bus,
		defaultOvers: defaultOvers,
	}
}

func (e *Engine) lockMatch(matchID uint) func() {
	v, _ := e.locks.LoadOrStore(matchID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (e *Engine) loadMatch(matchID uint) (*match.Match, error) {
	m, err := e.matches.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// CreateMatchInput describes a new match: team names, ordered rosters and the
// over cap (0 means the configured default).
type CreateMatchInput struct {
	Team1Name      string `json:"team1Name"`
	Team2Name      string `json:"team2Name"`
	Team1PlayerIDs []uint `json:"team1PlayerIds"`
	Team2PlayerIDs []uint `json:"team2PlayerIds"`
	TotalOvers     int    `json:"totalOvers"`
}

// CreateMatch creates a match at the toss stage, with playerStats seeded from
// roster lookups.
func (e *Engine) CreateMatch(in CreateMatchInput) (*match.Match, error) {
	if in.Team1Name == "" || in.Team2Name == "" {
		return nil, validationErrorf("Team names are required")
	}

	totalOvers := in.TotalOvers
	if totalOvers <= 0 {
		totalOvers = e.defaultOvers
	}

	var stats match.PlayerStatList
	for _, roster := range []struct {
		ids  []uint
		team string
	}{
		{in.Team1PlayerIDs, in.Team1Name},
		{in.Team2PlayerIDs, in.Team2Name},
	} {
		players, err := e.players.GetPlayersByIDs(roster.ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[uint]player.Player, len(players))
		for _, p := range players {
			byID[p.ID] = p
		}
		// Seed in roster order, skipping ids that resolve to nothing.
		for _, id := range roster.ids {
			p, ok := byID[id]
			if !ok {
				continue
			}
			stats = append(stats, match.PlayerStat{
				PlayerID: p.ID,
				Name:     p.Name,
				Team:     roster.team,
				Batting:  match.BattingFigures{DismissalType: match.WicketNone},
			})
		}
	}

	m := &match.Match{
		Team1Name:      in.Team1Name,
		Team2Name:      in.Team2Name,
		BattingTeam:    in.Team1Name,
		BowlingTeam:    in.Team2Name,
		Team1PlayerIDs: match.IDList(in.Team1PlayerIDs),
		Team2PlayerIDs: match.IDList(in.Team2PlayerIDs),
		TotalOvers:     totalOvers,
		InningsNumber:  1,
		Status:         match.StatusToss,
		PlayerStats:    stats,
		Timeline:       match.Timeline{},
	}

	if err := e.matches.CreateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordToss records the toss result and assigns batting/bowling sides:
// the winner bats on BAT, bowls on BOWL.
func (e *Engine) RecordToss(matchID uint, tossWinner string, tossChoice match.TossChoice) error {
	unlock := e.lockMatch(matchID)
	defer unlock()

	m, err := e.loadMatch(matchID)
	if err != nil {
		return err
	}
	if m.Status == match.StatusCompleted {
		return ErrMatchCompleted
	}
	if tossWinner != m.Team1Name && tossWinner != m.Team2Name {
		return validationErrorf("Toss winner must be one of the competing teams")
	}
	if tossChoice != match.TossChoiceBat && tossChoice != match.TossChoiceBowl {
		return validationErrorf("Toss choice must be BAT or BOWL")
	}

	other := m.Team1Name
	if tossWinner == m.Team1Name {
		other = m.Team2Name
	}

	m.TossWinner = tossWinner
	m.TossChoice = tossChoice
	if tossChoice == match.TossChoiceBat {
		m.BattingTeam = tossWinner
		m.BowlingTeam = other
	} else {
		m.BowlingTeam = tossWinner
		m.BattingTeam = other
	}
	m.Status = match.StatusInnings

	if err := e.matches.UpdateMatch(m); err != nil {
		return err
	}
	e.broadcastState(m)
	return nil
}

// SetOpeners assigns the opening striker, non-striker and bowler and moves the
// match live. It also starts the second innings when the match is at
// innings_complete.
func (e *Engine) SetOpeners(matchID, strikerID, nonStrikerID, bowlerID uint) error {
	unlock := e.lockMatch(matchID)
	defer unlock()

	m, err := e.loadMatch(matchID)
	if err != nil {
		return err
	}
	if m.Status == match.StatusCompleted {
		return ErrMatchCompleted
	}

	for _, id := range []uint{strikerID, nonStrikerID, bowlerID} {
		if m.PlayerStatByID(id) == nil {
			return ErrPlayerNotFound
		}
	}

	m.CurrentStrikerID = uintPtr(strikerID)
	m.CurrentNonStrikerID = uintPtr(nonStrikerID)
	m.CurrentBowlerID = uintPtr(bowlerID)
	m.NextBatterFor = ""
	m.Status = match.StatusLive

	m.PlayerStatByID(strikerID).DidBat = true
	m.PlayerStatByID(nonStrikerID).DidBat = true
	m.PlayerStatByID(bowlerID).DidBowl = true

	if err := e.matches.UpdateMatch(m); err != nil {
		return err
	}
	e.broadcastState(m)
	return nil
}

// DeliveryInput is a raw delivery description from the umpire client.
type DeliveryInput struct {
	Runs                int              `json:"runs"`
	ExtraType           string           `json:"extraType"`
	ExtraRuns           int              `json:"extraRuns"`
	IsWicket            bool             `json:"isWicket"`
	WicketType          match.WicketType `json:"wicketType"`
	DismissedBatterID   *uint            `json:"dismissedBatterId,omitempty"`
	DismissedPlayerType match.BatterSlot `json:"dismissedPlayerType,omitempty"`
}

// ApplyDelivery applies one ball to the match state: timeline append, score
// and batter bookkeeping, wicket handling, strike rotation, over accounting,
// and innings/match-end transitions, then persists and broadcasts.
func (e *Engine) ApplyDelivery(matchID uint, in DeliveryInput) error {
	unlock := e.lockMatch(matchID)
	defer unlock()

	m, err := e.loadMatch(matchID)
	if err != nil {
		return err
	}
	if m.Status == match.StatusCompleted {
		return ErrMatchCompleted
	}
	if m.Status != match.StatusLive && m.Status != match.StatusInnings {
		return validationErrorf("Match is not accepting deliveries")
	}
	if in.Runs < 0 || in.ExtraRuns < 0 {
		return validationErrorf("Runs cannot be negative")
	}

	extraType := match.NormalizeExtraType(in.ExtraType)
	switch extraType {
	case match.ExtraNone, match.ExtraWide, match.ExtraNoBall, match.ExtraBye, match.ExtraLegBye:
	default:
		return validationErrorf("Unknown extra type")
	}

	// A wicket without dismissal details is accepted as a no-attribution
	// wicket: the count increments and a slot is vacated, but no player is
	// marked out.
	wicketType := match.WicketNone
	if in.IsWicket && in.WicketType != "" {
		wicketType = in.WicketType
	}

	isValidBall := extraType.IsValidBall()
	originalNonStriker := m.CurrentNonStrikerID
	ballsBefore := m.BallsBowled

	entry := match.Delivery{
		OverNumber: ballsBefore/6 + 1,
		BallInOver: ballsBefore%6 + 1,
		RunsOffBat: in.Runs,
		ExtraType:  extraType,
		ExtraRuns:  in.ExtraRuns,
		IsWicket:   in.IsWicket,
		WicketType: wicketType,
		StrikerID:  copyID(m.CurrentStrikerID),
		Striker:    m.PlayerName(m.CurrentStrikerID),
		BowlerID:   copyID(m.CurrentBowlerID),
		Bowler:     m.PlayerName(m.CurrentBowlerID),
	}
	if in.IsWicket && in.DismissedBatterID != nil {
		entry.BatterDismissedID = copyID(in.DismissedBatterID)
		entry.BatterDismissed = m.PlayerName(in.DismissedBatterID)
	}
	m.Timeline = append(m.Timeline, entry)
	m.TotalRuns += in.Runs + in.ExtraRuns

	// Striker bookkeeping. Wides credit nothing to the striker; the ball is
	// charged whenever it counts toward the over, wicket or not.
	if m.CurrentStrikerID != nil {
		if ps := m.PlayerStatByID(*m.CurrentStrikerID); ps != nil {
			if extraType != match.ExtraWide {
				ps.Batting.Runs += in.Runs
				if in.Runs == 4 {
					ps.Batting.Fours++
				}
				if in.Runs == 6 {
					ps.Batting.Sixes++
				}
			}
			if isValidBall {
				ps.Batting.Balls++
			}
		}
	}

	if in.IsWicket {
		e.applyWicketState(m, in.DismissedBatterID, in.DismissedPlayerType, wicketType)
		m.Status = match.StatusInnings
	}

	totalValidBalls := ballsBefore
	if isValidBall {
		totalValidBalls++
	}

	// Strike rotation. A wicket freezes rotation unless it is a run-out,
	// which can still accrue completed runs. A run-out of the non-striker is
	// decided purely by parity of runs physically run.
	isRunOut := in.IsWicket && wicketType == match.WicketRunOut
	nonStrikerRunOut := isRunOut && in.DismissedBatterID != nil &&
		originalNonStriker != nil && *in.DismissedBatterID == *originalNonStriker

	if !in.IsWicket || isRunOut {
		runsForRotation := in.Runs
		if extraType == match.ExtraBye || extraType == match.ExtraLegBye {
			runsForRotation += in.ExtraRuns
		}
		var rotates bool
		if nonStrikerRunOut {
			rotates = runsForRotation%2 == 1
		} else {
			rotates = ShouldRotateStrike(runsForRotation, extraType, totalValidBalls)
		}
		if rotates {
			m.CurrentStrikerID, m.CurrentNonStrikerID = m.CurrentNonStrikerID, m.CurrentStrikerID
		}
	}

	m.BallsBowled = totalValidBalls
	m.OversBowled = OversFromBalls(totalValidBalls)

	return e.settleDelivery(m)
}

// applyWicketState resolves which slot the dismissal vacates (explicit hint
// first, then the dismissed player's identity, defaulting to the striker),
// marks the player out and arms nextBatterFor.
func (e *Engine) applyWicketState(m *match.Match, dismissedID *uint, hint match.BatterSlot, wicketType match.WicketType) {
	m.Wickets++

	if dismissedID != nil {
		if ps := m.PlayerStatByID(*dismissedID); ps != nil {
			ps.IsOut = true
			ps.DismissalType = wicketType
			ps.Batting.DismissalType = wicketType
		}
	}

	slot := hint
	if slot != match.SlotStriker && slot != match.SlotNonStriker {
		if dismissedID != nil && m.CurrentNonStrikerID != nil && *dismissedID == *m.CurrentNonStrikerID {
			slot = match.SlotNonStriker
		} else {
			slot = match.SlotStriker
		}
	}

	if slot == match.SlotNonStriker {
		m.CurrentNonStrikerID = nil
	} else {
		m.CurrentStrikerID = nil
	}
	m.NextBatterFor = slot
}

// settleDelivery is the single post-delivery hook: it evaluates all
// innings/match-end conditions with full post-delivery context, then persists
// and broadcasts whichever event applies. The wicket-triggered all-out check
// runs before the overs-exhausted check.
func (e *Engine) settleDelivery(m *match.Match) error {
	battingStats := m.BattingTeamStats()
	notOutAndBatted := 0
	availableToBat := 0
	for _, ps := range battingStats {
		if ps.DidBat && !ps.IsOut {
			notOutAndBatted++
		}
		if !ps.DidBat && !ps.IsOut {
			availableToBat++
		}
	}
	teamSize := m.BattingTeamSize()

	wicketLimitReached := teamSize > 0 && m.Wickets >= teamSize-1
	lastBatterWithoutPartner := notOutAndBatted <= 1 && availableToBat == 0
	allOut := wicketLimitReached || lastBatterWithoutPartner

	if allOut {
		if m.InningsNumber == 1 {
			return e.finishFirstInnings(m)
		}
		return e.finishMatch(m, e.secondInningsResult(m))
	}

	if m.InningsNumber == 2 {
		eval := EvaluateChase(ChaseState{
			FirstInningsScore: derefInt(m.FirstInningsScore),
			ChasingScore:      m.TotalRuns,
			ChasingWickets:    m.Wickets,
			ChasingTeamSize:   teamSize,
			ValidBalls:        m.BallsBowled,
			TotalOvers:        m.TotalOvers,
		})
		if eval.MatchOver {
			return e.finishMatch(m, eval.ResultMessage)
		}
	} else if m.TotalOvers > 0 && m.BallsBowled >= m.TotalOvers*6 {
		return e.finishFirstInnings(m)
	}

	if err := e.matches.UpdateMatch(m); err != nil {
		return err
	}
	e.broadcastState(m)
	return nil
}

// secondInningsResult produces the result message when the second innings is
// closed by an all-out, covering edge cases the chase evaluator alone may not
// flag (last batter stranded without a partner below the wicket cap).
func (e *Engine) secondInningsResult(m *match.Match) string {
	first := derefInt(m.FirstInningsScore)
	teamSize := m.BattingTeamSize()

	eval := EvaluateChase(ChaseState{
		FirstInningsScore: first,
		ChasingScore:      m.TotalRuns,
		ChasingWickets:    m.Wickets,
		ChasingTeamSize:   teamSize,
		ValidBalls:        m.BallsBowled,
		TotalOvers:        m.TotalOvers,
	})
	if eval.MatchOver {
		return eval.ResultMessage
	}

	if m.TotalRuns < first {
		return formatRunsWin(first - m.TotalRuns)
	}
	if m.TotalRuns == first {
		return "Match Tied"
	}
	wicketsInHand := teamSize - 1 - m.Wickets
	if wicketsInHand < 0 {
		wicketsInHand = 0
	}
	return formatWicketsWin(wicketsInHand)
}

// InningsCompletePayload is broadcast when the first innings closes.
type InningsCompletePayload struct {
	MatchID           uint    `json:"matchId"`
	BattingTeam       string  `json:"battingTeam"`
	Score             int     `json:"score"`
	Wickets           int     `json:"wickets"`
	Overs             float64 `json:"overs"`
	NextBattingTeam   string  `json:"nextBattingTeam"`
	TargetScore       int     `json:"targetScore"`
	FirstInningsScore int     `json:"firstInningsScore"`
}

func (e *Engine) finishFirstInnings(m *match.Match) error {
	completed := InningsCompletePayload{
		MatchID:     m.ID,
		BattingTeam: m.BattingTeam,
		Score:       m.TotalRuns,
		Wickets:     m.Wickets,
		Overs:       m.OversBowled,
	}

	e.startSecondInnings(m)

	completed.NextBattingTeam = m.BattingTeam
	completed.TargetScore = derefInt(m.TargetScore)
	completed.FirstInningsScore = derefInt(m.FirstInningsScore)

	if err := e.matches.UpdateMatch(m); err != nil {
		return err
	}
	e.bus.Broadcast(m.ID, "innings_complete", completed)
	e.broadcastState(m)
	return nil
}

// startSecondInnings swaps sides, locks in the first-innings score/target and
// resets all innings-scoped state, re-arming the new batting side's records.
func (e *Engine) startSecondInnings(m *match.Match) {
	firstInningsRuns := m.TotalRuns
	nextBattingTeam := m.Team2Name
	if m.BattingTeam == m.Team2Name {
		nextBattingTeam = m.Team1Name
	}
	nextBowlingTeam := m.BattingTeam

	m.FirstInningsScore = intPtr(firstInningsRuns)
	m.TargetScore = intPtr(firstInningsRuns + 1)
	m.InningsNumber = 2
	m.Status = match.StatusInningsComplete

	m.BattingTeam = nextBattingTeam
	m.BowlingTeam = nextBowlingTeam

	m.TotalRuns = 0
	m.Wickets = 0
	m.OversBowled = 0
	m.BallsBowled = 0
	m.Timeline = match.Timeline{}

	m.CurrentStrikerID = nil
	m.CurrentNonStrikerID = nil
	m.CurrentBowlerID = nil
	m.NextBatterFor = ""

	for i := range m.PlayerStats {
		if m.PlayerStats[i].Team == nextBattingTeam {
			m.PlayerStats[i].DidBat = false
			m.PlayerStats[i].IsOut = false
			m.PlayerStats[i].DismissalType = match.WicketNone
			m.PlayerStats[i].Batting.Reset()
		}
	}
}

func (e *Engine) finishMatch(m *match.Match, resultMessage string) error {
	m.Status = match.StatusCompleted

	if err := e.matches.UpdateMatch(m); err != nil {
		return err
	}
	if err := e.updateCareerStats(m); err != nil {
		return err
	}

	e.bus.Broadcast(m.ID, "match_completed", MatchCompletedPayload{
		MatchState:    *BuildMatchState(m),
		ResultMessage: resultMessage,
		Target:        derefInt(m.TargetScore),
	})
	return nil
}

// UndoLastDelivery pops the last timeline entry, reconstructs all derived
// state by replaying the remaining timeline from scratch and inverts the
// popped delivery's effect on the current batting slots, so resubmitting the
// same delivery reproduces the same state. Undo on an empty timeline is a
// no-op.
func (e *Engine) UndoLastDelivery(matchID uint) error {
	unlock := e.lockMatch(matchID)
	defer unlock()

	m, err := e.loadMatch(matchID)
	if err != nil {
		return err
	}
	if m.Status == match.StatusCompleted {
		return ErrMatchCompleted
	}
	if len(m.Timeline) == 0 {
		return nil
	}

	popped := m.Timeline[len(m.Timeline)-1]
	m.Timeline = m.Timeline[:len(m.Timeline)-1]
	replayTimeline(m)
	unwindDelivery(m, popped)
	m.NextBatterFor = inferNextBatterFor(m)
	if m.Status == match.StatusInnings &&
		m.CurrentStrikerID != nil && m.CurrentNonStrikerID != nil {
		m.Status = match.StatusLive
	}

	if err := e.matches.UpdateMatch(m); err != nil {
		return err
	}
	e.broadcastState(m)
	return nil
}

// unwindDelivery reverses the popped delivery's effect on the current batting
// slots: a strike rotation it caused is swapped back, and a slot it vacated is
// reoccupied by the batter it dismissed. Counters and figures are already
// rebuilt by replayTimeline; the per-delivery striker and dismissal stamps
// make the slot inversion exact. A slot already refilled by a replacement
// batter is left alone.
func unwindDelivery(m *match.Match, d match.Delivery) {
	isRunOut := d.IsWicket && d.WicketType == match.WicketRunOut
	nonStrikerOut := d.BatterDismissedID != nil &&
		(d.StrikerID == nil || *d.BatterDismissedID != *d.StrikerID)

	if !d.IsWicket || isRunOut {
		runsForRotation := d.RunsOffBat
		if d.ExtraType == match.ExtraBye || d.ExtraType == match.ExtraLegBye {
			runsForRotation += d.ExtraRuns
		}
		// m.BallsBowled is the pre-delivery count after replay.
		totalValidBalls := m.BallsBowled
		if d.ExtraType.IsValidBall() {
			totalValidBalls++
		}
		var rotated bool
		if isRunOut && nonStrikerOut {
			rotated = runsForRotation%2 == 1
		} else {
			rotated = ShouldRotateStrike(runsForRotation, d.ExtraType, totalValidBalls)
		}
		if rotated {
			m.CurrentStrikerID, m.CurrentNonStrikerID = m.CurrentNonStrikerID, m.CurrentStrikerID
		}
	}

	if d.IsWicket {
		if nonStrikerOut {
			if m.CurrentNonStrikerID == nil {
				m.CurrentNonStrikerID = copyID(d.BatterDismissedID)
			}
		} else if m.CurrentStrikerID == nil && d.StrikerID != nil {
			m.CurrentStrikerID = copyID(d.StrikerID)
		}
	}
}

// replayTimeline recomputes totals, over accounting and every batter's figures
// from the retained timeline. It never subtracts incrementally: replay from
// zero avoids drift from asymmetric extras rules.
func replayTimeline(m *match.Match) {
	m.TotalRuns = 0
	m.Wickets = 0
	validBalls := 0

	for i := range m.PlayerStats {
		m.PlayerStats[i].IsOut = false
		m.PlayerStats[i].DismissalType = match.WicketNone
		m.PlayerStats[i].Batting.Reset()
	}

	for _, d := range m.Timeline {
		m.TotalRuns += d.RunsOffBat + d.ExtraRuns
		if d.IsWicket {
			m.Wickets++
		}
		if d.ExtraType.IsValidBall() {
			validBalls++
		}

		if d.StrikerID != nil {
			if ps := m.PlayerStatByID(*d.StrikerID); ps != nil {
				if d.ExtraType != match.ExtraWide {
					ps.Batting.Runs += d.RunsOffBat
					if d.RunsOffBat == 4 {
						ps.Batting.Fours++
					}
					if d.RunsOffBat == 6 {
						ps.Batting.Sixes++
					}
				}
				if d.ExtraType.IsValidBall() {
					ps.Batting.Balls++
				}
			}
		}

		if d.IsWicket && d.BatterDismissedID != nil {
			if ps := m.PlayerStatByID(*d.BatterDismissedID); ps != nil {
				ps.IsOut = true
				ps.DismissalType = d.WicketType
				ps.Batting.DismissalType = d.WicketType
			}
		}
	}

	m.BallsBowled = validBalls
	m.OversBowled = OversFromBalls(validBalls)
	m.NextBatterFor = inferNextBatterFor(m)
}

func inferNextBatterFor(m *match.Match) match.BatterSlot {
	if m.CurrentStrikerID == nil && m.CurrentNonStrikerID != nil {
		return match.SlotStriker
	}
	if m.CurrentNonStrikerID == nil && m.CurrentStrikerID != nil {
		return match.SlotNonStriker
	}
	return ""
}

// SetNewBatter fills an open batting slot after a wicket and resumes play.
func (e *Engine) SetNewBatter(matchID, batterID uint) error {
	unlock := e.lockMatch(matchID)
	defer unlock()

	m, err := e.loadMatch(matchID)
	if err != nil {
		return err
	}
	if m.Status == match.StatusCompleted {
		return ErrMatchCompleted
	}

	ps := m.PlayerStatByID(batterID)
	if ps == nil {
		return ErrPlayerNotFound
	}

	if m.CurrentStrikerID == nil {
		m.CurrentStrikerID = uintPtr(batterID)
	} else if m.CurrentNonStrikerID == nil {
		m.CurrentNonStrikerID = uintPtr(batterID)
	} else {
		m.CurrentStrikerID = uintPtr(batterID)
	}

	m.NextBatterFor = inferNextBatterFor(m)
	m.Status = match.StatusLive
	ps.DidBat = true

	if err := e.matches.UpdateMatch(m); err != nil {
		return err
	}
	e.broadcastState(m)
	return nil
}

// SetNewBowler assigns the bowler for the next over.
func (e *Engine) SetNewBowler(matchID, bowlerID uint) error {
	unlock := e.lockMatch(matchID)
	defer unlock()

	m, err := e.loadMatch(matchID)
	if err != nil {
		return err
	}
	if m.Status == match.StatusCompleted {
		return ErrMatchCompleted
	}

	ps := m.PlayerStatByID(bowlerID)
	if ps == nil {
		return ErrPlayerNotFound
	}

	m.CurrentBowlerID = uintPtr(bowlerID)
	ps.DidBowl = true

	if err := e.matches.UpdateMatch(m); err != nil {
		return err
	}
	e.broadcastState(m)
	return nil
}

// SwapStrikers swaps the batting ends manually (umpire correction).
func (e *Engine) SwapStrikers(matchID uint) error {
	unlock := e.lockMatch(matchID)
	defer unlock()

	m, err := e.loadMatch(matchID)
	if err != nil {
		return err
	}
	if m.Status == match.StatusCompleted {
		return ErrMatchCompleted
	}
	if m.CurrentStrikerID == nil || m.CurrentNonStrikerID == nil {
		return validationErrorf("Both batting slots must be occupied to swap")
	}

	m.CurrentStrikerID, m.CurrentNonStrikerID = m.CurrentNonStrikerID, m.CurrentStrikerID
	m.Status = match.StatusLive

	if err := e.matches.UpdateMatch(m); err != nil {
		return err
	}
	e.broadcastState(m)
	return nil
}

// CompleteMatch forces the match into the terminal completed state and runs
// career aggregation. A match can only be completed once.
func (e *Engine) CompleteMatch(matchID uint) error {
	unlock := e.lockMatch(matchID)
	defer unlock()

	m, err := e.loadMatch(matchID)
	if err != nil {
		return err
	}
	if m.Status == match.StatusCompleted {
		return ErrMatchCompleted
	}

	var resultMessage string
	if m.InningsNumber == 2 {
		resultMessage = e.secondInningsResult(m)
	}
	return e.finishMatch(m, resultMessage)
}

// Snapshot returns the full derived state for a match.
func (e *Engine) Snapshot(matchID uint) (*MatchState, error) {
	unlock := e.lockMatch(matchID)
	defer unlock()

	m, err := e.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	return BuildMatchState(m), nil
}

func (e *Engine) broadcastState(m *match.Match) {
	e.bus.Broadcast(m.ID, "matchState", BuildMatchState(m))
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func formatRunsWin(margin int) string {
	return fmt.Sprintf("Team A won by %d runs", margin)
}

func formatWicketsWin(wicketsInHand int) string {
	return fmt.Sprintf("Team B won by %d wickets", wicketsInHand)
}
