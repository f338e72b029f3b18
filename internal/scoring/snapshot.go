package scoring

import (
	"github.com/Dev-06-06/cricket-tracker/internal/match"
)

// PlayerStateEntry is one player's full figures in a matchState broadcast:
// stored batting plus bowling derived from the timeline.
type PlayerStateEntry struct {
	PlayerID      uint                 `json:"playerId"`
	Name          string               `json:"name"`
	Team          string               `json:"team"`
	DidBat        bool                 `json:"didBat"`
	DidBowl       bool                 `json:"didBowl"`
	IsOut         bool                 `json:"isOut"`
	DismissalType match.WicketType     `json:"dismissalType"`
	Batting       match.BattingFigures `json:"batting"`
	Bowling       BowlingFigures       `json:"bowling"`
}

// TimelineExtras is the normalized extras rendering for viewers.
type TimelineExtras struct {
	Type string `json:"type"`
	Runs int    `json:"runs"`
}

// TimelineEntry is a delivery transformed for broadcast.
type TimelineEntry struct {
	match.Delivery
	Runs        int             `json:"runs"`
	IsValidBall bool            `json:"isValidBall"`
	Extras      *TimelineExtras `json:"extras"`
}

// MatchState is the full derived snapshot broadcast to every subscriber of a
// match after each successful mutation.
type MatchState struct {
	MatchID           uint               `json:"matchId"`
	Team1Name         string             `json:"team1Name"`
	Team2Name         string             `json:"team2Name"`
	BattingTeam       string             `json:"battingTeam"`
	BowlingTeam       string             `json:"bowlingTeam"`
	Team1PlayerIDs    match.IDList       `json:"team1Players"`
	Team2PlayerIDs    match.IDList       `json:"team2Players"`
	TotalOvers        int                `json:"totalOvers"`
	InningsNumber     int                `json:"inningsNumber"`
	TotalRuns         int                `json:"totalRuns"`
	Wickets           int                `json:"wickets"`
	OversBowled       float64            `json:"oversBowled"`
	BallsBowled       int                `json:"ballsBowled"`
	Status            match.MatchStatus  `json:"status"`
	FirstInningsScore *int               `json:"firstInningsScore,omitempty"`
	TargetScore       *int               `json:"targetScore,omitempty"`
	TossWinner        string             `json:"tossWinner,omitempty"`
	TossChoice        match.TossChoice   `json:"tossChoice,omitempty"`
	Striker           string             `json:"striker"`
	NonStriker        string             `json:"nonStriker"`
	Bowler            string             `json:"bowler"`
	StrikerID         *uint              `json:"strikerId,omitempty"`
	NonStrikerID      *uint              `json:"nonStrikerId,omitempty"`
	BowlerID          *uint              `json:"bowlerId,omitempty"`
	NextBatterFor     match.BatterSlot   `json:"nextBatterFor,omitempty"`
	PlayerStats       []PlayerStateEntry `json:"playerStats"`
	Timeline          []TimelineEntry    `json:"timeline"`
}

// MatchCompletedPayload is broadcast when the match reaches the terminal state.
type MatchCompletedPayload struct {
	MatchState
	ResultMessage string `json:"resultMessage"`
	Target        int    `json:"target"`
}

// BuildMatchState assembles the derived snapshot: roster-ordered player stats
// with bowling figures folded from the timeline, the transformed timeline, and
// the computed nextBatterFor.
func BuildMatchState(m *match.Match) *MatchState {
	bowlingByID := BowlingFromTimeline(m.Timeline)

	stats := make([]PlayerStateEntry, 0, len(m.PlayerStats))
	appendRoster := func(ids match.IDList) {
		for _, id := range ids {
			ps := m.PlayerStatByID(id)
			if ps == nil {
				continue
			}
			stats = append(stats, PlayerStateEntry{
				PlayerID:      ps.PlayerID,
				Name:          ps.Name,
				Team:          ps.Team,
				DidBat:        ps.DidBat,
				DidBowl:       ps.DidBowl,
				IsOut:         ps.IsOut,
				DismissalType: ps.DismissalType,
				Batting:       ps.Batting,
				Bowling:       bowlingByID[ps.PlayerID],
			})
		}
	}
	appendRoster(m.Team1PlayerIDs)
	appendRoster(m.Team2PlayerIDs)

	timeline := make([]TimelineEntry, 0, len(m.Timeline))
	for _, d := range m.Timeline {
		entry := TimelineEntry{
			Delivery:    d,
			Runs:        d.RunsOffBat,
			IsValidBall: d.ExtraType.IsValidBall(),
		}
		if d.ExtraType != match.ExtraNone {
			extrasType := string(d.ExtraType)
			if d.ExtraType == match.ExtraNoBall {
				extrasType = "noBall"
			}
			entry.Extras = &TimelineExtras{Type: extrasType, Runs: d.ExtraRuns}
		}
		timeline = append(timeline, entry)
	}

	nextBatterFor := m.NextBatterFor
	if nextBatterFor == "" {
		nextBatterFor = inferNextBatterFor(m)
	}

	return &MatchState{
		MatchID:           m.ID,
		Team1Name:         m.Team1Name,
		Team2Name:         m.Team2Name,
		BattingTeam:       m.BattingTeam,
		BowlingTeam:       m.BowlingTeam,
		Team1PlayerIDs:    m.Team1PlayerIDs,
		Team2PlayerIDs:    m.Team2PlayerIDs,
		TotalOvers:        m.TotalOvers,
		InningsNumber:     m.InningsNumber,
		TotalRuns:         m.TotalRuns,
		Wickets:           m.Wickets,
		OversBowled:       m.OversBowled,
		BallsBowled:       m.BallsBowled,
		Status:            m.Status,
		FirstInningsScore: m.FirstInningsScore,
		TargetScore:       m.TargetScore,
		TossWinner:        m.TossWinner,
		TossChoice:        m.TossChoice,
		Striker:           m.PlayerName(m.CurrentStrikerID),
		NonStriker:        m.PlayerName(m.CurrentNonStrikerID),
		Bowler:            m.PlayerName(m.CurrentBowlerID),
		StrikerID:         m.CurrentStrikerID,
		NonStrikerID:      m.CurrentNonStrikerID,
		BowlerID:          m.CurrentBowlerID,
		NextBatterFor:     nextBatterFor,
		PlayerStats:       stats,
		Timeline:          timeline,
	}
}
