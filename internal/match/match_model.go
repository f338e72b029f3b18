package match

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// MatchStatus tracks the match state machine:
// toss -> innings -> live <-> innings (on wicket, until replacement batter
// selected) -> innings_complete -> live/innings -> completed.
type MatchStatus string

const (
	StatusToss            MatchStatus = "toss"
	StatusInnings         MatchStatus = "innings"
	StatusLive            MatchStatus = "live"
	StatusInningsComplete MatchStatus = "innings_complete"
	StatusCompleted       MatchStatus = "completed"
)

// TossChoice is what the toss winner elected to do.
type TossChoice string

const (
	TossChoiceBat  TossChoice = "BAT"
	TossChoiceBowl TossChoice = "BOWL"
)

// ExtraType classifies runs not credited to the striker.
type ExtraType string

const (
	ExtraNone   ExtraType = "none"
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "no-ball"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "leg-bye"
)

// NormalizeExtraType canonicalizes the alternate "noBall" spelling used by
// older clients and maps the empty string to ExtraNone.
func NormalizeExtraType(s string) ExtraType {
	switch s {
	case "noBall":
		return ExtraNoBall
	case "":
		return ExtraNone
	}
	return ExtraType(s)
}

// IsValidBall reports whether a delivery of this extra type counts toward the
// 6-ball over. Wides and no-balls do not.
func (e ExtraType) IsValidBall() bool {
	return e == ExtraNone || e == ExtraBye || e == ExtraLegBye
}

// WicketType is how a batter was dismissed.
type WicketType string

const (
	WicketNone      WicketType = "none"
	WicketBowled    WicketType = "bowled"
	WicketCaught    WicketType = "caught"
	WicketLBW       WicketType = "lbw"
	WicketRunOut    WicketType = "run-out"
	WicketStumped   WicketType = "stumped"
	WicketHitWicket WicketType = "hit-wicket"
)

// BatterSlot identifies which batting slot a player occupies or which slot
// awaits a replacement.
type BatterSlot string

const (
	SlotStriker    BatterSlot = "striker"
	SlotNonStriker BatterSlot = "nonStriker"
)

// Delivery is one timeline entry: a single bowled ball. Striker and bowler are
// stamped (id and display name) at the time of the delivery because the current
// slots may change before a later derivation pass over the timeline.
type Delivery struct {
	OverNumber        int        `json:"overNumber"`
	BallInOver        int        `json:"ballInOver"`
	RunsOffBat        int        `json:"runsOffBat"`
	ExtraType         ExtraType  `json:"extraType"`
	ExtraRuns         int        `json:"extraRuns"`
	IsWicket          bool       `json:"isWicket"`
	WicketType        WicketType `json:"wicketType"`
	BatterDismissedID *uint      `json:"batterDismissedId,omitempty"`
	BatterDismissed   string     `json:"batterDismissed"`
	StrikerID         *uint      `json:"strikerId,omitempty"`
	Striker           string     `json:"striker"`
	BowlerID          *uint      `json:"bowlerId,omitempty"`
	Bowler            string     `json:"bowler"`
}

// Timeline is the append-only ordered sequence of deliveries for the current
// innings, stored as a JSONB document column.
type Timeline []Delivery

func (t Timeline) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *Timeline) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// BattingFigures is a player's batting sub-record for the current innings.
type BattingFigures struct {
	Runs          int        `json:"runs"`
	Balls         int        `json:"balls"`
	Fours         int        `json:"fours"`
	Sixes         int        `json:"sixes"`
	DismissalType WicketType `json:"dismissalType"`
}

// Reset zeroes the figures for a fresh innings.
func (b *BattingFigures) Reset() {
	*b = BattingFigures{DismissalType: WicketNone}
}

// PlayerStat is a per-match participation record, keyed by the stable player ID
// (display name retained only for rendering). Bowling figures are intentionally
// not stored here; they are derived from the timeline so they survive undo.
type PlayerStat struct {
	PlayerID      uint           `json:"playerId"`
	Name          string         `json:"name"`
	Team          string         `json:"team"`
	DidBat        bool           `json:"didBat"`
	DidBowl       bool           `json:"didBowl"`
	IsOut         bool           `json:"isOut"`
	DismissalType WicketType     `json:"dismissalType"`
	Batting       BattingFigures `json:"batting"`
}

// PlayerStatList is the set of per-match player records, stored as JSONB.
type PlayerStatList []PlayerStat

func (l PlayerStatList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *PlayerStatList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// IDList is an ordered roster of player IDs, stored as JSONB to preserve order.
type IDList []uint

func (l IDList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *IDList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return errors.New("unsupported type for JSONB scan")
}

// Match is the authoritative document for one live match. The scoring engine
// owns it for the lifetime of the match; innings counters and the timeline are
// reset when the second innings starts.
type Match struct {
	gorm.Model
	Team1Name      string      `json:"team1Name"`
	Team2Name      string      `json:"team2Name"`
	BattingTeam    string      `json:"battingTeam" gorm:"not null"`
	BowlingTeam    string      `json:"bowlingTeam" gorm:"not null"`
	Team1PlayerIDs IDList      `json:"team1Players" gorm:"type:jsonb"`
	Team2PlayerIDs IDList      `json:"team2Players" gorm:"type:jsonb"`
	TotalOvers     int         `json:"totalOvers" gorm:"default:20"`
	InningsNumber  int         `json:"inningsNumber" gorm:"default:1"`
	TotalRuns      int         `json:"totalRuns" gorm:"default:0"`
	Wickets        int         `json:"wickets" gorm:"default:0"`
	OversBowled    float64     `json:"oversBowled" gorm:"default:0"`
	BallsBowled    int         `json:"ballsBowled" gorm:"default:0"`
	Status         MatchStatus `json:"status" gorm:"index;default:'toss'"`

	CurrentStrikerID    *uint      `json:"currentStrikerId,omitempty"`
	CurrentNonStrikerID *uint      `json:"currentNonStrikerId,omitempty"`
	CurrentBowlerID     *uint      `json:"currentBowlerId,omitempty"`
	NextBatterFor       BatterSlot `json:"nextBatterFor,omitempty"`

	FirstInningsScore *int       `json:"firstInningsScore,omitempty"`
	TargetScore       *int       `json:"targetScore,omitempty"`
	TossWinner        string     `json:"tossWinner,omitempty"`
	TossChoice        TossChoice `json:"tossChoice,omitempty"`

	PlayerStats PlayerStatList `json:"playerStats" gorm:"type:jsonb"`
	Timeline    Timeline       `json:"timeline" gorm:"type:jsonb"`
}

// PlayerStatByID returns the participation record for the given player, or nil.
func (m *Match) PlayerStatByID(id uint) *PlayerStat {
	for i := range m.PlayerStats {
		if m.PlayerStats[i].PlayerID == id {
			return &m.PlayerStats[i]
		}
	}
	return nil
}

// PlayerName resolves a player id to its display name within this match.
func (m *Match) PlayerName(id *uint) string {
	if id == nil {
		return ""
	}
	if ps := m.PlayerStatByID(*id); ps != nil {
		return ps.Name
	}
	return ""
}

// BattingTeamStats returns the participation records for the side currently batting.
func (m *Match) BattingTeamStats() []*PlayerStat {
	var stats []*PlayerStat
	for i := range m.PlayerStats {
		if m.PlayerStats[i].Team == m.BattingTeam {
			stats = append(stats, &m.PlayerStats[i])
		}
	}
	return stats
}

// BattingTeamSize is the number of players on the side currently batting.
func (m *Match) BattingTeamSize() int {
	n := 0
	for i := range m.PlayerStats {
		if m.PlayerStats[i].Team == m.BattingTeam {
			n++
		}
	}
	if n > 0 {
		return n
	}
	if m.BattingTeam == m.Team1Name {
		return len(m.Team1PlayerIDs)
	}
	return len(m.Team2PlayerIDs)
}
