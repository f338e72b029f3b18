package player

import (
	"gorm.io/gorm"
)

// BattingCareer holds a player's cumulative batting figures across completed matches.
type BattingCareer struct {
	Matches      int `json:"matches" gorm:"default:0"`
	Innings      int `json:"innings" gorm:"default:0"`
	Runs         int `json:"runs" gorm:"default:0"`
	Balls        int `json:"balls" gorm:"default:0"`
	Fours        int `json:"fours" gorm:"default:0"`
	Sixes        int `json:"sixes" gorm:"default:0"`
	HighestScore int `json:"highestScore" gorm:"default:0"`
	Fifties      int `json:"fifties" gorm:"default:0"`
	Hundreds     int `json:"hundreds" gorm:"default:0"`
	NotOuts      int `json:"notOuts" gorm:"default:0"`
}

// BowlingCareer holds a player's cumulative bowling figures across completed matches.
// Overs is a display value derived from Balls (see scoring.OversFromBalls).
type BowlingCareer struct {
	Matches            int     `json:"matches" gorm:"default:0"`
	Innings            int     `json:"innings" gorm:"default:0"`
	Overs              float64 `json:"overs" gorm:"default:0"`
	Balls              int     `json:"balls" gorm:"default:0"`
	Runs               int     `json:"runs" gorm:"default:0"`
	Wickets            int     `json:"wickets" gorm:"default:0"`
	BestFiguresWickets int     `json:"bestFiguresWickets" gorm:"default:0"`
	BestFiguresRuns    int     `json:"bestFiguresRuns" gorm:"default:0"`
	FourWickets        int     `json:"fourWickets" gorm:"default:0"`
	FiveWickets        int     `json:"fiveWickets" gorm:"default:0"`
}

// Player is a registered player with career aggregates. Career figures are
// mutated only when a match transitions to completed; players are never
// deleted by the scoring engine.
type Player struct {
	gorm.Model
	Name    string        `json:"name" gorm:"not null;index"`
	Batting BattingCareer `json:"batting" gorm:"embedded;embeddedPrefix:batting_"`
	Bowling BowlingCareer `json:"bowling" gorm:"embedded;embeddedPrefix:bowling_"`
}
