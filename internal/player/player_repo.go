package player

import (
	"errors"

	"gorm.io/gorm"
)

// PlayerRepository defines methods to interact with player records.
type PlayerRepository interface {
	CreatePlayer(player *Player) error
	GetPlayerByID(id uint) (*Player, error)
	GetPlayersByIDs(ids []uint) ([]Player, error)
	GetPlayers() ([]Player, error)
	UpdatePlayer(player *Player) error
}

// GormPlayerRepository implements PlayerRepository using GORM
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewGormPlayerRepository creates a new GormPlayerRepository
func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

// CreatePlayer creates a new player
func (r *GormPlayerRepository) CreatePlayer(player *Player) error {
	return r.db.Create(player).Error
}

// GetPlayerByID retrieves a player by ID. Returns (nil, nil) when no record exists.
func (r *GormPlayerRepository) GetPlayerByID(id uint) (*Player, error) {
	var p Player
	result := r.db.First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &p, nil
}

// GetPlayersByIDs retrieves all players matching the given IDs. Missing IDs are
// silently skipped; callers that care compare lengths.
func (r *GormPlayerRepository) GetPlayersByIDs(ids []uint) ([]Player, error) {
	var players []Player
	if len(ids) == 0 {
		return players, nil
	}
	result := r.db.Where("id IN ?", ids).Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}
	return players, nil
}

// GetPlayers retrieves all players sorted by name
func (r *GormPlayerRepository) GetPlayers() ([]Player, error) {
	var players []Player
	result := r.db.Order("name ASC").Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}
	return players, nil
}

// UpdatePlayer persists changes to an existing player
func (r *GormPlayerRepository) UpdatePlayer(player *Player) error {
	return r.db.Save(player).Error
}
