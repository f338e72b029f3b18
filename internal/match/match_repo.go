package match

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines methods to interact with match documents
type MatchRepository interface {
	CreateMatch(match *Match) error
	GetMatchByID(id uint) (*Match, error)
	UpdateMatch(match *Match) error

	// Transaction support
	WithTransaction(txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	err := txFunc(txRepo)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// CreateMatch creates a new match document
func (r *GormMatchRepository) CreateMatch(match *Match) error {
	return r.db.Create(match).Error
}

// GetMatchByID retrieves a match by ID. Returns (nil, nil) when no record exists.
func (r *GormMatchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	result := r.db.First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &m, nil
}

// UpdateMatch persists the full match document. The scoring engine always
// writes the whole document so a delivery is applied all-or-nothing.
func (r *GormMatchRepository) UpdateMatch(match *Match) error {
	return r.db.Save(match).Error
}
