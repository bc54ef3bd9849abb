// internal/services/points_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fanrewards/fanmarket-backend/internal/database"
	"github.com/fanrewards/fanmarket-backend/internal/models"
)

type PointsService struct {
	db *gorm.DB
}

func NewPointsService(db *gorm.DB) *PointsService {
	return &PointsService{db: db}
}

// GetPoints returns the fan's accrued balance; a fan with no row has zero.
func (s *PointsService) GetPoints(fanID uuid.UUID) (models.U128, error) {
	var balance models.FanPoints
	err := s.db.Where("fan_id = ?", fanID).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.U128{}, nil
	}
	if err != nil {
		return models.U128{}, fmt.Errorf("database error: %w", err)
	}
	return balance.Balance, nil
}

// AwardPoints adds points to a fan's balance. Any authenticated granter may
// award points to any fan; the only gate is that the caller really is the
// claimed granter. Awarding zero is a no-op that performs no write.
func (s *PointsService) AwardPoints(actorID, granterID, fanID uuid.UUID, points models.U128) error {
	if actorID != granterID {
		return ErrNotAuthorized
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		return accruePoints(tx, fanID, points)
	})
}

// accruePoints applies a checked additive update inside the caller's
// transaction. Zero deltas never touch storage.
func accruePoints(tx *gorm.DB, fanID uuid.UUID, points models.U128) error {
	if points.IsZero() {
		return nil
	}

	var balance models.FanPoints
	err := tx.Where("fan_id = ?", fanID).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		balance = models.FanPoints{
			FanID:   fanID,
			Balance: points,
		}
		if err := tx.Create(&balance).Error; err != nil {
			return fmt.Errorf("failed to create fan points: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	total, ok := balance.Balance.AddChecked(points)
	if !ok {
		return ErrOverflow
	}

	if err := tx.Model(&balance).Update("balance", total).Error; err != nil {
		return fmt.Errorf("failed to update fan points: %w", err)
	}
	return nil
}
