// internal/services/token_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fanrewards/fanmarket-backend/internal/database"
	"github.com/fanrewards/fanmarket-backend/internal/models"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

const MaxRoyaltyBps = 10000

type TokenService struct {
	db *gorm.DB
}

type MintRequest struct {
	CreatorID      uuid.UUID `json:"creator_id" validate:"required"`
	InitialOwnerID uuid.UUID `json:"initial_owner_id" validate:"required"`
	RoyaltyBps     uint32    `json:"royalty_bps"`
	URI            []byte    `json:"uri"`
}

func NewTokenService(db *gorm.DB) *TokenService {
	return &TokenService{db: db}
}

// Mint allocates the next token id and writes the full asset record as one
// atomic unit. Ids are handed out by the market-settings counter: it starts
// at 0, each mint bumps it by one, and the bumped value is the new id.
func (s *TokenService) Mint(actorID uuid.UUID, req *MintRequest) (*models.Token, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Only the creator may mint in their own name.
	if actorID != req.CreatorID {
		return nil, ErrNotAuthorized
	}

	if req.RoyaltyBps > MaxRoyaltyBps {
		return nil, ErrInvalidRoyalty
	}

	var token *models.Token
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var settings models.MarketSettings
		if err := tx.Where("key = ?", models.MarketSettingsKey).First(&settings).Error; err != nil {
			return fmt.Errorf("failed to load market settings: %w", err)
		}

		if settings.NextTokenID == math.MaxUint64 {
			return ErrOverflow
		}
		nextID := settings.NextTokenID + 1

		if err := tx.Model(&settings).Update("next_token_id", nextID).Error; err != nil {
			return fmt.Errorf("failed to advance token counter: %w", err)
		}

		token = &models.Token{
			TokenID:    nextID,
			OwnerID:    req.InitialOwnerID,
			CreatorID:  req.CreatorID,
			RoyaltyBps: req.RoyaltyBps,
			URI:        req.URI,
		}
		if err := tx.Create(token).Error; err != nil {
			return fmt.Errorf("failed to create token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return token, nil
}

// GetInfo returns the full asset record. Public, no authorization.
func (s *TokenService) GetInfo(tokenID uint64) (*models.Token, error) {
	var token models.Token
	if err := s.db.Preload("Owner").Preload("Creator").
		Where("token_id = ?", tokenID).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &token, nil
}

// Transfer moves ownership without payment. The check order is part of the
// contract: existence, then recorded ownership, then the caller's identity,
// then the self-transfer rejection. A caller who is not the recorded owner
// sees ErrNotOwner, not an authorization failure.
func (s *TokenService) Transfer(actorID uuid.UUID, tokenID uint64, fromID, toID uuid.UUID) error {
	var token models.Token
	if err := s.db.Where("token_id = ?", tokenID).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if token.OwnerID != fromID {
		return ErrNotOwner
	}

	if actorID != fromID {
		return ErrNotAuthorized
	}

	if fromID == toID {
		return ErrSameOwner
	}

	if err := s.db.Model(&token).Update("owner_id", toID).Error; err != nil {
		return fmt.Errorf("failed to transfer token: %w", err)
	}
	return nil
}
