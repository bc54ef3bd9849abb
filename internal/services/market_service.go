// internal/services/market_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"gorm.io/gorm"

	"github.com/fanrewards/fanmarket-backend/internal/database"
	"github.com/fanrewards/fanmarket-backend/internal/models"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

type MarketService struct {
	db             *gorm.DB
	paymentService *PaymentService
}

type RegisterPaymentTokenRequest struct {
	Name     string                     `json:"name" validate:"required,min=2,max=100"`
	Symbol   string                     `json:"symbol" validate:"required,min=2,max=20"`
	Provider models.PaymentProviderKind `json:"provider" validate:"required"`
	Config   map[string]interface{}     `json:"config,omitempty"`
}

func NewMarketService(db *gorm.DB, paymentService *PaymentService) *MarketService {
	return &MarketService{
		db:             db,
		paymentService: paymentService,
	}
}

// Buy settles a purchase: splits the price between creator royalty and
// seller proceeds, runs both payment transfers, and only then flips
// ownership and accrues loyalty points. Everything happens in one database
// transaction; a failure at any step leaves no trace.
func (s *MarketService) Buy(actorID uuid.UUID, tokenID uint64, buyerID uuid.UUID, price int64, paymentTokenOverride *uuid.UUID) (*models.Sale, error) {
	if actorID != buyerID {
		return nil, ErrNotAuthorized
	}

	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	var sale *models.Sale
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var token models.Token
		if err := tx.Where("token_id = ?", tokenID).First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if token.OwnerID == buyerID {
			return ErrSameOwner
		}

		// The payment token must resolve before anything moves.
		payToken, err := s.resolvePaymentToken(tx, paymentTokenOverride)
		if err != nil {
			return err
		}

		royalty, sellerAmount, err := royaltySplit(price, token.RoyaltyBps)
		if err != nil {
			return err
		}

		// Royalty to the creator, remainder to the current owner. A zero
		// amount is a settled no-op and never reaches the provider.
		if royalty > 0 {
			if err := s.paymentService.TransferFrom(tx, payToken, buyerID, token.CreatorID, royalty); err != nil {
				return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
			}
		}
		if sellerAmount > 0 {
			if err := s.paymentService.TransferFrom(tx, payToken, buyerID, token.OwnerID, sellerAmount); err != nil {
				return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
			}
		}

		sellerID := token.OwnerID
		if err := tx.Model(&token).Update("owner_id", buyerID).Error; err != nil {
			return fmt.Errorf("failed to transfer ownership: %w", err)
		}

		// One loyalty point per price unit.
		if err := accruePoints(tx, buyerID, models.NewU128(uint64(price))); err != nil {
			return err
		}

		sale = &models.Sale{
			TokenID:        token.ID,
			TokenNumericID: token.TokenID,
			BuyerID:        buyerID,
			SellerID:       sellerID,
			CreatorID:      token.CreatorID,
			Price:          price,
			RoyaltyBps:     token.RoyaltyBps,
			RoyaltyAmount:  royalty,
			SellerAmount:   sellerAmount,
			PaymentTokenID: payToken.ID,
		}
		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to record sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *MarketService) resolvePaymentToken(tx *gorm.DB, override *uuid.UUID) (*models.PaymentToken, error) {
	if override != nil {
		return s.paymentService.ResolveToken(tx, *override)
	}

	var settings models.MarketSettings
	if err := tx.Where("key = ?", models.MarketSettingsKey).First(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to load market settings: %w", err)
	}
	if settings.DefaultPaymentTokenID == nil {
		return nil, ErrInvalidPaymentToken
	}
	return s.paymentService.ResolveToken(tx, *settings.DefaultPaymentTokenID)
}

// royaltySplit computes floor(price * royaltyBps / 10000) on a widened
// intermediate, so the product cannot wrap before the division. The rounding
// remainder always accrues to the seller: royalty + sellerAmount == price by
// construction.
func royaltySplit(price int64, royaltyBps uint32) (int64, int64, error) {
	p := new(uint256.Int).SetUint64(uint64(price))
	bps := new(uint256.Int).SetUint64(uint64(royaltyBps))
	product := new(uint256.Int).Mul(p, bps)
	quotient := new(uint256.Int).Div(product, uint256.NewInt(MaxRoyaltyBps))

	if !quotient.IsUint64() || quotient.Uint64() > math.MaxInt64 {
		return 0, 0, ErrOverflow
	}
	royalty := int64(quotient.Uint64())

	sellerAmount := price - royalty
	if sellerAmount < 0 {
		return 0, 0, ErrOverflow
	}
	return royalty, sellerAmount, nil
}

// GetDefaultPaymentToken returns the market's default payment token, or nil
// when none has been configured.
func (s *MarketService) GetDefaultPaymentToken() (*models.PaymentToken, error) {
	var settings models.MarketSettings
	if err := s.db.Preload("DefaultPaymentToken").
		Where("key = ?", models.MarketSettingsKey).First(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to load market settings: %w", err)
	}
	return settings.DefaultPaymentToken, nil
}

// SetDefaultPaymentToken points the market at a registered, active payment
// token. Admin-gated at the transport layer.
func (s *MarketService) SetDefaultPaymentToken(tokenID uuid.UUID) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if _, err := s.paymentService.ResolveToken(tx, tokenID); err != nil {
			return err
		}

		var settings models.MarketSettings
		if err := tx.Where("key = ?", models.MarketSettingsKey).First(&settings).Error; err != nil {
			return fmt.Errorf("failed to load market settings: %w", err)
		}

		if err := tx.Model(&settings).Update("default_payment_token_id", tokenID).Error; err != nil {
			return fmt.Errorf("failed to set default payment token: %w", err)
		}
		return nil
	})
}

// RegisterPaymentToken adds a payment token to the registry.
func (s *MarketService) RegisterPaymentToken(req *RegisterPaymentTokenRequest) (*models.PaymentToken, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Provider != models.PaymentProviderLedger && req.Provider != models.PaymentProviderStripe {
		return nil, fmt.Errorf("unknown payment provider %q", req.Provider)
	}

	token := &models.PaymentToken{
		Name:     req.Name,
		Symbol:   req.Symbol,
		Provider: req.Provider,
		Config:   models.JSONB(req.Config),
		IsActive: true,
	}
	if err := s.db.Create(token).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("payment token symbol %q already registered", req.Symbol)
		}
		return nil, fmt.Errorf("failed to register payment token: %w", err)
	}
	return token, nil
}

// ListSales returns settled sales, newest first.
func (s *MarketService) ListSales(params utils.PaginationParams) ([]models.Sale, int64, error) {
	query := s.db.Model(&models.Sale{}).
		Preload("Buyer").Preload("Seller").Preload("PaymentToken")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	allowedSortFields := []string{"created_at", "price", "token_numeric_id"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var sales []models.Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sales: %w", err)
	}

	return sales, total, nil
}
