// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/fanrewards/fanmarket-backend/internal/config"
	"github.com/fanrewards/fanmarket-backend/internal/models"
)

// Transferor moves fungible value between two principals. A call either
// succeeds completely or fails; the market never looks past that outcome.
type Transferor interface {
	TransferFrom(tx *gorm.DB, token *models.PaymentToken, from, to uuid.UUID, amount int64) error
}

type PaymentService struct {
	db        *gorm.DB
	config    *config.Config
	providers map[models.PaymentProviderKind]Transferor
}

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	s := &PaymentService{
		db:        db,
		config:    config,
		providers: make(map[models.PaymentProviderKind]Transferor),
	}
	s.providers[models.PaymentProviderLedger] = &LedgerTransferor{}
	s.providers[models.PaymentProviderStripe] = &StripeTransferor{}
	return s
}

// RegisterProvider overrides the transferor for a provider kind. Tests use
// this to substitute a fake.
func (s *PaymentService) RegisterProvider(kind models.PaymentProviderKind, t Transferor) {
	s.providers[kind] = t
}

// ResolveToken loads an active payment token by id.
func (s *PaymentService) ResolveToken(tx *gorm.DB, tokenID uuid.UUID) (*models.PaymentToken, error) {
	var token models.PaymentToken
	if err := tx.First(&token, "id = ?", tokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidPaymentToken
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !token.IsActive {
		return nil, ErrInvalidPaymentToken
	}
	return &token, nil
}

// TransferFrom dispatches to the token's provider. Any provider failure is
// returned as-is; callers decide how to classify it.
func (s *PaymentService) TransferFrom(tx *gorm.DB, token *models.PaymentToken, from, to uuid.UUID, amount int64) error {
	provider, ok := s.providers[token.Provider]
	if !ok {
		return fmt.Errorf("no provider registered for kind %q", token.Provider)
	}
	return provider.TransferFrom(tx, token, from, to, amount)
}

// Deposit credits a user's ledger wallet. Used by admin fixtures and tests;
// the settlement path never creates value.
func (s *PaymentService) Deposit(tokenID, userID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return ErrInvalidPrice
	}
	return creditWallet(s.db, tokenID, userID, amount)
}

// GetWalletBalance returns the user's ledger balance for a payment token,
// zero when no wallet row exists.
func (s *PaymentService) GetWalletBalance(tokenID, userID uuid.UUID) (int64, error) {
	var wallet models.Wallet
	err := s.db.Where("user_id = ? AND payment_token_id = ?", userID, tokenID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("database error: %w", err)
	}
	return wallet.Balance, nil
}

// LedgerTransferor settles against the internal wallet table, inside the
// caller's transaction.
type LedgerTransferor struct{}

func (l *LedgerTransferor) TransferFrom(tx *gorm.DB, token *models.PaymentToken, from, to uuid.UUID, amount int64) error {
	if amount <= 0 {
		return errors.New("transfer amount must be positive")
	}

	var source models.Wallet
	err := tx.Where("user_id = ? AND payment_token_id = ?", from, token.ID).First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("no %s wallet for payer", token.Symbol)
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if source.Balance < amount {
		return fmt.Errorf("insufficient %s balance: have %d, need %d", token.Symbol, source.Balance, amount)
	}

	if err := tx.Model(&source).Update("balance", source.Balance-amount).Error; err != nil {
		return fmt.Errorf("failed to debit payer: %w", err)
	}

	return creditWallet(tx, token.ID, to, amount)
}

func creditWallet(tx *gorm.DB, tokenID, userID uuid.UUID, amount int64) error {
	var wallet models.Wallet
	err := tx.Where("user_id = ? AND payment_token_id = ?", userID, tokenID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = models.Wallet{
			UserID:         userID,
			PaymentTokenID: tokenID,
			Balance:        amount,
		}
		if err := tx.Create(&wallet).Error; err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if err := tx.Model(&wallet).Update("balance", wallet.Balance+amount).Error; err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	return nil
}

// StripeTransferor settles through Stripe. Each call is atomic on Stripe's
// side; any error from the API is a failed transfer.
type StripeTransferor struct{}

func (s *StripeTransferor) TransferFrom(tx *gorm.DB, token *models.PaymentToken, from, to uuid.UUID, amount int64) error {
	if amount <= 0 {
		return errors.New("transfer amount must be positive")
	}

	currency := "usd"
	if c, ok := token.Config["currency"].(string); ok && c != "" {
		currency = c
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		Confirm:  stripe.Bool(true),
	}
	params.AddMetadata("payment_token", token.Symbol)
	params.AddMetadata("from_user", from.String())
	params.AddMetadata("to_user", to.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return fmt.Errorf("stripe transfer failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("stripe transfer not settled: status %s", pi.Status)
	}
	return nil
}
