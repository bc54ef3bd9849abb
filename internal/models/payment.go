// internal/models/payment.go
package models

import (
	"github.com/google/uuid"
)

// PaymentToken is a registered fungible-value service the market can settle
// through. The market never inspects a provider beyond "transfer succeeded
// or it did not".
type PaymentToken struct {
	BaseModel
	Name     string              `json:"name" gorm:"size:100;not null"`
	Symbol   string              `json:"symbol" gorm:"uniqueIndex;size:20;not null"`
	Provider PaymentProviderKind `json:"provider" gorm:"type:varchar(20);not null"`
	Config   JSONB               `json:"config,omitempty" gorm:"type:jsonb"`
	IsActive bool                `json:"is_active" gorm:"default:true"`
}

// Wallet holds one user's balance in one ledger-provider payment token.
// Balances only move inside a settlement transaction.
type Wallet struct {
	BaseModel
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_token,priority:1"`
	PaymentTokenID uuid.UUID `json:"payment_token_id" gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_token,priority:2"`
	Balance        int64     `json:"balance" gorm:"not null;default:0"`

	// Relationships
	User         User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PaymentToken PaymentToken `json:"payment_token,omitempty" gorm:"foreignKey:PaymentTokenID"`
}
