// internal/models/token.go
package models

import (
	"github.com/google/uuid"
)

// Token is one minted asset. Owner is the only mutable field after mint;
// creator, royalty rate and URI are written once and never change.
type Token struct {
	BaseModel
	TokenID    uint64    `json:"token_id" gorm:"uniqueIndex;not null"`
	OwnerID    uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	CreatorID  uuid.UUID `json:"creator_id" gorm:"type:uuid;not null;index"`
	RoyaltyBps uint32    `json:"royalty_bps" gorm:"not null"`
	URI        []byte    `json:"uri" gorm:"type:bytea"`

	// Relationships
	Owner   User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Creator User `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
}

// MarketSettings is the process-wide singleton row holding the mint counter
// and the optional default payment token. The counter starts at 0 (nothing
// minted); the default payment token starts absent.
type MarketSettings struct {
	BaseModel
	Key                   string     `json:"key" gorm:"uniqueIndex;size:20;not null"`
	NextTokenID           uint64     `json:"next_token_id" gorm:"not null;default:0"`
	DefaultPaymentTokenID *uuid.UUID `json:"default_payment_token_id" gorm:"type:uuid"`

	DefaultPaymentToken *PaymentToken `json:"default_payment_token,omitempty" gorm:"foreignKey:DefaultPaymentTokenID"`
}

const MarketSettingsKey = "market"

// Sale records one settled purchase: who paid whom, how the price split, and
// which payment token moved the funds. Rows are written only for purchases
// that fully settled.
type Sale struct {
	BaseModel
	TokenID        uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	TokenNumericID uint64    `json:"token_id" gorm:"not null;index"`
	BuyerID        uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;index"`
	SellerID       uuid.UUID `json:"seller_id" gorm:"type:uuid;not null;index"`
	CreatorID      uuid.UUID `json:"creator_id" gorm:"type:uuid;not null"`
	Price          int64     `json:"price" gorm:"not null"`
	RoyaltyBps     uint32    `json:"royalty_bps" gorm:"not null"`
	RoyaltyAmount  int64     `json:"royalty_amount" gorm:"not null"`
	SellerAmount   int64     `json:"seller_amount" gorm:"not null"`
	PaymentTokenID uuid.UUID `json:"payment_token_id" gorm:"type:uuid;not null"`

	// Relationships
	Token        Token        `json:"token,omitempty" gorm:"foreignKey:TokenID"`
	Buyer        User         `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Seller       User         `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	PaymentToken PaymentToken `json:"payment_token,omitempty" gorm:"foreignKey:PaymentTokenID"`
}
