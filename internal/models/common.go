// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// U128 is a 128-bit unsigned integer column, stored as a decimal string so
// the full range survives the round trip through the database. Arithmetic
// runs on a 256-bit intermediate and is rejected once the result no longer
// fits in 128 bits.
type U128 struct {
	v uint256.Int
}

func NewU128(v uint64) U128 {
	var u U128
	u.v.SetUint64(v)
	return u
}

func ParseU128(s string) (U128, error) {
	n, err := uint256.FromDecimal(s)
	if err != nil {
		return U128{}, fmt.Errorf("invalid u128 %q: %w", s, err)
	}
	if n.BitLen() > 128 {
		return U128{}, fmt.Errorf("value %q exceeds 128 bits", s)
	}
	return U128{v: *n}, nil
}

// AddChecked returns the sum, or ok=false when the result would wrap past
// 128 bits.
func (u U128) AddChecked(other U128) (U128, bool) {
	var sum uint256.Int
	if _, overflow := sum.AddOverflow(&u.v, &other.v); overflow {
		return U128{}, false
	}
	if sum.BitLen() > 128 {
		return U128{}, false
	}
	return U128{v: sum}, true
}

func (u U128) IsZero() bool {
	return u.v.IsZero()
}

func (u U128) Cmp(other U128) int {
	return u.v.Cmp(&other.v)
}

func (u U128) Uint64() uint64 {
	return u.v.Uint64()
}

func (u U128) String() string {
	return u.v.Dec()
}

func (u U128) Value() (driver.Value, error) {
	return u.v.Dec(), nil
}

func (u *U128) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*u = U128{}
		return nil
	case int64:
		if v < 0 {
			return fmt.Errorf("cannot scan negative value %d into U128", v)
		}
		*u = NewU128(uint64(v))
		return nil
	case []byte:
		parsed, err := ParseU128(string(v))
		if err != nil {
			return err
		}
		*u = parsed
		return nil
	case string:
		parsed, err := ParseU128(v)
		if err != nil {
			return err
		}
		*u = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into U128", value)
	}
}

func (u U128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.v.Dec())
}

func (u *U128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseU128(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Enums
type UserType string

const (
	UserTypeCreator UserType = "creator"
	UserTypeFan     UserType = "fan"
	UserTypeAdmin   UserType = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type PaymentProviderKind string

const (
	PaymentProviderLedger PaymentProviderKind = "ledger"
	PaymentProviderStripe PaymentProviderKind = "stripe"
)
