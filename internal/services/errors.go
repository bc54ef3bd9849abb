// internal/services/errors.go
package services

import "errors"

// Terminal errors for market operations. Every operation that returns one of
// these leaves all state exactly as it was before the call: multi-step writes
// run inside a single database transaction that rolls back on failure.
var (
	ErrNotAuthorized       = errors.New("caller is not authorized as the claimed principal")
	ErrTokenNotFound       = errors.New("token not found")
	ErrInvalidRoyalty      = errors.New("royalty exceeds 10000 basis points")
	ErrInvalidPrice        = errors.New("price must be positive")
	ErrInvalidPaymentToken = errors.New("no usable payment token")
	ErrOverflow            = errors.New("arithmetic overflow")
	ErrNotOwner            = errors.New("sender is not the token owner")
	ErrSameOwner           = errors.New("sender and recipient are the same owner")
	ErrPaymentFailed       = errors.New("payment transfer failed")
)
