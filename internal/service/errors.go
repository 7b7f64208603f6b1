package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized       = errors.New("invalid POSTKEY")
	ErrInvalidSender      = errors.New("invalid sender")
	ErrAmountNotParsed    = errors.New("amount not found in SMS")
	ErrConcurrentUpdate   = errors.New("order already updated by a concurrent request")
	ErrBelowMinimumAmount = errors.New("order total below minimum order amount")
)

// OrderNotFoundError is returned when no pending order's payment reference
// appears in the parsed SMS text, or when a status lookup misses. On a
// replayed webhook delivery this is the expected, harmless outcome: the
// order already left Pending on the first delivery.
type OrderNotFoundError struct {
	SearchedText string
}

func (e *OrderNotFoundError) Error() string {
	return "order not found"
}

// AmountMismatchError carries both amounts for manual reconciliation.
type AmountMismatchError struct {
	Received float64
	Expected int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("amount mismatch: received %v, expected %d", e.Received, e.Expected)
}
