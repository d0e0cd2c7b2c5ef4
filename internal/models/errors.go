package models

import "errors"

// Rejection errors returned by engine transitions. A rejected transition
// mutates nothing and is safe to retry once the underlying condition
// changes.
var (
	ErrUnknownDish       = errors.New("unknown dish")
	ErrUnknownIngredient = errors.New("unknown ingredient")
	ErrUnknownOrder      = errors.New("unknown order")
	ErrUnknownTable      = errors.New("unknown table")
	ErrSeatOutOfRange    = errors.New("seat number out of range for table")

	ErrInsufficientStock = errors.New("insufficient ingredients")
	ErrStaleCook         = errors.New("order was received by a different cook")
	ErrCookBusy          = errors.New("cook already has an order in progress")
	ErrWrongServer       = errors.New("order belongs to a different server")
	ErrInvalidTransition = errors.New("invalid order state transition")
	ErrTableActive       = errors.New("table still has active orders")
)
