package service

import "errors"

// Domain violations surfaced as typed errors so handlers can map them to
// status codes. The original demo swallowed most of these silently; here
// the caller decides.
var (
	ErrInvalidTransition = errors.New("invalid appointment status transition")
	ErrAlreadyPaid       = errors.New("appointment is already paid")
	ErrDepositCollected  = errors.New("deposit already collected")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrInvalidDirection  = errors.New("direction must be \"in\" or \"out\"")
	ErrInvalidAmount     = errors.New("amount must be greater than 0")
)
