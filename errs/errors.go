// Package errs defines the typed rejections every ledger and marketplace
// operation fails with. An operation either completes fully or returns one of
// these and leaves state untouched.
package errs

import "fmt"

// Symbols follow the short snake_case convention used in contract reverts.
const (
	SymbolValidation          = "input_error"
	SymbolNotFound            = "not_found"
	SymbolInvalidState        = "invalid_state"
	SymbolDuplicateListing    = "duplicate_listing"
	SymbolInsufficientBalance = "insufficient_balance"
	SymbolArithmetic          = "arithmetic_error"
	SymbolNotOwner            = "not_owner"
	SymbolNotAuthorized       = "not_authorized"
	SymbolExpired             = "deal_expired"
	SymbolPaymentMismatch     = "payment_mismatch"
)

// Error is a typed rejection with a machine-readable symbol and a human
// message. Two errors match under errors.Is when their symbols are equal.
type Error struct {
	Symbol string
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Symbol
	}
	return e.Symbol + ": " + e.Msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Symbol == t.Symbol
}

// Bare sentinels for errors.Is checks.
var (
	ErrValidation          = &Error{Symbol: SymbolValidation}
	ErrNotFound            = &Error{Symbol: SymbolNotFound}
	ErrInvalidState        = &Error{Symbol: SymbolInvalidState}
	ErrDuplicateListing    = &Error{Symbol: SymbolDuplicateListing}
	ErrInsufficientBalance = &Error{Symbol: SymbolInsufficientBalance}
	ErrArithmetic          = &Error{Symbol: SymbolArithmetic}
	ErrNotOwner            = &Error{Symbol: SymbolNotOwner}
	ErrNotAuthorized       = &Error{Symbol: SymbolNotAuthorized}
	ErrExpired             = &Error{Symbol: SymbolExpired}
	ErrPaymentMismatch     = &Error{Symbol: SymbolPaymentMismatch}
)

// New builds a rejection from a symbol and a plain message.
func New(symbol, msg string) *Error {
	return &Error{Symbol: symbol, Msg: msg}
}

// Newf builds a rejection with a formatted message.
func Newf(symbol, format string, a ...any) *Error {
	return &Error{Symbol: symbol, Msg: fmt.Sprintf(format, a...)}
}
