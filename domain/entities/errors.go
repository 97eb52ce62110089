package entities

import "errors"

// Domain error taxonomy. Services wrap these with fmt.Errorf("...: %w", ...)
// so callers can match with errors.Is while keeping context in the message.
var (
	// ErrValidation indicates malformed or out-of-range input
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientFunds indicates a debit larger than the current balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound indicates an unknown account, match, transaction or code
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates a failed privilege check
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadySettled is the settlement idempotency guard, not a real failure
	ErrAlreadySettled = errors.New("match already settled")

	// ErrAlreadyTerminal is the transaction idempotency guard; confirm or
	// process calls on a resolved transaction are benign no-ops
	ErrAlreadyTerminal = errors.New("transaction already terminal")

	// ErrGatewayFailure indicates a payment transport failure
	ErrGatewayFailure = errors.New("payment gateway failure")

	// ErrMatchClosed indicates the match is settled or past its cutoff
	ErrMatchClosed = errors.New("match closed for betting")

	// ErrInvalidOutcome indicates an outcome the match does not define
	ErrInvalidOutcome = errors.New("invalid outcome")

	// ErrExpired indicates an expired promo code
	ErrExpired = errors.New("code expired")

	// ErrLimitReached indicates a promo code at its maximum uses
	ErrLimitReached = errors.New("code usage limit reached")

	// ErrAlreadyRedeemed indicates a second redemption by the same account
	ErrAlreadyRedeemed = errors.New("code already redeemed")

	// ErrRoundNotRunning indicates a crash action outside the running phase
	ErrRoundNotRunning = errors.New("round not running")

	// ErrAlreadyCashedOut guards against duplicate cashout of the same bet
	ErrAlreadyCashedOut = errors.New("bet already cashed out")
)
