package domain

import "errors"

// Venue errors.
var (
	ErrConnectionFailed      = errors.New("connection failed")
	ErrAuthenticationFailed  = errors.New("authentication failed")
	ErrSubscriptionFailed    = errors.New("subscription failed")
	ErrOrderSubmissionFailed = errors.New("order submission failed")
	ErrRateLimitExceeded     = errors.New("rate limit exceeded")
	ErrWebSocket             = errors.New("websocket error")
	ErrParse                 = errors.New("parse error")
)

// Gateway errors.
var (
	ErrNoVenuesConfigured      = errors.New("no venues configured")
	ErrInvalidSymbol           = errors.New("invalid symbol")
	ErrChannelCapacityExceeded = errors.New("channel capacity exceeded")
	ErrVenueNotFound           = errors.New("venue not found")
	ErrChannelSendFailed       = errors.New("failed to send data through channel")
	ErrNotRunning              = errors.New("gateway not running")
)

// Book errors.
var (
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidSize      = errors.New("invalid size")
	ErrInvalidBookState = errors.New("invalid book state")
)
