// Package services defines the business logic for accounts, usage limits,
// and support ticketing. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages should be performed at the bot/handler layer.
package services

import "errors"

var (
	// ErrUserNotFound indicates the referenced Telegram user has never
	// contacted the bot.
	ErrUserNotFound = errors.New("user not found")

	// ErrBanned is returned when a banned user attempts any bot action.
	ErrBanned = errors.New("user is banned")

	// ErrQuotaExceeded is returned when the user's daily ceiling is reached.
	ErrQuotaExceeded = errors.New("daily quota exceeded")

	// ErrFlooding is returned when the fixed-window burst limit rejects a
	// request; it is always wrapped together with the remaining wait time.
	ErrFlooding = errors.New("too many requests in window")

	// ErrTicketNotFound indicates the requested ticket does not exist.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketIDExhausted is returned when ticket ID generation collided on
	// every attempt; no ticket is created in that case.
	ErrTicketIDExhausted = errors.New("could not generate unique ticket id")

	// ErrNotAgent is returned when an agent-only operation is invoked by a
	// user that is not registered as an agent.
	ErrNotAgent = errors.New("user is not an agent")

	// ErrBadStatus is returned for a ticket status outside open/resolved/closed.
	ErrBadStatus = errors.New("invalid ticket status")
)
