package entities

import "errors"

// Failure kinds for the rate client and conversion service. Operations
// wrap these with context via fmt.Errorf("%w: ...") so callers can branch
// with errors.Is while the message stays descriptive.
var (
	// ErrInvalidInput marks caller-side malformed arguments, detected
	// before any network call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAPIKey means the provider rejected the credential.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrRateLimit means the monthly plan quota is exhausted.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrInvalidCurrency means a requested currency code is not supported.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrPlanRestriction means the request needs a feature outside the
	// current plan tier.
	ErrPlanRestriction = errors.New("plan restriction")

	// ErrProvider is any other provider-signaled failure; the provider
	// message is passed through verbatim.
	ErrProvider = errors.New("provider error")

	// ErrNetwork is a transport-level failure (timeout, refused, DNS).
	ErrNetwork = errors.New("network error")

	// ErrMalformedResponse means the provider body did not match the
	// expected envelope shape.
	ErrMalformedResponse = errors.New("malformed provider response")
)
