package gateway

import "errors"

// Service errors
var (
	ErrInvalidClientToken = errors.New("invalid client token")
	ErrMissingSecret      = errors.New("GATEWAY_JWT_SECRET not configured")
	ErrInvalidAPIKey      = errors.New("invalid merchant API key")
	ErrCardDeclined       = errors.New("card declined")
	ErrInvalidCardNumber  = errors.New("invalid card number: failed Luhn check")
)
