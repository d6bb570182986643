package card

import (
	"errors"

	"dropin/internal/hostedfields"
)

// Service errors
var (
	// ErrNoPaymentMethod rejects a submission that failed local validation.
	ErrNoPaymentMethod = errors.New("no payment method is available")

	// ErrNotInitialized is returned when the sheet is used before the
	// provider instance exists.
	ErrNotInitialized = errors.New("card sheet is not initialized")

	// ErrTokenizationInProgress rejects a submission started while another
	// one is still in flight.
	ErrTokenizationInProgress = errors.New("a tokenization is already in progress")
)

// errFieldsInvalid is the coarse signal sent to the shell's error sink when
// local validation rejects a submission. The fine-grained message goes to
// the failing field instead.
var errFieldsInvalid = &hostedfields.Error{Code: hostedfields.CodeFieldsInvalid}
