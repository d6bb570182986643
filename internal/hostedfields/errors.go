package hostedfields

// Provider error codes surfaced through tokenize rejections. They pass
// through the card sheet to the application shell unchanged.
const (
	// CodeTokenizationFailOnDuplicate signals the gateway refused to vault
	// an already-vaulted card.
	CodeTokenizationFailOnDuplicate = "HOSTED_FIELDS_TOKENIZATION_FAIL_ON_DUPLICATE"

	// CodeFieldsInvalid is the coarse code reported to the shell when local
	// validation rejects a submission.
	CodeFieldsInvalid = "hostedFieldsFieldsInvalidError"
)

// Error is a coded provider error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// ErrorCode extracts the provider code from err, or "" when err carries none.
func ErrorCode(err error) string {
	if perr, ok := err.(*Error); ok {
		return perr.Code
	}
	return ""
}
