package hostedfields

import "dropin/internal/dom"

// FieldName identifies a logical field in the card form.
type FieldName string

const (
	FieldNumber         FieldName = "number"
	FieldExpirationDate FieldName = "expirationDate"
	FieldCVV            FieldName = "cvv"
	FieldPostalCode     FieldName = "postalCode"
	FieldCardholderName FieldName = "cardholderName"
)

// AllFields lists every logical field in submission priority order.
var AllFields = []FieldName{
	FieldNumber,
	FieldExpirationDate,
	FieldCVV,
	FieldPostalCode,
	FieldCardholderName,
}

// Card is a candidate brand detected from the entered digits.
type Card struct {
	Type string `json:"type"`
}

// FieldState is the observed state of a single field.
type FieldState struct {
	IsEmpty            bool         `json:"isEmpty"`
	IsValid            bool         `json:"isValid"`
	IsPotentiallyValid bool         `json:"isPotentiallyValid"`
	Container          *dom.Element `json:"-"`
}

// State is a read-only snapshot of the whole form. Cards is ordered by the
// provider's detection confidence.
type State struct {
	Cards  []Card                   `json:"cards"`
	Fields map[FieldName]FieldState `json:"fields"`
}

// EventKind tags the events delivered on the shared field event stream.
type EventKind int

const (
	EventFocus EventKind = iota
	EventBlur
	EventValidityChange
	EventNotEmpty
	EventCardTypeChange
)

func (k EventKind) String() string {
	switch k {
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventValidityChange:
		return "validityChange"
	case EventNotEmpty:
		return "notEmpty"
	case EventCardTypeChange:
		return "cardTypeChange"
	}
	return "unknown"
}

// Event is a single field event. EmittedBy identifies the source field; the
// rest of the payload is the state snapshot at emission time.
type Event struct {
	Kind      EventKind
	EmittedBy FieldName
	Cards     []Card
	Fields    map[FieldName]FieldState
}

// CardDetails describes the tokenized card in a payload.
type CardDetails struct {
	CardType string `json:"cardType"`
	LastFour string `json:"lastFour"`
}

// Payload is the result of a successful tokenization.
type Payload struct {
	Nonce   string      `json:"nonce"`
	Type    string      `json:"type"`
	Details CardDetails `json:"details"`
	Vaulted bool        `json:"vaulted,omitempty"`
}
