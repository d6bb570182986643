package card

import (
	"time"

	"dropin/internal/config"
	"dropin/internal/dom"
	"dropin/internal/gateway"
	"dropin/internal/hostedfields"
	"dropin/internal/translations"
)

// PaymentMethodType identifies card payment methods to the shell.
const PaymentMethodType = "CreditCard"

// Presentation classes toggled on the sheet's markup.
const (
	classSheetLoading            = "card-sheet--loading"
	classFieldGroupFocused       = "card-form__field-group--is-focused"
	classFieldGroupError         = "card-form__field-group--has-error"
	classFieldGroupCardTypeKnown = "card-form__field-group--card-type-known"
	classFieldValid              = "card-form__field--valid"
	classHidden                  = "card--hidden"
)

// changePaymentMethodDelay is the cosmetic wait for the sheet's success
// transition before the loading state clears.
const changePaymentMethodDelay = 200 * time.Millisecond

// emptyErrorDebounce delays the empty-field error after blur, long enough to
// ride out non-atomic focus transitions between hosted frames.
const emptyErrorDebounce = 150 * time.Millisecond

// ShellModel is the surface of the surrounding application shell the card
// sheet talks to.
type ShellModel interface {
	AsyncDependencyStarting()
	AsyncDependencyReady()
	AsyncDependencyFailed(view string, err error)

	AddPaymentMethod(payload *hostedfields.Payload)

	ReportError(err error)
	ClearError()

	SetPaymentMethodRequestable(isRequestable bool, paymentMethodType string)

	IsGuestCheckout() bool
}

// PaymentMethod is the synchronous answer to "what would this sheet
// produce".
type PaymentMethod struct {
	Type string `json:"type"`
}

// FieldDescriptor fixes a field's role for the lifetime of the sheet:
// whether it exists, whether it must be valid to submit, and whether its
// input is hosted in a provider frame or rendered locally. Decided once at
// configuration time.
type FieldDescriptor struct {
	Name     hostedfields.FieldName
	Hosted   bool
	Required bool
}

// fieldGroup couples a descriptor with its presentation handles.
type fieldGroup struct {
	FieldDescriptor

	group   *dom.Element // wrapper carrying state classes
	errorEl *dom.Element // visible error text node
	frame   *dom.Element // hosted input frame, nil for local fields
	input   *dom.Element // local input, nil for hosted fields
	iconEl  *dom.Element // brand / cvv icon, when the field has one
	labelEl *dom.Element // cvv digit-count descriptor
}

// Options configures a card sheet view.
type Options struct {
	Model    ShellModel
	Document *dom.Document
	Gateway  gateway.Configuration
	Merchant *config.CardConfig
	Create   hostedfields.Creator

	// Authorization is the client token forwarded to the provider.
	Authorization string

	// Strings defaults to the en_US table.
	Strings *translations.Strings

	// Schedule plans a cancellable one-shot task. Defaults to a timer;
	// tests inject a synchronous version.
	Schedule func(d time.Duration, fn func()) (cancel func())

	// TransitionDelay overrides the success-path settle wait.
	TransitionDelay time.Duration
}
