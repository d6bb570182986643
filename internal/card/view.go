package card

import (
	"context"
	"sync"
	"time"

	"dropin/internal/dom"
	"dropin/internal/gateway"
	"dropin/internal/hostedfields"
	"dropin/internal/translations"
)

// viewName identifies this sheet in async-dependency lifecycle signals.
const viewName = "card"

// View is the card sheet. One View exclusively owns one hosted fields
// instance for its lifetime; every mutating provider call routes through
// the view so field-error state stays consistent with the markup.
type View struct {
	mu sync.Mutex

	model         ShellModel
	doc           *dom.Document
	strings       *translations.Strings
	gateway       gateway.Configuration
	merchant      merchantCardConfig
	create        hostedfields.Creator
	authorization string

	schedule        func(time.Duration, func()) func()
	transitionDelay time.Duration

	descriptors  []FieldDescriptor
	element      *dom.Element
	fields       map[hostedfields.FieldName]*fieldGroup
	order        []hostedfields.FieldName
	hostedFrames map[*dom.Element]hostedfields.FieldName

	saveCardGroup *dom.Element
	saveCardInput *dom.Element

	instance     hostedfields.Instance
	isTokenizing bool

	// pendingEmptyError is the single-slot deferred blur error, cancelled
	// by the next event on the same field.
	pendingEmptyField  hostedfields.FieldName
	cancelPendingEmpty func()
}

// New builds a card sheet view. Initialize must be called before use.
func New(opts Options) *View {
	if opts.Strings == nil {
		opts.Strings = translations.EnUS()
	}
	if opts.Schedule == nil {
		opts.Schedule = defaultSchedule
	}
	if opts.TransitionDelay == 0 {
		opts.TransitionDelay = changePaymentMethodDelay
	}

	merchant := merchantCardConfig{opts.Merchant}

	return &View{
		model:           opts.Model,
		doc:             opts.Document,
		strings:         opts.Strings,
		gateway:         opts.Gateway,
		merchant:        merchant,
		create:          opts.Create,
		authorization:   opts.Authorization,
		schedule:        opts.Schedule,
		transitionDelay: opts.TransitionDelay,
		descriptors:     buildDescriptors(opts.Gateway, merchant),
		fields:          map[hostedfields.FieldName]*fieldGroup{},
		hostedFrames:    map[*dom.Element]hostedfields.FieldName{},
	}
}

func defaultSchedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Initialize renders the sheet markup and creates the hosted fields
// instance. The async-dependency lifecycle is signalled exactly once:
// starting before creation, then ready on success or failed with the raw
// provider error.
func (v *View) Initialize(ctx context.Context) error {
	v.model.AsyncDependencyStarting()

	v.renderMarkup()

	instance, err := v.create(ctx, v.buildCreateOptions())
	if err != nil {
		v.model.AsyncDependencyFailed(viewName, err)
		return err
	}

	v.mu.Lock()
	v.instance = instance
	v.mu.Unlock()

	for _, kind := range []hostedfields.EventKind{
		hostedfields.EventFocus,
		hostedfields.EventBlur,
		hostedfields.EventValidityChange,
		hostedfields.EventNotEmpty,
		hostedfields.EventCardTypeChange,
	} {
		instance.On(kind, v.handleFieldEvent)
	}

	v.model.AsyncDependencyReady()
	return nil
}

// Element returns the sheet's root element.
func (v *View) Element() *dom.Element {
	return v.element
}

// IsTokenizing reports whether a tokenize call is in flight. Advisory: it
// gates UI affordances, it does not block callers.
func (v *View) IsTokenizing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.isTokenizing
}

// SetSaveCard toggles the save-card checkbox.
func (v *View) SetSaveCard(checked bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setSaveCardChecked(checked)
}

// GetPaymentMethod synchronously answers what this sheet would produce:
// a card payment method when the form is currently valid, nil otherwise.
func (v *View) GetPaymentMethod() *PaymentMethod {
	if !v.ValidateForm() {
		return nil
	}
	return &PaymentMethod{Type: PaymentMethodType}
}

// OnSelection focuses the cardholder name input if present, else the number
// field, after a zero-delay tick so selection-time DOM work settles first.
// No-op before initialization.
func (v *View) OnSelection() {
	v.mu.Lock()
	instance := v.instance
	var nameInput *dom.Element
	if g := v.fields[hostedfields.FieldCardholderName]; g != nil {
		nameInput = g.input
	}
	v.mu.Unlock()

	if instance == nil {
		return
	}

	v.schedule(0, func() {
		if nameInput != nil {
			nameInput.Focus()
			return
		}
		instance.Focus(hostedfields.FieldNumber)
	})
}

// Teardown releases the hosted fields instance, propagating its outcome.
func (v *View) Teardown(ctx context.Context) error {
	v.mu.Lock()
	instance := v.instance
	v.mu.Unlock()

	if instance == nil {
		return nil
	}
	return instance.Teardown(ctx)
}
