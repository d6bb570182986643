// Package sandbox is an in-process hosted fields provider. It renders
// nothing; field content is driven programmatically through Input and focus
// moves through FocusField, with the same event stream and tokenize surface
// a real provider exposes. Intended for the sandbox server and tests.
package sandbox

import (
	"context"
	"fmt"
	"sync"

	"dropin/internal/gateway"
	"dropin/internal/hostedfields"
)

// allowedAttributes is the attribute surface a consumer may set on a field.
var allowedAttributes = map[string]struct{}{
	"placeholder":  {},
	"aria-invalid": {},
	"disabled":     {},
}

// Provider builds sandbox instances that tokenize through a gateway
// tokenizer.
type Provider struct {
	tokenizer  gateway.Tokenizer
	duplicates gateway.DuplicateChecker
	merchantID string
}

// ProviderOptions configures a sandbox provider. Tokenizer is required;
// Duplicates is optional and enables fail-on-duplicate vaulting.
type ProviderOptions struct {
	Tokenizer  gateway.Tokenizer
	Duplicates gateway.DuplicateChecker
	MerchantID string
}

func NewProvider(opts ProviderOptions) *Provider {
	tokenizer := opts.Tokenizer
	if tokenizer == nil {
		tokenizer = gateway.NewSandboxTokenizer()
	}
	return &Provider{
		tokenizer:  tokenizer,
		duplicates: opts.Duplicates,
		merchantID: opts.MerchantID,
	}
}

// Create builds a live instance. It satisfies hostedfields.Creator.
func (p *Provider) Create(_ context.Context, opts hostedfields.CreateOptions) (hostedfields.Instance, error) {
	if opts.Authorization == "" {
		return nil, &hostedfields.Error{
			Code:    "HOSTED_FIELDS_MISSING_AUTHORIZATION",
			Message: "an authorization is required to create hosted fields",
		}
	}
	if len(opts.Fields) == 0 {
		return nil, &hostedfields.Error{
			Code:    "HOSTED_FIELDS_INVALID_FIELD_SELECTOR",
			Message: "at least one field is required",
		}
	}

	inst := &Instance{
		provider: p,
		fields:   map[hostedfields.FieldName]*fieldModel{},
		handlers: map[hostedfields.EventKind][]func(hostedfields.Event){},
	}
	for name, field := range opts.Fields {
		if field.Selector == "" {
			return nil, &hostedfields.Error{
				Code:    "HOSTED_FIELDS_INVALID_FIELD_SELECTOR",
				Message: fmt.Sprintf("field %q has no selector", name),
			}
		}
		inst.fields[name] = &fieldModel{
			attrs: map[string]string{"placeholder": field.Placeholder},
		}
	}
	return inst, nil
}

// Creator returns Create as a hostedfields.Creator.
func (p *Provider) Creator() hostedfields.Creator {
	return p.Create
}

type fieldModel struct {
	value   string
	attrs   map[string]string
	message string
}

// Instance is a live sandbox hosted fields instance.
type Instance struct {
	mu       sync.Mutex
	provider *Provider
	fields   map[hostedfields.FieldName]*fieldModel
	handlers map[hostedfields.EventKind][]func(hostedfields.Event)
	focused  hostedfields.FieldName
	torn     bool
}

var _ hostedfields.Instance = (*Instance)(nil)

func (i *Instance) On(kind hostedfields.EventKind, handler func(hostedfields.Event)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.handlers[kind] = append(i.handlers[kind], handler)
}

// emit delivers events after the lock is released; handlers call back into
// the instance.
func (i *Instance) emit(events []hostedfields.Event) {
	for _, e := range events {
		i.mu.Lock()
		handlers := append([]func(hostedfields.Event){}, i.handlers[e.Kind]...)
		i.mu.Unlock()
		for _, h := range handlers {
			h(e)
		}
	}
}

// event builds an event carrying the current snapshot. Caller holds the lock.
func (i *Instance) eventLocked(kind hostedfields.EventKind, field hostedfields.FieldName) hostedfields.Event {
	state := i.stateLocked()
	return hostedfields.Event{
		Kind:      kind,
		EmittedBy: field,
		Cards:     state.Cards,
		Fields:    state.Fields,
	}
}

func (i *Instance) stateLocked() hostedfields.State {
	number := ""
	if f, ok := i.fields[hostedfields.FieldNumber]; ok {
		number = f.value
	}
	cards := detectBrands(number)

	state := hostedfields.State{
		Cards:  cards,
		Fields: map[hostedfields.FieldName]hostedfields.FieldState{},
	}
	for name, f := range i.fields {
		state.Fields[name] = fieldStateFor(name, f.value, cards)
	}
	return state
}

// GetState returns the current snapshot.
func (i *Instance) GetState() hostedfields.State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stateLocked()
}

// Input replaces a field's content and emits the resulting events: notEmpty
// on the empty-to-filled edge, cardTypeChange when the number's candidate
// set changed, validityChange when the field's validity tuple changed.
func (i *Instance) Input(field hostedfields.FieldName, value string) error {
	i.mu.Lock()
	if i.torn {
		i.mu.Unlock()
		return errTornDown()
	}
	f, ok := i.fields[field]
	if !ok {
		i.mu.Unlock()
		return errUnknownField(field)
	}

	before := i.stateLocked()
	wasEmpty := f.value == ""
	f.value = value
	after := i.stateLocked()

	var events []hostedfields.Event
	if wasEmpty && value != "" {
		events = append(events, i.eventLocked(hostedfields.EventNotEmpty, field))
	}
	if field == hostedfields.FieldNumber && !sameBrands(before.Cards, after.Cards) {
		events = append(events, i.eventLocked(hostedfields.EventCardTypeChange, field))
	}
	if before.Fields[field] != after.Fields[field] {
		events = append(events, i.eventLocked(hostedfields.EventValidityChange, field))
	}
	i.mu.Unlock()

	i.emit(events)
	return nil
}

// FocusField moves focus into a field, emitting blur for the previously
// focused field first.
func (i *Instance) FocusField(field hostedfields.FieldName) error {
	i.mu.Lock()
	if i.torn {
		i.mu.Unlock()
		return errTornDown()
	}
	if _, ok := i.fields[field]; !ok {
		i.mu.Unlock()
		return errUnknownField(field)
	}

	var events []hostedfields.Event
	if i.focused != "" && i.focused != field {
		events = append(events, i.eventLocked(hostedfields.EventBlur, i.focused))
	}
	i.focused = field
	events = append(events, i.eventLocked(hostedfields.EventFocus, field))
	i.mu.Unlock()

	i.emit(events)
	return nil
}

// BlurField removes focus from a field.
func (i *Instance) BlurField(field hostedfields.FieldName) error {
	i.mu.Lock()
	if i.torn {
		i.mu.Unlock()
		return errTornDown()
	}
	if _, ok := i.fields[field]; !ok {
		i.mu.Unlock()
		return errUnknownField(field)
	}
	if i.focused == field {
		i.focused = ""
	}
	e := i.eventLocked(hostedfields.EventBlur, field)
	i.mu.Unlock()

	i.emit([]hostedfields.Event{e})
	return nil
}

// Tokenize validates the requested fields and exchanges their content for a
// payment method payload through the provider's tokenizer.
func (i *Instance) Tokenize(ctx context.Context, opts hostedfields.TokenizeOptions) (*hostedfields.Payload, error) {
	i.mu.Lock()
	if i.torn {
		i.mu.Unlock()
		return nil, errTornDown()
	}

	state := i.stateLocked()
	fields := opts.FieldsToTokenize
	if len(fields) == 0 {
		fields = make([]hostedfields.FieldName, 0, len(i.fields))
		for name := range i.fields {
			fields = append(fields, name)
		}
	}

	var invalid []hostedfields.FieldName
	input := gateway.CardInput{}
	for _, name := range fields {
		f, ok := i.fields[name]
		if !ok {
			continue
		}
		if name != hostedfields.FieldCardholderName && !state.Fields[name].IsValid {
			invalid = append(invalid, name)
			continue
		}
		switch name {
		case hostedfields.FieldNumber:
			input.Number = f.value
		case hostedfields.FieldExpirationDate:
			input.ExpirationDate = f.value
		case hostedfields.FieldCVV:
			input.CVV = f.value
		case hostedfields.FieldPostalCode:
			input.PostalCode = f.value
		case hostedfields.FieldCardholderName:
			input.CardholderName = f.value
		}
	}
	i.mu.Unlock()

	if len(invalid) > 0 {
		return nil, &hostedfields.Error{
			Code:    hostedfields.CodeFieldsInvalid,
			Message: fmt.Sprintf("some fields are invalid: %v", invalid),
		}
	}

	if opts.Vault && i.provider.duplicates != nil {
		fp := gateway.Fingerprint(i.provider.merchantID, input.Number)
		seen, err := i.provider.duplicates.Seen(ctx, fp)
		if err != nil {
			return nil, err
		}
		if seen {
			return nil, &hostedfields.Error{
				Code:    hostedfields.CodeTokenizationFailOnDuplicate,
				Message: "this card already exists in the vault",
			}
		}
	}

	token, err := i.provider.tokenizer.Tokenize(ctx, input)
	if err != nil {
		return nil, &hostedfields.Error{
			Code:    "HOSTED_FIELDS_FAILED_TOKENIZATION",
			Message: err.Error(),
		}
	}

	cardType := token.CardType
	if cardType == "" {
		if cards := detectBrands(input.Number); len(cards) == 1 {
			cardType = cards[0].Type
		}
	}

	return &hostedfields.Payload{
		Nonce: token.Value,
		Type:  "CreditCard",
		Details: hostedfields.CardDetails{
			CardType: cardType,
			LastFour: token.LastFour,
		},
	}, nil
}

func (i *Instance) SetAttribute(opts hostedfields.AttributeOptions) error {
	if _, ok := allowedAttributes[opts.Attribute]; !ok {
		return &hostedfields.Error{
			Code:    "HOSTED_FIELDS_ATTRIBUTE_NOT_SUPPORTED",
			Message: fmt.Sprintf("attribute %q is not supported", opts.Attribute),
		}
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	f, ok := i.fields[opts.Field]
	if !ok {
		return errUnknownField(opts.Field)
	}
	f.attrs[opts.Attribute] = opts.Value
	return nil
}

func (i *Instance) RemoveAttribute(opts hostedfields.RemoveAttributeOptions) error {
	if _, ok := allowedAttributes[opts.Attribute]; !ok {
		return &hostedfields.Error{
			Code:    "HOSTED_FIELDS_ATTRIBUTE_NOT_SUPPORTED",
			Message: fmt.Sprintf("attribute %q is not supported", opts.Attribute),
		}
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	f, ok := i.fields[opts.Field]
	if !ok {
		return errUnknownField(opts.Field)
	}
	delete(f.attrs, opts.Attribute)
	return nil
}

func (i *Instance) SetMessage(opts hostedfields.MessageOptions) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if f, ok := i.fields[opts.Field]; ok {
		f.message = opts.Message
	}
}

// Attribute reads back a field attribute, for assertions and state reports.
func (i *Instance) Attribute(field hostedfields.FieldName, attribute string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	if f, ok := i.fields[field]; ok {
		return f.attrs[attribute]
	}
	return ""
}

// Message reads back a field's accessibility message.
func (i *Instance) Message(field hostedfields.FieldName) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	if f, ok := i.fields[field]; ok {
		return f.message
	}
	return ""
}

// Clear empties a field, emitting the same events real input would.
func (i *Instance) Clear(field hostedfields.FieldName) {
	i.mu.Lock()
	f, ok := i.fields[field]
	if !ok || i.torn {
		i.mu.Unlock()
		return
	}

	before := i.stateLocked()
	f.value = ""
	after := i.stateLocked()

	var events []hostedfields.Event
	if field == hostedfields.FieldNumber && !sameBrands(before.Cards, after.Cards) {
		events = append(events, i.eventLocked(hostedfields.EventCardTypeChange, field))
	}
	if before.Fields[field] != after.Fields[field] {
		events = append(events, i.eventLocked(hostedfields.EventValidityChange, field))
	}
	i.mu.Unlock()

	i.emit(events)
}

func (i *Instance) Focus(field hostedfields.FieldName) {
	_ = i.FocusField(field)
}

// Teardown releases the instance; any further use returns an error.
func (i *Instance) Teardown(context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.torn {
		return errTornDown()
	}
	i.torn = true
	i.handlers = map[hostedfields.EventKind][]func(hostedfields.Event){}
	return nil
}

func errUnknownField(field hostedfields.FieldName) error {
	return &hostedfields.Error{
		Code:    "HOSTED_FIELDS_FIELD_INVALID",
		Message: fmt.Sprintf("field %q is not configured", field),
	}
}

func errTornDown() error {
	return &hostedfields.Error{
		Code:    "METHOD_CALLED_AFTER_TEARDOWN",
		Message: "instance was torn down",
	}
}
