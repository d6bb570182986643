// Package hostedfields defines the capability contract of the hosted fields
// provider: an opaque instance that renders cross-origin inputs, reports
// their state through a single event stream and tokenizes the entered card.
// The card sheet never sees raw card data, only this surface.
package hostedfields

import "context"

// TokenizeOptions controls a tokenize call.
type TokenizeOptions struct {
	Vault            bool
	FieldsToTokenize []FieldName
}

// AttributeOptions targets a supported attribute of one hosted field.
type AttributeOptions struct {
	Field     FieldName
	Attribute string
	Value     string
}

// RemoveAttributeOptions removes an attribute from one hosted field.
type RemoveAttributeOptions struct {
	Field     FieldName
	Attribute string
}

// MessageOptions routes an accessibility message to one hosted field.
type MessageOptions struct {
	Field   FieldName
	Message string
}

// Instance is a live hosted fields instance. Mutating methods must only be
// called by the single owning view; the provider serializes its own work.
type Instance interface {
	// On subscribes a handler to one event kind. Events are delivered in
	// emission order and handlers run synchronously per event.
	On(kind EventKind, handler func(Event))

	// GetState returns the current snapshot on demand.
	GetState() State

	// Tokenize exchanges the entered card data for a payment method nonce.
	// Failures carry a provider error code (see Error).
	Tokenize(ctx context.Context, opts TokenizeOptions) (*Payload, error)

	SetAttribute(opts AttributeOptions) error
	RemoveAttribute(opts RemoveAttributeOptions) error
	SetMessage(opts MessageOptions)

	// Clear empties a field's content.
	Clear(field FieldName)

	// Focus moves input focus into a field's frame.
	Focus(field FieldName)

	// Teardown releases the instance. The instance is unusable afterwards.
	Teardown(ctx context.Context) error
}

// Creator builds a live instance from a configuration. It is the only way
// the card sheet obtains an Instance.
type Creator func(ctx context.Context, opts CreateOptions) (Instance, error)
