// Package model holds the application shell state the payment sheets report
// into: async dependency readiness, collected payment methods, the visible
// error and whether a payment method is currently requestable.
package model

import (
	"sync"

	"dropin/internal/hostedfields"
)

// RequestableChange describes a change of the requestable state.
type RequestableChange struct {
	IsRequestable     bool
	PaymentMethodType string
}

// Model is the shell-side sink for sheet signals. Safe for concurrent use.
type Model struct {
	mu sync.Mutex

	guestCheckout bool

	dependenciesPending int
	failures            map[string]error

	paymentMethods []*hostedfields.Payload
	err            error

	requestable     bool
	requestableType string

	onRequestable   func(RequestableChange)
	onPaymentMethod func(*hostedfields.Payload)
}

// Options configures a shell model.
type Options struct {
	GuestCheckout bool

	// OnRequestable fires on every transition of the requestable state.
	OnRequestable func(RequestableChange)

	// OnPaymentMethod fires whenever a sheet delivers a payment method.
	OnPaymentMethod func(*hostedfields.Payload)
}

func New(opts Options) *Model {
	return &Model{
		guestCheckout:   opts.GuestCheckout,
		failures:        map[string]error{},
		onRequestable:   opts.OnRequestable,
		onPaymentMethod: opts.OnPaymentMethod,
	}
}

func (m *Model) AsyncDependencyStarting() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dependenciesPending++
}

func (m *Model) AsyncDependencyReady() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dependenciesPending > 0 {
		m.dependenciesPending--
	}
}

func (m *Model) AsyncDependencyFailed(view string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dependenciesPending > 0 {
		m.dependenciesPending--
	}
	m.failures[view] = err
}

// Ready reports whether every started dependency finished, successfully or
// not.
func (m *Model) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dependenciesPending == 0
}

// DependencyFailure returns the recorded failure for a view, or nil.
func (m *Model) DependencyFailure(view string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[view]
}

func (m *Model) AddPaymentMethod(payload *hostedfields.Payload) {
	m.mu.Lock()
	m.paymentMethods = append([]*hostedfields.Payload{payload}, m.paymentMethods...)
	notify := m.onPaymentMethod
	m.mu.Unlock()

	if notify != nil {
		notify(payload)
	}
}

// PaymentMethods lists delivered payment methods, most recent first.
func (m *Model) PaymentMethods() []*hostedfields.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*hostedfields.Payload, len(m.paymentMethods))
	copy(out, m.paymentMethods)
	return out
}

func (m *Model) ReportError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Model) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = nil
}

// Error returns the currently visible error, or nil.
func (m *Model) Error() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// SetPaymentMethodRequestable records whether a sheet could produce a
// payment method right now. Redundant pushes are dropped so listeners only
// see transitions.
func (m *Model) SetPaymentMethodRequestable(isRequestable bool, paymentMethodType string) {
	m.mu.Lock()
	if m.requestable == isRequestable && m.requestableType == paymentMethodType {
		m.mu.Unlock()
		return
	}
	m.requestable = isRequestable
	m.requestableType = paymentMethodType
	notify := m.onRequestable
	m.mu.Unlock()

	if notify != nil {
		notify(RequestableChange{IsRequestable: isRequestable, PaymentMethodType: paymentMethodType})
	}
}

// PaymentMethodRequestable reports the current requestable state and the
// payment method type it refers to.
func (m *Model) PaymentMethodRequestable() (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestable, m.requestableType
}

func (m *Model) IsGuestCheckout() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.guestCheckout
}
