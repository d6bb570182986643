package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropin/internal/hostedfields"
)

func TestDependencyLifecycle(t *testing.T) {
	m := New(Options{})

	assert.True(t, m.Ready())

	m.AsyncDependencyStarting()
	m.AsyncDependencyStarting()
	assert.False(t, m.Ready())

	m.AsyncDependencyReady()
	assert.False(t, m.Ready())

	failure := errors.New("create failed")
	m.AsyncDependencyFailed("card", failure)
	assert.True(t, m.Ready())
	assert.Equal(t, failure, m.DependencyFailure("card"))
	assert.Nil(t, m.DependencyFailure("paypal"))
}

func TestPaymentMethods(t *testing.T) {
	var delivered []*hostedfields.Payload
	m := New(Options{
		OnPaymentMethod: func(p *hostedfields.Payload) { delivered = append(delivered, p) },
	})

	first := &hostedfields.Payload{Nonce: "first"}
	second := &hostedfields.Payload{Nonce: "second"}
	m.AddPaymentMethod(first)
	m.AddPaymentMethod(second)

	methods := m.PaymentMethods()
	require.Len(t, methods, 2)
	assert.Equal(t, "second", methods[0].Nonce)
	assert.Equal(t, "first", methods[1].Nonce)
	assert.Equal(t, []*hostedfields.Payload{first, second}, delivered)
}

func TestErrorState(t *testing.T) {
	m := New(Options{})

	err := errors.New("boom")
	m.ReportError(err)
	assert.Equal(t, err, m.Error())

	m.ClearError()
	assert.Nil(t, m.Error())
}

func TestRequestableTransitions(t *testing.T) {
	var changes []RequestableChange
	m := New(Options{
		OnRequestable: func(c RequestableChange) { changes = append(changes, c) },
	})

	m.SetPaymentMethodRequestable(true, "CreditCard")
	m.SetPaymentMethodRequestable(true, "CreditCard")
	m.SetPaymentMethodRequestable(false, "CreditCard")

	require.Len(t, changes, 2)
	assert.True(t, changes[0].IsRequestable)
	assert.False(t, changes[1].IsRequestable)

	requestable, pmType := m.PaymentMethodRequestable()
	assert.False(t, requestable)
	assert.Equal(t, "CreditCard", pmType)
}

func TestGuestCheckout(t *testing.T) {
	assert.False(t, New(Options{}).IsGuestCheckout())
	assert.True(t, New(Options{GuestCheckout: true}).IsGuestCheckout())
}
