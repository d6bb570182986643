package card

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropin/internal/brands"
	"dropin/internal/config"
	"dropin/internal/dom"
	"dropin/internal/hostedfields"
	"dropin/internal/hostedfields/sandbox"
)

func blurEvent(field hostedfields.FieldName, state hostedfields.FieldState) hostedfields.Event {
	return hostedfields.Event{
		Kind:      hostedfields.EventBlur,
		EmittedBy: field,
		Fields:    map[hostedfields.FieldName]hostedfields.FieldState{field: state},
	}
}

func TestFocusEvent(t *testing.T) {
	t.Run("marks the group focused", func(t *testing.T) {
		f := newTestView(t)
		group := f.doc.GetElementByID("cvv-field-group")

		f.instance.emit(hostedfields.Event{Kind: hostedfields.EventFocus, EmittedBy: hostedfields.FieldCVV})

		assert.True(t, group.HasClass(classFieldGroupFocused))
	})

	t.Run("reveals the card number icon", func(t *testing.T) {
		f := newTestView(t)
		icon := f.doc.GetElementByID("card-number-icon")
		require.True(t, icon.HasClass(classHidden))

		f.instance.emit(hostedfields.Event{Kind: hostedfields.EventFocus, EmittedBy: hostedfields.FieldNumber})

		assert.False(t, icon.HasClass(classHidden))
		href, _ := icon.Attribute("xlink:href")
		assert.Equal(t, brands.GenericCardIcon, href)
	})

	t.Run("restores the brand icon when one candidate remains", func(t *testing.T) {
		f := newTestView(t)
		icon := f.doc.GetElementByID("card-number-icon")

		f.instance.emit(hostedfields.Event{
			Kind:      hostedfields.EventFocus,
			EmittedBy: hostedfields.FieldNumber,
			Cards:     []hostedfields.Card{{Type: "visa"}},
		})

		href, _ := icon.Attribute("xlink:href")
		assert.Equal(t, "#icon-visa", href)
	})
}

func TestBlurEvent(t *testing.T) {
	t.Run("removes the focused class", func(t *testing.T) {
		f := newTestView(t)
		group := f.doc.GetElementByID("number-field-group")

		f.instance.emit(hostedfields.Event{Kind: hostedfields.EventFocus, EmittedBy: hostedfields.FieldNumber})
		require.True(t, group.HasClass(classFieldGroupFocused))

		f.instance.emit(blurEvent(hostedfields.FieldNumber, hostedfields.FieldState{IsValid: true}))

		assert.False(t, group.HasClass(classFieldGroupFocused))
	})

	t.Run("shows the invalid message for a filled invalid field", func(t *testing.T) {
		f := newTestView(t)
		group := f.doc.GetElementByID("number-field-group")
		errorEl := f.doc.GetElementByID("number-field-error")

		f.instance.emit(blurEvent(hostedfields.FieldNumber, hostedfields.FieldState{}))

		assert.True(t, group.HasClass(classFieldGroupError))
		assert.False(t, errorEl.HasClass(classHidden))
		assert.Equal(t, "This card number is not valid.", errorEl.Text())
		assert.Equal(t, []string{"true"}, f.instance.attrsFor(hostedfields.FieldNumber, "aria-invalid"))
	})

	t.Run("shows the empty message at once when another frame has focus", func(t *testing.T) {
		f := newTestView(t)
		f.doc.GetElementByID("hosted-field-cvv-frame").Focus()

		f.instance.emit(blurEvent(hostedfields.FieldNumber, hostedfields.FieldState{IsEmpty: true}))

		assert.Equal(t, "Please fill out a card number.", f.doc.GetElementByID("number-field-error").Text())
		assert.Zero(t, f.sched.pendingCount())
	})

	t.Run("defers the empty message when nothing hosted has focus", func(t *testing.T) {
		f := newTestView(t)
		errorEl := f.doc.GetElementByID("number-field-error")

		f.instance.emit(blurEvent(hostedfields.FieldNumber, hostedfields.FieldState{IsEmpty: true}))

		assert.Equal(t, "", errorEl.Text())
		require.Equal(t, 1, f.sched.pendingCount())

		// Focus landed on another frame by the time the timer fires.
		f.doc.GetElementByID("hosted-field-cvv-frame").Focus()
		f.sched.fire()

		assert.Equal(t, "Please fill out a card number.", errorEl.Text())
	})

	t.Run("drops the deferred message when focus left the form", func(t *testing.T) {
		f := newTestView(t)
		errorEl := f.doc.GetElementByID("number-field-error")

		f.instance.emit(blurEvent(hostedfields.FieldNumber, hostedfields.FieldState{IsEmpty: true}))
		f.sched.fire()

		assert.Equal(t, "", errorEl.Text())
		assert.False(t, f.doc.GetElementByID("number-field-group").HasClass(classFieldGroupError))
	})

	t.Run("refocusing the field cancels the deferred message", func(t *testing.T) {
		f := newTestView(t)

		f.instance.emit(blurEvent(hostedfields.FieldNumber, hostedfields.FieldState{IsEmpty: true}))
		require.Equal(t, 1, f.sched.pendingCount())

		f.instance.emit(hostedfields.Event{Kind: hostedfields.EventFocus, EmittedBy: hostedfields.FieldNumber})

		assert.Zero(t, f.sched.pendingCount())
	})

	t.Run("valid blur shows nothing", func(t *testing.T) {
		f := newTestView(t)

		f.instance.emit(blurEvent(hostedfields.FieldCVV, hostedfields.FieldState{IsValid: true}))

		assert.False(t, f.doc.GetElementByID("cvv-field-group").HasClass(classFieldGroupError))
	})
}

func TestValidityChangeEvent(t *testing.T) {
	t.Run("clears the error once the field is potentially valid", func(t *testing.T) {
		f := newTestView(t)
		errorEl := f.doc.GetElementByID("cvv-field-error")

		f.instance.emit(blurEvent(hostedfields.FieldCVV, hostedfields.FieldState{}))
		require.Equal(t, "This security code is not valid.", errorEl.Text())

		f.instance.emit(hostedfields.Event{
			Kind:      hostedfields.EventValidityChange,
			EmittedBy: hostedfields.FieldCVV,
			Fields: map[hostedfields.FieldName]hostedfields.FieldState{
				hostedfields.FieldCVV: {IsPotentiallyValid: true},
			},
		})

		assert.Equal(t, "", errorEl.Text())
		assert.True(t, errorEl.HasClass(classHidden))
		assert.Equal(t, []hostedfields.RemoveAttributeOptions{
			{Field: hostedfields.FieldCVV, Attribute: "aria-invalid"},
		}, f.instance.removals)
	})

	t.Run("marks the frame valid", func(t *testing.T) {
		f := newTestView(t)
		frame := f.doc.GetElementByID("hosted-field-cvv-frame")

		f.instance.emit(hostedfields.Event{
			Kind:      hostedfields.EventValidityChange,
			EmittedBy: hostedfields.FieldCVV,
			Fields: map[hostedfields.FieldName]hostedfields.FieldState{
				hostedfields.FieldCVV: {IsValid: true, IsPotentiallyValid: true},
			},
		})

		assert.True(t, frame.HasClass(classFieldValid))
	})

	t.Run("number stays unmarked for an unsupported brand", func(t *testing.T) {
		f := newTestView(t)
		frame := f.doc.GetElementByID("hosted-field-number-frame")

		f.instance.emit(hostedfields.Event{
			Kind:      hostedfields.EventValidityChange,
			EmittedBy: hostedfields.FieldNumber,
			Cards:     []hostedfields.Card{{Type: "discover"}},
			Fields: map[hostedfields.FieldName]hostedfields.FieldState{
				hostedfields.FieldNumber: {IsValid: true, IsPotentiallyValid: true},
			},
		})

		assert.False(t, frame.HasClass(classFieldValid))
	})

	t.Run("pushes the requestable state", func(t *testing.T) {
		f := newTestView(t)
		f.instance.setState(validState())

		f.instance.emit(hostedfields.Event{
			Kind:      hostedfields.EventValidityChange,
			EmittedBy: hostedfields.FieldNumber,
			Cards:     []hostedfields.Card{{Type: "visa"}},
			Fields:    validState().Fields,
		})

		last, ok := f.model.lastRequestable()
		require.True(t, ok)
		assert.True(t, last.isRequestable)
		assert.Equal(t, PaymentMethodType, last.paymentMethod)
	})

	t.Run("suppresses the push while tokenizing", func(t *testing.T) {
		f := newTestView(t)
		f.view.mu.Lock()
		f.view.isTokenizing = true
		f.view.mu.Unlock()

		f.instance.emit(hostedfields.Event{
			Kind:      hostedfields.EventValidityChange,
			EmittedBy: hostedfields.FieldNumber,
			Fields: map[hostedfields.FieldName]hostedfields.FieldState{
				hostedfields.FieldNumber: {IsValid: true, IsPotentiallyValid: true},
			},
		})

		_, ok := f.model.lastRequestable()
		assert.False(t, ok)
	})
}

func TestNotEmptyEvent(t *testing.T) {
	t.Run("clears a shown error", func(t *testing.T) {
		f := newTestView(t)
		errorEl := f.doc.GetElementByID("number-field-error")

		f.instance.emit(blurEvent(hostedfields.FieldNumber, hostedfields.FieldState{}))
		require.NotEqual(t, "", errorEl.Text())

		f.instance.emit(hostedfields.Event{Kind: hostedfields.EventNotEmpty, EmittedBy: hostedfields.FieldNumber})

		assert.Equal(t, "", errorEl.Text())
	})

	t.Run("cancels a deferred empty error", func(t *testing.T) {
		f := newTestView(t)

		f.instance.emit(blurEvent(hostedfields.FieldNumber, hostedfields.FieldState{IsEmpty: true}))
		require.Equal(t, 1, f.sched.pendingCount())

		f.instance.emit(hostedfields.Event{Kind: hostedfields.EventNotEmpty, EmittedBy: hostedfields.FieldNumber})

		assert.Zero(t, f.sched.pendingCount())
	})
}

func TestCardTypeChangeEvent(t *testing.T) {
	cardTypeChange := func(cards ...hostedfields.Card) hostedfields.Event {
		return hostedfields.Event{
			Kind:      hostedfields.EventCardTypeChange,
			EmittedBy: hostedfields.FieldNumber,
			Cards:     cards,
		}
	}

	t.Run("single candidate shows the brand", func(t *testing.T) {
		f := newTestView(t)
		group := f.doc.GetElementByID("number-field-group")
		icon := f.doc.GetElementByID("card-number-icon")

		f.instance.emit(cardTypeChange(hostedfields.Card{Type: "visa"}))

		assert.True(t, group.HasClass(classFieldGroupCardTypeKnown))
		href, _ := icon.Attribute("xlink:href")
		assert.Equal(t, "#icon-visa", href)
	})

	t.Run("ambiguity restores the generic presentation", func(t *testing.T) {
		f := newTestView(t)
		group := f.doc.GetElementByID("number-field-group")
		icon := f.doc.GetElementByID("card-number-icon")

		f.instance.emit(cardTypeChange(hostedfields.Card{Type: "visa"}))
		f.instance.emit(cardTypeChange(hostedfields.Card{Type: "visa"}, hostedfields.Card{Type: "maestro"}))

		assert.False(t, group.HasClass(classFieldGroupCardTypeKnown))
		href, _ := icon.Attribute("xlink:href")
		assert.Equal(t, brands.GenericCardIcon, href)
	})

	t.Run("american express flips the cvv presentation", func(t *testing.T) {
		f := newTestView(t)
		cvvIcon := f.doc.GetElementByID("cvv-icon")
		cvvLabel := f.doc.GetElementByID("cvv-label-descriptor")

		f.instance.emit(cardTypeChange(hostedfields.Card{Type: "american-express"}))

		href, _ := cvvIcon.Attribute("xlink:href")
		assert.Equal(t, brands.CVVFrontIcon, href)
		assert.Equal(t, "(4 digits)", cvvLabel.Text())
		assert.Equal(t, []string{brands.FourDigitMask}, f.instance.attrsFor(hostedfields.FieldCVV, "placeholder"))

		f.instance.emit(cardTypeChange(hostedfields.Card{Type: "visa"}))

		href, _ = cvvIcon.Attribute("xlink:href")
		assert.Equal(t, brands.CVVBackIcon, href)
		assert.Equal(t, "(3 digits)", cvvLabel.Text())
		assert.Equal(t,
			[]string{brands.FourDigitMask, brands.ThreeDigitMask},
			f.instance.attrsFor(hostedfields.FieldCVV, "placeholder"))
	})

	t.Run("merchant cvv placeholder pins the placeholder", func(t *testing.T) {
		f := newTestView(t, withMerchant(&config.CardConfig{
			Overrides: config.CardOverrides{
				Fields: map[hostedfields.FieldName]*hostedfields.FieldOverride{
					hostedfields.FieldCVV: {Placeholder: "Security Code"},
				},
			},
		}))
		cvvLabel := f.doc.GetElementByID("cvv-label-descriptor")

		f.instance.emit(cardTypeChange(hostedfields.Card{Type: "american-express"}))

		assert.Equal(t, "(4 digits)", cvvLabel.Text())
		assert.Empty(t, f.instance.attrsFor(hostedfields.FieldCVV, "placeholder"))
	})

	t.Run("ignored for fields other than number", func(t *testing.T) {
		f := newTestView(t)
		group := f.doc.GetElementByID("number-field-group")

		f.instance.emit(hostedfields.Event{
			Kind:      hostedfields.EventCardTypeChange,
			EmittedBy: hostedfields.FieldCVV,
			Cards:     []hostedfields.Card{{Type: "visa"}},
		})

		assert.False(t, group.HasClass(classFieldGroupCardTypeKnown))
	})
}

// Drives the view through the real sandbox provider so focus transitions
// arrive as the provider emits them, blur for the old frame before focus
// for the new one.
func TestSandboxDrivenBlurEmptyError(t *testing.T) {
	newSandboxView := func(t *testing.T) (*sandbox.Instance, *dom.Document, *manualScheduler) {
		t.Helper()

		doc := dom.NewDocument()
		sched := &manualScheduler{}
		provider := sandbox.NewProvider(sandbox.ProviderOptions{})

		var inst *sandbox.Instance
		v := New(Options{
			Model:    &recordingModel{},
			Document: doc,
			Gateway:  defaultGatewayConfig(),
			Create: func(ctx context.Context, opts hostedfields.CreateOptions) (hostedfields.Instance, error) {
				created, err := provider.Create(ctx, opts)
				if err != nil {
					return nil, err
				}
				inst = created.(*sandbox.Instance)
				return created, nil
			},
			Authorization: "sandbox-client-token",
			Schedule:      sched.schedule,
		})
		require.NoError(t, v.Initialize(context.Background()))
		require.NotNil(t, inst)
		return inst, doc, sched
	}

	t.Run("moving into another frame surfaces the empty error", func(t *testing.T) {
		inst, doc, sched := newSandboxView(t)
		errorEl := doc.GetElementByID("number-field-error")

		require.NoError(t, inst.FocusField(hostedfields.FieldNumber))
		require.NoError(t, inst.FocusField(hostedfields.FieldCVV))

		assert.Equal(t, "", errorEl.Text())
		sched.fire()

		assert.Equal(t, "Please fill out a card number.", errorEl.Text())
		assert.Same(t, doc.GetElementByID("hosted-field-cvv-frame"), doc.ActiveElement())
	})

	t.Run("leaving the form entirely shows nothing", func(t *testing.T) {
		inst, doc, sched := newSandboxView(t)

		require.NoError(t, inst.FocusField(hostedfields.FieldNumber))
		require.NoError(t, inst.BlurField(hostedfields.FieldNumber))
		sched.fire()

		assert.Equal(t, "", doc.GetElementByID("number-field-error").Text())
		assert.Nil(t, doc.ActiveElement())
	})
}
