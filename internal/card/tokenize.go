package card

import (
	"context"

	"dropin/internal/hostedfields"
)

// RequestPaymentMethod is the shell-facing submission entry point.
func (v *View) RequestPaymentMethod(ctx context.Context) (*hostedfields.Payload, error) {
	return v.Tokenize(ctx)
}

// Tokenize validates the form and exchanges the field contents for a payment
// method payload. On rejection the offending field gets its error presented
// and the shell is told the fields are invalid; the provider is never
// called.
func (v *View) Tokenize(ctx context.Context) (*hostedfields.Payload, error) {
	v.mu.Lock()

	if v.instance == nil {
		v.mu.Unlock()
		return nil, ErrNotInitialized
	}

	if v.isTokenizing {
		v.mu.Unlock()
		return nil, ErrTokenizationInProgress
	}

	v.model.ClearError()

	state := v.instance.GetState()

	if !v.cardTypeSupported(state.Cards) {
		v.showFieldErrorLocked(hostedfields.FieldNumber, v.strings.UnsupportedCardTypeError)
		v.mu.Unlock()
		v.model.ReportError(errFieldsInvalid)
		return nil, ErrNoPaymentMethod
	}

	if name, msg, invalid := v.firstInvalidFieldLocked(state); invalid {
		v.showFieldErrorLocked(name, msg)
		v.mu.Unlock()
		v.model.ReportError(errFieldsInvalid)
		return nil, ErrNoPaymentMethod
	}

	v.isTokenizing = true
	v.element.AddClass(classSheetLoading)

	fields := v.fieldsToTokenizeLocked(state)
	vault := !v.model.IsGuestCheckout() && v.saveCardChecked()
	clearAfter := v.merchant.ClearFields()
	instance := v.instance
	v.mu.Unlock()

	payload, err := instance.Tokenize(ctx, hostedfields.TokenizeOptions{
		Vault:            vault,
		FieldsToTokenize: fields,
	})
	if err != nil {
		v.mu.Lock()
		v.isTokenizing = false
		v.element.RemoveClass(classSheetLoading)
		v.mu.Unlock()

		v.model.ReportError(err)
		return nil, err
	}

	if vault {
		payload.Vaulted = true
	}

	// Clearing hosted fields re-emits field events, so no lock is held
	// across these calls.
	if clearAfter {
		for _, name := range fields {
			instance.Clear(name)
		}
		v.clearLocalInputs()
	}

	v.model.AddPaymentMethod(payload)

	// The loading state outlives the success callback so the sheet's
	// transition can finish before the spinner drops.
	v.schedule(v.transitionDelay, func() {
		v.mu.Lock()
		v.element.RemoveClass(classSheetLoading)
		v.isTokenizing = false
		v.mu.Unlock()
	})

	return payload, nil
}

// firstInvalidFieldLocked walks fields in priority order and reports the
// first one that blocks submission, with the message to present.
func (v *View) firstInvalidFieldLocked(state hostedfields.State) (hostedfields.FieldName, string, bool) {
	for _, name := range v.order {
		g := v.fields[name]
		if g == nil {
			continue
		}

		f, ok := state.Fields[name]
		if !ok {
			continue
		}

		if name == hostedfields.FieldCardholderName {
			if g.Required && f.IsEmpty {
				return name, v.emptyFieldMessage(name), true
			}
			continue
		}

		if f.IsValid {
			continue
		}
		if f.IsEmpty {
			return name, v.emptyFieldMessage(name), true
		}
		return name, v.invalidFieldMessage(name), true
	}
	return "", "", false
}

// fieldsToTokenizeLocked lists the fields forwarded to the provider. An
// optional cardholder name left blank is omitted entirely.
func (v *View) fieldsToTokenizeLocked(state hostedfields.State) []hostedfields.FieldName {
	fields := make([]hostedfields.FieldName, 0, len(v.order))
	for _, name := range v.order {
		if name == hostedfields.FieldCardholderName {
			g := v.fields[name]
			f := state.Fields[name]
			if g != nil && !g.Required && f.IsEmpty {
				continue
			}
		}
		fields = append(fields, name)
	}
	return fields
}

func (v *View) clearLocalInputs() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, g := range v.fields {
		if g.input != nil {
			g.input.SetText("")
			g.input.SetAttribute("value", "")
		}
	}
}
