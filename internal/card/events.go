package card

import (
	"dropin/internal/brands"
	"dropin/internal/hostedfields"
)

// handleFieldEvent is the single entry point for the provider's event
// stream. Dispatch is a tagged-union switch over the event kind; each
// handler completes its DOM and flag updates before the next event is
// processed.
func (v *View) handleFieldEvent(e hostedfields.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch e.Kind {
	case hostedfields.EventFocus:
		v.onFocus(e)
	case hostedfields.EventBlur:
		v.onBlur(e)
	case hostedfields.EventValidityChange:
		v.onValidityChange(e)
	case hostedfields.EventNotEmpty:
		v.onNotEmpty(e)
	case hostedfields.EventCardTypeChange:
		v.onCardTypeChange(e)
	}
}

func (v *View) onFocus(e hostedfields.Event) {
	g := v.fields[e.EmittedBy]
	if g == nil {
		return
	}

	g.group.AddClass(classFieldGroupFocused)
	v.cancelPendingEmptyFor(e.EmittedBy)

	// Mirror provider focus into the document so blur handling can see
	// which frame holds focus.
	if g.frame != nil {
		g.frame.Focus()
	} else if g.input != nil {
		g.input.Focus()
	}

	// Focusing number or cvv restores the default (non-error) icon.
	switch e.EmittedBy {
	case hostedfields.FieldNumber:
		icon := brands.GenericCardIcon
		if len(e.Cards) == 1 {
			icon = brands.Lookup(e.Cards[0].Type).Icon
		}
		g.iconEl.SetAttribute("xlink:href", icon)
		g.iconEl.RemoveClass(classHidden)
	case hostedfields.FieldCVV:
		cvvIcon := brands.CVVBackIcon
		if len(e.Cards) == 1 {
			cvvIcon = brands.Lookup(e.Cards[0].Type).CVVIcon
		}
		g.iconEl.SetAttribute("xlink:href", cvvIcon)
		g.iconEl.RemoveClass(classHidden)
	}
}

func (v *View) onBlur(e hostedfields.Event) {
	g := v.fields[e.EmittedBy]
	if g == nil {
		return
	}

	g.group.RemoveClass(classFieldGroupFocused)

	// Focus has left this field. A focus event for the next frame may not
	// have been delivered yet; Blur only clears the active element when it
	// is still this field's.
	if g.frame != nil {
		g.frame.Blur()
	} else if g.input != nil {
		g.input.Blur()
	}

	f, ok := e.Fields[e.EmittedBy]
	if !ok {
		return
	}

	switch {
	case f.IsEmpty && !f.IsValid:
		// An empty required field shows its error only when the user moved
		// into another hosted frame. Focus transitions between frames are
		// not atomic, so when nothing hosted is focused yet the decision is
		// deferred behind a short timer.
		if v.hostedFrameFocused() {
			v.showFieldErrorLocked(e.EmittedBy, v.emptyFieldMessage(e.EmittedBy))
		} else {
			v.deferEmptyError(e.EmittedBy)
		}
	case !f.IsValid:
		v.showFieldErrorLocked(e.EmittedBy, v.invalidFieldMessage(e.EmittedBy))
	}
}

func (v *View) onValidityChange(e hostedfields.Event) {
	g := v.fields[e.EmittedBy]
	if g == nil {
		return
	}

	f, ok := e.Fields[e.EmittedBy]
	if !ok {
		return
	}

	if f.IsPotentiallyValid {
		v.hideFieldErrorLocked(e.EmittedBy)
	}

	valid := f.IsValid && f.IsPotentiallyValid
	if e.EmittedBy == hostedfields.FieldNumber {
		valid = valid && v.cardTypeSupported(e.Cards)
	}

	container := f.Container
	if container == nil {
		container = g.frame
		if container == nil {
			container = g.input
		}
	}
	if container != nil {
		container.ToggleClass(classFieldValid, valid)
	}

	// Requestable-state pushes are suppressed while a tokenize call is in
	// flight so validity flicker cannot race the submission's own outcome.
	if !v.isTokenizing {
		v.model.SetPaymentMethodRequestable(v.validateFormLocked(), PaymentMethodType)
	}
}

func (v *View) onNotEmpty(e hostedfields.Event) {
	// An error caused solely by emptiness resolves the instant content
	// appears, independent of validity.
	v.cancelPendingEmptyFor(e.EmittedBy)
	v.hideFieldErrorLocked(e.EmittedBy)
}

func (v *View) onCardTypeChange(e hostedfields.Event) {
	if e.EmittedBy != hostedfields.FieldNumber {
		return
	}

	numberGroup := v.fields[hostedfields.FieldNumber]
	if numberGroup == nil {
		return
	}

	known := len(e.Cards) == 1
	numberGroup.group.ToggleClass(classFieldGroupCardTypeKnown, known)

	info := brands.Lookup("")
	if known {
		info = brands.Lookup(e.Cards[0].Type)
	}
	numberGroup.iconEl.SetAttribute("xlink:href", info.Icon)

	cvv := v.fields[hostedfields.FieldCVV]
	if cvv == nil {
		return
	}

	cvv.iconEl.SetAttribute("xlink:href", info.CVVIcon)
	if info.CVVDigits == 4 {
		cvv.labelEl.SetText(v.strings.CVVFourDigitLabelSubheading)
	} else {
		cvv.labelEl.SetText(v.strings.CVVThreeDigitLabelSubheading)
	}

	// A merchant-pinned placeholder permanently opts out of brand-driven
	// placeholder updates.
	if v.merchant.customCVVPlaceholder() || v.instance == nil {
		return
	}
	v.instance.SetAttribute(hostedfields.AttributeOptions{
		Field:     hostedfields.FieldCVV,
		Attribute: "placeholder",
		Value:     info.CVVMask,
	})
}

// hostedFrameFocused reports whether the document's active element is one of
// this sheet's hosted field frames.
func (v *View) hostedFrameFocused() bool {
	active := v.doc.ActiveElement()
	if active == nil {
		return false
	}
	_, ok := v.hostedFrames[active]
	return ok
}

// deferEmptyError schedules the single-slot deferred empty-field error. A
// newer blur replaces the slot; the next event on the same field cancels it.
func (v *View) deferEmptyError(name hostedfields.FieldName) {
	if v.cancelPendingEmpty != nil {
		v.cancelPendingEmpty()
	}
	v.pendingEmptyField = name
	v.cancelPendingEmpty = v.schedule(emptyErrorDebounce, func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if v.pendingEmptyField != name {
			return
		}
		v.pendingEmptyField = ""
		v.cancelPendingEmpty = nil

		if v.hostedFrameFocused() {
			v.showFieldErrorLocked(name, v.emptyFieldMessage(name))
		}
	})
}

func (v *View) cancelPendingEmptyFor(name hostedfields.FieldName) {
	if v.pendingEmptyField != name || v.cancelPendingEmpty == nil {
		return
	}
	v.cancelPendingEmpty()
	v.cancelPendingEmpty = nil
	v.pendingEmptyField = ""
}
