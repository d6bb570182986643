package card

import "dropin/internal/hostedfields"

// showFieldError marks a field group as erroneous, writes the message into
// its error node, and flags the input invalid for assistive tech. Hosted
// fields get aria-invalid and the message routed through the provider;
// local fields get the attribute set directly on their input.
func (v *View) showFieldErrorLocked(name hostedfields.FieldName, message string) {
	g := v.fields[name]
	if g == nil {
		return
	}

	g.group.AddClass(classFieldGroupError)
	g.errorEl.SetText(message)
	g.errorEl.RemoveClass(classHidden)

	if g.Hosted {
		if v.instance == nil {
			return
		}
		v.instance.SetAttribute(hostedfields.AttributeOptions{
			Field:     name,
			Attribute: "aria-invalid",
			Value:     "true",
		})
		v.instance.SetMessage(hostedfields.MessageOptions{
			Field:   name,
			Message: message,
		})
		return
	}

	if g.input != nil {
		g.input.SetAttribute("aria-invalid", "true")
	}
}

// hideFieldError is the exact inverse of showFieldError, via the matching
// routing rule.
func (v *View) hideFieldErrorLocked(name hostedfields.FieldName) {
	g := v.fields[name]
	if g == nil {
		return
	}

	g.group.RemoveClass(classFieldGroupError)
	g.errorEl.SetText("")
	g.errorEl.AddClass(classHidden)

	if g.Hosted {
		if v.instance == nil {
			return
		}
		v.instance.RemoveAttribute(hostedfields.RemoveAttributeOptions{
			Field:     name,
			Attribute: "aria-invalid",
		})
		v.instance.SetMessage(hostedfields.MessageOptions{
			Field:   name,
			Message: "",
		})
		return
	}

	if g.input != nil {
		g.input.RemoveAttribute("aria-invalid")
	}
}

// emptyFieldMessage and invalidFieldMessage route per-field strings.
func (v *View) emptyFieldMessage(name hostedfields.FieldName) string {
	switch name {
	case hostedfields.FieldNumber:
		return v.strings.FieldEmptyForNumber
	case hostedfields.FieldExpirationDate:
		return v.strings.FieldEmptyForExpirationDate
	case hostedfields.FieldCVV:
		return v.strings.FieldEmptyForCvv
	case hostedfields.FieldPostalCode:
		return v.strings.FieldEmptyForPostalCode
	case hostedfields.FieldCardholderName:
		return v.strings.FieldEmptyForCardholderName
	}
	return ""
}

func (v *View) invalidFieldMessage(name hostedfields.FieldName) string {
	switch name {
	case hostedfields.FieldNumber:
		return v.strings.FieldInvalidForNumber
	case hostedfields.FieldExpirationDate:
		return v.strings.FieldInvalidForExpirationDate
	case hostedfields.FieldCVV:
		return v.strings.FieldInvalidForCvv
	case hostedfields.FieldPostalCode:
		return v.strings.FieldInvalidForPostalCode
	case hostedfields.FieldCardholderName:
		return v.strings.FieldInvalidForCardholderName
	}
	return ""
}
