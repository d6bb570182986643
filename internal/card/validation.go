package card

import "dropin/internal/hostedfields"

// ValidateForm answers "is the form submittable right now". Safe to call at
// any time; before initialization it reports false.
func (v *View) ValidateForm() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.validateFormLocked()
}

// validateFormLocked is a pure predicate over the current provider snapshot:
// every active required field must be valid, number additionally needs a
// supported brand, and cardholder name (when required) must be non-empty.
func (v *View) validateFormLocked() bool {
	if v.instance == nil {
		return false
	}

	state := v.instance.GetState()

	for _, name := range v.order {
		g := v.fields[name]
		f, ok := state.Fields[name]

		if name == hostedfields.FieldCardholderName {
			if g.Required && (!ok || f.IsEmpty) {
				return false
			}
			continue
		}

		if !ok || !f.IsValid {
			return false
		}
		if name == hostedfields.FieldNumber && !v.cardTypeSupported(state.Cards) {
			return false
		}
	}

	return true
}

// cardTypeSupported reports whether exactly one brand candidate remains and
// the gateway accepts it. Brand support is independent of challenge
// configuration.
func (v *View) cardTypeSupported(cards []hostedfields.Card) bool {
	if len(cards) != 1 {
		return false
	}
	return v.gateway.SupportsCardType(cards[0].Type)
}
