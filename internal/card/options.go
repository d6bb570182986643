package card

import (
	"strings"
	"unicode"

	"dropin/internal/brands"
	"dropin/internal/config"
	"dropin/internal/gateway"
	"dropin/internal/hostedfields"
)

// Fixed mount selectors. Merchant configuration can restyle fields but never
// move where sensitive input mounts, so selector overrides are dropped on
// the floor.
var fieldSelectors = map[hostedfields.FieldName]string{
	hostedfields.FieldNumber:         "#dropin-number",
	hostedfields.FieldExpirationDate: "#dropin-expiration-date",
	hostedfields.FieldCVV:            "#dropin-cvv",
	hostedfields.FieldPostalCode:     "#dropin-postal-code",
	hostedfields.FieldCardholderName: "#dropin-cardholder-name",
}

const numberPlaceholder = "•••• •••• •••• ••••"

// buildDescriptors decides which logical fields exist for this sheet, in
// submission priority order. Number and expiration date are always present;
// cvv and postal code follow the gateway's challenges unless the merchant
// nulls them; cardholder name is merchant opt-in.
func buildDescriptors(gw gateway.Configuration, cfg merchantCardConfig) []FieldDescriptor {
	descriptors := []FieldDescriptor{
		{Name: hostedfields.FieldNumber, Hosted: true, Required: true},
		{Name: hostedfields.FieldExpirationDate, Hosted: true, Required: true},
	}

	if gw.HasChallenge(gateway.ChallengeCVV) && !cfg.overrideNulled(hostedfields.FieldCVV) {
		descriptors = append(descriptors, FieldDescriptor{Name: hostedfields.FieldCVV, Hosted: true, Required: true})
	}
	if gw.HasChallenge(gateway.ChallengePostalCode) && !cfg.overrideNulled(hostedfields.FieldPostalCode) {
		descriptors = append(descriptors, FieldDescriptor{Name: hostedfields.FieldPostalCode, Hosted: true, Required: true})
	}
	if cfg.HasCardholderName() {
		descriptors = append(descriptors, FieldDescriptor{
			Name:     hostedfields.FieldCardholderName,
			Hosted:   false,
			Required: cfg.CardholderNameRequired(),
		})
	}

	return descriptors
}

// buildCreateOptions produces the exact configuration handed to the
// provider: default per-field options with merchant overrides shallow-merged
// on top, except selector which is always the fixed default.
func (v *View) buildCreateOptions() hostedfields.CreateOptions {
	fields := map[hostedfields.FieldName]hostedfields.FieldOptions{}

	for _, desc := range v.descriptors {
		opts := hostedfields.FieldOptions{Selector: fieldSelectors[desc.Name]}

		switch desc.Name {
		case hostedfields.FieldNumber:
			opts.Placeholder = numberPlaceholder
		case hostedfields.FieldExpirationDate:
			opts.Placeholder = v.strings.ExpirationDatePlaceholder
		case hostedfields.FieldCVV:
			opts.Placeholder = brands.ThreeDigitMask
		}

		if ov := v.merchant.overrideFor(desc.Name); ov != nil {
			if ov.Placeholder != "" {
				opts.Placeholder = ov.Placeholder
			}
			if ov.MaxLength != 0 {
				opts.MaxLength = ov.MaxLength
			}
			if ov.MinLength != 0 {
				opts.MinLength = ov.MinLength
			}
		}

		fields[desc.Name] = opts
	}

	return hostedfields.CreateOptions{
		Authorization: v.authorization,
		Fields:        fields,
		Styles:        v.buildStyles(),
	}
}

// baseStyles is the sheet's fixed style sheet.
func baseStyles() hostedfields.Styles {
	return hostedfields.Styles{
		"input": {Props: map[string]string{
			"font-size":   "16px",
			"font-family": "-apple-system, BlinkMacSystemFont, 'Helvetica Neue', Helvetica, Arial, sans-serif",
			"color":       "#000000",
		}},
		":focus": {Props: map[string]string{
			"color": "#000000",
		}},
	}
}

// buildStyles merges merchant style overrides over the base sheet. A state
// mapped to null is removed; a class-name override replaces the state's
// rule; a property map merges over the base properties with camelCase names
// normalized to CSS form. One rule is forced regardless of overrides:
// input::-ms-clear stays transparent.
func (v *View) buildStyles() hostedfields.Styles {
	styles := baseStyles()

	for state, override := range v.merchant.styleOverrides() {
		if override == nil {
			delete(styles, state)
			continue
		}
		if override.Class != "" {
			styles[state] = hostedfields.StyleRule{Class: override.Class}
			continue
		}

		rule := styles[state]
		if rule.Props == nil {
			rule.Props = map[string]string{}
		}
		for prop, value := range override.Props {
			rule.Props[normalizeCSSProperty(prop)] = value
		}
		rule.Class = ""
		styles[state] = rule
	}

	styles["input::-ms-clear"] = hostedfields.StyleRule{
		Props: map[string]string{"color": "transparent"},
	}

	return styles
}

// normalizeCSSProperty folds camelCase property names ("fontFamily") onto
// their CSS form ("font-family").
func normalizeCSSProperty(prop string) string {
	var b strings.Builder
	for _, r := range prop {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsEnabled reports whether the card sheet is available: the merchant must
// not have disabled card payments. An empty gateway allow-list means every
// brand is accepted, so it never disables the sheet.
func IsEnabled(cfg *config.CardConfig) bool {
	return !merchantCardConfig{cfg}.disabled()
}
