// Package translations holds the localized string table for the card sheet.
// Only en_US ships here; the surrounding application swaps tables per locale.
package translations

// Strings is the full set of user-visible messages the card sheet needs.
type Strings struct {
	FieldEmptyForNumber           string
	FieldInvalidForNumber         string
	FieldEmptyForExpirationDate   string
	FieldInvalidForExpirationDate string
	FieldEmptyForCvv              string
	FieldInvalidForCvv            string
	FieldEmptyForPostalCode       string
	FieldInvalidForPostalCode     string
	FieldEmptyForCardholderName   string
	FieldInvalidForCardholderName string
	UnsupportedCardTypeError      string
	ExpirationDatePlaceholder     string
	CVVThreeDigitLabelSubheading  string
	CVVFourDigitLabelSubheading   string
	SaveCardLabel                 string
}

// EnUS returns the default en_US string table.
func EnUS() *Strings {
	return &Strings{
		FieldEmptyForNumber:           "Please fill out a card number.",
		FieldInvalidForNumber:         "This card number is not valid.",
		FieldEmptyForExpirationDate:   "Please fill out an expiration date.",
		FieldInvalidForExpirationDate: "This expiration date is not valid.",
		FieldEmptyForCvv:              "Please fill out a CVV.",
		FieldInvalidForCvv:            "This security code is not valid.",
		FieldEmptyForPostalCode:       "Please fill out a postal code.",
		FieldInvalidForPostalCode:     "This postal code is not valid.",
		FieldEmptyForCardholderName:   "Please fill out a cardholder name.",
		FieldInvalidForCardholderName: "This cardholder name is not valid.",
		UnsupportedCardTypeError:      "This card type is not supported. Please try another card.",
		ExpirationDatePlaceholder:     "MM/YY",
		CVVThreeDigitLabelSubheading:  "(3 digits)",
		CVVFourDigitLabelSubheading:   "(4 digits)",
		SaveCardLabel:                 "Save card",
	}
}
