package config

import (
	"encoding/json"
	"fmt"

	"dropin/internal/hostedfields"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CheckoutConfig is the merchant-supplied checkout configuration.
type CheckoutConfig struct {
	GuestCheckout bool        `json:"guestCheckout"`
	Card          *CardConfig `json:"card" validate:"omitempty"`
}

// CardConfig is the merchant policy for the card sheet. The zero value is a
// fully-defaulted, enabled card form.
type CardConfig struct {
	// Disabled removes the card sheet entirely.
	Disabled bool `json:"disabled"`

	// CardholderName enables the cardholder name field when non-nil.
	CardholderName *CardholderNameConfig `json:"cardholderName"`

	// ClearFieldsAfterTokenization defaults to true when nil.
	ClearFieldsAfterTokenization *bool `json:"clearFieldsAfterTokenization"`

	Vault     VaultConfig   `json:"vault"`
	Overrides CardOverrides `json:"overrides"`
}

// CardholderNameConfig controls the optional cardholder name field.
type CardholderNameConfig struct {
	Required bool `json:"required"`
}

// VaultConfig controls save-card behavior.
type VaultConfig struct {
	// AllowVaultCardOverride shows the save-card checkbox.
	AllowVaultCardOverride bool `json:"allowVaultCardOverride"`
	// VaultCard sets the checkbox's initial checked state; nil means true.
	VaultCard *bool `json:"vaultCard"`
}

// CardOverrides are merchant overrides merged over the sheet defaults. A
// field key mapped to JSON null removes that field; a style state mapped to
// null removes that state.
type CardOverrides struct {
	Fields map[hostedfields.FieldName]*hostedfields.FieldOverride `json:"fields" validate:"omitempty,dive,omitempty"`
	Styles map[string]*StyleOverride                              `json:"styles"`
}

// StyleOverride is either a plain class name or a property map for one
// selector state. JSON strings decode into Class, objects into Props.
type StyleOverride struct {
	Class string
	Props map[string]string
}

func (s *StyleOverride) UnmarshalJSON(data []byte) error {
	var class string
	if err := json.Unmarshal(data, &class); err == nil {
		s.Class = class
		return nil
	}
	return json.Unmarshal(data, &s.Props)
}

func (s StyleOverride) MarshalJSON() ([]byte, error) {
	if s.Class != "" {
		return json.Marshal(s.Class)
	}
	return json.Marshal(s.Props)
}

// ClearFields reports whether fields should be cleared after a successful
// tokenization.
func (c *CardConfig) ClearFields() bool {
	if c == nil || c.ClearFieldsAfterTokenization == nil {
		return true
	}
	return *c.ClearFieldsAfterTokenization
}

// VaultCardDefault reports the save-card checkbox's initial checked state.
func (c *CardConfig) VaultCardDefault() bool {
	if c == nil || c.Vault.VaultCard == nil {
		return true
	}
	return *c.Vault.VaultCard
}

// HasCardholderName reports whether the cardholder name field is enabled.
func (c *CardConfig) HasCardholderName() bool {
	return c != nil && c.CardholderName != nil
}

// CardholderNameRequired reports whether a non-empty cardholder name is
// required to submit. Defaults to false.
func (c *CardConfig) CardholderNameRequired() bool {
	return c != nil && c.CardholderName != nil && c.CardholderName.Required
}

// Validate checks the merchant configuration for structural problems.
func (c *CheckoutConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid checkout configuration: %w", err)
	}
	return nil
}
