package card

import (
	"dropin/internal/config"
	"dropin/internal/hostedfields"
)

// merchantCardConfig wraps the merchant card policy with nil-safe accessors.
// A nil underlying config is a fully-defaulted, enabled card form.
type merchantCardConfig struct {
	*config.CardConfig
}

func (m merchantCardConfig) disabled() bool {
	return m.CardConfig != nil && m.Disabled
}

// overrideNulled reports whether the merchant explicitly removed a field by
// mapping it to null.
func (m merchantCardConfig) overrideNulled(name hostedfields.FieldName) bool {
	if m.CardConfig == nil {
		return false
	}
	ov, present := m.Overrides.Fields[name]
	return present && ov == nil
}

// overrideFor returns the merchant's override for a field, or nil.
func (m merchantCardConfig) overrideFor(name hostedfields.FieldName) *hostedfields.FieldOverride {
	if m.CardConfig == nil {
		return nil
	}
	return m.Overrides.Fields[name]
}

func (m merchantCardConfig) styleOverrides() map[string]*config.StyleOverride {
	if m.CardConfig == nil {
		return nil
	}
	return m.Overrides.Styles
}

// customCVVPlaceholder reports whether the merchant pinned the cvv
// placeholder, which permanently suppresses brand-driven placeholder
// updates.
func (m merchantCardConfig) customCVVPlaceholder() bool {
	ov := m.overrideFor(hostedfields.FieldCVV)
	return ov != nil && ov.Placeholder != ""
}
