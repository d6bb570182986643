// Package gateway models the payment gateway the card sheet talks to: the
// gateway-declared configuration (challenges, supported card types), client
// token issuance, card tokenization and duplicate-card detection.
package gateway

import "strings"

// Challenge identifiers the gateway can declare.
const (
	ChallengeCVV        = "cvv"
	ChallengePostalCode = "postal_code"
)

// Configuration is the gateway-declared policy the card sheet consumes.
type Configuration struct {
	// Challenges lists the fields the gateway requires collecting.
	Challenges []string `json:"challenges"`

	// SupportedCardTypes is the brand allow-list. An empty list means the
	// gateway does not restrict brands.
	SupportedCardTypes []string `json:"supportedCardTypes"`
}

// HasChallenge reports whether the gateway declared the given challenge.
func (c Configuration) HasChallenge(name string) bool {
	for _, ch := range c.Challenges {
		if ch == name {
			return true
		}
	}
	return false
}

// SupportsCardType reports whether a detected brand is accepted. Matching is
// case-insensitive against the allow-list's canonical names; UnionPay is
// permanently excluded regardless of allow-list membership. An empty
// allow-list accepts every brand except UnionPay.
func (c Configuration) SupportsCardType(cardType string) bool {
	if strings.EqualFold(cardType, "unionpay") {
		return false
	}
	if len(c.SupportedCardTypes) == 0 {
		return true
	}
	for _, supported := range c.SupportedCardTypes {
		if strings.EqualFold(normalizeBrand(supported), normalizeBrand(cardType)) {
			return true
		}
	}
	return false
}

// normalizeBrand folds display names ("American Express", "MasterCard") and
// detector types ("american-express", "master-card") onto one form.
func normalizeBrand(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "-", "")
	return name
}
