package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// StripeTokenizer creates real tokens through the Stripe Tokens API. Used
// when the sandbox runs against a live processor account.
type StripeTokenizer struct {
	api *client.API
}

func NewStripeTokenizer(apiKey string) *StripeTokenizer {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeTokenizer{api: api}
}

func (t *StripeTokenizer) Tokenize(ctx context.Context, card CardInput) (*Token, error) {
	month, year, err := splitExpiration(card.ExpirationDate)
	if err != nil {
		return nil, err
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:     stripe.String(strings.ReplaceAll(card.Number, " ", "")),
			ExpMonth:   stripe.String(month),
			ExpYear:    stripe.String(year),
			CVC:        stripe.String(card.CVV),
			AddressZip: stripe.String(card.PostalCode),
			Name:       stripe.String(card.CardholderName),
		},
	}
	params.Context = ctx

	token, err := t.api.Tokens.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe tokenization failed: %w", err)
	}

	result := &Token{
		Value:    token.ID,
		IssuedBy: "Stripe",
	}
	if token.Card != nil {
		result.CardType = normalizeBrand(string(token.Card.Brand))
		result.LastFour = token.Card.Last4
	}
	return result, nil
}

// splitExpiration parses an MM/YY or MM/YYYY expiration date.
func splitExpiration(date string) (month, year string, err error) {
	parts := strings.SplitN(date, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed expiration date %q", date)
	}
	month, year = parts[0], parts[1]
	if len(year) == 2 {
		year = "20" + year
	}
	return month, year, nil
}
