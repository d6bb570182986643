package gateway

import (
	"context"
	"strings"
)

// CardInput is the raw card data submitted for tokenization. It never leaves
// the gateway layer.
type CardInput struct {
	Number         string
	ExpirationDate string
	CVV            string
	PostalCode     string
	CardholderName string
}

// Token is a tokenized card.
type Token struct {
	Value    string
	CardType string
	LastFour string
	IssuedBy string
}

// Tokenizer exchanges raw card data for a token.
type Tokenizer interface {
	Tokenize(ctx context.Context, card CardInput) (*Token, error)
}

// SandboxTokenizer resolves well-known test card numbers to fixed tokens and
// rejects anything that fails the Luhn check.
type SandboxTokenizer struct {
	testCards map[string]struct {
		token    string
		cardType string
	}
}

func NewSandboxTokenizer() *SandboxTokenizer {
	return &SandboxTokenizer{
		testCards: map[string]struct {
			token    string
			cardType string
		}{
			"4242424242424242": {"tok_visa", "visa"},
			"4000056655665556": {"tok_visa_debit", "visa"},
			"5555555555554444": {"tok_mastercard", "master-card"},
			"2223003122003222": {"tok_mastercard_2", "master-card"},
			"378282246310005":  {"tok_amex", "american-express"},
			"6011111111111117": {"tok_discover", "discover"},
			"3056930009020004": {"tok_diners", "diners-club"},
			"36227206271667":   {"tok_diners", "diners-club"},
		},
	}
}

func (t *SandboxTokenizer) Tokenize(_ context.Context, card CardInput) (*Token, error) {
	number := strings.ReplaceAll(card.Number, " ", "")

	if testCard, ok := t.testCards[number]; ok {
		return &Token{
			Value:    testCard.token,
			CardType: testCard.cardType,
			LastFour: number[len(number)-4:],
			IssuedBy: "Sandbox",
		}, nil
	}

	if !IsValidCardNumber(number) {
		return nil, ErrInvalidCardNumber
	}

	return &Token{
		Value:    "tok_sandbox_" + number[len(number)-4:],
		CardType: "",
		LastFour: number[len(number)-4:],
		IssuedBy: "Sandbox",
	}, nil
}

// IsValidCardNumber runs the Luhn check over a card number.
func IsValidCardNumber(cardNumber string) bool {
	if cardNumber == "" {
		return false
	}

	var sum int
	shouldDouble := false

	// Iterate over the digits of the card number from right to left
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')

		if shouldDouble {
			digit = digit * 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		shouldDouble = !shouldDouble
	}

	// Card is valid if the sum is a multiple of 10
	return sum%10 == 0
}
