package sandbox

import (
	"strconv"
	"strings"
	"time"

	"dropin/internal/gateway"
	"dropin/internal/hostedfields"
)

// brandPrefixes maps each brand to the IIN prefixes it claims. A brand stays
// a candidate while the entered digits are consistent with at least one of
// its prefixes.
var brandPrefixes = []struct {
	brand    string
	prefixes []string
}{
	{"visa", []string{"4"}},
	{"master-card", []string{"51", "52", "53", "54", "55", "22", "23", "24", "25", "26", "27"}},
	{"american-express", []string{"34", "37"}},
	{"discover", []string{"6011", "644", "645", "646", "647", "648", "649", "65"}},
	{"diners-club", []string{"300", "301", "302", "303", "304", "305", "36", "38"}},
	{"jcb", []string{"35"}},
	{"unionpay", []string{"62"}},
	{"maestro", []string{"50", "56", "57", "58", "59"}},
}

// brandNumberLength is the expected full card number length per brand.
var brandNumberLength = map[string]int{
	"visa":             16,
	"master-card":      16,
	"american-express": 15,
	"discover":         16,
	"diners-club":      14,
	"jcb":              16,
	"unionpay":         16,
	"maestro":          16,
}

// detectBrands returns the candidate brands for the entered digits, every
// brand for an empty buffer.
func detectBrands(number string) []hostedfields.Card {
	digits := strings.ReplaceAll(number, " ", "")

	var cards []hostedfields.Card
	for _, b := range brandPrefixes {
		for _, prefix := range b.prefixes {
			if prefixConsistent(prefix, digits) {
				cards = append(cards, hostedfields.Card{Type: b.brand})
				break
			}
		}
	}
	return cards
}

func prefixConsistent(prefix, digits string) bool {
	n := len(prefix)
	if len(digits) < n {
		n = len(digits)
	}
	return prefix[:n] == digits[:n]
}

func sameBrands(a, b []hostedfields.Card) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx].Type != b[idx].Type {
			return false
		}
	}
	return true
}

// fieldStateFor computes the validity tuple for one field's content given
// the current number brand candidates.
func fieldStateFor(name hostedfields.FieldName, value string, cards []hostedfields.Card) hostedfields.FieldState {
	empty := value == ""
	state := hostedfields.FieldState{IsEmpty: empty}

	switch name {
	case hostedfields.FieldNumber:
		state.IsValid, state.IsPotentiallyValid = numberValidity(value, cards)
	case hostedfields.FieldExpirationDate:
		state.IsValid, state.IsPotentiallyValid = expirationValidity(value)
	case hostedfields.FieldCVV:
		state.IsValid, state.IsPotentiallyValid = cvvValidity(value, cards)
	case hostedfields.FieldPostalCode:
		state.IsValid = len(value) >= 3
		state.IsPotentiallyValid = true
	case hostedfields.FieldCardholderName:
		state.IsValid = !empty
		state.IsPotentiallyValid = true
	}

	if empty {
		state.IsValid = false
		state.IsPotentiallyValid = true
	}
	return state
}

func numberValidity(value string, cards []hostedfields.Card) (valid, potentiallyValid bool) {
	digits := strings.ReplaceAll(value, " ", "")
	if digits == "" {
		return false, true
	}
	if !allDigits(digits) || len(cards) == 0 {
		return false, false
	}

	fullLength := false
	for _, c := range cards {
		if len(digits) == brandNumberLength[c.Type] {
			fullLength = true
			break
		}
	}

	valid = fullLength && gateway.IsValidCardNumber(digits)
	if valid {
		return true, true
	}

	// Still potentially valid while shorter than the longest candidate.
	for _, c := range cards {
		if len(digits) < brandNumberLength[c.Type] {
			return false, true
		}
	}
	return false, false
}

func expirationValidity(value string) (valid, potentiallyValid bool) {
	if value == "" {
		return false, true
	}

	parts := strings.SplitN(value, "/", 2)
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		// A lone leading digit can still become a valid month.
		return false, len(parts) == 1 && (value == "0" || value == "1")
	}
	if len(parts) == 1 || parts[1] == "" {
		return false, true
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false, false
	}
	switch len(parts[1]) {
	case 2:
		year += 2000
	case 4:
	default:
		return false, len(parts[1]) < 2
	}

	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return false, false
	}
	return true, true
}

func cvvValidity(value string, cards []hostedfields.Card) (valid, potentiallyValid bool) {
	if value == "" {
		return false, true
	}
	if !allDigits(value) {
		return false, false
	}

	// Four digits when American Express is the sole candidate, three
	// otherwise.
	want := 3
	if len(cards) == 1 && cards[0].Type == "american-express" {
		want = 4
	}

	if len(value) == want {
		return true, true
	}
	return false, len(value) < want
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
