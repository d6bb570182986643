// Package brands is the static card brand registry: icon references, CVV
// digit counts and CVV icon orientation per detected brand. Pure lookup,
// no state.
package brands

// Icon references into the sheet's SVG sprite.
const (
	GenericCardIcon = "#iconCardFront"
	CVVBackIcon     = "#iconCVVBack"
	CVVFrontIcon    = "#iconCVVFront"
)

// CVV placeholder masks by digit count.
const (
	ThreeDigitMask = "•••"
	FourDigitMask  = "••••"
)

// Info describes how a brand is presented.
type Info struct {
	Type      string
	Icon      string
	CVVDigits int
	CVVIcon   string
	CVVMask   string
}

// DisplayOrder is the order brand icons appear in the supported-cards bar.
var DisplayOrder = []string{
	"visa",
	"master-card",
	"american-express",
	"discover",
	"diners-club",
	"jcb",
	"unionpay",
	"maestro",
}

var known = map[string]struct{}{
	"visa":             {},
	"master-card":      {},
	"american-express": {},
	"discover":         {},
	"diners-club":      {},
	"jcb":              {},
	"unionpay":         {},
	"maestro":          {},
}

// Lookup resolves a detected brand type to its presentation info. Unknown or
// absent types resolve to a generic front-of-card icon with the default
// three digit, back-of-card CVV presentation. American Express is the one
// exception with a four digit, front-of-card CVV.
func Lookup(cardType string) Info {
	info := Info{
		Type:      cardType,
		Icon:      GenericCardIcon,
		CVVDigits: 3,
		CVVIcon:   CVVBackIcon,
		CVVMask:   ThreeDigitMask,
	}

	if _, ok := known[cardType]; ok {
		info.Icon = "#icon-" + cardType
	}
	if cardType == "american-express" {
		info.CVVDigits = 4
		info.CVVIcon = CVVFrontIcon
		info.CVVMask = FourDigitMask
	}

	return info
}
