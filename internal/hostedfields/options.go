package hostedfields

// FieldOptions is the per-field configuration handed to the provider at
// creation time.
type FieldOptions struct {
	// Selector names the mount target in the static markup. It is fixed by
	// the sheet and never honored from merchant overrides.
	Selector    string
	Placeholder string
	MaxLength   int
	MinLength   int
}

// FieldOverride is a merchant-supplied override merged over the default
// FieldOptions. A nil *FieldOverride stored in an override map means the
// field is explicitly removed. Selector is parsed but always ignored.
type FieldOverride struct {
	Selector    string `json:"selector,omitempty"`
	Placeholder string `json:"placeholder,omitempty" validate:"max=64"`
	MaxLength   int    `json:"maxlength,omitempty" validate:"min=0,max=64"`
	MinLength   int    `json:"minlength,omitempty" validate:"min=0,max=64"`
}

// StyleRule is one selector-state's styling: either a plain class name or a
// property map. When both are set the class name wins, matching the
// provider's precedence.
type StyleRule struct {
	Class string
	Props map[string]string
}

// Styles maps selector states (`input`, `:focus`, ...) to rules.
type Styles map[string]StyleRule

// CreateOptions is the full provider configuration.
type CreateOptions struct {
	Authorization string
	Fields        map[FieldName]FieldOptions
	Styles        Styles
}
