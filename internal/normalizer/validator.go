package normalizer

import (
	"fmt"
)

// Validator performs the structural checks a table must pass before its rows
// are normalized. Row-level problems are never reported here.
type Validator struct {
	aliases AliasTable
}

// NewValidator creates a new validator instance.
func NewValidator(aliases AliasTable) *Validator {
	return &Validator{aliases: aliases}
}

// Validate checks that a table is present, has a header, and carries a
// spelling of its join key.
func (v *Validator) Validate(name string, t *RawTable) error {
	key, ok := KeyField(name)
	if !ok {
		return NewConfigurationError(name, "", fmt.Errorf("%w: %s", ErrUnknownTable, name))
	}

	if t == nil {
		return NewConfigurationError(name, "", ErrMissingTable)
	}

	if len(t.Header) == 0 {
		return NewConfigurationError(name, t.Source, ErrNoHeader)
	}

	if _, found := v.aliases.Column(t, key); !found {
		return NewConfigurationError(name, t.Source,
			fmt.Errorf("%w: %s (accepted: %v)", ErrMissingKeyColumn, key, v.aliases.Spellings(name, key)))
	}

	return nil
}
