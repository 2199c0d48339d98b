package model

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-signupform/pkg/formdef"
)

var errDefinitionIDMissing = errors.New("model builder: definition id is required")

func validateDefinition(def formdef.Definition) error {
	if def.ID == "" {
		return errDefinitionIDMissing
	}
	if err := formdef.Validate(def); err != nil {
		return fmt.Errorf("model builder: invalid definition: %w", err)
	}
	return nil
}
