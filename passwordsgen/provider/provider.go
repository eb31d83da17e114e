// Package provider builds entity schemas from Go source or YAML documents.
package provider

import (
	"errors"
	"fmt"

	"github.com/broady/passwords/passwordsgen/schema"
)

// validated returns s, or every definition error found in it.
func validated(s *schema.Schema) (*schema.Schema, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(errs...))
	}
	return s, nil
}
