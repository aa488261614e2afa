package binding

import "fmt"

// FieldNotFoundError reports a lookup for a field name the model does not
// declare. This is caller misuse, not a validation outcome.
type FieldNotFoundError struct {
	Model string
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("binding: field %q not found in model %q", e.Field, e.Model)
}
