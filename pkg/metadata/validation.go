package metadata

import "fmt"

// Error kinds emitted by the binding layer's constraint checks. Renderers and
// translators key message lookups off these tags.
const (
	ErrorKindMissing     = "value_error.missing"
	ErrorKindNotGT       = "value_error.number.not_gt"
	ErrorKindNotGE       = "value_error.number.not_ge"
	ErrorKindNotLT       = "value_error.number.not_lt"
	ErrorKindNotLE       = "value_error.number.not_le"
	ErrorKindNotMultiple = "value_error.number.not_multiple"
	ErrorKindMinLength   = "value_error.string.min_length"
	ErrorKindMaxLength   = "value_error.string.max_length"
	ErrorKindPattern     = "value_error.string.pattern"
	ErrorKindMinItems    = "value_error.collection.min_items"
	ErrorKindMaxItems    = "value_error.collection.max_items"
	ErrorKindNotInEnum   = "value_error.not_in_enum"
	ErrorKindValue       = "value_error"
)

// ErrorDetail describes one validation failure. Immutable once produced.
type ErrorDetail struct {
	// Kind is the taxonomy tag for the failure.
	Kind string
	// Message is the human-readable description.
	Message string
	// Location is the path of field-name/index segments to the offending
	// value.
	Location []any
	// InputValue is the offending value.
	InputValue any
	// Context carries the parameters that produced the message, e.g.
	// {"limit_value": 5}.
	Context map[string]any
}

func (e ErrorDetail) String() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Result is the immutable outcome of one validation pass.
type Result struct {
	// Valid is true when no field or global errors were recorded.
	Valid bool
	// FieldErrors maps field names to their ordered error details.
	FieldErrors map[string][]ErrorDetail
	// GlobalErrors lists failures not attributable to a single field.
	GlobalErrors []ErrorDetail
	// ValidatedInstance references the instance that passed validation. Only
	// meaningful when Valid is true.
	ValidatedInstance any
}

// Ok reports the overall validity. Mirrors Valid for callers treating the
// result as a boolean.
func (r Result) Ok() bool { return r.Valid }

// FieldMessages flattens FieldErrors into message lists keyed by field name.
func (r Result) FieldMessages() map[string][]string {
	if len(r.FieldErrors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.FieldErrors))
	for name, details := range r.FieldErrors {
		msgs := make([]string, 0, len(details))
		for _, d := range details {
			msgs = append(msgs, d.Message)
		}
		out[name] = msgs
	}
	return out
}

// GlobalMessages flattens GlobalErrors into a message list.
func (r Result) GlobalMessages() []string {
	if len(r.GlobalErrors) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.GlobalErrors))
	for _, d := range r.GlobalErrors {
		out = append(out, d.Message)
	}
	return out
}

// Bound is the view of a live binding that custom validators receive. The
// binding package provides the concrete implementation.
type Bound interface {
	// Descriptor returns the model descriptor behind the binding.
	Descriptor() *Model
	// Instance returns the bound instance.
	Instance() any
	// Values snapshots the current value of every field, keyed by name.
	Values() map[string]any
}

// Validator replaces the default per-field validation pass for a model.
type Validator func(Bound) Result
