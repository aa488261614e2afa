package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// UnhandledFieldTypeError reports a field no registered handler claims.
type UnhandledFieldTypeError struct {
	Field string
	Kind  metadata.Kind
}

func (e *UnhandledFieldTypeError) Error() string {
	return fmt.Sprintf("render: no handler for field %q (type %s)", e.Field, e.Kind)
}

// normalizeMessages trims whitespace and removes duplicates while preserving
// order.
func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
