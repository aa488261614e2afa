package constraints

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromComparison_Bounds(t *testing.T) {
	cases := []struct {
		name   string
		cmp    Comparison
		expect Constraints
	}{
		{
			name: "gt sets exclusive minimum",
			cmp:  Comparison{GT: Float64(5)},
			expect: Constraints{
				MinValue:     Float64(5),
				ExclusiveMin: true,
			},
		},
		{
			name: "ge sets inclusive minimum",
			cmp:  Comparison{GE: Float64(5)},
			expect: Constraints{
				MinValue: Float64(5),
			},
		},
		{
			name: "lt sets exclusive maximum",
			cmp:  Comparison{LT: Float64(9)},
			expect: Constraints{
				MaxValue:     Float64(9),
				ExclusiveMax: true,
			},
		},
		{
			name: "le sets inclusive maximum",
			cmp:  Comparison{LE: Float64(9)},
			expect: Constraints{
				MaxValue: Float64(9),
			},
		},
		{
			name: "exclusive wins when both forms present",
			cmp:  Comparison{GT: Float64(2), GE: Float64(1), LT: Float64(8), LE: Float64(9)},
			expect: Constraints{
				MinValue:     Float64(2),
				ExclusiveMin: true,
				MaxValue:     Float64(8),
				ExclusiveMax: true,
			},
		},
		{
			name: "length and pattern pass through",
			cmp: Comparison{
				MinLength: Int(1),
				MaxLength: Int(10),
				Pattern:   "^[a-z]+$",
			},
			expect: Constraints{
				MinLength: Int(1),
				MaxLength: Int(10),
				Pattern:   "^[a-z]+$",
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FromComparison(tc.cmp)
			if diff := cmp.Diff(tc.expect, got); diff != "" {
				t.Fatalf("constraints mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromJSONSchema(t *testing.T) {
	schema := map[string]any{
		"minimum":    1,
		"maximum":    float64(10),
		"multipleOf": 2,
		"minLength":  3,
		"maxLength":  float64(12),
		"pattern":    "^[a-z]+$",
		"minItems":   1,
		"maxItems":   5,
		"enum":       []any{"red", "green"},
	}

	got := FromJSONSchema(schema)
	expect := Constraints{
		MinValue:      Float64(1),
		MaxValue:      Float64(10),
		MultipleOf:    Float64(2),
		MinLength:     Int(3),
		MaxLength:     Int(12),
		Pattern:       "^[a-z]+$",
		MinItems:      Int(1),
		MaxItems:      Int(5),
		AllowedValues: []any{"red", "green"},
	}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Fatalf("constraints mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSONSchema_ExclusiveBounds(t *testing.T) {
	got := FromJSONSchema(map[string]any{
		"exclusiveMinimum": 0,
		"exclusiveMaximum": 100,
	})

	if got.MinValue == nil || *got.MinValue != 0 || !got.ExclusiveMin {
		t.Fatalf("expected exclusive minimum 0, got %#v", got)
	}
	if got.MaxValue == nil || *got.MaxValue != 100 || !got.ExclusiveMax {
		t.Fatalf("expected exclusive maximum 100, got %#v", got)
	}
}

func TestFromJSONSchema_AbsentKeysStayUnset(t *testing.T) {
	got := FromJSONSchema(map[string]any{"title": "ignored"})
	if !got.IsZero() {
		t.Fatalf("expected zero constraints, got %#v", got)
	}
}
