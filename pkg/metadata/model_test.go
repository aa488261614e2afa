package metadata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func filterFixture() *Model {
	return &Model{
		Name: "Article",
		Fields: []Field{
			{Name: "id", Required: true, Hidden: true, ReadOnly: true},
			{Name: "title", Required: true},
			{Name: "body", FieldType: "markdown"},
			{Name: "legacy_slug", Deprecated: true},
			{Name: "tags", Required: true, FieldType: "chips"},
		},
	}
}

func fieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func TestSelect(t *testing.T) {
	model := filterFixture()

	cases := []struct {
		name   string
		filter Filter
		expect []string
	}{
		{
			name:   "no filter returns all in order",
			filter: Filter{},
			expect: []string{"id", "title", "body", "legacy_slug", "tags"},
		},
		{
			name:   "required and visible",
			filter: Filter{Required: Bool(true), Hidden: Bool(false)},
			expect: []string{"title", "tags"},
		},
		{
			name:   "deprecated only",
			filter: Filter{Deprecated: Bool(true)},
			expect: []string{"legacy_slug"},
		},
		{
			name:   "field type classification",
			filter: Filter{FieldType: String("markdown")},
			expect: []string{"body"},
		},
		{
			name:   "readonly false excludes id",
			filter: Filter{ReadOnly: Bool(false)},
			expect: []string{"title", "body", "legacy_slug", "tags"},
		},
		{
			name:   "conjunction can be empty",
			filter: Filter{Required: Bool(true), FieldType: String("markdown")},
			expect: []string{},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := fieldNames(model.Select(tc.filter))
			if diff := cmp.Diff(tc.expect, got); diff != "" {
				t.Fatalf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModelField(t *testing.T) {
	model := filterFixture()

	if f, ok := model.Field("body"); !ok || f.Name != "body" {
		t.Fatalf("expected to find body, got %v (ok=%v)", f.Name, ok)
	}
	if _, ok := model.Field("missing"); ok {
		t.Fatal("expected lookup miss for unknown name")
	}
}

func TestResultMessages(t *testing.T) {
	result := Result{
		Valid: false,
		FieldErrors: map[string][]ErrorDetail{
			"age": {
				{Kind: ErrorKindNotGE, Message: "Must be greater than or equal to 0"},
			},
		},
		GlobalErrors: []ErrorDetail{
			{Kind: ErrorKindValue, Message: "instance rejected"},
		},
	}

	if result.Ok() {
		t.Fatal("expected result to be invalid")
	}

	wantFields := map[string][]string{
		"age": {"Must be greater than or equal to 0"},
	}
	if diff := cmp.Diff(wantFields, result.FieldMessages()); diff != "" {
		t.Fatalf("field messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"instance rejected"}, result.GlobalMessages()); diff != "" {
		t.Fatalf("global messages mismatch (-want +got):\n%s", diff)
	}
}
