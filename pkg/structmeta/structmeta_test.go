package structmeta

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelbind/pkg/binding"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

type byline struct {
	FullName string `json:"full_name" jsonschema:"title=Full name,minLength=1"`
	Handle   string `json:"handle,omitempty"`
}

type article struct {
	Title     string    `json:"title" jsonschema:"title=Headline,minLength=3,maxLength=80"`
	WordCount int       `json:"word_count,omitempty" jsonschema:"minimum=1"`
	Rating    *float64  `json:"rating,omitempty" jsonschema:"minimum=0,maximum=5"`
	Tags      []string  `json:"tags,omitempty" jsonschema:"maxItems=4"`
	Author    byline    `json:"author,omitempty"`
	Published time.Time `json:"published_at,omitempty"`
	Internal  string    `json:"-"`
}

func articleModel(t *testing.T) *metadata.Model {
	t.Helper()

	model, err := New().Adapt(&article{})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}
	return model
}

func TestAdapter_DescriptorShape(t *testing.T) {
	t.Parallel()

	model := articleModel(t)

	if model.Name != "article" {
		t.Errorf("model name = %q, want %q", model.Name, "article")
	}

	var names []string
	for _, f := range model.Fields {
		names = append(names, f.Name)
	}
	want := []string{"title", "word_count", "rating", "tags", "author", "published_at"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	title, _ := model.Field("title")
	if title.Title != "Headline" {
		t.Errorf("title label = %q, want %q", title.Title, "Headline")
	}
	if !title.Required {
		t.Error("title should be required without omitempty")
	}
	if got := title.Constraints.MinLength; got == nil || *got != 3 {
		t.Errorf("title minLength = %v, want 3", got)
	}
	if got := title.Constraints.MaxLength; got == nil || *got != 80 {
		t.Errorf("title maxLength = %v, want 80", got)
	}

	wordCount, _ := model.Field("word_count")
	if wordCount.Type.Kind != metadata.KindInteger {
		t.Errorf("word_count kind = %q, want integer", wordCount.Type.Kind)
	}
	if wordCount.Required {
		t.Error("word_count should be optional with omitempty")
	}
	if got := wordCount.Constraints.MinValue; got == nil || *got != 1 {
		t.Errorf("word_count minimum = %v, want 1", got)
	}

	rating, _ := model.Field("rating")
	if rating.Type.Kind != metadata.KindFloat || !rating.Type.Nullable {
		t.Errorf("rating type = %+v, want nullable float", rating.Type)
	}
	if got := rating.Constraints.MaxValue; got == nil || *got != 5 {
		t.Errorf("rating maximum = %v, want 5", got)
	}

	tags, _ := model.Field("tags")
	if tags.Type.Kind != metadata.KindList || tags.Type.Elem().Kind != metadata.KindString {
		t.Errorf("tags type = %+v, want list of string", tags.Type)
	}
	if got := tags.Constraints.MaxItems; got == nil || *got != 4 {
		t.Errorf("tags maxItems = %v, want 4", got)
	}

	published, _ := model.Field("published_at")
	if published.Type.Kind != metadata.KindDateTime {
		t.Errorf("published_at kind = %q, want datetime", published.Type.Kind)
	}
}

func TestAdapter_NestedModel(t *testing.T) {
	t.Parallel()

	model := articleModel(t)

	author, ok := model.Field("author")
	if !ok {
		t.Fatal("author field missing")
	}
	if author.Type.Kind != metadata.KindModel || author.Type.Model == nil {
		t.Fatalf("author type = %+v, want nested model", author.Type)
	}

	nested := author.Type.Model
	if nested.Name != "byline" {
		t.Errorf("nested name = %q, want %q", nested.Name, "byline")
	}
	fullName, _ := nested.Field("full_name")
	if fullName.Title != "Full name" {
		t.Errorf("full_name label = %q, want %q", fullName.Title, "Full name")
	}
	if !fullName.Required {
		t.Error("full_name should be required")
	}

	instance, err := author.Type.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := instance.(*byline); !ok {
		t.Fatalf("New() = %T, want *byline", instance)
	}
}

func TestAdapter_CachesPerType(t *testing.T) {
	t.Parallel()

	a := New()
	first, err := a.Adapt(&article{Title: "one"})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}
	second, err := a.Adapt(article{Title: "two"})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}
	if first != second {
		t.Error("instances of one type should share a cached descriptor")
	}
}

func TestAdapter_RejectsNonStructs(t *testing.T) {
	t.Parallel()

	a := New()
	for _, instance := range []any{42, "text", map[string]any{}, []int{1}} {
		if a.CanAdapt(instance) {
			t.Errorf("CanAdapt(%T) = true, want false", instance)
		}
	}
	if _, err := a.Adapt(42); err == nil {
		t.Fatal("Adapt(42) should fail")
	}
}

func TestAccessor_GetAndSet(t *testing.T) {
	t.Parallel()

	model := articleModel(t)
	inst := &article{Title: "hello"}

	title, _ := model.Field("title")
	if got := title.Access.Get(inst); got != "hello" {
		t.Errorf("Get() = %v, want %q", got, "hello")
	}
	if err := title.Access.Set(inst, "updated"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if inst.Title != "updated" {
		t.Errorf("title after set = %q, want %q", inst.Title, "updated")
	}

	rating, _ := model.Field("rating")
	if got := rating.Access.Get(inst); got != nil {
		t.Errorf("nil pointer field Get() = %v, want nil", got)
	}
	if err := rating.Access.Set(inst, 4.5); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if inst.Rating == nil || *inst.Rating != 4.5 {
		t.Errorf("rating after set = %v, want 4.5", inst.Rating)
	}
	if got := rating.Access.Get(inst); got != 4.5 {
		t.Errorf("Get() after set = %v, want 4.5", got)
	}

	// JSON decoding hands numbers over as float64.
	wordCount, _ := model.Field("word_count")
	if err := wordCount.Access.Set(inst, float64(300)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if inst.WordCount != 300 {
		t.Errorf("word_count after set = %d, want 300", inst.WordCount)
	}

	if err := title.Access.Set(article{}, "nope"); err == nil {
		t.Fatal("Set on a non-pointer instance should fail")
	}
	if err := title.Access.Set(inst, 12); err == nil {
		t.Fatal("Set with an incompatible type should fail")
	}
}

func TestBindingIntegration(t *testing.T) {
	t.Parallel()

	model := articleModel(t)
	inst := &article{Title: "ab", WordCount: 0}

	result := binding.New(model, inst).Validate()
	if result.Valid {
		t.Fatal("expected validation failure")
	}
	titleErrs := result.FieldErrors["title"]
	if len(titleErrs) != 1 || titleErrs[0].Kind != metadata.ErrorKindMinLength {
		t.Fatalf("title errors = %+v, want one min_length error", titleErrs)
	}

	inst.Title = "long enough"
	inst.WordCount = 250
	if result := binding.New(model, inst).Validate(); !result.Valid {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

type account struct {
	Email string `json:"email"`
}

func (a *account) Validate() error {
	if !strings.Contains(a.Email, "@") {
		return errors.New("email must contain @")
	}
	return nil
}

func TestValidatableHook(t *testing.T) {
	t.Parallel()

	model, err := New().Adapt(&account{})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}
	if model.Validator == nil {
		t.Fatal("descriptor should carry the native validator")
	}

	result := binding.New(model, &account{Email: "nope"}).Validate()
	if result.Valid {
		t.Fatal("expected native validation failure")
	}
	if len(result.GlobalErrors) != 1 || result.GlobalErrors[0].Message != "email must contain @" {
		t.Fatalf("global errors = %+v", result.GlobalErrors)
	}

	if result := binding.New(model, &account{Email: "a@b.co"}).Validate(); !result.Valid {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

type member struct {
	Email string `json:"email"`
	Age   int    `json:"age" jsonschema:"minimum=18"`
}

func (m *member) Validate() error {
	if !strings.Contains(m.Email, "@") {
		return errors.New("email must contain @")
	}
	return nil
}

func TestValidatableHook_FieldConstraintsStillChecked(t *testing.T) {
	t.Parallel()

	model, err := New().Adapt(&member{})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	// Validate passes but the tag constraint does not.
	result := binding.New(model, &member{Email: "a@b.co", Age: 5}).Validate()
	if result.Valid {
		t.Fatal("expected constraint failure")
	}
	ageErrs := result.FieldErrors["age"]
	if len(ageErrs) != 1 || ageErrs[0].Kind != metadata.ErrorKindNotGE {
		t.Fatalf("age errors = %+v, want one not_ge error", ageErrs)
	}
	if len(result.GlobalErrors) != 0 {
		t.Fatalf("global errors = %+v, want none", result.GlobalErrors)
	}

	// Both layers fail: the field error and the global error are reported
	// together.
	result = binding.New(model, &member{Email: "nope", Age: 5}).Validate()
	if len(result.FieldErrors["age"]) != 1 || len(result.GlobalErrors) != 1 {
		t.Fatalf("result = %+v, want field and global errors", result)
	}

	if result := binding.New(model, &member{Email: "a@b.co", Age: 30}).Validate(); !result.Valid {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

func TestWithValidatorOverride(t *testing.T) {
	t.Parallel()

	custom := func(b metadata.Bound) metadata.Result {
		return metadata.Result{Valid: true, ValidatedInstance: b.Instance()}
	}
	model, err := New(WithValidator(custom)).Adapt(&account{})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	// The override wins over the Validatable hook even for invalid input.
	if result := binding.New(model, &account{Email: "nope"}).Validate(); !result.Valid {
		t.Fatalf("custom validator should accept, got %+v", result)
	}
}
