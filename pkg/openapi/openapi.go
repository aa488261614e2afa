// Package openapi adapts OpenAPI 3 documents into model descriptors. Each
// operation's request body becomes one descriptor; instances are
// map[string]any values, so a form or API payload can be bound and validated
// against the contract the document declares.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// LoadOption customises document loading.
type LoadOption func(*loadConfig)

type loadConfig struct {
	externalRefs bool
	validate     bool
}

// WithExternalRefs allows the loader to resolve references outside the
// document itself.
func WithExternalRefs() LoadOption {
	return func(c *loadConfig) {
		c.externalRefs = true
	}
}

// WithValidation validates the document against the OpenAPI specification
// after loading. Example payloads are not validated.
func WithValidation() LoadOption {
	return func(c *loadConfig) {
		c.validate = true
	}
}

// Document wraps a loaded OpenAPI description and serves its operations.
type Document struct {
	spec *openapi3.T
}

// LoadData parses an OpenAPI document from a JSON or YAML payload.
func LoadData(ctx context.Context, data []byte, options ...LoadOption) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	cfg := applyLoadOptions(options)

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.externalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return finishLoad(ctx, cfg, spec)
}

// LoadFile parses an OpenAPI document from a file path.
func LoadFile(ctx context.Context, path string, options ...LoadOption) (*Document, error) {
	cfg := applyLoadOptions(options)

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.externalRefs,
	}
	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", path, err)
	}
	return finishLoad(ctx, cfg, spec)
}

func applyLoadOptions(options []LoadOption) loadConfig {
	cfg := loadConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

func finishLoad(ctx context.Context, cfg loadConfig, spec *openapi3.T) (*Document, error) {
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return &Document{spec: spec}, nil
}

// Operation is one operation of the document with its request-body
// descriptor, when the operation declares a body the conversion understands.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Extensions  map[string]any

	model *metadata.Model
}

// HasRequestModel reports whether the operation carries a convertible
// request-body schema.
func (op Operation) HasRequestModel() bool { return op.model != nil }

// Model returns the request-body descriptor, nil when the operation has none.
func (op Operation) Model() *metadata.Model { return op.model }

// Operations extracts every operation in the document, sorted by operation
// ID. Operations without an operationId are keyed "method:path".
func (d *Document) Operations() []Operation {
	if d.spec == nil || d.spec.Paths == nil {
		return nil
	}

	var out []Operation
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		out = appendOperation(out, "GET", path, item.Get)
		out = appendOperation(out, "PUT", path, item.Put)
		out = appendOperation(out, "POST", path, item.Post)
		out = appendOperation(out, "DELETE", path, item.Delete)
		out = appendOperation(out, "PATCH", path, item.Patch)
		out = appendOperation(out, "HEAD", path, item.Head)
		out = appendOperation(out, "OPTIONS", path, item.Options)
		out = appendOperation(out, "TRACE", path, item.Trace)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Operation returns the operation with the given ID.
func (d *Document) Operation(id string) (Operation, bool) {
	for _, op := range d.Operations() {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}

func appendOperation(target []Operation, method, path string, operation *openapi3.Operation) []Operation {
	if operation == nil {
		return target
	}

	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	op := Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		Extensions:  operation.Extensions,
	}
	op.model = requestModel(id, operation.RequestBody)
	return append(target, op)
}

// requestModel extracts the descriptor from the operation's request body,
// preferring JSON over form media types the way a JSON-first client would.
func requestModel(opID string, requestBody *openapi3.RequestBodyRef) *metadata.Model {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok {
			return modelFromRef(opID, mt.Schema)
		}
	}
	for _, mt := range content {
		return modelFromRef(opID, mt.Schema)
	}
	return nil
}
