// Package jsonschema adapts standalone JSON Schema documents (JSON or YAML)
// into model descriptors. Instances for schema-backed models are plain
// map[string]any values; field accessors are key lookups.
package jsonschema

import "errors"

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies where a schema document originated so the loader can
// operate on files, fs.FS entries, or URLs without leaking implementation
// details.
type Source interface {
	Kind() SourceKind
	Location() string
}

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile identifies a schema on the local filesystem.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: path}
}

// SourceFromFS identifies a schema inside a configured fs.FS.
func SourceFromFS(path string) Source {
	return source{kind: SourceKindFS, location: path}
}

// SourceFromURL identifies a schema fetched over HTTP.
func SourceFromURL(url string) Source {
	return source{kind: SourceKindURL, location: url}
}

// Document wraps a raw schema payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("jsonschema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("jsonschema: raw document is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source { return d.source }

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
