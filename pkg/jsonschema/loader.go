package jsonschema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// LoaderOptions configures the document loader.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups.
	FileSystem fs.FS
	// HTTPClient overrides the client used for SourceKindURL lookups.
	HTTPClient *http.Client
	// AllowHTTP enables URL sources when no explicit client is supplied.
	AllowHTTP bool
	// RequestTimeout bounds HTTP fetches.
	RequestTimeout time.Duration
}

// Loader fetches schema documents from files, fs.FS entries, or URLs.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	allowed bool
}

// NewLoader constructs a Loader from pre-resolved options.
func NewLoader(options LoaderOptions) *Loader {
	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		client = &clone
	case options.AllowHTTP:
		client = &http.Client{Timeout: options.RequestTimeout}
	}

	return &Loader{
		fs:      options.FileSystem,
		http:    client,
		allowed: client != nil,
	}
}

// Load fetches a document from the provided source and wraps it.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("jsonschema loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = l.loadFile(src.Location())
	case SourceKindFS:
		data, err = l.loadFromFS(src.Location())
	case SourceKindURL:
		if !l.allowed {
			return Document{}, errors.New("jsonschema loader: http support disabled")
		}
		data, err = l.loadHTTP(ctx, src.Location())
	default:
		err = fmt.Errorf("jsonschema loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, err
	}

	return NewDocument(src, data)
}

func (l *Loader) loadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("jsonschema loader: file path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (l *Loader) loadFromFS(path string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("jsonschema loader: no filesystem configured")
	}
	if path == "" {
		return nil, errors.New("jsonschema loader: fs path is required")
	}
	return fs.ReadFile(l.fs, path)
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("jsonschema loader: url is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jsonschema loader: unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
