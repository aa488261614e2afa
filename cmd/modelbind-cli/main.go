package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-modelbind/pkg/adapters"
	"github.com/goliatone/go-modelbind/pkg/binding"
	pkgjsonschema "github.com/goliatone/go-modelbind/pkg/jsonschema"
	"github.com/goliatone/go-modelbind/pkg/metadata"
	pkgopenapi "github.com/goliatone/go-modelbind/pkg/openapi"
	"github.com/goliatone/go-modelbind/pkg/render"
	"github.com/goliatone/go-modelbind/pkg/renderers/tui"
	"github.com/goliatone/go-modelbind/pkg/renderers/vanilla"
	yaml "gopkg.in/yaml.v3"
)

func main() {
	schemaPath := flag.String("schema", "", "JSON Schema document path or URL")
	openapiPath := flag.String("openapi", "", "OpenAPI document path")
	opID := flag.String("operation", "", "operation ID when using an OpenAPI document")
	instancePath := flag.String("instance", "", "JSON or YAML instance file (defaults from the schema if empty)")
	renderer := flag.String("renderer", "", "optional renderer: vanilla or tui")
	output := flag.String("output", "", "output file for rendered HTML (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	adapter, err := buildAdapter(ctx, *schemaPath, *openapiPath, *opID)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	instance, err := loadInstance(*instancePath, adapter)
	if err != nil {
		log.Fatalf("Failed to load instance: %v", err)
	}

	registry := adapters.NewRegistry()
	registry.MustRegister(adapter, 0)

	mb, err := registry.Bind(instance)
	if err != nil {
		log.Fatalf("Failed to bind instance: %v", err)
	}

	switch *renderer {
	case "":
		result := mb.Validate()
		printResult(result.Valid, result.FieldErrors, result.GlobalErrors, mb.Values())
		if !result.Valid {
			os.Exit(1)
		}
	case "vanilla":
		if err := renderHTML(ctx, mb, *output); err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
	case "tui":
		if err := runSession(ctx, mb); err != nil {
			log.Fatalf("Session failed: %v", err)
		}
	default:
		log.Fatalf("unknown renderer %q", *renderer)
	}
}

// buildAdapter loads the requested document and wraps it in the matching
// adapter. Exactly one of schemaPath or openapiPath must be set.
func buildAdapter(ctx context.Context, schemaPath, openapiPath, opID string) (adapters.Adapter, error) {
	switch {
	case schemaPath != "" && openapiPath != "":
		return nil, fmt.Errorf("pass either -schema or -openapi, not both")
	case schemaPath != "":
		src := parseSchemaSource(schemaPath)
		loader := pkgjsonschema.NewLoader(pkgjsonschema.LoaderOptions{
			AllowHTTP:      src.Kind() == pkgjsonschema.SourceKindURL,
			RequestTimeout: 30 * time.Second,
		})
		doc, err := loader.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		return pkgjsonschema.New(doc)
	case openapiPath != "":
		if opID == "" {
			return nil, fmt.Errorf("-operation is required with -openapi")
		}
		doc, err := pkgopenapi.LoadFile(ctx, openapiPath, pkgopenapi.WithValidation())
		if err != nil {
			return nil, err
		}
		op, ok := doc.Operation(opID)
		if !ok {
			return nil, fmt.Errorf("operation %q not found", opID)
		}
		return pkgopenapi.NewAdapter(op)
	default:
		return nil, fmt.Errorf("one of -schema or -openapi is required")
	}
}

func parseSchemaSource(raw string) pkgjsonschema.Source {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return pkgjsonschema.SourceFromURL(raw)
	}
	return pkgjsonschema.SourceFromFile(raw)
}

type modeledAdapter interface {
	Model() *metadata.Model
}

// loadInstance reads the instance document, or synthesizes one from the
// model's defaults when no path was given. YAML is a superset of JSON, so a
// single decoder covers both.
func loadInstance(path string, adapter adapters.Adapter) (map[string]any, error) {
	if path == "" {
		if m, ok := adapter.(modeledAdapter); ok {
			return pkgjsonschema.NewInstance(m.Model()), nil
		}
		return map[string]any{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	instance := map[string]any{}
	if err := yaml.Unmarshal(raw, &instance); err != nil {
		return nil, fmt.Errorf("decode instance %s: %w", path, err)
	}
	return instance, nil
}

func renderHTML(ctx context.Context, mb *binding.ModelBinding, output string) error {
	widgets, err := vanilla.New()
	if err != nil {
		return err
	}
	form, err := render.NewFormRenderer(widgets)
	if err != nil {
		return err
	}
	if _, _, err := form.RenderModel(ctx, mb); err != nil {
		return err
	}

	html := widgets.HTML()
	if output != "" {
		if err := os.WriteFile(output, html, 0o644); err != nil {
			return err
		}
		fmt.Printf("Form written to %s\n", output)
		return nil
	}
	fmt.Println(string(html))
	return nil
}

func runSession(ctx context.Context, mb *binding.ModelBinding) error {
	form, err := render.NewFormRenderer(tui.New())
	if err != nil {
		return err
	}
	submitted, result, err := form.RenderModel(ctx, mb)
	if err != nil {
		return err
	}
	if !submitted {
		fmt.Println("Aborted.")
		return nil
	}
	printResult(result.Valid, result.FieldErrors, result.GlobalErrors, mb.Values())
	return nil
}

func printResult(valid bool, fieldErrors map[string][]metadata.ErrorDetail, globalErrors []metadata.ErrorDetail, values map[string]any) {
	report := map[string]any{
		"valid":  valid,
		"values": values,
	}
	if len(fieldErrors) > 0 || len(globalErrors) > 0 {
		errs := map[string][]string{}
		for field, details := range fieldErrors {
			for _, detail := range details {
				errs[field] = append(errs[field], detail.Message)
			}
		}
		for _, detail := range globalErrors {
			errs[""] = append(errs[""], detail.Message)
		}
		report["errors"] = errs
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	fmt.Println(string(out))
}
