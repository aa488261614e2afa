package binding

import (
	"errors"
	"strings"

	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// ErrMissingTranslator is handed to the missing-translation handler when no
// translator is configured.
var ErrMissingTranslator = errors.New("binding: translator is not configured")

// Translator resolves a message key for a locale. Error kinds double as
// message keys; the detail's context map is passed as the argument.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the message used when translation fails.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if params, ok := arg.(map[string]any); ok {
			if fallback, ok := params["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// LocalizeResult returns a copy of the result with every detail's message
// translated through the supplied translator, keyed by the detail's kind. The
// original message is kept as the fallback; this is best-effort and never
// fails.
func LocalizeResult(result metadata.Result, locale string, t Translator, onMissing MissingTranslationHandler) metadata.Result {
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	out := result
	if len(result.FieldErrors) > 0 {
		out.FieldErrors = make(map[string][]metadata.ErrorDetail, len(result.FieldErrors))
		for name, details := range result.FieldErrors {
			out.FieldErrors[name] = localizeDetails(details, locale, t, onMissing)
		}
	}
	out.GlobalErrors = localizeDetails(result.GlobalErrors, locale, t, onMissing)
	return out
}

func localizeDetails(details []metadata.ErrorDetail, locale string, t Translator, onMissing MissingTranslationHandler) []metadata.ErrorDetail {
	if len(details) == 0 {
		return details
	}
	out := make([]metadata.ErrorDetail, len(details))
	for i, detail := range details {
		detail.Message = translateDetail(detail, locale, t, onMissing)
		out[i] = detail
	}
	return out
}

func translateDetail(detail metadata.ErrorDetail, locale string, t Translator, onMissing MissingTranslationHandler) string {
	fallback := detail.Message
	args := []any{contextWithDefault(detail.Context, fallback)}

	if t == nil {
		return onMissing(locale, detail.Kind, args, ErrMissingTranslator)
	}

	msg, err := t.Translate(locale, detail.Kind, args...)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	return onMissing(locale, detail.Kind, args, err)
}

func contextWithDefault(ctx map[string]any, fallback string) map[string]any {
	params := make(map[string]any, len(ctx)+1)
	for k, v := range ctx {
		params[k] = v
	}
	params["default"] = fallback
	return params
}
