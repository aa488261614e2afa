package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextOnce   sync.Once
	richTextPolicy *bluemonday.Policy
)

// sanitizeRichText cleans description and help markup before it is injected
// unescaped. Only basic inline formatting and links survive.
func sanitizeRichText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(richTextSanitizer().Sanitize(trimmed))
}

func richTextSanitizer() *bluemonday.Policy {
	richTextOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("a", "b", "strong", "i", "em", "code", "br", "p", "span", "ul", "ol", "li")
		policy.AllowAttrs("href", "title").OnElements("a")
		policy.AllowAttrs("class").OnElements("span", "code", "p")
		policy.RequireNoFollowOnLinks(true)
		richTextPolicy = policy
	})
	return richTextPolicy
}
