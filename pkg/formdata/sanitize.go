package formdata

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

// SanitizeHTML strips markup that rich-text fields may not carry to the
// content API: scripts, event handlers, and unsafe URLs.
func SanitizeHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(htmlSanitizer().Sanitize(trimmed))
}

func htmlSanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("style").OnElements("span", "p")
		policy.AllowStyles("color", "background-color", "text-align").OnElements("span", "p")
		policy.RequireNoFollowOnLinks(false)
		htmlPolicy = policy
	})
	return htmlPolicy
}
