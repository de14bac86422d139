package utils

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	namePolicy     *bluemonday.Policy
	namePolicyOnce sync.Once
)

// SanitizeName strips markup from a user supplied display name. The shell
// renders names inside HTML, so tags never survive; entities are decoded
// back to their literal characters.
func SanitizeName(name string) string {
	namePolicyOnce.Do(func() {
		namePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(namePolicy.Sanitize(name)))
}
