package live

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicy  = bluemonday.UGCPolicy()
	plainTextPolicy = bluemonday.StrictPolicy()
)

func sanitizeRichText(s string) string {
	return richTextPolicy.Sanitize(s)
}

// plainText strips all markup and returns unescaped text for document.title.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(s)))
}
