package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from a product title. Accented letters
// are folded to ASCII through NFD decomposition.
//
// Examples:
//   - "Echo Dot (5th Gen)" → "echo-dot-5th-gen"
//   - "Crème Brûlée Set" → "creme-brulee-set"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.TrimSpace(name),
	)
	if err != nil {
		folded = name
	}

	s := strings.ToLower(folded)
	s = slugRegexp.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithID appends a numeric suffix so slugs stay unique for products sharing a title.
func WithID(name string, id int) string {
	base := Generate(name)
	suffix := strconv.Itoa(id)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
