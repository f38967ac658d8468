package tags

import (
	"fmt"
	"strings"
)

// Style selects how multi-word department names become a single tag
type Style string

const (
	// Quote wraps multi-word names in double quotes: "natural sciences"
	Quote Style = "quote"
	// Hyphen joins the words of multi-word names: natural-sciences
	Hyphen Style = "hyphen"
)

// ParseStyle validates a tag style name; empty selects Quote
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", Quote:
		return Quote, nil
	case Hyphen:
		return Hyphen, nil
	default:
		return "", fmt.Errorf("unsupported tag style: %s (supported: quote, hyphen)", s)
	}
}

// Normalize turns department names into a space-delimited, lower-cased tag
// string. Each name yields exactly one tag token; blank names are dropped.
func Normalize(names []string, style Style) string {
	tokens := make([]string, 0, len(names))
	for _, name := range names {
		words := strings.Fields(strings.ToLower(name))
		if len(words) == 0 {
			continue
		}
		if len(words) == 1 {
			tokens = append(tokens, words[0])
			continue
		}

		switch style {
		case Hyphen:
			tokens = append(tokens, strings.Join(words, "-"))
		default:
			tokens = append(tokens, `"`+strings.Join(words, " ")+`"`)
		}
	}

	return strings.Join(tokens, " ")
}
