package metadata

import (
	"fmt"
	"strings"
)

// DefaultObjectURLPrefix is prepended to an identifier to link the public collection page
const DefaultObjectURLPrefix = "https://www.aucklandmuseum.com/collection/object/am_humanhistory-object-"

// Metadata is what gets sent to the photo host alongside an image
type Metadata struct {
	Identifier  string
	Title       string
	Description string
	Tags        string
}

// ObjectURL returns the public collection page for identifier
func ObjectURL(prefix, identifier string) string {
	if prefix == "" {
		prefix = DefaultObjectURLPrefix
	}
	return prefix + identifier
}

// Describe builds the photo description block:
//
//	Title: {title}
//	Description: {description}
//	Credit: {credit}
//	{object url}
func Describe(identifier, title, description, credit, urlPrefix string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "Description: %s\n", description)
	fmt.Fprintf(&b, "Credit: %s\n", credit)
	b.WriteString(ObjectURL(urlPrefix, identifier))
	return b.String()
}
