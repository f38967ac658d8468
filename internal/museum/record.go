package museum

import (
	"unicode"
	"unicode/utf8"
)

// Placeholders substituted when a record is missing a field
const (
	NoTitle       = "[No title]"
	NoDescription = "[No description]"
	NoCreditLine  = "[No credit line]"
)

// Value is a single entry of a multi-valued record property
type Value struct {
	Value string `json:"value"`
	Lang  string `json:"lang,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Values holds the entries of one record property in source order
type Values []Value

// First returns the first value and whether the property was present
func (v Values) First() (string, bool) {
	if len(v) == 0 {
		return "", false
	}
	return v[0].Value, true
}

// All returns every value in source order
func (v Values) All() []string {
	out := make([]string, 0, len(v))
	for _, value := range v {
		out = append(out, value.Value)
	}
	return out
}

// Record is a collection record as returned by the museum API.
// Every property is optional.
type Record struct {
	TitleValues         Values `json:"dc:title,omitempty"`
	DescriptionValues   Values `json:"dc:description,omitempty"`
	CreditLineValues    Values `json:"am:creditLine,omitempty"`
	OtherTitleValues    Values `json:"am:otherTitle,omitempty"`
	CurrentKeeperValues Values `json:"ecrm:P50_has_current_keeper,omitempty"`
}

// Title returns the record title with its first character upper-cased
func (r *Record) Title() (string, bool) {
	title, ok := r.TitleValues.First()
	if !ok {
		return "", false
	}
	return capitalize(title), true
}

// Description returns the primary description
func (r *Record) Description() (string, bool) {
	return r.DescriptionValues.First()
}

// CreditLine returns the credit line
func (r *Record) CreditLine() (string, bool) {
	return r.CreditLineValues.First()
}

// OtherTitleURL returns the reference to the record's other title resource
func (r *Record) OtherTitleURL() (string, bool) {
	return r.OtherTitleValues.First()
}

// KeeperURL returns the reference to the current keeper relation
func (r *Record) KeeperURL() (string, bool) {
	return r.CurrentKeeperValues.First()
}

// Fields are the record values after fallbacks have been applied
type Fields struct {
	Title       string
	Description string
	CreditLine  string
	Keepers     []string
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
