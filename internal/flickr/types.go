package flickr

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// APIError is a stat=fail response from the Flickr API
type APIError struct {
	Method  string
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flickr %s failed: %s (code %d)", e.Method, e.Message, e.Code)
}

// Content is a Flickr {"_content": ...} wrapper, which holds either a
// string or a number depending on the method
type Content string

func (c *Content) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Content json.RawMessage `json:"_content"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	*c = Content(rawString(wrapper.Content))
	return nil
}

func (c Content) String() string { return string(c) }

// Int parses the content as a number, returning 0 when it is not one
func (c Content) Int() int {
	n, _ := strconv.Atoi(string(c))
	return n
}

// Count is a number Flickr sometimes encodes as a string
type Count int

func (n *Count) UnmarshalJSON(data []byte) error {
	s := rawString(data)
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid count %s: %w", data, err)
	}
	*n = Count(v)
	return nil
}

func rawString(data json.RawMessage) string {
	if len(data) == 0 || string(data) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(data))
}

// User is the authenticated account returned by flickr.test.login
type User struct {
	ID       string  `json:"id"`
	Username Content `json:"username"`
}

// Person holds the account statistics returned by flickr.people.getInfo
type Person struct {
	ID          string  `json:"id"`
	NSID        string  `json:"nsid"`
	Username    Content `json:"username"`
	UploadCount Count   `json:"upload_count"`
	Photos      struct {
		Count Content `json:"count"`
		Views Content `json:"views"`
	} `json:"photos"`
}

// PhotoCount returns the number of photos on the account
func (p *Person) PhotoCount() int {
	if n := p.Photos.Count.Int(); n > 0 {
		return n
	}
	return int(p.UploadCount)
}

// TokenInfo is the result of flickr.auth.oauth.checkToken
type TokenInfo struct {
	Token Content `json:"token"`
	Perms Content `json:"perms"`
	User  struct {
		NSID     string `json:"nsid"`
		Username string `json:"username"`
		Fullname string `json:"fullname"`
	} `json:"user"`
}

// CanWrite reports whether the token permits uploads
func (t *TokenInfo) CanWrite() bool {
	switch t.Perms.String() {
	case "write", "delete":
		return true
	}
	return false
}

// Photo is a listing entry from flickr.people.getPhotos with extras
type Photo struct {
	ID          string  `json:"id"`
	Owner       string  `json:"owner"`
	Title       string  `json:"title"`
	Description Content `json:"description"`
	Tags        string  `json:"tags"`
	MachineTags string  `json:"machine_tags"`
	URLOriginal string  `json:"url_o"`
}

type photosPage struct {
	Page    Count   `json:"page"`
	Pages   Count   `json:"pages"`
	PerPage Count   `json:"perpage"`
	Total   Count   `json:"total"`
	Photo   []Photo `json:"photo"`
}
