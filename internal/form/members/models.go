package members

import (
	"fmt"
	"regexp"
)

// AdultAge is the age from which the identifier field is shown.
const AdultAge = 18

const (
	MinAge = 1
	MaxAge = 100
)

// IdentifierPattern accepts 10 or 12 digits with an optional trailing v/V.
var IdentifierPattern = regexp.MustCompile(`^(\d{10}|\d{12})[vV]?$`)

// Record is one household member sub-entry. Age holds the raw entered text.
type Record struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Age               string `json:"age"`
	Identifier        string `json:"identifier,omitempty"`
	IdentifierVisible bool   `json:"identifierVisible"`
}

func NameKey(id int) string       { return fmt.Sprintf("name-%d", id) }
func AgeKey(id int) string        { return fmt.Sprintf("age-%d", id) }
func IdentifierKey(id int) string { return fmt.Sprintf("id-%d", id) }
