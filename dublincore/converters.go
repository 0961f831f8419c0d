package dublincore

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Validator converts the text of a metadata element into a typed value.
type Validator func(text string) (any, error)

// Converter errors.
var (
	ErrInvalidDate   = errors.New("unrecognized date format, use YYYY-MM-DD or YYYY")
	ErrInvalidPerson = errors.New("invalid person name")
	ErrInvalidText   = errors.New("text is not valid UTF-8")
)

// DateLayout is the canonical textual form of dates.
const DateLayout = "2006-01-02"

// Person is a single person with a last name and any number of first names.
type Person struct {
	LastName   string
	FirstNames []string
}

// NewPerson builds a Person from a last name and first names.
func NewPerson(last string, first ...string) Person {
	return Person{LastName: last, FirstNames: first}
}

// ParsePerson parses "Last, First Middle". The part after the comma is
// optional, but when a comma is present at least one name must follow it.
func ParsePerson(text string) (Person, error) {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		return Person{LastName: parts[0]}, nil
	case 2:
		if parts[1] == "" {
			return Person{}, fmt.Errorf("%w: found a comma but no names in %q", ErrInvalidPerson, text)
		}
		return Person{LastName: parts[0], FirstNames: strings.Fields(parts[1])}, nil
	default:
		return Person{}, fmt.Errorf("%w: at most one comma allowed in %q", ErrInvalidPerson, text)
	}
}

// String renders the person as "Last, First Middle", or just "Last".
func (p Person) String() string {
	if len(p.FirstNames) == 0 {
		return p.LastName
	}
	return p.LastName + ", " + strings.Join(p.FirstNames, " ")
}

// Equal reports whether both persons have the same names in the same order.
func (p Person) Equal(o Person) bool {
	if p.LastName != o.LastName || len(p.FirstNames) != len(o.FirstNames) {
		return false
	}
	for i := range p.FirstNames {
		if p.FirstNames[i] != o.FirstNames[i] {
			return false
		}
	}
	return true
}

// ParseDate accepts YYYY-MM-DD, with or without zero padding of month and
// day, falling back to a bare year which maps to January 1st of that year.
func ParseDate(text string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, text); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-1-2", text); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006", text); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
}

// AsText validates UTF-8 and normalizes the text to NFC.
func AsText(text string) (any, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}
	return norm.NFC.String(text), nil
}

// AsDate converts text with ParseDate.
func AsDate(text string) (any, error) {
	return ParseDate(text)
}

// AsPerson converts text with ParsePerson.
func AsPerson(text string) (any, error) {
	return ParsePerson(text)
}

// stringify renders a typed value the way it is written back to XML.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(DateLayout)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
