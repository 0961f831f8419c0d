package dublincore

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// ErrNoMetadataSection is returned when a document has no rdf:RDF section or
// the section holds no rdf:Description.
var ErrNoMetadataSection = errors.New("dublincore: metadata section not found; check for rdf:RDF and rdf:Description tags")

// ValidationError reports a schema or type violation on a single field.
type ValidationError struct {
	URI xml.Name // field the violation concerns
	Msg string
	Err error // underlying converter error, if any
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dublincore: field %s: %s: %v", qualified(e.URI), e.Msg, e.Err)
	}
	return fmt.Sprintf("dublincore: field %s: %s", qualified(e.URI), e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseError wraps a syntax error reported by the XML parser.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dublincore: malformed input: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Validation failure messages.
const (
	msgMultiple     = "multiple values not allowed"
	msgNoValue      = "no value to assign, check defaults"
	msgRequired     = "required field not found"
	msgInvalid      = "invalid value"
	msgUnknownField = "unknown field"
	msgBadType      = "unsupported value type"
)

// qualified renders a DC or RDF name with its conventional prefix.
func qualified(n xml.Name) string {
	switch n.Space {
	case DCNS:
		return "dc:" + n.Local
	case RDFNS:
		return "rdf:" + n.Local
	case "":
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}
