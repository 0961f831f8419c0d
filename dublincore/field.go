package dublincore

import (
	"encoding/xml"

	"github.com/tsawler/librarian/internal/xmltree"
)

// Namespace URIs of the metadata section.
const (
	DCNS  = xmltree.DCNS
	RDFNS = xmltree.RDFNS
)

// DC returns the qualified name of a Dublin Core element.
func DC(local string) xml.Name {
	return xml.Name{Space: DCNS, Local: local}
}

// RDF returns the qualified name of an RDF element or attribute.
func RDF(local string) xml.Name {
	return xml.Name{Space: RDFNS, Local: local}
}

// Field describes one recognised metadata element. Fields are immutable once
// built and may be shared between goroutines.
type Field struct {
	URI           xml.Name
	Name          string    // attribute name on Record
	Validator     Validator // nil means the text is kept as is
	Multiple      bool
	SingularAlias string // optional name reading the first value of a multi field
	Required      bool
	Default       []any
}

// FieldOption customises a Field built by NewField.
type FieldOption func(*Field)

// WithValidator sets the converter applied to each value.
func WithValidator(v Validator) FieldOption {
	return func(f *Field) { f.Validator = v }
}

// Multiple marks the field as holding an ordered list of values.
func Multiple() FieldOption {
	return func(f *Field) { f.Multiple = true }
}

// WithAlias sets the singular alias of a multi-valued field.
func WithAlias(alias string) FieldOption {
	return func(f *Field) { f.SingularAlias = alias }
}

// Optional marks a field as not required; its default is used when absent.
func Optional() FieldOption {
	return func(f *Field) { f.Required = false }
}

// WithDefault supplies a default, which also makes the field optional.
func WithDefault(values ...any) FieldOption {
	return func(f *Field) {
		f.Default = append([]any{}, values...)
		f.Required = false
	}
}

// NewField builds a field. Without options the field is a required single
// text value.
func NewField(uri xml.Name, name string, opts ...FieldOption) Field {
	f := Field{
		URI:       uri,
		Name:      name,
		Validator: AsText,
		Required:  true,
	}
	for _, opt := range opts {
		opt(&f)
	}
	if f.Default == nil {
		if f.Multiple {
			f.Default = []any{}
		} else {
			f.Default = []any{nil}
		}
	}
	return f
}

// ValidateValue converts raw element texts into the field's value: a single
// value (nil when absent) or, for multi-valued fields, a []any in input
// order. Empty text is treated as an absent value.
func (f Field) ValidateValue(raw []string) (any, error) {
	if f.Multiple {
		out := make([]any, 0, len(raw))
		for _, text := range raw {
			v, err := f.convert(text)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	switch len(raw) {
	case 0:
		return nil, &ValidationError{URI: f.URI, Msg: msgNoValue}
	case 1:
		return f.convert(raw[0])
	default:
		return nil, &ValidationError{URI: f.URI, Msg: msgMultiple}
	}
}

// Validate looks the field up in fields, substituting the default when an
// optional field is absent.
func (f Field) Validate(fields map[xml.Name][]string) (any, error) {
	raw, ok := fields[f.URI]
	if !ok {
		if f.Required {
			return nil, &ValidationError{URI: f.URI, Msg: msgRequired}
		}
		return f.defaultValue()
	}
	return f.ValidateValue(raw)
}

func (f Field) defaultValue() (any, error) {
	if f.Multiple {
		return append([]any{}, f.Default...), nil
	}
	switch len(f.Default) {
	case 0:
		return nil, &ValidationError{URI: f.URI, Msg: msgNoValue}
	case 1:
		return f.Default[0], nil
	default:
		return nil, &ValidationError{URI: f.URI, Msg: msgMultiple}
	}
}

func (f Field) convert(text string) (any, error) {
	if text == "" {
		return nil, nil
	}
	if f.Validator == nil {
		return text, nil
	}
	v, err := f.Validator(text)
	if err != nil {
		return nil, &ValidationError{URI: f.URI, Msg: msgInvalid, Err: err}
	}
	return v, nil
}
