package dublincore

import (
	"encoding/xml"
	"time"
)

// Record is a validated metadata section. Values are keyed by field name;
// single fields hold a value or nil, multi-valued fields hold []any.
type Record struct {
	About  string
	values map[string]any
}

// NewRecord validates fields against Schema. about is the rdf:about URI of
// the description and may be empty. Unknown names in fields are ignored.
func NewRecord(about string, fields map[xml.Name][]string) (*Record, error) {
	r := &Record{
		About:  about,
		values: make(map[string]any, len(Schema)),
	}
	for _, f := range Schema {
		v, err := f.Validate(fields)
		if err != nil {
			return nil, err
		}
		r.values[f.Name] = v
	}
	return r, nil
}

// Get returns the value stored under name. A singular alias yields the first
// element of its multi-valued field; ok is false for unknown names and for
// an alias over an empty list.
func (r *Record) Get(name string) (any, bool) {
	f, known := Lookup(name)
	if !known {
		return nil, false
	}
	v := r.values[f.Name]
	if name == f.Name {
		return v, true
	}
	list, _ := v.([]any)
	if len(list) == 0 {
		return nil, false
	}
	return list[0], true
}

// Set replaces the value stored under name without validation. Setting a
// singular alias stores a one-element list. A multi-valued field accepts
// []any, []string or []Person.
func (r *Record) Set(name string, value any) error {
	f, known := Lookup(name)
	if !known {
		return &ValidationError{URI: xml.Name{Local: name}, Msg: msgUnknownField}
	}
	if name != f.Name {
		r.values[f.Name] = []any{value}
		return nil
	}
	if !f.Multiple {
		r.values[f.Name] = value
		return nil
	}

	switch list := value.(type) {
	case nil:
		r.values[f.Name] = []any{}
	case []any:
		r.values[f.Name] = append([]any{}, list...)
	case []string:
		r.values[f.Name] = toAny(list)
	case []Person:
		r.values[f.Name] = toAny(list)
	default:
		return &ValidationError{URI: f.URI, Msg: msgBadType}
	}
	return nil
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// Update re-validates the raw texts given per field name (primary or alias)
// and stores the results. Completeness of required fields is not checked
// again, and nothing is stored when any value fails.
func (r *Record) Update(fields map[string][]string) error {
	staged := make(map[string]any, len(fields))
	for name, raw := range fields {
		f, known := Lookup(name)
		if !known {
			continue
		}
		if name != f.Name {
			v, err := Field{URI: f.URI, Validator: f.Validator}.ValidateValue(raw)
			if err != nil {
				return err
			}
			staged[f.Name] = []any{v}
			continue
		}
		v, err := f.ValidateValue(raw)
		if err != nil {
			return err
		}
		staged[f.Name] = v
	}
	for name, v := range staged {
		r.values[name] = v
	}
	return nil
}

// Typed accessors for the commonly used fields.

// Author returns the dc:creator person.
func (r *Record) Author() Person {
	p, _ := r.values["author"].(Person)
	return p
}

// Title returns dc:title.
func (r *Record) Title() string {
	s, _ := r.values["title"].(string)
	return s
}

// CreatedAt returns dc:date.
func (r *Record) CreatedAt() time.Time {
	t, _ := r.values["created_at"].(time.Time)
	return t
}

// ReleasedToPublicDomainAt returns dc:date.pd, and false when absent.
func (r *Record) ReleasedToPublicDomainAt() (time.Time, bool) {
	t, ok := r.values["released_to_public_domain_at"].(time.Time)
	return t, ok
}

// Publisher returns dc:publisher.
func (r *Record) Publisher() string {
	s, _ := r.values["publisher"].(string)
	return s
}

// URL returns dc:identifier.url.
func (r *Record) URL() string {
	s, _ := r.values["url"].(string)
	return s
}

// LicenseDescription returns dc:rights.
func (r *Record) LicenseDescription() string {
	s, _ := r.values["license_description"].(string)
	return s
}

// Epochs returns dc:subject.period values.
func (r *Record) Epochs() []string { return r.strings("epochs") }

// Kinds returns dc:subject.type values.
func (r *Record) Kinds() []string { return r.strings("kinds") }

// Genres returns dc:subject.genre values.
func (r *Record) Genres() []string { return r.strings("genres") }

// Parts returns dc:relation.hasPart values.
func (r *Record) Parts() []string { return r.strings("parts") }

// Editors returns dc:contributor.editor persons.
func (r *Record) Editors() []Person { return r.persons("editors") }

// Translators returns dc:contributor.translator persons.
func (r *Record) Translators() []Person { return r.persons("translators") }

// TechnicalEditors returns dc:contributor.technical_editor persons.
func (r *Record) TechnicalEditors() []Person { return r.persons("technical_editors") }

func (r *Record) strings(name string) []string {
	list, _ := r.values[name].([]any)
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != nil {
			out = append(out, stringify(v))
		}
	}
	return out
}

func (r *Record) persons(name string) []Person {
	list, _ := r.values[name].([]any)
	out := make([]Person, 0, len(list))
	for _, v := range list {
		if p, ok := v.(Person); ok {
			out = append(out, p)
		}
	}
	return out
}
