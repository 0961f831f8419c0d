package dublincore

import (
	"github.com/beevik/etree"
)

// FieldValue is one entry of a serialised record.
type FieldValue struct {
	URI   string `json:"uri" yaml:"uri"`
	Value any    `json:"value" yaml:"value"` // string or []string
}

// Serialized is the flat key/value form of a Record.
type Serialized struct {
	About  FieldValue            `json:"about" yaml:"about"`
	Fields map[string]FieldValue `json:"fields" yaml:"fields"`
}

// ToElement renders the record as an rdf:RDF element holding a single
// rdf:Description. Absent and empty values are omitted; multi-valued fields
// produce one element per value.
func (r *Record) ToElement() *etree.Element {
	root := etree.NewElement("rdf:RDF")
	root.CreateAttr("xmlns:rdf", RDFNS)
	root.CreateAttr("xmlns:dc", DCNS)

	desc := root.CreateElement("rdf:Description")
	if r.About != "" {
		desc.CreateAttr("rdf:about", r.About)
	}

	for _, f := range Schema {
		for _, text := range r.texts(f) {
			e := desc.CreateElement("dc:" + f.URI.Local)
			e.SetText(text)
		}
	}
	return root
}

// ToXML renders ToElement as an indented XML string.
func (r *Record) ToXML() (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(r.ToElement())
	doc.Indent(2)
	return doc.WriteToString()
}

// Serialize returns the record keyed by field name, each entry carrying the
// field URI and its stringified value.
func (r *Record) Serialize() Serialized {
	out := Serialized{
		About:  FieldValue{URI: RDFNS + "about", Value: r.About},
		Fields: make(map[string]FieldValue),
	}
	for _, f := range Schema {
		if v, ok := r.stringValue(f); ok {
			out.Fields[f.Name] = FieldValue{URI: f.URI.Space + f.URI.Local, Value: v}
		}
	}
	return out
}

// ToMap returns a plain mapping of field names to strings or string lists,
// with "about" and, for fields with a singular alias, the alias mapped to the
// first value.
func (r *Record) ToMap() map[string]any {
	out := map[string]any{"about": r.About}
	for _, f := range Schema {
		v, ok := r.stringValue(f)
		if !ok {
			continue
		}
		out[f.Name] = v
		if f.SingularAlias != "" {
			if list, _ := v.([]string); len(list) > 0 {
				out[f.SingularAlias] = list[0]
			}
		}
	}
	return out
}

// stringValue returns a string for single fields or []string for
// multi-valued ones, and false when nothing is present.
func (r *Record) stringValue(f Field) (any, bool) {
	texts := r.texts(f)
	if len(texts) == 0 {
		return nil, false
	}
	if f.Multiple {
		return texts, true
	}
	return texts[0], true
}

// texts lists the non-empty stringified values of a field.
func (r *Record) texts(f Field) []string {
	v := r.values[f.Name]
	if f.Multiple {
		list, _ := v.([]any)
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := stringify(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := stringify(v); s != "" {
		return []string{s}
	}
	return nil
}
