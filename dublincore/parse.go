package dublincore

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/librarian/internal/xmltree"
)

// FromFile parses the metadata section of the document at path.
func FromFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return FromReader(f)
}

// FromString parses the metadata section of an XML document held in s.
func FromString(s string) (*Record, error) {
	return FromReader(strings.NewReader(s))
}

// FromReader scans the token stream of an XML document for its rdf:RDF
// section and builds a Record from the first rdf:Description inside it.
// Tokens after the end of the section are not read.
func FromReader(r io.Reader) (*Record, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	if err := seekRDF(dec); err != nil {
		return nil, err
	}

	about, fields, err := readRDF(dec)
	if err != nil {
		return nil, err
	}
	return NewRecord(about, fields)
}

// seekRDF consumes tokens up to and including the rdf:RDF start tag.
func seekRDF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return ErrNoMetadataSection
		}
		if err != nil {
			return &ParseError{Err: err}
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name == RDF("RDF") {
			return nil
		}
	}
}

// descState tracks the collection of one rdf:Description while streaming.
type descState struct {
	found    bool
	depth    int // depth of the description element
	closed   bool
	inChild  bool
	textDone bool // a nested element ended the child's leading text
	child    xml.Name
	text     strings.Builder
}

// readRDF consumes the rest of the rdf:RDF section, returning the about URI
// and the texts of the first description's child elements.
func readRDF(dec *xml.Decoder) (string, map[xml.Name][]string, error) {
	var (
		about  string
		fields = make(map[xml.Name][]string)
		st     descState
		depth  = 1 // rdf:RDF itself
	)

	for depth > 0 {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", nil, &ParseError{Err: io.ErrUnexpectedEOF}
		}
		if err != nil {
			return "", nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case !st.found && t.Name == RDF("Description"):
				st.found = true
				st.depth = depth
				for _, a := range t.Attr {
					if a.Name == RDF("about") {
						about = a.Value
					}
				}
			case st.found && !st.closed && depth == st.depth+1:
				st.inChild = true
				st.textDone = false
				st.child = t.Name
				st.text.Reset()
			case st.inChild:
				st.textDone = true
			}

		case xml.CharData:
			if st.inChild && !st.textDone && depth == st.depth+1 {
				st.text.Write(t)
			}

		case xml.EndElement:
			switch {
			case st.inChild && depth == st.depth+1:
				fields[st.child] = append(fields[st.child], st.text.String())
				st.inChild = false
			case st.found && !st.closed && depth == st.depth:
				st.closed = true
			}
			depth--
		}
	}

	if !st.found {
		return "", nil, ErrNoMetadataSection
	}
	return about, fields, nil
}

// FromElement builds a Record from the first rdf:Description beneath root,
// typically an rdf:RDF element or the root of a parsed book.
func FromElement(root *etree.Element) (*Record, error) {
	desc := xmltree.FindFirst(root, RDFNS, "Description")
	if desc == nil {
		return nil, ErrNoMetadataSection
	}

	fields := make(map[xml.Name][]string)
	for _, child := range desc.ChildElements() {
		name := xml.Name{Space: child.NamespaceURI(), Local: child.Tag}
		fields[name] = append(fields[name], child.Text())
	}

	return NewRecord(aboutAttr(desc), fields)
}

func aboutAttr(desc *etree.Element) string {
	for _, a := range desc.Attr {
		if a.Key == "about" && (a.Space == "rdf" || a.NamespaceURI() == RDFNS) {
			return a.Value
		}
	}
	return ""
}

// FromMap rebuilds a Record from the shape produced by Record.ToMap. Values
// may be strings, string lists or []any of strings. A singular alias is only
// consulted when its primary name is absent.
func FromMap(m map[string]any) (*Record, error) {
	about, _ := m["about"].(string)

	fields := make(map[xml.Name][]string)
	for _, f := range Schema {
		v, ok := m[f.Name]
		if !ok && f.SingularAlias != "" {
			v, ok = m[f.SingularAlias]
		}
		if !ok || v == nil {
			continue
		}
		fields[f.URI] = mapTexts(v)
	}

	return NewRecord(about, fields)
}

func mapTexts(v any) []string {
	switch x := v.(type) {
	case string:
		return []string{x}
	case []string:
		return append([]string{}, x...)
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, stringify(item))
		}
		return out
	default:
		return []string{stringify(x)}
	}
}
