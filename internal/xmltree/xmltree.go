// Package xmltree holds the small tree helpers shared by the metadata,
// fragment and annotation packages: parsing with charset support, a
// document-order start/end walk, and attribute/text accessors over
// etree elements.
package xmltree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Namespaces used by book documents.
const (
	RDFNS   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	DCNS    = "http://purl.org/dc/elements/1.1/"
	XHTMLNS = "http://www.w3.org/1999/xhtml"
)

// Event identifies the side of an element visited by Walk.
type Event int

const (
	// Start is emitted when the walk enters an element.
	Start Event = iota
	// End is emitted when the walk leaves an element.
	End
)

// String returns the event name.
func (e Event) String() string {
	if e == Start {
		return "start"
	}
	return "end"
}

// NewDocument returns an empty document whose reader accepts any charset
// declared in the XML prolog.
func NewDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	return doc
}

// Parse reads a whole XML document from r.
func Parse(r io.Reader) (*etree.Document, error) {
	doc := NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return doc, nil
}

// ParseBytes parses an XML document held in memory.
func ParseBytes(data []byte) (*etree.Document, error) {
	return Parse(bytes.NewReader(data))
}

// Walk visits root and its descendant elements in document order, calling fn
// with Start on entry and End on exit. The child list of each element is
// captured on entry, so fn may mutate the tree without disturbing the walk.
// A non-nil error from fn stops the walk.
func Walk(root *etree.Element, fn func(Event, *etree.Element) error) error {
	if err := fn(Start, root); err != nil {
		return err
	}
	for _, child := range root.ChildElements() {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return fn(End, root)
}

// Descendants returns every element beneath root in document order,
// excluding root itself.
func Descendants(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	var collect func(*etree.Element)
	collect = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			out = append(out, c)
			collect(c)
		}
	}
	collect(root)
	return out
}

// HasAncestor reports whether any ancestor of e satisfies test.
func HasAncestor(e *etree.Element, test func(*etree.Element) bool) bool {
	for p := e.Parent(); p != nil; p = p.Parent() {
		if test(p) {
			return true
		}
	}
	return false
}

// FindFirst returns the first element beneath root (root excluded) whose
// namespace URI and local name match, or nil.
func FindFirst(root *etree.Element, space, local string) *etree.Element {
	for _, e := range Descendants(root) {
		if e.Tag == local && e.NamespaceURI() == space {
			return e
		}
	}
	return nil
}

// Attr returns the value of the attribute key, or "".
func Attr(e *etree.Element, key string) string {
	return e.SelectAttrValue(key, "")
}

// Class returns the class attribute of e.
func Class(e *etree.Element) string {
	return Attr(e, "class")
}

// ID returns the id attribute of e.
func ID(e *etree.Element) string {
	return Attr(e, "id")
}

// DirectText concatenates the text nodes that are immediate children of e,
// skipping text inside child elements.
func DirectText(e *etree.Element) string {
	var sb strings.Builder
	for _, tok := range e.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			sb.WriteString(cd.Data)
		}
	}
	return sb.String()
}

// HasElement reports whether root or any descendant has the local name tag.
func HasElement(root *etree.Element, tag string) bool {
	if root.Tag == tag {
		return true
	}
	for _, e := range Descendants(root) {
		if e.Tag == tag {
			return true
		}
	}
	return false
}
