// Package format provides input format detection for the librarian library.
package format

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// BookXML indicates a source book document with embedded metadata.
	BookXML
	// XHTML indicates a book already rendered to XHTML.
	XHTML
	// RDF indicates a standalone RDF metadata file.
	RDF
)

// sniffLimit bounds how much input DetectFromReader reads.
const sniffLimit = 4096

var bom = []byte("\ufeff")

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case BookXML:
		return "BookXML"
	case XHTML:
		return "XHTML"
	case RDF:
		return "RDF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case BookXML:
		return ".xml"
	case XHTML:
		return ".html"
	case RDF:
		return ".rdf"
	default:
		return ""
	}
}

// HasMetadata reports whether documents of this format carry a Dublin Core
// section.
func (f Format) HasMetadata() bool {
	return f == BookXML || f == RDF
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xml":
		return BookXML
	case ".html", ".htm", ".xhtml":
		return XHTML
	case ".rdf":
		return RDF
	default:
		return Unknown
	}
}

// DetectFromBytes inspects the start of data and classifies it by its root
// element. Returns Unknown if data is not XML.
func DetectFromBytes(data []byte) Format {
	if len(data) > sniffLimit {
		data = data[:sniffLimit]
	}
	f, _ := DetectFromReader(bytes.NewReader(data))
	return f
}

// DetectFromReader reads up to the root element of r and classifies the
// document by it: html is XHTML, rdf:RDF is standalone metadata and any
// other root is a book. Input that is not XML yields Unknown with a nil
// error; only read failures are returned.
func DetectFromReader(r io.Reader) (Format, error) {
	dec := xml.NewDecoder(io.LimitReader(r, sniffLimit))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if err != nil {
			var syn *xml.SyntaxError
			if errors.Is(err, io.EOF) || errors.As(err, &syn) {
				return Unknown, nil
			}
			return Unknown, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return classify(t.Name), nil
		case xml.CharData:
			if len(bytes.TrimSpace(bytes.TrimPrefix(t, bom))) > 0 {
				return Unknown, nil
			}
		}
	}
}

func classify(root xml.Name) Format {
	switch strings.ToLower(root.Local) {
	case "html":
		return XHTML
	case "rdf":
		return RDF
	default:
		return BookXML
	}
}
