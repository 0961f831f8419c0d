// Package librarian provides a fluent API for reading book documents: their
// Dublin Core metadata, their thematic fragments and an annotated XHTML
// rendering.
//
// Basic usage:
//
//	rec, _, err := librarian.Open("pan-tadeusz.xml").Metadata()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(rec.Title())
//
// Fragments of an XHTML rendering:
//
//	texts, warnings, err := librarian.Open("pan-tadeusz.html").
//	    ContainerID("book-text").
//	    FragmentTexts()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", librarian.FormatWarnings(warnings))
//	}
//
// For advanced use cases, the dublincore, fragments, annotate and transform
// packages are also available.
package librarian

import (
	"bytes"
	"io"

	"github.com/tsawler/librarian/fragments"
)

// Warning is a non-fatal problem found while processing a book.
type Warning = fragments.Warning

// FormatWarnings joins warnings into one line per warning.
func FormatWarnings(warnings []Warning) string {
	return fragments.FormatWarnings(warnings)
}

// Open returns an Extractor for the book at filename. The file is read on
// the first terminal operation.
//
// Example:
//
//	rec, _, err := librarian.Open("book.xml").Metadata()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns an Extractor for a book read from r. The reader is
// consumed immediately.
//
// Example:
//
//	frags, _, err := librarian.FromReader(resp.Body).Fragments()
func FromReader(r io.Reader) *Extractor {
	e := &Extractor{options: defaultOptions()}
	data, err := io.ReadAll(r)
	if err != nil {
		e.err = err
		return e
	}
	e.data = data
	e.loaded = true
	return e
}

// FromBytes returns an Extractor for a book held in memory.
func FromBytes(data []byte) *Extractor {
	return FromReader(bytes.NewReader(data))
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	rec := librarian.Must(dublincore.FromFile("book.xml"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to a terminal operation such as
// Metadata() or FragmentTexts() and panics if the error is non-nil. It
// discards warnings and returns just the value.
//
// Example:
//
//	texts := librarian.MustText(librarian.Open("book.html").FragmentTexts())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
