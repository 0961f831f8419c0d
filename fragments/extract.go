package fragments

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/tsawler/librarian/internal/xmltree"
)

// Result holds the outcome of an extraction.
type Result struct {
	Closed   []*Fragment // paired begin/end markers, in closing order
	Open     []*Fragment // begun but never ended, in opening order
	Warnings []Warning
}

// Extract parses a transformed book from r and collects its fragments.
func Extract(r io.Reader, opts ...Option) (*Result, error) {
	doc, err := xmltree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return ExtractElement(doc.Root(), opts...), nil
}

// ExtractFile opens path and calls Extract.
func ExtractFile(path string, opts ...Option) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Extract(f, opts...)
}

// ExtractElement collects the fragments of an already parsed tree. The tree
// is only read.
func ExtractElement(root *etree.Element, opts ...Option) *Result {
	t := NewTracker(opts...)
	t.Walk(root)
	return &Result{
		Closed:   t.Closed(),
		Open:     t.Open(),
		Warnings: t.Warnings(),
	}
}
