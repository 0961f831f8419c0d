package transform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/tsawler/librarian/annotate"
	"github.com/tsawler/librarian/dublincore"
	"github.com/tsawler/librarian/internal/xmltree"
)

// ErrNoEngine is returned when a Transformer has no engine to apply.
var ErrNoEngine = errors.New("transform: no stylesheet engine configured")

// ParseError wraps a syntax error in the input document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("transform: malformed input: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(t *Transformer) {
		if l != nil {
			t.log = l
		}
	}
}

// WithStylesheet selects the stylesheet by name. The default is Legacy.
func WithStylesheet(name string) Option {
	return func(t *Transformer) { t.stylesheet = name }
}

// WithStylesheets adds or overrides stylesheet paths.
func WithStylesheets(s Stylesheets) Option {
	return func(t *Transformer) {
		for k, v := range s {
			t.stylesheets[k] = v
		}
	}
}

// WithStylesheetDir sets the directory relative stylesheet paths are
// resolved against.
func WithStylesheetDir(dir string) Option {
	return func(t *Transformer) { t.baseDir = dir }
}

// WithFunctions adds or overrides extension functions.
func WithFunctions(f Functions) Option {
	return func(t *Transformer) {
		for k, v := range f {
			t.funcs[k] = v
		}
	}
}

// WithoutMetadata skips parsing the Dublin Core section of the input.
func WithoutMetadata() Option {
	return func(t *Transformer) { t.parseMetadata = false }
}

// WithAnnotateOptions passes options through to the annotate package.
func WithAnnotateOptions(opts ...annotate.Option) Option {
	return func(t *Transformer) { t.annotate = append(t.annotate, opts...) }
}

// WithIndent sets the indentation Result.WriteTo uses. Negative values
// disable pretty-printing.
func WithIndent(spaces int) Option {
	return func(t *Transformer) { t.indent = spaces }
}

// Transformer runs books through a stylesheet engine and annotates the
// output. A Transformer may be reused but not shared between goroutines
// while options are being applied.
type Transformer struct {
	engine        Engine
	log           *zap.Logger
	stylesheet    string
	stylesheets   Stylesheets
	baseDir       string
	funcs         Functions
	parseMetadata bool
	annotate      []annotate.Option
	indent        int
}

// New returns a Transformer applying stylesheets through engine.
func New(engine Engine, opts ...Option) *Transformer {
	t := &Transformer{
		engine:        engine,
		log:           zap.NewNop(),
		stylesheet:    Legacy,
		stylesheets:   DefaultStylesheets(),
		funcs:         DefaultFunctions(),
		parseMetadata: true,
		indent:        2,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Stylesheets returns a copy of the registered stylesheet table.
func (t *Transformer) Stylesheets() Stylesheets {
	return t.stylesheets.clone()
}

// Result is the outcome of a transformation.
type Result struct {
	Document *etree.Document
	Metadata *dublincore.Record // nil when metadata parsing is disabled
	TOC      []annotate.TocEntry
	Anchors  int
	// Empty is set when the engine output held no paragraph and was
	// replaced by an <empty/> document.
	Empty bool

	indent int
}

// WriteTo writes the result document to w. With a non-negative indent,
// block elements are laid out one child per line; text content is left
// untouched.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	if root := r.Document.Root(); root != nil && r.indent >= 0 {
		indentBlocks(root, 0, r.indent)
	}
	return r.Document.WriteTo(w)
}

// String returns the serialized result document.
func (r *Result) String() string {
	s, _ := r.Document.WriteToString()
	return s
}

// TransformFile opens path and calls Transform.
func (t *Transformer) TransformFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return t.Transform(ctx, f)
}

// Transform parses a book from r and renders it.
func (t *Transformer) Transform(ctx context.Context, r io.Reader) (*Result, error) {
	doc, err := xmltree.Parse(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return t.TransformDocument(ctx, doc)
}

// TransformDocument renders an already parsed book. doc is not modified.
func (t *Transformer) TransformDocument(ctx context.Context, doc *etree.Document) (*Result, error) {
	if t.engine == nil {
		return nil, ErrNoEngine
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := t.stylesheets.Resolve(t.baseDir, t.stylesheet)
	if err != nil {
		return nil, err
	}

	res := &Result{indent: t.indent}
	if t.parseMetadata {
		res.Metadata, err = dublincore.FromElement(doc.Root())
		if err != nil {
			return nil, fmt.Errorf("reading metadata: %w", err)
		}
	}

	out, err := t.engine.Apply(ctx, path, doc, t.funcs.clone())
	if err != nil {
		return nil, fmt.Errorf("applying stylesheet %q: %w", t.stylesheet, err)
	}

	if out == nil || out.Root() == nil || !xmltree.HasElement(out.Root(), "p") {
		t.log.Debug("stylesheet produced no paragraphs", zap.String("stylesheet", t.stylesheet))
		res.Document = emptyDocument()
		res.Empty = true
		return res, nil
	}

	root := out.Root()
	opts := append([]annotate.Option{annotate.WithLogger(t.log)}, t.annotate...)
	res.Anchors = annotate.AddAnchors(root, opts...)
	res.TOC = annotate.AddTableOfContents(root, opts...)
	res.Document = out

	t.log.Debug("document transformed",
		zap.String("stylesheet", t.stylesheet),
		zap.Int("anchors", res.Anchors),
		zap.Int("sections", len(res.TOC)))
	return res, nil
}

func emptyDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateElement("empty")
	return doc
}
