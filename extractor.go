package librarian

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/tsawler/librarian/dublincore"
	"github.com/tsawler/librarian/format"
	"github.com/tsawler/librarian/fragments"
	"github.com/tsawler/librarian/internal/xmltree"
	"github.com/tsawler/librarian/transform"
)

var (
	// ErrEngineRequired is returned when a source book has to be rendered
	// but no stylesheet engine was configured.
	ErrEngineRequired = errors.New("librarian: rendering a source book requires a stylesheet engine")

	// ErrNoText is returned for inputs that carry metadata only.
	ErrNoText = errors.New("librarian: document has no text")
)

// Extractor provides a fluent interface for reading a book. Each
// configuration method returns a new Extractor instance, making it safe for
// concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte
	loaded   bool

	ctx context.Context

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		loaded:   e.loaded,
		ctx:      e.ctx,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// load reads the source file if not already read.
func (e *Extractor) load() error {
	if e.err != nil {
		return e.err
	}
	if e.loaded {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	data, err := os.ReadFile(e.filename)
	if err != nil {
		return fmt.Errorf("reading book: %w", err)
	}
	e.data = data
	e.loaded = true
	return nil
}

func (e *Extractor) context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithContext sets the context passed to the stylesheet engine.
func (e *Extractor) WithContext(ctx context.Context) *Extractor {
	newExt := e.clone()
	newExt.ctx = ctx
	return newExt
}

// ContainerID sets the id of the element wrapping the book text. Fragment
// snapshots stop at this element.
//
// Example:
//
//	frags, _, err := librarian.Open("book.html").ContainerID("main").Fragments()
func (e *Extractor) ContainerID(id string) *Extractor {
	newExt := e.clone()
	newExt.options.containerID = id
	return newExt
}

// TOCTitle sets the heading of the generated table of contents.
func (e *Extractor) TOCTitle(title string) *Extractor {
	newExt := e.clone()
	newExt.options.tocTitle = title
	return newExt
}

// Indent sets the indentation of annotated output. Negative values disable
// pretty-printing.
func (e *Extractor) Indent(spaces int) *Extractor {
	newExt := e.clone()
	newExt.options.indent = spaces
	return newExt
}

// ExcludeClasses replaces the classes whose contents are never numbered.
//
// Example:
//
//	res, _, err := librarian.Open("book.html").ExcludeClasses("note", "aside").Annotate()
func (e *Extractor) ExcludeClasses(classes ...string) *Extractor {
	newExt := e.clone()
	newExt.options.exclusions = append([]string{}, classes...)
	return newExt
}

// Engine sets the stylesheet engine used to render source books.
func (e *Extractor) Engine(engine transform.Engine) *Extractor {
	newExt := e.clone()
	newExt.options.engine = engine
	return newExt
}

// Stylesheet selects the stylesheet by name ("legacy", "full", "partial").
func (e *Extractor) Stylesheet(name string) *Extractor {
	newExt := e.clone()
	newExt.options.stylesheet = name
	return newExt
}

// Stylesheets adds or overrides stylesheet paths, resolved against dir when
// relative.
func (e *Extractor) Stylesheets(dir string, paths transform.Stylesheets) *Extractor {
	newExt := e.clone()
	newExt.options.stylesheetDir = dir
	if newExt.options.stylesheets == nil {
		newExt.options.stylesheets = make(transform.Stylesheets, len(paths))
	}
	for k, v := range paths {
		newExt.options.stylesheets[k] = v
	}
	return newExt
}

// Logger sets the logger that receives warnings as they are found.
func (e *Extractor) Logger(l *zap.Logger) *Extractor {
	newExt := e.clone()
	if l != nil {
		newExt.options.logger = l
	}
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Format reports the kind of document the Extractor holds, judged by its
// root element and, failing that, by the file extension.
func (e *Extractor) Format() (format.Format, error) {
	if err := e.load(); err != nil {
		return format.Unknown, err
	}
	if f := format.DetectFromBytes(e.data); f != format.Unknown {
		return f, nil
	}
	return format.Detect(e.filename), nil
}

// Metadata parses the Dublin Core section of the book.
//
// Example:
//
//	rec, _, err := librarian.Open("book.xml").Metadata()
//	if errors.Is(err, dublincore.ErrNoMetadataSection) {
//	    // no RDF section
//	}
func (e *Extractor) Metadata() (*dublincore.Record, []Warning, error) {
	if err := e.load(); err != nil {
		return nil, nil, err
	}
	rec, err := dublincore.FromReader(bytes.NewReader(e.data))
	if err != nil {
		return nil, e.warnings, err
	}
	return rec, e.warnings, nil
}

// Fragments extracts the thematic fragments of the book. Source books are
// rendered through the configured engine first.
//
// Example:
//
//	res, warnings, err := librarian.Open("book.html").Fragments()
//	for _, frag := range res.Closed {
//	    fmt.Println(frag.ID, frag.Themes)
//	}
func (e *Extractor) Fragments() (*fragments.Result, []Warning, error) {
	root, err := e.textTree()
	if err != nil {
		return nil, e.warnings, err
	}

	res := fragments.ExtractElement(root, e.options.fragmentOptions()...)
	e.warnings = append(e.warnings, res.Warnings...)
	return res, e.warnings, nil
}

// FragmentTexts renders every closed fragment as markup, keyed by fid.
//
// Example:
//
//	texts := librarian.MustText(librarian.Open("book.html").FragmentTexts())
func (e *Extractor) FragmentTexts() (map[string]string, []Warning, error) {
	res, _, err := e.Fragments()
	if err != nil {
		return nil, e.warnings, err
	}

	texts, warnings := fragments.RenderAll(res.Closed, e.options.logger)
	e.warnings = append(e.warnings, warnings...)
	return texts, e.warnings, nil
}

// FragmentMarkdown renders every closed fragment as Markdown, keyed by fid.
func (e *Extractor) FragmentMarkdown() (map[string]string, []Warning, error) {
	res, _, err := e.Fragments()
	if err != nil {
		return nil, e.warnings, err
	}

	out := make(map[string]string, len(res.Closed))
	for _, frag := range res.Closed {
		text, warnings, err := fragments.Markdown(frag)
		if err != nil {
			return nil, e.warnings, fmt.Errorf("converting fragment %q: %w", frag.ID, err)
		}
		e.warnings = append(e.warnings, warnings...)
		out[frag.ID] = text
	}
	return out, e.warnings, nil
}

// Annotate renders the book with anchors and a table of contents. XHTML
// input is annotated as is; source books need an Engine.
//
// Example:
//
//	res, _, err := librarian.Open("book.html").Annotate()
//	if err == nil {
//	    res.WriteTo(os.Stdout)
//	}
func (e *Extractor) Annotate() (*transform.Result, []Warning, error) {
	if err := e.load(); err != nil {
		return nil, nil, err
	}

	doc, err := xmltree.ParseBytes(e.data)
	if err != nil {
		return nil, e.warnings, &transform.ParseError{Err: err}
	}

	f, err := e.Format()
	if err != nil {
		return nil, e.warnings, err
	}

	var tr *transform.Transformer
	switch f {
	case format.XHTML:
		tr = e.transformer(transform.Identity, transform.WithoutMetadata())
	case format.RDF:
		return nil, e.warnings, ErrNoText
	default:
		if e.options.engine == nil {
			return nil, e.warnings, ErrEngineRequired
		}
		tr = e.transformer(e.options.engine)
	}

	res, err := tr.TransformDocument(e.context(), doc)
	if err != nil {
		return nil, e.warnings, err
	}
	return res, e.warnings, nil
}

func (e *Extractor) transformer(engine transform.Engine, extra ...transform.Option) *transform.Transformer {
	opts := []transform.Option{
		transform.WithLogger(e.options.logger),
		transform.WithStylesheet(e.options.stylesheet),
		transform.WithStylesheetDir(e.options.stylesheetDir),
		transform.WithAnnotateOptions(e.options.annotateOptions()...),
		transform.WithIndent(e.options.indent),
	}
	if e.options.stylesheets != nil {
		opts = append(opts, transform.WithStylesheets(e.options.stylesheets))
	}
	return transform.New(engine, append(opts, extra...)...)
}

// textTree returns the rendered tree fragments are read from.
func (e *Extractor) textTree() (*etree.Element, error) {
	f, err := e.Format()
	if err != nil {
		return nil, err
	}

	switch f {
	case format.XHTML:
		doc, err := xmltree.ParseBytes(e.data)
		if err != nil {
			return nil, fmt.Errorf("parsing document: %w", err)
		}
		return doc.Root(), nil
	case format.RDF:
		return nil, ErrNoText
	case format.Unknown:
		return nil, fmt.Errorf("unsupported input format: %s", f)
	}

	res, _, err := e.Annotate()
	if err != nil {
		return nil, err
	}
	if res.Empty {
		return nil, ErrNoText
	}
	return res.Document.Root(), nil
}
