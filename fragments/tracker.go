package fragments

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/tsawler/librarian/internal/xmltree"
)

// Marker classes and attributes in transformed books.
const (
	ClassThemeBegin = "theme-begin"
	ClassThemeEnd   = "theme-end"
	ClassAnnotation = "annotation"
	AttrFragmentID  = "fid"

	// DefaultContainerID is the id of the element wrapping the book text.
	DefaultContainerID = "book-text"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger recovered problems are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithContainerID overrides the id of the element wrapping the book text.
func WithContainerID(id string) Option {
	return func(t *Tracker) { t.container = id }
}

// Tracker follows theme markers through a start/end event stream and
// collects the events between them. A Tracker is not safe for concurrent use.
type Tracker struct {
	container string
	log       *zap.Logger

	open        map[string]*Fragment
	openOrder   []string
	closed      map[string]*Fragment
	closedOrder []string
	warnings    []Warning

	// skip counts nesting depth inside an annotation subtree.
	skip int
}

// NewTracker returns an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		container: DefaultContainerID,
		log:       zap.NewNop(),
		open:      make(map[string]*Fragment),
		closed:    make(map[string]*Fragment),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Walk feeds every element of root to Handle in document order.
func (t *Tracker) Walk(root *etree.Element) {
	_ = xmltree.Walk(root, func(ev xmltree.Event, e *etree.Element) error {
		t.Handle(ev, e)
		return nil
	})
}

// Handle processes one start or end event.
func (t *Tracker) Handle(ev xmltree.Event, e *etree.Element) {
	switch xmltree.Class(e) {
	case ClassThemeBegin:
		if ev == xmltree.End {
			t.begin(e)
			t.appendMarkerTail(e)
		}
		return
	case ClassThemeEnd:
		if ev == xmltree.End {
			t.end(e)
			t.appendMarkerTail(e)
		}
		return
	}

	if t.skip > 0 {
		if ev == xmltree.Start {
			t.skip++
			return
		}
		t.skip--
		if t.skip == 0 {
			t.appendTail(e)
		}
		return
	}

	if isAnnotation(e) {
		if ev == xmltree.Start {
			t.skip = 1
		} else {
			t.appendTail(e)
		}
		return
	}

	kind := Start
	if ev == xmltree.End {
		kind = End
	}
	t.appendAll(Event{Kind: kind, Element: NewSnapshot(e)})
}

// begin opens a fragment for a theme-begin marker. When the marker sits
// below the container, the enclosing elements are opened first so the
// fragment renders as self-contained markup. Their leading text lies before
// the marker and is left out.
func (t *Tracker) begin(marker *etree.Element) {
	id := xmltree.Attr(marker, AttrFragmentID)
	frag := NewFragment(id, marker.Text())

	var chain []*etree.Element
	for p := marker.Parent(); p != nil && !isDocumentNode(p) && xmltree.ID(p) != t.container; p = p.Parent() {
		chain = append(chain, p)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		snap := NewSnapshot(chain[i])
		snap.Text = ""
		frag.Append(Event{Kind: Start, Element: snap, Synthetic: true})
	}

	if _, dup := t.open[id]; dup {
		t.log.Debug("fragment reopened before being closed", zap.String("fid", id))
		t.openOrder = remove(t.openOrder, id)
	}
	t.open[id] = frag
	t.openOrder = append(t.openOrder, id)
}

// end moves the fragment named by a theme-end marker to the closed set.
func (t *Tracker) end(marker *etree.Element) {
	id := xmltree.Attr(marker, AttrFragmentID)
	frag, ok := t.open[id]
	if !ok {
		t.warn(Warning{Kind: DanglingMarker, FragmentID: id})
		return
	}

	delete(t.open, id)
	t.openOrder = remove(t.openOrder, id)
	if _, dup := t.closed[id]; dup {
		t.closedOrder = remove(t.closedOrder, id)
	}
	t.closed[id] = frag
	t.closedOrder = append(t.closedOrder, id)
}

// appendMarkerTail records a marker's tail unless the marker sits inside an
// annotation, whose text never reaches fragment bodies.
func (t *Tracker) appendMarkerTail(e *etree.Element) {
	if t.skip == 0 {
		t.appendTail(e)
	}
}

func (t *Tracker) appendTail(e *etree.Element) {
	if tail := e.Tail(); tail != "" {
		t.appendAll(Event{Kind: Text, Data: tail})
	}
}

// appendAll records ev in every open fragment.
func (t *Tracker) appendAll(ev Event) {
	for _, id := range t.openOrder {
		t.open[id].Append(ev)
	}
}

func (t *Tracker) warn(w Warning) {
	t.warnings = append(t.warnings, w)
	t.log.Warn(w.Kind.String(), zap.String("fid", w.FragmentID), zap.String("detail", w.String()))
}

// Closed returns the fragments closed so far, in closing order.
func (t *Tracker) Closed() []*Fragment {
	out := make([]*Fragment, len(t.closedOrder))
	for i, id := range t.closedOrder {
		out[i] = t.closed[id]
	}
	return out
}

// Open returns the fragments still open, in opening order.
func (t *Tracker) Open() []*Fragment {
	out := make([]*Fragment, len(t.openOrder))
	for i, id := range t.openOrder {
		out[i] = t.open[id]
	}
	return out
}

// Warnings returns the problems recovered from so far.
func (t *Tracker) Warnings() []Warning {
	return append([]Warning(nil), t.warnings...)
}

func isAnnotation(e *etree.Element) bool {
	return xmltree.Attr(e, "name") != "" || xmltree.Class(e) == ClassAnnotation
}

// isDocumentNode reports whether e is the document itself rather than an
// element.
func isDocumentNode(e *etree.Element) bool {
	return e.Parent() == nil && e.Tag == ""
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
