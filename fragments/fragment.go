package fragments

import (
	"github.com/beevik/etree"
)

// EventKind identifies a recorded fragment event.
type EventKind int

const (
	// Start opens an element.
	Start EventKind = iota
	// End closes an element.
	End
	// Text is a run of character data.
	Text
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "text"
	}
}

// Attr is a copied element attribute.
type Attr struct {
	Name  string // prefixed name, e.g. "xml:lang"
	Value string
}

// Snapshot is an immutable copy of the parts of an element a fragment needs:
// its name, attributes, leading text and tail.
type Snapshot struct {
	Name string
	Attr []Attr
	Text string // text before the first child
	Tail string // text after the closing tag
}

// NewSnapshot copies e. Later changes to e do not affect the snapshot.
func NewSnapshot(e *etree.Element) *Snapshot {
	s := &Snapshot{
		Name: e.FullTag(),
		Text: e.Text(),
		Tail: e.Tail(),
	}
	if len(e.Attr) > 0 {
		s.Attr = make([]Attr, len(e.Attr))
		for i, a := range e.Attr {
			s.Attr[i] = Attr{Name: a.FullKey(), Value: a.Value}
		}
	}
	return s
}

// AttrValue returns the value of the named attribute, or "".
func (s *Snapshot) AttrValue(name string) string {
	for _, a := range s.Attr {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Event is one entry of a fragment's log. Start and End events carry an
// element snapshot, Text events carry Data.
type Event struct {
	Kind    EventKind
	Element *Snapshot
	Data    string

	// Synthetic marks events that were not read from the document: ancestor
	// openings added when a fragment begins inside nested markup, and
	// closings added during replay.
	Synthetic bool
}

// Fragment is a thematic range of a document.
type Fragment struct {
	ID     string
	Themes string
	Events []Event
}

// NewFragment returns an empty fragment.
func NewFragment(id, themes string) *Fragment {
	return &Fragment{ID: id, Themes: themes}
}

// Append adds an event to the fragment's log.
func (f *Fragment) Append(ev Event) {
	f.Events = append(f.Events, ev)
}
