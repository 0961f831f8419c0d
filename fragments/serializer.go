package fragments

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// ClosedEvents replays the fragment's events and returns them balanced:
// closings with no pending opening are dropped and reported, and openings
// still pending at the end are closed in reverse order by synthetic events.
// Synthetic closings stand for elements that continue past the fragment, so
// Render writes no tail after them.
func ClosedEvents(f *Fragment) ([]Event, []Warning) {
	var (
		out      = make([]Event, 0, len(f.Events))
		pending  []*Snapshot
		warnings []Warning
	)

	for _, ev := range f.Events {
		switch ev.Kind {
		case Start:
			pending = append(pending, ev.Element)
		case End:
			if len(pending) == 0 {
				warnings = append(warnings, Warning{Kind: UnbalancedTag, FragmentID: f.ID, Tag: ev.Element.Name})
				continue
			}
			pending = pending[:len(pending)-1]
		}
		out = append(out, ev)
	}

	for i := len(pending) - 1; i >= 0; i-- {
		out = append(out, Event{Kind: End, Element: pending[i], Synthetic: true})
	}
	return out, warnings
}

// Render serialises a fragment as well-formed markup: each opening tag is
// followed by the element's leading text, each recorded closing tag by the
// element's tail. Synthetic closings carry no tail since that text lies
// outside the fragment.
func Render(f *Fragment) (string, []Warning) {
	events, warnings := ClosedEvents(f)

	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	cur := &doc.Element

	for _, ev := range events {
		switch ev.Kind {
		case Start:
			e := cur.CreateElement(ev.Element.Name)
			for _, a := range ev.Element.Attr {
				e.CreateAttr(a.Name, a.Value)
			}
			if ev.Element.Text != "" {
				e.SetText(ev.Element.Text)
			}
			cur = e
		case End:
			closed := cur
			cur = cur.Parent()
			if !ev.Synthetic && ev.Element.Tail != "" {
				closed.SetTail(ev.Element.Tail)
			}
		case Text:
			cur.CreateText(ev.Data)
		}
	}

	out, _ := doc.WriteToString() // in-memory writes do not fail
	return out, warnings
}

// RenderAll renders every fragment keyed by id, logging replay warnings.
func RenderAll(frags []*Fragment, log *zap.Logger) (map[string]string, []Warning) {
	if log == nil {
		log = zap.NewNop()
	}
	out := make(map[string]string, len(frags))
	var all []Warning
	for _, f := range frags {
		text, warnings := Render(f)
		for _, w := range warnings {
			log.Warn(w.Kind.String(), zap.String("fid", w.FragmentID), zap.String("tag", w.Tag))
		}
		all = append(all, warnings...)
		out[f.ID] = text
	}
	return out, all
}
