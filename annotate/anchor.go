package annotate

import (
	"github.com/beevik/etree"
)

// Anchor classes.
const (
	ClassAnchor = "anchor"
	ClassTarget = "target"
)

// AnchorOptions selects which anchors AddAnchor inserts.
type AnchorOptions struct {
	Link     bool   // <a href="#id" class="anchor">
	Target   bool   // <a name="id" class="target">
	LinkText string // defaults to id
}

// AddAnchor prepends anchors named id to el. When both are requested the
// target comes first. The leading text of el ends up after the anchors.
func AddAnchor(el *etree.Element, id string, opts AnchorOptions) {
	if opts.Link {
		text := opts.LinkText
		if text == "" {
			text = id
		}
		a := etree.NewElement("a")
		a.CreateAttr("href", "#"+id)
		a.CreateAttr("class", ClassAnchor)
		a.SetText(text)
		el.InsertChildAt(0, a)
	}

	if opts.Target {
		a := etree.NewElement("a")
		a.CreateAttr("name", id)
		a.CreateAttr("class", ClassTarget)
		a.SetText(" ")
		el.InsertChildAt(0, a)
	}
}
