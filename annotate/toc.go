package annotate

import (
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/tsawler/librarian/internal/xmltree"
)

// Level is the heading level of a table of contents entry.
type Level int

const (
	H2 Level = 2
	H3 Level = 3
)

// String returns the heading tag for the level.
func (l Level) String() string {
	return "h" + strconv.Itoa(int(l))
}

// TocEntry is a heading in the table of contents. Number is the section
// counter used in the "s<Number>" anchor id.
type TocEntry struct {
	Number   int
	Level    Level
	Text     string
	Children []TocEntry
}

// ID returns the anchor id of the entry's heading.
func (t TocEntry) ID() string {
	return "s" + strconv.Itoa(t.Number)
}

// AddTableOfContents anchors every h2 and h3 heading under root and inserts
// a <div id="toc"> block linking to them as root's first child. Headings
// inside the footnotes block or a person list are skipped. An h3 directly
// following an h2 entry becomes its child; any other heading is top level.
func AddTableOfContents(root *etree.Element, opts ...Option) []TocEntry {
	o := buildOptions(opts)

	var (
		sections []TocEntry
		counter  = 1
	)
	for _, e := range xmltree.Descendants(root) {
		var level Level
		switch e.Tag {
		case "h2":
			level = H2
		case "h3":
			level = H3
		default:
			continue
		}
		if xmltree.HasAncestor(e, outsideTOC) {
			continue
		}

		entry := TocEntry{Number: counter, Level: level, Text: xmltree.DirectText(e)}
		if last := len(sections) - 1; level == H3 && last >= 0 && sections[last].Level == H2 {
			sections[last].Children = append(sections[last].Children, entry)
		} else {
			sections = append(sections, entry)
		}
		AddAnchor(e, entry.ID(), AnchorOptions{Target: true})
		counter++
	}

	root.InsertChildAt(0, tocBlock(o.tocTitle, sections))
	o.log.Debug("table of contents added", zap.Int("sections", counter-1))
	return sections
}

func outsideTOC(e *etree.Element) bool {
	return xmltree.ID(e) == "footnotes" || xmltree.Class(e) == "person-list"
}

func tocBlock(title string, sections []TocEntry) *etree.Element {
	div := etree.NewElement("div")
	div.CreateAttr("id", "toc")
	div.CreateElement("h2").SetText(title)
	list := div.CreateElement("ol")

	for _, s := range sections {
		li := list.CreateElement("li")
		AddAnchor(li, s.ID(), AnchorOptions{Link: true, LinkText: s.Text})
		if len(s.Children) == 0 {
			continue
		}
		sub := li.CreateElement("ol")
		for _, c := range s.Children {
			AddAnchor(sub.CreateElement("li"), c.ID(), AnchorOptions{Link: true, LinkText: c.Text})
		}
	}
	return div
}
