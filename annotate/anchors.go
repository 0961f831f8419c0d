package annotate

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/tsawler/librarian/internal/xmltree"
)

// AddAnchors numbers the verse lines and paragraphs under root. Verses
// advance the counter whether or not they are anchored; only the first line
// and every fifth line get anchors. Paragraphs are always anchored. Anchor
// ids are "f" followed by the counter. Elements inside notes, mottos,
// dedications and blockquotes are skipped.
//
// AddAnchors returns the number of elements anchored.
func AddAnchors(root *etree.Element, opts ...Option) int {
	o := buildOptions(opts)

	counter, added := 1, 0
	for _, e := range xmltree.Descendants(root) {
		if xmltree.HasAncestor(e, o.skipAncestor) {
			continue
		}

		class := xmltree.Class(e)
		switch {
		case e.Tag == "p" && strings.Contains(class, "verse"):
			if counter == 1 || counter%5 == 0 {
				addNumbered(e, counter)
				added++
			}
			counter++
		case strings.Contains(class, "paragraph"):
			addNumbered(e, counter)
			added++
			counter++
		}
	}

	o.log.Debug("anchors added", zap.Int("anchors", added), zap.Int("units", counter-1))
	return added
}

func addNumbered(e *etree.Element, n int) {
	num := strconv.Itoa(n)
	AddAnchor(e, "f"+num, AnchorOptions{Link: true, Target: true, LinkText: num})
}

func (o options) skipAncestor(e *etree.Element) bool {
	return e.Tag == "blockquote" || o.excluded(xmltree.Class(e))
}
