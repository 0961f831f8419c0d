package annotate

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/librarian/internal/xmltree"
)

func parse(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc, err := xmltree.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc.Root()
}

func write(t *testing.T, e *etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	doc.SetRoot(e.Copy())
	out, err := doc.WriteToString()
	require.NoError(t, err)
	return out
}

func anchorIDs(root *etree.Element) []string {
	var ids []string
	for _, e := range xmltree.Descendants(root) {
		if e.Tag == "a" && xmltree.Class(e) == ClassTarget {
			ids = append(ids, xmltree.Attr(e, "name"))
		}
	}
	return ids
}

func TestAddAnchor(t *testing.T) {
	tests := []struct {
		name string
		opts AnchorOptions
		want string
	}{
		{
			name: "link and target",
			opts: AnchorOptions{Link: true, Target: true, LinkText: "1"},
			want: `<p><a name="f1" class="target"> </a><a href="#f1" class="anchor">1</a>text<em>x</em></p>`,
		},
		{
			name: "link only defaults text to id",
			opts: AnchorOptions{Link: true},
			want: `<p><a href="#f1" class="anchor">f1</a>text<em>x</em></p>`,
		},
		{
			name: "target only",
			opts: AnchorOptions{Target: true},
			want: `<p><a name="f1" class="target"> </a>text<em>x</em></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parse(t, `<p>text<em>x</em></p>`)
			AddAnchor(p, "f1", tt.opts)
			assert.Equal(t, tt.want, write(t, p))
			assert.Equal(t, "", p.Text())
		})
	}
}

func TestAddAnchorsVerses(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<div id="book-text"><div class="stanza">`)
	for i := 1; i <= 7; i++ {
		sb.WriteString(`<p class="verse">line</p>`)
	}
	sb.WriteString(`</div></div>`)
	root := parse(t, sb.String())

	assert.Equal(t, 2, AddAnchors(root))
	assert.Equal(t, []string{"f1", "f5"}, anchorIDs(root))

	first := root.FindElement("//p")
	links := first.SelectElements("a")
	require.Len(t, links, 2)
	assert.Equal(t, "1", links[1].Text())
	assert.Equal(t, "line", links[1].Tail())
}

func TestAddAnchorsParagraphsContinueCounter(t *testing.T) {
	root := parse(t, `<div>`+
		`<p class="verse">a</p><p class="verse">b</p><p class="verse">c</p>`+
		`<div class="paragraph">one</div><p class="paragraph">two</p>`+
		`<p class="verse">d</p>`+
		`</div>`)

	// The trailing verse is line 6: counted but not anchored.
	assert.Equal(t, 3, AddAnchors(root))
	assert.Equal(t, []string{"f1", "f4", "f5"}, anchorIDs(root))
}

func TestAddAnchorsSkipsExcludedAncestors(t *testing.T) {
	root := parse(t, `<div>`+
		`<div class="note"><p class="paragraph">n</p></div>`+
		`<blockquote><p class="paragraph">q</p></blockquote>`+
		`<div class="motto"><p class="verse">m</p></div>`+
		`<div class="motto-caption"><p class="verse">c</p></div>`+
		`<p class="paragraph">kept</p>`+
		`</div>`)

	assert.Equal(t, 1, AddAnchors(root))
	assert.Equal(t, []string{"f1"}, anchorIDs(root))
}

func TestAddAnchorsCustomExclusions(t *testing.T) {
	root := parse(t, `<div><div class="aside"><p class="paragraph">x</p></div><div class="note"><p class="paragraph">y</p></div></div>`)

	assert.Equal(t, 1, AddAnchors(root, WithExclusions("aside")))
}

func TestAddTableOfContents(t *testing.T) {
	root := parse(t, `<div id="book-text">`+
		`<h2>One</h2><p>a</p>`+
		`<h3>One.A</h3><h3>One.B</h3>`+
		`<h2>Two<em>!</em></h2>`+
		`<div id="footnotes"><h2>Notes</h2></div>`+
		`<ul class="person-list"><h3>Cast</h3></ul>`+
		`</div>`)

	toc := AddTableOfContents(root)
	require.Len(t, toc, 2)
	assert.Equal(t, TocEntry{Number: 1, Level: H2, Text: "One", Children: []TocEntry{
		{Number: 2, Level: H3, Text: "One.A"},
		{Number: 3, Level: H3, Text: "One.B"},
	}}, toc[0])
	assert.Equal(t, TocEntry{Number: 4, Level: H2, Text: "Two"}, toc[1])

	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, anchorIDs(root))

	block := root.ChildElements()[0]
	assert.Equal(t, "toc", xmltree.ID(block))
	assert.Equal(t, DefaultTOCTitle, block.SelectElement("h2").Text())

	items := block.SelectElement("ol").SelectElements("li")
	require.Len(t, items, 2)
	assert.Equal(t, `<li><a href="#s1" class="anchor">One</a><ol><li><a href="#s2" class="anchor">One.A</a></li><li><a href="#s3" class="anchor">One.B</a></li></ol></li>`,
		write(t, items[0]))
	assert.Nil(t, items[1].SelectElement("ol"))
}

func TestAddTableOfContentsLeadingH3(t *testing.T) {
	root := parse(t, `<div><h3>Intro</h3><h2>Main</h2><h3>Sub</h3></div>`)

	toc := AddTableOfContents(root, WithTOCTitle("Contents"))
	require.Len(t, toc, 2)
	assert.Equal(t, H3, toc[0].Level)
	assert.Len(t, toc[1].Children, 1)
	assert.Equal(t, "Contents", root.FindElement("./div[@id='toc']/h2").Text())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "h2", H2.String())
	assert.Equal(t, "h3", H3.String())
}
