package transform

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/librarian/annotate"
	"github.com/tsawler/librarian/dublincore"
	"github.com/tsawler/librarian/internal/xmltree"
)

const book = `<?xml version="1.0" encoding="utf-8"?>
<utwor>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:dc="http://purl.org/dc/elements/1.1/">
<rdf:Description rdf:about="http://example.org/lektura/test">
<dc:creator>Prus, Bolesław</dc:creator>
<dc:title>Kamizelka</dc:title>
<dc:publisher>Fundacja Nowoczesna Polska</dc:publisher>
<dc:subject.period>Pozytywizm</dc:subject.period>
<dc:subject.type>Epika</dc:subject.type>
<dc:subject.genre>Nowela</dc:subject.genre>
<dc:identifier.url>http://example.org/lektura/test</dc:identifier.url>
<dc:rights>Domena publiczna</dc:rights>
<dc:date>1882</dc:date>
</rdf:Description>
</rdf:RDF>
<opowiadanie>
<naglowek_rozdzialu>Rozdział</naglowek_rozdzialu>
<akap>Pierwszy -- akapit...</akap>
<akap>,,Drugi"</akap>
</opowiadanie>
</utwor>`

// recordingEngine maps akap to numbered paragraphs and chapter headings to
// h2, passing text through substitute_entities.
type recordingEngine struct {
	stylesheet string
	calls      int
}

func (e *recordingEngine) Apply(_ context.Context, stylesheet string, doc *etree.Document, funcs Functions) (*etree.Document, error) {
	e.stylesheet = stylesheet
	e.calls++

	out := etree.NewDocument()
	body := out.CreateElement("div")
	body.CreateAttr("id", "book-text")
	for _, el := range xmltree.Descendants(doc.Root()) {
		switch el.Tag {
		case "naglowek_rozdzialu":
			body.CreateElement("h2").SetText(el.Text())
		case "akap":
			p := body.CreateElement("p")
			p.CreateAttr("class", "paragraph")
			p.SetText(funcs["substitute_entities"](el.Text()))
		}
	}
	return out, nil
}

func TestSubstituteEntities(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"a---b"}, "a—b"},
		{[]string{"a--b"}, "a–b"},
		{[]string{"a----b"}, "a—-b"},
		{[]string{"wait..."}, "wait…"},
		{[]string{`,,cytat"`}, "„cytat”"},
		{[]string{"no change"}, "no change"},
		{[]string{"node", "--", "set"}, "node–set"},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SubstituteEntities(tt.in...), "%q", tt.in)
	}
}

func TestStylesheetsResolve(t *testing.T) {
	s := DefaultStylesheets()
	assert.Equal(t, []string{Full, Legacy, Partial}, s.Names())

	p, err := s.Resolve("", Legacy)
	require.NoError(t, err)
	assert.Equal(t, "xslt/book2html.xslt", p)

	p, err = s.Resolve("/usr/share/librarian", Full)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/usr/share/librarian", "xslt/wl2html_full.xslt"), p)

	_, err = s.Resolve("", "fancy")
	assert.ErrorIs(t, err, ErrUnknownStylesheet)
}

func TestTransform(t *testing.T) {
	engine := &recordingEngine{}
	tr := New(engine, WithStylesheet(Partial), WithStylesheetDir("/opt/wl"))

	res, err := tr.Transform(context.Background(), strings.NewReader(book))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/opt/wl", "xslt/wl2html_partial.xslt"), engine.stylesheet)
	assert.False(t, res.Empty)
	assert.Equal(t, 2, res.Anchors)
	require.Len(t, res.TOC, 1)
	assert.Equal(t, "Rozdział", res.TOC[0].Text)

	require.NotNil(t, res.Metadata)
	assert.Equal(t, "Kamizelka", res.Metadata.Title())

	root := res.Document.Root()
	assert.Equal(t, "toc", xmltree.ID(root.ChildElements()[0]))

	paras := root.SelectElements("p")
	require.Len(t, paras, 2)
	assert.Equal(t, "Pierwszy – akapit…", paras[0].SelectElements("a")[1].Tail())
	assert.Equal(t, "„Drugi”", paras[1].SelectElements("a")[1].Tail())
}

func TestTransformEmptyResult(t *testing.T) {
	engine := EngineFunc(func(context.Context, string, *etree.Document, Functions) (*etree.Document, error) {
		out := etree.NewDocument()
		out.CreateElement("div").CreateElement("h2").SetText("only a heading")
		return out, nil
	})

	res, err := New(engine).Transform(context.Background(), strings.NewReader(book))
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Equal(t, "<empty/>", res.String())
	assert.Nil(t, res.TOC)
}

func TestTransformErrors(t *testing.T) {
	ctx := context.Background()

	_, err := New(&recordingEngine{}).Transform(ctx, strings.NewReader("<utwor><akap></utwor>"))
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)

	_, err = New(&recordingEngine{}, WithStylesheet("fancy")).Transform(ctx, strings.NewReader(book))
	assert.ErrorIs(t, err, ErrUnknownStylesheet)

	_, err = New(nil).Transform(ctx, strings.NewReader(book))
	assert.ErrorIs(t, err, ErrNoEngine)

	_, err = New(&recordingEngine{}).Transform(ctx, strings.NewReader(`<utwor><akap>x</akap></utwor>`))
	assert.ErrorIs(t, err, dublincore.ErrNoMetadataSection)

	boom := errors.New("boom")
	failing := EngineFunc(func(context.Context, string, *etree.Document, Functions) (*etree.Document, error) {
		return nil, boom
	})
	_, err = New(failing).Transform(ctx, strings.NewReader(book))
	assert.ErrorIs(t, err, boom)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	engine := &recordingEngine{}
	_, err = New(engine).Transform(cancelled, strings.NewReader(book))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, engine.calls)
}

func TestIdentityEngineAnnotates(t *testing.T) {
	xhtml := `<html><body><div id="book-text"><h2>Tytuł</h2><p class="verse">raz</p><p class="verse">dwa</p></div></body></html>`

	tr := New(Identity, WithoutMetadata(), WithAnnotateOptions(annotate.WithTOCTitle("Contents")))
	doc, err := xmltree.Parse(strings.NewReader(xhtml))
	require.NoError(t, err)

	res, err := tr.TransformDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Nil(t, res.Metadata)
	assert.Equal(t, 1, res.Anchors)
	assert.Equal(t, "Contents", res.Document.FindElement("//div[@id='toc']/h2").Text())

	// The input tree is left alone.
	assert.Nil(t, doc.FindElement("//div[@id='toc']"))
}

func TestWithFunctionsOverrides(t *testing.T) {
	engine := &recordingEngine{}
	upper := WithFunctions(Functions{"substitute_entities": func(args ...string) string {
		return strings.ToUpper(strings.Join(args, ""))
	}})

	res, err := New(engine, upper).Transform(context.Background(), strings.NewReader(book))
	require.NoError(t, err)
	assert.Contains(t, res.String(), "PIERWSZY -- AKAPIT...")
}

func TestResultWriteTo(t *testing.T) {
	res, err := New(&recordingEngine{}).Transform(context.Background(), strings.NewReader(book))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := res.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), "\n  <div id=\"toc\">")
	assert.Contains(t, buf.String(), `<a name="f1" class="target"> </a>`)
}

func TestResultWriteToKeepsMixedContent(t *testing.T) {
	const page = `<html><body><div id="book-text">` +
		`<p class="paragraph">wor<em>d</em>s</p>` +
		`<p class="paragraph">foo <em>bar</em> <em>baz</em></p>` +
		`</div></body></html>`

	res, err := New(Identity, WithoutMetadata()).Transform(context.Background(), strings.NewReader(page))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = res.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `<a href="#f1" class="anchor">1</a>wor<em>d</em>s</p>`)
	assert.Contains(t, out, `<a href="#f2" class="anchor">2</a>foo <em>bar</em> <em>baz</em></p>`)
	assert.Contains(t, out, "\n  <body>\n    <div id=\"book-text\">\n      <p class=\"paragraph\">")

	_, err = res.WriteTo(&bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, out, res.String())
}
