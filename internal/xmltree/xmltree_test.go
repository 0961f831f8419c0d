package xmltree

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkOrder(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<a><b><c/></b><d/></a>`))
	require.NoError(t, err)

	var got []string
	err = Walk(doc.Root(), func(ev Event, e *etree.Element) error {
		got = append(got, ev.String()+":"+e.Tag)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"start:a", "start:b", "start:c", "end:c", "end:b", "start:d", "end:d", "end:a",
	}, got)
}

func TestWalkSurvivesInsertion(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<a><b/><c/></a>`))
	require.NoError(t, err)

	var starts []string
	err = Walk(doc.Root(), func(ev Event, e *etree.Element) error {
		if ev == Start {
			starts = append(starts, e.Tag)
			if e.Tag == "a" {
				e.InsertChildAt(0, etree.NewElement("x"))
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, starts)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(`<a><b></a>`))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(``))
	assert.Error(t, err)
}

func TestParseLatin2(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-2\"?><t>\xb1</t>"
	doc, err := ParseBytes([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "ą", doc.Root().Text())
}

func TestFindFirstAndAncestors(t *testing.T) {
	input := `<root xmlns:rdf="` + RDFNS + `"><x><rdf:Description id="one"><y class="k"/></rdf:Description></x><rdf:Description id="two"/></root>`
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	desc := FindFirst(doc.Root(), RDFNS, "Description")
	require.NotNil(t, desc)
	assert.Equal(t, "one", ID(desc))

	y := desc.ChildElements()[0]
	assert.Equal(t, "k", Class(y))
	assert.True(t, HasAncestor(y, func(e *etree.Element) bool { return e.Tag == "x" }))
	assert.False(t, HasAncestor(y, func(e *etree.Element) bool { return e.Tag == "zzz" }))

	assert.Nil(t, FindFirst(doc.Root(), DCNS, "Description"))
}

func TestDirectText(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<h2>Chapter <em>one</em> begins</h2>`))
	require.NoError(t, err)
	assert.Equal(t, "Chapter  begins", DirectText(doc.Root()))
	assert.True(t, HasElement(doc.Root(), "em"))
	assert.False(t, HasElement(doc.Root(), "p"))
}
