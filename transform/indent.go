package transform

import (
	"strings"

	"github.com/beevik/etree"
)

// textLevel lists elements whose children are written as they are, because
// whitespace between their inline children is rendered.
var textLevel = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"a": true, "span": true, "em": true, "strong": true, "i": true, "b": true,
	"sup": true, "sub": true, "li": true, "dt": true, "dd": true, "td": true,
	"th": true, "pre": true,
}

// indentBlocks puts each child of a block element on its own line. Elements
// holding text of their own, or listed in textLevel, keep their content
// byte for byte.
func indentBlocks(e *etree.Element, depth, spaces int) {
	if !isBlock(e) {
		return
	}

	for _, tok := range append([]etree.Token(nil), e.Child...) {
		switch c := tok.(type) {
		case *etree.CharData:
			e.RemoveChild(c)
		case *etree.Element:
			indentBlocks(c, depth+1, spaces)
		}
	}

	inner := "\n" + strings.Repeat(" ", (depth+1)*spaces)
	for i := len(e.Child) - 1; i >= 0; i-- {
		e.InsertChildAt(i, etree.NewText(inner))
	}
	e.AddChild(etree.NewText("\n" + strings.Repeat(" ", depth*spaces)))
}

func isBlock(e *etree.Element) bool {
	if textLevel[e.Tag] || len(e.ChildElements()) == 0 {
		return false
	}
	for _, tok := range e.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return false
		}
	}
	return true
}
