package fragments

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Markdown renders the fragment and converts the markup to Markdown.
func Markdown(f *Fragment) (string, []Warning, error) {
	markup, warnings := Render(f)
	converter := md.NewConverter("", true, nil)
	text, err := converter.ConvertString(markup)
	if err != nil {
		return "", warnings, err
	}
	return strings.TrimSpace(text), warnings, nil
}
