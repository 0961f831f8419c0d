package transform

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// ErrUnknownStylesheet is returned for a stylesheet name with no registered
// path.
var ErrUnknownStylesheet = errors.New("transform: unknown stylesheet")

// Stylesheet names.
const (
	Legacy  = "legacy"
	Full    = "full"
	Partial = "partial"
)

// Stylesheets maps stylesheet names to file paths. Relative paths are
// resolved against a base directory.
type Stylesheets map[string]string

// DefaultStylesheets returns the stock stylesheet table.
func DefaultStylesheets() Stylesheets {
	return Stylesheets{
		Legacy:  "xslt/book2html.xslt",
		Full:    "xslt/wl2html_full.xslt",
		Partial: "xslt/wl2html_partial.xslt",
	}
}

// Resolve returns the path of the named stylesheet, joined to base when the
// registered path is relative.
func (s Stylesheets) Resolve(base, name string) (string, error) {
	p, ok := s[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStylesheet, name)
	}
	if base != "" && !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return p, nil
}

// Names returns the registered names in sorted order.
func (s Stylesheets) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s Stylesheets) clone() Stylesheets {
	out := make(Stylesheets, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
