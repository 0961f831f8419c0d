package transform

import "strings"

// EntitySubstitutions lists the typographic replacements applied by
// SubstituteEntities, longest pattern first.
var EntitySubstitutions = [][2]string{
	{"---", "—"},
	{"--", "–"},
	{"...", "…"},
	{",,", "„"},
	{`"`, "”"},
}

var entityReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(EntitySubstitutions))
	for _, s := range EntitySubstitutions {
		pairs = append(pairs, s[0], s[1])
	}
	return strings.NewReplacer(pairs...)
}()

// SubstituteEntities joins parts and replaces ASCII dashes, ellipses and
// quotes with their typographic forms. Several parts arrive when a
// stylesheet passes a node set.
func SubstituteEntities(parts ...string) string {
	return entityReplacer.Replace(strings.Join(parts, ""))
}
