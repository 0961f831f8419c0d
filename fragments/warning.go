package fragments

import (
	"fmt"
	"strings"
)

// WarningKind classifies a recovered extraction problem.
type WarningKind int

const (
	// DanglingMarker is a theme-end marker whose fid matches no open fragment.
	DanglingMarker WarningKind = iota
	// UnbalancedTag is a recorded closing event with no matching opening
	// event inside the fragment.
	UnbalancedTag
)

// String returns the warning kind name.
func (k WarningKind) String() string {
	switch k {
	case DanglingMarker:
		return "dangling fragment marker"
	case UnbalancedTag:
		return "unbalanced fragment tag"
	default:
		return "unknown"
	}
}

// Warning describes a problem that was skipped over during extraction.
type Warning struct {
	Kind       WarningKind
	FragmentID string
	Tag        string // element involved, for UnbalancedTag
}

// String renders the warning for humans.
func (w Warning) String() string {
	switch w.Kind {
	case DanglingMarker:
		return fmt.Sprintf("end marker for fragment %q that was never opened", w.FragmentID)
	case UnbalancedTag:
		return fmt.Sprintf("fragment %q closes <%s> which it never opened", w.FragmentID, w.Tag)
	default:
		return w.Kind.String()
	}
}

// FormatWarnings joins warnings into a single line-per-warning string.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
