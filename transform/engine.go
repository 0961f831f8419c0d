package transform

import (
	"context"

	"github.com/beevik/etree"
)

// FunctionNamespace is the namespace stylesheets bind extension functions
// to.
const FunctionNamespace = "http://wolnelektury.pl/functions"

// Function is an extension function callable from a stylesheet. Node set
// arguments arrive as one string per node.
type Function func(args ...string) string

// Functions maps local names in FunctionNamespace to implementations.
type Functions map[string]Function

// DefaultFunctions returns the extension functions every stylesheet may
// call.
func DefaultFunctions() Functions {
	return Functions{
		"substitute_entities": SubstituteEntities,
	}
}

func (f Functions) clone() Functions {
	out := make(Functions, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Engine evaluates a stylesheet against a parsed document. Implementations
// must not modify doc and should honour ctx cancellation.
type Engine interface {
	Apply(ctx context.Context, stylesheet string, doc *etree.Document, funcs Functions) (*etree.Document, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, stylesheet string, doc *etree.Document, funcs Functions) (*etree.Document, error)

// Apply calls f.
func (f EngineFunc) Apply(ctx context.Context, stylesheet string, doc *etree.Document, funcs Functions) (*etree.Document, error) {
	return f(ctx, stylesheet, doc, funcs)
}

// Identity is an engine that returns a copy of its input. It serves inputs
// that are already XHTML and only need annotating.
var Identity Engine = EngineFunc(func(ctx context.Context, _ string, doc *etree.Document, _ Functions) (*etree.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return doc.Copy(), nil
})
