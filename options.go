package librarian

import (
	"go.uber.org/zap"

	"github.com/tsawler/librarian/annotate"
	"github.com/tsawler/librarian/fragments"
	"github.com/tsawler/librarian/transform"
)

// ExtractOptions holds configuration for an Extractor.
type ExtractOptions struct {
	// Fragment extraction
	containerID string

	// Annotation
	tocTitle   string
	exclusions []string // nil means annotate.DefaultExclusions

	// Transformation
	engine        transform.Engine // nil means XHTML input only
	stylesheet    string
	stylesheets   transform.Stylesheets
	stylesheetDir string
	indent        int

	logger *zap.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		containerID: fragments.DefaultContainerID,
		tocTitle:    annotate.DefaultTOCTitle,
		exclusions:  nil,
		engine:      nil,
		stylesheet:  transform.Legacy,
		indent:      2,
		logger:      zap.NewNop(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		containerID:   o.containerID,
		tocTitle:      o.tocTitle,
		engine:        o.engine,
		stylesheet:    o.stylesheet,
		stylesheetDir: o.stylesheetDir,
		indent:        o.indent,
		logger:        o.logger,
	}

	if o.exclusions != nil {
		newOpts.exclusions = make([]string, len(o.exclusions))
		copy(newOpts.exclusions, o.exclusions)
	}

	if o.stylesheets != nil {
		newOpts.stylesheets = make(transform.Stylesheets, len(o.stylesheets))
		for k, v := range o.stylesheets {
			newOpts.stylesheets[k] = v
		}
	}

	return newOpts
}

func (o ExtractOptions) fragmentOptions() []fragments.Option {
	return []fragments.Option{
		fragments.WithContainerID(o.containerID),
		fragments.WithLogger(o.logger),
	}
}

func (o ExtractOptions) annotateOptions() []annotate.Option {
	opts := []annotate.Option{annotate.WithTOCTitle(o.tocTitle)}
	if o.exclusions != nil {
		opts = append(opts, annotate.WithExclusions(o.exclusions...))
	}
	return opts
}
