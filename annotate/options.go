package annotate

import "go.uber.org/zap"

// DefaultTOCTitle heads the table of contents block.
const DefaultTOCTitle = "Spis treści"

// DefaultExclusions lists the classes whose contents are never numbered.
var DefaultExclusions = []string{"note", "motto", "motto_podpis", "motto-caption", "dedication"}

type options struct {
	exclusions []string
	tocTitle   string
	log        *zap.Logger
}

// Option configures AddAnchors and AddTableOfContents.
type Option func(*options)

// WithExclusions replaces the classes whose descendants AddAnchors skips.
func WithExclusions(classes ...string) Option {
	return func(o *options) {
		o.exclusions = append([]string(nil), classes...)
	}
}

// WithTOCTitle sets the heading of the table of contents block.
func WithTOCTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.tocTitle = title
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func defaultOptions() options {
	return options{
		exclusions: DefaultExclusions,
		tocTitle:   DefaultTOCTitle,
		log:        zap.NewNop(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) excluded(class string) bool {
	for _, c := range o.exclusions {
		if c == class {
			return true
		}
	}
	return false
}
