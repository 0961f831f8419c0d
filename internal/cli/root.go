// Package cli implements the librarian CLI commands.
package cli

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/librarian"
	"github.com/tsawler/librarian/internal/config"
	"github.com/tsawler/librarian/internal/logging"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "librarian",
	Short: "Read metadata, fragments and annotations of book documents",
	Long: `librarian reads XML book documents.

It prints their Dublin Core metadata, extracts the thematic fragments marked
in rendered XHTML, and numbers verses and paragraphs while adding a table of
contents.

Settings are read from librarian.yaml in the working directory, or from the
file named by --config.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./librarian.yaml when present)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := c.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	l, err := logging.New(level, c.LogFormat)
	if err != nil {
		return err
	}

	cfg, logger = c, l
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	c, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.Default(), nil
	}
	return c, err
}

// settings returns the loaded config, falling back to defaults when the
// command runs without setup.
func settings() (*config.Config, *zap.Logger) {
	if cfg == nil {
		return config.Default(), zap.NewNop()
	}
	return cfg, logger
}

// openBook returns an extractor configured from the loaded settings.
func openBook(path string) *librarian.Extractor {
	c, l := settings()
	return librarian.Open(path).
		Logger(l).
		ContainerID(c.ContainerID).
		TOCTitle(c.TOCTitle).
		Indent(c.Indent).
		ExcludeClasses(c.AnchorExclusions...).
		Stylesheets(c.StylesheetDir, c.Stylesheets).
		Stylesheet(c.Stylesheet)
}

// expandArgs resolves glob patterns such as "books/**/*.xml". Arguments
// without matches are kept so that opening them reports the problem.
func expandArgs(patterns []string) ([]string, error) {
	var paths []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			paths = append(paths, p)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
}
