package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	cmd := &cobra.Command{
		Use:   "annotate <file>",
		Short: "Number verses and paragraphs and add a table of contents",
		Long:  "Annotate a rendered XHTML book with verse and paragraph anchors and a table of contents, writing the result to stdout or to -o.",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnnotate,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")

	RootCmd.AddCommand(cmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	_, l := settings()

	res, _, err := openBook(args[0]).WithContext(cmd.Context()).Annotate()
	if err != nil {
		return err
	}
	l.Debug("annotated", zap.String("file", args[0]), zap.Int("anchors", res.Anchors), zap.Int("sections", len(res.TOC)))

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if _, err := res.WriteTo(w); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
