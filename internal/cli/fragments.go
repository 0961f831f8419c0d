package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/librarian/fragments"
)

func init() {
	cmd := &cobra.Command{
		Use:   "fragments <file>",
		Short: "Extract thematic fragments",
		Long: `Extract the fragments between theme-begin and theme-end markers of a rendered
book. Closed fragments are printed; fragments that never close and recovered
problems are reported on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: runFragments,
	}

	cmd.Flags().StringP("format", "f", "markup", "Output format: markup or markdown")

	RootCmd.AddCommand(cmd)
}

func runFragments(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "markup" && format != "markdown" {
		return fmt.Errorf("unknown format %q: must be markup or markdown", format)
	}

	res, warnings, err := openBook(args[0]).Fragments()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, frag := range res.Closed {
		var (
			text     string
			replayed []fragments.Warning
		)
		if format == "markdown" {
			text, replayed, err = fragments.Markdown(frag)
			if err != nil {
				return fmt.Errorf("fragment %q: %w", frag.ID, err)
			}
		} else {
			text, replayed = fragments.Render(frag)
		}
		warnings = append(warnings, replayed...)

		fmt.Fprintf(out, "--- %s: %s\n%s\n", frag.ID, frag.Themes, text)
	}

	for _, frag := range res.Open {
		warnf(cmd, "fragment %q (%s) was never closed", frag.ID, frag.Themes)
	}
	for _, w := range warnings {
		warnf(cmd, "%s", w)
	}
	return nil
}
