package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/librarian/transform"
)

func init() {
	cmd := &cobra.Command{
		Use:   "entities [text]...",
		Short: "Replace ASCII dashes, ellipses and quotes with typographic ones",
		Long:  "Apply the typographic substitutions used during rendering to the arguments, or to stdin when no arguments are given.",
		RunE:  runEntities,
	}

	RootCmd.AddCommand(cmd)
}

func runEntities(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = strings.TrimRight(string(b), "\n")
	}

	fmt.Fprintln(cmd.OutOrStdout(), transform.SubstituteEntities(text))
	return nil
}
