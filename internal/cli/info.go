package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/librarian/dublincore"
)

func init() {
	cmd := &cobra.Command{
		Use:   "info <file>...",
		Short: "Print book metadata",
		Long:  "Print the Dublin Core metadata of one or more books. Arguments may be glob patterns such as 'books/**/*.xml'.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInfo,
	}

	cmd.Flags().StringP("format", "f", "json", "Output format: json, yaml or xml")

	RootCmd.AddCommand(cmd)
}

type infoEntry struct {
	File     string                `json:"file" yaml:"file"`
	Metadata dublincore.Serialized `json:"metadata" yaml:"metadata"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json", "yaml", "xml":
	default:
		return fmt.Errorf("unknown format %q: must be json, yaml or xml", format)
	}

	paths, err := expandArgs(args)
	if err != nil {
		return err
	}

	var (
		entries []infoEntry
		records []*dublincore.Record
	)
	for _, path := range paths {
		rec, _, err := openBook(path).Metadata()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		entries = append(entries, infoEntry{File: path, Metadata: rec.Serialize()})
		records = append(records, rec)
	}

	return writeInfo(cmd.OutOrStdout(), format, entries, records)
}

func writeInfo(w io.Writer, format string, entries []infoEntry, records []*dublincore.Record) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case "xml":
		for _, rec := range records {
			out, err := rec.ToXML()
			if err != nil {
				return err
			}
			fmt.Fprint(w, out)
		}
		return nil
	default:
		b, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(b))
		return nil
	}
}
