package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
	"github.com/couchcryptid/jamabandi-etl/internal/export"
	"github.com/couchcryptid/jamabandi-etl/internal/ingest"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an extract file and write the enriched table",
	Long: `Convert reads a Jamabandi extract (CSV or TSV), validates the seven-column
schema, computes the Kila/Kanal/Marla/Sarshai decomposition per row, and
writes the result. The output format defaults to the -o extension, or csv
when writing to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("input")
		out, _ := cmd.Flags().GetString("output")
		formatFlag, _ := cmd.Flags().GetString("format")
		withSummary, _ := cmd.Flags().GetBool("summary")
		if !cmd.Flags().Changed("summary") {
			withSummary = viper.GetBool("SUMMARY")
		}

		data, err := readInput(in)
		if err != nil {
			return err
		}

		table, err := ingest.ReadString(data, ingest.DetectSeparator(data))
		if err != nil {
			return err
		}
		validated, err := domain.Validate(table)
		if err != nil {
			return err
		}
		records := domain.ConvertAll(validated)

		var summary *domain.Summary
		if withSummary {
			v := domain.Summarize(records)
			summary = &v
		}

		format, err := resolveFormat(formatFlag, out)
		if err != nil {
			return err
		}

		dst, closeDst, err := openOutput(out)
		if err != nil {
			return err
		}
		defer closeDst()

		switch format {
		case export.FormatXLSX:
			err = export.WriteXLSX(dst, records, summary)
		case export.FormatDOCX:
			err = export.WriteDOCX(dst, records, summary)
		default:
			err = export.WriteCSV(dst, records, summary)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "converted %d record(s)\n", len(records))
		return nil
	},
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "input file (default: stdin)")
	convertCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	convertCmd.Flags().String("format", "", "output format: csv, xlsx, or docx (default: from -o extension)")
	convertCmd.Flags().Bool("summary", false, "append batch totals to the output (env: JAMABANDI_SUMMARY)")

	rootCmd.AddCommand(convertCmd)
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// resolveFormat picks the output format: explicit flag first, then the
// output filename extension, then csv.
func resolveFormat(flag, outPath string) (export.Format, error) {
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if ext := strings.TrimPrefix(filepath.Ext(outPath), "."); ext != "" {
		if f, err := export.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return export.FormatCSV, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
