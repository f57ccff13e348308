package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
	"github.com/couchcryptid/jamabandi-etl/internal/ingest"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an extract file against the seven-column schema",
	Long: `Validate parses the input and runs the schema check without converting:
column presence and parseable non-negative Kanal/Marla cells. Exits non-zero
with the first problem found, naming the row and column.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("input")

		data, err := readInput(in)
		if err != nil {
			return err
		}

		table, err := ingest.ReadString(data, ingest.DetectSeparator(data))
		if err != nil {
			return err
		}
		records, err := domain.Validate(table)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d record(s)\n", len(records))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("input", "i", "", "input file (default: stdin)")

	rootCmd.AddCommand(validateCmd)
}
