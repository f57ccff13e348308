// Package main is the entry point for the jamabandi CLI, the offline
// companion to the conversion service: it validates and converts extract
// files without a running server.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the jamabandi CLI.
var rootCmd = &cobra.Command{
	Use:   "jamabandi",
	Short: "Convert Jamabandi land-record areas into Kila/Kanal/Marla/Sarshai",
	Long: `jamabandi normalizes area measurements from Jamabandi extracts. Input is a
CSV or TSV file (or stdin) with the standard seven columns; output appends the
four derived unit columns and can be written as CSV, XLSX, or DOCX.

Validation and conversion are the same code paths the conversion service runs,
so a file that passes here will pass there.`,
}

func init() {
	viper.SetEnvPrefix("JAMABANDI")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
