package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"facturex/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "facturex",
	Short: "facturex - accounting export generator for invoice collections",
	Long: `facturex turns invoice collections into the statutory and
accounting-software file formats used in France: FEC (tax authority),
Sage and Cegid import files, plus CSV, Excel and PDF reports.

Invoices are read from local JSON, CSV or XLSX files; the generated
export files are byte-exact renditions of each target format.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("facturex executed")

		fmt.Println("facturex - accounting export generator")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
