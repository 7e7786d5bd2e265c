package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/martsql/martsql"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the analytical query catalog and print the results",
	Long: `Report runs the fixed catalog of analytical queries (basic,
intermediate, and advanced tiers) against the populated store and prints
every result as a table on standard output.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return martsql.Report(cmd.Context(), cfg, os.Stdout)
}
