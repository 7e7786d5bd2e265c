package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/martsql/martsql"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load data files into the store, replacing table contents",
	Long: `Load reads the data files of the fixed mapping (customers, orders,
products, order_products, sales, plus optional delivery and payments) from
the data directory and replaces the matching tables in the store. Each
table is rewritten in a single transaction.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().String("dir", "", "data directory (defaults to MARTSQL_DATA_DIR)")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	dir := cfg.DataDir
	if cmd.Flags().Changed("dir") {
		if dir, err = cmd.Flags().GetString("dir"); err != nil {
			return err
		}
	}

	if err := martsql.Load(cmd.Context(), cfg, dir); err != nil {
		return err
	}

	color.Green("Loaded data from %s into %s store", dir, cfg.Driver)
	return nil
}
