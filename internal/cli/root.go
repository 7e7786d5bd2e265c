// Package cli wires the martsql commands: load replaces store tables from
// data files, report runs the analytical query catalog.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/martsql/martsql/store"
)

var rootCmd = &cobra.Command{
	Use:   "martsql",
	Short: "Load retail data files into a relational store and report on them",
	Long: `martsql loads tabular data files (CSV, TSV, XLSX, Parquet, optionally
compressed) into a relational store and runs a fixed catalog of analytical
queries against it, printing results as tables.

The store is an embedded SQLite database by default; set --driver postgres
(or MARTSQL_DRIVER=postgres) to use a networked PostgreSQL database.
Connection parameters come from flags, environment variables, or a .env
file, in that order of precedence.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("driver", "", "store driver: sqlite or postgres")
	flags.String("sqlite-path", "", "database file path for the sqlite driver")
	flags.String("host", "", "postgres host")
	flags.String("port", "", "postgres port")
	flags.String("user", "", "postgres user")
	flags.String("password", "", "postgres password")
	flags.String("dbname", "", "postgres database name")
}

// resolveConfig builds the store configuration from the environment and
// applies any flags the user set on top.
func resolveConfig(cmd *cobra.Command) (store.Config, error) {
	cfg, err := store.FromEnv()
	if err != nil {
		return store.Config{}, err
	}

	overrides := map[string]*string{
		"driver":      &cfg.Driver,
		"sqlite-path": &cfg.SQLitePath,
		"host":        &cfg.Host,
		"port":        &cfg.Port,
		"user":        &cfg.User,
		"password":    &cfg.Password,
		"dbname":      &cfg.DBName,
	}
	for name, target := range overrides {
		if cmd.Flags().Changed(name) {
			value, err := cmd.Flags().GetString(name)
			if err != nil {
				return store.Config{}, err
			}
			*target = value
		}
	}

	if err := cfg.Validate(); err != nil {
		return store.Config{}, err
	}
	return cfg, nil
}
