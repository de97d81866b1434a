package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
)

func init() { //nolint: gochecknoinits
	configDumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "Dump as JSON, e.g. for "+config.EnvConfigJSON)
	configDumpCmd.Flags().BoolVar(&devMode, "dev", false, "Validate as in dev mode")

	configCmd.AddCommand(configDumpCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	dumpJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	configDumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration after env overrides and defaults",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return readConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				out string
				err error
			)

			if dumpJSON {
				out, err = config.DumpConfigJSON(&cfg)
			} else {
				out, err = config.DumpConfig(&cfg)
			}

			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
)
