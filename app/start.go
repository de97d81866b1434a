package app

import (
	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode: sign in with any email, no firebase")

	rootCmd.AddCommand(startCmd)
}

var (
	configPath string // Path to the configuration directory

	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the gateway web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return readConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.New(cmd.Context(), &cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)

func readConfig() error {
	var (
		opts []config.Option
		err  error
	)

	if devMode {
		opts = append(opts, config.WithDevMode())
	}

	cfg, err = config.ReadConfig(configPath, opts...)

	return err
}
