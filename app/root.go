// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "firebase-auth-gateway",
	Short: "Firebase Auth Gateway signs users in with Firebase Authentication",
	Long: `Firebase Auth Gateway serves the FirebaseUI sign-in widget, verifies the
Firebase ID tokens it returns and keeps the signed-in account in a server side session.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "directory of main.toml (default ./etc/)")
}
