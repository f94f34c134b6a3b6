// Package cmd implements the cloudstore command line interface.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/emprops/cloudstore/internal/observability"
	"github.com/emprops/cloudstore/pkg/storeclient"
)

var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{
	Version:   "dev",
	Commit:    "HEAD",
	BuildDate: "unknown",
}

// SetVersionInfo records build metadata injected by the linker.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   "cloudstore",
	Short: "Provider-agnostic object storage client",
	Long: `cloudstore uploads, downloads, and verifies files against AWS S3,
Google Cloud Storage, or Azure Blob Storage, selected by configuration.

Provider and credentials are resolved from flags, CLOUDSTORE_* variables,
the process environment, and .env/.env.local override files, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		observability.Init(viper.GetBool("verbose"))
	},
}

func init() {
	rootCmd.PersistentFlags().String("provider", "", "storage provider (aws|google|azure)")
	rootCmd.PersistentFlags().String("bucket", "", "bucket/container name override")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	viper.SetEnvPrefix("CLOUDSTORE")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("bucket", rootCmd.PersistentFlags().Lookup("bucket"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// Execute runs the root command.
func Execute() error {
	rootCmd.Version = versionInfo.Version
	return rootCmd.Execute()
}

// newClient builds a storage client from the effective CLI configuration.
func newClient(ctx context.Context) (*storeclient.Client, error) {
	return storeclient.New(ctx, storeclient.Options{
		Provider: viper.GetString("provider"),
		Bucket:   viper.GetString("bucket"),
		Logger:   observability.CLILogger,
	})
}
