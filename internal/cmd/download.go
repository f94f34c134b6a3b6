package cmd

import (
	"errors"
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <key> <local-path>",
	Short: "Download an object to a local path",
	Long: `Download a single object. Missing parent directories of the local
path are created.

Examples:
  cloudstore download renders/2024/clip.mp4 out/clip.mp4`,
	Args: cobra.ExactArgs(2),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	key, localPath := args[0], args[1]

	client, err := newClient(ctx)
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Failed to create storage client", err)
	}
	defer client.Close()

	ok, msg := client.DownloadFile(ctx, key, localPath)
	if !ok {
		return exitError(foundry.ExitExternalServiceUnavailable, "Download failed", errors.New(msg))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "downloaded\t%s\t%s\n", key, localPath)
	return nil
}
