package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <key>",
	Short: "Probe whether an object is visible",
	Long: `Probe the bucket for an object. With --wait the probe is retried
with the bounded verification loop, absorbing eventual-consistency lag.

Examples:
  cloudstore check renders/2024/clip.mp4
  cloudstore check renders/2024/clip.mp4 --wait`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var checkWait bool

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkWait, "wait", false, "retry the probe with the verification loop")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	key := args[0]

	client, err := newClient(ctx)
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Failed to create storage client", err)
	}
	defer client.Close()

	var visible bool
	if checkWait {
		visible = client.WaitVisible(ctx, key)
	} else {
		visible, err = client.Exists(ctx, key)
		if err != nil {
			return exitError(foundry.ExitExternalServiceUnavailable, "Existence probe failed", err)
		}
	}

	if !visible {
		return exitError(foundry.ExitFileNotFound, "Object not visible",
			fmt.Errorf("object not visible: %s", key))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "found\t%s\n", key)
	return nil
}
