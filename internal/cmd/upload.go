package cmd

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emprops/cloudstore/internal/observability"
	"github.com/emprops/cloudstore/pkg/storeclient"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <path|glob>...",
	Short: "Upload local files to the configured bucket",
	Long: `Upload one or more local files. Arguments may be literal paths or
doublestar glob patterns.

Examples:
  cloudstore upload out/clip.mp4 --prefix renders/2024
  cloudstore upload "frames/**/*.png" --prefix renders/2024
  cloudstore upload out/clip.mp4 --name final.mp4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

var (
	uploadPrefix string
	uploadName   string
)

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVar(&uploadPrefix, "prefix", "", "key prefix (folder) in the bucket")
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "target object name (single file only)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	paths, err := expandPaths(args)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid path argument", err)
	}
	if len(paths) == 0 {
		return exitError(foundry.ExitInvalidArgument, "No files matched",
			fmt.Errorf("no files matched %s", strings.Join(args, " ")))
	}
	if uploadName != "" && len(paths) > 1 {
		return exitError(foundry.ExitInvalidArgument, "Conflicting flags",
			fmt.Errorf("--name applies to a single file, got %d", len(paths)))
	}

	client, err := newClient(ctx)
	if err != nil {
		observability.CLILogger.Error("Failed to create storage client", zap.Error(err))
		return exitError(foundry.ExitExternalServiceUnavailable, "Failed to create storage client", err)
	}
	defer client.Close()

	var results []storeclient.UploadResult
	if uploadName != "" {
		results = append(results, client.UploadFile(ctx, paths[0], storeclient.UploadOptions{
			Prefix:     uploadPrefix,
			TargetName: uploadName,
		}))
	} else {
		results = client.UploadFiles(ctx, paths, uploadPrefix)
	}

	failed := 0
	for i, res := range results {
		if res.OK {
			fmt.Fprintf(cmd.OutOrStdout(), "ok\t%s\t%s\n", paths[i], res.URL)
		} else {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "failed\t%s\t%s\n", paths[i], res.Error)
		}
	}

	if failed > 0 {
		return exitError(foundry.ExitExternalServiceUnavailable, "Upload incomplete",
			fmt.Errorf("%d of %d uploads failed", failed, len(results)))
	}
	return nil
}

// expandPaths resolves glob arguments against the local filesystem; literal
// paths pass through untouched so a missing file still surfaces as a soft
// per-file failure rather than a matching error.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
