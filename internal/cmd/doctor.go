package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emprops/cloudstore/internal/observability"
	"github.com/emprops/cloudstore/pkg/storeclient"
)

// probePrefix namespaces doctor probe objects away from real data.
const probePrefix = ".cloudstore-probe"

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify credentials and bucket access with a write probe",
	Long: `Upload a small uniquely named probe object, wait for it to become
visible, and delete it again when the backend supports deletion. Exercises
the full credential, upload, and verification path.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := newClient(ctx)
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Client construction failed", err)
	}
	defer client.Close()

	probeFile, err := writeProbeFile()
	if err != nil {
		return exitError(foundry.ExitFileWriteError, "Cannot write probe file", err)
	}
	defer os.Remove(probeFile)

	res := client.UploadFile(ctx, probeFile, storeclient.UploadOptions{
		Prefix:     probePrefix,
		TargetName: uuid.NewString() + ".txt",
	})
	if !res.OK {
		return exitError(foundry.ExitExternalServiceUnavailable, "Write probe failed", errors.New(res.Error))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "probe uploaded and verified\t%s\n", res.URL)

	supported, err := client.Delete(ctx, res.Key)
	switch {
	case !supported:
		fmt.Fprintf(cmd.OutOrStdout(), "probe cleanup skipped (backend cannot delete)\t%s\n", res.Key)
	case err != nil:
		observability.CLILogger.Warn("Probe cleanup failed", zap.String("key", res.Key), zap.Error(err))
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "probe cleaned up\t%s\n", res.Key)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "provider %s bucket %s: ok\n", client.Provider(), client.Bucket())
	return nil
}

// writeProbeFile creates a small temp file whose contents identify the probe.
// The caller removes it; no enclosing directory is created.
func writeProbeFile() (string, error) {
	f, err := os.CreateTemp("", "cloudstore-doctor-*.txt")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString("cloudstore connectivity probe\n"); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
