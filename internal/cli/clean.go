package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Empty the download staging area",
		Long:  "Delete every downloaded archive from the staging area of the content store.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runClean()
		},
	}
	return cmd
}

func runClean() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	layout := buildLayout(cfg)

	used, err := layout.StagingUsage()
	if err != nil {
		return fmt.Errorf("failed to inspect staging area: %w", err)
	}
	if err := layout.CleanStaging(); err != nil {
		return fmt.Errorf("failed to clean staging area: %w", err)
	}
	fmt.Printf("Staging area cleaned, %s freed\n", formatBytes(used))
	return nil
}

// formatBytes renders a byte count in the nearest binary unit.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), []string{"K", "M", "G", "T", "P", "E"}[exp])
}
