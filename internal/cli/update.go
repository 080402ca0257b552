package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the package indexes",
		Long: `Download every configured package index together with its detached
signature, keep only the pairs that verify against the local keyring, and
delete index files whose source is no longer configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd.Context())
		},
	}
	return cmd
}

func runUpdate(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	layout := buildLayout(cfg)

	syncer, err := newSyncer(cfg, layout)
	if err != nil {
		return err
	}

	kept, err := syncer.UpdateIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to update indexes: %w", err)
	}

	if len(kept) == 0 {
		fmt.Println("No index files were kept; check the warnings above")
		return nil
	}
	fmt.Printf("Updated %d file(s):\n", len(kept))
	for _, name := range kept {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
