package cli

import (
	"context"
	"fmt"

	"github.com/glorpus-work/boardman/pkg/index"
	"github.com/glorpus-work/boardman/pkg/installer"
	"github.com/glorpus-work/boardman/pkg/model"
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	var trustAll bool

	cmd := &cobra.Command{
		Use:   "remove VENDOR:ARCH[@VERSION]",
		Short: "Remove an installed platform",
		Long: `Remove an installed platform and delete its tools once no other
installed platform references them. Read-only platforms cannot be removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), args[0], trustAll)
		},
	}

	cmd.Flags().BoolVar(&trustAll, "trust-all", false, "Run lifecycle scripts of untrusted packages")

	return cmd
}

func runRemove(ctx context.Context, ref string, trustAll bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	layout := buildLayout(cfg)

	im, err := loadIndexManager(cfg, layout)
	if err != nil {
		return err
	}
	p, err := findInstalledPlatform(im, ref)
	if err != nil {
		return err
	}
	if p.ReadOnly {
		fmt.Printf("Platform %s is read-only, nothing removed\n", p.String())
		return nil
	}

	inst := newInstaller(cfg, layout, im)
	errs := inst.Remove(ctx, p, installer.Options{TrustAll: trustAll || cfg.TrustAll})
	printOperationErrors(errs)

	fmt.Printf("Removed %s\n", p.String())
	return nil
}

// findInstalledPlatform resolves a reference against the installed platforms
// only; without an explicit version the installed version is picked.
func findInstalledPlatform(im *index.Manager, ref string) (*model.Platform, error) {
	vendor, arch, version, err := index.ParseReference(ref)
	if err != nil {
		return nil, err
	}
	for _, p := range im.InstalledPlatforms() {
		if p.Package.Name == vendor && p.Architecture == arch && (version == "" || p.Version == version) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("platform %s is not installed", ref)
}
