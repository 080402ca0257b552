package cli

import (
	"context"
	"fmt"

	"github.com/glorpus-work/boardman/pkg/installer"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var trustAll bool

	cmd := &cobra.Command{
		Use:   "install VENDOR:ARCH[@VERSION]",
		Short: "Install a platform and its tools",
		Long: `Install a platform from the loaded indexes together with every tool it
requires. Tools that are already present are reused. Without an explicit
version the newest known version is installed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), args[0], trustAll)
		},
	}

	cmd.Flags().BoolVar(&trustAll, "trust-all", false, "Run lifecycle scripts of untrusted packages")

	return cmd
}

func runInstall(ctx context.Context, ref string, trustAll bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	layout := buildLayout(cfg)

	im, err := loadIndexManager(cfg, layout)
	if err != nil {
		return err
	}
	p, err := im.FindPlatform(ref)
	if err != nil {
		return err
	}

	inst := newInstaller(cfg, layout, im)
	errs, err := inst.Install(ctx, p, installer.Options{TrustAll: trustAll || cfg.TrustAll})
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", ref, err)
	}
	printOperationErrors(errs)

	if ctxErr := ctx.Err(); ctxErr != nil {
		fmt.Printf("Installation of %s interrupted\n", p.String())
		return nil
	}
	fmt.Printf("Installed %s\n", p.String())
	return nil
}
