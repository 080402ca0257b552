package cli

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/boardman/pkg/index"
	"github.com/glorpus-work/boardman/pkg/model"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var updatable bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available and installed platforms",
		Long: `List every platform known to the loaded indexes with its installed
state. Use --updatable to only show installed platforms for which a newer
version is available.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runList(updatable)
		},
	}

	cmd.Flags().BoolVar(&updatable, "updatable", false, "Only show installed platforms with a newer version available")

	return cmd
}

func runList(updatable bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	layout := buildLayout(cfg)

	im, err := loadIndexManager(cfg, layout)
	if err != nil {
		return err
	}

	platforms := im.Platforms()
	if updatable {
		var filtered []*model.Platform
		for _, p := range platforms {
			if p.Installed && newerAvailable(im, p) != nil {
				filtered = append(filtered, p)
			}
		}
		platforms = filtered
	}

	if len(platforms) == 0 {
		fmt.Println("No platforms found")
		return nil
	}

	fmt.Printf("%-32s %-16s %-10s %s\n", "NAME", "PLATFORM", "VERSION", "STATUS")
	fmt.Println(strings.Repeat("-", 78))
	for _, p := range platforms {
		status := ""
		if p.Installed {
			status = "installed"
			if latest := newerAvailable(im, p); latest != nil {
				status = fmt.Sprintf("installed (%s available)", latest.Version)
			}
		}
		pair := p.Package.Name + ":" + p.Architecture
		fmt.Printf("%-32s %-16s %-10s %s\n", p.Name, pair, p.Version, status)
	}
	return nil
}

// newerAvailable returns the newest known version of the platform's pair when
// it is strictly newer than p, else nil.
func newerAvailable(im *index.Manager, p *model.Platform) *model.Platform {
	latest := im.LatestAvailable(p.Package.Name, p.Architecture)
	if latest == nil || latest == p {
		return nil
	}
	lv, pv := latest.GetVersion(), p.GetVersion()
	if lv != nil && pv != nil && lv.GreaterThan(pv) {
		return latest
	}
	return nil
}
