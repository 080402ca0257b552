// Package cli implements the boardman commands. It is presentation only:
// every command loads the configuration, wires the collaborating managers
// and delegates to the pipeline packages.
package cli

import (
	"fmt"

	"github.com/glorpus-work/boardman/internal/logger"
	"github.com/glorpus-work/boardman/pkg/archive"
	"github.com/glorpus-work/boardman/pkg/config"
	"github.com/glorpus-work/boardman/pkg/download"
	"github.com/glorpus-work/boardman/pkg/hook"
	"github.com/glorpus-work/boardman/pkg/index"
	"github.com/glorpus-work/boardman/pkg/installer"
	"github.com/glorpus-work/boardman/pkg/platform"
	"github.com/glorpus-work/boardman/pkg/progress"
	"github.com/glorpus-work/boardman/pkg/signature"
	"github.com/glorpus-work/boardman/pkg/store"
)

// These variables are set by the main package.
var (
	ConfigPath *string
	LogLevel   *string
)

// loadConfig loads the configuration, applies flag overrides and initializes
// the logger.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if LogLevel != nil && *LogLevel != "" {
		cfg.Settings.LogLevel = *LogLevel
	}
	logger.InitLogger(cfg.Settings.LogLevel)
	return cfg, nil
}

func buildLayout(cfg *config.Config) store.Layout {
	return store.New(cfg.DataDir)
}

func loadDownloadManager(cfg *config.Config) *download.ManagerImpl {
	dl := download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent)
	dl.SetAuth(cfg.ToAuthMap())
	return dl
}

// loadIndexManager builds the merged index view from the files on disk.
func loadIndexManager(cfg *config.Config, layout store.Layout) (*index.Manager, error) {
	name, err := store.IndexFileNameForURL(cfg.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("invalid index URL %s: %w", cfg.IndexURL, err)
	}
	im := index.NewManager(layout, name, platform.Current())
	if err := im.Load(); err != nil {
		return nil, fmt.Errorf("failed to load indexes: %w", err)
	}
	return im, nil
}

func newSyncer(cfg *config.Config, layout store.Layout) (*index.Syncer, error) {
	verifier, err := signature.NewVerifier(cfg.KeyringPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keyring: %w", err)
	}
	name, err := store.IndexFileNameForURL(cfg.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("invalid index URL %s: %w", cfg.IndexURL, err)
	}
	return index.NewSyncer(layout, loadDownloadManager(cfg), verifier, name, cfg.IndexURLs(), progressHooks()), nil
}

func newInstaller(cfg *config.Config, layout store.Layout, im *index.Manager) *installer.Installer {
	return &installer.Installer{
		Layout:    layout,
		Host:      platform.Current(),
		DL:        loadDownloadManager(cfg),
		Extractor: archive.NewManager(),
		Scripts:   hook.NewRunner(),
		Oracle:    im,
		Hooks:     progressHooks(),
	}
}

// progressHooks renders operation progress on stdout as "[ 50%] status".
func progressHooks() progress.Hooks {
	return progress.Hooks{OnProgress: func(s progress.Snapshot) {
		fmt.Printf("[%3.0f%%] %s\n", s.Fraction*100, s.Status)
	}}
}

// printOperationErrors lists the recoverable failures an operation collected.
func printOperationErrors(errs []string) {
	for _, e := range errs {
		logger.Warnf("%s", e)
	}
}
