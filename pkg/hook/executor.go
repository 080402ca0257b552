// Package hook discovers and executes contribution lifecycle scripts. Script
// execution is gated on the trust of the providing index source; untrusted
// scripts are skipped unless the caller explicitly forces them.
package hook

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/glorpus-work/boardman/internal/logger"
	pkgerrors "github.com/glorpus-work/boardman/pkg/errors"
)

// Operation identifies which lifecycle moment a script runs at.
type Operation string

const (
	// OperationPostInstall runs after a contribution has been extracted.
	OperationPostInstall Operation = "post-install"
	// OperationPreUninstall runs before an installed tree is deleted.
	OperationPreUninstall Operation = "pre-uninstall"
)

// TengoSuffix marks scripts that run in-process instead of as a child
// process. Such scripts only need to exist; the execute bit is meaningless
// for them.
const TengoSuffix = ".tengo"

// Context carries the contribution details handed to a script.
type Context struct {
	Operation Operation
	Folder    string // directory the script lives in, working directory for native scripts
	Name      string // contribution name
	Version   string
}

// Executor runs a single discovered lifecycle script. A nil return means the
// script ran and exited cleanly. Scripts run to completion once started;
// there is no cancellation mid-script.
type Executor interface {
	Execute(script string, sctx Context) error
}

// NativeExecutor runs scripts as child processes. Output is captured fully
// and relayed to the surrounding process streams after the script exits, so
// interleaving with boardman's own output stays predictable.
type NativeExecutor struct{}

// Execute implements Executor.
func (e *NativeExecutor) Execute(script string, sctx Context) error {
	logger.Debug("Running lifecycle script", logger.Fields{
		"script":    script,
		"operation": string(sctx.Operation),
		"name":      sctx.Name,
		"version":   sctx.Version,
	})

	cmd := exec.Command(script)
	cmd.Dir = sctx.Folder

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	_, _ = os.Stdout.Write(stdout.Bytes())
	_, _ = os.Stderr.Write(stderr.Bytes())

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s script returned %d: %w", sctx.Operation, exitErr.ExitCode(), pkgerrors.ErrHookScript)
		}
		return fmt.Errorf("error running %s script (%v): %w", sctx.Operation, err, pkgerrors.ErrHookExecution)
	}
	return nil
}

// TengoExecutor runs .tengo scripts in-process. The script sees a "context"
// builtin module with the operation, folder, and contribution identity.
type TengoExecutor struct{}

// Execute implements Executor.
func (e *TengoExecutor) Execute(script string, sctx Context) error {
	content, err := os.ReadFile(script)
	if err != nil {
		return fmt.Errorf("error reading %s script (%v): %w", sctx.Operation, err, pkgerrors.ErrHookExecution)
	}

	logger.Debug("Running Tengo lifecycle script", logger.Fields{
		"script":    script,
		"operation": string(sctx.Operation),
		"name":      sctx.Name,
		"version":   sctx.Version,
	})

	moduleMap := stdlib.GetModuleMap(stdlib.AllModuleNames()...)
	moduleMap.AddBuiltinModule("context", map[string]tengo.Object{
		"operation": &tengo.String{Value: string(sctx.Operation)},
		"folder":    &tengo.String{Value: sctx.Folder},
		"name":      &tengo.String{Value: sctx.Name},
		"version":   &tengo.String{Value: sctx.Version},
	})

	s := tengo.NewScript(content)
	s.SetImports(moduleMap)

	if _, err := s.Run(); err != nil {
		return fmt.Errorf("%s script failed (%v): %w", sctx.Operation, err, pkgerrors.ErrHookScript)
	}
	return nil
}

// IsTengo reports whether the script path names an in-process script.
func IsTengo(script string) bool {
	return strings.HasSuffix(script, TengoSuffix)
}
