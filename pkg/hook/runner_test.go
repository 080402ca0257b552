package hook

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/glorpus-work/boardman/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingExecutor captures executed scripts instead of running anything.
type recordingExecutor struct {
	scripts  []string
	contexts []Context
	err      error
}

func (r *recordingExecutor) Execute(script string, sctx Context) error {
	r.scripts = append(r.scripts, script)
	r.contexts = append(r.contexts, sctx)
	return r.err
}

func newTestRunner() (*Runner, *recordingExecutor, *recordingExecutor) {
	native := &recordingExecutor{}
	tengo := &recordingExecutor{}
	runner := &Runner{
		Discovery: &DefaultDiscovery{goos: "linux"},
		Native:    native,
		Tengo:     tengo,
	}
	return runner, native, tengo
}

func writeScript(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), mode))
	return path
}

func TestRunner_FirstExecutableCandidateWins(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not honored on windows")
	}

	dir := t.TempDir()
	native := writeScript(t, dir, "post_install.sh", 0o755)
	writeScript(t, dir, "post_install.tengo", 0o644)

	runner, nativeExec, tengoExec := newTestRunner()
	errs := runner.RunPostInstall(dir, Context{Name: "avr"}, Options{Trusted: true})

	assert.Empty(t, errs)
	assert.Equal(t, []string{native}, nativeExec.scripts)
	assert.Empty(t, tengoExec.scripts)
}

func TestRunner_TengoScriptOnlyNeedsToExist(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "post_install.tengo", 0o644)

	runner, nativeExec, tengoExec := newTestRunner()
	errs := runner.RunPostInstall(dir, Context{Name: "avr", Version: "1.8.3"}, Options{Trusted: true})

	assert.Empty(t, errs)
	assert.Empty(t, nativeExec.scripts)
	require.Equal(t, []string{script}, tengoExec.scripts)
	assert.Equal(t, OperationPostInstall, tengoExec.contexts[0].Operation)
	assert.Equal(t, dir, tengoExec.contexts[0].Folder)
}

func TestRunner_NonExecutableNativeScriptIsIgnored(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not honored on windows")
	}

	dir := t.TempDir()
	writeScript(t, dir, "post_install.sh", 0o644)

	runner, nativeExec, _ := newTestRunner()
	errs := runner.RunPostInstall(dir, Context{}, Options{Trusted: true})

	assert.Empty(t, errs)
	assert.Empty(t, nativeExec.scripts)
}

func TestRunner_DescendsThroughSingleWrapperDirectory(t *testing.T) {
	dir := t.TempDir()
	wrapper := filepath.Join(dir, "avr-1.8.3")
	require.NoError(t, os.MkdirAll(wrapper, 0o755))
	script := writeScript(t, wrapper, "post_install.tengo", 0o644)

	runner, _, tengoExec := newTestRunner()
	errs := runner.RunPostInstall(dir, Context{}, Options{Trusted: true})

	assert.Empty(t, errs)
	require.Equal(t, []string{script}, tengoExec.scripts)
	assert.Equal(t, wrapper, tengoExec.contexts[0].Folder)
}

func TestRunner_SeveralSubdirectoriesStopTheSearch(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"a", "b"} {
		subdir := filepath.Join(dir, sub)
		require.NoError(t, os.MkdirAll(subdir, 0o755))
		writeScript(t, subdir, "post_install.tengo", 0o644)
	}

	runner, nativeExec, tengoExec := newTestRunner()
	errs := runner.RunPostInstall(dir, Context{}, Options{Trusted: true})

	assert.Empty(t, errs)
	assert.Empty(t, nativeExec.scripts)
	assert.Empty(t, tengoExec.scripts)
}

func TestRunner_DescentDepthIsBounded(t *testing.T) {
	dir := t.TempDir()
	nested := dir
	for i := 0; i < maxDescentDepth+2; i++ {
		nested = filepath.Join(nested, fmt.Sprintf("level%d", i))
	}
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeScript(t, nested, "post_install.tengo", 0o644)

	runner, _, tengoExec := newTestRunner()
	errs := runner.RunPostInstall(dir, Context{}, Options{Trusted: true})

	assert.Empty(t, errs)
	assert.Empty(t, tengoExec.scripts)
}

func TestRunner_TrustGate(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		expectRun   bool
		expectLog   string
		excludedLog string
	}{
		{
			name:        "untrusted without override is skipped",
			opts:        Options{},
			expectRun:   false,
			expectLog:   "skipping script execution",
			excludedLog: "forced untrusted",
		},
		{
			name:      "untrusted with trust-all runs with warning",
			opts:      Options{TrustAll: true},
			expectRun: true,
			expectLog: "forced untrusted script execution",
		},
		{
			name:        "trusted runs without warnings",
			opts:        Options{Trusted: true},
			expectRun:   true,
			excludedLog: "Warning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			logger.SetTestOutput(&logBuf)
			defer logger.UnsetTestOutput()

			dir := t.TempDir()
			writeScript(t, dir, "post_install.tengo", 0o644)

			runner, _, tengoExec := newTestRunner()
			errs := runner.RunPostInstall(dir, Context{Name: "avr"}, tt.opts)

			assert.Empty(t, errs)
			if tt.expectRun {
				assert.Len(t, tengoExec.scripts, 1)
			} else {
				assert.Empty(t, tengoExec.scripts)
			}
			if tt.expectLog != "" {
				assert.Contains(t, logBuf.String(), tt.expectLog)
			}
			if tt.excludedLog != "" {
				assert.NotContains(t, logBuf.String(), tt.excludedLog)
			}
		})
	}
}

func TestRunner_ScriptFailureIsCollected(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "pre_uninstall.tengo", 0o644)

	runner, _, tengoExec := newTestRunner()
	tengoExec.err = fmt.Errorf("pre-uninstall script returned 2")

	errs := runner.RunPreUninstall(dir, Context{}, Options{Trusted: true})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "returned 2")
	assert.Equal(t, OperationPreUninstall, tengoExec.contexts[0].Operation)
}

func TestRunner_NoScriptsAnywhereIsSilent(t *testing.T) {
	runner, nativeExec, tengoExec := newTestRunner()
	errs := runner.RunPostInstall(t.TempDir(), Context{}, Options{Trusted: true})

	assert.Empty(t, errs)
	assert.Empty(t, nativeExec.scripts)
	assert.Empty(t, tengoExec.scripts)
}
