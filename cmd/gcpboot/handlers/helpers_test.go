package handlers

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/agentverse/gcpboot/internal/config"
	"github.com/agentverse/gcpboot/internal/provisioning"
	"github.com/agentverse/gcpboot/internal/util/prerequisites"
)

// captureOutput captures stdout produced by fn.
func captureOutput(fn func()) string {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// saveAndRestoreFactories saves and restores the handler factory functions.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadConfig := loadConfig
	origNewGcloudCLI := newGcloudCLI
	origNewInstaller := newInstaller
	origNewEnabler := newEnabler
	origCheckTools := checkTools
	origStdinIsTTY := stdinIsTTY
	origNewBillingService := newBillingService

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		newGcloudCLI = origNewGcloudCLI
		newInstaller = origNewInstaller
		newEnabler = origNewEnabler
		checkTools = origCheckTools
		stdinIsTTY = origStdinIsTTY
		newBillingService = origNewBillingService
	})
}

// stubConfig wires loadConfig to return a fixed config with the project
// ID file in a temp dir, and returns that config.
func stubConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.ProjectIDFile = t.TempDir() + "/project_id.txt"
	loadConfig = func(string) (*config.Config, error) {
		return cfg, nil
	}
	return cfg
}

// allToolsFound wires checkTools to report every tool as present.
func allToolsFound() {
	checkTools = func(tools []prerequisites.Tool) *prerequisites.CheckResults {
		results := &prerequisites.CheckResults{}
		for _, tool := range tools {
			results.Results = append(results.Results, prerequisites.CheckResult{
				Tool:  tool,
				Found: true,
				Path:  "/usr/bin/" + tool.Name,
			})
		}
		return results
	}
}

// nopEnabler wires newEnabler to a no-op.
func nopEnabler() {
	newEnabler = func(*config.Config, string) provisioning.Enabler {
		return provisioning.EnablerFunc(func(context.Context) error { return nil })
	}
}
