package handlers

import (
	"fmt"
	"os"

	"github.com/agentverse/gcpboot/internal/ui"
	"github.com/agentverse/gcpboot/internal/util/prerequisites"
)

// Doctor reports on the external tools the bootstrap flow depends on.
func Doctor(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorBanner("configuration", err))
		return err
	}

	tools := append(
		prerequisites.BootstrapTools(cfg.Dependency != ""),
		prerequisites.OptionalTools()...,
	)
	results := checkTools(tools)

	fmt.Println("External tools")
	fmt.Println("--------------")
	for _, result := range results.Results {
		switch {
		case result.Found:
			fmt.Println(ui.Success(fmt.Sprintf("%-8s %s", result.Tool.Name, result.Path)))
		case result.Tool.Required:
			fmt.Println(ui.Failed(fmt.Sprintf("%-8s not found on PATH", result.Tool.Name)))
			fmt.Println(ui.Dim("         " + result.Tool.Description))
			fmt.Println(ui.Dim("         install: " + result.Tool.InstallURL))
		default:
			fmt.Println(ui.Warn(fmt.Sprintf("%-8s not found (optional)", result.Tool.Name)))
			fmt.Println(ui.Dim("         " + result.Tool.Description))
		}
	}
	fmt.Println()

	return results.Error()
}
