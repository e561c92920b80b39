// Package prerequisites checks that the external client tools the
// bootstrap flow shells out to are present on PATH.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// BootstrapTools returns the tools the init flow needs.
// gcloud is always required; pip3 only when a dependency install is
// configured.
func BootstrapTools(withDependency bool) []Tool {
	tools := []Tool{
		{
			Name:        "gcloud",
			Required:    true,
			Description: "Creates projects and manages the active gcloud configuration",
			InstallURL:  "https://cloud.google.com/sdk/docs/install",
		},
	}
	if withDependency {
		tools = append(tools, Tool{
			Name:        "pip3",
			Required:    true,
			Description: "Installs the Python billing client for downstream scripts",
			InstallURL:  "https://pip.pypa.io/en/stable/installation/",
		})
	}
	return tools
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "python3",
			Required:    false,
			Description: "Needed only when enablement_command points at a Python script",
			InstallURL:  "https://www.python.org/downloads/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check looks up each tool on PATH and reports the results.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}
	for _, tool := range tools {
		path, err := exec.LookPath(tool.Name)
		result := CheckResult{
			Tool:  tool,
			Found: err == nil,
			Path:  path,
		}
		results.Results = append(results.Results, result)
		if !result.Found {
			results.Missing = append(results.Missing, tool)
		}
	}
	return results
}
