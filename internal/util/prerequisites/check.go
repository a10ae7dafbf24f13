// Package prerequisites checks that the helm and kubectl binaries sparkop
// drives are installed.
package prerequisites

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name or path to look for.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string

	// VersionArgs prints a one-line client version.
	VersionArgs []string
}

// DefaultTools returns the tools sparkop shells out to. Empty binary names
// fall back to "helm" and "kubectl".
func DefaultTools(helmBinary, kubectlBinary string) []Tool {
	if helmBinary == "" {
		helmBinary = "helm"
	}
	if kubectlBinary == "" {
		kubectlBinary = "kubectl"
	}
	return []Tool{
		{
			Name:        helmBinary,
			Required:    true,
			Description: "Installs, lists and removes Spark Operator releases",
			InstallURL:  "https://helm.sh/docs/intro/install/",
			VersionArgs: []string{"version", "--short"},
		},
		{
			Name:        kubectlBinary,
			Required:    true,
			Description: "Reads cluster credentials and deletes namespaces",
			InstallURL:  "https://kubernetes.io/docs/tasks/tools/",
			VersionArgs: []string{"version", "--client"},
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
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

// Check verifies that the specified tools are available. Versions are only
// probed when withVersion is set.
func Check(ctx context.Context, tools []Tool, withVersion bool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			if withVersion {
				result.Version = toolVersion(ctx, path, tool.VersionArgs)
			}
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// toolVersion returns the first output line of the version command, or ""
// when it cannot be determined.
func toolVersion(ctx context.Context, path string, args []string) string {
	if len(args) == 0 {
		return ""
	}
	// #nosec G204 - path was resolved by LookPath from configured tool names
	output, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return ""
	}
	first, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(first)
}
