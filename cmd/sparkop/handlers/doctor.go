package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mlops-platform/sparkop/internal/util/prerequisites"
)

// checkToolVersions probes tools with their version commands.
var checkToolVersions = func(ctx context.Context, tools []prerequisites.Tool) *prerequisites.CheckResults {
	return prerequisites.Check(ctx, tools, true)
}

// Doctor handles the doctor command. It reports which tools were found and
// fails when a required one is missing.
func Doctor(ctx context.Context, g *GlobalOptions) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	results := checkToolVersions(ctx, prerequisites.DefaultTools(cfg.Helm.Binary, cfg.Kubectl.Binary))

	rows := make([][]string, 0, len(results.Results))
	for _, r := range results.Results {
		status := "missing"
		if r.Found {
			status = "ok"
		}
		rows = append(rows, []string{r.Tool.Name, status, r.Path, r.Version})
	}

	styled := isInteractive()
	t := table.New().
		Headers("TOOL", "STATUS", "PATH", "VERSION").
		Rows(rows...)
	if styled {
		t = t.Border(lipgloss.RoundedBorder()).BorderStyle(dimStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if col == 1 && row >= 0 && row < len(rows) {
					if rows[row][1] == "ok" {
						return okStyle
					}
					return badStyle
				}
				return cellStyle
			})
	} else {
		t = t.Border(lipgloss.HiddenBorder())
	}

	if _, err := fmt.Fprintln(stdout, t.String()); err != nil {
		return err
	}

	if results.HasErrors() {
		for _, tool := range results.Missing {
			fmt.Fprintf(stdout, "  %s: %s\n", tool.Name, strings.TrimSpace(tool.Description))
		}
		return results.Error()
	}
	return nil
}
