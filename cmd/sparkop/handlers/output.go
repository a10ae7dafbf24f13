package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"helm.sh/helm/v3/pkg/release"
	"sigs.k8s.io/yaml"

	"github.com/mlops-platform/sparkop/internal/helm"
	"github.com/mlops-platform/sparkop/internal/logging"
)

// Output formats for release listings.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = cellStyle.Foreground(colorGreen)
	badStyle    = cellStyle.Foreground(colorRed)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// isInteractive reports whether stdout is a terminal.
var isInteractive = func() bool {
	return logging.IsTerminal(stdout)
}

// renderReleases writes releases to w in the given format.
func renderReleases(w io.Writer, releases []helm.Release, format string, styled bool) error {
	if releases == nil {
		releases = []helm.Release{}
	}

	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(releases, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputYAML:
		data, err := yaml.Marshal(releases)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case OutputTable, "":
		if len(releases) == 0 {
			_, err := fmt.Fprintln(w, dimStyle.Render("No Spark Operator releases found"))
			return err
		}
		_, err := fmt.Fprintln(w, releaseTable(releases, styled))
		return err
	default:
		return fmt.Errorf("unsupported output format %q (want %s, %s or %s)", format, OutputTable, OutputJSON, OutputYAML)
	}
}

func releaseTable(releases []helm.Release, styled bool) string {
	rows := make([][]string, 0, len(releases))
	for _, r := range releases {
		rows = append(rows, []string{
			r.Namespace,
			r.Name,
			r.Chart,
			string(r.Status),
			strconv.Itoa(r.Revision),
			r.Updated,
		})
	}

	t := table.New().
		Headers("NAMESPACE", "NAME", "CHART", "STATUS", "REVISION", "UPDATED").
		Rows(rows...)

	if !styled {
		return t.Border(lipgloss.HiddenBorder()).String()
	}

	return t.Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 3 && row >= 0 && row < len(releases) {
				switch releases[row].Status {
				case release.StatusDeployed:
					return okStyle
				case release.StatusFailed:
					return badStyle
				}
			}
			return cellStyle
		}).
		String()
}
