package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// DiffYAML computes a YAML-aware diff between two documents using dyff.
// It returns an empty string when the documents are equivalent.
func DiffYAML(before, after []byte, useColor bool) (string, error) {
	if len(before) == 0 && len(after) == 0 {
		return "", nil
	}

	fromInput, err := parseYAMLInput("before", before)
	if err != nil {
		return "", fmt.Errorf("parsing previous YAML: %w", err)
	}

	toInput, err := parseYAMLInput("after", after)
	if err != nil {
		return "", fmt.Errorf("parsing current YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report, useColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// SourceChange is the diff of one reloaded source.
type SourceChange struct {
	Name string
	Diff string
}

// RenderReload renders the per-source changes of a reload.
func RenderReload(changes []SourceChange, styles *Styles) string {
	if len(changes) == 0 {
		return "No changes detected."
	}

	var sb strings.Builder
	sb.WriteString(styles.Warning.Render("Modified:"))
	sb.WriteString("\n")
	for _, c := range changes {
		sb.WriteString("  ~ ")
		sb.WriteString(styles.Warning.Render(c.Name))
		sb.WriteString("\n")
		sb.WriteString(IndentDiff(c.Diff, "    "))
	}

	sb.WriteString("\nSummary: ")
	sb.WriteString(fmt.Sprintf("%d source(s) changed", len(changes)))
	return sb.String()
}

// IndentDiff indents a diff string for display under a source name.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
