package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/ftahirops/rebootcheck/checks"
	"github.com/ftahirops/rebootcheck/config"
	"github.com/ftahirops/rebootcheck/ui"
)

// render writes report to w in the given output format.
func render(w io.Writer, format string, report checks.Report) error {
	switch format {
	case config.OutputJSON:
		return renderJSON(w, report)
	case config.OutputYAML:
		return renderYAML(w, report)
	case config.OutputMarkdown:
		_, err := io.WriteString(w, renderMarkdown(report))
		return err
	case config.OutputCron:
		return renderCron(w, report)
	case config.OutputText, "":
		_, err := io.WriteString(w, renderText(report))
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

const nameW = 18 // fixed-width name column

func renderText(report checks.Report) string {
	var sb strings.Builder

	ts := report.Timestamp.Format("2006-01-02 15:04:05")
	fmt.Fprintf(&sb, "\n %s  %s  %s\n\n",
		ui.TitleStyle.Render("rebootcheck v"+Version),
		ui.ValueStyle.Render(report.Hostname),
		ui.DimStyle.Render(ts))

	if k := report.Kernel; k != nil {
		variant := k.Variant
		if variant == "" {
			variant = "-"
		}
		fmt.Fprintf(&sb, " %s %s  %s %s  %s %s\n\n",
			ui.LabelStyle.Render("Kernel"), ui.ValueStyle.Render(k.Version),
			ui.LabelStyle.Render("variant"), ui.ValueStyle.Render(variant),
			ui.LabelStyle.Render("package"), ui.ValueStyle.Render(k.Package))
	}

	sb.WriteString(titleLine("Checks"))
	sb.WriteString("\n")
	for _, c := range report.Checks {
		style := ui.ResultStyle(c.Result)
		name := c.Name
		if len(name) < nameW {
			name += strings.Repeat(" ", nameW-len(name))
		}
		fmt.Fprintf(&sb, " %s %s %s  %s\n",
			style.Render(ui.Icon(c.Result)), lipgloss.NewStyle().Bold(true).Render(name),
			style.Render(fmt.Sprintf("%-15s", c.Result)), c.Detail)
	}

	if len(report.Failures) > 0 {
		sb.WriteString("\n")
		sb.WriteString(titleLine("Not checked"))
		sb.WriteString("\n")
		for _, f := range report.Failures {
			fmt.Fprintf(&sb, " %s %s\n", ui.ResultStyle(checks.RestartSession).Render("○"), ui.DimStyle.Render(f))
		}
	}

	// Summary footer
	sb.WriteString("\n")
	sb.WriteString(hr())
	sb.WriteString("\n")
	style := ui.ResultStyle(report.Verdict).Bold(true)
	fmt.Fprintf(&sb, " %s\n", style.Render(ui.Icon(report.Verdict)+" "+report.Verdict.Summary()))
	fmt.Fprintf(&sb, "   %s\n\n", report.Verdict.Body())
	return sb.String()
}

func titleLine(t string) string {
	pad := 60 - len(t) - 4
	if pad < 0 {
		pad = 0
	}
	return ui.HeaderStyle.Render(fmt.Sprintf("== %s %s", t, strings.Repeat("=", pad)))
}

func hr() string {
	return ui.DimStyle.Render(strings.Repeat("-", 60))
}

func renderJSON(w io.Writer, report checks.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func renderYAML(w io.Writer, report checks.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

var markdownIcon = map[checks.Result]string{
	checks.Nothing:        "✅",
	checks.RestartSession: "⚠️",
	checks.Reboot:         "❌",
	checks.KernelUpdate:   "❌",
}

func renderMarkdown(report checks.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# rebootcheck report: %s\n\n", report.Hostname)
	fmt.Fprintf(&sb, "**Timestamp:** %s\n\n", report.Timestamp.Format(time.RFC3339))
	if k := report.Kernel; k != nil {
		fmt.Fprintf(&sb, "**Kernel:** `%s` (package `%s`)\n\n", k.Version, k.Package)
	}

	sb.WriteString("| Status | Check | Result | Detail |\n")
	sb.WriteString("|--------|-------|--------|--------|\n")
	for _, c := range report.Checks {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", markdownIcon[c.Result], c.Name, c.Result, c.Detail)
	}

	if len(report.Failures) > 0 {
		sb.WriteString("\n**Not checked:**\n\n")
		for _, f := range report.Failures {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}

	fmt.Fprintf(&sb, "\n**Verdict:** %s %s\n\n%s\n", markdownIcon[report.Verdict], report.Verdict.Summary(), report.Verdict.Body())
	return sb.String()
}

// renderCron prints one line when action is needed and nothing otherwise.
func renderCron(w io.Writer, report checks.Report) error {
	if report.Verdict == checks.Nothing {
		return nil
	}
	var issues []string
	for _, c := range report.Checks {
		if c.Result != checks.Nothing {
			issues = append(issues, fmt.Sprintf("[%s] %s: %s", c.Result, c.Name, c.Detail))
		}
	}
	_, err := fmt.Fprintf(w, "rebootcheck %s: %s: %s\n", report.Hostname, report.Verdict.Summary(), strings.Join(issues, "; "))
	return err
}
