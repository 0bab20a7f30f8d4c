// Package report renders validation results for humans: issues grouped by
// confidence tier, with suggestions and their locations, capped so a noisy
// run cannot flood the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"symguard/internal/types"
)

// MaxDisplayed is the default cap on the rendered issue list; the
// overflow is summarized by count. Callers override it through the
// report config.
const MaxDisplayed = 20

var (
	headerStyle = lipgloss.NewStyle().Bold(true)

	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))

	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)

	locStyle     = lipgloss.NewStyle().Faint(true)
	suggestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4db6ac"))
)

func tierStyle(severity string) lipgloss.Style {
	switch severity {
	case "HIGH":
		return highStyle
	case "MEDIUM":
		return mediumStyle
	default:
		return lowStyle
	}
}

// Render formats a validation result as a tiered report showing at most
// maxIssues issues. Zero or negative means MaxDisplayed.
func Render(result types.ValidationResult, maxIssues int) string {
	if maxIssues <= 0 {
		maxIssues = MaxDisplayed
	}
	var b strings.Builder

	if len(result.Issues) == 0 {
		b.WriteString(okStyle.Render("No unresolved symbols found."))
		b.WriteString(fmt.Sprintf(" (mode: %s)\n", result.Mode))
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("Unresolved symbols: %d (mode: %s)", len(result.Issues), result.Mode)))
	b.WriteString("\n")

	for _, tier := range []string{"HIGH", "MEDIUM", "LOW"} {
		issues := filterTier(result.Issues, tier, maxIssues)
		if len(issues) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(tierStyle(tier).Render(fmt.Sprintf("%s (%d)", tier, len(issues))))
		b.WriteString("\n")
		for _, issue := range issues {
			writeIssue(&b, issue)
		}
	}

	if extra := len(result.Issues) - displayBudget(result.Issues, maxIssues); extra > 0 {
		b.WriteString(fmt.Sprintf("\n... and %d more issue(s) not shown\n", extra))
	}

	b.WriteString("\n")
	if result.Blocked {
		b.WriteString(blockedStyle.Render("BLOCKED: too many high-confidence unresolved symbols."))
	} else {
		b.WriteString(okStyle.Render("Review the findings above; nothing is blocking."))
	}
	b.WriteString("\n")
	return b.String()
}

func writeIssue(b *strings.Builder, issue types.Issue) {
	conf := fmt.Sprintf("%.2f", issue.Confidence)
	b.WriteString(fmt.Sprintf("  %s  %s\n", issue.Name, locStyle.Render(fmt.Sprintf("%s:%d (confidence %s)", issue.File, issue.Line, conf))))
	if len(issue.Suggestions) > 0 {
		hint := fmt.Sprintf("Did you mean %q?", issue.Suggestions[0])
		if len(issue.SuggestionLocations) > 0 {
			loc := issue.SuggestionLocations[0]
			hint += fmt.Sprintf(" (defined at %s:%d)", loc.File, loc.Line)
		}
		b.WriteString("    " + suggestStyle.Render(hint) + "\n")
	}
}

// filterTier returns a tier's issues, honoring the display cap in tier
// order: high-confidence findings win the budget.
func filterTier(issues []types.Issue, tier string, maxIssues int) []types.Issue {
	budget := maxIssues
	var out []types.Issue
	for _, t := range []string{"HIGH", "MEDIUM", "LOW"} {
		for _, issue := range issues {
			if issue.Severity() != t {
				continue
			}
			if budget == 0 {
				return out
			}
			budget--
			if t == tier {
				out = append(out, issue)
			}
		}
		if t == tier {
			return out
		}
	}
	return out
}

func displayBudget(issues []types.Issue, maxIssues int) int {
	if len(issues) > maxIssues {
		return maxIssues
	}
	return len(issues)
}
