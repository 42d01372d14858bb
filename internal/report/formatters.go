// Package report renders an analysis as boxed, human-readable text for the CLI.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output of analysis results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs every section of the report
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintScore(result)
	p.PrintSections(result.SectionsFound)
	p.PrintKeywords(result.Keywords)
	p.PrintSuitableRoles(result.SuitableRoles)
	p.PrintIndustry(result.IndustryAnalysis)
	p.PrintSuggestions(result.Suggestions)
}

// PrintScore outputs the overall score and the ATS breakdown
func (p *Printer) PrintScore(result *types.AnalysisResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:       %s\n", catalog.HumanizeRole(result.Role)))
	sb.WriteString(fmt.Sprintf("Score:      %.2f\n", result.Score))
	sb.WriteString(fmt.Sprintf("ATS score:  %.2f\n", result.ATSScore))
	sb.WriteString("\n")

	for _, metric := range types.MetricNames {
		score, ok := result.ATSDetails[metric]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-22s %6.2f  %s\n", metric, score, bar(score)))
	}

	if len(result.ATSRecommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range result.ATSRecommendations {
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", rec.Category, rec.Message))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSections outputs which résumé sections were detected
func (p *Printer) PrintSections(found types.SectionMap) {
	var sb strings.Builder
	for _, name := range types.SectionNames {
		mark := "✗"
		if found.Get(name) {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, name))
	}
	p.printBox(fmt.Sprintf("SECTIONS (%d/%d)", found.Count(), len(types.SectionNames)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs the top hits of each keyword category
func (p *Printer) PrintKeywords(extracted types.ExtractedKeywords) {
	if len(extracted) == 0 {
		p.printBox("KEYWORDS", "No catalog keywords found")
		return
	}

	categories := make([]string, 0, len(extracted))
	for category := range extracted {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sb strings.Builder
	for i, category := range categories {
		hits := extracted[category]
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		count := min(len(hits), maxItemsToShow)
		for _, hit := range hits[:count] {
			sb.WriteString(fmt.Sprintf("  • %s ×%d (%s)\n", hit.Keyword, hit.Count, hit.Confidence))
		}
		if len(hits) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(hits)-maxItemsToShow))
		}
		if i < len(categories)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuitableRoles outputs the best-fitting roles with their confidence
func (p *Printer) PrintSuitableRoles(roles []types.RoleMatch) {
	if len(roles) == 0 {
		p.printBox("SUITABLE ROLES", "No role reached the match threshold")
		return
	}

	var sb strings.Builder
	for i, match := range roles {
		sb.WriteString(fmt.Sprintf("#%d  %s  %.2f%%\n", i+1, catalog.HumanizeRole(match.Role), match.Confidence))
		if len(match.MatchedKeywords) > 0 {
			sb.WriteString(fmt.Sprintf("    Matched: %s\n", strings.Join(match.MatchedKeywords, ", ")))
		}
	}
	p.printBox("SUITABLE ROLES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIndustry outputs the industry benchmark comparison
func (p *Printer) PrintIndustry(industry types.IndustryAnalysis) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Industry:     %s\n", industry.Industry))
	sb.WriteString(fmt.Sprintf("Match score:  %.2f\n", industry.MatchScore))

	if len(industry.MissingSkills) > 0 {
		sb.WriteString("\nMissing skills:\n")
		count := min(len(industry.MissingSkills), maxItemsToShow)
		for _, skill := range industry.MissingSkills[:count] {
			sb.WriteString(fmt.Sprintf("  • %s\n", skill))
		}
		if len(industry.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(industry.MissingSkills)-maxItemsToShow))
		}
	}

	for _, rec := range industry.Recommendations {
		sb.WriteString(fmt.Sprintf("\n%s\n", rec))
	}

	p.printBox("INDUSTRY FIT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the improvement suggestions in order
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO SUGGESTIONS", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%s %s\n", s.Icon, s.Title))
		for _, line := range wrap(s.Message, boxWidth-6) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// bar draws a 0-100 score as a 20-cell gauge
func bar(score float64) string {
	filled := int(score/5 + 0.5)
	filled = max(0, min(filled, 20))
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// truncate shortens s to width runes, ending with an ellipsis when cut
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// wrap breaks text into lines of at most width runes at word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
