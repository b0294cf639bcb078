// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxRulesToShow is the number of per-rule entries displayed
	maxRulesToShow = 5
)

// Printer handles formatted output for verbose mode
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
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReportDocument outputs a human-readable summary of an aggregated run document.
func (p *Printer) PrintReportDocument(doc *types.ReportDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder

	if doc.Meta.RunID != nil {
		sb.WriteString(fmt.Sprintf("Run:       %d\n", *doc.Meta.RunID))
	} else {
		sb.WriteString("Run:       unknown\n")
	}
	if doc.Meta.RunTime != nil {
		sb.WriteString(fmt.Sprintf("Run time:  %s\n", doc.Meta.RunTime.UTC().Format("2006-01-02 15:04:05")))
	}
	sb.WriteString(fmt.Sprintf("Failures:  %d across %d rules\n", doc.Summary.TotalFailures, len(doc.ByRule)))

	shown := 0
	for _, r := range doc.ByRule {
		if shown == maxRulesToShow {
			sb.WriteString(fmt.Sprintf("... and %d more rules\n", len(doc.ByRule)-shown))
			break
		}
		sb.WriteString(fmt.Sprintf("  %-8s %d (samples: %d)\n", r.RuleCode, r.FailCount, len(doc.SamplesByRule[r.RuleCode])))
		shown++
	}

	p.printBox("DQ Run Report", strings.TrimRight(sb.String(), "\n"))
}

// PrintNarrativePreview outputs the first previewLen characters of a narrative.
func (p *Printer) PrintNarrativePreview(narrative string, previewLen int) {
	preview := narrative
	if len(preview) > previewLen {
		preview = preview[:previewLen] + " ..."
	}
	p.printBox("Narrative Preview", preview)
}
