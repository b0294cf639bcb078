// Package prompt renders the CTO narrative prompt from a report document and
// the rule catalog. Rendering is pure: identical inputs yield byte-identical
// prompt text.
package prompt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/prompts"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/rules"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/types"
)

// unknownMarker renders in place of metadata fields the data source did not supply.
const unknownMarker = "unknown"

// Build assembles the narrative prompt. Every rule code present in the
// document is rendered: codes missing from the catalog get an explicit
// "(no definition found)" placeholder rather than being omitted.
func Build(doc *types.ReportDocument, catalog rules.Catalog) string {
	return prompts.Format(prompts.MustGet("narrative"), map[string]string{
		"RuleDictionary": formatRuleDictionary(doc.ByRule, catalog),
		"RunID":          formatRunID(doc.Meta.RunID),
		"RunTime":        formatTime(doc.Meta.RunTime),
		"GeneratedAt":    doc.Meta.GeneratedAt.UTC().Format(time.RFC3339),
		"TotalFailures":  strconv.FormatInt(doc.Summary.TotalFailures, 10),
		"ByRule":         formatByRule(doc.ByRule),
		"Samples":        formatSamples(doc.SamplesByRule),
	})
}

// formatByRule renders counts sorted by descending failCount. Ties keep the
// document's insertion order.
func formatByRule(byRule []types.RuleCount) string {
	if len(byRule) == 0 {
		return "- (no rules in this run)"
	}

	sorted := make([]types.RuleCount, len(byRule))
	copy(sorted, byRule)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FailCount > sorted[j].FailCount
	})

	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		lines = append(lines, fmt.Sprintf("- %s: %d", r.RuleCode, r.FailCount))
	}
	return strings.Join(lines, "\n")
}

// formatSamples renders sample id lists sorted by rule code.
func formatSamples(samplesByRule map[string][]int64) string {
	if len(samplesByRule) == 0 {
		return "- (no samples)"
	}

	codes := make([]string, 0, len(samplesByRule))
	for code := range samplesByRule {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	lines := make([]string, 0, len(codes))
	for _, code := range codes {
		ids := make([]string, 0, len(samplesByRule[code]))
		for _, id := range samplesByRule[code] {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		lines = append(lines, fmt.Sprintf("- %s -> [%s]", code, strings.Join(ids, ", ")))
	}
	return strings.Join(lines, "\n")
}

// formatRuleDictionary renders the catalog subset for the rule codes that
// actually appear in the run, sorted by code.
func formatRuleDictionary(byRule []types.RuleCount, catalog rules.Catalog) string {
	if len(byRule) == 0 {
		return "- (no rules in this run)"
	}

	seen := make(map[string]bool)
	codes := make([]string, 0, len(byRule))
	for _, r := range byRule {
		if !seen[r.RuleCode] {
			seen[r.RuleCode] = true
			codes = append(codes, r.RuleCode)
		}
	}
	sort.Strings(codes)

	lines := make([]string, 0, len(codes))
	for _, code := range codes {
		def, ok := catalog.Lookup(code)
		if !ok {
			lines = append(lines, fmt.Sprintf("- %s: (no definition found)", code))
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s — %s\n  - Meaning: %s\n  - Risk: %s\n  - Owner: %s",
			code, def.Title, def.Meaning, def.Risk, def.OwnerHint))
	}
	return strings.Join(lines, "\n")
}

func formatRunID(runID *int64) string {
	if runID == nil {
		return unknownMarker
	}
	return strconv.FormatInt(*runID, 10)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return unknownMarker
	}
	return t.UTC().Format(time.RFC3339)
}
