package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/rules"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/types"
)

func testDocument() *types.ReportDocument {
	runID := int64(42)
	runTime := time.Date(2026, 2, 4, 8, 30, 0, 0, time.UTC)
	return &types.ReportDocument{
		Meta: types.ReportMeta{
			RunID:       &runID,
			RunTime:     &runTime,
			GeneratedAt: time.Date(2026, 2, 4, 9, 0, 0, 0, time.UTC),
			Version:     types.SchemaVersion,
		},
		Summary: types.ReportSummary{TotalFailures: 6},
		ByRule: []types.RuleCount{
			{RuleCode: "DQ-05", FailCount: 1},
			{RuleCode: "DQ-01", FailCount: 4},
			{RuleCode: "DQ-C01", FailCount: 1},
		},
		SamplesByRule: map[string][]int64{
			"DQ-05":  {202},
			"DQ-01":  {101, 102, 103},
			"DQ-C01": {7},
		},
	}
}

func TestBuild_IsDeterministic(t *testing.T) {
	doc := testDocument()
	catalog := rules.Default()

	first := Build(doc, catalog)
	second := Build(doc, catalog)

	assert.Equal(t, first, second)
}

func TestBuild_RendersEveryRuleCode(t *testing.T) {
	doc := testDocument()
	doc.ByRule = append(doc.ByRule, types.RuleCount{RuleCode: "DQ-99", FailCount: 2})

	text := Build(doc, rules.Default())

	for _, code := range []string{"DQ-01", "DQ-05", "DQ-C01", "DQ-99"} {
		assert.Contains(t, text, code)
	}
	assert.Contains(t, text, "DQ-99: (no definition found)")
}

func TestBuild_ByRuleSortedByFailCountDesc(t *testing.T) {
	text := Build(testDocument(), rules.Default())

	section := extractSection(t, text, "RESULTS BY RULE (sorted by failCount desc):")
	require.Len(t, section, 3)
	assert.Equal(t, "- DQ-01: 4", section[0])
	// Equal counts keep the document's insertion order.
	assert.Equal(t, "- DQ-05: 1", section[1])
	assert.Equal(t, "- DQ-C01: 1", section[2])
}

func TestBuild_SamplesSortedByRuleCode(t *testing.T) {
	text := Build(testDocument(), rules.Default())

	section := extractSection(t, text, "SAMPLE VIOLATION IDS (max 3 per rule):")
	require.Len(t, section, 3)
	assert.Equal(t, "- DQ-01 -> [101, 102, 103]", section[0])
	assert.Equal(t, "- DQ-05 -> [202]", section[1])
	assert.Equal(t, "- DQ-C01 -> [7]", section[2])
}

func TestBuild_MissingMetadataRendersUnknown(t *testing.T) {
	doc := testDocument()
	doc.Meta.RunID = nil
	doc.Meta.RunTime = nil

	text := Build(doc, rules.Default())

	assert.Contains(t, text, "- runId: unknown")
	assert.Contains(t, text, "- runTime (UTC): unknown")
}

func TestBuild_ContainsOutputDirective(t *testing.T) {
	text := Build(testDocument(), rules.Default())

	for _, heading := range []string{
		"## Executive Summary",
		"## Key Findings (by rule)",
		"## Example Violations",
		"## Recommended Actions",
		"## Quick Wins (1 day)",
		"## Next Steps (1-2 weeks)",
	} {
		assert.Contains(t, text, heading)
	}
	assert.Contains(t, text, "250-400 words")
	assert.Contains(t, text, "Do not write code.")
}

func TestBuild_EmptyRun(t *testing.T) {
	doc := &types.ReportDocument{
		Meta:    types.ReportMeta{GeneratedAt: time.Now().UTC(), Version: types.SchemaVersion},
		ByRule:  []types.RuleCount{},
		Summary: types.ReportSummary{},
	}

	text := Build(doc, rules.Default())

	assert.Contains(t, text, "- (no rules in this run)")
	assert.Contains(t, text, "- (no samples)")
	assert.Contains(t, text, "- totalFailures: 0")
}

// extractSection returns the bullet lines directly under a section heading.
func extractSection(t *testing.T, text, heading string) []string {
	t.Helper()

	_, rest, found := strings.Cut(text, heading+"\n")
	require.True(t, found, "heading %q not in prompt", heading)

	var lines []string
	for _, line := range strings.Split(rest, "\n") {
		if !strings.HasPrefix(line, "- ") {
			break
		}
		lines = append(lines, line)
	}
	return lines
}
