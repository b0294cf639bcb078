// Package report builds and persists the canonical DQ run report document.
package report

import (
	"time"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/types"
)

// RunMeta carries the run identity fields into aggregation.
// Both fields are nil when the data source had no completed run to report.
type RunMeta struct {
	RunID   *int64
	RunTime *time.Time
}

// Aggregate folds raw violation rows into the canonical report document.
//
// ByRule holds one entry per distinct rule code in first-seen order, with
// counts derived from the rows themselves. Each rule's sample list keeps the
// first SampleLimit distinct entity ids encountered for that rule, not simply
// the first SampleLimit rows. Malformed rows are tolerated; the function has
// no failure mode.
func Aggregate(failures []types.ViolationRow, meta RunMeta) *types.ReportDocument {
	byRule := make([]types.RuleCount, 0)
	ruleIndex := make(map[string]int)
	samples := make(map[string][]int64)

	for _, f := range failures {
		idx, seen := ruleIndex[f.RuleCode]
		if !seen {
			ruleIndex[f.RuleCode] = len(byRule)
			byRule = append(byRule, types.RuleCount{RuleCode: f.RuleCode})
			idx = len(byRule) - 1
		}
		byRule[idx].FailCount++

		if len(samples[f.RuleCode]) < types.SampleLimit && !containsID(samples[f.RuleCode], f.EntityID) {
			samples[f.RuleCode] = append(samples[f.RuleCode], f.EntityID)
		}
	}

	if failures == nil {
		failures = make([]types.ViolationRow, 0)
	}

	return &types.ReportDocument{
		Meta: types.ReportMeta{
			RunID:       meta.RunID,
			RunTime:     meta.RunTime,
			GeneratedAt: time.Now().UTC(),
			Version:     types.SchemaVersion,
		},
		Summary: types.ReportSummary{
			TotalFailures: int64(len(failures)),
		},
		ByRule:        byRule,
		SamplesByRule: samples,
		Failures:      failures,
	}
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
