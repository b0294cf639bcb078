package types

import "time"

// SampleLimit caps how many distinct entity ids are kept per rule in a report document.
const SampleLimit = 3

// SchemaVersion is the current report document schema version.
const SchemaVersion = 1

// ReportMeta carries the run identity and document provenance fields.
// RunID and RunTime are nil when the data source had no completed run.
type ReportMeta struct {
	RunID       *int64     `json:"runId"`
	RunTime     *time.Time `json:"runTime"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Version     int        `json:"version"`
}

// ReportSummary holds the run-level totals.
type ReportSummary struct {
	TotalFailures int64 `json:"totalFailures"`
}

// ReportDocument is the canonical aggregation artifact for one DQ run.
// It is immutable after construction: TotalFailures always equals
// len(Failures), ByRule holds exactly the distinct rule codes present in
// Failures, and every sample list is deduplicated and capped at SampleLimit.
type ReportDocument struct {
	Meta          ReportMeta         `json:"meta"`
	Summary       ReportSummary      `json:"summary"`
	ByRule        []RuleCount        `json:"byRule"`
	SamplesByRule map[string][]int64 `json:"samplesByRule"`
	Failures      []ViolationRow     `json:"failures"`
}
