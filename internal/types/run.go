// Package types provides the data carriers shared across the DQ reporting pipeline.
package types

import "time"

// EntityType identifies which ledger entity a violation row points at.
type EntityType string

// Entity types produced by the DQ engine.
const (
	EntityTransfer EntityType = "Transfer"
	EntityAccount  EntityType = "Account"
	EntityCustomer EntityType = "Customer"
)

// ViolationRow is one instance of a named rule being violated by a ledger entity.
type ViolationRow struct {
	RuleCode   string     `json:"ruleCode"`
	EntityType EntityType `json:"entityType"`
	EntityID   int64      `json:"entityId"`
}

// RuleCount is the number of failures recorded for one rule within a run.
type RuleCount struct {
	RuleCode  string `json:"ruleCode"`
	FailCount int64  `json:"failCount"`
}

// RunSummary describes one execution of the upstream rule-evaluation process
// as reported by the data source.
type RunSummary struct {
	RunID         int64     `json:"runId"`
	RunTime       time.Time `json:"runTime"`
	TotalFailures int64     `json:"totalFailures"`
}
