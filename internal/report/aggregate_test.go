package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/types"
)

func TestAggregate_DuplicateEntityCollapsesToOneSample(t *testing.T) {
	rows := []types.ViolationRow{
		{RuleCode: "DQ-01", EntityType: types.EntityTransfer, EntityID: 101},
		{RuleCode: "DQ-01", EntityType: types.EntityTransfer, EntityID: 101},
		{RuleCode: "DQ-05", EntityType: types.EntityTransfer, EntityID: 202},
	}

	doc := Aggregate(rows, RunMeta{})

	assert.Equal(t, int64(3), doc.Summary.TotalFailures)
	require.Len(t, doc.ByRule, 2)
	assert.Equal(t, types.RuleCount{RuleCode: "DQ-01", FailCount: 2}, doc.ByRule[0])
	assert.Equal(t, types.RuleCount{RuleCode: "DQ-05", FailCount: 1}, doc.ByRule[1])
	assert.Equal(t, []int64{101}, doc.SamplesByRule["DQ-01"])
	assert.Equal(t, []int64{202}, doc.SamplesByRule["DQ-05"])
}

func TestAggregate_SamplesKeepFirstDistinctIDs(t *testing.T) {
	rows := []types.ViolationRow{
		{RuleCode: "DQ-02", EntityType: types.EntityTransfer, EntityID: 10},
		{RuleCode: "DQ-02", EntityType: types.EntityTransfer, EntityID: 10},
		{RuleCode: "DQ-02", EntityType: types.EntityTransfer, EntityID: 11},
		{RuleCode: "DQ-02", EntityType: types.EntityTransfer, EntityID: 12},
		{RuleCode: "DQ-02", EntityType: types.EntityTransfer, EntityID: 13},
	}

	doc := Aggregate(rows, RunMeta{})

	// First three distinct ids, not the first three rows.
	assert.Equal(t, []int64{10, 11, 12}, doc.SamplesByRule["DQ-02"])
	assert.Equal(t, int64(5), doc.ByRule[0].FailCount)
}

func TestAggregate_SampleListsAreCappedAndDistinct(t *testing.T) {
	var rows []types.ViolationRow
	for i := int64(0); i < 20; i++ {
		rows = append(rows, types.ViolationRow{RuleCode: "DQ-03", EntityType: types.EntityTransfer, EntityID: i % 7})
	}

	doc := Aggregate(rows, RunMeta{})

	samples := doc.SamplesByRule["DQ-03"]
	require.LessOrEqual(t, len(samples), types.SampleLimit)
	seen := make(map[int64]bool)
	for _, id := range samples {
		assert.False(t, seen[id], "sample ids must be distinct")
		seen[id] = true
	}
}

func TestAggregate_TotalEqualsFailureCount(t *testing.T) {
	rows := []types.ViolationRow{
		{RuleCode: "DQ-01", EntityType: types.EntityTransfer, EntityID: 1},
		{RuleCode: "DQ-A01", EntityType: types.EntityAccount, EntityID: 2},
		{RuleCode: "DQ-C01", EntityType: types.EntityCustomer, EntityID: 3},
		{RuleCode: "DQ-01", EntityType: types.EntityTransfer, EntityID: 4},
	}

	doc := Aggregate(rows, RunMeta{})

	assert.Equal(t, int64(len(doc.Failures)), doc.Summary.TotalFailures)
	assert.Equal(t, rows, doc.Failures, "failures retain the input order")

	var counted int64
	for _, r := range doc.ByRule {
		counted += r.FailCount
	}
	assert.Equal(t, doc.Summary.TotalFailures, counted)
}

func TestAggregate_EmptyInput(t *testing.T) {
	doc := Aggregate(nil, RunMeta{})

	assert.Equal(t, int64(0), doc.Summary.TotalFailures)
	assert.NotNil(t, doc.ByRule)
	assert.Empty(t, doc.ByRule)
	assert.NotNil(t, doc.Failures)
	assert.Empty(t, doc.SamplesByRule)
}

func TestAggregate_MetaFields(t *testing.T) {
	runID := int64(42)
	runTime := time.Date(2026, 2, 4, 8, 30, 0, 0, time.UTC)

	doc := Aggregate(nil, RunMeta{RunID: &runID, RunTime: &runTime})

	require.NotNil(t, doc.Meta.RunID)
	assert.Equal(t, int64(42), *doc.Meta.RunID)
	require.NotNil(t, doc.Meta.RunTime)
	assert.Equal(t, runTime, *doc.Meta.RunTime)
	assert.Equal(t, types.SchemaVersion, doc.Meta.Version)
	assert.False(t, doc.Meta.GeneratedAt.IsZero())

	// Without a summary row both run fields stay nil.
	empty := Aggregate(nil, RunMeta{})
	assert.Nil(t, empty.Meta.RunID)
	assert.Nil(t, empty.Meta.RunTime)
}
