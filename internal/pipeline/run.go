// Package pipeline provides the high-level orchestration for the DQ reporting run.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/completion"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/db"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/observability"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/prompt"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/report"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/rules"
	"github.com/yiqitkaan/fintech-data-quality-ai/internal/types"
)

// previewLen is how much of the narrative gets echoed after a successful write.
const previewLen = 300

// RunSource supplies the latest run's rows from the data source.
type RunSource interface {
	LatestRun(ctx context.Context) (*db.LatestRun, error)
}

// Completer generates a narrative from a prompt.
type Completer interface {
	Complete(ctx context.Context, userPrompt string, opts completion.Options) (string, error)
}

// Pipeline composes aggregation, prompt building, completion, and persistence
// for one run. A stage's failure aborts the run; artifacts written by earlier
// stages stay on disk.
type Pipeline struct {
	source    RunSource
	store     *report.Store
	completer Completer
	catalog   rules.Catalog
	verbose   bool
	printer   *observability.Printer
}

// New wires a pipeline. source is only needed by BuildReport and completer
// only by GenerateNarrative; either may be nil when the corresponding stage
// is not invoked.
func New(source RunSource, store *report.Store, completer Completer, catalog rules.Catalog, verbose bool) *Pipeline {
	return &Pipeline{
		source:    source,
		store:     store,
		completer: completer,
		catalog:   catalog,
		verbose:   verbose,
		printer:   observability.NewPrinter(os.Stdout),
	}
}

// BuildReport fetches the latest run rows, aggregates them into the canonical
// report document, and overwrites the document artifact.
func (p *Pipeline) BuildReport(ctx context.Context) (*types.ReportDocument, error) {
	fmt.Printf("Fetching latest DQ run from database...\n")
	latest, err := p.source.LatestRun(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching latest run failed: %w", err)
	}

	var meta report.RunMeta
	if latest.Summary != nil {
		runID := latest.Summary.RunID
		runTime := latest.Summary.RunTime
		meta = report.RunMeta{RunID: &runID, RunTime: &runTime}
	}

	doc := report.Aggregate(latest.Failures, meta)
	warnOnDrift(latest, doc)

	if err := p.store.WriteDocument(doc); err != nil {
		return nil, err
	}

	fmt.Printf("WROTE: %s\n", p.store.DocumentPath())
	fmt.Printf("RUN: %s TOTAL_FAILS: %d\n", formatRunID(doc.Meta.RunID), doc.Summary.TotalFailures)
	if p.verbose {
		p.printer.PrintReportDocument(doc)
	}
	return doc, nil
}

// GenerateNarrative reads the report document back, builds the CTO prompt,
// calls the completion service, and writes the narrative artifact. A blank
// narrative fails with EmptyOutputError before anything is written.
func (p *Pipeline) GenerateNarrative(ctx context.Context, opts completion.Options) (string, error) {
	doc, err := p.store.ReadDocument()
	if err != nil {
		return "", err
	}

	userPrompt := prompt.Build(doc, p.catalog)
	if p.verbose {
		fmt.Printf("[VERBOSE] Built prompt: %d bytes, %d rules\n", len(userPrompt), len(doc.ByRule))
	}

	fmt.Printf("Calling completion service...\n")
	narrative, err := p.completer.Complete(ctx, userPrompt, opts)
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}
	if strings.TrimSpace(narrative) == "" {
		return "", &EmptyOutputError{}
	}

	path, err := p.store.WriteNarrative(doc.Meta.RunID, time.Now(), narrative)
	if err != nil {
		return "", err
	}

	fmt.Printf("WROTE: %s\n", path)
	preview := narrative
	if len(preview) > previewLen {
		preview = preview[:previewLen]
	}
	fmt.Printf("PREVIEW:\n%s ...\n", preview)
	return path, nil
}

// Run executes the full pipeline: report aggregation, then narrative generation.
func (p *Pipeline) Run(ctx context.Context, opts completion.Options) error {
	fmt.Printf("Step 1/2: Building latest run report...\n")
	if _, err := p.BuildReport(ctx); err != nil {
		return err
	}

	fmt.Printf("Step 2/2: Generating CTO narrative...\n")
	if _, err := p.GenerateNarrative(ctx, opts); err != nil {
		return err
	}
	return nil
}

// warnOnDrift compares the document derived from the raw rows against the
// source's own pre-aggregated summary and per-rule counts. Drift is logged,
// never fatal: the derived document is the canonical one.
func warnOnDrift(latest *db.LatestRun, doc *types.ReportDocument) {
	if latest.Summary != nil && latest.Summary.TotalFailures != doc.Summary.TotalFailures {
		fmt.Printf("Warning: source reports %d total failures, derived document has %d\n",
			latest.Summary.TotalFailures, doc.Summary.TotalFailures)
	}

	derived := make(map[string]int64, len(doc.ByRule))
	for _, r := range doc.ByRule {
		derived[r.RuleCode] = r.FailCount
	}
	for _, r := range latest.ByRule {
		if derived[r.RuleCode] != r.FailCount {
			fmt.Printf("Warning: source reports %d failures for %s, derived document has %d\n",
				r.FailCount, r.RuleCode, derived[r.RuleCode])
		}
	}
}

func formatRunID(runID *int64) string {
	if runID == nil {
		return "unknown"
	}
	return strconv.FormatInt(*runID, 10)
}
