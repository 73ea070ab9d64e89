package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/threadlint/threadlint/internal/analyzers"
	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
	"github.com/threadlint/threadlint/pkg/shared"
)

// ErrInvalidDescriptor reports a structural model violating the engine's
// input contract. Unlike per-unit parse failures, this aborts the whole
// analysis.
var ErrInvalidDescriptor = errors.New("invalid class descriptor")

// Engine runs the analyzer set over extracted source units. The analyzer
// list is fixed at construction; its order decides issue order within every
// class.
type Engine struct {
	analyzers      []analyzers.Analyzer
	concurrentJobs int
	logger         hclog.Logger
}

// New creates an Engine. A concurrentJobs value below 1 means sequential.
func New(analyzerSet []analyzers.Analyzer, concurrentJobs int, logger hclog.Logger) *Engine {
	return &Engine{
		analyzers:      analyzerSet,
		concurrentJobs: concurrentJobs,
		logger:         logger,
	}
}

// AnalyzeUnits produces one result per unit, in input order, regardless of
// worker count. Units fan out over bounded goroutines and land in an
// index-addressed slice, never a completion-ordered one. When ctx is
// cancelled mid-run, dispatching stops, in-flight units finish, and the
// completed prefix is returned together with the context error.
func (e *Engine) AnalyzeUnits(ctx context.Context, units []*descriptor.SourceUnit) ([]findings.Result, error) {
	if err := validateUnits(units); err != nil {
		return nil, err
	}

	e.logger.Info("analysis starting", "units", len(units), "goroutines", e.concurrentJobs)

	results := make([]findings.Result, len(units))
	dispatched := shared.ForEveryWithBoundedGoroutinesCtx(ctx, e.concurrentJobs, units, func(i int, unit *descriptor.SourceUnit) {
		results[i] = e.analyzeUnit(unit)
	})
	if dispatched < len(units) {
		e.logger.Warn("analysis cancelled", "completed", dispatched, "total", len(units))
		return results[:dispatched], ctx.Err()
	}
	return results, nil
}

// analyzeUnit runs every analyzer over every class of one unit. Classes are
// visited in declaration order, analyzers in registration order, so the
// issue sequence is deterministic.
func (e *Engine) analyzeUnit(unit *descriptor.SourceUnit) findings.Result {
	if unit.ParseError != "" {
		e.logger.Warn("skipping malformed unit", "path", unit.Path, "error", unit.ParseError)
		return findings.NewErrorResult(unit.Path, unit.ParseError)
	}

	var issues []findings.Issue
	for ci := range unit.Classes {
		class := &unit.Classes[ci]
		for _, analyzer := range e.analyzers {
			issues = append(issues, e.runAnalyzer(analyzer, unit, class)...)
		}
	}
	return findings.NewResult(unit.Path, len(unit.Classes), issues)
}

// runAnalyzer confines an analyzer panic to one (analyzer, class) pair. The
// failure stays observable as a synthetic issue instead of killing the scan.
func (e *Engine) runAnalyzer(analyzer analyzers.Analyzer, unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) (issues []findings.Issue) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("analyzer failed",
				"analyzer", analyzer.Name(), "class", class.Name, "path", unit.Path, "panic", r)
			issues = []findings.Issue{{
				Category:    findings.CategoryAnalyzerFailure,
				Class:       class.Name,
				Severity:    findings.SeverityLow,
				Description: fmt.Sprintf("analyzer %q failed on class %q: %v", analyzer.Name(), class.Name, r),
			}}
		}
	}()
	return analyzer.Analyze(unit, class)
}

// validateUnits enforces the input contract before any work is dispatched.
func validateUnits(units []*descriptor.SourceUnit) error {
	for ui, unit := range units {
		if unit == nil {
			return fmt.Errorf("%w: nil unit at index %d", ErrInvalidDescriptor, ui)
		}
		for ci := range unit.Classes {
			if unit.Classes[ci].Name == "" {
				return fmt.Errorf("%w: unnamed class at index %d in %q", ErrInvalidDescriptor, ci, unit.Path)
			}
		}
	}
	return nil
}
