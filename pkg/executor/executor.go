// Package executor implements the dependency-aware Parallel Executor:
// it runs a requested set of tools level-by-level against the
// Dependency Graph, bounding per-level concurrency with a worker pool,
// emitting progress callbacks, and guaranteeing that a failure in one
// tool never prevents unrelated tools from running.
package executor

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/toolmesh/toolmesh/pkg/depgraph"
	"github.com/toolmesh/toolmesh/pkg/logger"
)

var log = logger.New("executor")

// ToolResult is the per-tool outcome the Executor returns, aggregating
// whatever a tool reported across however many files it validated.
type ToolResult struct {
	ToolName       string
	Success        bool
	Duration       time.Duration
	Errors         int
	Warnings       int
	FilesProcessed int
	Output         string
}

// ProgressCallback is invoked as each tool transitions status, in the
// same spirit as the original's progress_callback(tool_name, status).
type ProgressCallback func(toolName, status string)

// ToolFunc runs one tool end-to-end and returns its aggregated result.
// Callers close over whatever per-tool file list and Validator the
// concrete invocation needs; the Executor is agnostic to how a
// ToolFunc does its work, only to the dependency ordering around it.
type ToolFunc func(ctx context.Context) ToolResult

// Executor runs requested tool sets against a Dependency Graph.
type Executor struct {
	maxWorkers int
}

// New constructs an Executor. maxWorkers bounds concurrency within a
// single level. 0 or negative means "use the default": the logical
// CPU count, lower-bounded at 1 and upper-bounded at each level's
// size, resolved per level in ExecuteTools since level sizes vary.
func New(maxWorkers int) *Executor {
	return &Executor{maxWorkers: maxWorkers}
}

// workersForLevel resolves the effective worker cap for a level of the
// given size, applying the default (NumCPU, clamped to [1, levelSize])
// whenever the Executor wasn't configured with an explicit positive
// maxWorkers.
func (e *Executor) workersForLevel(levelSize int) int {
	if levelSize <= 0 {
		levelSize = 1
	}
	if e.maxWorkers > 0 {
		if e.maxWorkers > levelSize {
			return levelSize
		}
		return e.maxWorkers
	}
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	if n > levelSize {
		n = levelSize
	}
	return n
}

// cancelledResult is the synthetic ToolResult recorded for a tool that
// never started because the context was cancelled before its level
// ran.
func cancelledResult(name string) ToolResult {
	return ToolResult{ToolName: name, Success: false, Errors: 1, Output: "cancelled"}
}

// ExecuteTools runs every tool in tools, in dependency order, calling
// fn(ctx) for each one. Tools within a level run concurrently, bounded
// by maxWorkers; a strict barrier separates levels, so every tool in
// level N finishes (successfully or not) before any tool in level N+1
// starts. A failing tool does not prevent its dependents' siblings
// (tools with no dependency on the failed tool) from running, nor does
// it cascade a failure onto tools it does not block — the Executor
// runs every scheduled tool regardless of earlier failures, per
// spec.md §5.
//
// If ctx is cancelled mid-run, in-flight tools are allowed to finish
// their current level (cooperative cancellation is checked between
// levels, not pre-empted mid-invocation), and every tool in a
// not-yet-started level is recorded as a cancelled ToolResult instead
// of being run.
func (e *Executor) ExecuteTools(ctx context.Context, tools map[string]ToolFunc, progress ProgressCallback) []ToolResult {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}

	graph, err := depgraph.New(names)
	if err != nil {
		log.Printf("dependency graph construction failed: %v", err)
		results := make([]ToolResult, 0, len(names))
		for _, name := range names {
			results = append(results, cancelledResult(name))
		}
		return results
	}

	plan := graph.TopologicalLevels()

	var (
		mu      sync.Mutex
		results []ToolResult
	)

	for _, level := range plan {
		select {
		case <-ctx.Done():
			mu.Lock()
			for _, name := range level.Tools {
				results = append(results, cancelledResult(name))
			}
			mu.Unlock()
			continue
		default:
		}

		p := pool.NewWithResults[ToolResult]().WithMaxGoroutines(e.workersForLevel(len(level.Tools)))

		for _, name := range level.Tools {
			name := name
			fn, ok := tools[name]
			if !ok {
				continue
			}
			if progress != nil {
				progress(name, "running")
			}
			p.Go(func() ToolResult {
				result := fn(ctx)
				result.ToolName = name
				if progress != nil {
					if result.Success {
						progress(name, "success")
					} else {
						progress(name, "failed")
					}
				}
				return result
			})
		}

		levelResults := p.Wait()
		mu.Lock()
		results = append(results, levelResults...)
		mu.Unlock()
	}

	return results
}

// GetExecutionPlan exposes the resolved plan for tools without
// executing anything.
func GetExecutionPlan(tools []string) (depgraph.ExecutionPlan, error) {
	graph, err := depgraph.New(tools)
	if err != nil {
		return nil, err
	}
	return graph.TopologicalLevels(), nil
}
