// Package depgraph implements the Dependency Graph: a static
// declaration of which validators must run before which others (so a
// formatter that rewrites a file finishes before a linter reads it),
// and the topological-level scheduling the Parallel Executor consumes.
package depgraph

import (
	"fmt"
	"sort"

	"github.com/toolmesh/toolmesh/pkg/logger"
)

var log = logger.New("depgraph")

// Dependencies declares, for every known tool, the set of tools that
// must complete before it may start. Formatters that mutate a file
// in-place precede linters in the same language family, matching the
// original's TOOL_DEPENDENCIES table and the safeguard against
// concurrent same-file mutation described in spec.md §5.
var Dependencies = map[string][]string{
	"python-black": nil,
	"isort":        nil,
	"autoflake":    nil,
	"ruff":         {"python-black", "isort", "autoflake"},
	"flake8":       {"python-black", "isort", "autoflake"},
	"mypy":         {"python-black", "isort", "autoflake"},
	"bandit":       {"python-black", "isort", "autoflake"},

	"js-prettier": nil,
	"js-eslint":   {"js-prettier"},

	"taplo":     nil,
	"terraform": nil,

	"yamllint":     nil,
	"ansible-lint": {"yamllint"},

	"shellcheck": nil,
	"hadolint":   nil,

	"dockerfile-lint": nil,
	"gitlab-ci":       nil,
	"chapel":          nil,
	"go-vet":          nil,
}

// ExecutionLevel is one barrier-separated group of the plan: every
// tool in Tools may run concurrently, and every tool in a later level
// depends (directly or transitively) on at least one tool in an
// earlier level.
type ExecutionLevel struct {
	Index int
	Tools []string
}

// ExecutionPlan is the ordered list of levels produced by
// TopologicalLevels.
type ExecutionPlan []ExecutionLevel

// Statistics summarizes a plan the way demo_parallel_executor.py's
// get_statistics() does, including derived speedup estimates assuming
// each tool takes one unit of time.
type Statistics struct {
	TotalTools             int
	TotalLevels            int
	MaxParallelism         int
	AvgParallelism         float64
	SequentialTimeEstimate float64
	ParallelTimeEstimate   float64
	SpeedupFactor          float64
}

// Graph holds a resolved, validated dependency graph for a specific
// requested tool set.
type Graph struct {
	deps map[string][]string
}

// ErrCycle is returned by New when the requested tools' dependencies
// contain a cycle.
type ErrCycle struct {
	Remaining []string
}

func (e *ErrCycle) Error() string {
	return fmt.Sprintf("dependency cycle detected among tools: %v", e.Remaining)
}

// New builds a Graph restricted to tools. A tool name absent from
// Dependencies is treated as dependency-free per spec.md's explicit
// decision on unknown tools, rather than rejected.
func New(tools []string) (*Graph, error) {
	requested := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		requested[t] = struct{}{}
	}

	deps := make(map[string][]string, len(tools))
	for _, t := range tools {
		declared, ok := Dependencies[t]
		if !ok {
			log.Printf("%s: unknown tool, treating as dependency-free", t)
			deps[t] = nil
			continue
		}
		var filtered []string
		for _, d := range declared {
			if _, want := requested[d]; want {
				filtered = append(filtered, d)
			}
		}
		deps[t] = filtered
	}

	if err := detectCycle(deps); err != nil {
		return nil, err
	}

	return &Graph{deps: deps}, nil
}

func detectCycle(deps map[string][]string) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := make(map[string]int, len(deps))
	var stack []string

	var visit func(node string) error
	visit = func(node string) error {
		switch state[node] {
		case black:
			return nil
		case gray:
			return &ErrCycle{Remaining: append(append([]string{}, stack...), node)}
		}
		state[node] = gray
		stack = append(stack, node)
		for _, dep := range deps[node] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[node] = black
		return nil
	}

	names := make([]string, 0, len(deps))
	for n := range deps {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}

// TopologicalLevels computes the execution plan via Kahn's algorithm:
// level 0 holds every tool with no unresolved dependency; each
// subsequent level holds tools whose dependencies are all satisfied by
// earlier levels. Tools within a level are sorted by name for
// reproducible output; that order carries no scheduling meaning.
func (g *Graph) TopologicalLevels() ExecutionPlan {
	indegree := make(map[string]int, len(g.deps))
	dependents := make(map[string][]string, len(g.deps))

	for node, deps := range g.deps {
		indegree[node] = len(deps)
		for _, d := range deps {
			dependents[d] = append(dependents[d], node)
		}
	}

	var plan ExecutionPlan
	remaining := len(indegree)
	processed := make(map[string]bool, remaining)

	for level := 0; remaining > 0; level++ {
		var ready []string
		for node, deg := range indegree {
			if deg == 0 && !processed[node] {
				ready = append(ready, node)
			}
		}
		if len(ready) == 0 {
			// Should not happen: New() rejects cycles before this runs.
			break
		}
		sort.Strings(ready)
		plan = append(plan, ExecutionLevel{Index: level, Tools: ready})

		for _, node := range ready {
			processed[node] = true
			remaining--
			for _, dep := range dependents[node] {
				indegree[dep]--
			}
		}
	}

	return plan
}

// GetStatistics computes aggregate statistics for plan, assuming every
// tool takes unitTime to run (used for the sequential/parallel time
// estimates; callers with real durations should compute their own).
func (plan ExecutionPlan) GetStatistics(unitTime float64) Statistics {
	total := 0
	maxParallel := 0
	for _, level := range plan {
		total += len(level.Tools)
		if len(level.Tools) > maxParallel {
			maxParallel = len(level.Tools)
		}
	}

	avg := 0.0
	if len(plan) > 0 {
		avg = float64(total) / float64(len(plan))
	}

	sequential := float64(total) * unitTime
	parallel := float64(len(plan)) * unitTime
	speedup := 1.0
	if parallel > 0 {
		speedup = sequential / parallel
	}

	return Statistics{
		TotalTools:             total,
		TotalLevels:            len(plan),
		MaxParallelism:         maxParallel,
		AvgParallelism:         avg,
		SequentialTimeEstimate: sequential,
		ParallelTimeEstimate:   parallel,
		SpeedupFactor:          speedup,
	}
}

// Visualize renders a human-readable rendition of the plan, matching
// demo_parallel_executor.py's visualize_dependencies() output shape.
func (g *Graph) Visualize(plan ExecutionPlan) string {
	out := ""
	for _, level := range plan {
		out += fmt.Sprintf("Level %d: %d tool(s) (parallel execution)\n", level.Index, len(level.Tools))
		for _, tool := range level.Tools {
			deps := g.deps[tool]
			if len(deps) == 0 {
				out += fmt.Sprintf("  - %-20s (no dependencies)\n", tool)
			} else {
				out += fmt.Sprintf("  - %-20s depends on: %s\n", tool, joinComma(deps))
			}
		}
	}
	return out
}

func joinComma(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}
