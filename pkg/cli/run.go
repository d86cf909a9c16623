package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/toolmesh/toolmesh/pkg/config"
	"github.com/toolmesh/toolmesh/pkg/console"
	"github.com/toolmesh/toolmesh/pkg/executor"
	"github.com/toolmesh/toolmesh/pkg/logger"
	"github.com/toolmesh/toolmesh/pkg/progress"
	"github.com/toolmesh/toolmesh/pkg/validator"
)

var runLog = logger.New("cli:run")

// RunOptions configures a single validate/fix invocation.
type RunOptions struct {
	Paths           []string
	AutoFix         bool
	Verbose         bool
	JSON            bool
	GitLabCIRefresh bool
}

// RunResult is what Run returns for callers (the watch loop, JSON
// encoding) that need the raw data rather than the printed summary.
type RunResult struct {
	Results []validator.ValidationResult
	Success bool
}

// Run discovers files, resolves the applicable validators per file,
// groups file/validator pairs by tool, and drives them through the
// Executor with a Progress TUI attached, following spec.md §3-§9
// end-to-end.
func Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	cfg, err := config.Load("")
	if err != nil {
		return RunResult{}, err
	}

	files, err := DiscoverFiles(opts.Paths)
	if err != nil {
		return RunResult{}, err
	}

	reg := validator.NewRegistry(validator.Options{
		CommandOverrides: cfg.CommandOverrides(),
		SidecarSocket:    cfg.SidecarSocket,
		GitLabCIRefresh:  opts.GitLabCIRefresh,
	})

	// Bucket matching files per tool name, so each tool's ToolFunc
	// validates every file it claims in one executor unit of work.
	toolFiles := make(map[string][]string)
	for _, f := range files {
		for _, v := range reg.ForFile(f) {
			name := v.Name()
			if tc, ok := cfg.Tools[name]; ok && !tc.IsEnabled() {
				continue
			}
			toolFiles[name] = append(toolFiles[name], f)
		}
	}

	if len(toolFiles) == 0 {
		return RunResult{Success: true}, nil
	}

	names := make([]string, 0, len(toolFiles))
	for name := range toolFiles {
		names = append(names, name)
	}

	tui := progress.New(refreshRate(cfg), tuiOutput())
	tui.Start(names)

	var collected detailCollector

	tools := make(map[string]executor.ToolFunc, len(toolFiles))
	for name, fileList := range toolFiles {
		name, fileList := name, fileList
		v, _ := reg.Get(name)
		autoFix := opts.AutoFix || cfg.AutoFix(name)
		tools[name] = func(ctx context.Context) executor.ToolResult {
			return runTool(ctx, v, fileList, autoFix, &collected)
		}
	}

	maxWorkers := cfg.MaxWorkers
	exec := executor.New(maxWorkers)
	results := exec.ExecuteTools(ctx, tools, func(toolName, status string) {
		// Only the non-terminal "running" transition is reported here;
		// the terminal success/failed state is set once below, with the
		// real error/warning counts, after ExecuteTools returns.
		if status == "running" {
			tui.UpdateTool(toolName, progress.Running, 0, 0, 0)
		}
	})

	success := true
	for _, r := range results {
		if !r.Success {
			success = false
			tui.UpdateTool(r.ToolName, progress.Failed, r.Errors, r.Warnings, r.FilesProcessed)
		} else {
			tui.UpdateTool(r.ToolName, progress.Success, r.Errors, r.Warnings, r.FilesProcessed)
		}
	}
	tui.Stop()

	return RunResult{Results: collected.all(), Success: success}, nil
}

// detailCollector gathers the per-file ValidationResults every tool's
// ToolFunc produces. The Executor only returns one aggregate ToolResult
// per tool, but the console summary and --json output want the
// individual file-level detail, so each ToolFunc appends here under a
// mutex rather than through the Executor's return value (ToolFuncs for
// distinct tools within a level run concurrently).
type detailCollector struct {
	mu      sync.Mutex
	results []validator.ValidationResult
}

func (c *detailCollector) add(results []validator.ValidationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, results...)
}

func (c *detailCollector) all() []validator.ValidationResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]validator.ValidationResult{}, c.results...)
}

func runTool(ctx context.Context, v validator.Validator, files []string, autoFix bool, collected *detailCollector) executor.ToolResult {
	start := time.Now()
	var perFile []validator.ValidationResult
	errCount, warnCount := 0, 0
	success := true

	for _, f := range files {
		if !v.IsAvailable(ctx) {
			runLog.Printf("%s: not available, failing %s", v.Name(), f)
			result := validator.ValidationResult{
				Tool:     v.Name(),
				Filepath: f,
				Success:  false,
				Errors:   []string{fmt.Sprintf("%s: tool not available", v.Name())},
			}
			perFile = append(perFile, result)
			errCount++
			success = false
			continue
		}
		result := v.Validate(ctx, f, autoFix)
		perFile = append(perFile, result)
		errCount += len(result.Errors)
		warnCount += len(result.Warnings)
		if !result.Success {
			success = false
		}
	}

	collected.add(perFile)

	return executor.ToolResult{
		ToolName:       v.Name(),
		Success:        success,
		Duration:       time.Since(start),
		Errors:         errCount,
		Warnings:       warnCount,
		FilesProcessed: len(perFile),
	}
}

func refreshRate(cfg config.Config) time.Duration {
	if cfg.RefreshRate <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(cfg.RefreshRate * float64(time.Second))
}

func tuiOutput() *os.File {
	return os.Stderr
}

// PrintResult renders a RunResult with console.FormatRunSummary (or as
// JSON, when opts.JSON is set) to stdout.
func PrintResult(result RunResult, opts RunOptions) {
	if opts.JSON {
		printResultJSON(result)
		return
	}
	summary := console.RunSummary{Results: result.Results}
	os.Stdout.WriteString(console.FormatRunSummary(summary, opts.Verbose))
}
