// Package progress implements the Progress TUI: a terminal display
// that tracks every tool's lifecycle state and renders it on a ticker,
// independent of when tools actually report updates.
package progress

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/toolmesh/toolmesh/pkg/styles"
	"github.com/toolmesh/toolmesh/pkg/tty"
)

// ToolState is the lifecycle of one tool within a run. PENDING is the
// initial state; RUNNING is reachable only from PENDING; SUCCESS,
// FAILED, and SKIPPED are terminal (absorbing) states. SKIPPED is
// reachable from any pre-RUNNING state (spec.md §8).
type ToolState int

const (
	Pending ToolState = iota
	Running
	Success
	Failed
	Skipped
)

func (s ToolState) String() string {
	switch s {
	case Running:
		return "running"
	case Success:
		return "success"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "pending"
	}
}

func (s ToolState) terminal() bool {
	return s == Success || s == Failed || s == Skipped
}

// snapshot is one tool's row in the display.
type snapshot struct {
	state         ToolState
	errors        int
	warnings      int
	filesProcessed int
	startedAt     time.Time
	finishedAt    time.Time
}

// TUI renders a per-tool progress table on a fixed-rate ticker. All
// state mutation goes through UpdateTool, which only ever touches the
// snapshot map under mu; the render goroutine also reads the map
// under mu.
type TUI struct {
	refreshRate time.Duration
	out         *os.File

	mu    sync.Mutex
	tools map[string]*snapshot
	order []string

	stop       chan struct{}
	done       chan struct{}
	linesDrawn int
	runStart   time.Time
}

// New constructs a TUI with the given refresh rate (spec.md §8 default
// is 0.1s). When out is not a terminal or ACCESSIBLE is set, Start
// falls back to plain line-per-transition output instead of redrawing
// in place.
func New(refreshRate time.Duration, out *os.File) *TUI {
	if refreshRate <= 0 {
		refreshRate = 100 * time.Millisecond
	}
	return &TUI{refreshRate: refreshRate, out: out, tools: make(map[string]*snapshot)}
}

// Start initializes every tool in names as Pending and, if attached to
// a terminal, begins the ticker-driven render loop.
func (t *TUI) Start(names []string) {
	t.mu.Lock()
	t.order = append([]string{}, names...)
	for _, name := range names {
		t.tools[name] = &snapshot{state: Pending}
	}
	t.runStart = time.Now()
	t.mu.Unlock()

	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	if t.animated() {
		go t.renderLoop()
	}
}

func (t *TUI) animated() bool {
	return tty.IsTerminal(t.out) && !tty.Accessible()
}

// UpdateTool records a transition for name, storing errors, warnings
// and filesProcessed with it. Updates to a tool already in a terminal
// state are ignored.
func (t *TUI) UpdateTool(name string, state ToolState, errors, warnings, filesProcessed int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap, ok := t.tools[name]
	if !ok {
		snap = &snapshot{}
		t.tools[name] = snap
		t.order = append(t.order, name)
	}

	if snap.state.terminal() {
		return
	}

	if state == Running && snap.state == Pending {
		snap.startedAt = time.Now()
	}
	if state.terminal() {
		snap.finishedAt = time.Now()
	}

	snap.state = state
	snap.errors = errors
	snap.warnings = warnings
	snap.filesProcessed = filesProcessed

	if !t.animated() {
		t.printLine(name, snap)
	}
}

// Stop halts the render loop (if running) and renders the table one
// final time.
func (t *TUI) Stop() {
	if t.stop != nil {
		close(t.stop)
		<-t.done
	}
	t.renderOnce(true)
}

func (t *TUI) renderLoop() {
	defer close(t.done)
	ticker := time.NewTicker(t.refreshRate)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.renderOnce(false)
		}
	}
}

// snapshotCopy takes the lock just long enough to copy current state,
// matching the mutex-guarded-snapshot-then-render-without-lock design
// spec.md §8 requires.
func (t *TUI) snapshotCopy() (order []string, rows map[string]snapshot, runStart time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	order = append([]string{}, t.order...)
	rows = make(map[string]snapshot, len(t.tools))
	for name, snap := range t.tools {
		rows[name] = *snap
	}
	return order, rows, t.runStart
}

func (t *TUI) renderOnce(final bool) {
	order, rows, runStart := t.snapshotCopy()
	sort.Strings(order)

	if t.linesDrawn > 0 {
		fmt.Fprintf(t.out, "\033[%dA\033[J", t.linesDrawn)
	}

	var b strings.Builder
	b.WriteString(formatHeader(order, rows, runStart))
	b.WriteString("\n")
	for _, name := range order {
		snap := rows[name]
		b.WriteString(formatRow(name, snap))
		b.WriteString("\n")
	}
	fmt.Fprint(t.out, b.String())
	t.linesDrawn = len(order) + 1

	if final {
		t.linesDrawn = 0
	}
}

// formatHeader renders the overall completed/total (pct%) count and
// total elapsed time since Start, per spec.md §4.5.
func formatHeader(order []string, rows map[string]snapshot, runStart time.Time) string {
	total := len(order)
	completed := 0
	for _, name := range order {
		if rows[name].state.terminal() {
			completed++
		}
	}
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(completed) / float64(total)
	}
	elapsed := 0.0
	if !runStart.IsZero() {
		elapsed = time.Since(runStart).Seconds()
	}
	return fmt.Sprintf("%d/%d (%.0f%%) %.1fs elapsed", completed, total, pct, elapsed)
}

func (t *TUI) printLine(name string, snap *snapshot) {
	fmt.Fprintln(t.out, formatRow(name, *snap))
}

func formatRow(name string, snap snapshot) string {
	color := styles.ToolStateColor(snap.state.String())
	badge := styles.ToolState.Foreground(color).Render(strings.ToUpper(snap.state.String()))

	elapsed := ""
	switch {
	case snap.state == Running && !snap.startedAt.IsZero():
		elapsed = fmt.Sprintf(" %.1fs", time.Since(snap.startedAt).Seconds())
	case snap.state.terminal() && !snap.startedAt.IsZero() && !snap.finishedAt.IsZero():
		elapsed = fmt.Sprintf(" %.1fs", snap.finishedAt.Sub(snap.startedAt).Seconds())
	}

	files := ""
	if snap.filesProcessed > 0 {
		files = fmt.Sprintf(" %d files", snap.filesProcessed)
	}

	counts := ""
	if snap.errors > 0 || snap.warnings > 0 {
		counts = fmt.Sprintf(" (%d errors, %d warnings)", snap.errors, snap.warnings)
	}

	return fmt.Sprintf("%-24s %s%s%s%s", styles.ToolName.Render(name), badge, elapsed, files, counts)
}
