// Package logger provides namespaced debug logging gated on the DEBUG
// environment variable, following the conventions of the npm "debug"
// package.
package logger

import (
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Logger emits debug lines for one namespace, enabled or not at
// construction time.
type Logger struct {
	namespace string
	enabled   bool
	lastLog   time.Time
	mu        sync.Mutex
	color     string
}

var (
	debugEnv    = os.Getenv("DEBUG")
	debugColors = os.Getenv("DEBUG_COLORS") != "0"
	isTTY       = isatty.IsTerminal(os.Stderr.Fd())

	colorPalette = []string{
		"\033[38;5;33m",  // Blue
		"\033[38;5;35m",  // Green
		"\033[38;5;166m", // Orange
		"\033[38;5;125m", // Purple
		"\033[38;5;37m",  // Cyan
		"\033[38;5;161m", // Magenta
		"\033[38;5;136m", // Yellow
		"\033[38;5;124m", // Red
		"\033[38;5;28m",  // Dark green
		"\033[38;5;63m",  // Light blue
	}
	colorReset = "\033[0m"
)

// New creates a Logger for namespace. Enabled state and color are fixed
// at construction time from the DEBUG/DEBUG_COLORS environment.
//
//	DEBUG=*                 enables every namespace
//	DEBUG=validator:*       enables validator:* namespaces
//	DEBUG=ns1,ns2,-ns2:skip specific namespaces, with exclusions
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   computeEnabled(namespace),
		lastLog:   time.Now(),
		color:     selectColor(namespace),
	}
}

func selectColor(namespace string) string {
	if !debugColors || !isTTY {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(namespace))
	return colorPalette[h.Sum32()%uint32(len(colorPalette))]
}

// Enabled reports whether this logger currently emits output.
func (l *Logger) Enabled() bool { return l.enabled }

// Printf writes a formatted line if the logger is enabled, prefixed with
// the namespace and followed by a "+Nms" delta since the last line in
// this namespace.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprintf(format, args...))
}

// Print writes a line if the logger is enabled.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprint(args...))
}

func (l *Logger) emit(message string) {
	l.mu.Lock()
	now := time.Now()
	diff := now.Sub(l.lastLog)
	l.lastLog = now
	l.mu.Unlock()

	if l.color != "" {
		fmt.Fprintf(os.Stderr, "%s%s%s %s +%s\n", l.color, l.namespace, colorReset, message, formatDuration(diff))
	} else {
		fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, message, formatDuration(diff))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.1fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}

func computeEnabled(namespace string) bool {
	if debugEnv == "" {
		return false
	}
	enabled := false
	for _, pattern := range strings.Split(debugEnv, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "-") {
			if matchPattern(namespace, strings.TrimPrefix(pattern, "-")) {
				return false
			}
			continue
		}
		if matchPattern(namespace, pattern) {
			enabled = true
		}
	}
	return enabled
}

func matchPattern(namespace, pattern string) bool {
	if pattern == "*" || pattern == namespace {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}
	switch {
	case strings.HasSuffix(pattern, "*") && strings.HasPrefix(pattern, "*"):
		return strings.Contains(namespace, strings.Trim(pattern, "*"))
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(namespace, strings.TrimSuffix(pattern, "*"))
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(namespace, strings.TrimPrefix(pattern, "*"))
	default:
		parts := strings.SplitN(pattern, "*", 2)
		return len(parts) == 2 && strings.HasPrefix(namespace, parts[0]) && strings.HasSuffix(namespace, parts[1])
	}
}
