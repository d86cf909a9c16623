// Package styles centralizes the lipgloss color palette and pre-built
// styles used across pkg/console and pkg/progress, so every surface of
// the engine renders with consistent adaptive colors.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	ColorError   = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF6B6B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD166"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007A3D", Dark: "#6BCB77"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#005FCC", Dark: "#4CC9F0"}
	ColorPurple  = lipgloss.AdaptiveColor{Light: "#7B2FBE", Dark: "#C77DFF"}
	ColorYellow  = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD166"}

	ColorComment    = lipgloss.AdaptiveColor{Light: "#6E6E6E", Dark: "#9E9E9E"}
	ColorForeground = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#EAEAEA"}
	ColorBackground = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E1E"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#4A4A4A"}

	// StatePending/StateRunning/... color the Progress TUI's ToolState
	// badges (spec.md §8).
	StatePending = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6E6E6E"}
	StateRunning = ColorInfo
	StateSuccess = ColorSuccess
	StateFailed  = ColorError
	StateSkipped = lipgloss.AdaptiveColor{Light: "#A0A0A0", Dark: "#808080"}
)

var (
	RoundedBorder  = lipgloss.RoundedBorder()
	NormalBorder   = lipgloss.NormalBorder()
	ThickBorder    = lipgloss.ThickBorder()
	ASCIIBorder    = lipgloss.Border{Top: "-", Bottom: "-", Left: "|", Right: "|", TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+"}
	MarkdownBorder = lipgloss.Border{Top: "-", Bottom: "-", Left: "|", Right: "|", TopLeft: "|", TopRight: "|", BottomLeft: "|", BottomRight: "|"}
)

var (
	Error   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	Info    = lipgloss.NewStyle().Foreground(ColorInfo)

	FilePath    = lipgloss.NewStyle().Foreground(ColorPurple)
	LineNumber  = lipgloss.NewStyle().Foreground(ColorComment)
	ContextLine = lipgloss.NewStyle().Foreground(ColorComment)
	Highlight   = lipgloss.NewStyle().Foreground(ColorError).Underline(true)
	Location    = lipgloss.NewStyle().Foreground(ColorComment).Italic(true)
	Command     = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
	Progress    = lipgloss.NewStyle().Foreground(ColorInfo)
	Prompt      = lipgloss.NewStyle().Foreground(ColorPurple).Bold(true)
	Count       = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	Verbose     = lipgloss.NewStyle().Foreground(ColorComment)

	ListHeader     = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	ListItem       = lipgloss.NewStyle().Foreground(ColorForeground)
	ListEnumerator = lipgloss.NewStyle().Foreground(ColorComment)

	TableHeader = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TableCell   = lipgloss.NewStyle().Foreground(ColorForeground)
	TableTotal  = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TableTitle  = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
	TableBorder = lipgloss.NewStyle().Foreground(ColorBorder)

	// ToolName/ToolState badge the Progress TUI's per-tool rows: the
	// name on the left, the current ToolState on the right, colored by
	// lifecycle (spec.md §8).
	ToolName  = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	ToolState = lipgloss.NewStyle().Foreground(ColorComment)

	ErrorBox = lipgloss.NewStyle().Border(RoundedBorder).BorderForeground(ColorError).Padding(0, 1)
	Header   = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true).Underline(true)
)

// ToolStateColor returns the adaptive color for a ToolState name
// ("pending", "running", "success", "failed", "skipped").
func ToolStateColor(state string) lipgloss.AdaptiveColor {
	switch state {
	case "running":
		return StateRunning
	case "success":
		return StateSuccess
	case "failed":
		return StateFailed
	case "skipped":
		return StateSkipped
	default:
		return StatePending
	}
}
