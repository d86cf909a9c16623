// Package console provides the terminal formatting primitives shared
// by the CLI commands: styled message prefixes, Rust-like error
// rendering with source context, tables, and lists. Every formatter
// degrades to plain text when stdout is not a terminal.
package console

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/toolmesh/toolmesh/pkg/logger"
	"github.com/toolmesh/toolmesh/pkg/styles"
	"github.com/toolmesh/toolmesh/pkg/tty"
)

var consoleLog = logger.New("console")

// ErrorPosition locates a finding within a source file.
type ErrorPosition struct {
	File   string
	Line   int
	Column int
}

// ToolError is one structured finding reported by a validator, in the
// position-plus-context shape needed for Rust-like rendering.
type ToolError struct {
	Position ErrorPosition
	Type     string // "error", "warning", "info"
	Message  string
	Context  []string // source lines surrounding Position.Line
}

var clearScreenSequence = "\033[2J\033[H"

func isTTY() bool {
	return tty.Stdout()
}

func applyStyle(style lipgloss.Style, text string) string {
	if isTTY() {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to one relative to the
// current working directory, for terser error locations.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}
	return rel
}

// FormatError renders a ToolError with an IDE-parseable
// file:line:column prefix and, when Context is populated, a source
// snippet with the offending span underlined.
func FormatError(err ToolError) string {
	consoleLog.Printf("formatting error: type=%s file=%s line=%d", err.Type, err.Position.File, err.Position.Line)
	var output strings.Builder

	var typeStyle lipgloss.Style
	var prefix string
	switch err.Type {
	case "warning":
		typeStyle = styles.Warning
		prefix = "warning"
	case "info":
		typeStyle = styles.Info
		prefix = "info"
	default:
		typeStyle = styles.Error
		prefix = "error"
	}

	if err.Position.File != "" {
		location := fmt.Sprintf("%s:%d:%d:", ToRelativePath(err.Position.File), err.Position.Line, err.Position.Column)
		output.WriteString(applyStyle(styles.FilePath, location))
		output.WriteString(" ")
	}

	output.WriteString(applyStyle(typeStyle, prefix+":"))
	output.WriteString(" ")
	output.WriteString(err.Message)
	output.WriteString("\n")

	if len(err.Context) > 0 && err.Position.Line > 0 {
		output.WriteString(renderContext(err))
	}

	return output.String()
}

func findWordEnd(line string, start int) int {
	if start >= len(line) {
		return len(line)
	}
	end := start
	for end < len(line) {
		c := line[end]
		if c == ' ' || c == '\t' || c == ':' || c == '\n' || c == '\r' {
			break
		}
		end++
	}
	return end
}

func renderContext(err ToolError) string {
	var output strings.Builder

	maxLineNum := err.Position.Line + len(err.Context)/2
	lineNumWidth := len(fmt.Sprintf("%d", maxLineNum))

	for i, line := range err.Context {
		lineNum := err.Position.Line - len(err.Context)/2 + i
		if lineNum < 1 {
			continue
		}

		lineNumStr := fmt.Sprintf("%*d", lineNumWidth, lineNum)
		output.WriteString(applyStyle(styles.LineNumber, lineNumStr))
		output.WriteString(" | ")

		if lineNum == err.Position.Line {
			if err.Position.Column > 0 && err.Position.Column <= len(line) {
				before := line[:err.Position.Column-1]
				wordEnd := findWordEnd(line, err.Position.Column-1)
				highlighted := line[err.Position.Column-1 : wordEnd]
				after := ""
				if wordEnd < len(line) {
					after = line[wordEnd:]
				}
				output.WriteString(applyStyle(styles.ContextLine, before))
				output.WriteString(applyStyle(styles.Highlight, highlighted))
				output.WriteString(applyStyle(styles.ContextLine, after))
			} else {
				output.WriteString(applyStyle(styles.Highlight, line))
			}
		} else {
			output.WriteString(applyStyle(styles.ContextLine, line))
		}
		output.WriteString("\n")

		if lineNum == err.Position.Line && err.Position.Column > 0 && err.Position.Column <= len(line) {
			wordEnd := findWordEnd(line, err.Position.Column-1)
			wordLength := wordEnd - (err.Position.Column - 1)
			padding := strings.Repeat(" ", lineNumWidth+3+err.Position.Column-1)
			pointer := applyStyle(styles.Error, strings.Repeat("^", wordLength))
			output.WriteString(padding)
			output.WriteString(pointer)
			output.WriteString("\n")
		}
	}

	return output.String()
}

func FormatSuccessMessage(message string) string { return applyStyle(styles.Success, "✓ ") + message }
func FormatInfoMessage(message string) string    { return applyStyle(styles.Info, "ℹ ") + message }
func FormatWarningMessage(message string) string { return applyStyle(styles.Warning, "⚠ ") + message }
func FormatErrorMessage(message string) string   { return applyStyle(styles.Error, "✗ ") + message }
func FormatLocationMessage(message string) string { return applyStyle(styles.Location, "📁 ") + message }
func FormatCommandMessage(command string) string  { return applyStyle(styles.Command, "⚡ ") + command }
func FormatProgressMessage(message string) string { return applyStyle(styles.Progress, "🔨 ") + message }
func FormatCountMessage(message string) string    { return applyStyle(styles.Count, "📊 ") + message }
func FormatVerboseMessage(message string) string  { return applyStyle(styles.Verbose, "🔍 ") + message }
func FormatListHeader(header string) string       { return applyStyle(styles.ListHeader, header) }
func FormatListItem(item string) string           { return applyStyle(styles.ListItem, "  • "+item) }

// FormatErrorWithSuggestions appends actionable fix suggestions below
// a formatted error message.
func FormatErrorWithSuggestions(message string, suggestions []string) string {
	var output strings.Builder
	output.WriteString(FormatErrorMessage(message))
	if len(suggestions) > 0 {
		output.WriteString("\n\nSuggestions:\n")
		for _, s := range suggestions {
			output.WriteString("  • " + s + "\n")
		}
	}
	return output.String()
}

// TableConfig configures RenderTable.
type TableConfig struct {
	Headers   []string
	Rows      [][]string
	Title     string
	ShowTotal bool
	TotalRow  []string
}

// RenderTable renders a bordered table via lipgloss/table.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		consoleLog.Print("no headers provided for table rendering")
		return ""
	}

	consoleLog.Printf("rendering table: title=%s columns=%d rows=%d", config.Title, len(config.Headers), len(config.Rows))
	var output strings.Builder

	if config.Title != "" {
		output.WriteString(applyStyle(styles.TableTitle, config.Title))
		output.WriteString("\n")
	}

	allRows := config.Rows
	if config.ShowTotal && len(config.TotalRow) > 0 {
		allRows = append(allRows, config.TotalRow)
	}
	dataRowCount := len(config.Rows)

	styleFunc := func(row, col int) lipgloss.Style {
		if !isTTY() {
			return lipgloss.NewStyle()
		}
		if row == table.HeaderRow {
			return styles.TableHeader
		}
		if config.ShowTotal && len(config.TotalRow) > 0 && row == dataRowCount {
			return styles.TableTotal
		}
		return styles.TableCell
	}

	t := table.New().
		Headers(config.Headers...).
		Rows(allRows...).
		Border(styles.NormalBorder).
		BorderStyle(styles.TableBorder).
		StyleFunc(styleFunc)

	output.WriteString(t.String())
	output.WriteString("\n")
	return output.String()
}

// RenderTableAsJSON renders a TableConfig as an array of objects keyed
// by lowercased, underscored header names.
func RenderTableAsJSON(config TableConfig) (string, error) {
	if len(config.Headers) == 0 {
		return "[]", nil
	}

	var result []map[string]string
	for _, row := range config.Rows {
		obj := make(map[string]string)
		for i, cell := range row {
			if i < len(config.Headers) {
				key := strings.ToLower(strings.ReplaceAll(config.Headers[i], " ", "_"))
				obj[key] = cell
			}
		}
		result = append(result, obj)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal table to json: %w", err)
	}
	return string(jsonBytes), nil
}

// ClearScreen clears the terminal if stdout is a TTY, otherwise is a
// no-op (so piped/captured output never carries escape codes).
func ClearScreen() {
	if isTTY() {
		fmt.Print(clearScreenSequence)
	}
}

// RenderList renders items with the given enumerator style ("bullet",
// "dash", "asterisk", "arabic", "roman", "alphabet"; default bullet).
func RenderList(items []string, enumerator string) string {
	if len(items) == 0 {
		return ""
	}
	consoleLog.Printf("rendering list: enumerator=%s items=%d", enumerator, len(items))

	listItems := make([]any, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems...)
	switch enumerator {
	case "dash":
		l = l.Enumerator(list.Dash)
	case "asterisk":
		l = l.Enumerator(list.Asterisk)
	case "arabic":
		l = l.Enumerator(list.Arabic)
	case "roman":
		l = l.Enumerator(list.Roman)
	case "alphabet":
		l = l.Enumerator(list.Alphabet)
	default:
		l = l.Enumerator(list.Bullet)
	}

	if isTTY() {
		l = l.EnumeratorStyle(styles.ListEnumerator).ItemStyle(styles.ListItem)
	}
	return l.String()
}

// RenderNestedList renders a hierarchical list grouped by section
// title.
func RenderNestedList(sections map[string][]string) string {
	if len(sections) == 0 {
		return ""
	}
	consoleLog.Printf("rendering nested list: sections=%d", len(sections))

	var result strings.Builder
	for title, items := range sections {
		if isTTY() {
			result.WriteString(styles.ListHeader.Render(title))
		} else {
			result.WriteString(title)
		}
		result.WriteString("\n")

		if len(items) > 0 {
			listItems := make([]any, len(items))
			for i, item := range items {
				listItems[i] = item
			}
			nested := list.New(listItems...).Enumerator(list.Bullet)
			if isTTY() {
				nested = nested.EnumeratorStyle(styles.ListEnumerator).ItemStyle(styles.ListItem)
			}
			result.WriteString(nested.String())
			result.WriteString("\n")
		}
	}
	return result.String()
}
