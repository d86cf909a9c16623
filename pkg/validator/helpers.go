package validator

import "strings"

// removeArg returns argv with the first occurrence of arg removed.
func removeArg(argv []string, arg string) []string {
	for i, a := range argv {
		if a == arg {
			return append(append([]string{}, argv[:i]...), argv[i+1:]...)
		}
	}
	return argv
}

// insertArg returns argv with arg inserted at index i.
func insertArg(argv []string, i int, arg string) []string {
	out := make([]string, 0, len(argv)+1)
	out = append(out, argv[:i]...)
	out = append(out, arg)
	out = append(out, argv[i:]...)
	return out
}

// splitLines splits s on newlines after dropping every trailing
// newline, so the result never ends with empty lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}

func timeoutResult(tool, filepath string, ms int64) ValidationResult {
	return ValidationResult{
		Tool: tool, Filepath: filepath, Success: false,
		Errors:     []string{"tool invocation timed out after 30s"},
		DurationMs: ms,
	}
}

func errResult(tool, filepath string, err error, ms int64) ValidationResult {
	return ValidationResult{
		Tool: tool, Filepath: filepath, Success: false,
		Errors:     []string{err.Error()},
		DurationMs: ms,
	}
}
