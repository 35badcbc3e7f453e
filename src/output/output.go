package output

import (
	"os"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}

// RowStatus writes a row with label, detail, and a status icon.
func RowStatus(sec *Section, label, detail, status string, color bool) {
	icon := StatusIcon(status, color)
	if detail != "" {
		sec.Row("%-28s %s  %s", label, icon, detail)
	} else {
		sec.Row("%-28s %s", label, icon)
	}
}

func paint(color bool, code, text string) string {
	if !color {
		return text
	}
	return code + text + colorReset
}
