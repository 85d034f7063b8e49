package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Global output flags, set once from the root command.
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags wires the persistent root flags into this package.
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// Confirm asks a yes/no question on stdin. With --yes in effect it
// answers true without prompting.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Print(prompt + suffix)

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return defaultYes, nil
	}
	return answer == "y" || answer == "yes", nil
}

// statusf prints one message line, symbol-prefixed unless color is off.
func statusf(w io.Writer, symbol, prefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "%s: %s\n", prefix, msg)
		return
	}
	fmt.Fprintf(w, "%s %s\n", symbol, msg)
}

// PrintSuccess reports a completed operation unless quiet mode is enabled.
func PrintSuccess(format string, args ...interface{}) {
	if quiet {
		return
	}
	statusf(os.Stdout, "✓", "OK", format, args...)
}

// PrintInfo prints a plain informational line unless quiet mode is enabled.
func PrintInfo(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Printf(format+"\n", args...)
}

// PrintWarning reports a non-fatal problem on stderr. Warnings ignore
// quiet mode.
func PrintWarning(format string, args ...interface{}) {
	statusf(os.Stderr, "⚠", "WARNING", format, args...)
}

// PrintError reports a failure on stderr.
func PrintError(format string, args ...interface{}) {
	statusf(os.Stderr, "✗", "ERROR", format, args...)
}
