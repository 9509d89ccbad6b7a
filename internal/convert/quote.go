package convert

import (
	"strings"

	"github.com/samber/lo"
)

// Quote escapes a single argument for POSIX shells the same way
// Python's shlex.quote does: safe words pass through, everything else
// is single-quoted with embedded quotes rewritten as '"'"'.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'`$\\!*?[]{}()<>|&;~#%^=") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// QuoteCommand renders an argv as a copy-pasteable shell command line.
// The driver prints every conversion command before running it so a
// failed batch can be resumed by hand.
func QuoteCommand(argv []string) string {
	return strings.Join(lo.Map(argv, func(arg string, _ int) string {
		return Quote(arg)
	}), " ")
}
