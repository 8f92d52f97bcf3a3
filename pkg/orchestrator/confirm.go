package orchestrator

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks for an explicit yes/no answer, defaulting to yes on a bare
// return. EOF counts as a decline.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [Y/n]: ", prompt)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "", "y", "yes":
		return true
	}
	return false
}
