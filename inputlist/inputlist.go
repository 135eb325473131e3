// Package inputlist reads the plain-text files that list the transactions a
// run should collapse, one entry per line in execution order.
package inputlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse extracts entries from r. Blank lines are skipped, lines starting with
// "#" or "//" are comments, and only the first whitespace-delimited token of
// a line counts; anything after it is treated as an inline comment. An entry
// is either a 0x-prefixed transaction hash or a path to a local simulation
// document; classifying them is the resolver's job, not ours.
func Parse(r io.Reader) ([]string, error) {
	var entries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		entries = append(entries, strings.Fields(line)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input list: %w", err)
	}
	return entries, nil
}

func ParseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input list: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
