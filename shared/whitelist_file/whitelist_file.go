// Package whitelistfile loads static whitelist entries from a text file.
package whitelistfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load returns one entry per non-empty line of path. Lines starting with '#'
// are comments. An empty path yields no entries.
func Load(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open whitelist file: %w", err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read whitelist file: %w", err)
	}

	return entries, nil
}
