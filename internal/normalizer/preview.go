package normalizer

import (
	"bufio"
	"fmt"

	"github.com/spf13/afero"
)

// Preview returns the first line of path followed by up to n more lines,
// without line terminators.
func Preview(fs afero.Fs, path string, n int) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if n < 0 {
		n = 0
	}

	lines := make([]string, 0, n+1)
	scanner := bufio.NewScanner(f)
	for len(lines) <= n && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return lines, nil
}
