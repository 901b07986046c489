package screen

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"unicode"
)

// maxKeyBytes bounds a single input line.
const maxKeyBytes = 1 << 20

// cancelCheckEvery is how many records are processed between ctx checks.
const cancelCheckEvery = 4096

// ReadKeysOptions configures ReadKeys.
type ReadKeysOptions struct {
	// SkipHeader drops the first line of the input.
	SkipHeader bool
}

// ReadKeys reads one key per line from r.
//
// Lines end in \n, \r\n or a bare \r. Trailing whitespace, Unicode spaces
// included, is removed from every line and blank lines are skipped. Keys
// keep their input order.
func ReadKeys(ctx context.Context, r io.Reader, opts ReadKeysOptions) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxKeyBytes)
	scanner.Split(scanLines)

	var keys [][]byte

	line := 0
	for scanner.Scan() {
		line++

		if line%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if line == 1 && opts.SkipHeader {
			continue
		}

		key := bytes.TrimRightFunc(scanner.Bytes(), unicode.IsSpace)
		if len(key) == 0 {
			continue
		}

		keys = append(keys, bytes.Clone(key))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}

	return keys, nil
}

// scanLines is bufio.ScanLines that also ends a line at a lone \r.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	i := bytes.IndexAny(data, "\r\n")
	if i < 0 {
		if atEOF {
			return len(data), data, nil
		}

		return 0, nil, nil
	}

	if data[i] == '\n' {
		return i + 1, data[:i], nil
	}

	// \r at the end of the buffer may be the first half of \r\n.
	if i+1 == len(data) && !atEOF {
		return 0, nil, nil
	}

	if i+1 < len(data) && data[i+1] == '\n' {
		return i + 2, data[:i], nil
	}

	return i + 1, data[:i], nil
}
