package screen

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// ResultHeader is the first row of every results file.
var ResultHeader = []string{"Email", "Result"}

const (
	outputFilePerms = 0o644
	outputDirPerms  = 0o755
)

// WriteResults writes the header row followed by one key,label row per
// result. Rows end in \r\n.
func WriteResults(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(ResultHeader); err != nil {
		return err
	}

	for _, r := range results {
		if err := cw.Write([]string{string(r.Key), r.Classification.String()}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteResultsFile replaces path with the rendered results in one rename.
// Missing parent directories are created.
func WriteResultsFile(path string, results []Result) error {
	if path == "" {
		return fmt.Errorf("%w: output %w", ErrWriteOutput, ErrPathRequired)
	}

	var buf bytes.Buffer

	err := WriteResults(&buf, results)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	err = os.MkdirAll(filepath.Dir(path), outputDirPerms)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	err = atomic.WriteFile(path, &buf)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	// atomic.WriteFile doesn't set permissions for new files
	err = os.Chmod(path, outputFilePerms)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
