package screen

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/calvinalkan/keyscreen/pkg/bloom"
)

// Job describes one screening run: build from ReferencePath, classify
// CandidatePath, write to OutputPath.
type Job struct {
	ReferencePath string
	CandidatePath string
	OutputPath    string
	SkipHeader    bool
	Params        Params

	// Logf receives progress lines. Nil discards them.
	Logf func(format string, args ...any)
}

func (j Job) logf(format string, args ...any) {
	if j.Logf != nil {
		j.Logf(format, args...)
	}
}

// Run executes job end to end. Nothing is written unless every step before
// the write succeeds.
func Run(ctx context.Context, job Job) (Summary, error) {
	filter, refCount, err := BuildFromFile(ctx, job.ReferencePath, job.SkipHeader, job.Params)
	if err != nil {
		return Summary{}, err
	}

	job.logf("filter: %d keys, m=%d bits, k=%d, hash=%s, sizing=%s",
		refCount, filter.BitCount(), filter.HashCount(), filter.Hasher().Name(), filter.Sizing())

	candidates, err := readKeysFile(ctx, job.CandidatePath, job.SkipHeader)
	if err != nil {
		return Summary{}, err
	}

	job.logf("candidates: %d keys from %s", len(candidates), job.CandidatePath)

	results, err := Classify(ctx, filter, candidates)
	if err != nil {
		return Summary{}, err
	}

	err = WriteResultsFile(job.OutputPath, results)
	if err != nil {
		return Summary{}, err
	}

	summary := Summarize(filter, refCount, results)
	summary.OutputPath = job.OutputPath

	job.logf("wrote %d rows to %s", len(results), job.OutputPath)

	return summary, nil
}

// BuildFromFile reads reference keys from path and builds a sealed filter.
// It also returns the number of keys inserted.
func BuildFromFile(ctx context.Context, path string, skipHeader bool, params Params) (*bloom.Filter, int, error) {
	refs, err := readKeysFile(ctx, path, skipHeader)
	if err != nil {
		return nil, 0, err
	}

	filter, err := Build(ctx, refs, params)
	if err != nil {
		if errors.Is(err, ErrNoReferenceKeys) {
			return nil, 0, fmt.Errorf("%w: %s", ErrNoReferenceKeys, path)
		}

		return nil, 0, err
	}

	return filter, len(refs), nil
}

func readKeysFile(ctx context.Context, path string, skipHeader bool) ([][]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, ErrPathRequired)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defer file.Close()

	keys, err := ReadKeys(ctx, file, ReadKeysOptions{SkipHeader: skipHeader})
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadInput, path, err)
	}

	return keys, nil
}
