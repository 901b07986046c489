package screen

import (
	"context"
	"fmt"

	"github.com/calvinalkan/keyscreen/pkg/bloom"
)

// Result pairs a candidate key with its classification.
type Result struct {
	Key            []byte
	Classification bloom.Classification
}

// Params sizes the filter built from a reference set.
type Params struct {
	FalsePositiveRate float64
	Options           []bloom.Option
}

// Build sizes a filter for refs, inserts every key and seals it.
func Build(ctx context.Context, refs [][]byte, params Params) (*bloom.Filter, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferenceKeys
	}

	filter, err := bloom.New(uint64(len(refs)), params.FalsePositiveRate, params.Options...)
	if err != nil {
		return nil, fmt.Errorf("sizing filter for %d keys: %w", len(refs), err)
	}

	for i, key := range refs {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		// Cannot fail: the filter is not sealed yet.
		_ = filter.Insert(key)
	}

	filter.Seal()

	return filter, nil
}

// Classify queries every candidate, in order.
func Classify(ctx context.Context, filter *bloom.Filter, candidates [][]byte) ([]Result, error) {
	results := make([]Result, 0, len(candidates))

	for i, key := range candidates {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		results = append(results, Result{Key: key, Classification: filter.Query(key)})
	}

	return results, nil
}

// Summary describes a completed run.
type Summary struct {
	OutputPath       string
	References       int
	Candidates       int
	PossiblyPresent  int
	DefinitelyAbsent int

	BitCount                   uint64
	HashCount                  uint32
	Sizing                     bloom.Sizing
	FalsePositiveRate          float64
	EstimatedFalsePositiveRate float64
}

// Summarize counts the classifications in results.
func Summarize(filter *bloom.Filter, references int, results []Result) Summary {
	s := Summary{
		References:                 references,
		Candidates:                 len(results),
		BitCount:                   filter.BitCount(),
		HashCount:                  filter.HashCount(),
		Sizing:                     filter.Sizing(),
		FalsePositiveRate:          filter.FalsePositiveRate(),
		EstimatedFalsePositiveRate: filter.EstimatedFalsePositiveRate(),
	}

	for _, r := range results {
		if r.Classification == bloom.PossiblyPresent {
			s.PossiblyPresent++
		} else {
			s.DefinitelyAbsent++
		}
	}

	return s
}
