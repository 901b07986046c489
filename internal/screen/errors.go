package screen

import "errors"

// Error variables for screening runs.
var (
	ErrReadInput       = errors.New("cannot read input")
	ErrNoReferenceKeys = errors.New("reference file has no keys")
	ErrWriteOutput     = errors.New("cannot write results")
	ErrPathRequired    = errors.New("path is required")
)
