package bloom

import (
	"errors"
	"strconv"
)

// Classification is the outcome of a membership query.
type Classification uint8

const (
	// DefinitelyAbsent means at least one addressed bit was unset.
	DefinitelyAbsent Classification = iota
	// PossiblyPresent means every addressed bit was set.
	PossiblyPresent
)

// Labels used when rendering a Classification for humans and result files.
const (
	LabelDefinitelyAbsent = "Not in the DB"
	LabelPossiblyPresent  = "Probably in the DB"
)

// String returns the result-file label for c.
func (c Classification) String() string {
	switch c {
	case DefinitelyAbsent:
		return LabelDefinitelyAbsent
	case PossiblyPresent:
		return LabelPossiblyPresent
	default:
		return "Classification(" + strconv.Itoa(int(c)) + ")"
	}
}

// Sizing selects how the bit count is derived from the sizing formula.
type Sizing uint8

const (
	// SizingCeil rounds the bit count up.
	SizingCeil Sizing = iota
	// SizingTruncate truncates the bit count toward zero.
	SizingTruncate
)

// String returns the config name of s.
func (s Sizing) String() string {
	switch s {
	case SizingCeil:
		return "ceil"
	case SizingTruncate:
		return "truncate"
	default:
		return "Sizing(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseSizing maps a config name to a Sizing mode.
func ParseSizing(name string) (Sizing, error) {
	switch name {
	case "ceil", "":
		return SizingCeil, nil
	case "truncate":
		return SizingTruncate, nil
	default:
		return 0, ErrUnknownSizing
	}
}

var (
	ErrInvalidParameters = errors.New("bloom: invalid parameters")
	ErrSealed            = errors.New("bloom: filter is sealed")
	ErrUnknownHasher     = errors.New("bloom: unknown hasher")
	ErrUnknownSizing     = errors.New("bloom: unknown sizing mode")
)
