package grammar

import "github.com/pkg/errors"

// Sentinel errors identifying the InvalidGrammar family. Wrap
// these with errors.Wrap/Wrapf at the construction site so callers can
// recover the sentinel with errors.Cause/errors.Is.
var (
	// ErrNegativeWeight is returned when a production carries a negative weight.
	ErrNegativeWeight = errors.New("grammar: production weight must be non-negative")

	// ErrUndefinedNonterminal is returned under Strict when a production's
	// right-hand side references a nonterminal with no productions of its own.
	ErrUndefinedNonterminal = errors.New("grammar: nonterminal has no productions")
)
