package earley

import (
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/symbol"
)

// Edge is a labeled back-pointer between two Items in the same or different
// StateSets. The label is a chart position: for a Predecessor edge it is
// the state from which the predecessor was advanced; for a Reduction edge
// it is the state at which the completed child began.
type Edge struct {
	Label  int
	Target *Item
}

// Item is an Earley item: a production, a dot position marking how much of
// its right-hand side has been matched, and the chart position it
// originated from. Predecessors and Reductions accumulate back-pointers as
// completion discovers them, so a finished chart can be walked into an SPPF
// without re-deriving anything.
type Item struct {
	Production *grammar.Production
	Dot        int
	Origin     int

	Predecessors []Edge
	Reductions   []Edge
}

// NextWord returns the symbol immediately after the dot, and whether one
// exists (false for a complete item).
func (it *Item) NextWord() (symbol.Word, bool) {
	rhs := it.Production.RHS
	if it.Dot >= len(rhs) {
		return symbol.Word{}, false
	}
	return rhs[it.Dot], true
}

// IsComplete reports whether the dot has reached the end of the production.
func (it *Item) IsComplete() bool {
	return it.Dot == len(it.Production.RHS)
}

// LHS returns the item's production's left-hand side.
func (it *Item) LHS() *symbol.Nonterminal {
	return it.Production.LHS
}

func (it *Item) addPredecessor(label int, target *Item) {
	for _, e := range it.Predecessors {
		if e.Label == label && e.Target == target {
			return
		}
	}
	it.Predecessors = append(it.Predecessors, Edge{Label: label, Target: target})
}

func (it *Item) addReduction(label int, target *Item) {
	for _, e := range it.Reductions {
		if e.Label == label && e.Target == target {
			return
		}
	}
	it.Reductions = append(it.Reductions, Edge{Label: label, Target: target})
}
