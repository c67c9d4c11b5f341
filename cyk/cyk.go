/*
Package cyk implements the weighted Cocke-Younger-Kasami recognizer over a
Chomsky Normal Form grammar (grammar/cnf.Grammar), returning a probability
rather than a parse tree.

Grounded on `ling0322/pcfg/cyk.go`'s triangular DP table and split-point
recurrence, simplified to probability bookkeeping only: this package never
reconstructs a derivation (that is the Earley/SPPF pair's job), so the
table stores float64 probabilities keyed by nonterminal rather than
backpointer-carrying cells.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cyk

import (
	"github.com/npillmayer/pcfg/grammar/cnf"
	"github.com/npillmayer/pcfg/symbol"
)

// Parser recognizes sentences against a fixed CNF grammar, answering only
// "what is the probability of this derivation". It implements
// the core Parser capability's ParseProbability half; ParseForest is not
// meaningful for CYK and always returns nil (CYK builds no forest).
type Parser struct {
	g *cnf.Grammar
}

// NewParser creates a CYK recognizer bound to g.
func NewParser(g *cnf.Grammar) *Parser {
	return &Parser{g: g}
}

// cell maps a nonterminal to the accumulated probability that it derives
// the span the cell represents.
type cell map[*symbol.Nonterminal]float64

// ParseProbability returns the probability that g's start symbol derives
// sentence, computed by the standard weighted CYK recurrence. The empty
// sentence is handled specially via the grammar's empty-weight bucket.
func (p *Parser) ParseProbability(sentence symbol.Sentence) float64 {
	n := sentence.Len()
	if n == 0 {
		return p.g.EmptyProbability()
	}

	// table[i][l] is the cell for span [i, i+l), l in [1, n-i].
	table := make([][]cell, n)
	for i := range table {
		table[i] = make([]cell, n-i+1)
	}

	for i := 0; i < n; i++ {
		c := make(cell)
		w := sentence.At(i)
		if w.IsTerminal() {
			t := w.Terminal()
			for _, prod := range p.g.Productions() {
				if prod.Kind == cnf.Terminal && prod.T == t {
					c[prod.LHS] += p.g.Probability(prod)
				}
			}
		}
		table[i][1] = c
	}

	for l := 2; l <= n; l++ {
		for i := 0; i <= n-l; i++ {
			c := make(cell)
			for k := 1; k < l; k++ {
				left := table[i][k]
				right := table[i+k][l-k]
				if len(left) == 0 || len(right) == 0 {
					continue
				}
				for b, pb := range left {
					for cSym, pc := range right {
						for _, prod := range p.g.BinaryProductionsOver(b, cSym) {
							c[prod.LHS] += p.g.Probability(prod) * pb * pc
						}
					}
				}
			}
			table[i][l] = c
		}
	}

	return table[0][n][p.g.Start]
}

// ParseForest always returns nil: CYK recognizes but does not build a forest.
func (p *Parser) ParseForest(sentence symbol.Sentence) interface{} {
	return nil
}
