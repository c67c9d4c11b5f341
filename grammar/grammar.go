/*
Package grammar implements weighted context-free productions, grammars with
lookup-by-LHS, and nullable-probability analysis.

Weights, not probabilities, are the storage form: the probability of a
production is normalized lazily on query, dividing its weight by the sum of
weights of every production sharing its left-hand side. This mirrors
`ling0322/pcfg/grammar.go`'s Grammar type, except that repo normalizes
weights destructively up front (`normalizeWeight`); here normalization stays
a read-time query so a Grammar remains immutable after construction.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grammar

import (
	"github.com/npillmayer/pcfg/symbol"
	"github.com/pkg/errors"
)

// Production is a weighted rewrite rule lhs → rhs.
type Production struct {
	LHS    *symbol.Nonterminal
	RHS    symbol.Sentence
	Weight float64
}

// IsEpsilon reports whether this is an ε-production (empty RHS).
func (p *Production) IsEpsilon() bool { return len(p.RHS) == 0 }

// IsUnit reports whether this is a unit production A → B (single
// nonterminal RHS).
func (p *Production) IsUnit() bool {
	return len(p.RHS) == 1 && p.RHS[0].IsNonterminal()
}

// IsSelfLoop reports whether this is a unit production A → A.
func (p *Production) IsSelfLoop() bool {
	return p.IsUnit() && p.RHS[0].Nonterminal() == p.LHS
}

// Grammar is an immutable collection of weighted productions over a
// designated start nonterminal.
type Grammar struct {
	Start       *symbol.Nonterminal
	productions []*Production
	byLHS       map[*symbol.Nonterminal][]*Production
	nonterms    map[*symbol.Nonterminal]bool
	terms       map[*symbol.Terminal]bool
}

// Option configures New's validation behavior.
type Option func(*options)

type options struct {
	strict bool
}

// Strict enables the construction-time check that every nonterminal
// mentioned on a right-hand side has at least one production of its own.
// Off by default, since a grammar under active construction may legitimately
// reference a nonterminal before its productions are added.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// New validates productions and builds an immutable Grammar rooted at start.
// Construction fails with ErrNegativeWeight if any production carries a
// negative weight, or, under Strict, with ErrUndefinedNonterminal if a
// right-hand side references a nonterminal with no productions of its own.
func New(start *symbol.Nonterminal, productions []*Production, opts ...Option) (*Grammar, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	g := &Grammar{
		Start:       start,
		productions: append([]*Production(nil), productions...),
		byLHS:       make(map[*symbol.Nonterminal][]*Production),
		nonterms:    make(map[*symbol.Nonterminal]bool),
		terms:       make(map[*symbol.Terminal]bool),
	}
	g.nonterms[start] = true
	for _, p := range g.productions {
		if p.Weight < 0 {
			return nil, errors.Wrapf(ErrNegativeWeight, "production %s", p.LHS.Name())
		}
		g.byLHS[p.LHS] = append(g.byLHS[p.LHS], p)
		g.nonterms[p.LHS] = true
		for _, w := range p.RHS {
			if w.IsTerminal() {
				g.terms[w.Terminal()] = true
			} else {
				g.nonterms[w.Nonterminal()] = true
			}
		}
	}
	if o.strict {
		for _, p := range g.productions {
			for _, w := range p.RHS {
				if w.IsNonterminal() && len(g.byLHS[w.Nonterminal()]) == 0 {
					return nil, errors.Wrapf(ErrUndefinedNonterminal, "nonterminal %s", w.Nonterminal().Name())
				}
			}
		}
	}
	return g, nil
}

// Productions returns every production in the grammar, in construction order.
func (g *Grammar) Productions() []*Production {
	return g.productions
}

// ProductionsFrom returns every production with left-hand side lhs.
func (g *Grammar) ProductionsFrom(lhs *symbol.Nonterminal) []*Production {
	return g.byLHS[lhs]
}

// Probability returns p's probability: its weight divided by the sum of
// weights of every production sharing p's left-hand side. Returns 0 if the
// weight total for that LHS is 0.
func (g *Grammar) Probability(p *Production) float64 {
	total := g.weightTotal(p.LHS)
	if total == 0 {
		return 0
	}
	return p.Weight / total
}

func (g *Grammar) weightTotal(lhs *symbol.Nonterminal) float64 {
	total := 0.0
	for _, p := range g.byLHS[lhs] {
		total += p.Weight
	}
	return total
}

// FindProduction returns the production lhs → rhs, if present.
func (g *Grammar) FindProduction(lhs *symbol.Nonterminal, rhs symbol.Sentence) *Production {
	for _, p := range g.byLHS[lhs] {
		if sentenceEqual(p.RHS, rhs) {
			return p
		}
	}
	return nil
}

func sentenceEqual(a, b symbol.Sentence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Nonterminals returns every nonterminal mentioned by the grammar, either as
// a left-hand side, as part of a right-hand side, or as the start symbol.
func (g *Grammar) Nonterminals() []*symbol.Nonterminal {
	out := make([]*symbol.Nonterminal, 0, len(g.nonterms))
	for n := range g.nonterms {
		out = append(out, n)
	}
	return out
}

// Terminals returns every terminal the grammar can produce.
func (g *Grammar) Terminals() []*symbol.Terminal {
	out := make([]*symbol.Terminal, 0, len(g.terms))
	for t := range g.terms {
		out = append(out, t)
	}
	return out
}
