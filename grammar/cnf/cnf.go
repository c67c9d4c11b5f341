/*
Package cnf implements the START/TERM/BIN/DEL/UNIT normalization pipeline
that rewrites an arbitrary weighted grammar into an equivalent weighted
grammar in Chomsky Normal Form, plus the Grammar type the CYK recognizer
consumes.

Grounded on `ling0322/pcfg/cnf_grammar.go`'s CNFGrammar (binary/terminal rule
split, lookup indexed by the rule's right-hand side), generalized from
integer symbol ids to the pointer-interned `symbol.Nonterminal`/`Terminal`
types the rest of this module uses, and extended with the epsilon-weight
bucket CYK needs to answer "probability of the empty sentence" directly.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cnf

import (
	"github.com/npillmayer/pcfg/symbol"
	"github.com/pkg/errors"
)

// Kind discriminates the two shapes a CNFProduction may take.
type Kind int

const (
	// Binary is A → B C.
	Binary Kind = iota
	// Terminal is A → t.
	Terminal
)

// Production is a production already known to be in Chomsky Normal Form:
// either Binary (A → B C) or Terminal (A → t).
type Production struct {
	Kind   Kind
	LHS    *symbol.Nonterminal
	B, C   *symbol.Nonterminal // valid when Kind == Binary
	T      *symbol.Terminal    // valid when Kind == Terminal
	Weight float64
}

// NewBinary constructs a Binary production A → B C.
func NewBinary(a, b, c *symbol.Nonterminal, weight float64) *Production {
	return &Production{Kind: Binary, LHS: a, B: b, C: c, Weight: weight}
}

// NewTerminal constructs a Terminal production A → t.
func NewTerminal(a *symbol.Nonterminal, t *symbol.Terminal, weight float64) *Production {
	return &Production{Kind: Terminal, LHS: a, T: t, Weight: weight}
}

// Grammar is an immutable weighted CNF grammar: binary and terminal
// productions indexed by left-hand side, plus the accumulated weight of all
// epsilon derivations collapsed onto Start by the DEL step.
type Grammar struct {
	Start       *symbol.Nonterminal
	EmptyWeight float64

	productions []*Production
	byLHS       map[*symbol.Nonterminal][]*Production
	byRHS       map[*symbol.Nonterminal]map[*symbol.Nonterminal][]*Production // B -> C -> rules A->BC
}

// New builds a Grammar from explicit CNF productions, a start symbol and an
// empty weight. Every production must be well-formed (Binary with non-nil
// B, C or Terminal with non-nil T); a malformed production wraps ErrNotCNF.
func New(start *symbol.Nonterminal, productions []*Production, emptyWeight float64) (*Grammar, error) {
	g := &Grammar{
		Start:       start,
		EmptyWeight: emptyWeight,
		productions: append([]*Production(nil), productions...),
		byLHS:       make(map[*symbol.Nonterminal][]*Production),
		byRHS:       make(map[*symbol.Nonterminal]map[*symbol.Nonterminal][]*Production),
	}
	for _, p := range g.productions {
		switch p.Kind {
		case Binary:
			if p.B == nil || p.C == nil {
				return nil, errors.Wrapf(ErrNotCNF, "binary production %s with nil child", p.LHS.Name())
			}
		case Terminal:
			if p.T == nil {
				return nil, errors.Wrapf(ErrNotCNF, "terminal production %s with nil terminal", p.LHS.Name())
			}
		default:
			return nil, errors.Wrapf(ErrNotCNF, "production %s has unknown kind", p.LHS.Name())
		}
		g.byLHS[p.LHS] = append(g.byLHS[p.LHS], p)
		if p.Kind == Binary {
			if g.byRHS[p.B] == nil {
				g.byRHS[p.B] = make(map[*symbol.Nonterminal][]*Production)
			}
			g.byRHS[p.B][p.C] = append(g.byRHS[p.B][p.C], p)
		}
	}
	return g, nil
}

// ErrNotCNF is returned when a Production fails to satisfy the Binary/Terminal shape.
var ErrNotCNF = errors.New("cnf: production is not well-formed Chomsky Normal Form")

// Productions returns every CNF production, in construction order.
func (g *Grammar) Productions() []*Production { return g.productions }

// ProductionsFrom returns every production with left-hand side lhs.
func (g *Grammar) ProductionsFrom(lhs *symbol.Nonterminal) []*Production {
	return g.byLHS[lhs]
}

// BinaryProductionsOver returns every A → B C production whose RHS is
// exactly (b, c), the access pattern CYK's recurrence step needs.
func (g *Grammar) BinaryProductionsOver(b, c *symbol.Nonterminal) []*Production {
	return g.byRHS[b][c]
}

// Probability returns p's probability, normalized against every production
// sharing p's left-hand side, mirroring grammar.Grammar.Probability.
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

// EmptyProbability returns the probability of the empty sentence: the
// accumulated empty weight normalized against the start symbol's total
// production weight plus the empty weight itself.
func (g *Grammar) EmptyProbability() float64 {
	total := g.weightTotal(g.Start) + g.EmptyWeight
	if total == 0 {
		return 0
	}
	return g.EmptyWeight / total
}
