/*
Package earley implements an Earley recognizer over an arbitrary weighted
grammar (no CNF required), producing a chart of state sets with explicit
predecessor/reduction back-pointer edges suitable for building an SPPF.

Grounded on `npillmayer/gorgo/lr/earley/earley.go`'s predict/scan/complete
split and inner-loop-by-index discipline, with the item shape generalized
to carry explicit edge sets the way
`liuzl/gearley` (other_examples) and the `pq-autocomplete` Earley parser
(other_examples) do, since gorgo's own items relied on a package-level
backlink map instead -- this module needs per-item edges for the SPPF
builder's recursive reconstruction.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package earley

import (
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/symbol"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.earley'.
func tracer() tracing.Trace {
	return tracing.Select("pcfg.earley")
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithNullableOracle supplies a precomputed nullable-probability oracle,
// letting callers amortize its cost across repeated parses of the same
// grammar instead of recomputing it on every NewParser call.
func WithNullableOracle(oracle *grammar.NullableOracle) Option {
	return func(p *Parser) { p.oracle = oracle }
}

// Parser is an Earley recognizer bound to a fixed grammar.
type Parser struct {
	g      *grammar.Grammar
	oracle *grammar.NullableOracle
	states []*StateSet
}

// NewParser creates an Earley parser for g. Unless WithNullableOracle is
// given, it computes its own nullable-probability oracle from g.
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{g: g}
	for _, opt := range opts {
		opt(p)
	}
	if p.oracle == nil {
		p.oracle = grammar.NewNullableOracle(g)
	}
	return p
}

// Chart returns the state sets built by the most recent Recognize call, one
// per chart position 0..n. It is nil before the first call.
func (p *Parser) Chart() []*StateSet {
	return p.states
}

// Recognize runs the Earley recognizer over sentence and returns every
// successful item in S[n]: complete, originating at 0, with lhs equal to
// the grammar's start symbol. A nil/empty result means the sentence was
// rejected; an empty intermediate state set also yields nil without
// completing the scan.
func (p *Parser) Recognize(sentence symbol.Sentence) []*Item {
	n := sentence.Len()
	p.states = make([]*StateSet, n+1)
	for i := range p.states {
		p.states[i] = NewStateSet()
	}

	for _, prod := range p.g.ProductionsFrom(p.g.Start) {
		p.states[0].Insert(prod, 0, 0)
	}

	for i := 0; i <= n; i++ {
		S := p.states[i]
		S.IterateOnce()
		for S.Next() {
			item := S.Current()
			w, ok := item.NextWord()
			switch {
			case !ok:
				p.complete(i, item)
			case w.IsNonterminal():
				p.predict(i, item, w.Nonterminal())
			default:
				if i < n {
					p.scan(i, item, w.Terminal(), sentence.At(i))
				}
			}
		}
		p.resolveMagicItems(i)
		tracer().Debugf("completed state %d with %d items", i, S.Size())
		if S.IsEmpty() {
			return nil
		}
	}

	return p.states[n].Subset(func(it *Item) bool {
		return it.IsComplete() && it.Origin == 0 && it.LHS() == p.g.Start
	})
}

// predict inserts a start item for every production of C into Si (once),
// and, if C is nullable, eagerly advances I past C as a magic item.
func (p *Parser) predict(i int, item *Item, c *symbol.Nonterminal) {
	S := p.states[i]
	if !S.Predicted(c) {
		S.MarkPredicted(c)
		for _, prod := range p.g.ProductionsFrom(c) {
			S.Insert(prod, 0, i)
		}
	}
	if p.oracle.DerivesEpsilon(c) {
		advanced, created := S.Insert(item.Production, item.Dot+1, item.Origin)
		if item.Dot > 0 {
			advanced.addPredecessor(i, item)
		}
		S.AddMagic(advanced)
		_ = created
	}
}

// scan advances item past t into S[i+1] if the next input word matches t.
func (p *Parser) scan(i int, item *Item, t *symbol.Terminal, a symbol.Word) {
	if !a.IsTerminal() || a.Terminal() != t {
		return
	}
	S1 := p.states[i+1]
	advanced, _ := S1.Insert(item.Production, item.Dot+1, item.Origin)
	if item.Dot > 0 {
		advanced.addPredecessor(i, item)
	}
}

// complete advances every item J in S[origin(I)] whose next symbol is
// A = I.LHS past A into Si,
// attaching a reduction edge back to I and, when J's dot was already past
// its first symbol, a predecessor edge back to J.
func (p *Parser) complete(i int, item *Item) {
	A := item.LHS()
	origin := p.states[item.Origin]
	candidates := origin.Subset(func(j *Item) bool {
		w, ok := j.NextWord()
		return ok && w.IsNonterminal() && w.Nonterminal() == A
	})
	S := p.states[i]
	for _, j := range candidates {
		advanced, _ := S.Insert(j.Production, j.Dot+1, j.Origin)
		advanced.addReduction(item.Origin, item)
		if j.Dot > 0 {
			advanced.addPredecessor(item.Origin, j)
		}
	}
}

// resolveMagicItems runs a post-pass: any complete item for nonterminal C
// living in Si whose origin is i (C derived the empty span at i) attaches a
// reduction edge to C's magic item, since predict's eager advance happened
// before that completion existed.
func (p *Parser) resolveMagicItems(i int) {
	S := p.states[i]
	for _, magic := range S.MagicItems() {
		// The symbol predict advanced over is the one immediately before
		// the magic item's dot.
		c := magic.Production.RHS[magic.Dot-1]
		if !c.IsNonterminal() {
			continue
		}
		S.Each(func(candidate *Item) {
			if candidate == magic {
				return
			}
			if candidate.IsComplete() && candidate.LHS() == c.Nonterminal() && candidate.Origin == i {
				magic.addReduction(i, candidate)
			}
		})
	}
}

// Accepts reports whether sentence was recognized.
func (p *Parser) Accepts(sentence symbol.Sentence) bool {
	return len(p.Recognize(sentence)) > 0
}
