package grammar

import "github.com/npillmayer/pcfg/symbol"

// NullableProbabilities computes, for every nonterminal of g, the total
// probability that it derives the empty string — a fixpoint over the
// grammar's productions.
//
// Grounded on `ling0322/pcfg/grammar.go`'s findNullables: seed with
// explicit ε-productions, then propagate through productions whose entire
// RHS is (so far) known-nullable, worklist style. A production A → B C D is
// approximated as P(A) += P(A→BCD)·P(B)·P(C)·P(D), which is only exact under
// independence of the nullable derivations of B, C, D — this module
// preserves that approximation rather than tracking joint probabilities.
func (g *Grammar) NullableProbabilities() map[*symbol.Nonterminal]float64 {
	nullable := make(map[*symbol.Nonterminal]float64)
	occursIn := make(map[*symbol.Nonterminal][]*Production) // B -> productions mentioning B in RHS

	var worklist []*symbol.Nonterminal
	seen := make(map[*symbol.Nonterminal]bool)

	for _, p := range g.productions {
		if p.IsEpsilon() {
			nullable[p.LHS] += p.Weight
			if !seen[p.LHS] {
				seen[p.LHS] = true
				worklist = append(worklist, p.LHS)
			}
		}
		for _, w := range p.RHS {
			if w.IsNonterminal() {
				occursIn[w.Nonterminal()] = append(occursIn[w.Nonterminal()], p)
			}
		}
	}
	for lhs := range nullable {
		nullable[lhs] = g.Probability(&Production{LHS: lhs, Weight: nullable[lhs]})
	}

	processed := make(map[*Production]bool)
	for len(worklist) > 0 {
		B := worklist[0]
		worklist = worklist[1:]
		for _, p := range occursIn[B] {
			if processed[p] || p.IsEpsilon() {
				continue
			}
			allNullable := true
			prob := 1.0
			for _, w := range p.RHS {
				if w.IsTerminal() {
					allNullable = false
					break
				}
				np, ok := nullable[w.Nonterminal()]
				if !ok {
					allNullable = false
					break
				}
				prob *= np
			}
			if !allNullable {
				continue
			}
			processed[p] = true
			nullable[p.LHS] += g.Probability(p) * prob
			if !seen[p.LHS] {
				seen[p.LHS] = true
				worklist = append(worklist, p.LHS)
			}
		}
	}
	return nullable
}

// NullableOracle answers "what is the probability that A derives ε" for a
// fixed grammar snapshot. Earley's prediction step consults it to decide
// whether to synthesize a magic item.
type NullableOracle struct {
	probs map[*symbol.Nonterminal]float64
}

// NewNullableOracle precomputes nullable probabilities for g.
func NewNullableOracle(g *Grammar) *NullableOracle {
	return &NullableOracle{probs: g.NullableProbabilities()}
}

// Probability returns the nullable probability of A, or 0 if A never
// derives ε.
func (o *NullableOracle) Probability(a *symbol.Nonterminal) float64 {
	return o.probs[a]
}

// DerivesEpsilon reports whether A's nullable probability is strictly positive.
func (o *NullableOracle) DerivesEpsilon(a *symbol.Nonterminal) bool {
	return o.probs[a] > 0
}
