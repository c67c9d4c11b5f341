package grammar

import (
	"testing"

	"github.com/npillmayer/pcfg/symbol"
)

func TestProbabilityNormalizesPerLHS(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	x := table.Nonterminal("X")
	a := table.Terminal("a")

	pSXX := &Production{LHS: s, RHS: symbol.Sentence{symbol.N(x), symbol.N(x)}, Weight: 2}
	pSa := &Production{LHS: s, RHS: symbol.Sentence{symbol.T(a)}, Weight: 8}

	g, err := New(s, []*Production{pSXX, pSa})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := g.Probability(pSXX); got != 0.2 {
		t.Errorf("P(S->XX) = %v, want 0.2", got)
	}
	if got := g.Probability(pSa); got != 0.8 {
		t.Errorf("P(S->a) = %v, want 0.8", got)
	}
}

func TestProbabilityZeroWhenNoProductionsForLHS(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	unused := table.Nonterminal("Unused")
	g, err := New(s, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := &Production{LHS: unused, Weight: 1}
	if got := g.Probability(p); got != 0 {
		t.Errorf("Probability on orphan LHS = %v, want 0", got)
	}
}

func TestNewRejectsNegativeWeight(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	_, err := New(s, []*Production{{LHS: s, RHS: symbol.Sentence{symbol.T(a)}, Weight: -1}})
	if err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestFindProduction(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	rhs := symbol.Sentence{symbol.T(a)}
	p := &Production{LHS: s, RHS: rhs, Weight: 1}
	g, err := New(s, []*Production{p})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := g.FindProduction(s, symbol.Sentence{symbol.T(a)}); got != p {
		t.Errorf("FindProduction did not return the matching production")
	}
	b := table.Terminal("b")
	if got := g.FindProduction(s, symbol.Sentence{symbol.T(b)}); got != nil {
		t.Errorf("FindProduction matched a non-existent RHS")
	}
}

func TestNewStrictRejectsUndefinedNonterminal(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	dangling := table.Nonterminal("Dangling")
	_, err := New(s, []*Production{
		{LHS: s, RHS: symbol.Sentence{symbol.N(dangling)}, Weight: 1},
	}, Strict())
	if err == nil {
		t.Fatal("expected error for a nonterminal with no productions under Strict")
	}
}

func TestNewStrictAcceptsFullyDefinedGrammar(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	_, err := New(s, []*Production{
		{LHS: s, RHS: symbol.Sentence{symbol.T(a)}, Weight: 1},
	}, Strict())
	if err != nil {
		t.Fatalf("New with Strict: %v", err)
	}
}

func TestIsEpsilonUnitSelfLoop(t *testing.T) {
	table := symbol.NewTable()
	a := table.Nonterminal("A")
	b := table.Nonterminal("B")

	eps := &Production{LHS: a, RHS: nil}
	if !eps.IsEpsilon() {
		t.Error("expected IsEpsilon")
	}
	unit := &Production{LHS: a, RHS: symbol.Sentence{symbol.N(b)}}
	if !unit.IsUnit() || unit.IsSelfLoop() {
		t.Error("expected unit, not self-loop")
	}
	loop := &Production{LHS: a, RHS: symbol.Sentence{symbol.N(a)}}
	if !loop.IsSelfLoop() {
		t.Error("expected self-loop")
	}
}
