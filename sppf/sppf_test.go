package sppf

import (
	"math"
	"testing"

	"github.com/npillmayer/pcfg/earley"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/symbol"
)

func parse(t *testing.T, g *grammar.Grammar, sentence symbol.Sentence) *Forest {
	t.Helper()
	p := earley.NewParser(g)
	successes := p.Recognize(sentence)
	return Build(g, successes, sentence.Len())
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildReturnsNilForRejectedSentence(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.T(a)}, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f := parse(t, g, symbol.FromLetters(table, "b"))
	if f != nil {
		t.Fatal("expected nil forest for a rejected sentence")
	}
}

func TestProbabilityPurelyNullable(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: nil, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f := parse(t, g, symbol.Sentence{})
	if f == nil {
		t.Fatal("expected a forest for the empty sentence")
	}
	if got := f.Probability(); !approxEqual(got, 1) {
		t.Errorf("Probability() = %v, want 1", got)
	}
}

func TestProbabilityUnitChainCollapse(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Nonterminal("A")
	b := table.Nonterminal("B")
	term := table.Terminal("x")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.N(a)}, Weight: 1},
		{LHS: a, RHS: symbol.Sentence{symbol.N(b)}, Weight: 1},
		{LHS: b, RHS: symbol.Sentence{symbol.T(term)}, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f := parse(t, g, symbol.FromLetters(table, "x"))
	if f == nil {
		t.Fatal("expected a forest")
	}
	if got := f.Probability(); !approxEqual(got, 1) {
		t.Errorf("Probability() = %v, want 1", got)
	}
}

// buildRightRecursive builds S -> 'a' S | ε with both alternatives equally
// weighted, so each step down the recursion and the final ε both carry
// probability 0.5: parsing "a" x k should yield 0.5^(k+1).
func buildRightRecursive(t *testing.T) (*symbol.Table, *grammar.Grammar) {
	t.Helper()
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.T(a), symbol.N(s)}, Weight: 1},
		{LHS: s, RHS: nil, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return table, g
}

func TestProbabilityRightRecursionWithNullableTail(t *testing.T) {
	table, g := buildRightRecursive(t)
	for k := 0; k <= 4; k++ {
		sentence := symbol.Sentence{}
		for i := 0; i < k; i++ {
			sentence = append(sentence, symbol.T(table.Terminal("a")))
		}
		f := parse(t, g, sentence)
		if f == nil {
			t.Fatalf("k=%d: expected a forest", k)
		}
		want := math.Pow(0.5, float64(k+1))
		if got := f.Probability(); !approxEqual(got, want) {
			t.Errorf("k=%d: Probability() = %v, want %v", k, got, want)
		}
	}
}

// buildCatalan mirrors the ambiguous Catalan-number grammar cyk's test
// verifies, run directly (Earley requires no CNF) so the two recognizers'
// results can be cross-checked against each other.
func buildCatalan(t *testing.T) (*symbol.Table, *grammar.Grammar) {
	t.Helper()
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.N(s), symbol.N(s)}, Weight: 2},
		{LHS: s, RHS: symbol.Sentence{symbol.T(a)}, Weight: 8},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return table, g
}

func TestProbabilityBinaryAmbiguityMatchesCYK(t *testing.T) {
	table, g := buildCatalan(t)
	want := []float64{0.8, 0.128, 0.04096, 0.016384, 0.007340032}
	for i, w := range want {
		n := i + 1
		letters := make([]byte, n)
		for j := range letters {
			letters[j] = 'a'
		}
		f := parse(t, g, symbol.FromLetters(table, string(letters)))
		if f == nil {
			t.Fatalf("n=%d: expected a forest", n)
		}
		if got := f.Probability(); !approxEqual(got, w) {
			t.Errorf("n=%d: Probability() = %v, want %v", n, got, w)
		}
	}
}

func TestProbabilityNeverIncreasesAcrossFixpointPasses(t *testing.T) {
	table, g := buildCatalan(t)
	f := parse(t, g, symbol.FromLetters(table, "aaa"))
	if f == nil {
		t.Fatal("expected a forest")
	}
	// Probability() panics internally on any monotonicity violation; simply
	// not panicking is the assertion here.
	_ = f.Probability()
}

func TestForestRootSatisfiesCoreForestContract(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.T(a)}, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f := parse(t, g, symbol.FromLetters(table, "a"))
	if f.Root() == nil {
		t.Fatal("expected a non-nil root")
	}
}
