package earley

import (
	"testing"

	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/symbol"
)

func TestRecognizeSimpleConcatenation(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	b := table.Terminal("b")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.T(a), symbol.T(b)}, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewParser(g)
	successes := p.Recognize(symbol.FromLetters(table, "ab"))
	if len(successes) != 1 {
		t.Fatalf("got %d successes, want 1", len(successes))
	}
}

func TestRecognizeRejectsMismatch(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.T(a)}, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewParser(g)
	successes := p.Recognize(symbol.FromLetters(table, "b"))
	if successes != nil {
		t.Fatalf("got %d successes, want rejection", len(successes))
	}
}

func TestRecognizeEmptySentenceViaEpsilon(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: nil, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewParser(g)
	successes := p.Recognize(symbol.Sentence{})
	if len(successes) != 1 {
		t.Fatalf("got %d successes, want 1", len(successes))
	}
}

// S -> A B, A -> ε, B -> 'a' exercises the magic-item eager nullable advance:
// predicting S -> .A B must synthesize S -> A .B in the same state since A
// is nullable, without waiting for a later completion of A.
func TestRecognizeNullablePrefixViaMagicItem(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Nonterminal("A")
	b := table.Nonterminal("B")
	term := table.Terminal("a")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.N(a), symbol.N(b)}, Weight: 1},
		{LHS: a, RHS: nil, Weight: 1},
		{LHS: b, RHS: symbol.Sentence{symbol.T(term)}, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewParser(g)
	successes := p.Recognize(symbol.FromLetters(table, "a"))
	if len(successes) != 1 {
		t.Fatalf("got %d successes, want 1", len(successes))
	}
}

func TestRecognizeAmbiguousGrammarYieldsSuccessItem(t *testing.T) {
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
	p := NewParser(g)
	successes := p.Recognize(symbol.FromLetters(table, "aaa"))
	if len(successes) == 0 {
		t.Fatalf("expected at least one success item for an ambiguous parse")
	}
}

func TestChartAvailableAfterRecognize(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.T(a)}, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewParser(g)
	p.Recognize(symbol.FromLetters(table, "a"))
	chart := p.Chart()
	if len(chart) != 2 {
		t.Fatalf("got %d states, want 2", len(chart))
	}
}

func TestAccepts(t *testing.T) {
	table := symbol.NewTable()
	s := table.Nonterminal("S")
	a := table.Terminal("a")
	g, err := grammar.New(s, []*grammar.Production{
		{LHS: s, RHS: symbol.Sentence{symbol.T(a)}, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewParser(g)
	if !p.Accepts(symbol.FromLetters(table, "a")) {
		t.Error("expected acceptance")
	}
	if p.Accepts(symbol.FromLetters(table, "b")) {
		t.Error("expected rejection")
	}
}
