package pcfg

import (
	"github.com/npillmayer/pcfg/cyk"
	"github.com/npillmayer/pcfg/earley"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/grammar/cnf"
	"github.com/npillmayer/pcfg/sppf"
	"github.com/npillmayer/pcfg/symbol"
)

// EarleyParser wires an Earley recognizer to the SPPF builder: Recognize
// finds every successful top-level item, Build turns those items into a
// forest, and the forest's fixpoint yields the total derivation probability.
// It handles any grammar, CNF or not, unlike CYKParser.
type EarleyParser struct {
	g      *grammar.Grammar
	earley *earley.Parser
}

// NewEarleyParser builds an EarleyParser over g.
func NewEarleyParser(g *grammar.Grammar, opts ...earley.Option) *EarleyParser {
	return &EarleyParser{g: g, earley: earley.NewParser(g, opts...)}
}

// ParseProbability returns the total derivation probability of sentence.
func (p *EarleyParser) ParseProbability(sentence Sentence) float64 {
	s, ok := sentence.(symbol.Sentence)
	if !ok {
		return 0
	}
	successes := p.earley.Recognize(s)
	forest := sppf.Build(p.g, successes, s.Len())
	return forest.Probability()
}

// ParseForest returns the SPPF for sentence, or nil if it does not parse.
func (p *EarleyParser) ParseForest(sentence Sentence) Forest {
	s, ok := sentence.(symbol.Sentence)
	if !ok {
		return nil
	}
	successes := p.earley.Recognize(s)
	forest := sppf.Build(p.g, successes, s.Len())
	if forest == nil {
		return nil
	}
	return forest
}

// CYKParser wraps the weighted CYK recognizer over a CNF grammar. It builds
// no forest: ParseForest always returns nil, matching the Parser contract's
// "not every Parser builds a forest" clause.
type CYKParser struct {
	cyk *cyk.Parser
}

// NewCYKParser builds a CYKParser over a grammar already in Chomsky Normal
// Form. Use a grammar/cnf Normalizer's Normalize method to get one from an
// arbitrary grammar.
func NewCYKParser(g *cnf.Grammar) *CYKParser {
	return &CYKParser{cyk: cyk.NewParser(g)}
}

// ParseProbability returns the total derivation probability of sentence.
func (p *CYKParser) ParseProbability(sentence Sentence) float64 {
	s, ok := sentence.(symbol.Sentence)
	if !ok {
		return 0
	}
	return p.cyk.ParseProbability(s)
}

// ParseForest always returns nil: CYK recognizes but does not build a forest.
func (p *CYKParser) ParseForest(sentence Sentence) Forest {
	return nil
}
