/*
Package pcfg is a probabilistic context-free grammar (PCFG) parsing toolbox.

It normalizes arbitrary weighted context-free grammars into Chomsky Normal
Form, recognizes sentences against them with a weighted CYK table, and
parses arbitrary (non-CNF) grammars with a probability-annotated Earley
recognizer that builds a Shared Packed Parse Forest (SPPF) following
Scott's scheme. A fixpoint iteration over the forest DAG yields the total
derivation probability.

Package structure:

■ symbol: interned terminals/nonterminals, words and sentences.

■ grammar: weighted productions, grammars, nullable-probability analysis.

■ grammar/cnf: the START/TERM/BIN/DEL/UNIT normalization pipeline.

■ cyk: the bottom-up weighted CYK recognizer over a CNF grammar.

■ earley: the Earley chart (prediction/scan/completion, magic items).

■ sppf: the parse forest builder and the probability fixpoint.

This package consumes an abstract grammar and a pre-tokenized sentence; it
performs no lexing, no grammar induction, and exposes no wire format or CLI.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package pcfg

// Parser is the capability every concrete parser (CYK, Earley) exposes.
// ParseProbability and ParseForest operate over the same Sentence type;
// Accepts is defined purely in terms of ParseProbability.
type Parser interface {
	// ParseProbability returns the total derivation probability of sentence
	// under the parser's grammar, a value in [0, 1].
	ParseProbability(sentence Sentence) float64

	// ParseForest returns the parse forest for sentence, or nil if the
	// sentence does not parse. Not every Parser builds a forest (CYK does
	// not); such parsers return nil unconditionally.
	ParseForest(sentence Sentence) Forest
}

// Sentence is the minimal contract a parser needs from an input sequence:
// its length. symbol.Sentence implements it.
type Sentence interface {
	Len() int
}

// Forest is the minimal contract a caller needs from a returned parse
// forest: whether it is present. sppf.Forest implements it.
type Forest interface {
	Root() interface{}
}

// Accepts reports whether sentence parses with non-zero probability.
func Accepts(p Parser, sentence Sentence) bool {
	return p.ParseProbability(sentence) > 0
}
