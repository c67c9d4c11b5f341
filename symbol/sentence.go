package symbol

import "strings"

// Sentence is a finite ordered sequence of Words, the unit Earley and CYK
// consume as input. It is indexable and sliceable like a Go slice, which it
// wraps directly.
type Sentence []Word

// Len returns the number of words in the sentence.
func (s Sentence) Len() int { return len(s) }

// At returns the word at position i.
func (s Sentence) At(i int) Word { return s[i] }

// Slice returns the sub-sentence s[from:to].
func (s Sentence) Slice(from, to int) Sentence { return s[from:to] }

// FromLetters builds a Sentence from a string by mapping each letter (rune)
// to a terminal of the same name, interned in table. A convenience
// constructor for tests and small examples.
func FromLetters(table *Table, s string) Sentence {
	runes := []rune(s)
	sentence := make(Sentence, len(runes))
	for i, r := range runes {
		sentence[i] = T(table.Terminal(string(r)))
	}
	return sentence
}

func (s Sentence) String() string {
	parts := make([]string, len(s))
	for i, w := range s {
		parts[i] = w.String()
	}
	return strings.Join(parts, " ")
}
