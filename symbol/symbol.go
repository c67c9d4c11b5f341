/*
Package symbol implements interned terminals and nonterminals, the tagged
Word union used on production right-hand sides, and ordered Sentences of
Words.

Terminals and nonterminals are interned by name within a Table: two symbols
with the same name and kind are identical (pointer-equal), so equality and
hashing reduce to pointer comparison — the same convention
`ling0322/pcfg/rule.go`'s string-based Symbol type follows, generalized here
into two distinct Go types so a Word's tag is checked by the compiler
instead of by regexp sniffing the first rune.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package symbol

import (
	"fmt"
	"sync"
)

// Nonterminal is an interned grammar nonterminal, identified by name.
type Nonterminal struct {
	name string
}

// Name returns the nonterminal's interned name.
func (n *Nonterminal) Name() string {
	if n == nil {
		return "<nil>"
	}
	return n.name
}

func (n *Nonterminal) String() string {
	return n.Name()
}

// Terminal is an interned grammar terminal, identified by name.
type Terminal struct {
	name string
}

// Name returns the terminal's interned name.
func (t *Terminal) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

func (t *Terminal) String() string {
	return t.Name()
}

// Table interns nonterminals and terminals by name and mints fresh
// nonterminals guaranteed unused by any name the caller has seen so far.
// A Table is process-wide and append-only once shared across grammars.
type Table struct {
	mu     sync.Mutex
	nonterms map[string]*Nonterminal
	terms    map[string]*Terminal
	fresh    int
}

// NewTable creates an empty, ready-to-use symbol table.
func NewTable() *Table {
	return &Table{
		nonterms: make(map[string]*Nonterminal),
		terms:    make(map[string]*Terminal),
	}
}

// Nonterminal interns and returns the nonterminal named name.
func (t *Table) Nonterminal(name string) *Nonterminal {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n, ok := t.nonterms[name]; ok {
		return n
	}
	n := &Nonterminal{name: name}
	t.nonterms[name] = n
	return n
}

// Terminal interns and returns the terminal named name.
func (t *Table) Terminal(name string) *Terminal {
	t.mu.Lock()
	defer t.mu.Unlock()
	if term, ok := t.terms[name]; ok {
		return term
	}
	term := &Terminal{name: name}
	t.terms[name] = term
	return term
}

// FreshNonterminal mints a nonterminal guaranteed to be unused by any name
// previously interned in this table, using prefix as a human-readable hint.
func (t *Table) FreshNonterminal(prefix string) *Nonterminal {
	t.mu.Lock()
	defer t.mu.Unlock()
	for {
		t.fresh++
		name := fmt.Sprintf("<%s~%d>", prefix, t.fresh)
		if _, ok := t.nonterms[name]; !ok {
			n := &Nonterminal{name: name}
			t.nonterms[name] = n
			return n
		}
	}
}

// Word is a tagged union of Terminal | Nonterminal, used as an element of a
// production's right-hand side.
type Word struct {
	term *Terminal
	nt   *Nonterminal
}

// T wraps a Terminal as a Word.
func T(t *Terminal) Word { return Word{term: t} }

// N wraps a Nonterminal as a Word.
func N(n *Nonterminal) Word { return Word{nt: n} }

// IsTerminal reports whether the word is a Terminal.
func (w Word) IsTerminal() bool { return w.term != nil }

// IsNonterminal reports whether the word is a Nonterminal.
func (w Word) IsNonterminal() bool { return w.nt != nil }

// Terminal returns the word's Terminal, or nil if it is a Nonterminal.
func (w Word) Terminal() *Terminal { return w.term }

// Nonterminal returns the word's Nonterminal, or nil if it is a Terminal.
func (w Word) Nonterminal() *Nonterminal { return w.nt }

// Equal reports whether two words reference the same interned symbol.
func (w Word) Equal(other Word) bool {
	return w.term == other.term && w.nt == other.nt
}

func (w Word) String() string {
	if w.IsTerminal() {
		return w.term.String()
	}
	return w.nt.String()
}
