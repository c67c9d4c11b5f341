/*
Package sppf builds a Shared Packed Parse Forest from a completed Earley
chart, following Scott's SPPF scheme, and evaluates the production-weighted
derivation probability over the resulting DAG by fixpoint iteration.

Grounded on `npillmayer/gorgo/lr/sppf/forest.go`'s node-interning-by-span
discipline (a searchTree keyed by (from, to) guarding a set of candidate
nodes), generalized from gorgo's two-kind symbol/RHS-node split into four
explicit node kinds, and from gorgo's unweighted forest into one that
carries production-weighted families for the probability fixpoint.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sppf

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/pcfg/earley"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/symbol"
)

// Kind discriminates the four SPPF node shapes.
type Kind int

const (
	// SymbolKind nodes claim "X derives s[i..j]".
	SymbolKind Kind = iota
	// IntermediateKind nodes represent partial progress through a production.
	IntermediateKind
	// TerminalKind nodes are leaves covering exactly one input position.
	TerminalKind
	// EpsilonKind nodes are leaves covering a zero-width empty derivation.
	EpsilonKind
)

func (k Kind) String() string {
	switch k {
	case SymbolKind:
		return "Symbol"
	case IntermediateKind:
		return "Intermediate"
	case TerminalKind:
		return "Terminal"
	case EpsilonKind:
		return "Epsilon"
	default:
		return "?"
	}
}

// Family is one alternative derivation at a node: an ordered tuple of 1 or 2
// children, optionally annotated with the production it instantiates.
type Family struct {
	Children   []*Node
	Production *grammar.Production
}

// Node is an SPPF node: a tagged variant over the four Kinds, with an
// interior node owning a list of Families representing ambiguity.
type Node struct {
	Kind Kind
	Sym  *symbol.Nonterminal // valid for SymbolKind
	Term *symbol.Terminal    // valid for TerminalKind
	Item *earley.Item        // valid for IntermediateKind: item.Dot marks progress

	From, To int

	Families []Family

	// ID is assigned by Forest.AssignIDs in a single preorder traversal
	// once a forest is finalized; zero until then.
	ID int
}

func (n *Node) String() string {
	switch n.Kind {
	case SymbolKind:
		return fmt.Sprintf("%s(%d,%d)", n.Sym.Name(), n.From, n.To)
	case TerminalKind:
		return fmt.Sprintf("%s(%d,%d)", n.Term.Name(), n.From, n.To)
	case EpsilonKind:
		return fmt.Sprintf("ε(%d,%d)", n.From, n.To)
	default:
		return fmt.Sprintf("I[%s,%d](%d,%d)", n.Item.LHS().Name(), n.Item.Dot, n.From, n.To)
	}
}

// addFamily attaches a family to n unless an identical one (same children,
// in order, same production) is already present.
func (n *Node) addFamily(children []*Node, production *grammar.Production) {
	for _, f := range n.Families {
		if sameFamily(f, children, production) {
			return
		}
	}
	n.Families = append(n.Families, Family{Children: children, Production: production})
}

func sameFamily(f Family, children []*Node, production *grammar.Production) bool {
	if f.Production != production || len(f.Children) != len(children) {
		return false
	}
	for i := range children {
		if f.Children[i] != children[i] {
			return false
		}
	}
	return true
}

// nodeHash computes a stable string identity for a node's (kind, symbol,
// item, span) tuple, flattening every pointer field to a plain string or int
// first -- mirroring gorgo/lr/earley.go's structhash.Hash(anonymous struct)
// idiom -- so structhash never has to reflect into the potentially large,
// pointer-rich Production/Item graphs themselves.
func nodeHash(kind Kind, sym *symbol.Nonterminal, term *symbol.Terminal, item *earley.Item, from, to int) string {
	symName, termName, itemSig := "", "", ""
	if sym != nil {
		symName = sym.Name()
	}
	if term != nil {
		termName = term.Name()
	}
	if item != nil {
		itemSig = fmt.Sprintf("%p@%d", item.Production, item.Dot)
	}
	h, err := structhash.Hash(struct {
		Kind int
		Sym  string
		Term string
		Item string
		From int
		To   int
	}{int(kind), symName, termName, itemSig, from, to}, 1)
	if err != nil {
		panic(err)
	}
	return h
}
