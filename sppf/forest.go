package sppf

import (
	"github.com/npillmayer/pcfg/earley"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/symbol"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.sppf'.
func tracer() tracing.Trace {
	return tracing.Select("pcfg.sppf")
}

// Forest is a Shared Packed Parse Forest: a DAG of interned Nodes rooted at
// the grammar's start symbol spanning the whole input. Nodes are owned
// exclusively by their Forest.
type Forest struct {
	nodes   map[string]*Node
	root    *Node
	grammar *grammar.Grammar
}

// Root returns the forest's root SymbolNode, or nil if the forest is empty.
// Returns interface{} to satisfy the core Parser capability's Forest
// contract structurally without this package depending on it.
func (f *Forest) Root() interface{} {
	if f == nil || f.root == nil {
		return nil
	}
	return f.root
}

// RootNode returns the forest's root SymbolNode with its concrete type, for
// callers inside this module that need to walk it directly (the
// probability fixpoint, tests).
func (f *Forest) RootNode() *Node {
	if f == nil {
		return nil
	}
	return f.root
}

func newForest(g *grammar.Grammar) *Forest {
	return &Forest{nodes: make(map[string]*Node), grammar: g}
}

func (f *Forest) internSymbol(sym *symbol.Nonterminal, from, to int) *Node {
	key := nodeHash(SymbolKind, sym, nil, nil, from, to)
	if n, ok := f.nodes[key]; ok {
		return n
	}
	n := &Node{Kind: SymbolKind, Sym: sym, From: from, To: to}
	f.nodes[key] = n
	return n
}

func (f *Forest) internIntermediate(item *earley.Item, from, to int) *Node {
	key := nodeHash(IntermediateKind, nil, nil, item, from, to)
	if n, ok := f.nodes[key]; ok {
		return n
	}
	n := &Node{Kind: IntermediateKind, Item: item, From: from, To: to}
	f.nodes[key] = n
	return n
}

func (f *Forest) internTerminal(t *symbol.Terminal, from, to int) *Node {
	key := nodeHash(TerminalKind, nil, t, nil, from, to)
	if n, ok := f.nodes[key]; ok {
		return n
	}
	n := &Node{Kind: TerminalKind, Term: t, From: from, To: to}
	f.nodes[key] = n
	return n
}

func (f *Forest) internEpsilon(at int) *Node {
	key := nodeHash(EpsilonKind, nil, nil, nil, at, at)
	if n, ok := f.nodes[key]; ok {
		return n
	}
	n := &Node{Kind: EpsilonKind, From: at, To: at}
	f.nodes[key] = n
	return n
}

// processKey identifies one (item, chart position) pair so recursion can
// break cycles through nullable derivations.
type processKey struct {
	item *earley.Item
	at   int
}

type builder struct {
	forest    *Forest
	processed map[processKey]bool
}

// Build constructs the SPPF for a recognized sentence of length n, given
// the successful top-level items Recognize returned and the grammar they
// were recognized against (needed to normalize production weights into
// probabilities during fixpoint evaluation). Returns nil if successes is
// empty (no forest for a rejected sentence).
func Build(g *grammar.Grammar, successes []*earley.Item, n int) *Forest {
	if len(successes) == 0 {
		return nil
	}
	b := &builder{forest: newForest(g), processed: make(map[processKey]bool)}
	var root *Node
	for _, item := range successes {
		root = b.process(item, n)
	}
	b.forest.root = root
	b.forest.AssignIDs()
	return b.forest
}

// process builds (or returns the already-built) node for item as it
// appears in state `at`, attaching whatever families its shape prescribes.
// Node kind is decided solely by whether item is complete: complete items
// produce SymbolNodes, partial items produce IntermediateNodes -- "dot = 1"
// is just a family shape, not a distinct node kind.
func (b *builder) process(item *earley.Item, at int) *Node {
	rhs := item.Production.RHS
	var node *Node
	if item.IsComplete() {
		node = b.forest.internSymbol(item.LHS(), item.Origin, at)
	} else {
		node = b.forest.internIntermediate(item, item.Origin, at)
	}

	key := processKey{item, at}
	if b.processed[key] {
		return node
	}
	b.processed[key] = true

	switch {
	case len(rhs) == 0:
		eps := b.forest.internEpsilon(at)
		b.annotate(node, []*Node{eps}, item)

	case item.Dot == 1:
		prev := rhs[0]
		if prev.IsTerminal() {
			term := b.forest.internTerminal(prev.Terminal(), at-1, at)
			b.annotate(node, []*Node{term}, item)
		} else {
			c := prev.Nonterminal()
			csym := b.forest.internSymbol(c, item.Origin, at)
			b.annotate(node, []*Node{csym}, item)
			for _, red := range item.Reductions {
				if red.Label == item.Origin {
					b.process(red.Target, at)
				}
			}
		}

	default:
		prev := rhs[item.Dot-1]
		if prev.IsTerminal() {
			v := b.forest.internTerminal(prev.Terminal(), at-1, at)
			for _, pred := range item.Predecessors {
				if pred.Label != at-1 {
					continue
				}
				w := b.process(pred.Target, at-1)
				b.annotate(node, []*Node{w, v}, item)
			}
		} else {
			for _, red := range item.Reductions {
				l := red.Label
				v := b.process(red.Target, at)
				for _, pred := range item.Predecessors {
					if pred.Label != l {
						continue
					}
					w := b.process(pred.Target, l)
					b.annotate(node, []*Node{w, v}, item)
				}
			}
		}
	}
	return node
}

// annotate attaches a family to node, carrying item's production only when
// the family is a SymbolNode's single-child family (it equals item's own
// expansion directly -- we have the item in hand so there is no need to
// look the production up by lhs/rhs), or when node is an IntermediateNode
// whose item has advanced to the rule's final split point (dot ==
// len(rhs)-1). A SymbolNode's 2-child family and every other intermediate
// family stay transparent (nil production): the rule's weight already
// lives on the root-split IntermediateNode, and tagging it again here would
// multiply it in twice.
func (b *builder) annotate(node *Node, children []*Node, item *earley.Item) {
	var production *grammar.Production
	switch node.Kind {
	case SymbolKind:
		if len(children) == 1 {
			production = item.Production
		}
	case IntermediateKind:
		if item.Dot == len(item.Production.RHS)-1 {
			production = item.Production
		}
	}
	node.addFamily(children, production)
}

// AssignIDs walks the forest once in preorder from its root, assigning each
// reachable node a stable integer id. Already-visited nodes (the DAG's
// shared substructure) are not revisited.
func (f *Forest) AssignIDs() {
	if f.root == nil {
		return
	}
	next := 1
	visited := make(map[*Node]bool)
	var walk func(*Node)
	walk = func(n *Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		n.ID = next
		next++
		for _, fam := range n.Families {
			for _, c := range fam.Children {
				walk(c)
			}
		}
	}
	walk(f.root)
	tracer().Debugf("forest: assigned %d ids", next-1)
}
