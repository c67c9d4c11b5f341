package earley

import (
	"github.com/npillmayer/pcfg/earley/iteratable"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/symbol"
)

// itemKey identifies an item by (production, dot, origin) -- the identity
// StateSet deduplicates on, distinct from Go pointer identity so that
// predict/scan/complete can find and extend an already-present item
// instead of inserting a second copy with the same meaning.
type itemKey struct {
	production *grammar.Production
	dot        int
	origin     int
}

// StateSet is Si: a deduplicating, insertion-ordered container of Items,
// plus the bookkeeping the inner loop needs -- which nonterminals have
// already been predicted here, and which items were advanced eagerly over a
// nullable nonterminal ("magic items", revisited by a post-pass).
//
// Ordered storage and the Each traversal that completion's candidate search
// (Subset) is built on are delegated to iteratable.Set, mirroring how
// gorgo's earley.go uses its Set type for exactly that query.
type StateSet struct {
	set       *iteratable.Set
	index     map[itemKey]*Item
	predicted map[*symbol.Nonterminal]bool
	magic     []*Item
}

// NewStateSet creates an empty state set.
func NewStateSet() *StateSet {
	return &StateSet{
		set:       iteratable.NewSet(0),
		index:     make(map[itemKey]*Item),
		predicted: make(map[*symbol.Nonterminal]bool),
	}
}

// Insert returns the canonical item for (production, dot, origin), creating
// it if absent. The second result reports whether it was newly created.
func (ss *StateSet) Insert(production *grammar.Production, dot, origin int) (*Item, bool) {
	key := itemKey{production, dot, origin}
	if existing, ok := ss.index[key]; ok {
		return existing, false
	}
	item := &Item{Production: production, Dot: dot, Origin: origin}
	ss.index[key] = item
	ss.set.Add(item)
	return item, true
}

// Size returns the number of items currently in the set.
func (ss *StateSet) Size() int { return ss.set.Size() }

// IsEmpty reports whether the set holds no items.
func (ss *StateSet) IsEmpty() bool { return ss.Size() == 0 }

// IterateOnce resets iteration; items appended mid-loop are visited too,
// the classic Earley worklist discipline.
func (ss *StateSet) IterateOnce() { ss.set.IterateOnce() }

// Next advances the iteration cursor.
func (ss *StateSet) Next() bool { return ss.set.Next() }

// Current returns the item at the current cursor position.
func (ss *StateSet) Current() *Item {
	item, _ := ss.set.Item().(*Item)
	return item
}

// Each calls f once per item, in insertion order.
func (ss *StateSet) Each(f func(*Item)) {
	ss.set.Each(func(e interface{}) { f(e.(*Item)) })
}

// Subset returns every item satisfying pred, in insertion order.
func (ss *StateSet) Subset(pred func(*Item) bool) []*Item {
	var out []*Item
	ss.Each(func(it *Item) {
		if pred(it) {
			out = append(out, it)
		}
	})
	return out
}

// Predicted reports whether nt has already been predicted into this set.
func (ss *StateSet) Predicted(nt *symbol.Nonterminal) bool {
	return ss.predicted[nt]
}

// MarkPredicted records nt as predicted into this set.
func (ss *StateSet) MarkPredicted(nt *symbol.Nonterminal) {
	ss.predicted[nt] = true
}

// AddMagic records item as a magic item: one advanced eagerly over a
// nullable nonterminal during prediction, to be revisited by the post-pass
// that attaches reduction edges once completions for that nonterminal
// appear in the same state.
func (ss *StateSet) AddMagic(item *Item) {
	ss.magic = append(ss.magic, item)
}

// MagicItems returns every magic item recorded in this set.
func (ss *StateSet) MagicItems() []*Item {
	return ss.magic
}
