package cnf

import (
	"fmt"

	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/symbol"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer traces with key 'pcfg.cnf'.
func tracer() tracing.Trace {
	return tracing.Select("pcfg.cnf")
}

// workRule is a production under construction during normalization: unlike
// grammar.Production its RHS is mutated in place by TERM and BIN, so the
// pipeline clones into this shape once up front and never touches the
// caller's grammar.
type workRule struct {
	lhs    *symbol.Nonterminal
	rhs    symbol.Sentence
	weight float64
}

// Normalizer applies the START/TERM/BIN/DEL/UNIT pipeline, the weighted
// probabilistic generalization of `ling0322/pcfg`'s ConvertToCNF, to a
// grammar.Grammar, producing a Grammar in Chomsky Normal Form.
//
// A Normalizer owns the symbol table it mints fresh nonterminals from;
// that minting state lives on the table (symbol.Table.FreshNonterminal)
// rather than on the Normalizer itself, so that fresh names stay unique
// across repeated normalization calls sharing one table.
type Normalizer struct {
	table *symbol.Table

	// Simplify is carried as a caller-visible setting but is not consulted
	// by Normalize: all five steps, UNIT included, run whatever its value.
	Simplify bool
}

// NewNormalizer creates a Normalizer that mints fresh nonterminals from table.
func NewNormalizer(table *symbol.Table) *Normalizer {
	return &Normalizer{table: table}
}

// Normalize runs START, TERM, BIN, DEL, UNIT in order and returns the
// resulting CNF Grammar.
func (n *Normalizer) Normalize(g *grammar.Grammar) (*Grammar, error) {
	rules := cloneRules(g)

	rules, start := n.start(rules, g.Start)
	tracer().Debugf("cnf: START introduced %s", start.Name())

	rules = n.term(rules)
	tracer().Debugf("cnf: TERM produced %d rules", len(rules))

	rules = n.bin(rules)
	tracer().Debugf("cnf: BIN produced %d rules", len(rules))

	rules, emptyWeight := n.del(rules, start)
	tracer().Debugf("cnf: DEL produced %d rules, empty weight %f", len(rules), emptyWeight)

	rules = n.unit(rules)
	tracer().Debugf("cnf: UNIT produced %d rules", len(rules))

	return assemble(start, rules, emptyWeight)
}

func cloneRules(g *grammar.Grammar) []workRule {
	rules := make([]workRule, 0, len(g.Productions()))
	for _, p := range g.Productions() {
		rules = append(rules, workRule{
			lhs:    p.LHS,
			rhs:    append(symbol.Sentence(nil), p.RHS...),
			weight: p.Weight,
		})
	}
	return rules
}

// start introduces a fresh start symbol S0 -> S (weight 1); S0 never occurs
// on any RHS afterwards since it is never referenced by the cloned rules.
func (n *Normalizer) start(rules []workRule, s *symbol.Nonterminal) ([]workRule, *symbol.Nonterminal) {
	s0 := n.table.FreshNonterminal("start")
	rules = append(rules, workRule{lhs: s0, rhs: symbol.Sentence{symbol.N(s)}, weight: 1})
	return rules, s0
}

// term allocates, per-terminal, one fresh nonterminal N_t -> t (weight 1)
// and substitutes N_t for every occurrence of t inside a RHS of length >= 2.
// Solitary terminals (RHS length 1) are left untouched.
func (n *Normalizer) term(rules []workRule) []workRule {
	substitutes := make(map[*symbol.Terminal]*symbol.Nonterminal)
	out := make([]workRule, 0, len(rules))
	for _, r := range rules {
		if len(r.rhs) < 2 {
			out = append(out, r)
			continue
		}
		rhs := make(symbol.Sentence, len(r.rhs))
		for i, w := range r.rhs {
			if w.IsNonterminal() {
				rhs[i] = w
				continue
			}
			t := w.Terminal()
			nt, ok := substitutes[t]
			if !ok {
				nt = n.table.FreshNonterminal(fmt.Sprintf("term_%s", t.Name()))
				substitutes[t] = nt
			}
			rhs[i] = symbol.N(nt)
		}
		out = append(out, workRule{lhs: r.lhs, rhs: rhs, weight: r.weight})
	}
	for t, nt := range substitutes {
		out = append(out, workRule{lhs: nt, rhs: symbol.Sentence{symbol.T(t)}, weight: 1})
	}
	return out
}

// bin replaces A -> X1 X2 ... Xk (k >= 3) with a right-branching chain of
// binary rules, carrying the original weight on the chain's head and
// weight 1 on every intermediate link.
func (n *Normalizer) bin(rules []workRule) []workRule {
	out := make([]workRule, 0, len(rules))
	for _, r := range rules {
		if len(r.rhs) < 3 {
			out = append(out, r)
			continue
		}
		k := len(r.rhs)
		lhs := r.lhs
		weight := r.weight
		// Chain: A -> X1 F1 (weight), F1 -> X2 F2 (1), ..., F_{k-2} -> X_{k-1} X_k (1).
		chain := make([]*symbol.Nonterminal, k-2)
		for i := range chain {
			chain[i] = n.table.FreshNonterminal(fmt.Sprintf("bin_%s", lhs.Name()))
		}
		out = append(out, workRule{lhs: lhs, rhs: symbol.Sentence{r.rhs[0], symbol.N(chain[0])}, weight: weight})
		for i := 0; i < k-3; i++ {
			out = append(out, workRule{lhs: chain[i], rhs: symbol.Sentence{r.rhs[i+1], symbol.N(chain[i+1])}, weight: 1})
		}
		out = append(out, workRule{lhs: chain[k-3], rhs: symbol.Sentence{r.rhs[k-2], r.rhs[k-1]}, weight: 1})
	}
	return out
}

// nullableProbabilities computes p_null(A) for every nonterminal appearing
// in rules, by the same worklist fixpoint grammar.Grammar.NullableProbabilities
// uses: seed on explicit epsilon rules, propagate through rules whose RHS is
// entirely (already) nullable nonterminals, normalizing each accumulation by
// the nonterminal's total production weight. Kept as a package-local
// function (rather than reusing grammar.Grammar) because DEL must run this
// analysis against the TERM/BIN-rewritten working set, which has no
// grammar.Grammar to wrap it in.
func nullableProbabilities(rules []workRule) map[*symbol.Nonterminal]float64 {
	totalWeight := make(map[*symbol.Nonterminal]float64)
	occursIn := make(map[*symbol.Nonterminal][]*workRule)
	for i := range rules {
		r := &rules[i]
		totalWeight[r.lhs] += r.weight
		for _, w := range r.rhs {
			if w.IsNonterminal() {
				occursIn[w.Nonterminal()] = append(occursIn[w.Nonterminal()], r)
			}
		}
	}

	accumulated := make(map[*symbol.Nonterminal]float64)
	seen := make(map[*symbol.Nonterminal]bool)
	var worklist []*symbol.Nonterminal
	for i := range rules {
		r := &rules[i]
		if len(r.rhs) == 0 {
			accumulated[r.lhs] += r.weight
			if !seen[r.lhs] {
				seen[r.lhs] = true
				worklist = append(worklist, r.lhs)
			}
		}
	}
	nullable := make(map[*symbol.Nonterminal]float64)
	for a, w := range accumulated {
		if totalWeight[a] > 0 {
			nullable[a] = w / totalWeight[a]
		}
	}

	processed := make(map[*workRule]bool)
	for len(worklist) > 0 {
		b := worklist[0]
		worklist = worklist[1:]
		for _, r := range occursIn[b] {
			if processed[r] || len(r.rhs) == 0 {
				continue
			}
			allNullable := true
			prob := 1.0
			for _, w := range r.rhs {
				if w.IsTerminal() {
					allNullable = false
					break
				}
				p, ok := nullable[w.Nonterminal()]
				if !ok {
					allNullable = false
					break
				}
				prob *= p
			}
			if !allNullable {
				continue
			}
			processed[r] = true
			if totalWeight[r.lhs] > 0 {
				nullable[r.lhs] += (r.weight / totalWeight[r.lhs]) * prob
			}
			if !seen[r.lhs] {
				seen[r.lhs] = true
				worklist = append(worklist, r.lhs)
			}
		}
	}
	return nullable
}

// del eliminates epsilon rules. For each rule A -> beta it enumerates every
// with/without variant over beta's nullable nonterminal occurrences; the
// "without" variant's weight is multiplied by that occurrence's nullable
// probability, while the "with" variant's weight is left unchanged -- the
// asymmetry the design notes call out (it should, for an unbiased rewrite,
// multiply the "with" variant by 1-p_null, but the documented behavior this
// implementation preserves does not). Any variant that degenerates to A->ε
// is dropped (weight lost) unless A is start, in which case the weight
// feeds the returned empty-weight bucket instead.
func (n *Normalizer) del(rules []workRule, start *symbol.Nonterminal) ([]workRule, float64) {
	nullable := nullableProbabilities(rules)
	emptyWeight := 0.0
	out := make([]workRule, 0, len(rules))

	for _, r := range rules {
		type occurrence struct {
			pos int
			p   float64
		}
		var occ []occurrence
		for i, w := range r.rhs {
			if w.IsNonterminal() {
				if p, ok := nullable[w.Nonterminal()]; ok && p > 0 {
					occ = append(occ, occurrence{pos: i, p: p})
				}
			}
		}
		m := len(occ)
		for mask := 0; mask < (1 << uint(m)); mask++ {
			weight := r.weight
			skip := make(map[int]bool, m)
			for bit := 0; bit < m; bit++ {
				if mask&(1<<uint(bit)) != 0 {
					skip[occ[bit].pos] = true
					weight *= occ[bit].p
				}
			}
			var rhs symbol.Sentence
			for i, w := range r.rhs {
				if !skip[i] {
					rhs = append(rhs, w)
				}
			}
			if len(rhs) == 0 {
				if r.lhs == start {
					emptyWeight += weight
				}
				continue
			}
			out = append(out, workRule{lhs: r.lhs, rhs: rhs, weight: weight})
		}
	}
	return out, emptyWeight
}

func ruleKey(lhs *symbol.Nonterminal, rhs symbol.Sentence) string {
	key := lhs.Name() + "->"
	for _, w := range rhs {
		key += "|" + w.String()
	}
	return key
}

// unit eliminates unit rules A -> B. Self-loops are dropped outright; equal
// (lhs, rhs) rules are merged by summing weights; a deleted-set of (A, B)
// pairs prevents a unit rule from being regenerated once eliminated.
func (n *Normalizer) unit(rules []workRule) []workRule {
	agg := make(map[string]*workRule)
	var order []string

	add := func(lhs *symbol.Nonterminal, rhs symbol.Sentence, weight float64) {
		if len(rhs) == 1 && rhs[0].IsNonterminal() && rhs[0].Nonterminal() == lhs {
			return
		}
		key := ruleKey(lhs, rhs)
		if r, ok := agg[key]; ok {
			r.weight += weight
			return
		}
		agg[key] = &workRule{lhs: lhs, rhs: rhs, weight: weight}
		order = append(order, key)
	}
	for _, r := range rules {
		add(r.lhs, r.rhs, r.weight)
	}

	deleted := make(map[string]bool)
	for {
		var unitKey string
		var a, b *symbol.Nonterminal
		var w float64
		found := false
		for _, k := range order {
			r, ok := agg[k]
			if !ok {
				continue
			}
			if len(r.rhs) == 1 && r.rhs[0].IsNonterminal() {
				a, b, w = r.lhs, r.rhs[0].Nonterminal(), r.weight
				unitKey = k
				found = true
				break
			}
		}
		if !found {
			break
		}
		delete(agg, unitKey)
		dkey := a.Name() + "->" + b.Name()
		if deleted[dkey] {
			continue
		}
		deleted[dkey] = true

		total := 0.0
		var bRules []*workRule
		for _, k := range order {
			r, ok := agg[k]
			if !ok || r.lhs != b {
				continue
			}
			total += r.weight
			bRules = append(bRules, r)
		}
		if total == 0 {
			continue
		}
		for _, br := range bRules {
			if len(br.rhs) == 1 && br.rhs[0].IsNonterminal() {
				tkey := a.Name() + "->" + br.rhs[0].Nonterminal().Name()
				if deleted[tkey] {
					continue
				}
			}
			add(a, br.rhs, w*(br.weight/total))
		}
	}

	out := make([]workRule, 0, len(agg))
	for _, k := range order {
		if r, ok := agg[k]; ok {
			out = append(out, *r)
		}
	}
	return out
}

// assemble partitions the final working rules into Binary/Terminal
// Productions and wraps them, together with the empty weight, into a Grammar.
func assemble(start *symbol.Nonterminal, rules []workRule, emptyWeight float64) (*Grammar, error) {
	productions := make([]*Production, 0, len(rules))
	for _, r := range rules {
		switch len(r.rhs) {
		case 1:
			if !r.rhs[0].IsTerminal() {
				return nil, errors.Wrapf(ErrNotCNF, "unresolved unit rule %s survived UNIT", r.lhs.Name())
			}
			productions = append(productions, NewTerminal(r.lhs, r.rhs[0].Terminal(), r.weight))
		case 2:
			if r.rhs[0].IsTerminal() || r.rhs[1].IsTerminal() {
				return nil, errors.Wrapf(ErrNotCNF, "non-binary rule %s survived TERM", r.lhs.Name())
			}
			productions = append(productions, NewBinary(r.lhs, r.rhs[0].Nonterminal(), r.rhs[1].Nonterminal(), r.weight))
		default:
			return nil, errors.Wrapf(ErrNotCNF, "rule %s has RHS length %d after normalization", r.lhs.Name(), len(r.rhs))
		}
	}
	return New(start, productions, emptyWeight)
}
