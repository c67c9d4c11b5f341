package sppf

import "math"

// fixpointTolerance is the convergence threshold the probability fixpoint
// is iterated to: 1e-15 absolute.
const fixpointTolerance = 1e-15

// Probability evaluates the forest's root probability by iterating a
// fixpoint: start every node at probability 1, repeatedly recompute each
// node as the sum over its families of (production probability, or 1 if
// untagged) times the product of its children's current probabilities,
// clamped to [0, 1], until no node's estimate decreases by more than
// fixpointTolerance. An estimate that ever increases is a monotonicity
// violation and is treated as fatal.
func (f *Forest) Probability() float64 {
	if f == nil || f.root == nil {
		return 0
	}
	nodes := f.collectNodes()
	current := make(map[*Node]float64, len(nodes))
	for _, n := range nodes {
		current[n] = 1
	}

	for {
		next := make(map[*Node]float64, len(nodes))
		maxDrop := 0.0
		for _, n := range nodes {
			p := f.evaluate(n, current)
			if p > current[n]+fixpointTolerance {
				panic("sppf: probability fixpoint increased, monotonicity violated")
			}
			if drop := current[n] - p; drop > maxDrop {
				maxDrop = drop
			}
			next[n] = p
		}
		current = next
		if maxDrop <= fixpointTolerance {
			break
		}
	}
	return current[f.root]
}

func (f *Forest) evaluate(n *Node, current map[*Node]float64) float64 {
	if len(n.Families) == 0 {
		return 1 // leaves: TerminalNode, EpsilonNode, and childless nodes
	}
	total := 0.0
	for _, fam := range n.Families {
		weight := 1.0
		if fam.Production != nil {
			weight = f.grammar.Probability(fam.Production)
		}
		product := weight
		for _, c := range fam.Children {
			product *= current[c]
		}
		total += product
	}
	return clamp01(total)
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}

// collectNodes gathers every node reachable from the root, each exactly
// once, so the fixpoint iterates a dense node set rather than re-walking
// the DAG from scratch on every pass.
func (f *Forest) collectNodes() []*Node {
	var nodes []*Node
	visited := make(map[*Node]bool)
	var walk func(*Node)
	walk = func(n *Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		nodes = append(nodes, n)
		for _, fam := range n.Families {
			for _, c := range fam.Children {
				walk(c)
			}
		}
	}
	walk(f.root)
	return nodes
}
