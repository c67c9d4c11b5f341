package earley

import (
	"bytes"
	"fmt"
)

func (it *Item) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s ->", it.LHS().Name())
	for i, w := range it.Production.RHS {
		if i == it.Dot {
			b.WriteString(" .")
		}
		fmt.Fprintf(&b, " %s", w.String())
	}
	if it.Dot == len(it.Production.RHS) {
		b.WriteString(" .")
	}
	fmt.Fprintf(&b, " (%d)", it.Origin)
	return b.String()
}

func dumpState(states []*StateSet, stateno int) {
	tracer().Debugf("--- State %04d ------------------------------------", stateno)
	S := states[stateno]
	n := 1
	S.Each(func(item *Item) {
		tracer().Debugf("[%2d] %s", n, item)
		n++
	})
}

func stateSetString(S *StateSet) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	S.Each(func(item *Item) {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	})
	b.WriteString(" }")
	return b.String()
}
