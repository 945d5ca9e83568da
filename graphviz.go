package machine

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// ToDOT generates a DOT language string representation of the machine's
// transition graph for visualization. Guarded transitions render as dashed
// red edges, ignored triggers as dotted gray self-loops, and the current
// state is highlighted.
func (m *Machine[S, T]) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph machine {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", m.initial.state))

	grouped := g.NewMap[g.Pair[S, S], g.Slice[g.String]]()
	ignored := g.NewMap[S, g.Slice[g.String]]()

	for _, rep := range m.cfg.states.Iter() {
		for tr := range rep.triggers.Iter() {
			label := g.Format("{}", tr.trigger)
			if tr.guard != nil {
				label += " (guarded)"
			}

			if tr.dest.IsNone() {
				ignored.Entry(rep.state).
					AndModify(func(s *g.Slice[g.String]) { s.Push(label) }).
					OrInsert(g.SliceOf(label))

				continue
			}

			key := g.Pair[S, S]{Key: rep.state, Value: tr.dest.Some()}
			grouped.Entry(key).
				AndModify(func(s *g.Slice[g.String]) { s.Push(label) }).
				OrInsert(g.SliceOf(label))
		}
	}

	states := m.cfg.states.Keys()
	states.SortBy(func(a, b S) cmp.Ordering {
		return cmp.Cmp(g.Format("{}", a), g.Format("{}", b))
	})

	outgoing := g.NewSet[S]()
	for p := range grouped.Keys().Iter() {
		outgoing.Insert(p.Key)
	}

	for state := range states.Iter() {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", state))

		switch {
		case state == m.current.state:
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		case !outgoing.Contains(state):
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		}

		var tooltips g.Slice[g.String]

		rep := m.cfg.states.Get(state).Some()
		if rep.onEntry.NotEmpty() {
			tooltips.Push("OnEntry")
		}

		if rep.onExit.NotEmpty() {
			tooltips.Push("OnExit")
		}

		if tooltips.NotEmpty() {
			attrs.Push(g.Format("tooltip=\"{}\"", tooltips.Join("\\n")))
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", state, attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for pair, labels := range grouped.Iter() {
		from, to := pair.Key, pair.Value

		var edge g.Slice[g.String]
		label := labels.Join("\\n")

		edge.Push(g.Format("label=\" {} \"", label))

		if label.Contains("(guarded)") {
			edge.Push("style=dashed", "color=red", "arrowhead=odiamond")
		}

		b.WriteString(g.Format("  \"{}\" -> \"{}\" [{}];\n", from, to, edge.Join(", ")))
	}

	for state, labels := range ignored.Iter() {
		b.WriteString(g.Format(
			"  \"{}\" -> \"{}\" [label=\" {} (ignored) \", style=dotted, color=gray];\n",
			state, state, labels.Join("\\n")))
	}

	b.WriteString("}\n")

	return b.String()
}
