package inspect

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lamafmt/pkg/layout"
)

// ToDOT returns a Graphviz DOT representation of the node tree of f.
//
// Line nodes are boxes labelled with their text. Combinator nodes are
// ellipses labelled with their kind and measures; fill and indent nodes also
// show their shift. Shared subtrees are drawn once per reference.
func ToDOT(f *layout.Format) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	if f != nil {
		writeNode(&buf, f, 0)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, f *layout.Format, id int) int {
	nodeID := fmt.Sprintf("n%d", id)
	next := id + 1

	switch f.Kind() {
	case layout.KindLine, layout.KindRaw:
		fmt.Fprintf(buf, "  %s [label=%q, shape=box, style=\"filled,rounded\"];\n", nodeID, f.Literal())
	case layout.KindEmpty:
		fmt.Fprintf(buf, "  %s [label=\"empty\", shape=point];\n", nodeID)
	default:
		label := fmt.Sprintf("%s\n%s", f.Kind(), f.Measures)
		if k := f.Kind(); k == layout.KindFill || k == layout.KindIndent {
			label = fmt.Sprintf("%s %d\n%s", k, f.Shift(), f.Measures)
		}
		fmt.Fprintf(buf, "  %s [label=%q, shape=ellipse];\n", nodeID, label)
		for _, c := range f.Children() {
			fmt.Fprintf(buf, "  %s -> n%d;\n", nodeID, next)
			next = writeNode(buf, c, next)
		}
	}
	return next
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
