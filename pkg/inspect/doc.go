// Package inspect renders debug views of a layout.
//
// [Table] lists the measures of every candidate in a set, one row per
// candidate in frontier order. [ToDOT] draws the node tree of a single
// candidate as a Graphviz digraph, and [RenderSVG] turns that into an image
// using the embedded Graphviz library ([github.com/goccy/go-graphviz]).
package inspect
