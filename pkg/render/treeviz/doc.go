// Package treeviz renders a container tree for debugging.
//
// # Overview
//
// Two outputs are provided:
//
//   - [WriteText] prints an indented outline of the tree with each node's
//     depth, pass id, name, kind, size and position.
//   - [ToDOT] produces Graphviz DOT source with one box per container and
//     an edge per occupied slot, which [RenderSVG] turns into SVG.
//
// # Usage
//
//	root.Update()
//	treeviz.WriteText(os.Stdout, root)
//
//	dot := treeviz.ToDOT(root, treeviz.Options{Detailed: true})
//	svg, err := treeviz.RenderSVG(ctx, dot)
//
// [Renderer] memoizes SVG output in a [cache.Cache] keyed by the DOT source.
//
// # DOT Format
//
// Nodes are keyed by container UID, so names need not be unique. Leaves are
// filled, split containers are drawn with a double border, and empty slots
// left by removals appear as small dashed points when [Options.Holes] is
// set. The layout is top-to-bottom (rankdir=TB) with children in slot order.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package treeviz
