package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ioxu/boxer/pkg/container"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds geometry and, for splits, the ratio to node labels.
	// When false only the name is shown.
	Detailed bool

	// Holes draws empty slots.
	Holes bool

	// ViewName, if set, returns the view shown in a leaf. Leaves with a
	// non-empty result get it as an extra label line.
	ViewName func(c *container.Container) string
}

// ToDOT converts the tree under root to Graphviz DOT source. Run Update on
// the tree first so ids and geometry are current.
func ToDOT(root *container.Container, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph boxer {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	root.Walk(func(c *container.Container) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", c.UID.String(), strings.Join(fmtAttrs(c, opts), ", "))
		for i := range c.ChildCount() {
			child := c.Child(i)
			if child != nil {
				edges = append(edges, fmt.Sprintf("  %q -> %q [label=%q];\n", c.UID.String(), child.UID.String(), strconv.Itoa(i)))
				continue
			}
			if opts.Holes {
				hole := fmt.Sprintf("%s/%d", c.UID, i)
				fmt.Fprintf(&buf, "  %q [shape=point, style=dashed, label=\"\"];\n", hole)
				edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed, label=%q];\n", c.UID.String(), hole, strconv.Itoa(i)))
			}
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c *container.Container, opts Options) string {
	lines := []string{c.Name}
	if opts.Detailed {
		lines = append(lines, fmt.Sprintf("%s #%d", c.Kind(), c.ID()))
		p := c.Position()
		lines = append(lines, fmt.Sprintf("%gx%g @ %g,%g", c.Width(), c.Height(), p.X, p.Y))
		if c.IsSplit() {
			lines = append(lines, fmt.Sprintf("ratio %.3f", c.Ratio()))
		}
	}
	if opts.ViewName != nil && c.IsLeaf() {
		if v := opts.ViewName(c); v != "" {
			lines = append(lines, "["+v+"]")
		}
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(c *container.Container, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, opts))}
	switch {
	case c.IsLeaf():
		attrs = append(attrs, "fillcolor=lightblue")
	case c.IsSplit():
		attrs = append(attrs, "peripheries=2", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from the
// origin of its view box.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
