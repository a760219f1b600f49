package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/errors"
	"github.com/ioxu/boxer/pkg/inspect"
	"github.com/ioxu/boxer/pkg/render/treeviz"
	"github.com/ioxu/boxer/pkg/view"
)

// Output formats for the layout command.
const (
	formatText = "text"
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

type layoutOptions struct {
	format    string
	output    string
	steps     []string
	subdivide int
	alternate bool
	holes     bool
	noCache   bool
}

// layoutCommand creates the layout command for building and printing a tree.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOptions

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Build a container tree and print it",
		Long: `Build a container tree and print it.

The tree starts from the configured root. Startup steps from the configuration
run first, then --subdivide, then every --step in order. A step is
LEAF:ACTION or LEAF:view=NAME, where LEAF indexes the leaves in pre-order as
they are when the step runs.

  boxer layout --step 0:split-horizontal --step 1:split-vertical --step 0:view=graph
  boxer layout --subdivide 3 --alternate -f svg -o tree.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, json, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringArrayVarP(&opts.steps, "step", "s", nil, "step to run, LEAF:ACTION or LEAF:view=NAME (repeatable)")
	cmd.Flags().IntVar(&opts.subdivide, "subdivide", 0, "split the root leaf recursively this many levels")
	cmd.Flags().BoolVar(&opts.alternate, "alternate", false, "alternate split axes when subdividing")
	cmd.Flags().BoolVar(&opts.holes, "holes", false, "show empty slots in DOT and SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render SVG without the render cache")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]cobra.Completion{formatText, formatJSON, formatDOT, formatSVG}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("step", completeStep)

	return cmd
}

// runLayout builds the tree, runs the steps and writes the requested format.
func (c *CLI) runLayout(ctx context.Context, opts layoutOptions) error {
	logger := loggerFromContext(ctx)

	switch opts.format {
	case formatText, formatJSON, formatDOT, formatSVG:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q", opts.format)
	}
	if opts.subdivide < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--subdivide must not be negative")
	}
	steps, err := parseSteps(opts.steps)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	t, err := newTree(cfg, logger)
	if err != nil {
		return err
	}
	if err := t.run(cfg.Startup); err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	if opts.subdivide > 0 {
		if _, err := container.Subdivide(t.root.Leaves()[0], opts.subdivide, opts.alternate); err != nil {
			return fmt.Errorf("subdivide: %w", err)
		}
		t.sync()
	}
	if err := t.run(steps); err != nil {
		return err
	}

	data, err := renderTree(ctx, t, opts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", opts.output, err)
	}

	printSuccess("Layout complete")
	printFile(opts.output)
	printStats(t.nodeCount(), len(t.root.Leaves()), t.reg.Len())
	if n := viewStats.created.Load(); n > 0 {
		printKeyValue("view events", fmt.Sprintf("%d created · %d migrated · %d discarded",
			n, viewStats.migrated.Load(), viewStats.discarded.Load()))
	}
	printNewline()
	printNextStep("Edit interactively", appName+" edit")
	return nil
}

func renderTree(ctx context.Context, t *tree, opts layoutOptions) ([]byte, error) {
	var buf bytes.Buffer
	switch opts.format {
	case formatText:
		if err := writeText(&buf, t); err != nil {
			return nil, err
		}
	case formatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(inspect.Snapshot(t.root, t.reg.ViewName)); err != nil {
			return nil, fmt.Errorf("encode tree: %w", err)
		}
	case formatDOT:
		buf.WriteString(dotOf(t, opts.holes))
	case formatSVG:
		c, err := svgCache(opts.noCache)
		if err != nil {
			return nil, err
		}
		defer c.Close()

		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		prog := newProgress(loggerFromContext(ctx))
		svg, hit, err := treeviz.NewRenderer(c).SVG(ctx, dotOf(t, opts.holes))
		if err != nil {
			spinner.StopWithError("Render failed")
			return nil, fmt.Errorf("render svg: %w", err)
		}
		spinner.Stop()
		if hit {
			prog.done("Loaded SVG from cache")
		} else {
			prog.done("Rendered SVG")
		}
		buf.Write(svg)
	}
	return buf.Bytes(), nil
}

func dotOf(t *tree, holes bool) string {
	return treeviz.ToDOT(t.root, treeviz.Options{Detailed: true, Holes: holes, ViewName: t.reg.ViewName})
}

// writeText prints the outline followed by one line per leaf view.
func writeText(w io.Writer, t *tree) error {
	if err := treeviz.WriteText(w, t.root); err != nil {
		return err
	}
	var err error
	t.reg.Each(func(c *container.Container, _ view.View) {
		if err == nil {
			_, err = fmt.Fprintf(w, "view %s: %s\n", c.Name, t.reg.ViewName(c))
		}
	})
	return err
}
