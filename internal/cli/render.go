package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notewerk/blocktree/pkg/block"
	"github.com/notewerk/blocktree/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	root    string   // root block ID (defaults to first parentless block)
	formats []string // output formats: "md", "html", "dot", "svg"
	stdout  bool     // write single artifact to stdout instead of a file
	noCache bool     // disable the render cache
	refresh bool     // bypass the cache and recompute
}

// renderCommand creates the render command for converting graph files.
//
// Default settings:
//   - format: md
//   - root: the first parentless block in the graph
//   - output: input path with the format extension
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a block graph file into document formats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.stdout && len(opts.formats) > 1 {
				return fmt.Errorf("--stdout requires a single format")
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): md (default), html, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "root block ID (default: first parentless block)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write to stdout instead of a file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runRender loads the graph from input and renders it to the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	g, err := block.ReadGraphFile(input)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Loaded graph: %d blocks", len(g))

	rootID := opts.root
	if rootID == "" {
		rootID = findRoot(g)
	}
	if rootID == "" {
		return fmt.Errorf("%s: no parentless block found; use --root", input)
	}
	if _, ok := g.Block(rootID); !ok {
		return fmt.Errorf("root block %q not found in %s", rootID, input)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, g, pipeline.Options{
		RootID:  rootID,
		Formats: opts.formats,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))

	if opts.stdout {
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + outputExt(format)
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifacts[format]); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.BlockCount, result.CacheInfo.RenderHit)
	return nil
}

// findRoot returns the first parentless block in deterministic ID order.
func findRoot(g block.Graph) string {
	for _, id := range g.IDs() {
		if b, ok := g.Block(id); ok && b.ParentID == "" {
			return id
		}
	}
	return ""
}
