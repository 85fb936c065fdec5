package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/observability"
	"github.com/pinmagik/pinmagik/pkg/project"
	"github.com/pinmagik/pinmagik/pkg/render"
	"github.com/pinmagik/pinmagik/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// validFormats is the set of supported diagram formats.
var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPDF: true, formatPNG: true}

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string  // output file path, "-" for stdout
	format   string  // dot, svg, pdf or png
	detailed bool    // include node settings in labels
	scale    float64 // PNG scale factor
}

func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatSVG, scale: 2}

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Draw the project's wiring diagram",
		Long: `Draw the project's wiring diagram with Graphviz. Nodes the code generator
skips because they never reach an output pin are drawn dashed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = strings.ToLower(opts.format)
			if !validFormats[opts.format] {
				return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", opts.format)
			}
			p, err := c.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), p, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (- for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, pdf, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node settings")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	return cmd
}

func (c *CLI) runGraph(ctx context.Context, p *project.Project, opts graphOpts) error {
	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: opts.detailed, Names: c.kindName})

	data, err := c.renderDiagram(ctx, dot, opts)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(p.Filename(), filepath.Ext(p.Filename())) + "." + opts.format
	}
	if out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess("Rendered %s diagram", opts.format)
	printFile(out)
	return nil
}

func (c *CLI) renderDiagram(ctx context.Context, dot string, opts graphOpts) ([]byte, error) {
	if opts.format == formatDOT {
		return []byte(dot), nil
	}

	spin := newSpinner(ctx, os.Stderr, "Rendering diagram...")
	spin.Start()
	prog := newProgress(c.Logger)

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err == nil {
		switch opts.format {
		case formatPDF:
			svg, err = render.ToPDF(ctx, svg)
		case formatPNG:
			svg, err = render.ToPNG(ctx, svg, opts.scale)
		}
	}
	observability.Project().OnRender(ctx, opts.format, len(svg), time.Since(prog.start), err)
	if err != nil {
		spin.StopWithError("Rendering failed")
		return nil, err
	}
	spin.Stop()
	prog.done("Rendered "+opts.format, "bytes", len(svg))
	return svg, nil
}
