package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
	"github.com/pinmagik/pinmagik/pkg/observability"
	"github.com/pinmagik/pinmagik/pkg/project"
)

type compileOpts struct {
	output string        // script path, "-" for stdout
	period time.Duration // loop period override
	target string        // banner target override
}

func (c *CLI) compileCommand() *cobra.Command {
	var opts compileOpts

	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Generate the Python control script",
		Long: `Generate the Python control script for a project. By default the script is
written next to the project with a .py extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.runCompile(cmd.Context(), p, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (- for stdout)")
	cmd.Flags().DurationVar(&opts.period, "period", 0, "loop period (default from config)")
	cmd.Flags().StringVar(&opts.target, "target", "", "target named in the script banner")
	return cmd
}

func (c *CLI) runCompile(ctx context.Context, p *project.Project, opts compileOpts) error {
	gen := c.Config.CodegenOptions()
	if opts.period > 0 {
		gen.Period = opts.period
	}
	if opts.target != "" {
		gen.Target = opts.target
	}

	prog := newProgress(c.Logger)
	script, err := p.Compile(gen)
	size := 0
	if script != nil {
		size = len(script.Text)
	}
	observability.Project().OnCompile(ctx, p.Type().Name, size, time.Since(prog.start), err)
	if err != nil {
		return err
	}
	prog.done("Compiled "+p.Filename(), "init_bytes", len(script.Init), "loop_bytes", len(script.Loop))

	if !hasWiredOutput(p.OutputNode()) {
		printWarning("no output pin is connected; the script only sets up GPIO")
	}

	out := opts.output
	if out == "" {
		out = scriptPath(p.Filename())
	}
	if out == "-" {
		_, err := os.Stdout.WriteString(script.Text)
		return err
	}
	if err := errors.ValidatePath(out); err != nil {
		return err
	}
	if err := os.WriteFile(out, []byte(script.Text), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", out)
	}
	printSuccess("Generated script")
	printFile(out)
	return nil
}

// scriptPath returns path with its extension replaced by .py.
func scriptPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".py"
}

func hasWiredOutput(n graph.Node) bool {
	for _, s := range n.Sinks() {
		if s.Connected() {
			return true
		}
	}
	return false
}
