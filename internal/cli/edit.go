package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinmagik/pinmagik/pkg/catalog"
	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
	"github.com/pinmagik/pinmagik/pkg/observability"
	"github.com/pinmagik/pinmagik/pkg/project"
)

// open loads the project at path and logs how long it took.
func (c *CLI) open(ctx context.Context, path string) (*project.Project, error) {
	prog := newProgress(c.Logger)
	p, err := project.Open(path, c.Registry)
	nodes := 0
	if p != nil {
		nodes = len(p.Nodes())
	}
	observability.Project().OnLoad(ctx, path, nodes, time.Since(prog.start), err)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded "+path, "type", p.Type().Name, "nodes", nodes)
	return p, nil
}

func (c *CLI) save(ctx context.Context, p *project.Project, path string) error {
	start := time.Now()
	err := p.Save(path)
	observability.Project().OnSave(ctx, p.Filename(), len(p.Nodes()), time.Since(start), err)
	return err
}

// edit loads path, applies fn and saves the result.
func (c *CLI) edit(ctx context.Context, path string, fn func(*project.Project) error) error {
	p, err := c.open(ctx, path)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return c.save(ctx, p, "")
}

func (c *CLI) kindName(k graph.Kind) (string, bool) {
	e, ok := c.Registry.Lookup(k)
	return e.Name, ok
}

func (c *CLI) newCommand() *cobra.Command {
	var typ string
	var force bool

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create an empty project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if typ == "" {
				typ = c.Config.DefaultType
			}
			if err := errors.ValidateDocumentPath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}

			p, err := project.New(typ, c.Registry)
			if err != nil {
				return err
			}
			if err := c.save(cmd.Context(), p, path); err != nil {
				return err
			}
			printSuccess("Created %s project", p.Type().Title)
			printFile(path)
			printNextStep("Add a node", fmt.Sprintf("%s add %s and", appName, path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "project type (default from config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the nodes and connections of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.printProject(p)
			return nil
		},
	}
}

func (c *CLI) printProject(p *project.Project) {
	fmt.Println(StyleTitle.Render(p.Filename()))
	printKeyValue("type", fmt.Sprintf("%s (%s)", p.Type().Name, p.Type().Title))

	index := make(map[graph.ID]int, len(p.Nodes()))
	for i, n := range p.Nodes() {
		index[n.ID()] = i
	}

	edges := 0
	for i, n := range p.Nodes() {
		name, ok := c.kindName(n.Kind())
		if !ok {
			name = n.Kind().String()
		}
		pos := n.Position()
		fmt.Printf("%s %s %s\n", StyleNumber.Render(fmt.Sprintf("[%d]", i)), StyleValue.Render(name),
			StyleDim.Render(fmt.Sprintf("%s at (%g, %g)", n.Kind(), pos.X, pos.Y)))

		if cfg, err := n.MarshalConfig(); err == nil && len(cfg) > 0 {
			for _, k := range slices.Sorted(maps.Keys(cfg)) {
				printDetail("%s = %v", k, cfg[k])
			}
		}
		for _, sink := range n.Sinks() {
			src, ok := sink.Upstream()
			if !ok {
				continue
			}
			edges++
			printDetail("%s %s %d:%s", portName(n, sink.Index()), iconArrow,
				index[src.Node().ID()], portName(src.Node(), src.Index()))
		}
	}
	printStats(fmt.Sprintf("%d nodes", len(p.Nodes())), fmt.Sprintf("%d connections", edges))
}

func portName(n graph.Node, i int) string {
	if pn, ok := n.(pinned); ok {
		if pins := pn.Pins(); i < len(pins) {
			return fmt.Sprintf("gpio%d", pins[i])
		}
	}
	return strconv.Itoa(i)
}

func (c *CLI) addCommand() *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "add [file] [kind]",
		Short: "Add a node of the given kind",
		Long: `Add a node of the given kind. The kind is a name from "pinmagik nodes" or a
kind id such as 0x0101. The new node's index is printed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), args[0], func(p *project.Project) error {
				e, err := entryFor(c.Registry, args[1])
				if err != nil {
					return err
				}
				if catalog.IsBoundary(e.Kind) {
					return errors.New(errors.ErrCodeBoundaryNode, "projects always have exactly one %s node", e.Name)
				}
				n, err := c.Registry.NewNode(e.Kind, p.Type().Name)
				if err != nil {
					return err
				}
				n.SetPosition(graph.Position{X: x, Y: y})
				if err := p.AddNode(n); err != nil {
					return err
				}
				printSuccess("Added %s as node %s", e.Name, StyleNumber.Render(strconv.Itoa(len(p.Nodes())-1)))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&x, "x", 300, "canvas x position")
	cmd.Flags().Float64Var(&y, "y", 100, "canvas y position")
	return cmd
}

func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [file] [node]",
		Short: "Remove a node and its connections",
		Long: `Remove a node and every connection touching it. Later nodes move down one
index.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), args[0], func(p *project.Project) error {
				n, i, err := nodeAt(p, args[1])
				if err != nil {
					return err
				}
				if err := p.RemoveNode(n); err != nil {
					return err
				}
				printSuccess("Removed node %d", i)
				return nil
			})
		},
	}
}

func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move [file] [node] [x] [y]",
		Short: "Move a node on the canvas",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "x")
			}
			y, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "y")
			}
			return c.edit(cmd.Context(), args[0], func(p *project.Project) error {
				n, _, err := nodeAt(p, args[1])
				if err != nil {
					return err
				}
				n.SetPosition(graph.Position{X: x, Y: y})
				return nil
			})
		},
	}
}

func (c *CLI) setCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set [file] [node] key=value...",
		Short: "Change a node's settings",
		Long: `Change a node's settings. Lists are comma separated and an empty value
clears a list:

  pinmagik set blink.pimp 2 period_ms=250
  pinmagik set blink.pimp in pull_up=17,27
  pinmagik set blink.pimp out active_low=`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}
			return c.edit(cmd.Context(), args[0], func(p *project.Project) error {
				n, i, err := nodeAt(p, args[1])
				if err != nil {
					return err
				}
				cfg, err := n.MarshalConfig()
				if err != nil {
					return err
				}
				merged := graph.Config{}
				maps.Copy(merged, cfg)
				maps.Copy(merged, patch)
				if err := n.UnmarshalConfig(merged); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", i)
				}
				printSuccess("Updated node %d", i)
				return nil
			})
		},
	}
}

func (c *CLI) connectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connect [file] [sink] [source]",
		Short: "Feed a sink from a source",
		Long: `Feed a sink from a source, replacing whatever fed the sink before. Ports
are written NODE:PORT:

  pinmagik connect blink.pimp 2:0 in:gpio17
  pinmagik connect blink.pimp out:gpio18 2:0`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), args[0], func(p *project.Project) error {
				sink, err := sinkAt(p, args[1])
				if err != nil {
					return err
				}
				src, err := sourceAt(p, args[2])
				if err != nil {
					return err
				}
				if prev, ok := sink.Upstream(); ok && prev != src {
					c.Logger.Warn("replacing connection", "sink", args[1])
				}
				graph.Connect(sink, src)
				printSuccess("Connected %s %s %s", args[2], iconArrow, args[1])
				return nil
			})
		},
	}
}

func (c *CLI) disconnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect [file] [sink]",
		Short: "Clear the connection feeding a sink",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), args[0], func(p *project.Project) error {
				sink, err := sinkAt(p, args[1])
				if err != nil {
					return err
				}
				if !sink.Connected() {
					printInfo("%s is not connected", args[1])
					return nil
				}
				graph.Disconnect(sink)
				printSuccess("Disconnected %s", args[1])
				return nil
			})
		},
	}
}

// describePorts summarizes a kind's port counts, e.g. "2 in, 1 out".
func describePorts(n graph.Node) string {
	var parts []string
	if k := len(n.Sinks()); k > 0 {
		parts = append(parts, fmt.Sprintf("%d in", k))
	}
	if k := len(n.Sources()); k > 0 {
		parts = append(parts, fmt.Sprintf("%d out", k))
	}
	return strings.Join(parts, ", ")
}
