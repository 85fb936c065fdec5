package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/pinmagik/pinmagik/pkg/catalog"
	"github.com/pinmagik/pinmagik/pkg/raspi"
)

func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported project types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range raspi.ProjectTypes() {
				marker := " "
				if t.Name == c.Config.DefaultType {
					marker = "*"
				}
				fmt.Printf("%s %s %s\n", marker, StyleValue.Render(fmt.Sprintf("%-12s", t.Name)), t.Title)
				printDetail("%d GPIO pins (%s header)", len(t.Revision.Pins()), t.Revision)
			}
			return nil
		},
	}
}

func (c *CLI) nodesCommand() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List node kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if typ == "" {
				typ = c.Config.DefaultType
			}
			t, err := raspi.LookupType(typ)
			if err != nil {
				return err
			}

			entries := lo.Reject(c.Registry.For(t.Name), func(e catalog.Entry, _ int) bool {
				return catalog.IsBoundary(e.Kind)
			})
			groups := lo.GroupBy(entries, func(e catalog.Entry) string { return e.Category })
			for _, cat := range lo.Uniq(lo.Map(entries, func(e catalog.Entry, _ int) string { return e.Category })) {
				fmt.Println(StyleTitle.Render(cat))
				for _, e := range groups[cat] {
					n := e.New(t.Context())
					fmt.Printf("  %s %s %s\n", StyleNumber.Render(e.Kind.String()),
						StyleValue.Render(fmt.Sprintf("%-10s", e.Name)), e.Description)
					printDetail("  %s", describePorts(n))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "project type (default from config)")
	return cmd
}
