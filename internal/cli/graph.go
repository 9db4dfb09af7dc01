package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/levelgraph/pkg/errors"
	"github.com/matzehuels/levelgraph/pkg/graph"
)

// relations maps --relation values to node queries.
var relations = map[string]func(graph.Node[string]) graph.Result[string]{
	"immediate-precedents":    graph.Node[string].ImmediatePrecedents,
	"immediate-descendants":   graph.Node[string].ImmediateDescendants,
	"precedents":              graph.Node[string].Precedents,
	"descendants":             graph.Node[string].Descendants,
	"terminating-precedents":  graph.Node[string].TerminatingPrecedents,
	"terminating-descendants": graph.Node[string].TerminatingDescendants,
	"related":                 graph.Node[string].Related,
}

func relationNames() []string {
	names := make([]string, 0, len(relations))
	for name := range relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// levelsCommand prints every level and the nodes on it.
func (c *CLI) levelsCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "levels [file]",
		Short: "Show the nodes on every level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			levels, err := g.Levels()
			if err != nil {
				return errors.Wrap(errors.ErrCodeCyclicGraph, err, "compute levels")
			}
			c.Logger.Debug("computed levels", "levels", len(levels), "nodes", g.CountNodes())

			w := cmd.OutOrStdout()
			if plain {
				for i, nodes := range levels {
					fmt.Fprintf(w, "%d: %s\n", i, strings.Join(names(nodes), " "))
				}
				return nil
			}
			fmt.Fprintln(w, levelTable(levels))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print one \"level: nodes\" line per level")
	return cmd
}

func levelTable(levels [][]graph.Node[string]) string {
	rows := make([][]string, len(levels))
	for i, nodes := range levels {
		rows[i] = []string{strconv.Itoa(i), strconv.Itoa(len(nodes)), strings.Join(names(nodes), ", ")}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Count", "Nodes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return StyleNumber.Padding(0, 1)
			default:
				return StyleValue.Padding(0, 1)
			}
		}).
		Render()
}

// nodesCommand lists nodes on one level, in a level window, or at the edges
// of the graph.
func (c *CLI) nodesCommand() *cobra.Command {
	var (
		level, from, to int
		roots, leaves   bool
	)

	cmd := &cobra.Command{
		Use:   "nodes [file]",
		Short: "List nodes by level",
		Long: `List nodes by level. Without flags every node is printed in level order.

  --level N          nodes on level N
  --from A --to B    nodes on levels A through B
  --roots            nodes on the first level
  --leaves           nodes on the last level`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var res graph.Result[string]
			switch {
			case roots:
				res = g.RootNodes()
			case leaves:
				res = g.LeafNodes()
			case flags.Changed("level"):
				res = g.NodesAt(level)
			case flags.Changed("from") || flags.Changed("to"):
				if !flags.Changed("to") {
					to = g.CountNodes()
				}
				res = g.NodesBetween(from, to)
			default:
				res = g.NodesBetween(0, g.CountNodes())
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVar(&level, "level", 0, "level to list")
	cmd.Flags().IntVar(&from, "from", 0, "first level of the window")
	cmd.Flags().IntVar(&to, "to", 0, "last level of the window")
	cmd.Flags().BoolVar(&roots, "roots", false, "list nodes on the first level")
	cmd.Flags().BoolVar(&leaves, "leaves", false, "list nodes on the last level")
	cmd.MarkFlagsMutuallyExclusive("roots", "leaves", "level", "from")
	return cmd
}

// sortCommand prints a topological order of the graph.
func (c *CLI) sortCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sort [file]",
		Short: "Print the nodes in topological order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			order, err := g.Sort()
			if err != nil {
				return errors.Wrap(errors.ErrCodeCyclicGraph, err, "sort")
			}
			w := cmd.OutOrStdout()
			for _, n := range order {
				fmt.Fprintln(w, n.Value())
			}
			return nil
		},
	}
}

// queryCommand prints the nodes in one relation to a node.
func (c *CLI) queryCommand() *cobra.Command {
	var relation string

	cmd := &cobra.Command{
		Use:   "query [file] [node]",
		Short: "Show nodes related to a node",
		Long:  "Show nodes related to a node, ordered by level.\n\nRelations: " + strings.Join(relationNames(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, ok := relations[relation]
			if !ok {
				return errors.ValidateFormat(relation, relationNames()...)
			}
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			n, err := findNode(g, args[1])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), query(n))
		},
	}

	cmd.Flags().StringVarP(&relation, "relation", "r", "related", "relation to query")
	_ = cmd.RegisterFlagCompletionFunc("relation", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return relationNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// neighboursCommand prints nodes within a window of levels around a node.
func (c *CLI) neighboursCommand() *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:   "neighbours [file] [node]",
		Short: "Show connected nodes within a relative level window",
		Long: `Show connected nodes whose level lies within [node+from, node+to].

A window entirely above the node follows precedents, one entirely below
follows descendants, and a window spanning the node follows both.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			n, err := findNode(g, args[1])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), n.Neighbours(from, to))
		},
	}

	cmd.Flags().IntVar(&from, "from", -1, "window start relative to the node's level")
	cmd.Flags().IntVar(&to, "to", 1, "window end relative to the node's level")
	return cmd
}

// checkCommand reports whether the graph, optionally extended with one more
// sequence, can be sorted.
func (c *CLI) checkCommand() *cobra.Command {
	var with string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check that the graph is acyclic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if cmd.Flags().Changed("with") {
				seq := parseList(with)
				if len(seq) == 0 {
					return errors.New(errors.ErrCodeInvalidInput, "--with needs at least one node")
				}
				if !g.CanSortWith(seq...) {
					return errors.New(errors.ErrCodeCyclicGraph, "adding %s would create a cycle", strings.Join(seq, " -> "))
				}
				fmt.Fprintf(w, "%s %s can be added\n", styleIconSuccess.Render(iconSuccess), strings.Join(seq, " -> "))
				return nil
			}

			if !g.CanSort() {
				return errors.New(errors.ErrCodeCyclicGraph, "graph contains a cycle")
			}
			fmt.Fprintf(w, "%s acyclic: %d nodes, %d edges\n", styleIconSuccess.Render(iconSuccess), g.CountNodes(), g.CountEdges())
			return nil
		},
	}

	cmd.Flags().StringVar(&with, "with", "", "comma-separated sequence to test against the graph")
	return cmd
}

func findNode(g *graph.Graph[string], value string) (graph.Node[string], error) {
	n, ok := g.Find(value)
	if !ok {
		return graph.Node[string]{}, errors.New(errors.ErrCodeNotFound, "node %q not found", value)
	}
	return n, nil
}

// printResult writes one value per line.
func printResult(w io.Writer, res graph.Result[string]) error {
	for n, err := range res.All() {
		if err != nil {
			return errors.Wrap(errors.ErrCodeCyclicGraph, err, "compute levels")
		}
		fmt.Fprintln(w, n.Value())
	}
	return nil
}

func names(nodes []graph.Node[string]) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Value()
	}
	return out
}
