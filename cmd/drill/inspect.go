package main

import (
	"drill/book"
	"drill/selector"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe the lines reachable after the configured prefix",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(cfg)
		if err != nil {
			return err
		}
		return writeInspection(cmd.OutOrStdout(), tree, cfg.Prefix)
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the bundled opening trees",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range book.Sources() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func writeInspection(w io.Writer, tree *book.MoveNode, prefix []string) error {
	node, ok := book.NavigateToPath(tree, prefix)
	if !ok {
		return fmt.Errorf("prefix %q is not in the tree", strings.Join(prefix, " "))
	}

	fmt.Fprintf(w, "Prefix: %s\n", strings.Join(prefix, " "))
	fmt.Fprintf(w, "Depth: %d\n", book.Depth(node))

	probabilities := selector.Probabilities(node.Children())
	fmt.Fprintf(w, "Replies:\n")
	for _, move := range book.PossibleMoves(node) {
		child, _ := node.Child(move)
		fmt.Fprintf(w, "  %-8s %5.1f%%", move, probabilities[move]*100)
		if child.Annotation() != "" {
			fmt.Fprintf(w, "  %s", child.Annotation())
		}
		fmt.Fprintln(w)
	}

	lines := book.TerminalPaths(node)
	fmt.Fprintf(w, "Lines (%d):\n", len(lines))
	for _, line := range lines {
		fmt.Fprintf(w, "  %s\n", strings.Join(line, " "))
	}
	return nil
}
