// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/fisherprime/fortrs/grammar"
	"gitlab.com/fisherprime/fortrs/translate"
)

const treeIndent = "  "

var parseTree bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the parse tree of a Fortran source",
	Long: `Print the parse tree of a Fortran source as rule(child,leaf:"text").

--tree prints one node per line, indented by depth.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseTree, "tree", false, "print one node per line")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	input := config.Input
	if len(args) == 1 {
		input = args[0]
	}

	src, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	tr := translate.New(config.translatorOptions()...)
	root, err := tr.Parse(cmd.Context(), string(src))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", input, err)
	}

	if parseTree {
		return writeTree(cmd, root)
	}

	serialized, err := root.Serialize(cmd.Context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), serialized)

	return err
}

// writeTree prints the walked nodes, leaves with their text.
func writeTree(cmd *cobra.Command, root *grammar.Node) error {
	traverseChan := make(chan grammar.TraverseComm)
	go root.Walk(cmd.Context(), traverseChan)

	w := cmd.OutOrStdout()
	for comm := range traverseChan {
		writeNode(w, comm.Node(), comm.Depth())
	}

	return cmd.Context().Err()
}

func writeNode(w io.Writer, n *grammar.Node, depth int) {
	line := strings.Repeat(treeIndent, depth) + n.Rule()
	if len(n.Children()) < 1 {
		line += " " + strconv.Quote(n.Text())
	}
	fmt.Fprintln(w, line)
}
