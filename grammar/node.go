// SPDX-License-Identifier: MIT
package grammar

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type (
	// Source is the text a parse tree was produced from.
	//
	// Nodes reference a shared Source & reconstruct their text from their Span.
	Source struct {
		Text string
	}

	// Span is the half-open byte interval [Start, End) of a Source.
	Span struct {
		Start int
		End   int
	}

	// LineCol describes the line number & column of a location in a Source.
	LineCol struct {
		Line   int // line number, 1-based
		Column int // rune offset of the column in the line, 1-based
	}

	// Node is a rule tagged element of a parse tree.
	//
	// Synchronization is unnecessary, the type is read-only once the parse completes.
	Node struct {
		source *Source

		// parent contains a reference to the enclosing Node.
		parent *Node

		// children holds the nodes matched by the rule, in document order.
		children List

		rule string
		span Span
	}

	// List is a type wrapper for []*Node.
	List []*Node

	// TraverseComm defines a channel to communicate info between Node walks & their callers.
	TraverseComm struct {
		node  *Node
		depth int
	}
)

const (
	traverseBufferSize = 10

	openMarker  = "("
	closeMarker = ")"
	splitter    = ","
)

// NewNode instantiates a Node for rule over span, adopting children.
func NewNode(source *Source, rule string, span Span, children ...*Node) *Node {
	n := &Node{
		source:   source,
		rule:     rule,
		span:     span,
		children: children,
	}

	for _, child := range children {
		child.parent = n
	}

	return n
}

// Position converts a byte offset into a line & column.
func (s *Source) Position(offset int) (lc LineCol) {
	if offset > len(s.Text) {
		offset = len(s.Text)
	}

	prefix := s.Text[:offset]
	lc.Line = strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	lc.Column = len([]rune(prefix[lineStart:])) + 1

	return
}

// String renders the LineCol as `line:column`.
func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// Len is the number of bytes covered by the Span.
func (s Span) Len() int { return s.End - s.Start }

// Rule retrieves the name of the grammar rule the Node instantiates.
func (n *Node) Rule() string { return n.rule }

// Span retrieves the Node's byte interval in its Source.
func (n *Node) Span() Span { return n.span }

// Source retrieves the Node's Source.
func (n *Node) Source() *Source { return n.source }

// Text reconstructs the matched text.
func (n *Node) Text() string {
	if n.source == nil {
		return ""
	}

	return n.source.Text[n.span.Start:n.span.End]
}

// Parent retrieves a reference to the Node's parent.
//
// Value is nil for the root node.
func (n *Node) Parent() *Node { return n.parent }

// Children lists the immediate children of a Node, in document order.
func (n *Node) Children() List { return n.children }

// Child retrieves the first immediate child instantiating rule.
func (n *Node) Child(rule string) (child *Node, ok bool) {
	for _, c := range n.children {
		if c.rule == rule {
			return c, true
		}
	}

	return
}

// Walk performs a depth-first, document order traversal on a Node, pushing its descendants
// to its channel argument.
//
// A context.Context is used to terminate the walk operation.
func (n *Node) Walk(ctx context.Context, traverseChan chan TraverseComm) {
	defer close(traverseChan)

	if n == nil {
		return
	}

	// Use an explicit stack, children pushed in reverse to pop in document order.
	stack := []TraverseComm{{node: n}}

	var top TraverseComm
	for len(stack) > 0 {
		top, stack = stack[len(stack)-1], stack[:len(stack)-1]

		select {
		case <-ctx.Done():
			// Received context cancellation.
			return
		case traverseChan <- top:
		}

		for index := len(top.node.children) - 1; index >= 0; index-- {
			stack = append(stack, TraverseComm{node: top.node.children[index], depth: top.depth + 1})
		}
	}
}

// Descendants lists the Node & its descendants instantiating rule, in document order.
func (n *Node) Descendants(ctx context.Context, rule string) (list List, err error) {
	traverseChan := make(chan TraverseComm, traverseBufferSize)

	go n.Walk(ctx, traverseChan)

	for comm := range traverseChan {
		if comm.node.rule == rule {
			list = append(list, comm.node)
		}
	}
	err = ctx.Err()

	return
}

// Node retrieves the walked Node.
func (t TraverseComm) Node() *Node { return t.node }

// Depth retrieves the walked Node's distance from the walk's root.
func (t TraverseComm) Depth() int { return t.depth }

// Serialize transforms a Node into a string of the form `rule(child,leaf:"text")`.
func (n *Node) Serialize(ctx context.Context) (output string, err error) {
	serChan := make(chan string)
	go func() {
		n.serialize(ctx, serChan)
		close(serChan)
	}()

	var (
		buffer strings.Builder
		prev   string
	)
	for value := range serChan {
		if prev != "" && prev != openMarker && value != openMarker && value != closeMarker {
			buffer.WriteString(splitter)
		}
		buffer.WriteString(value)
		prev = value
	}

	if err = ctx.Err(); err != nil {
		// Invalidate serialization output.
		return
	}
	output = buffer.String()

	return
}

// serialize performs the serialization grunt work.
func (n *Node) serialize(ctx context.Context, serChan chan string) {
	if n == nil {
		return
	}

	select {
	case <-ctx.Done():
		// NOTE: context error captured in [Node.Serialize].
		return
	default:
	}

	if len(n.children) < 1 {
		serChan <- n.rule + ":" + strconv.Quote(n.Text())
		return
	}

	serChan <- n.rule
	serChan <- openMarker
	for _, child := range n.children {
		child.serialize(ctx, serChan)
	}
	serChan <- closeMarker
}

// Rules returns the rule names of a List.
func (l List) Rules() (rules []string) {
	rules = make([]string, len(l))
	for index := range l {
		rules[index] = l[index].rule
	}

	return
}
