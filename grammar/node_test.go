// SPDX-License-Identifier: MIT
package grammar

import (
	"context"
	"reflect"
	"testing"
)

// sampleTree builds `sum(num:"1",add:"+",group(num:"22"))` over "1+(22)".
func sampleTree() *Node {
	src := &Source{Text: "1+(22)"}

	return NewNode(src, "sum", Span{Start: 0, End: 6},
		NewNode(src, "num", Span{Start: 0, End: 1}),
		NewNode(src, "add", Span{Start: 1, End: 2}),
		NewNode(src, "group", Span{Start: 2, End: 6},
			NewNode(src, "num", Span{Start: 3, End: 5}),
		),
	)
}

func TestNode_Walk(t *testing.T) {
	root := sampleTree()

	traverseChan := make(chan TraverseComm)
	go root.Walk(context.Background(), traverseChan)

	var (
		rules  []string
		depths []int
	)
	for comm := range traverseChan {
		rules = append(rules, comm.Node().Rule())
		depths = append(depths, comm.Depth())
	}

	if want := []string{"sum", "num", "add", "group", "num"}; !reflect.DeepEqual(rules, want) {
		t.Errorf("Node.Walk() rules = %v, want %v", rules, want)
	}
	if want := []int{0, 1, 1, 1, 2}; !reflect.DeepEqual(depths, want) {
		t.Errorf("Node.Walk() depths = %v, want %v", depths, want)
	}
}

func TestNode_Descendants(t *testing.T) {
	root := sampleTree()

	list, err := root.Descendants(context.Background(), "num")
	if err != nil {
		t.Fatalf("Node.Descendants() error = %v", err)
	}

	var texts []string
	for _, n := range list {
		texts = append(texts, n.Text())
	}
	if want := []string{"1", "22"}; !reflect.DeepEqual(texts, want) {
		t.Errorf("Node.Descendants() = %v, want %v", texts, want)
	}

	if got := list[1].Parent().Rule(); got != "group" {
		t.Errorf("Node.Parent() = %v, want %v", got, "group")
	}
}

func TestNode_Serialize(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{name: "tree", node: sampleTree(), want: `sum(num:"1",add:"+",group(num:"22"))`},
		{name: "leaf", node: NewNode(&Source{Text: `"q"`}, "str", Span{Start: 0, End: 3}), want: `str:"\"q\""`},
		{name: "nil", node: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.node.Serialize(context.Background())
			if err != nil {
				t.Fatalf("Node.Serialize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Node.Serialize() = %v, want %v", got, tt.want)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sampleTree().Serialize(ctx); err == nil {
		t.Error("Node.Serialize() with a cancelled context succeeded")
	}
}

func TestNode_Child(t *testing.T) {
	root := sampleTree()

	if child, ok := root.Child("group"); !ok || child.Text() != "(22)" {
		t.Errorf("Node.Child() = %v, %v", child, ok)
	}
	if _, ok := root.Child("missing"); ok {
		t.Error("Node.Child(missing) found")
	}
	if got := root.Children().Rules(); !reflect.DeepEqual(got, []string{"num", "add", "group"}) {
		t.Errorf("List.Rules() = %v", got)
	}
}

func TestSource_Position(t *testing.T) {
	src := &Source{Text: "ab\ncé\nd"}

	tests := []struct {
		offset int
		want   LineCol
	}{
		{offset: 0, want: LineCol{Line: 1, Column: 1}},
		{offset: 2, want: LineCol{Line: 1, Column: 3}},
		{offset: 3, want: LineCol{Line: 2, Column: 1}},
		{offset: 6, want: LineCol{Line: 2, Column: 3}},
		{offset: 7, want: LineCol{Line: 3, Column: 1}},
		{offset: 100, want: LineCol{Line: 3, Column: 2}},
	}

	for _, tt := range tests {
		if got := src.Position(tt.offset); got != tt.want {
			t.Errorf("Source.Position(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}
