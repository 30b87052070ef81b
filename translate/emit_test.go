// SPDX-License-Identifier: MIT
package translate

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"gitlab.com/fisherprime/fortrs/errkind"
	"gitlab.com/fisherprime/fortrs/grammar"
)

// mysteryTree builds a tree holding a rule the emitter has no kind for.
func mysteryTree() *grammar.Node {
	src := &grammar.Source{Text: "program p\nmystery\nend program\n"}

	return grammar.NewNode(src, StartRule, grammar.Span{Start: 0, End: len(src.Text)},
		grammar.NewNode(src, "program_keyword", grammar.Span{Start: 0, End: 7}),
		grammar.NewNode(src, "program_name", grammar.Span{Start: 8, End: 9}),
		grammar.NewNode(src, "mystery", grammar.Span{Start: 10, End: 17}),
		grammar.NewNode(src, "end_program_keyword", grammar.Span{Start: 18, End: 29}),
		grammar.NewNode(src, "EOI", grammar.Span{Start: 30, End: 30}),
	)
}

func TestTranslator_EmitUnclassified(t *testing.T) {
	ctx := context.Background()

	var buffer strings.Builder
	err := New(WithLogger(quietLogger())).Emit(ctx, &buffer, mysteryTree())
	if !errors.Is(err, errkind.ErrUnexpectedRule) {
		t.Fatalf("Translator.Emit() error = %v, want %v", err, errkind.ErrUnexpectedRule)
	}

	var kindErr *errkind.Error
	if errors.As(err, &kindErr) && (kindErr.Offset != 10 || kindErr.End != 17 || kindErr.Text != "mystery") {
		t.Errorf("Translator.Emit() error = %+v", kindErr)
	}

	buffer.Reset()
	if err = New(WithLogger(quietLogger()), WithDiagnostics(true)).Emit(ctx, &buffer, mysteryTree()); err != nil {
		t.Fatalf("Translator.Emit() with diagnostics error = %v", err)
	}

	want := "fn p() {\n" +
		diagnosticRuler + "\n" +
		"Unclassified rule\n" +
		"Rule:    mystery\n" +
		"Span:    [10, 17)\n" +
		"Text:    \"mystery\"\n" +
		diagnosticRuler + "\n" +
		"}\n"
	if got := buffer.String(); got != want {
		t.Errorf("Translator.Emit() = %q, want %q", got, want)
	}
}

func TestTranslator_EmitStopsAtEOI(t *testing.T) {
	src := &grammar.Source{Text: "program p\nend program\n"}
	root := grammar.NewNode(src, StartRule, grammar.Span{Start: 0, End: len(src.Text)},
		grammar.NewNode(src, "EOI", grammar.Span{Start: 0, End: 0}),
		grammar.NewNode(src, "mystery", grammar.Span{Start: 0, End: 7}),
	)

	var buffer strings.Builder
	if err := New(WithLogger(quietLogger())).Emit(context.Background(), &buffer, root); err != nil {
		t.Fatalf("Translator.Emit() error = %v", err)
	}
	if buffer.Len() > 0 {
		t.Errorf("Translator.Emit() = %q, want no output", buffer.String())
	}
}

func TestTranslator_EmitUnbalanced(t *testing.T) {
	src := &grammar.Source{Text: "end program\n"}
	root := grammar.NewNode(src, StartRule, grammar.Span{Start: 0, End: len(src.Text)},
		grammar.NewNode(src, "end_program_keyword", grammar.Span{Start: 0, End: 11}),
	)

	var buffer strings.Builder
	err := New(WithLogger(quietLogger())).Emit(context.Background(), &buffer, root)
	if !errors.Is(err, errkind.ErrUnbalancedBlock) {
		t.Errorf("Translator.Emit() error = %v, want %v", err, errkind.ErrUnbalancedBlock)
	}
}

func TestTranslator_EmitPanic(t *testing.T) {
	var buffer strings.Builder
	err := New(WithLogger(quietLogger()), WithDebug(true)).Emit(context.Background(), &buffer, nil)
	if !errors.Is(err, ErrPanicked) {
		t.Errorf("Translator.Emit() error = %v, want %v", err, ErrPanicked)
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		args string
		want []string
	}{
		{name: "empty", args: "  ", want: nil},
		{name: "single", args: "x", want: []string{"x"}},
		{name: "list", args: "x, y,z", want: []string{"x", "y", "z"}},
		{name: "quoted commas", args: `"a, b", 'c,d'`, want: []string{`"a, b"`, `'c,d'`}},
		{name: "nested calls", args: "f(a, g(b, c)), d", want: []string{"f(a, g(b, c))", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitArgs(tt.args); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNativeType(t *testing.T) {
	tests := []struct {
		source string
		want   string
		wantOk bool
	}{
		{source: "integer", want: "usize", wantOk: true},
		{source: "REAL", want: "f64", wantOk: true},
		{source: " Integer ", want: "usize", wantOk: true},
		{source: "logical", wantOk: false},
	}

	for _, tt := range tests {
		got, ok := NativeType(tt.source)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("NativeType(%q) = %v, %v, want %v, %v", tt.source, got, ok, tt.want, tt.wantOk)
		}

		if !ok {
			continue
		}
		if back, _ := SourceType(got); back != strings.ToLower(strings.TrimSpace(tt.source)) {
			t.Errorf("SourceType(%q) = %v", got, back)
		}
	}

	if got := SourceTypes(); !reflect.DeepEqual(got, []string{"integer", "real"}) {
		t.Errorf("SourceTypes() = %v", got)
	}
}
