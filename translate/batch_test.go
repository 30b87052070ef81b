// SPDX-License-Identifier: MIT
package translate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gitlab.com/fisherprime/fortrs/errkind"
)

func TestTranslator_TranslateAll(t *testing.T) {
	sources := make([]string, 8)
	for index := range sources {
		sources[index] = fmt.Sprintf("program p%d\n  x = %d\nend program p%d\n", index, index, index)
	}
	sources[5] = "program broken\n"

	tr := New(WithLogger(quietLogger()), WithWorkers(3))

	results, err := tr.TranslateAll(context.Background(), sources)
	if !errors.Is(err, ErrTranslateAll) || !errors.Is(err, errkind.ErrGrammar) {
		t.Fatalf("Translator.TranslateAll() error = %v, want %v & %v", err, ErrTranslateAll, errkind.ErrGrammar)
	}
	if len(results) != len(sources) {
		t.Fatalf("Translator.TranslateAll() returned %d results, want %d", len(results), len(sources))
	}

	for index, result := range results {
		if index == 5 {
			if result.Err == nil {
				t.Errorf("result %d succeeded, want a failure", index)
			}
			continue
		}

		want := fmt.Sprintf("fn p%d() {\n    x = %d;\n}\n", index, index)
		if result.Err != nil || result.Output != want {
			t.Errorf("result %d = %q, %v, want %q", index, result.Output, result.Err, want)
		}
	}
}

func TestTranslator_TranslateAllEdges(t *testing.T) {
	tr := New(WithLogger(quietLogger()))

	results, err := tr.TranslateAll(context.Background(), nil)
	if err != nil || len(results) != 0 {
		t.Errorf("Translator.TranslateAll(nil) = %v, %v", results, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err = tr.TranslateAll(ctx, []string{"program a\nend program a\n", "program b\nend program b\n"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Translator.TranslateAll() error = %v, want %v", err, context.Canceled)
	}
	for index, result := range results {
		if !errors.Is(result.Err, context.Canceled) {
			t.Errorf("result %d error = %v, want %v", index, result.Err, context.Canceled)
		}
	}
}
