// SPDX-License-Identifier: MIT
package fortrs

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"gitlab.com/fisherprime/fortrs/errkind"
	"gitlab.com/fisherprime/fortrs/lexer"
	"gitlab.com/fisherprime/fortrs/translate"
)

func TestLex(t *testing.T) {
	tokens, err := Lex("1 + 2.5")
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}

	want := []lexer.Token{
		{Kind: lexer.Integer(1), Start: 0, End: 1},
		{Kind: lexer.Plus(), Start: 2, End: 3},
		{Kind: lexer.Decimal(2.5), Start: 4, End: 7},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Lex() = %v, want %v", tokens, want)
	}

	_, err = Lex("1 ? 2")
	if !errors.Is(err, errkind.ErrUnknownCharacter) {
		t.Fatalf("Lex() error = %v, want %v", err, errkind.ErrUnknownCharacter)
	}

	chain := errkind.Chain(err)
	if len(chain) != 2 || chain[0].Error() != `{ "location": 3, "msg": "Couldn't read the next token" }` {
		t.Errorf("errkind.Chain() = %v", chain)
	}
}

func TestTranslate(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	src := "program hello\n  integer :: x\n  x = 1\nend program hello\n"
	want := "fn hello() {\n    let mut x: usize;\n    x = 1;\n}\n"

	got, err := Translate(context.Background(), src, translate.WithLogger(logger))
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}

	results, err := TranslateAll(context.Background(), []string{src, src}, translate.WithLogger(logger))
	if err != nil {
		t.Fatalf("TranslateAll() error = %v", err)
	}
	for index, result := range results {
		if result.Output != want {
			t.Errorf("TranslateAll() result %d = %q, want %q", index, result.Output, want)
		}
	}
}
