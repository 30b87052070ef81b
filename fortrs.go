// SPDX-License-Identifier: MIT

// Package fortrs translates a Fortran subset into Rust.
//
// Two front ends share the error model of package errkind: Lex splits the source into numeric
// & operator tokens, while Translate parses it against the Fortran struct grammar & emits
// Rust by walking the parse tree.
package fortrs

import (
	"context"

	"gitlab.com/fisherprime/fortrs/lexer"
	"gitlab.com/fisherprime/fortrs/translate"
)

// Lex tokenizes src, failing on the first unlexable input.
func Lex(src string, opts ...lexer.Option) ([]lexer.Token, error) {
	return lexer.Tokenize(src, opts...)
}

// Translate converts src into Rust.
func Translate(ctx context.Context, src string, opts ...translate.Option) (string, error) {
	return translate.New(opts...).Translate(ctx, src)
}

// TranslateAll converts independent sources concurrently, results keep the order of sources.
func TranslateAll(ctx context.Context, sources []string, opts ...translate.Option) ([]translate.Result, error) {
	return translate.New(opts...).TranslateAll(ctx, sources)
}
