// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/fortrs/errkind"
)

type (
	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer splits a source string into Tokens.
	//
	// A Lexer is single use; Tokenize & Lex are safe to call concurrently on disjoint Lexers.
	Lexer struct {
		debug         bool
		commentMarker rune
		logger        logrus.FieldLogger

		// c is a channel for communicating lexed Items.
		c chan Item

		// source is the original input, spans are relative to it.
		source string

		// remaining is the unconsumed suffix of source starting at index.
		remaining string
		index     int
	}
)

const (
	// NextTokenMessage is the message wrapping every single token failure.
	NextTokenMessage = "Couldn't read the next token"
	// NumberMessage annotates numeric literal failures.
	NumberMessage = "Couldn't tokenize a number"
)

// Lexing errors.
var (
	// errNoMatch signals a take operation consuming no input.
	errNoMatch = errors.New("no characters matched")
)

// New creates a new Lexer for the source string.
func New(source string, opts ...Option) *Lexer {
	l := &Lexer{
		c:         make(chan Item),
		source:    source,
		remaining: source,
	}

	for _, opt := range opts {
		opt(l)
	}
	l.validate()

	return l
}

// Tokenize turns source into a list of Tokens, including the location of each token's start
// & end point in the original source.
//
// Lexing stops at the first failure, which is reported with its absolute offset; no tokens
// are returned on failure.
func Tokenize(source string, opts ...Option) (tokens []Token, err error) {
	l := New(source, opts...)

	for {
		var (
			tok Token
			ok  bool
		)
		if tok, ok, err = l.Next(); err != nil {
			// Invalidate the partial token list.
			return nil, err
		}
		if !ok {
			return
		}

		tokens = append(tokens, tok)
	}
}

// Next lexes a single Token; ok is false once the input is exhausted.
func (l *Lexer) Next() (tok Token, ok bool, err error) {
	l.chomp(skip(l.remaining, string(l.commentMarker)))

	if l.remaining == "" {
		return
	}

	start := l.index
	kind, length, err := TokenizeSingleToken(l.remaining)
	if err != nil {
		err = errkind.NewMessageWithLocation(l.index, NextTokenMessage, err)
		return
	}
	l.chomp(length)

	tok, ok = Token{Kind: kind, Start: start, End: l.index}, true
	if l.debug {
		// Debug operation makes this operation un-inlinable.
		l.logger.Debug("lexer Next: ", tok)
	}

	return
}

// Lex lexes the input on the caller's goroutine, sending Items over the Lexer's channel.
//
// The channel is closed once the input is exhausted, on the first error or on context
// cancellation.
func (l *Lexer) Lex(ctx context.Context) {
	defer close(l.c)

	for {
		tok, ok, err := l.Next()
		if err != nil {
			l.emit(ctx, Item{Err: err})
			return
		}
		if !ok || !l.emit(ctx, Item{Token: tok}) {
			return
		}
	}
}

// Item return a lexed Item from the input.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.c
	return
}

// Offset obtains the absolute offset of the unconsumed input.
func (l *Lexer) Offset() int { return l.index }

// Remaining obtains the unconsumed input.
func (l *Lexer) Remaining() string { return l.remaining }

// emit sends an Item, reporting false when the context ended first.
func (l *Lexer) emit(ctx context.Context, i Item) bool {
	select {
	case <-ctx.Done():
		return false
	case l.c <- i:
		return true
	}
}

func (l *Lexer) chomp(n int) {
	l.remaining = l.remaining[n:]
	l.index += n
}

// TokenizeSingleToken lexes one token from the start of data, returning it with the number of
// bytes read.
func TokenizeSingleToken(data string) (kind TokenKind, length int, err error) {
	next, _ := utf8.DecodeRuneInString(data)

	switch {
	case data == "":
		err = errkind.NewUnexpectedEOF()
	case next == '+':
		kind, length = Plus(), 1
	case isDigit(next):
		if kind, length, err = TokenizeNumber(data); err != nil {
			err = errkind.NewContext(NumberMessage, err)
		}
	default:
		err = errkind.NewUnknownCharacter(next)
	}

	return
}

// TokenizeNumber lexes a numeric literal: the longest run of decimal digits containing at
// most one '.'.
//
// A run containing a '.' is a Decimal, otherwise an Integer.
func TokenizeNumber(data string) (kind TokenKind, length int, err error) {
	seenDot := false

	text, length, err := takeWhile(data, func(r rune) bool {
		switch {
		case isDigit(r):
			return true
		case r == '.' && !seenDot:
			seenDot = true
			return true
		default:
			return false
		}
	})
	if err != nil {
		return
	}

	if seenDot {
		var f float64
		if f, err = strconv.ParseFloat(text, 64); err != nil {
			err = errkind.NewInvalidNumber(text, err)
			return
		}
		kind = Decimal(f)

		return
	}

	var n uint64
	if n, err = strconv.ParseUint(text, 10, 64); err != nil {
		err = errkind.NewInvalidNumber(text, err)
		return
	}
	kind = Integer(n)

	return
}

// SkipWhitespace returns the number of leading whitespace bytes in data.
func SkipWhitespace(data string) int {
	_, skipped, err := takeWhile(data, unicode.IsSpace)
	if err != nil {
		return 0
	}

	return skipped
}

// SkipComments returns the number of bytes of a leading comment in data, including its
// terminating newline.
func SkipComments(data string) int { return skipComments(data, string(DefaultCommentMarker)) }

// Skip returns the number of leading whitespace & comment bytes in data.
func Skip(data string) int { return skip(data, string(DefaultCommentMarker)) }

func skipComments(data, marker string) int {
	if !strings.HasPrefix(data, marker) {
		return 0
	}

	// An unterminated comment runs to the end of the input.
	end := strings.Index(data, commentTerminator)
	if end < 0 {
		return len(data)
	}

	return end + len(commentTerminator)
}

func skip(data, marker string) int {
	remaining := data

	for {
		ws := SkipWhitespace(remaining)
		remaining = remaining[ws:]
		comments := skipComments(remaining, marker)
		remaining = remaining[comments:]

		if ws+comments == 0 {
			return len(data) - len(remaining)
		}
	}
}

// takeWhile consumes runes while fn is true, failing when nothing was consumed.
func takeWhile(data string, fn ValidationFunction) (text string, length int, err error) {
	length = len(data)
	for index, r := range data {
		if !fn(r) {
			length = index
			break
		}
	}

	if length == 0 {
		err = errNoMatch
		return
	}
	text = data[:length]

	return
}

// isDigit return true for an ASCII decimal digit.
func isDigit(r rune) bool { return '0' <= r && r <= '9' }
