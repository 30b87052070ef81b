// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"
	"strconv"
)

type (
	// Type identifies the variant held by a TokenKind.
	Type int

	// TokenKind is the classification of a Token.
	//
	// Numeric variants hold the parsed value, not the source text.
	TokenKind struct {
		Type    Type
		Integer uint64
		Decimal float64
	}

	// Token is a classified unit of source text spanning the half-open byte interval
	// [Start, End) of the original source.
	Token struct {
		Kind  TokenKind
		Start int
		End   int
	}

	// Item carries a Token or the error that stopped a streaming Lex.
	Item struct {
		Err   error
		Token Token
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_           Type = iota // Consume 0 to start actual numbering at 1.
	TypeInteger             // Unsigned integer literal.
	TypeDecimal             // Floating point literal.
	TypePlus                // '+'.
)

// Integer instantiates an Integer TokenKind.
func Integer(n uint64) TokenKind { return TokenKind{Type: TypeInteger, Integer: n} }

// Decimal instantiates a Decimal TokenKind.
func Decimal(f float64) TokenKind { return TokenKind{Type: TypeDecimal, Decimal: f} }

// Plus instantiates a Plus TokenKind.
func Plus() TokenKind { return TokenKind{Type: TypePlus} }

// String renders the TokenKind as `Integer(1)`, `Decimal(1.5)` or `Plus`.
func (k TokenKind) String() string {
	switch k.Type {
	case TypeInteger:
		return fmt.Sprintf("Integer(%d)", k.Integer)
	case TypeDecimal:
		return fmt.Sprintf("Decimal(%s)", strconv.FormatFloat(k.Decimal, 'f', -1, 64))
	case TypePlus:
		return "Plus"
	default:
		return fmt.Sprintf("Type(%d)", k.Type)
	}
}

// String renders the Token as `(Integer(1), 0, 1)`.
func (t Token) String() string { return fmt.Sprintf("(%s, %d, %d)", t.Kind, t.Start, t.End) }

// Len is the number of source bytes covered by the Token.
func (t Token) Len() int { return t.End - t.Start }
