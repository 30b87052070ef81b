// SPDX-License-Identifier: MIT
package translate

import (
	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"
)

// Fortran subset accepted by the translator.
//
// Rule tagged fields are dispatched on by name, see rule.go. Keywords aren't reserved, a
// statement opening with one is tried as an assignment when its keyword form fails.
type (
	// Source is the root production of a Fortran source.
	Source struct {
		Program *program `parser:"Newline* @@ Newline*"`
	}

	program struct {
		Keyword plexer.Token `parser:"@'program'" rule:"program_keyword"`
		Name    plexer.Token `parser:"@Ident Newline" rule:"program_name"`
		Body    []*line      `parser:"@@*"`
		End     *endProgram  `parser:"@@" rule:"end_program_keyword"`
	}

	endProgram struct {
		Tokens []plexer.Token

		Keyword string `parser:"@'end' ( @'program' @Ident? )?"`
	}

	line struct {
		Statement *statement   `parser:"  @@ Newline"`
		Blank     plexer.Token `parser:"| @Newline" rule:"non_nest_new_line"`
	}

	statement struct {
		ImplicitNone *implicitNone     `parser:"  @@" rule:"implicit_none"`
		Declare      *declareVariable  `parser:"| @@" rule:"declare_variable"`
		Do           *doStatement      `parser:"| @@" rule:"do_statement"`
		Call         *callFunction     `parser:"| @@" rule:"call_function"`
		Assign       *assignToVariable `parser:"| @@" rule:"assign_to_variable"`
	}

	implicitNone struct {
		Tokens []plexer.Token

		Keyword string `parser:"@'implicit' @'none'"`
	}

	declareVariable struct {
		Tokens []plexer.Token

		Type  plexer.Token `parser:"@( 'integer' | 'real' ) '::'?" rule:"variable_type"`
		Names []*name      `parser:"@@ ( ',' @@ )*" rule:"identifier"`
	}

	name struct {
		Tokens []plexer.Token

		Value string `parser:"@Ident"`
	}

	assignToVariable struct {
		Tokens []plexer.Token

		Target plexer.Token `parser:"@Ident '='" rule:"identifier"`
		Value  *expression  `parser:"@@"`
	}

	expression struct {
		Head *term       `parser:"@@"`
		Tail []*addition `parser:"@@*"`
	}

	addition struct {
		Add  plexer.Token `parser:"@'+'" rule:"add"`
		Term *term        `parser:"@@"`
	}

	term struct {
		Num        plexer.Token `parser:"  @Number" rule:"num"`
		Identifier plexer.Token `parser:"| @Ident" rule:"identifier"`
	}

	callFunction struct {
		Tokens []plexer.Token

		Subroutine *subroutineCall `parser:"  @@"`
		Print      *printCall      `parser:"| @@"`
	}

	subroutineCall struct {
		Keyword plexer.Token   `parser:"@'call'" rule:"call_keyword"`
		Name    plexer.Token   `parser:"@Ident" rule:"func_name"`
		Args    *callArguments `parser:"'(' @@? ')'" rule:"func_args"`
	}

	printCall struct {
		Name plexer.Token    `parser:"@'print' '*'" rule:"func_name"`
		Args *printArguments `parser:"( ',' @@ )?" rule:"func_args"`
	}

	// callArguments is the text between a subroutine call's parentheses.
	callArguments struct {
		Tokens []plexer.Token
	}

	// printArguments is the remainder of a print statement's line; unclosed parentheses are
	// passed through.
	printArguments struct {
		Tokens []plexer.Token
	}

	doStatement struct {
		Tokens []plexer.Token

		Keyword  plexer.Token   `parser:"@'do'" rule:"do_keyword"`
		Variable plexer.Token   `parser:"@Ident '='" rule:"do_variable"`
		Range    []plexer.Token `parser:"@( ~Newline )+ Newline" rule:"range_expr"`
		Body     *loopBody      `parser:"@@" rule:"do_loop_body"`
		End      *endDo         `parser:"@@" rule:"end_do_keyword"`
	}

	loopBody struct {
		Pos    plexer.Position
		Tokens []plexer.Token

		Lines []*line `parser:"@@*"`
	}

	endDo struct {
		Tokens []plexer.Token

		Keyword string `parser:"@'enddo' | @'end' @'do'"`
	}
)

const (
	// IdentToken is the token type keyword literals match case-insensitively.
	IdentToken = "Ident"

	openParen  = "("
	closeParen = ")"
)

var (
	fortranLexer = plexer.MustSimple([]plexer.SimpleRule{
		{Name: "comment", Pattern: `![^\n]*`},
		{Name: "Newline", Pattern: `\r?\n`},
		{Name: "whitespace", Pattern: `[ \t\r]+`},
		{Name: "String", Pattern: `"[^"\n]*"|'[^'\n]*'`},
		{Name: "Number", Pattern: `\d+(?:\.\d*)?`},
		{Name: IdentToken, Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `::|[^\s]`},
	})

	newlineType = fortranLexer.Symbols()["Newline"]
)

// Parse consumes the arguments up to the closing parenthesis.
func (a *callArguments) Parse(lex *plexer.PeekingLexer) (err error) {
	a.Tokens, err = scanArguments(lex, true)
	return
}

// Parse consumes the arguments up to the end of the line.
func (a *printArguments) Parse(lex *plexer.PeekingLexer) (err error) {
	a.Tokens, err = scanArguments(lex, false)
	return
}

// scanArguments consumes tokens until the end of the line or, for a parenthesized list, the
// closing parenthesis at nesting depth zero.
func scanArguments(lex *plexer.PeekingLexer, parenthesized bool) (tokens []plexer.Token, err error) {
	var depth int

	for {
		tok := lex.Peek()

		switch {
		case tok.EOF() || tok.Type == newlineType:
			if parenthesized && len(tokens) > 0 {
				return nil, participle.Errorf(tok.Pos, "unterminated argument list")
			}
			if len(tokens) == 0 {
				err = participle.NextMatch
			}

			return
		case tok.Value == closeParen && depth == 0:
			if !parenthesized {
				return nil, participle.Errorf(tok.Pos, "unbalanced %q", closeParen)
			}
			if len(tokens) == 0 {
				err = participle.NextMatch
			}

			return
		case tok.Value == closeParen:
			depth--
		case tok.Value == openParen:
			depth++
		}

		tokens = append(tokens, *lex.Next())
	}
}
