// SPDX-License-Identifier: MIT

// Package grammar parses text with participle struct grammars into rule tagged parse trees.
//
// Grammar structs carry participle `parser` tags & an optional `rule` tag naming the parse
// tree node a field produces. Fields without a rule tag are silent: the nodes of their
// values are adopted by the enclosing node.
//
//	type assignment struct {
//		Tokens []lexer.Token
//		Target lexer.Token `parser:"@Ident '='" rule:"identifier"`
//		Value  *value      `parser:"@@"`
//	}
//
// A `Tokens []lexer.Token` field spans its struct's node; participle populates it.
package grammar

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type (
	// Grammar is a built participle grammar with G as its root production.
	//
	// A Grammar is immutable & safe for concurrent use.
	Grammar[G any] struct {
		cfg    *Config
		parser *participle.Parser[G]

		// start names the root node.
		start string
		rules []string
	}

	// Config defines configuration options for the Grammar's operations.
	Config struct {
		// Logger for Grammar messages.
		Logger logrus.FieldLogger
		Debug  bool

		// Lexer tokenizes sources, participle's text/scanner lexer when nil.
		Lexer lexer.Definition

		// CaseInsensitive lists token types matched case-insensitively against literals.
		CaseInsensitive []string

		// Lookahead is the number of tokens a branch may consume before it is committed to.
		Lookahead int
	}

	// Option defines the Grammar functional option type.
	Option func(*Config)

	// ParseError describes the position a parse failed at.
	ParseError struct {
		cause error

		// Unexpected is the token the parse failed at, empty at the end of input.
		Unexpected string
		Message    string

		Offset int
		LineCol
	}
)

const (
	// RuleTag is the struct tag naming a field's parse tree node.
	RuleTag = "rule"

	// EOIRule names the node closing every parse tree.
	EOIRule = "EOI"

	DefLookahead = 1
)

// Grammar errors.
var (
	ErrInvalidGrammar = errors.New("invalid grammar")
	ErrNoMatch        = errors.New("no match")
)

// DefConfig obtains the package's Grammar default options.
func DefConfig() *Config {
	return &Config{
		Logger:    logrus.New(),
		Debug:     false,
		Lookahead: DefLookahead,
	}
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(c *Config) { c.Logger = logger } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(c *Config) { c.Debug = debug } }

// WithLexer configures the lexer option.
func WithLexer(def lexer.Definition) Option { return func(c *Config) { c.Lexer = def } }

// WithCaseInsensitive configures the token types literals match case-insensitively.
func WithCaseInsensitive(tokens ...string) Option {
	return func(c *Config) { c.CaseInsensitive = append(c.CaseInsensitive, tokens...) }
}

// WithLookahead configures the lookahead option.
func WithLookahead(tokens int) Option { return func(c *Config) { c.Lookahead = tokens } }

// Validate replaces unusable options with their defaults.
func (c *Config) Validate() {
	def := DefConfig()

	if c.Logger == nil {
		c.Logger = def.Logger
	}
	if c.Lookahead < 1 {
		c.Lookahead = def.Lookahead
	}
}

// Compile builds the grammar rooted at G, naming the root node start.
func Compile[G any](start string, options ...Option) (g *Grammar[G], err error) {
	cfg := DefConfig()
	for _, opt := range options {
		opt(cfg)
	}
	cfg.Validate()

	parserOptions := []participle.Option{participle.UseLookahead(cfg.Lookahead)}
	if cfg.Lexer != nil {
		parserOptions = append(parserOptions, participle.Lexer(cfg.Lexer))
	}
	if len(cfg.CaseInsensitive) > 0 {
		parserOptions = append(parserOptions, participle.CaseInsensitive(cfg.CaseInsensitive...))
	}

	parser, err := participle.Build[G](parserOptions...)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidGrammar, err)
		return
	}

	g = &Grammar[G]{
		cfg:    cfg,
		parser: parser,
		start:  start,
		rules:  ruleNames(reflect.TypeOf((*G)(nil)).Elem()),
	}

	if cfg.Debug {
		cfg.Logger.Debugf("grammar %s:\n%s", start, parser)
	}

	return
}

// MustCompile is Compile, panicking on failure.
//
// It simplifies the initialization of package level grammars.
func MustCompile[G any](start string, options ...Option) *Grammar[G] {
	g, err := Compile[G](start, options...)
	if err != nil {
		panic(err)
	}

	return g
}

// Start retrieves the name of the root node.
func (g *Grammar[G]) Start() string { return g.start }

// Rules lists the rule names the grammar's nodes may carry, EOIRule included.
func (g *Grammar[G]) Rules() []string { return slices.Clone(g.rules) }

// String renders the grammar as EBNF.
func (g *Grammar[G]) String() string { return g.parser.String() }

// Parse parses src into a tree rooted at a node for the start rule, closed by an EOIRule node.
func (g *Grammar[G]) Parse(ctx context.Context, src string) (root *Node, err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	source := &Source{Text: src}

	ast, err := g.parser.ParseString("", src)
	if err != nil {
		err = newParseError(source, err)

		if g.cfg.Debug {
			// Skip expensive operation if not debug.
			g.cfg.Logger.Debugf("parse failure: %s", spew.Sdump(err))
		}

		return
	}

	b := &builder{ctx: ctx, source: source}
	children := b.nodes(reflect.ValueOf(ast), "")
	if err = ctx.Err(); err != nil {
		return
	}

	children = append(children, NewNode(source, EOIRule, Span{Start: len(src), End: len(src)}))
	root = NewNode(source, g.start, Span{Start: 0, End: len(src)}, children...)

	return
}

// newParseError locates a participle failure in source.
func newParseError(source *Source, err error) *ParseError {
	e := &ParseError{cause: err, Message: err.Error()}

	var located participle.Error
	if errors.As(err, &located) {
		e.Message, e.Offset = located.Message(), located.Position().Offset
	}

	var unexpected *participle.UnexpectedTokenError
	if errors.As(err, &unexpected) && !unexpected.Unexpected.EOF() {
		e.Unexpected = unexpected.Unexpected.Value
	}

	e.LineCol = source.Position(e.Offset)

	return e
}

// Error renders the ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at %s: %s", ErrNoMatch, e.LineCol, e.Message)
}

// Is matches ErrNoMatch.
func (e *ParseError) Is(target error) bool { return target == ErrNoMatch }

// Unwrap exposes the participle failure.
func (e *ParseError) Unwrap() error { return e.cause }

// ruleName extracts the rule of a field's tag, dropping tag options.
func ruleName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get(RuleTag), ",")
	return name
}

// ruleNames lists the rule tags reachable from typ, in declaration order.
func ruleNames(typ reflect.Type) (names []string) {
	seen := make(map[reflect.Type]bool)

	var visit func(t reflect.Type)
	visit = func(t reflect.Type) {
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct || t == tokenType || seen[t] {
			return
		}
		seen[t] = true

		for index := 0; index < t.NumField(); index++ {
			field := t.Field(index)
			if !field.IsExported() {
				continue
			}

			if name := ruleName(field); name != "" && !slices.Contains(names, name) {
				names = append(names, name)
			}
			visit(field.Type)
		}
	}
	visit(typ)

	return append(names, EOIRule)
}
