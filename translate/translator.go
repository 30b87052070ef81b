// SPDX-License-Identifier: MIT

// Package translate emits Rust from Fortran sources, walking the parse tree the grammar package
// builds from the Fortran struct grammar.
package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"gitlab.com/fisherprime/fortrs/errkind"
	"gitlab.com/fisherprime/fortrs/grammar"
)

type (
	// Config defines configuration options for the Translator's operations.
	Config struct {
		// Logger for Translator messages.
		Logger logrus.FieldLogger
		Debug  bool

		// Diagnostics emits a diagnostic block for unclassified rules in place of failing.
		Diagnostics bool

		// IndentWidth is the number of spaces per block depth.
		IndentWidth int
		// Workers bounds the goroutine pool of TranslateAll.
		Workers int
	}

	// Option defines the Translator functional option type.
	Option func(*Config)

	// Translator converts Fortran sources to Rust.
	//
	// A Translator is safe for concurrent use, each translation owns its EmissionState.
	Translator struct {
		cfg     *Config
		grammar *grammar.Grammar[Source]
	}
)

// StartRule names the root node of Fortran parse trees.
const StartRule = "source"

const (
	DefIndentWidth = 4

	diagnosticRuler = "--------------------------------------------------------"
)

// Translation errors.
var (
	ErrPanicked = errors.New("recovery from panic")
)

// dumper renders nodes without following the parse tree's parent references.
var dumper = spew.ConfigState{Indent: "  ", MaxDepth: 2, DisablePointerAddresses: true}

// DefConfig obtains the package's Translator default options.
func DefConfig() *Config {
	return &Config{
		Logger:      logrus.New(),
		IndentWidth: DefIndentWidth,
		Workers:     runtime.NumCPU(),
	}
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(c *Config) { c.Logger = logger } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(c *Config) { c.Debug = debug } }

// WithDiagnostics configures the diagnostics option.
func WithDiagnostics(diagnostics bool) Option {
	return func(c *Config) { c.Diagnostics = diagnostics }
}

// WithIndentWidth configures the number of spaces per block depth.
func WithIndentWidth(width int) Option { return func(c *Config) { c.IndentWidth = width } }

// WithWorkers configures the TranslateAll pool size.
func WithWorkers(workers int) Option { return func(c *Config) { c.Workers = workers } }

// Validate replaces unusable options with their defaults.
func (c *Config) Validate() {
	def := DefConfig()

	if c.Logger == nil {
		c.Logger = def.Logger
	}
	if c.IndentWidth < 0 {
		c.IndentWidth = def.IndentWidth
	}
	if c.Workers < 1 {
		c.Workers = def.Workers
	}
}

// New instantiates a Translator.
func New(options ...Option) *Translator {
	cfg := DefConfig()
	for _, opt := range options {
		opt(cfg)
	}
	cfg.Validate()

	return &Translator{
		cfg:     cfg,
		grammar: grammar.MustCompile[Source](StartRule,
			grammar.WithLexer(fortranLexer),
			grammar.WithCaseInsensitive(IdentToken),
			grammar.WithLogger(cfg.Logger),
			grammar.WithDebug(cfg.Debug),
		),
	}
}

// Grammar retrieves the compiled Fortran grammar.
func (t *Translator) Grammar() *grammar.Grammar[Source] { return t.grammar }

// Parse parses src into a tree rooted at a StartRule node.
func (t *Translator) Parse(ctx context.Context, src string) (root *grammar.Node, err error) {
	if root, err = t.grammar.Parse(ctx, src); err != nil {
		err = errkind.NewGrammar(err)
	}

	return
}

// Translate converts src into Rust.
func (t *Translator) Translate(ctx context.Context, src string) (output string, err error) {
	var buffer strings.Builder
	if err = t.TranslateTo(ctx, &buffer, src); err != nil {
		return
	}
	output = buffer.String()

	return
}

// TranslateTo converts src into Rust, writing the output to w.
//
// Nothing is written on failure.
func (t *Translator) TranslateTo(ctx context.Context, w io.Writer, src string) (err error) {
	root, err := t.Parse(ctx, src)
	if err != nil {
		return
	}

	return t.Emit(ctx, w, root)
}

// Emit writes the Rust for a parse tree rooted at a StartRule node to w.
func (t *Translator) Emit(ctx context.Context, w io.Writer, root *grammar.Node) (err error) {
	e := &emitter{cfg: t.cfg}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil && t.cfg.Debug {
			// Skip expensive operation if not debug.
			t.cfg.Logger.Debugf("emitted: %q\nstate: %s", e.out.String(), spew.Sdump(e.state))
		}
	}()

	if err = e.block(ctx, root.Children()); err != nil {
		return
	}
	_, err = io.WriteString(w, e.out.String())

	return
}
