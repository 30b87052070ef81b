// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

const (
	// DefaultCommentMarker is the rune starting a comment running to the end of the line.
	DefaultCommentMarker = '!'

	commentTerminator = "\n"

	emptyRune rune = 0
)

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithCommentMarker configures the rune starting a comment.
func WithCommentMarker(r rune) Option { return func(l *Lexer) { l.commentMarker = r } }

// validate populates missing options with defaults.
func (l *Lexer) validate() {
	if l.commentMarker == emptyRune {
		l.commentMarker = DefaultCommentMarker
	}
	if l.logger == nil {
		l.logger = logrus.New()
	}
}
