// SPDX-License-Identifier: MIT

// Package errkind holds the failure kinds shared by the lexing and translation front ends.
package errkind

import (
	"errors"
	"fmt"
)

type (
	// Kind identifies the variant of an Error.
	Kind int

	// Error is a closed set of failures carrying positional context.
	//
	// Only the fields relevant to Kind are populated.
	Error struct {
		// Cause is the wrapped failure, if any.
		Cause error

		// Message is a fixed diagnostic, or the detail of the added kinds.
		Message string

		// Text holds the source text involved in the failure.
		Text string

		Kind Kind

		// Offset is the absolute byte offset of the failure in the source.
		Offset int
		// End closes the span of an UnexpectedRule failure.
		End int

		// Char is the offending character of an UnknownCharacter failure.
		Char rune
	}
)

const (
	_                   Kind = iota // Consume 0 to start actual numbering at 1.
	UnexpectedEOF                   // No input remains where a token was expected.
	UnknownCharacter                // A character matches no token-start rule.
	MessageWithLocation             // A deeper scan failed at Offset.
	InvalidNumber                   // A numeric run could not be parsed.
	MalformedRange                  // A loop range does not match `N, M`.
	UnexpectedRule                  // A grammar rule the emitter cannot classify.
	UnbalancedBlock                 // A block was closed without being opened.
	Grammar                         // The grammar engine failed.
	Context                         // A fixed message annotating a deeper failure.
)

// Sentinels matched by Error.Is.
var (
	ErrUnexpectedEOF       = errors.New("unexpected EOF")
	ErrUnknownCharacter    = errors.New("unknown character")
	ErrMessageWithLocation = errors.New("message with location")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrMalformedRange      = errors.New("malformed range")
	ErrUnexpectedRule      = errors.New("unexpected rule")
	ErrUnbalancedBlock     = errors.New("unbalanced block")
	ErrGrammar             = errors.New("grammar failure")
	ErrContext             = errors.New("context")
)

var sentinels = map[Kind]error{
	UnexpectedEOF:       ErrUnexpectedEOF,
	UnknownCharacter:    ErrUnknownCharacter,
	MessageWithLocation: ErrMessageWithLocation,
	InvalidNumber:       ErrInvalidNumber,
	MalformedRange:      ErrMalformedRange,
	UnexpectedRule:      ErrUnexpectedRule,
	UnbalancedBlock:     ErrUnbalancedBlock,
	Grammar:             ErrGrammar,
	Context:             ErrContext,
}

// NewUnexpectedEOF instantiates an UnexpectedEOF Error.
func NewUnexpectedEOF() *Error { return &Error{Kind: UnexpectedEOF} }

// NewUnknownCharacter instantiates an UnknownCharacter Error.
func NewUnknownCharacter(ch rune) *Error { return &Error{Kind: UnknownCharacter, Char: ch} }

// NewMessageWithLocation wraps cause with an absolute offset & a fixed message.
func NewMessageWithLocation(offset int, message string, cause error) *Error {
	return &Error{Kind: MessageWithLocation, Offset: offset, Message: message, Cause: cause}
}

// NewInvalidNumber instantiates an InvalidNumber Error for text.
func NewInvalidNumber(text string, cause error) *Error {
	return &Error{Kind: InvalidNumber, Text: text, Cause: cause}
}

// NewMalformedRange instantiates a MalformedRange Error for the range text at offset.
func NewMalformedRange(offset int, text string) *Error {
	return &Error{Kind: MalformedRange, Offset: offset, Text: text}
}

// NewUnexpectedRule instantiates an UnexpectedRule Error for a node spanning [start, end).
func NewUnexpectedRule(rule string, start, end int, text string) *Error {
	return &Error{Kind: UnexpectedRule, Message: rule, Offset: start, End: end, Text: text}
}

// NewUnbalancedBlock instantiates an UnbalancedBlock Error at offset.
func NewUnbalancedBlock(offset int) *Error { return &Error{Kind: UnbalancedBlock, Offset: offset} }

// NewGrammar wraps a grammar engine failure.
func NewGrammar(cause error) *Error { return &Error{Kind: Grammar, Cause: cause} }

// NewContext annotates cause with message; the rendering omits the cause, Chain lists it.
func NewContext(message string, cause error) *Error {
	return &Error{Kind: Context, Message: message, Cause: cause}
}

// Error renders the failure as a one line JSON-like message.
//
// Locations are rendered as 1-based byte positions.
func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedEOF:
		return `msg: { "Unexpected EOF" }`
	case UnknownCharacter:
		return fmt.Sprintf(`{ "msg": "Unknown character %c." }`, e.Char)
	case MessageWithLocation:
		return fmt.Sprintf(`{ "location": %d, "msg": "%s" }`, e.Offset+1, e.Message)
	case InvalidNumber:
		return fmt.Sprintf(`{ "msg": "Invalid number %s." }`, e.Text)
	case MalformedRange:
		return fmt.Sprintf(`{ "location": %d, "msg": "Malformed range %q." }`, e.Offset+1, e.Text)
	case UnexpectedRule:
		return fmt.Sprintf(`{ "location": %d, "msg": "Unexpected rule %s: %q." }`, e.Offset+1, e.Message, e.Text)
	case UnbalancedBlock:
		return fmt.Sprintf(`{ "location": %d, "msg": "Block closed without being opened." }`, e.Offset+1)
	case Grammar:
		return `{ "msg": "Couldn't parse the source" }`
	case Context:
		return fmt.Sprintf(`{ "msg": "%s" }`, e.Message)
	default:
		return fmt.Sprintf(`{ "msg": "unknown error kind %d" }`, e.Kind)
	}
}

// Unwrap exposes the wrapped cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches the Kind's sentinel.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && sentinel == target
}

// Chain lists err & its causes, outermost first.
func Chain(err error) (chain []error) {
	for ; err != nil; err = errors.Unwrap(err) {
		chain = append(chain, err)
	}

	return
}
