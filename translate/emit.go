// SPDX-License-Identifier: MIT
package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/fisherprime/fortrs/errkind"
	"gitlab.com/fisherprime/fortrs/grammar"
	"gitlab.com/fisherprime/fortrs/lexer"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// emitter holds the output & block depth of one translation.
type emitter struct {
	cfg   *Config
	out   strings.Builder
	state EmissionState
}

const printFunction = "print"

var (
	// rangePattern extracts the lower & upper bounds and the optional step of a loop range.
	rangePattern = regexp.MustCompile(`^(\d+)\s*,\s*(\d+)(?:\s*,\s*(\d+))?$`)

	nativeTypes = map[string]string{
		"integer": "usize",
		"real":    "f64",
	}
)

// NativeType maps a Fortran type name to its Rust equivalent, case-insensitively.
func NativeType(fortranType string) (native string, ok bool) {
	native, ok = nativeTypes[strings.ToLower(strings.TrimSpace(fortranType))]
	return
}

// SourceType maps a Rust type name to its Fortran equivalent.
func SourceType(native string) (fortranType string, ok bool) {
	for key, value := range nativeTypes {
		if value == native {
			return key, true
		}
	}

	return
}

// SourceTypes lists the supported Fortran type names.
func SourceTypes() (types []string) {
	types = maps.Keys(nativeTypes)
	slices.Sort(types)

	return
}

// block emits nodes in document order until the end of input.
func (e *emitter) block(ctx context.Context, nodes grammar.List) error {
	for _, n := range nodes {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		stop, err := e.node(ctx, n)
		if err != nil || stop {
			return err
		}
	}

	return nil
}

func (e *emitter) node(ctx context.Context, n *grammar.Node) (stop bool, err error) {
	if e.cfg.Debug {
		e.cfg.Logger.Debugf("emit %s %v at depth %d", n.Rule(), n.Span(), e.state.Depth())
	}

	switch KindOf(n.Rule()) {
	case RuleProgramKeyword:
		e.out.WriteString("fn ")
	case RuleProgramName:
		fmt.Fprintf(&e.out, "%s() {\n", strings.TrimSpace(n.Text()))
		e.state.Enter()
	case RuleEndProgramKeyword:
		if err = e.state.Leave(n.Span().Start); err != nil {
			return
		}
		e.indent()
		e.out.WriteString("}\n")
	case RuleDeclareVariable:
		err = e.declareVariable(n)
	case RuleAssignToVariable:
		err = e.assignToVariable(n)
	case RuleCallFunction:
		err = e.callFunction(n)
	case RuleDoStatement:
		err = e.doStatement(ctx, n)
	case RuleNum:
		var text string
		if text, err = number(n); err == nil {
			e.out.WriteString(text)
		}
	case RuleAdd:
		e.out.WriteString(" + ")
	case RuleEOI:
		stop = true
	case RuleUnknown:
		err = e.unexpected(n)
	default:
		// Newlines, `implicit none` & known rules out of place are benign.
	}

	return
}

// declareVariable emits a binding per declared identifier.
func (e *emitter) declareVariable(n *grammar.Node) error {
	var native string

	for _, child := range n.Children() {
		switch KindOf(child.Rule()) {
		case RuleVariableType:
			var ok bool
			if native, ok = NativeType(child.Text()); !ok {
				if err := e.unexpected(child); err != nil {
					return err
				}
			}
		case RuleIdentifier:
			if native == "" {
				continue
			}

			e.indent()
			fmt.Fprintf(&e.out, "let mut %s: %s;\n", strings.TrimSpace(child.Text()), native)
		default:
			if err := e.unexpected(child); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *emitter) assignToVariable(n *grammar.Node) error {
	var name string
	var value strings.Builder

	for _, child := range n.Children() {
		switch KindOf(child.Rule()) {
		case RuleIdentifier:
			// The first identifier is the assignment's target.
			if name == "" {
				name = strings.TrimSpace(child.Text())
				continue
			}
			value.WriteString(strings.TrimSpace(child.Text()))
		case RuleNum:
			text, err := number(child)
			if err != nil {
				return err
			}
			value.WriteString(text)
		case RuleAdd:
			value.WriteString(" + ")
		default:
			if err := e.unexpected(child); err != nil {
				return err
			}
		}
	}

	if name != "" && value.Len() > 0 {
		e.indent()
		fmt.Fprintf(&e.out, "%s = %s;\n", name, value.String())
	}

	return nil
}

func (e *emitter) callFunction(n *grammar.Node) error {
	var name, args string

	for _, child := range n.Children() {
		switch KindOf(child.Rule()) {
		case RuleCallKeyword:
		case RuleFuncName:
			name = strings.TrimSpace(child.Text())
		case RuleFuncArgs:
			args = strings.TrimSpace(child.Text())
		default:
			if err := e.unexpected(child); err != nil {
				return err
			}
		}
	}

	e.indent()
	if !strings.EqualFold(name, printFunction) {
		fmt.Fprintf(&e.out, "%s(%s);\n", name, args)
		return nil
	}

	switch count := len(splitArgs(args)); count {
	case 0:
		e.out.WriteString("println!();\n")
	default:
		format := strings.TrimSuffix(strings.Repeat("{} ", count), " ")
		fmt.Fprintf(&e.out, "println!(%q, %s);\n", format, args)
	}

	return nil
}

func (e *emitter) doStatement(ctx context.Context, n *grammar.Node) error {
	for _, child := range n.Children() {
		switch KindOf(child.Rule()) {
		case RuleDoKeyword:
			e.indent()
			e.out.WriteString("for ")
		case RuleDoVariable:
			fmt.Fprintf(&e.out, "%s in ", strings.TrimSpace(child.Text()))
		case RuleRangeExpr:
			text := strings.TrimSpace(child.Text())

			bounds := rangePattern.FindStringSubmatch(text)
			switch {
			case bounds == nil:
				return errkind.NewMalformedRange(child.Span().Start, text)
			case bounds[3] != "":
				fmt.Fprintf(&e.out, "(%s..%s).step_by(%s) {\n", bounds[1], bounds[2], bounds[3])
			default:
				fmt.Fprintf(&e.out, "%s..%s {\n", bounds[1], bounds[2])
			}
		case RuleDoLoopBody:
			e.state.Enter()
			if err := e.block(ctx, child.Children()); err != nil {
				return err
			}
			if err := e.state.Leave(child.Span().End); err != nil {
				return err
			}
		case RuleEndDoKeyword:
			e.indent()
			e.out.WriteString("}\n")
		default:
			if err := e.unexpected(child); err != nil {
				return err
			}
		}
	}

	return nil
}

// unexpected reports a node no emission exists for.
//
// With diagnostics enabled a diagnostic block is emitted in place of failing.
func (e *emitter) unexpected(n *grammar.Node) error {
	span := n.Span()
	if !e.cfg.Diagnostics {
		return errkind.NewUnexpectedRule(n.Rule(), span.Start, span.End, n.Text())
	}

	e.cfg.Logger.Warnf("unclassified rule %s at [%d, %d)", n.Rule(), span.Start, span.End)
	if e.cfg.Debug {
		e.cfg.Logger.Debugf("unclassified node: %s", dumper.Sdump(n))
	}

	fmt.Fprintf(&e.out, "%s\nUnclassified rule\nRule:    %s\nSpan:    [%d, %d)\nText:    %q\n%s\n",
		diagnosticRuler, n.Rule(), span.Start, span.End, n.Text(), diagnosticRuler)

	return nil
}

func (e *emitter) indent() {
	e.out.WriteString(strings.Repeat(" ", e.cfg.IndentWidth*e.state.Depth()))
}

// number validates a numeric literal with the tokenizer, returning its text.
func number(n *grammar.Node) (text string, err error) {
	text = n.Text()
	if _, _, err = lexer.TokenizeNumber(text); err != nil {
		err = errkind.NewMessageWithLocation(n.Span().Start, "Couldn't read the number", err)
	}

	return
}

// splitArgs splits an argument list at its top-level commas.
func splitArgs(args string) (list []string) {
	if strings.TrimSpace(args) == "" {
		return
	}

	var (
		depth int
		quote rune
		start int
	)
	for index, r := range args {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ',' && depth == 0:
			list = append(list, strings.TrimSpace(args[start:index]))
			start = index + 1
		}
	}
	list = append(list, strings.TrimSpace(args[start:]))

	return
}
