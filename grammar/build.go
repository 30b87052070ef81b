// SPDX-License-Identifier: MIT
package grammar

import (
	"context"
	"reflect"

	"github.com/alecthomas/participle/v2/lexer"
)

// builder converts a participle AST into Nodes.
type builder struct {
	ctx    context.Context
	source *Source
}

const (
	parserTag = "parser"

	posField    = "Pos"
	tokensField = "Tokens"
)

var (
	tokenType     = reflect.TypeOf(lexer.Token{})
	tokensType    = reflect.TypeOf([]lexer.Token{})
	positionType  = reflect.TypeOf(lexer.Position{})
	unmatchedSpan = Span{Start: -1, End: -1}
)

// nodes converts v, producing a single Node if rule is set or the nodes of v's fields otherwise.
func (b *builder) nodes(v reflect.Value, rule string) (list List) {
	if b.ctx.Err() != nil {
		return
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	switch {
	case v.Type() == tokenType:
		if span := tokenSpan(v.Interface().(lexer.Token)); rule != "" && span != unmatchedSpan {
			list = append(list, NewNode(b.source, rule, span))
		}
	case v.Type() == tokensType:
		if span := tokensSpan(v.Interface().([]lexer.Token)); rule != "" && span != unmatchedSpan {
			list = append(list, NewNode(b.source, rule, span))
		}
	case v.Kind() == reflect.Slice:
		for index := 0; index < v.Len(); index++ {
			list = append(list, b.nodes(v.Index(index), rule)...)
		}
	case v.Kind() == reflect.Struct:
		var children List
		for index := 0; index < v.NumField(); index++ {
			field := v.Type().Field(index)
			if _, ok := field.Tag.Lookup(parserTag); !ok || !field.IsExported() {
				continue
			}
			children = append(children, b.nodes(v.Field(index), ruleName(field))...)
		}

		if rule == "" {
			return children
		}
		list = append(list, NewNode(b.source, rule, structSpan(v, children), children...))
	}

	return
}

// structSpan spans a struct by its consumed tokens, its position or its children in that order.
func structSpan(v reflect.Value, children List) Span {
	if tokens := v.FieldByName(tokensField); tokens.IsValid() && tokens.Type() == tokensType {
		if span := tokensSpan(tokens.Interface().([]lexer.Token)); span != unmatchedSpan {
			return span
		}
	}

	if len(children) > 0 {
		return Span{Start: children[0].Span().Start, End: children[len(children)-1].Span().End}
	}

	if pos := v.FieldByName(posField); pos.IsValid() && pos.Type() == positionType {
		offset := pos.Interface().(lexer.Position).Offset
		return Span{Start: offset, End: offset}
	}

	return Span{}
}

func tokenSpan(tok lexer.Token) Span {
	if tok.Value == "" || tok.EOF() {
		return unmatchedSpan
	}

	return Span{Start: tok.Pos.Offset, End: tok.Pos.Offset + len(tok.Value)}
}

func tokensSpan(tokens []lexer.Token) Span {
	for len(tokens) > 0 && tokens[len(tokens)-1].EOF() {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return unmatchedSpan
	}

	first, last := tokens[0], tokens[len(tokens)-1]

	return Span{Start: first.Pos.Offset, End: last.Pos.Offset + len(last.Value)}
}
