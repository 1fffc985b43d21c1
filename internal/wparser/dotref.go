package wparser

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/tree"
)

// parseDotRef parses `_cb_dot_ref`: a.b.c — an ordered, non-empty sequence
// of identifier tokens with literal '.' separators left in as children, so
// downstream code filters them the same way the original Python did
// (`[n.value for n in node if n != '.']`).
func (p *parser) parseDotRef() (tree.Node, *diagnostics.Error) {
	first := p.lex.NextWord()
	if first.Lexeme == "" {
		return nil, p.fail("expected an identifier")
	}
	ref := tree.NewNonTerminal("_cb_dot_ref", first, tree.NewTerminal(first))
	for p.lex.PeekLiteral(".") {
		dot, _ := p.expectLiteral(".")
		next := p.lex.NextWord()
		if next.Lexeme == "" {
			return nil, p.fail("expected an identifier after '.'")
		}
		ref.Append(tree.NewTerminal(dot), tree.NewTerminal(next))
	}
	return ref, nil
}

// parseParamList parses `_cb_param_list`: '(' [dotref (',' dotref)*] ')'.
func (p *parser) parseParamList() (tree.Node, *diagnostics.Error) {
	open, err := p.expectLiteral("(")
	if err != nil {
		return nil, err
	}
	list := tree.NewNonTerminal("_cb_param_list", open, tree.NewTerminal(open))
	if !p.lex.PeekLiteral(")") {
		ref, e := p.parseDotRef()
		if e != nil {
			return nil, e
		}
		list.Append(ref)
		for p.lex.PeekLiteral(",") {
			comma, _ := p.expectLiteral(",")
			ref, e := p.parseDotRef()
			if e != nil {
				return nil, e
			}
			list.Append(tree.NewTerminal(comma), ref)
		}
	}
	close, err := p.expectLiteral(")")
	if err != nil {
		return nil, err
	}
	list.Append(tree.NewTerminal(close))
	return list, nil
}
