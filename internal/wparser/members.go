package wparser

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/tree"
)

// parseCgsBlock parses the member block shared by class/generic/single
// bodies: `{ (var-stub | var-ready | async-member | sync-member)* }`.
func (p *parser) parseCgsBlock() (tree.Node, *diagnostics.Error) {
	open, err := p.expectLiteral("{")
	if err != nil {
		return nil, err
	}
	block := tree.NewNonTerminal("_cgs_block", open, tree.NewTerminal(open))
	for !p.lex.PeekLiteral("}") {
		member, e := p.parseCgsMember()
		if e != nil {
			return nil, e
		}
		block.Append(member)
	}
	close, err := p.expectLiteral("}")
	if err != nil {
		return nil, err
	}
	block.Append(tree.NewTerminal(close))
	return block, nil
}

func (p *parser) parseCgsMember() (tree.Node, *diagnostics.Error) {
	switch {
	case p.lex.PeekLiteral("async"):
		return p.parseCgsFunc("async", "_cgs_async_stub", "_cgs_async_impl")
	case p.lex.PeekLiteral("sync"):
		return p.parseCgsFunc("sync", "_cgs_sync_stub", "_cgs_sync_impl")
	default:
		return p.parseCgsVar()
	}
}

func (p *parser) parseCgsFunc(kw, stubRule, implRule string) (tree.Node, *diagnostics.Error) {
	kwTok, _ := p.expectLiteral(kw)
	rtype := p.lex.NextType()
	if rtype.Lexeme == "" {
		return nil, p.fail("expected a return type after %q", kw)
	}
	name := p.lex.NextWord()
	if name.Lexeme == "" {
		return nil, p.fail("expected a member name")
	}
	sig, err := p.parseMethodSig()
	if err != nil {
		return nil, err
	}

	if p.lex.PeekLiteral("{") {
		body, e := p.parseCbGrammar()
		if e != nil {
			return nil, e
		}
		return tree.NewNonTerminal(implRule, kwTok,
			tree.NewTerminal(kwTok), tree.NewTerminal(rtype), tree.NewTerminal(name), sig, body), nil
	}
	dot, e := p.expectLiteral(";")
	if e != nil {
		return nil, e
	}
	return tree.NewNonTerminal(stubRule, kwTok,
		tree.NewTerminal(kwTok), tree.NewTerminal(rtype), tree.NewTerminal(name), sig, tree.NewTerminal(dot)), nil
}

func (p *parser) parseMethodSig() (tree.Node, *diagnostics.Error) {
	open, err := p.expectLiteral("(")
	if err != nil {
		return nil, err
	}
	sig := tree.NewNonTerminal("_method_sig", open, tree.NewTerminal(open))
	if !p.lex.PeekLiteral(")") {
		pair, e := p.parseSigPair()
		if e != nil {
			return nil, e
		}
		sig.Append(pair)
		for p.lex.PeekLiteral(",") {
			comma, _ := p.expectLiteral(",")
			pair, e := p.parseSigPair()
			if e != nil {
				return nil, e
			}
			sig.Append(tree.NewTerminal(comma), pair)
		}
	}
	close, err := p.expectLiteral(")")
	if err != nil {
		return nil, err
	}
	sig.Append(tree.NewTerminal(close))
	return sig, nil
}

func (p *parser) parseSigPair() (tree.Node, *diagnostics.Error) {
	ptype := p.lex.NextType()
	if ptype.Lexeme == "" {
		return nil, p.fail("expected a parameter type")
	}
	pname := p.lex.NextWord()
	if pname.Lexeme == "" {
		return nil, p.fail("expected a parameter name")
	}
	return tree.NewNonTerminal("_normal_sig_pair", ptype, tree.NewTerminal(ptype), tree.NewTerminal(pname)), nil
}

func (p *parser) parseCgsVar() (tree.Node, *diagnostics.Error) {
	ctype := p.lex.NextType()
	if ctype.Lexeme == "" {
		return nil, p.fail("expected a member declaration")
	}
	name := p.lex.NextWord()
	if name.Lexeme == "" {
		return nil, p.fail("expected a field name after type %q", ctype.Lexeme)
	}
	if p.lex.PeekLiteral("!") {
		bang, _ := p.expectLiteral("!")
		return tree.NewNonTerminal("_cgs_var_ready", ctype, tree.NewTerminal(ctype), tree.NewTerminal(name), tree.NewTerminal(bang)), nil
	}
	semi, err := p.expectLiteral(";")
	if err != nil {
		return nil, err
	}
	return tree.NewNonTerminal("_cgs_var_stub", ctype, tree.NewTerminal(ctype), tree.NewTerminal(name), tree.NewTerminal(semi)), nil
}
