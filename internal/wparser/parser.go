// Package wparser turns Wandle source text into the labeled parse tree
// the semantic core consumes. The core — internal/model, internal/walker,
// and internal/checker — never imports this package directly; it only
// consumes internal/tree.Node. wparser exists so cmd/wandle and
// pkg/wandle have something to feed the core end to end.
//
// It is a hand-rolled recursive-descent parser over internal/wlexer, in
// the structural style of funxy's own internal/parser (funxy never reaches
// for a parser generator either). The grammar it implements is a direct
// transliteration of the Arpeggio PEG grammar in
// original_source/wandle/arpeggio_parse.py, producing the exact node
// shapes the rest of this repo's packages expect.
package wparser

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/token"
	"github.com/wandlelang/wandle/internal/tree"
	"github.com/wandlelang/wandle/internal/wlexer"
)

type parser struct {
	lex *wlexer.Lexer
}

// Parse scans and parses Wandle DSL source (already comment-stripped by the
// caller — see internal/commentstrip) and returns the root "_grammar" node,
// or a diagnostics.Error describing the first malformed construct.
func Parse(src string) (tree.Node, *diagnostics.Error) {
	p := &parser{lex: wlexer.New(src)}
	root, err := p.parseGrammar()
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (p *parser) fail(format string, args ...any) *diagnostics.Error {
	return diagnostics.New(diagnostics.ErrMalformedSyntax, p.lex.Pos(), format, args...)
}

func (p *parser) expectLiteral(lit string) (token.Token, *diagnostics.Error) {
	tok, ok := p.lex.Literal(lit)
	if !ok {
		return token.Token{}, p.fail("expected %q", lit)
	}
	return tok, nil
}

func (p *parser) parseGrammar() (tree.Node, *diagnostics.Error) {
	root := tree.NewNonTerminal("_grammar", token.Token{})
	for !p.lex.AtEOF() {
		decl, err := p.parseTopDecl()
		if err != nil {
			return nil, err
		}
		root.Append(decl)
	}
	root.Append(tree.NewTerminal(token.Token{Kind: token.EOF, Lexeme: "EOF"}))
	return root, nil
}

func (p *parser) parseTopDecl() (tree.Node, *diagnostics.Error) {
	switch {
	case p.lex.PeekLiteral("class"):
		return p.parseClassGram()
	case p.lex.PeekLiteral("generic"):
		return p.parseGenericGram()
	case p.lex.PeekLiteral("single"):
		return p.parseSingleGram()
	case p.lex.PeekLiteral("alias"):
		return p.parseAliasGram()
	case p.lex.PeekLiteral("flow"):
		return p.parseFlowGram()
	default:
		return nil, p.fail("expected a class, generic, single, alias, or flow declaration")
	}
}

func (p *parser) parseClassGram() (tree.Node, *diagnostics.Error) {
	kwClass, _ := p.expectLiteral("class")
	name := p.lex.NextWord()

	var inner tree.Node
	if p.lex.PeekLiteral("is") {
		kwIs, _ := p.expectLiteral("is")
		inhList, e := p.parseInhList()
		if e != nil {
			return nil, e
		}
		if p.lex.PeekLiteral("{") {
			block, e := p.parseCgsBlock()
			if e != nil {
				return nil, e
			}
			inner = tree.NewNonTerminal("_class_inh_impl", kwClass,
				tree.NewTerminal(kwClass), tree.NewTerminal(name), tree.NewTerminal(kwIs), inhList, block)
		} else {
			dot, e := p.expectLiteral(".")
			if e != nil {
				return nil, e
			}
			inner = tree.NewNonTerminal("_class_inh_stub", kwClass,
				tree.NewTerminal(kwClass), tree.NewTerminal(name), tree.NewTerminal(kwIs), inhList, tree.NewTerminal(dot))
		}
	} else if p.lex.PeekLiteral("{") {
		block, e := p.parseCgsBlock()
		if e != nil {
			return nil, e
		}
		inner = tree.NewNonTerminal("_class_base_impl", kwClass,
			tree.NewTerminal(kwClass), tree.NewTerminal(name), block)
	} else {
		dot, e := p.expectLiteral(".")
		if e != nil {
			return nil, e
		}
		inner = tree.NewNonTerminal("_class_base_stub", kwClass,
			tree.NewTerminal(kwClass), tree.NewTerminal(name), tree.NewTerminal(dot))
	}
	return tree.NewNonTerminal("_class_gram", kwClass, inner), nil
}

func (p *parser) parseInhList() (tree.Node, *diagnostics.Error) {
	list := tree.NewNonTerminal("_class_inh_list", token.Token{})
	first := p.lex.NextWord()
	if first.Lexeme == "" {
		return nil, p.fail("expected a parent class name")
	}
	list.Append(tree.NewTerminal(first))
	for p.lex.PeekLiteral(",") {
		comma, _ := p.expectLiteral(",")
		next := p.lex.NextWord()
		if next.Lexeme == "" {
			return nil, p.fail("expected a parent class name after ','")
		}
		list.Append(tree.NewTerminal(comma), tree.NewTerminal(next))
	}
	return list, nil
}

func (p *parser) parseGenericGram() (tree.Node, *diagnostics.Error) {
	kwGeneric, _ := p.expectLiteral("generic")
	name := p.lex.NextType()
	if name.Lexeme == "" {
		return nil, p.fail("expected a generic name")
	}
	caps, err := p.parseCsepCaps()
	if err != nil {
		return nil, err
	}

	var inner tree.Node
	if p.lex.PeekLiteral("{") {
		block, e := p.parseCgsBlock()
		if e != nil {
			return nil, e
		}
		inner = tree.NewNonTerminal("_generic_impl", kwGeneric,
			tree.NewTerminal(kwGeneric), tree.NewTerminal(name), caps, block)
	} else {
		dot, e := p.expectLiteral(".")
		if e != nil {
			return nil, e
		}
		inner = tree.NewNonTerminal("_generic_stub", kwGeneric,
			tree.NewTerminal(kwGeneric), tree.NewTerminal(name), caps, tree.NewTerminal(dot))
	}
	return tree.NewNonTerminal("_generic_gram", kwGeneric, inner), nil
}

func (p *parser) parseCsepCaps() (tree.Node, *diagnostics.Error) {
	list := tree.NewNonTerminal("_csep_caps", token.Token{})
	first := p.lex.NextCaps()
	if first.Lexeme == "" {
		return nil, p.fail("expected a template parameter name")
	}
	list.Append(tree.NewTerminal(first))
	for p.lex.PeekLiteral(",") {
		comma, _ := p.expectLiteral(",")
		next := p.lex.NextCaps()
		if next.Lexeme == "" {
			return nil, p.fail("expected a template parameter name after ','")
		}
		list.Append(tree.NewTerminal(comma), tree.NewTerminal(next))
	}
	return list, nil
}

func (p *parser) parseSingleGram() (tree.Node, *diagnostics.Error) {
	kwSingle, _ := p.expectLiteral("single")
	name := p.lex.NextWord()
	if name.Lexeme == "" {
		return nil, p.fail("expected a single name")
	}

	var inner tree.Node
	if p.lex.PeekLiteral("{") {
		block, e := p.parseCgsBlock()
		if e != nil {
			return nil, e
		}
		inner = tree.NewNonTerminal("_single_impl", kwSingle,
			tree.NewTerminal(kwSingle), tree.NewTerminal(name), block)
	} else {
		dot, e := p.expectLiteral(".")
		if e != nil {
			return nil, e
		}
		inner = tree.NewNonTerminal("_single_stub", kwSingle,
			tree.NewTerminal(kwSingle), tree.NewTerminal(name), tree.NewTerminal(dot))
	}
	return tree.NewNonTerminal("_single_gram", kwSingle, inner), nil
}

func (p *parser) parseAliasGram() (tree.Node, *diagnostics.Error) {
	kwAlias, _ := p.expectLiteral("alias")
	name := p.lex.NextType()
	if name.Lexeme == "" {
		return nil, p.fail("expected an alias name")
	}
	kwTo, e := p.expectLiteral("to")
	if e != nil {
		return nil, e
	}
	target := p.lex.NextType()
	if target.Lexeme == "" {
		return nil, p.fail("expected an alias target type")
	}
	dot, e := p.expectLiteral(".")
	if e != nil {
		return nil, e
	}
	return tree.NewNonTerminal("_alias_gram", kwAlias,
		tree.NewTerminal(kwAlias), tree.NewTerminal(name), tree.NewTerminal(kwTo), tree.NewTerminal(target), tree.NewTerminal(dot)), nil
}

func (p *parser) parseFlowGram() (tree.Node, *diagnostics.Error) {
	kwFlow, _ := p.expectLiteral("flow")
	name := p.lex.NextWord()
	if name.Lexeme == "" {
		return nil, p.fail("expected a flow name")
	}

	var inner tree.Node
	if p.lex.PeekLiteral("{") {
		block, e := p.parseCbGrammar()
		if e != nil {
			return nil, e
		}
		inner = tree.NewNonTerminal("_flow_impl", kwFlow,
			tree.NewTerminal(kwFlow), tree.NewTerminal(name), block)
	} else {
		dot, e := p.expectLiteral(".")
		if e != nil {
			return nil, e
		}
		inner = tree.NewNonTerminal("_flow_stub", kwFlow,
			tree.NewTerminal(kwFlow), tree.NewTerminal(name), tree.NewTerminal(dot))
	}
	return tree.NewNonTerminal("_flow_gram", kwFlow, inner), nil
}
