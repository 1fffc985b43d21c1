package wparser

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/tree"
)

// parseCbGrammar parses a function or flow body: `_cb_grammar` is
// `{ statement* }`, where each statement is one of the checker's
// recognized statement forms.
func (p *parser) parseCbGrammar() (tree.Node, *diagnostics.Error) {
	open, err := p.expectLiteral("{")
	if err != nil {
		return nil, err
	}
	body := tree.NewNonTerminal("_cb_grammar", open, tree.NewTerminal(open))
	for !p.lex.PeekLiteral("}") {
		stmt, e := p.parseCbStatement()
		if e != nil {
			return nil, e
		}
		body.Append(stmt)
	}
	close, err := p.expectLiteral("}")
	if err != nil {
		return nil, err
	}
	body.Append(tree.NewTerminal(close))
	return body, nil
}

// parseCbStatement dispatches on the first lexeme of a statement: `note`
// and `return` are reserved words, a leading type name starts one of the
// var forms, and anything else is a dotref-led assignment or call.
func (p *parser) parseCbStatement() (tree.Node, *diagnostics.Error) {
	switch {
	case p.lex.PeekLiteral("note"):
		return p.parseCbNote()
	case p.lex.PeekLiteral("return"):
		return p.parseCbReturn()
	default:
		return p.parseCbLine()
	}
}

// parseCbNote parses `_cb_note`: `note { ... }`, where the body is a run
// of freeform note-charset words concatenated space-separated, matching
// the original's simple token-join behavior.
func (p *parser) parseCbNote() (tree.Node, *diagnostics.Error) {
	kwNote, _ := p.expectLiteral("note")
	open, err := p.expectLiteral("{")
	if err != nil {
		return nil, err
	}
	note := tree.NewNonTerminal("_cb_note", kwNote, tree.NewTerminal(kwNote), tree.NewTerminal(open))
	for !p.lex.PeekLiteral("}") {
		word := p.lex.NextNoteWord()
		if word.Lexeme == "" {
			return nil, p.fail("expected the closing '}' of a note block")
		}
		note.Append(tree.NewTerminal(word))
	}
	close, err := p.expectLiteral("}")
	if err != nil {
		return nil, err
	}
	note.Append(tree.NewTerminal(close))
	return note, nil
}

// parseCbReturn parses `_cb_return`: `return expr;`.
func (p *parser) parseCbReturn() (tree.Node, *diagnostics.Error) {
	kwReturn, _ := p.expectLiteral("return")
	expr, e := p.parseDotRef()
	if e != nil {
		return nil, e
	}
	semi, err := p.expectLiteral(";")
	if err != nil {
		return nil, err
	}
	return tree.NewNonTerminal("_cb_return", kwReturn,
		tree.NewTerminal(kwReturn), expr, tree.NewTerminal(semi)), nil
}

// parseCbLine parses every statement that is not `note` or `return`: the
// bare var forms (`Type name;` / `Type name!`), the var-plus-call forms
// (`Type name = rhs(args);` / `Type name << rhs(args);`), and the
// dotref-led forms (`lhs = rhs;`, `lhs = rhs(args);`, `lhs << rhs(args);`).
// The leading token decides the branch: a capitalized word is always a
// type, so it can only start a var declaration.
func (p *parser) parseCbLine() (tree.Node, *diagnostics.Error) {
	if p.peekIsType() {
		return p.parseCbVarLine()
	}
	return p.parseCbDotrefLine()
}

// peekIsType reports whether the upcoming word token would lex as a TYPE
// (its first rune is uppercase), without consuming anything.
func (p *parser) peekIsType() bool {
	save := *p.lex
	tok := p.lex.NextWord()
	*p.lex = save
	return len(tok.Lexeme) > 0 && tok.Lexeme[0] >= 'A' && tok.Lexeme[0] <= 'Z'
}

func (p *parser) parseCbVarLine() (tree.Node, *diagnostics.Error) {
	ctype := p.lex.NextType()
	if ctype.Lexeme == "" {
		return nil, p.fail("expected a type name")
	}
	name := p.lex.NextWord()
	if name.Lexeme == "" {
		return nil, p.fail("expected a variable name after type %q", ctype.Lexeme)
	}

	switch {
	case p.lex.PeekLiteral("!"):
		bang, _ := p.expectLiteral("!")
		return tree.NewNonTerminal("_cb_var_ready", ctype,
			tree.NewTerminal(ctype), tree.NewTerminal(name), tree.NewTerminal(bang)), nil

	case p.lex.PeekLiteral("<<"):
		arr, _ := p.expectLiteral("<<")
		rhs, args, e := p.parseCall()
		if e != nil {
			return nil, e
		}
		semi, err := p.expectLiteral(";")
		if err != nil {
			return nil, err
		}
		return tree.NewNonTerminal("_cb_var_async_set", ctype,
			tree.NewTerminal(ctype), tree.NewTerminal(name), tree.NewTerminal(arr), rhs, args, tree.NewTerminal(semi)), nil

	case p.lex.PeekLiteral("="):
		eq, _ := p.expectLiteral("=")
		rhs, args, e := p.parseCall()
		if e != nil {
			return nil, e
		}
		semi, err := p.expectLiteral(";")
		if err != nil {
			return nil, err
		}
		return tree.NewNonTerminal("_cb_var_sync_set", ctype,
			tree.NewTerminal(ctype), tree.NewTerminal(name), tree.NewTerminal(eq), rhs, args, tree.NewTerminal(semi)), nil

	default:
		semi, err := p.expectLiteral(";")
		if err != nil {
			return nil, err
		}
		return tree.NewNonTerminal("_cb_var_stub", ctype,
			tree.NewTerminal(ctype), tree.NewTerminal(name), tree.NewTerminal(semi)), nil
	}
}

func (p *parser) parseCbDotrefLine() (tree.Node, *diagnostics.Error) {
	lhs, e := p.parseDotRef()
	if e != nil {
		return nil, e
	}

	switch {
	case p.lex.PeekLiteral("<<"):
		arr, _ := p.expectLiteral("<<")
		rhs, args, e := p.parseCall()
		if e != nil {
			return nil, e
		}
		semi, err := p.expectLiteral(";")
		if err != nil {
			return nil, err
		}
		return tree.NewNonTerminal("_cb_async_from", arr,
			lhs, tree.NewTerminal(arr), rhs, args, tree.NewTerminal(semi)), nil

	case p.lex.PeekLiteral("="):
		eq, _ := p.expectLiteral("=")
		rhs, args, e := p.parseCallTarget()
		if e != nil {
			return nil, e
		}
		semi, err := p.expectLiteral(";")
		if err != nil {
			return nil, err
		}
		if args == nil {
			return tree.NewNonTerminal("_cb_sync_copy", eq,
				lhs, tree.NewTerminal(eq), rhs, tree.NewTerminal(semi)), nil
		}
		return tree.NewNonTerminal("_cb_sync_from", eq,
			lhs, tree.NewTerminal(eq), rhs, args, tree.NewTerminal(semi)), nil

	default:
		return nil, p.fail("expected '=' or '<<' after a dotref")
	}
}

// parseCallTarget parses a dotref that may optionally be followed by a
// `_cb_param_list`. It reports args == nil when no parameter list followed,
// the caller distinguishing a bare copy from a call.
func (p *parser) parseCallTarget() (rhs tree.Node, args tree.Node, err *diagnostics.Error) {
	rhs, e := p.parseDotRef()
	if e != nil {
		return nil, nil, e
	}
	if p.lex.PeekLiteral("(") {
		args, e = p.parseParamList()
		if e != nil {
			return nil, nil, e
		}
	}
	return rhs, args, nil
}

// parseCall parses a dotref that MUST be followed by a `_cb_param_list` —
// used by the var-plus-call statement forms, which always combine a
// declaration with a call, never a bare copy.
func (p *parser) parseCall() (rhs tree.Node, args tree.Node, err *diagnostics.Error) {
	rhs, e := p.parseDotRef()
	if e != nil {
		return nil, nil, e
	}
	args, e = p.parseParamList()
	if e != nil {
		return nil, nil, e
	}
	return rhs, args, nil
}
