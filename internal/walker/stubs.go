package walker

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/tree"
)

// stubPass is the first declaration pass: register every root-level name
// with an empty declaration, without looking at any member bodies.
func stubPass(m *model.Model, decls []tree.Node) *diagnostics.Error {
	for _, decl := range decls {
		var err *diagnostics.Error
		switch decl.RuleName() {
		case "_class_gram":
			err = stubClass(m, decl)
		case "_generic_gram":
			err = stubGeneric(m, decl)
		case "_single_gram":
			err = stubSingle(m, decl)
		case "_alias_gram":
			err = stubAlias(m, decl)
		case "_flow_gram":
			err = stubFlow(m, decl)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func stubClass(m *model.Model, decl tree.Node) *diagnostics.Error {
	inner := tree.Child(decl, 0)
	nameTok := tree.Child(inner, 1).Token()
	ch, err := declareOrPromote(m, nameTok.Lexeme, nameTok)
	if err != nil {
		return err
	}
	cl := m.Class(ch)
	switch inner.RuleName() {
	case "_class_inh_stub", "_class_inh_impl":
		cl.Parents = sepListNames(tree.Child(inner, 3))
	}
	return nil
}

func stubGeneric(m *model.Model, decl tree.Node) *diagnostics.Error {
	inner := tree.Child(decl, 0)
	nameTok := tree.Child(inner, 1).Token()
	if err := requireFreeName(m, nameTok.Lexeme, nameTok); err != nil {
		return err
	}
	params := sepListNames(tree.Child(inner, 2))
	m.DeclareGeneric(nameTok.Lexeme, params)
	return nil
}

func stubSingle(m *model.Model, decl tree.Node) *diagnostics.Error {
	inner := tree.Child(decl, 0)
	nameTok := tree.Child(inner, 1).Token()
	if err := requireFreeName(m, nameTok.Lexeme, nameTok); err != nil {
		return err
	}
	m.DeclareSingle(nameTok.Lexeme)
	return nil
}

func stubAlias(m *model.Model, decl tree.Node) *diagnostics.Error {
	nameTok := tree.Child(decl, 1).Token()
	targetTok := tree.Child(decl, 3).Token()
	if err := requireFreeName(m, nameTok.Lexeme, nameTok); err != nil {
		return err
	}
	m.DeclareAlias(nameTok.Lexeme, targetTok.Lexeme, nameTok)
	return nil
}

func stubFlow(m *model.Model, decl tree.Node) *diagnostics.Error {
	inner := tree.Child(decl, 0)
	nameTok := tree.Child(inner, 1).Token()
	if err := requireFreeName(m, nameTok.Lexeme, nameTok); err != nil {
		return err
	}
	m.DeclareFlow(nameTok.Lexeme)
	return nil
}
