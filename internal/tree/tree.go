// Package tree is the parse-tree adapter. It wraps whatever a surface
// grammar produced (here, internal/wparser, but any producer honoring
// this shape qualifies) behind a uniform node interface: a rule name, an
// optional token value, and ordered children. Nothing downstream of this
// package needs to know how the tree was produced.
package tree

import "github.com/wandlelang/wandle/internal/token"

// Node is the uniform interface every parse-tree entry exposes. A Terminal
// carries a token value and no children; a NonTerminal carries a rule name
// and ordered children but no direct value.
type Node interface {
	RuleName() string
	Value() string
	Token() token.Token
	Children() []Node
}

// Terminal wraps a single lexeme, e.g. an identifier or punctuation token
// encountered while walking a grammar rule.
type Terminal struct {
	Tok token.Token
}

func NewTerminal(tok token.Token) *Terminal { return &Terminal{Tok: tok} }

func (t *Terminal) RuleName() string   { return "" }
func (t *Terminal) Value() string      { return t.Tok.Lexeme }
func (t *Terminal) Token() token.Token { return t.Tok }
func (t *Terminal) Children() []Node   { return nil }

// NonTerminal wraps one recognized grammar rule name, along with the
// ordered sequence of child nodes the grammar captured for that rule.
type NonTerminal struct {
	Rule     string
	Tok      token.Token
	Kids     []Node
}

func NewNonTerminal(rule string, tok token.Token, kids ...Node) *NonTerminal {
	return &NonTerminal{Rule: rule, Tok: tok, Kids: kids}
}

func (n *NonTerminal) RuleName() string   { return n.Rule }
func (n *NonTerminal) Value() string      { return "" }
func (n *NonTerminal) Token() token.Token { return n.Tok }
func (n *NonTerminal) Children() []Node   { return n.Kids }

// Append is a convenience used by the parser while it is still assembling a
// rule's children.
func (n *NonTerminal) Append(kids ...Node) {
	n.Kids = append(n.Kids, kids...)
}

// Child returns the i'th child, or an empty (zero-token) Terminal if out of range —
// walkers in internal/walker and internal/checker index defensively rather
// than bounds-checking every access, mirroring the original Python's
// subscript-heavy node[i] style.
func Child(n Node, i int) Node {
	kids := n.Children()
	if i < 0 || i >= len(kids) {
		return &Terminal{}
	}
	return kids[i]
}

// Values returns the Value() of every child, punctuation included (the
// Value of "," "." etc. is returned too; callers filter by rule shape
// instead, matching the original's `if n != '.'` idiom for dotref
// tokens).
func Values(n Node) []string {
	kids := n.Children()
	out := make([]string, 0, len(kids))
	for _, k := range kids {
		out = append(out, k.Value())
	}
	return out
}

// DotRefTokens extracts the identifier segments from a `_cb_dot_ref` node,
// dropping the interleaved '.' terminals — the same filter the original
// Python applied with `[n.value for n in node if n != '.']`.
func DotRefTokens(n Node) []string {
	kids := n.Children()
	out := make([]string, 0, (len(kids)+1)/2)
	for _, k := range kids {
		if k.Value() == "." {
			continue
		}
		out = append(out, k.Value())
	}
	return out
}

// ParamListRefs extracts the dotref argument nodes from a `_cb_param_list`
// node, dropping the surrounding parens and commas.
func ParamListRefs(n Node) []Node {
	kids := n.Children()
	if len(kids) < 2 {
		return nil
	}
	inner := kids[1 : len(kids)-1]
	out := make([]Node, 0, (len(inner)+1)/2)
	for _, k := range inner {
		if k.RuleName() == "_cb_dot_ref" {
			out = append(out, k)
		}
	}
	return out
}
