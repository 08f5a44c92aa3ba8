package parser

import (
	"github.com/sentra-lang/uregex/internal/ast"
	"github.com/sentra-lang/uregex/internal/rxerr"
)

// parseSingle := '(' paren | '[' bracket | '.' | '^' | '$' | '{' directive
//              | '\' escape | CHAR
func (p *Parser) parseSingle() (*ast.Node, error) {
	p.skipWS()
	start := p.pos
	r := p.next()
	switch r {
	case -1:
		return nil, rxerr.New(rxerr.BadGroup, start, "unexpected end of pattern")
	case '(':
		return p.parseParen()
	case '[':
		return p.parseBracket()
	case '.':
		return p.arena.Leaf(ast.KAny), nil
	case '^':
		return p.arena.Leaf(ast.KBol), nil
	case '$':
		return p.arena.Leaf(ast.KEol), nil
	case '{':
		node, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		return node, nil
	case '\\':
		return p.parseEscape()
	case ')':
		return nil, rxerr.New(rxerr.MissingParen, start, "unmatched )")
	case '*', '+', '?':
		return nil, rxerr.New(rxerr.BadRepeat, start, "unexpected quantifier %q with nothing to repeat", r)
	default:
		return p.arena.Char(r), nil
	}
}

// parseParen := alt ')' | '?' subform
//
// A bare `(alt)` is a transparent, non-capturing grouping: only `(?name:
// ...)` introduces a Group node (spec §4.2, §6 — capture syntax is always
// named).
func (p *Parser) parseParen() (*ast.Node, error) {
	start := p.pos - 1
	if p.peek() == '?' {
		p.next()
		return p.parseSubform(start)
	}
	node, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if !p.match(')') {
		return nil, rxerr.New(rxerr.MissingParen, start, "unclosed (")
	}
	return node, nil
}

// parseSubform dispatches the constructs introduced by `(?`, in the order
// spec §4.2 lists: look-ahead, negative look-ahead, look-behind, negative
// look-behind, procedure definition, conditional, else named capture.
func (p *Parser) parseSubform(openPos int) (*ast.Node, error) {
	switch {
	case p.match('='):
		return p.finishLookaround(openPos, ast.KLookA)
	case p.match('!'):
		return p.finishLookaround(openPos, ast.KNLookA)
	case p.peek() == '<' && p.peekAt(1) == '=':
		p.pos += 2
		return p.finishLookaround(openPos, ast.KLookB)
	case p.peek() == '<' && p.peekAt(1) == '!':
		p.pos += 2
		return p.finishLookaround(openPos, ast.KNLookB)
	case p.match('/'):
		return p.parseProcDef(openPos)
	case p.match('?'):
		return p.parseConditional(openPos)
	default:
		return p.parseNamedCapture(openPos)
	}
}

func (p *Parser) finishLookaround(openPos int, kind ast.Kind) (*ast.Node, error) {
	child, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if !p.match(')') {
		return nil, rxerr.New(rxerr.MissingParen, openPos, "unclosed lookaround")
	}
	return p.arena.Unary(kind, child), nil
}

// parseProcDef handles `(?/name:expr)`. The definition itself matches the
// empty string; the body is registered for `\g name;` / `\G name;` calls
// (spec §4.2, §4.5 "Proc/NProc ... carrying the procedure index").
func (p *Parser) parseProcDef(openPos int) (*ast.Node, error) {
	name := p.scanName()
	if name == "" {
		return nil, rxerr.New(rxerr.BadName, openPos, "empty procedure name")
	}
	if !p.match(':') {
		return nil, rxerr.New(rxerr.BadGroup, openPos, "expected ':' after procedure name %q", name)
	}
	index, redefined := p.procs.Define(name)
	if redefined {
		return nil, rxerr.New(rxerr.Redefined, openPos, "procedure %q defined twice", name)
	}
	body, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if !p.match(')') {
		return nil, rxerr.New(rxerr.MissingParen, openPos, "unclosed procedure definition")
	}
	p.setProcBody(index, body)
	return p.arena.Leaf(ast.KNone), nil
}

// parseNamedCapture handles `(?name:expr)`.
func (p *Parser) parseNamedCapture(openPos int) (*ast.Node, error) {
	name := p.scanName()
	if name == "" {
		return nil, rxerr.New(rxerr.BadName, openPos, "empty group name")
	}
	if !p.match(':') {
		return nil, rxerr.New(rxerr.BadGroup, openPos, "expected ':' after group name %q", name)
	}
	index := p.groups.Define(name)
	child, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if !p.match(')') {
		return nil, rxerr.New(rxerr.MissingParen, openPos, "unclosed group %q", name)
	}
	return p.arena.Group(index, child), nil
}

// parseConditional handles `(??[!]guard then|else)` (spec §4.4).
func (p *Parser) parseConditional(openPos int) (*ast.Node, error) {
	negate := p.match('!')
	guard, err := p.parseSingle()
	if err != nil {
		return nil, err
	}
	branches, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if !p.match(')') {
		return nil, rxerr.New(rxerr.MissingParen, openPos, "unclosed conditional")
	}
	then, els := splitBranches(p.arena, branches)
	if negate {
		then, els = els, then
	}
	procIndex, _ := p.procs.NewAnon()
	p.setProcBody(procIndex, guard)
	return p.arena.Cond(procIndex, then, els), nil
}

// splitBranches extracts then/else from the `then|else` alternation, or
// defaults else to an always-succeeding empty match when there is no `|`.
func splitBranches(arena *ast.Arena, node *ast.Node) (then, els *ast.Node) {
	if node.Kind == ast.KAlt {
		return node.Left, node.Right
	}
	return node, arena.Leaf(ast.KNone)
}
