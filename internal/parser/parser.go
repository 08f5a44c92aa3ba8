// Package parser implements the hand-written recursive-descent pattern
// parser (spec §4.2-4.4): lexing and AST construction are interleaved,
// since the grammar is context-sensitive (character classes, directives,
// and escapes each have their own scanning rules). Structure — match/peek
// helper methods on a Parser value — is grounded on
// sentra/internal/parser.Parser, adapted from a statement/expression
// language parser to a pattern-to-AST parser; errors are returned directly
// as (node, error) pairs, and parsing stops at the first one.
package parser

import (
	"github.com/sentra-lang/uregex/internal/ast"
	"github.com/sentra-lang/uregex/internal/nametab"
	"github.com/sentra-lang/uregex/internal/rxerr"
)

// Limits bounds pattern complexity (spec §6).
type Limits struct {
	MaxPatternLen int
	MaxQuantifier int
}

// DefaultLimits matches spec §6 exactly.
var DefaultLimits = Limits{MaxPatternLen: 65536, MaxQuantifier: 65535}

// Result bundles everything the compiler needs from a successful parse.
type Result struct {
	Root       *ast.Node
	Arena      *ast.Arena
	Groups     *nametab.GroupTable
	Procs      *nametab.ProcTable
	ProcBodies []*ast.Node // indexed like Procs; nil until the definition is seen
}

// Parser holds parse state for one pattern.
type Parser struct {
	src    []rune
	pos    int
	limits Limits

	arena  *ast.Arena
	groups *nametab.GroupTable
	procs  *nametab.ProcTable
	bodies []*ast.Node
}

// Parse compiles pattern into an AST plus resolved name tables (spec §4.2).
func Parse(pattern []rune, limits Limits) (*Result, error) {
	if len(pattern) > limits.MaxPatternLen {
		return nil, rxerr.New(rxerr.TooLong, len(pattern), "pattern exceeds %d scalars", limits.MaxPatternLen)
	}
	p := &Parser{
		src:    pattern,
		limits: limits,
		arena:  ast.NewArena(len(pattern)),
		groups: nametab.NewGroupTable(),
		procs:  nametab.NewProcTable(),
	}
	root, err := p.parseFull()
	if err != nil {
		return nil, err
	}
	if name := p.groups.Undefined(); name != "" {
		return nil, rxerr.New(rxerr.Undefined, p.pos, "group %q referenced but never defined", name)
	}
	if name := p.procs.Undefined(); name != "" {
		return nil, rxerr.New(rxerr.Undefined, p.pos, "procedure %q called but never defined", name)
	}
	return &Result{
		Root:       root,
		Arena:      p.arena,
		Groups:     p.groups,
		Procs:      p.procs,
		ProcBodies: p.bodies,
	}, nil
}

func (p *Parser) setProcBody(index int, body *ast.Node) {
	for len(p.bodies) <= index {
		p.bodies = append(p.bodies, nil)
	}
	p.bodies[index] = body
}

// parseFull := alt (then end of input), spec §4.2.
func (p *Parser) parseFull() (*ast.Node, error) {
	node, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if !p.atEnd() {
		return nil, rxerr.New(rxerr.ExtraJunk, p.pos, "unexpected %q after pattern", p.peek())
	}
	return node, nil
}

// parseAlt := concat ( '|' concat )*
func (p *Parser) parseAlt() (*ast.Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	for p.peek() == '|' {
		p.next()
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = p.arena.Binary(ast.KAlt, left, right)
		p.skipWS()
	}
	return left, nil
}

// parseConcat := repeat+
func (p *Parser) parseConcat() (*ast.Node, error) {
	var left *ast.Node
	for {
		p.skipWS()
		if !p.startsSingle() {
			break
		}
		node, err := p.parseRepeat()
		if err != nil {
			return nil, err
		}
		if left == nil {
			left = node
		} else {
			left = p.arena.Binary(ast.KCat, left, node)
		}
	}
	if left == nil {
		left = p.arena.Leaf(ast.KNone)
	}
	return left, nil
}

// startsSingle reports whether the current position can begin a `single`,
// i.e. concat should keep going rather than yield to `|` or `)`.
func (p *Parser) startsSingle() bool {
	if p.atEnd() {
		return false
	}
	switch p.peek() {
	case '|', ')':
		return false
	}
	return true
}

// parseRepeat := single ( '*' | '+' | '?' | '{' INT ( ',' INT? )? '}' )? '?'?
func (p *Parser) parseRepeat() (*ast.Node, error) {
	node, err := p.parseSingle()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	switch p.peek() {
	case '*':
		p.next()
		node = p.arena.Quant(ast.KStar, node, !p.matchLazy())
	case '+':
		p.next()
		node = p.arena.Quant(ast.KPlus, node, !p.matchLazy())
	case '?':
		p.next()
		node = p.arena.Quant(ast.KQuest, node, !p.matchLazy())
	case '{':
		save := p.pos
		rep, err, ok := p.tryParseBraceRepeat(node)
		if err != nil {
			return nil, err
		}
		if ok {
			node = rep
		} else {
			p.pos = save
		}
	}
	return node, nil
}

// matchLazy consumes a trailing '?' that toggles greediness off.
func (p *Parser) matchLazy() bool {
	p.skipWS()
	return p.match('?')
}

// tryParseBraceRepeat attempts `{ INT (',' INT?)? }` at the current '{'.
// Returns ok=false (without error) if the brace does not actually introduce
// a quantifier, so the caller can fall back to directive parsing.
func (p *Parser) tryParseBraceRepeat(child *ast.Node) (*ast.Node, error, bool) {
	start := p.pos
	p.next() // consume '{'
	p.skipWS()
	min, hasMin := p.scanInt()
	p.skipWS()
	hasComma := p.match(',')
	max := min
	hasMax := hasMin
	if hasComma {
		p.skipWS()
		max, hasMax = p.scanInt()
		p.skipWS()
	}
	if !hasMin && !hasComma {
		p.pos = start
		return nil, nil, false
	}
	if !p.match('}') {
		p.pos = start
		return nil, nil, false
	}
	if !hasMin {
		min = 0
	}
	if hasComma && !hasMax {
		max = -1 // unbounded
	}
	if min > p.limits.MaxQuantifier || (hasMax && max > p.limits.MaxQuantifier) {
		return nil, rxerr.New(rxerr.Overflow, start, "quantifier bound exceeds %d", p.limits.MaxQuantifier), true
	}
	if hasMax && max >= 0 && min > max {
		return nil, rxerr.New(rxerr.BadRepeat, start, "min %d greater than max %d", min, max), true
	}
	greedy := !p.matchLazy()
	return p.arena.Repeat(child, min, max, greedy), nil, true
}
