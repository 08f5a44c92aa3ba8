package parser

import (
	"github.com/sentra-lang/uregex/internal/ast"
	"github.com/sentra-lang/uregex/internal/charclass"
	"github.com/sentra-lang/uregex/internal/rxerr"
)

// parseEscape parses the body after a consumed '\' (spec §4.2).
func (p *Parser) parseEscape() (*ast.Node, error) {
	start := p.pos
	r := p.next()
	switch r {
	case -1:
		return nil, rxerr.New(rxerr.BadEscape, start, "trailing backslash")
	case 'x':
		v, ok := p.scanHex()
		if !ok || !p.match(';') {
			return nil, rxerr.New(rxerr.BadEscape, start, "malformed \\x escape")
		}
		return p.arena.Char(v), nil
	case 'k':
		return p.nameRefNode(start, ast.KBRef, p.groups.Reference)
	case 'K':
		return p.nameRefNode(start, ast.KNBRef, p.groups.Reference)
	case 'm':
		return p.quoteRefNode(start, false)
	case 'M':
		return p.quoteRefNode(start, true)
	case 'g':
		return p.nameRefNode(start, ast.KProc, p.procs.Reference)
	case 'G':
		return p.nameRefNode(start, ast.KNProc, p.procs.Reference)
	case 'p':
		return p.propertyEscape(start, false)
	case 'P':
		return p.propertyEscape(start, true)
	case 'd':
		return p.arena.Set(charclass.Digit()), nil
	case 'D':
		return p.arena.Set(charclass.Digit().Complement()), nil
	case 'w':
		return p.arena.Set(charclass.Word()), nil
	case 'W':
		return p.arena.Set(charclass.Word().Complement()), nil
	case 's':
		return p.arena.Set(charclass.Space()), nil
	case 'S':
		return p.arena.Set(charclass.Space().Complement()), nil
	case 'v':
		return p.arena.Set(charclass.VSpace()), nil
	case 'V':
		return p.arena.Set(charclass.VSpace().Complement()), nil
	case 'h':
		return p.arena.Set(charclass.HSpace()), nil
	case 'H':
		return p.arena.Set(charclass.HSpace().Complement()), nil
	case 'o':
		return p.arena.Set(charclass.OpenerSet()), nil
	case 'O':
		return p.arena.Set(charclass.OpenerSet().Complement()), nil
	case 'c':
		return p.arena.Set(charclass.CloserSet()), nil
	case 'C':
		return p.arena.Set(charclass.CloserSet().Complement()), nil
	case 'r':
		return p.arena.Char('\r'), nil
	case 'n':
		return p.arena.Char('\n'), nil
	case 't':
		return p.arena.Char('\t'), nil
	// Anchor escapes: lowercase/uppercase pairs follow the same
	// positive/negated convention as the property shortcuts above. This
	// resolves spec §9's open question by decision (recorded in DESIGN.md):
	// \a/\A are input-start/not-input-start, \z/\Z are input-end/not, and
	// \b/\B are the conventional word-boundary pair.
	case 'a':
		return p.arena.Leaf(ast.KBot), nil
	case 'A':
		return p.arena.Leaf(ast.KNBot), nil
	case 'z':
		return p.arena.Leaf(ast.KEot), nil
	case 'Z':
		return p.arena.Leaf(ast.KNEot), nil
	case 'b':
		return p.arena.Leaf(ast.KWbnd), nil
	case 'B':
		return p.arena.Leaf(ast.KNWbnd), nil
	default:
		return p.arena.Char(r), nil
	}
}

// nameRefNode parses `name;` and registers it via register, producing a
// reference-kind AST node carrying the resolved index.
func (p *Parser) nameRefNode(start int, kind ast.Kind, register func(string) int) (*ast.Node, error) {
	p.skipWS()
	name := p.scanName()
	if name == "" {
		return nil, rxerr.New(rxerr.BadName, start, "empty name in escape")
	}
	if !p.match(';') {
		return nil, rxerr.New(rxerr.BadEscape, start, "expected ';' to close \\...%s", name)
	}
	return p.arena.Ref(kind, register(name)), nil
}

// quoteRefNode parses the `name;` operand of \m/\M (spec §6 "bracket
// equality", §8 scenario 3). Unlike \k/\K, whose target must already be an
// explicitly named capture group, a \m operand that names no group seen so
// far and is itself a single bracket/quote scalar is self-defining: \m
// stands for "match this literal bracket character here and capture it
// under its own name", so a later \M of the same name has something to
// close against without a separate `(?name:...)` ever being written. This
// resolves an open question left by spec §9 (no original construct covers
// "quote back-reference" outside the generic named-group mechanism \k
// already uses, and scenario 3's pattern `\m(;.*\M(;` never defines a
// group named "(" any other way).
//
// \M never self-defines — it is always the closing half, and fails to
// resolve (Undefined) if no \m or explicit capture already claimed the
// name. Its compiled opcode also departs from \K's zero-width negation:
// see internal/vm's OpNQRef handling, decided alongside this to make the
// closing check consume the matched bracket rather than merely assert
// non-identity (recorded in DESIGN.md).
func (p *Parser) quoteRefNode(start int, negate bool) (*ast.Node, error) {
	p.skipWS()
	name := p.scanName()
	if name == "" {
		return nil, rxerr.New(rxerr.BadName, start, "empty name in escape")
	}
	if !p.match(';') {
		return nil, rxerr.New(rxerr.BadEscape, start, "expected ';' to close \\...%s", name)
	}
	return p.quoteRefFromName(name, negate), nil
}

// quoteRefFromName builds the AST node for a resolved \m/\M (or {: name} /
// {:^ name}) operand — shared so the directive spelling gets the same
// self-defining behavior as the backslash escape (see quoteRefNode).
func (p *Parser) quoteRefFromName(name string, negate bool) *ast.Node {
	if !negate {
		if _, known := p.groups.Lookup(name); !known {
			runes := []rune(name)
			if len(runes) == 1 && charclass.IsBracketChar(runes[0]) {
				idx := p.groups.Define(name)
				return p.arena.Group(idx, p.arena.Char(runes[0]))
			}
		}
		return p.arena.Ref(ast.KQRef, p.groups.Reference(name))
	}
	return p.arena.Ref(ast.KNQRef, p.groups.Reference(name))
}

// propertyEscape parses `{propname}` after \p or \P.
func (p *Parser) propertyEscape(start int, negate bool) (*ast.Node, error) {
	if !p.match('{') {
		return nil, rxerr.New(rxerr.BadEscape, start, "expected '{' after \\p")
	}
	name := p.scanPropertyName()
	if !p.match('}') {
		return nil, rxerr.New(rxerr.MissingBrace, start, "expected '}' to close \\p{...}")
	}
	set, ok := charclass.Property(name)
	if !ok {
		return nil, rxerr.New(rxerr.BadDirective, start, "unknown Unicode property %q", name)
	}
	if negate {
		set = set.Complement()
	}
	return p.arena.Set(set), nil
}

// scanPropertyName reads up to the closing '}', the one place a name scan
// terminates on '}' only (property names may contain ':' as in
// "Script:Greek" or "Nd").
func (p *Parser) scanPropertyName() string {
	start := p.pos
	for !p.atEnd() && p.peek() != '}' {
		p.pos++
	}
	return string(p.src[start:p.pos])
}
