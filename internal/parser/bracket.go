package parser

import (
	"github.com/sentra-lang/uregex/internal/ast"
	"github.com/sentra-lang/uregex/internal/charclass"
	"github.com/sentra-lang/uregex/internal/rxerr"
)

// classAtom is one operand of a class-body expression: either a single
// literal scalar (eligible for '-' range formation) or an already-resolved
// set (spec §4.2: "- (char range if both are chars; set difference if
// right is a set)").
type classAtom struct {
	isChar bool
	char   rune
	set    *charclass.Set
}

func (a classAtom) toSet() *charclass.Set {
	if a.isChar {
		return charclass.Char(a.char)
	}
	return a.set
}

// parseBracket parses `[...]` after the leading '[' has been consumed
// (spec §4.2).
func (p *Parser) parseBracket() (*ast.Node, error) {
	start := p.pos - 1
	set, err := p.parseBracketSet(start)
	if err != nil {
		return nil, err
	}
	return p.arena.Set(set), nil
}

// parseBracketSet parses the body of a class (after '[', possibly nested)
// through its closing ']', applying leading '^' negation.
func (p *Parser) parseBracketSet(openPos int) (*charclass.Set, error) {
	p.skipWS()
	neg := p.match('^')
	body, err := p.parseClassBody(openPos)
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if !p.match(']') {
		return nil, rxerr.New(rxerr.MissingBracket, openPos, "unclosed [")
	}
	if neg {
		body = body.Complement()
	}
	return body, nil
}

// parseClassBody implements the element/operator grammar of spec §4.2:
// elements are literal chars, escapes, or directives; pairwise operators
// '-' '&' '~' combine the two operands flanking them, and a bare operand
// (or an operand followed directly by another, or by a nested '[') is
// unioned into the running result.
func (p *Parser) parseClassBody(openPos int) (*charclass.Set, error) {
	result := charclass.Empty()
	seenAny := false
	for {
		p.skipWS()
		if p.atEnd() {
			return nil, rxerr.New(rxerr.MissingBracket, openPos, "unclosed [")
		}
		if p.peek() == ']' {
			if !seenAny {
				return nil, rxerr.New(rxerr.BadSet, openPos, "empty character class")
			}
			return result, nil
		}
		lhs, err := p.parseClassOperand(openPos)
		if err != nil {
			return nil, err
		}
		seenAny = true
		p.skipWS()
		switch p.peek() {
		case '-':
			p.next()
			p.skipWS()
			rhs, err := p.parseClassOperand(openPos)
			if err != nil {
				return nil, err
			}
			if lhs.isChar && rhs.isChar {
				if lhs.char >= rhs.char {
					return nil, rxerr.New(rxerr.BadSet, openPos, "invalid range %q-%q", lhs.char, rhs.char)
				}
				result = result.Union(charclass.Range(lhs.char, rhs.char))
			} else {
				result = result.Union(lhs.toSet().Difference(rhs.toSet()))
			}
		case '&':
			p.next()
			p.skipWS()
			rhs, err := p.parseClassOperand(openPos)
			if err != nil {
				return nil, err
			}
			result = result.Union(lhs.toSet().Intersect(rhs.toSet()))
		case '~':
			p.next()
			p.skipWS()
			rhs, err := p.parseClassOperand(openPos)
			if err != nil {
				return nil, err
			}
			result = result.Union(lhs.toSet().SymDiff(rhs.toSet()))
		default:
			result = result.Union(lhs.toSet())
		}
	}
}

// parseClassOperand reads one element of a class body: a nested `[...]`,
// an escape, a directive, or a literal scalar.
func (p *Parser) parseClassOperand(openPos int) (classAtom, error) {
	r := p.peek()
	switch r {
	case -1:
		return classAtom{}, rxerr.New(rxerr.MissingBracket, openPos, "unclosed [")
	case '[':
		p.next()
		set, err := p.parseBracketSet(p.pos - 1)
		if err != nil {
			return classAtom{}, err
		}
		return classAtom{set: set}, nil
	case '\\':
		p.next()
		node, err := p.parseEscape()
		if err != nil {
			return classAtom{}, err
		}
		return nodeToAtom(node, openPos)
	case '{':
		p.next()
		node, err := p.parseDirective()
		if err != nil {
			return classAtom{}, err
		}
		return nodeToAtom(node, openPos)
	default:
		p.next()
		return classAtom{isChar: true, char: r}, nil
	}
}

func nodeToAtom(node *ast.Node, openPos int) (classAtom, error) {
	switch node.Kind {
	case ast.KChar:
		return classAtom{isChar: true, char: node.Char}, nil
	case ast.KSet:
		return classAtom{set: node.Set}, nil
	default:
		return classAtom{}, rxerr.New(rxerr.BadSet, openPos, "construct is not valid inside a character class")
	}
}
