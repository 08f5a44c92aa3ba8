package parser

import (
	"strings"

	"github.com/sentra-lang/uregex/internal/ast"
	"github.com/sentra-lang/uregex/internal/charclass"
	"github.com/sentra-lang/uregex/internal/rxerr"
)

// anchorPair holds the (positive, negated) AST kinds for a directive
// keyword naming a zero-width assertion.
type anchorPair struct{ pos, neg ast.Kind }

var directiveAnchors = map[string]anchorPair{
	"line-start":  {ast.KBol, ast.KNBol},
	"line-end":    {ast.KEol, ast.KNEol},
	"input-start": {ast.KBot, ast.KNBot},
	"input-end":   {ast.KEot, ast.KNEot},
	"word-break":  {ast.KWbnd, ast.KNWbnd},
}

var directiveSets = map[string]func() *charclass.Set{
	"digit":       charclass.Digit,
	"word":        charclass.Word,
	"space":       charclass.Space,
	"vspace":      charclass.VSpace,
	"hspace":      charclass.HSpace,
	"open-brace":  charclass.OpenerSet,
	"close-brace": charclass.CloserSet,
}

// parseDirective parses the body of `{...}` after the leading '{' has
// already been consumed (spec §4.2, §6).
func (p *Parser) parseDirective() (*ast.Node, error) {
	start := p.pos - 1
	p.skipWS()
	neg := p.match('^')
	p.skipWS()

	var node *ast.Node
	var err error
	switch p.peek() {
	case '=':
		p.next()
		node, err = p.directiveRef(start, neg, ast.KBRef, ast.KNBRef, p.groups.Reference)
	case ':':
		p.next()
		node, err = p.directiveQuoteRef(start, neg)
	case '/':
		p.next()
		node, err = p.directiveRef(start, neg, ast.KProc, ast.KNProc, p.procs.Reference)
	default:
		node, err = p.directiveKeywordOrProperty(start, neg)
	}
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if !p.match('}') {
		return nil, rxerr.New(rxerr.MissingBrace, start, "expected '}' to close directive")
	}
	return node, nil
}

// directiveRef handles the abbreviated {= name}/{: name}/{/ name} forms
// (SPEC_FULL's supplemented behavior, grounded on original_source/regex.c's
// D_EQUAL/D_COLON/D_SLASH dispatch): a name follows after optional
// whitespace, with no colon terminator required.
func (p *Parser) directiveRef(start int, neg bool, posKind, negKind ast.Kind, register func(string) int) (*ast.Node, error) {
	p.skipWS()
	name := p.scanName()
	if name == "" {
		return nil, rxerr.New(rxerr.BadName, start, "empty name in directive reference")
	}
	kind := posKind
	if neg {
		kind = negKind
	}
	return p.arena.Ref(kind, register(name)), nil
}

// directiveQuoteRef handles the abbreviated {: name}/{:^ name} spelling of
// \m/\M, sharing quoteRefNode's self-defining resolution (see escape.go)
// rather than the plain reference-only lookup directiveRef gives \k/\K.
func (p *Parser) directiveQuoteRef(start int, neg bool) (*ast.Node, error) {
	p.skipWS()
	if p.match('^') {
		neg = true
		p.skipWS()
	}
	name := p.scanName()
	if name == "" {
		return nil, rxerr.New(rxerr.BadName, start, "empty name in directive reference")
	}
	return p.quoteRefFromName(name, neg), nil
}

func (p *Parser) directiveKeywordOrProperty(start int, neg bool) (*ast.Node, error) {
	raw := p.scanDirectiveBody()
	name := strings.TrimSpace(raw)

	if name == "any" {
		if neg {
			return nil, rxerr.New(rxerr.BadDirective, start, "{^any} is not meaningful")
		}
		return p.arena.Leaf(ast.KAny), nil
	}
	if pair, ok := directiveAnchors[name]; ok {
		kind := pair.pos
		if neg {
			kind = pair.neg
		}
		return p.arena.Leaf(kind), nil
	}
	if setFn, ok := directiveSets[name]; ok {
		set := setFn()
		if neg {
			set = set.Complement()
		}
		return p.arena.Set(set), nil
	}
	set, ok := charclass.Property(name)
	if !ok {
		return nil, rxerr.New(rxerr.BadDirective, start, "unrecognized directive %q", name)
	}
	if neg {
		set = set.Complement()
	}
	return p.arena.Set(set), nil
}

// scanDirectiveBody reads up to (not including) the closing '}', allowing
// property names like "Script:Greek" that would otherwise be truncated by
// the general name-terminator rule.
func (p *Parser) scanDirectiveBody() string {
	start := p.pos
	for !p.atEnd() && p.peek() != '}' {
		p.pos++
	}
	return string(p.src[start:p.pos])
}
