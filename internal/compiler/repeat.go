package compiler

import (
	"github.com/sentra-lang/uregex/internal/ast"
	"github.com/sentra-lang/uregex/internal/program"
)

// compileRepeat lowers c{min,max} (spec §4.5). Unbounded (max == -1) with
// min == 0 is exactly c*; unbounded with min > 0 unrolls min-1 mandatory
// copies and falls through to Plus semantics for the rest: "if n == 0 [the
// original C encoding of 'no upper bound'] and m > 0, unroll m-1 copies of
// c then fall through to Plus semantics."
//
// Bounded repeats emit `min` mandatory copies followed by `max-min`
// optional copies, each nested inside the one before it — c{2,4} compiles
// as c c (c (c)?)? — so {0,0} (both bounds zero) emits nothing at all, the
// resolved reading of the spec's own flagged open question on that case.
func (s *state) compileRepeat(n *ast.Node, forward bool) error {
	if n.Max == -1 {
		if n.Min == 0 {
			return s.compileStar(n.Child, n.Greedy, forward)
		}
		for i := 0; i < n.Min-1; i++ {
			if err := s.compile(n.Child, forward); err != nil {
				return err
			}
		}
		return s.compilePlus(n.Child, n.Greedy, forward)
	}

	for i := 0; i < n.Min; i++ {
		if err := s.compile(n.Child, forward); err != nil {
			return err
		}
	}
	return s.compileOptionalChain(n.Child, n.Max-n.Min, n.Greedy, forward)
}

// compileOptionalChain emits `remaining` nested optional copies of child:
// (child (child (child)?)?)?
func (s *state) compileOptionalChain(child *ast.Node, remaining int, greedy, forward bool) error {
	if remaining == 0 {
		return nil
	}
	splitIdx, err := s.emit(program.Inst{Op: s.splitOp(greedy)})
	if err != nil {
		return err
	}
	if err := s.compile(child, forward); err != nil {
		return err
	}
	if err := s.compileOptionalChain(child, remaining-1, greedy, forward); err != nil {
		return err
	}
	s.patch(splitIdx, s.here())
	return nil
}
