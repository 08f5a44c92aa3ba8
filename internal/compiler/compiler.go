// Package compiler lowers a parsed pattern AST into a program.Program
// (spec §4.5): a flat bytecode array with forward and reverse duals baked
// in so lookbehind and backward procedure calls can run the same tree
// against a cursor moving the other way.
package compiler

import (
	"github.com/sentra-lang/uregex/internal/ast"
	"github.com/sentra-lang/uregex/internal/parser"
	"github.com/sentra-lang/uregex/internal/program"
)

// Compile lowers a parse result into an executable Program, wrapping it in
// the implicit unanchored search prefix (spec §4.5, §6: "a pattern not
// pinned to ^ may still match starting anywhere").
func Compile(res *parser.Result, limits Limits) (*program.Program, error) {
	s := &state{limits: limits, procs: res.Procs}

	if err := s.compileUnanchoredSkip(); err != nil {
		return nil, err
	}
	if _, err := s.emit(program.Inst{Op: program.OpSave, Sub: 0}); err != nil {
		return nil, err
	}
	if err := s.compile(res.Root, true); err != nil {
		return nil, err
	}
	if _, err := s.emit(program.Inst{Op: program.OpSave, Sub: 1}); err != nil {
		return nil, err
	}
	if _, err := s.emit(program.Inst{Op: program.OpMatch}); err != nil {
		return nil, err
	}

	for i := 0; i < res.Procs.Count(); i++ {
		body := res.ProcBodies[i]
		fwdAddr := s.here()
		if _, err := s.emit(program.Inst{Op: program.OpSave, Sub: 0}); err != nil {
			return nil, err
		}
		if err := s.compile(body, true); err != nil {
			return nil, err
		}
		if _, err := s.emit(program.Inst{Op: program.OpSave, Sub: 1}); err != nil {
			return nil, err
		}
		if _, err := s.emit(program.Inst{Op: program.OpMatch}); err != nil {
			return nil, err
		}

		revAddr := s.here()
		if _, err := s.emit(program.Inst{Op: program.OpSave, Sub: 1}); err != nil {
			return nil, err
		}
		if err := s.compile(body, false); err != nil {
			return nil, err
		}
		if _, err := s.emit(program.Inst{Op: program.OpSave, Sub: 0}); err != nil {
			return nil, err
		}
		if _, err := s.emit(program.Inst{Op: program.OpMatch}); err != nil {
			return nil, err
		}

		res.Procs.SetAddrs(i, fwdAddr, revAddr)
	}

	s.resolveFixups()

	return &program.Program{Code: s.code, GroupNames: res.Groups.Names()}, nil
}

// compileUnanchoredSkip emits Star(Any, lazy): a minimal-length prefix that
// lets the implicit group 0 start anywhere in the input (spec §4.5).
func (s *state) compileUnanchoredSkip() error {
	lstart := s.here()
	splitIdx, err := s.emit(program.Inst{Op: program.OpSplitHi})
	if err != nil {
		return err
	}
	if _, err := s.emit(program.Inst{Op: program.OpAny}); err != nil {
		return err
	}
	if _, err := s.emitJump(lstart); err != nil {
		return err
	}
	s.patch(splitIdx, s.here())
	return nil
}

// dualAnchors maps an anchor kind to the opcode it compiles to under
// forward and reverse context respectively (spec §4.5: "Bol <-> Eol, Bot
// <-> Eot, NBol <-> NEol, NBot <-> NEot" swap under reverse; Wbnd/NWbnd are
// direction-symmetric).
var dualAnchors = map[ast.Kind][2]program.OpCode{
	ast.KBol:   {program.OpBol, program.OpEol},
	ast.KNBol:  {program.OpNBol, program.OpNEol},
	ast.KEol:   {program.OpEol, program.OpBol},
	ast.KNEol:  {program.OpNEol, program.OpNBol},
	ast.KBot:   {program.OpBot, program.OpEot},
	ast.KNBot:  {program.OpNBot, program.OpNEot},
	ast.KEot:   {program.OpEot, program.OpBot},
	ast.KNEot:  {program.OpNEot, program.OpNBot},
	ast.KWbnd:  {program.OpWbnd, program.OpWbnd},
	ast.KNWbnd: {program.OpNWbnd, program.OpNWbnd},
}

// compile lowers n, emitting its forward encoding when forward is true and
// its reverse dual otherwise.
func (s *state) compile(n *ast.Node, forward bool) error {
	switch n.Kind {
	case ast.KNone:
		return nil
	case ast.KChar:
		_, err := s.emit(program.Inst{Op: program.OpChar, Char: n.Char})
		return err
	case ast.KSet:
		_, err := s.emit(program.Inst{Op: program.OpSet, Set: n.Set})
		return err
	case ast.KAny:
		_, err := s.emit(program.Inst{Op: program.OpAny})
		return err
	case ast.KBol, ast.KNBol, ast.KEol, ast.KNEol, ast.KBot, ast.KNBot, ast.KEot, ast.KNEot, ast.KWbnd, ast.KNWbnd:
		pair := dualAnchors[n.Kind]
		op := pair[0]
		if !forward {
			op = pair[1]
		}
		_, err := s.emit(program.Inst{Op: op})
		return err
	case ast.KBRef:
		_, err := s.emit(program.Inst{Op: program.OpBRef, Sub: n.Index})
		return err
	case ast.KNBRef:
		_, err := s.emit(program.Inst{Op: program.OpNBRef, Sub: n.Index})
		return err
	case ast.KQRef:
		_, err := s.emit(program.Inst{Op: program.OpQRef, Sub: n.Index})
		return err
	case ast.KNQRef:
		_, err := s.emit(program.Inst{Op: program.OpNQRef, Sub: n.Index})
		return err
	case ast.KProc:
		return s.compileProcCall(n, program.OpProc, forward)
	case ast.KNProc:
		return s.compileProcCall(n, program.OpNProc, forward)
	case ast.KCond:
		return s.compileCond(n, forward)
	case ast.KLookA, ast.KNLookA, ast.KLookB, ast.KNLookB:
		return s.compileLook(n, forward)
	case ast.KAlt:
		return s.compileAlt(n, forward)
	case ast.KCat:
		return s.compileCat(n, forward)
	case ast.KGroup:
		return s.compileGroup(n, forward)
	case ast.KQuest:
		return s.compileQuest(n, forward)
	case ast.KStar:
		return s.compileStar(n.Child, n.Greedy, forward)
	case ast.KPlus:
		return s.compilePlus(n.Child, n.Greedy, forward)
	case ast.KRepeat:
		return s.compileRepeat(n, forward)
	}
	return nil
}

func (s *state) compileProcCall(n *ast.Node, op program.OpCode, forward bool) error {
	idx, err := s.emit(program.Inst{Op: op, Sub: n.Index, Rev: !forward})
	if err != nil {
		return err
	}
	s.recordProcFixup(idx, n.Index, !forward)
	return nil
}

// compileCond lowers Cond(guard, then, else) (spec §4.5): the guard
// procedure runs first; on success control falls through to `then`, on
// failure it jumps straight to `else`.
func (s *state) compileCond(n *ast.Node, forward bool) error {
	condIdx, err := s.emit(program.Inst{Op: program.OpCond, Sub: n.Index, Rev: !forward})
	if err != nil {
		return err
	}
	s.recordProcFixup(condIdx, n.Index, !forward)

	jumpFalse, err := s.emit(program.Inst{Op: program.OpJump})
	if err != nil {
		return err
	}
	if err := s.compile(n.Then, forward); err != nil {
		return err
	}
	jumpEnd, err := s.emit(program.Inst{Op: program.OpJump})
	if err != nil {
		return err
	}
	s.patch(jumpFalse, s.here())
	if err := s.compile(n.Else, forward); err != nil {
		return err
	}
	s.patch(jumpEnd, s.here())
	return nil
}

// compileLook lowers the four lookaround kinds (spec §4.5). A lookahead's
// body always runs the input in the true-forward direction and a
// lookbehind's body always runs it backward; which absolute direction that
// is relative to the *current compile context* picks Look vs LookR:
// "LookA in reverse emits a LookR", "LookB in reverse becomes Look".
func (s *state) compileLook(n *ast.Node, forward bool) error {
	isLookB := n.Kind == ast.KLookB || n.Kind == ast.KNLookB
	negated := n.Kind == ast.KNLookA || n.Kind == ast.KNLookB

	wantsReverse := isLookB
	if !forward {
		wantsReverse = !wantsReverse
	}

	var op program.OpCode
	switch {
	case !negated && !wantsReverse:
		op = program.OpLook
	case !negated && wantsReverse:
		op = program.OpLookR
	case negated && !wantsReverse:
		op = program.OpNLook
	default:
		op = program.OpNLookR
	}

	idx, err := s.emit(program.Inst{Op: op})
	if err != nil {
		return err
	}
	// The body's own compiled direction is intrinsic to lookahead vs
	// lookbehind, independent of the enclosing context: a lookahead always
	// scans forward through the underlying text, a lookbehind always scans
	// backward. The opcode chosen above (Look vs LookR) is what reconciles
	// that fixed body direction with whatever direction the VM happens to
	// be running in when it reaches this instruction.
	if err := s.compile(n.Child, !isLookB); err != nil {
		return err
	}
	if _, err := s.emit(program.Inst{Op: program.OpMatch}); err != nil {
		return err
	}
	s.patch(idx, s.here())
	return nil
}

func (s *state) compileAlt(n *ast.Node, forward bool) error {
	splitIdx, err := s.emit(program.Inst{Op: program.OpSplitLo})
	if err != nil {
		return err
	}
	if err := s.compile(n.Left, forward); err != nil {
		return err
	}
	jumpIdx, err := s.emit(program.Inst{Op: program.OpJump})
	if err != nil {
		return err
	}
	s.patch(splitIdx, s.here())
	if err := s.compile(n.Right, forward); err != nil {
		return err
	}
	s.patch(jumpIdx, s.here())
	return nil
}

// compileCat lowers Cat(l, r); in reverse context the operands swap order
// so the compiled code still consumes input back-to-front (spec §4.5).
func (s *state) compileCat(n *ast.Node, forward bool) error {
	first, second := n.Left, n.Right
	if !forward {
		first, second = second, first
	}
	if err := s.compile(first, forward); err != nil {
		return err
	}
	return s.compile(second, forward)
}

// compileGroup lowers a named capture. In reverse context the save slots
// swap (end is written first, start last), since the body is being matched
// back-to-front (spec §4.5).
func (s *state) compileGroup(n *ast.Node, forward bool) error {
	startSlot, endSlot := 2*n.Index, 2*n.Index+1
	first, second := startSlot, endSlot
	if !forward {
		first, second = endSlot, startSlot
	}
	if _, err := s.emit(program.Inst{Op: program.OpSave, Sub: first}); err != nil {
		return err
	}
	if err := s.compile(n.Child, forward); err != nil {
		return err
	}
	_, err := s.emit(program.Inst{Op: program.OpSave, Sub: second})
	return err
}

func (s *state) splitOp(greedy bool) program.OpCode {
	if greedy {
		return program.OpSplitLo
	}
	return program.OpSplitHi
}

// compileQuest lowers c? (spec §4.5): "SplitLo A, emit c, A:; non-greedy
// uses SplitHi."
func (s *state) compileQuest(n *ast.Node, forward bool) error {
	splitIdx, err := s.emit(program.Inst{Op: s.splitOp(n.Greedy)})
	if err != nil {
		return err
	}
	if err := s.compile(n.Child, forward); err != nil {
		return err
	}
	s.patch(splitIdx, s.here())
	return nil
}

// compileStar lowers c* (spec §4.5): "SplitLo A, emit c, Jump back, A:;
// non-greedy uses SplitHi."
func (s *state) compileStar(child *ast.Node, greedy, forward bool) error {
	lstart := s.here()
	splitIdx, err := s.emit(program.Inst{Op: s.splitOp(greedy)})
	if err != nil {
		return err
	}
	if err := s.compile(child, forward); err != nil {
		return err
	}
	if _, err := s.emitJump(lstart); err != nil {
		return err
	}
	s.patch(splitIdx, s.here())
	return nil
}

// compilePlus lowers c+ (spec §4.5): "emit c, SplitHi back; non-greedy
// uses SplitLo."
func (s *state) compilePlus(child *ast.Node, greedy, forward bool) error {
	lstart := s.here()
	if err := s.compile(child, forward); err != nil {
		return err
	}
	op := program.OpSplitHi
	if !greedy {
		op = program.OpSplitLo
	}
	_, err := s.emit(program.Inst{Op: op, Addr: lstart})
	return err
}
