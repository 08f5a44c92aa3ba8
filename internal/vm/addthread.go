package vm

import (
	"github.com/sentra-lang/uregex/internal/charclass"
	"github.com/sentra-lang/uregex/internal/program"
	"github.com/sentra-lang/uregex/internal/ucursor"
)

// addThread implements the enqueue/epsilon-closure half of the executor
// (spec §4.6 "addthread"): follow every zero-width instruction immediately,
// storing only character-consuming instructions (and Match) into list for
// the next Step. sub is consumed exactly once by every return path.
func (m *Matcher) addThread(list *threadList, pc int, sb *sub, resume int) {
	inst := &m.prog.Code[pc]
	if inst.Generation == m.generation {
		m.pool.release(sb)
		return
	}
	inst.Generation = m.generation

	switch inst.Op {
	case program.OpJump:
		m.addThread(list, inst.Addr, sb, resume)

	case program.OpSplitLo:
		clone := m.pool.retain(sb)
		m.addThread(list, pc+1, sb, resume)
		m.addThread(list, inst.Addr, clone, resume)

	case program.OpSplitHi:
		clone := m.pool.retain(sb)
		m.addThread(list, inst.Addr, sb, resume)
		m.addThread(list, pc+1, clone, resume)

	case program.OpSave:
		sb = m.pool.setSlot(sb, inst.Sub, m.cur.Pos())
		m.addThread(list, pc+1, sb, resume)

	case program.OpBol, program.OpNBol, program.OpEol, program.OpNEol,
		program.OpBot, program.OpNBot, program.OpEot, program.OpNEot,
		program.OpWbnd, program.OpNWbnd:
		if m.testAnchor(inst.Op) {
			m.addThread(list, pc+1, sb, resume)
		} else {
			m.pool.release(sb)
		}

	case program.OpLook, program.OpNLook, program.OpLookR, program.OpNLookR:
		flip := inst.Op == program.OpLookR || inst.Op == program.OpNLookR
		want := inst.Op == program.OpLook || inst.Op == program.OpLookR
		ok := m.runLook(pc+1, flip, sb)
		if ok == want {
			m.addThread(list, inst.Addr, sb, resume)
		} else {
			m.pool.release(sb)
		}

	case program.OpBRef:
		newResume, ok := m.matchBackref(sb, inst.Sub, refLiteral)
		if !ok {
			m.pool.release(sb)
			return
		}
		list.threads = append(list.threads, thread{pc: pc, sub: sb, resume: newResume})

	case program.OpQRef:
		newResume, ok := m.matchBackref(sb, inst.Sub, refQuote)
		if !ok {
			m.pool.release(sb)
			return
		}
		list.threads = append(list.threads, thread{pc: pc, sub: sb, resume: newResume})

	case program.OpNBRef:
		// Zero-width: \K asserts the literal back-reference does *not*
		// match here, per spec 4.6's generic NBRef/NQRef description.
		_, ok := m.matchBackref(sb, inst.Sub, refLiteral)
		if !ok {
			m.addThread(list, pc+1, sb, resume)
		} else {
			m.pool.release(sb)
		}

	case program.OpNQRef:
		// \M is the closing half of a quote/bracket pair (see
		// quoteRefNode): it consumes the scalar(s) at the current position,
		// requiring them to be the strict bracket-table mate of whatever \m
		// captured under the same name, rather than merely asserting
		// non-equality the way \K does. Without this it could never
		// discriminate a matching close bracket from a mismatched one
		// (spec scenario: \\m(;.*\\M(; ).
		newResume, ok := m.matchBackref(sb, inst.Sub, refMate)
		if !ok {
			m.pool.release(sb)
			return
		}
		list.threads = append(list.threads, thread{pc: pc, sub: sb, resume: newResume})

	case program.OpProc:
		newResume, ok := m.runProc(inst.Addr, sb)
		if !ok {
			m.pool.release(sb)
			return
		}
		list.threads = append(list.threads, thread{pc: pc, sub: sb, resume: newResume})

	case program.OpNProc:
		_, ok := m.runProc(inst.Addr, sb)
		if !ok {
			m.addThread(list, pc+1, sb, resume)
		} else {
			m.pool.release(sb)
		}

	case program.OpCond:
		_, ok := m.runProc(inst.Addr, sb)
		if ok {
			m.addThread(list, pc+2, sb, resume)
		} else {
			m.addThread(list, pc+1, sb, resume)
		}

	default:
		// Char, Set, Any, Match: character-consuming (or terminal), stored
		// as-is for the next Step (spec §4.6).
		list.threads = append(list.threads, thread{pc: pc, sub: sb, resume: unset})
	}
}

// runLook runs a lookaround body to completion as a nested, synchronous
// execution (spec §4.6 "Look/NLook/LookR/NLookR"). flip reverses the
// matcher's current direction for the body, relative to whatever
// direction is already in effect — this is what lets a single compiled
// body direction (fixed by lookahead vs lookbehind, see the compiler)
// work correctly no matter how deep the lookaround is nested.
func (m *Matcher) runLook(entryPC int, flip bool, sb *sub) bool {
	if m.depth >= m.limits.MaxRecursionDepth {
		return false
	}
	savedPos := m.cur.Pos()
	savedReverse := m.reverse
	savedChar := m.curChar

	if flip {
		m.reverse = !m.reverse
	}
	m.depth++
	result, ok := m.run(entryPC, m.pool.retain(sb))
	m.depth--
	if ok {
		m.pool.release(result)
	}

	m.cur.SetPos(savedPos)
	m.reverse = savedReverse
	m.curChar = savedChar
	return ok
}

// runProc invokes a procedure (or conditional guard) body as a nested
// execution sharing sb's existing captures (spec §4.6 "Proc": "group 0 is
// overloaded ... inside a procedure body it is that procedure's matched
// span"). On success it returns the outer resume cursor computed from the
// procedure's own span, restoring sb's group-0 slots to their prior value
// either way — mirroring OP_COND's save/restore structure for NProc too,
// per the original's note that NPROC's own save/restore path should not
// be reproduced as written.
func (m *Matcher) runProc(entryPC int, sb *sub) (resume int, ok bool) {
	if m.depth >= m.limits.MaxRecursionDepth {
		return 0, false
	}
	savedStart, savedEnd := sb.slots[0], sb.slots[1]
	savedPos := m.cur.Pos()
	savedChar := m.curChar

	m.depth++
	result, matched := m.run(entryPC, m.pool.retain(sb))
	m.depth--
	m.cur.SetPos(savedPos)
	m.curChar = savedChar

	if matched {
		if m.reverse {
			resume = result.slots[0]
		} else {
			resume = result.slots[1]
		}
		m.pool.release(result)
	}

	sb.slots[0], sb.slots[1] = savedStart, savedEnd
	return resume, matched
}

// refMode selects the scalar-comparison rule matchBackref uses, one per
// back-reference escape family (spec §6, §8 scenario 3; see quoteRefNode
// and DESIGN.md for why \M needs its own rule distinct from \k/\m's).
type refMode int

const (
	refLiteral refMode = iota // \k: exact scalar equality
	refQuote                  // \m: bracket-table quote equality (mate, or identical symmetric quote)
	refMate                   // \M: strict bracket-table mate only, never identical
)

// matchBackref implements BRef/QRef/NQRef (spec §4.6, grounded on
// original_source/regex.c's match_backref): the captured span named by
// subIdx must compare equal to the input at the current cursor under mode,
// consuming it one resume step at a time rather than all at once.
func (m *Matcher) matchBackref(sb *sub, subIdx int, mode refMode) (resume int, ok bool) {
	start, end := sb.slots[2*subIdx], sb.slots[2*subIdx+1]
	if start == unset || end == unset {
		return 0, false
	}
	n := end - start
	pos := m.cur.Pos()
	var spanPos int
	if m.reverse {
		if pos-m.cur.Start() < n {
			return 0, false
		}
		spanPos = pos - n
		resume = spanPos
	} else {
		if m.cur.End()-pos < n {
			return 0, false
		}
		spanPos = pos
		resume = pos + n
	}
	if !m.spanEqual(spanPos, start, n, mode) {
		return 0, false
	}
	return resume, true
}

// spanEqual compares the n code units starting at posA against the n
// code units starting at posB, scalar-by-scalar (so a surrogate pair only
// matches another properly paired surrogate, never a lone half). Content
// is always compared forward regardless of m.reverse: matchBackref has
// already resolved both windows to their forward-oriented start offsets.
func (m *Matcher) spanEqual(posA, posB, n int, mode refMode) bool {
	a := ucursor.Init(m.buf, posA, n)
	b := ucursor.Init(m.buf, posB, n)
	for {
		ra := a.Next()
		rb := b.Next()
		if ra == ucursor.EOF && rb == ucursor.EOF {
			return true
		}
		if ra == ucursor.EOF || rb == ucursor.EOF {
			return false
		}
		switch mode {
		case refQuote:
			if !charclass.QuoteEqual(ra, rb) {
				return false
			}
		case refMate:
			if !charclass.MateEqual(ra, rb) {
				return false
			}
		default:
			if ra != rb {
				return false
			}
		}
	}
}
