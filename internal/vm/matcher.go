// Package vm implements the backtracking-free Thompson-style executor
// (spec §4.6): simultaneous threads over a compiled program, submatch
// tracking via refcounted copy-on-write capture vectors, and recursive
// sub-executions for lookaround, back-reference spans, and procedure
// calls. Structure (thread list swap, addthread/step split, generation
// stamped dedup) is grounded on other_examples/eaburns-T/re1.go's
// vm/add/step, adapted to carry resume cursors, bidirectional traversal,
// and the richer opcode set original_source/regex.c's rgx_exec1/addthread
// define for this pattern language.
package vm

import (
	"github.com/sentra-lang/uregex/internal/charclass"
	"github.com/sentra-lang/uregex/internal/program"
	"github.com/sentra-lang/uregex/internal/ucursor"
)

var vspaceSet = charclass.VSpace()
var wordSet = charclass.Word()

// Limits bounds one execution (spec §6, §9 "a stack-overflow guard").
type Limits struct {
	MaxRecursionDepth int
}

// DefaultLimits is a generous default; pattern nesting bounds real depth.
var DefaultLimits = Limits{MaxRecursionDepth: 4096}

// thread is one logical execution context of the VM (spec §4.6): a
// program counter, the submatch vector it carries, and (for BRef/QRef/
// Proc) the cursor position it is paused waiting to reach.
type thread struct {
	pc     int
	sub    *sub
	resume int // unset unless this thread is paused on a multi-step span
}

type threadList struct {
	threads []thread
}

func newThreadList(cap int) *threadList {
	return &threadList{threads: make([]thread, 0, cap)}
}

// Matcher holds the state of one top-level or nested execution (spec
// §4.6 "Matcher state"). A single Matcher value is reused across nested
// Proc/Look recursions: only cursor, direction, and current_char are
// saved and restored around a recursive call; the generation counter and
// submatch pool are shared so deduplication and allocation stay correct
// (spec §4.6 "Recursion").
type Matcher struct {
	prog       *program.Program
	generation uint32
	pool       *pool

	buf     []uint16
	cur     ucursor.Cursor
	curChar rune // last scalar consumed by advance(); EOF before the first
	reverse bool

	depth int
	limits Limits
}

// NewMatcher prepares a Matcher to execute prog against buf. The caller
// must call prog.ResetGenerations() once per outer Execute call (spec §5).
func NewMatcher(prog *program.Program, buf []uint16, limits Limits) *Matcher {
	return &Matcher{
		prog:       prog,
		generation: 1,
		pool:       newPool(len(prog.GroupNames) * 2),
		buf:        buf,
		cur:        ucursor.Init(buf, 0, len(buf)),
		curChar:    ucursor.EOF,
		limits:     limits,
	}
}

func (m *Matcher) more() bool { return m.curChar != ucursor.EOF }

func (m *Matcher) peek() rune {
	if m.reverse {
		return m.cur.RPeek()
	}
	return m.cur.Peek()
}

func (m *Matcher) advance() rune {
	if m.reverse {
		m.curChar = m.cur.Prev()
	} else {
		m.curChar = m.cur.Next()
	}
	return m.curChar
}

// Run executes the program starting at pc with a fresh, all-unset
// submatch vector, using simultaneous threads (spec §4.6). It returns the
// best (leftmost, greediness-respecting) match's slots, or ok=false.
func (m *Matcher) Run(pc int) ([]int, bool) {
	s, ok := m.run(pc, m.pool.fresh())
	if !ok {
		return nil, false
	}
	out := s.clone()
	m.pool.release(s)
	return out, true
}

// run is the shared inner loop used both for the outer search and every
// nested recursion (lookaround bodies, procedure/guard calls): it owns
// initSub (one reference) and returns a sub the caller must release.
func (m *Matcher) run(pc int, initSub *sub) (*sub, bool) {
	clist := newThreadList(m.prog.Len())
	nlist := newThreadList(m.prog.Len())
	m.addThread(clist, pc, initSub, unset)

	var matched *sub
	for len(clist.threads) > 0 {
		m.advance()
		m.generation++
		for i := 0; i < len(clist.threads); i++ {
			t := clist.threads[i]
			inst := &m.prog.Code[t.pc]
			switch inst.Op {
			case program.OpMatch:
				if matched != nil {
					m.pool.release(matched)
				}
				matched = t.sub
				for i++; i < len(clist.threads); i++ {
					m.pool.release(clist.threads[i].sub)
				}
			case program.OpChar:
				if m.more() && m.curChar == inst.Char {
					m.addThread(nlist, t.pc+1, t.sub, unset)
				} else {
					m.pool.release(t.sub)
				}
			case program.OpSet:
				if m.more() && inst.Set.Contains(m.curChar) {
					m.addThread(nlist, t.pc+1, t.sub, unset)
				} else {
					m.pool.release(t.sub)
				}
			case program.OpAny:
				if m.more() {
					m.addThread(nlist, t.pc+1, t.sub, unset)
				} else {
					m.pool.release(t.sub)
				}
			case program.OpBRef, program.OpQRef, program.OpNQRef, program.OpProc:
				pos := m.cur.Pos()
				reached := pos >= t.resume
				if m.reverse {
					reached = pos <= t.resume
				}
				if reached {
					m.addThread(nlist, t.pc+1, t.sub, unset)
				} else {
					nlist.threads = append(nlist.threads, t)
				}
			}
		}
		clist, nlist = nlist, clist
		nlist.threads = nlist.threads[:0]
		if !m.more() {
			break
		}
	}
	if matched != nil {
		return matched, true
	}
	return nil, false
}

// testAnchor evaluates the zero-width assertions (spec §4.6, grounded on
// original_source/regex.c's BOL/EOL/BOT/EOT/WBND cases). CUR is the last
// scalar advance() produced (EOF before anything has been consumed); PEEK
// is the scalar the next advance() would produce.
func (m *Matcher) testAnchor(op program.OpCode) bool {
	switch op {
	case program.OpBol:
		return !m.more() || vspaceSet.Contains(m.curChar)
	case program.OpNBol:
		return !(!m.more() || vspaceSet.Contains(m.curChar))
	case program.OpEol:
		p := m.peek()
		return p == ucursor.EOF || vspaceSet.Contains(p)
	case program.OpNEol:
		p := m.peek()
		return !(p == ucursor.EOF || vspaceSet.Contains(p))
	case program.OpBot:
		return !m.more()
	case program.OpNBot:
		return m.more()
	case program.OpEot:
		return m.peek() == ucursor.EOF
	case program.OpNEot:
		return m.peek() != ucursor.EOF
	case program.OpWbnd, program.OpNWbnd:
		isWA := m.more() && wordSet.Contains(m.curChar)
		p := m.peek()
		isWB := p != ucursor.EOF && wordSet.Contains(p)
		boundary := isWA != isWB
		if op == program.OpWbnd {
			return boundary
		}
		return !boundary
	}
	return false
}
