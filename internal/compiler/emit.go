package compiler

import (
	"github.com/pkg/errors"

	"github.com/sentra-lang/uregex/internal/nametab"
	"github.com/sentra-lang/uregex/internal/program"
	"github.com/sentra-lang/uregex/internal/rxerr"
)

// errInstructionCeiling is the cause rxerr.Wrap attaches a stack trace to
// when the compiled program overruns its instruction ceiling (spec §6):
// an internal invariant failure, not a malformed-pattern error a caller
// could have avoided by writing different source text.
var errInstructionCeiling = errors.New("instruction ceiling exceeded")

// Limits bounds the compiled instruction stream (spec §6).
type Limits struct {
	MaxInstructions int
}

// DefaultLimits matches spec §6.
var DefaultLimits = Limits{MaxInstructions: 1 << 20}

// procFixup records a Proc/NProc/Cond instruction whose Addr cannot be
// resolved until every procedure body has been emitted (spec §4.5 step 4:
// "every Proc/NProc/Cond instruction's address is resolved from its
// procedure index and direction flag").
type procFixup struct {
	instIndex int
	procIndex int
	reverse   bool
}

type state struct {
	code    []program.Inst
	limits  Limits
	procs   *nametab.ProcTable
	fixups  []procFixup
}

func (s *state) emit(in program.Inst) (int, error) {
	if len(s.code) >= s.limits.MaxInstructions {
		return 0, rxerr.Wrap(rxerr.TooLong, -1, errInstructionCeiling, "compiled program exceeds %d instructions", s.limits.MaxInstructions)
	}
	s.code = append(s.code, in)
	return len(s.code) - 1, nil
}

func (s *state) patch(idx, addr int) { s.code[idx].Addr = addr }

func (s *state) here() int { return len(s.code) }

func (s *state) emitJump(target int) (int, error) {
	return s.emit(program.Inst{Op: program.OpJump, Addr: target})
}

func (s *state) recordProcFixup(instIndex, procIndex int, reverse bool) {
	s.fixups = append(s.fixups, procFixup{instIndex, procIndex, reverse})
}

func (s *state) resolveFixups() {
	for _, fx := range s.fixups {
		entry := s.procs.Entry(fx.procIndex)
		addr := entry.ForwardAddr
		if fx.reverse {
			addr = entry.ReverseAddr
		}
		s.code[fx.instIndex].Addr = addr
	}
}
