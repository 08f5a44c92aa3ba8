// Package program defines the compiled instruction stream (spec §3, §4.5):
// a flat opcode array with forward/reverse duals baked in by the compiler,
// plus the group-name table needed to report capture results.
package program

import "github.com/sentra-lang/uregex/internal/charclass"

// OpCode is one VM instruction's operation.
type OpCode byte

const (
	OpChar OpCode = iota
	OpSet
	OpAny
	OpNone
	OpBol
	OpNBol
	OpEol
	OpNEol
	OpBot
	OpNBot
	OpEot
	OpNEot
	OpWbnd
	OpNWbnd
	OpLook
	OpNLook
	OpLookR
	OpNLookR
	OpBRef
	OpNBRef
	OpQRef
	OpNQRef
	OpProc
	OpNProc
	OpCond
	OpJump
	OpSplitLo
	OpSplitHi
	OpSave
	OpMatch
)

var opNames = map[OpCode]string{
	OpChar: "char", OpSet: "set", OpAny: "any", OpNone: "none",
	OpBol: "bol", OpNBol: "nbol", OpEol: "eol", OpNEol: "neol",
	OpBot: "bot", OpNBot: "nbot", OpEot: "eot", OpNEot: "neot",
	OpWbnd: "wbnd", OpNWbnd: "nwbnd",
	OpLook: "look", OpNLook: "nlook", OpLookR: "lookr", OpNLookR: "nlookr",
	OpBRef: "bref", OpNBRef: "nbref", OpQRef: "qref", OpNQRef: "nqref",
	OpProc: "proc", OpNProc: "nproc", OpCond: "cond",
	OpJump: "jump", OpSplitLo: "splitlo", OpSplitHi: "splithi",
	OpSave: "save", OpMatch: "match",
}

// String renders the opcode mnemonic used by the disassembler.
func (op OpCode) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "???"
}

// Inst is a single VM instruction. Op selects which operand fields are
// meaningful: usually one of Addr/Set/Char/Sub, except that Proc/NProc/Cond
// carry both Addr (the resolved entry) and Sub (the procedure index).
// Generation is the per-step dedup stamp (spec §3, §4.6) — the one field
// mutated after compile.
type Inst struct {
	Op     OpCode
	Addr   int           // jump/split/look/proc/cond target
	Set    *charclass.Set // character-set operand
	Char   rune          // literal scalar operand
	Sub    int           // save slot, or group/proc index
	Rev    bool          // reversed direction, for Proc/NProc/Cond guard calls

	Generation uint32
}

// Program is the compiled form of a pattern: a flat instruction array plus
// the group-name table, immutable after compile except for each
// instruction's Generation stamp (reset to zero at the start of every
// outer Execute call).
type Program struct {
	Code       []Inst
	GroupNames []string
}

// Len returns the number of instructions.
func (p *Program) Len() int { return len(p.Code) }

// ResetGenerations zeroes every instruction's generation stamp, required at
// the start of each outer execution (spec §5: "a program may be executed
// repeatedly; the generation field ... is zeroed at execution start").
func (p *Program) ResetGenerations() {
	for i := range p.Code {
		p.Code[i].Generation = 0
	}
}
