// Package disasm pretty-prints a compiled program for diagnostics (spec
// §4.7). It is pure and allocation-light, modeled on sentra's
// internal/formatter package: a small builder type with one Format-style
// entry point, never on the hot path.
package disasm

import (
	"fmt"
	"strings"

	"github.com/sentra-lang/uregex/internal/charclass"
	"github.com/sentra-lang/uregex/internal/program"
)

// Dump renders every instruction of p as "index mnemonic operand", one per
// line, followed by the group-name table. For Set operands it prints the
// set's interval representation; for Jump/Split/Look/Cond it prints the
// target index; for Save/BRef/QRef/Proc it prints the slot or index.
func Dump(p *program.Program) string {
	var b strings.Builder
	for i, inst := range p.Code {
		fmt.Fprintf(&b, "%4d  %-8s%s\n", i, inst.Op, operand(inst))
	}
	fmt.Fprintf(&b, "groups: %s\n", strings.Join(quoteAll(p.GroupNames), ", "))
	return b.String()
}

func operand(inst program.Inst) string {
	switch inst.Op {
	case program.OpChar:
		return fmt.Sprintf("%q", inst.Char)
	case program.OpSet:
		return setRepr(inst.Set)
	case program.OpJump, program.OpSplitLo, program.OpSplitHi:
		return fmt.Sprintf("-> %d", inst.Addr)
	case program.OpLook, program.OpNLook, program.OpLookR, program.OpNLookR:
		return fmt.Sprintf("-> %d", inst.Addr)
	case program.OpSave:
		return fmt.Sprintf("slot %d", inst.Sub)
	case program.OpBRef, program.OpNBRef, program.OpQRef, program.OpNQRef:
		return fmt.Sprintf("group %d", inst.Sub)
	case program.OpProc, program.OpNProc, program.OpCond:
		dir := "fwd"
		if inst.Rev {
			dir = "rev"
		}
		return fmt.Sprintf("-> %d (proc %d, %s)", inst.Addr, inst.Sub, dir)
	default:
		return ""
	}
}

// setRepr renders a Set's sorted intervals the way a bracket-class literal
// would read, e.g. [a-z0-9].
func setRepr(s *charclass.Set) string {
	if s == nil || s.IsEmpty() {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for _, iv := range s.Ranges() {
		if iv[0] == iv[1] {
			fmt.Fprintf(&b, "%q", iv[0])
		} else {
			fmt.Fprintf(&b, "%q-%q", iv[0], iv[1])
		}
	}
	b.WriteByte(']')
	return b.String()
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%d=%q", i, n)
	}
	return out
}
