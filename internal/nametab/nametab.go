// Package nametab holds the pattern-internal interned name tables: the
// group (capture) table and the procedure table (spec §3, §4.3). Lookup is
// linear scan, since these tables are always small for a single pattern;
// golang.org/x/exp/slices provides the search/insert primitives the way the
// rest of the example pack's small-table code does instead of hand-rolled
// loops.
package nametab

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// anonPrefix starts with a NUL byte, which can never appear in a
// user-supplied name (the parser's name scan stops at whitespace, at any of
// :=$;}, and at NUL), and prefixes compiler-generated procedure names for
// conditional guards (spec §4.4).
const anonPrefix = "\x00cond:"

// GroupEntry is one entry of the capture-group table. Index 0 is reserved
// for the whole match and is always Defined.
type GroupEntry struct {
	Name    string
	Defined bool
}

// GroupTable is the ordered list of capture-group names for one pattern.
type GroupTable struct {
	entries []GroupEntry
}

// NewGroupTable returns a table with only the implicit whole-match group 0.
func NewGroupTable() *GroupTable {
	return &GroupTable{entries: []GroupEntry{{Name: "", Defined: true}}}
}

// Count returns the number of groups, including group 0.
func (t *GroupTable) Count() int { return len(t.entries) }

// Names returns the group names in index order (group_names, spec §6).
func (t *GroupTable) Names() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Name
	}
	return out
}

// indexOf returns the index of name, or -1.
func (t *GroupTable) indexOf(name string) int {
	return slices.IndexFunc(t.entries, func(e GroupEntry) bool { return e.Name == name })
}

// Reference registers name if absent (with Defined=false) and returns its
// index. Used when a back-reference or recursive mention is seen before the
// defining capture group.
func (t *GroupTable) Reference(name string) int {
	if i := t.indexOf(name); i >= 0 {
		return i
	}
	t.entries = append(t.entries, GroupEntry{Name: name})
	return len(t.entries) - 1
}

// Lookup reports whether name has been seen yet (referenced or defined),
// without registering it. Used by \m/\M to decide whether a bracket
// character operand should fall back to the self-defining literal form
// (spec §9 open-question decision, see DESIGN.md).
func (t *GroupTable) Lookup(name string) (index int, known bool) {
	i := t.indexOf(name)
	return i, i >= 0
}

// Define registers name as a capture-group literal, marking it Defined, and
// returns its index.
func (t *GroupTable) Define(name string) int {
	if i := t.indexOf(name); i >= 0 {
		t.entries[i].Defined = true
		return i
	}
	t.entries = append(t.entries, GroupEntry{Name: name, Defined: true})
	return len(t.entries) - 1
}

// Undefined returns the name of the first referenced-but-never-defined
// group, or "" if all references resolved (spec §4.3).
func (t *GroupTable) Undefined() string {
	for _, e := range t.entries[1:] {
		if !e.Defined {
			return e.Name
		}
	}
	return ""
}

// ProcEntry is one entry of the procedure table: a named sub-pattern
// definable once and callable (recursively) from anywhere in the pattern.
type ProcEntry struct {
	Name          string
	HasBody       bool
	ForwardAddr   int
	ReverseAddr   int
}

// ProcTable is the ordered list of named procedures for one pattern.
type ProcTable struct {
	entries []ProcEntry
}

// NewProcTable returns an empty procedure table.
func NewProcTable() *ProcTable { return &ProcTable{} }

func (t *ProcTable) indexOf(name string) int {
	return slices.IndexFunc(t.entries, func(e ProcEntry) bool { return e.Name == name })
}

// Reference registers name if absent and returns its index.
func (t *ProcTable) Reference(name string) int {
	if i := t.indexOf(name); i >= 0 {
		return i
	}
	t.entries = append(t.entries, ProcEntry{Name: name})
	return len(t.entries) - 1
}

// Define marks name as having a body. Returns (index, alreadyDefined).
func (t *ProcTable) Define(name string) (int, bool) {
	if i := t.indexOf(name); i >= 0 {
		if t.entries[i].HasBody {
			return i, true
		}
		t.entries[i].HasBody = true
		return i, false
	}
	t.entries = append(t.entries, ProcEntry{Name: name, HasBody: true})
	return len(t.entries) - 1, false
}

// NewAnon registers a fresh anonymous procedure (for a conditional guard,
// spec §4.4) under a name no user pattern can spell, and marks it defined.
// google/uuid mints the collision-proof suffix.
func (t *ProcTable) NewAnon() (index int, name string) {
	name = anonPrefix + uuid.NewString()
	idx, _ := t.Define(name)
	return idx, name
}

// Count returns the number of procedures.
func (t *ProcTable) Count() int { return len(t.entries) }

// Entry returns the entry at index.
func (t *ProcTable) Entry(index int) ProcEntry { return t.entries[index] }

// SetAddrs records the compiled forward/reverse entry addresses for a
// procedure once the compiler has emitted its body both ways.
func (t *ProcTable) SetAddrs(index, forward, reverse int) {
	t.entries[index].ForwardAddr = forward
	t.entries[index].ReverseAddr = reverse
}

// Undefined returns the name of the first referenced-but-bodyless
// procedure, or "" if every procedure has a body.
func (t *ProcTable) Undefined() string {
	for _, e := range t.entries {
		if !e.HasBody {
			return e.Name
		}
	}
	return ""
}
