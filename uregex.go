// Package uregex is a Unicode-aware regular expression engine with an
// extended pattern language: named capture groups, named back-references,
// quote-match back-references, recursive named sub-pattern procedures, and
// conditional execution (spec §1). Compile builds a linear instruction
// stream (internal/compiler); Execute runs a backtracking-free Thompson
// executor (internal/vm) against UTF-16 text to find the leftmost match and
// its named submatches.
package uregex

import (
	"github.com/sentra-lang/uregex/internal/compiler"
	"github.com/sentra-lang/uregex/internal/disasm"
	"github.com/sentra-lang/uregex/internal/parser"
	"github.com/sentra-lang/uregex/internal/program"
	"github.com/sentra-lang/uregex/internal/ucursor"
	"github.com/sentra-lang/uregex/internal/vm"
)

// Limits bounds both pattern complexity and one execution's recursion
// depth (spec §6, §9). Callers needing different ceilings than the spec's
// defaults construct Limits directly and call CompileLimits.
type Limits struct {
	MaxPatternLen     int
	MaxQuantifier     int
	MaxInstructions   int
	MaxRecursionDepth int
}

// DefaultLimits matches spec §6 and §9 exactly.
var DefaultLimits = Limits{
	MaxPatternLen:     parser.DefaultLimits.MaxPatternLen,
	MaxQuantifier:     parser.DefaultLimits.MaxQuantifier,
	MaxInstructions:   compiler.DefaultLimits.MaxInstructions,
	MaxRecursionDepth: vm.DefaultLimits.MaxRecursionDepth,
}

// Program is a compiled pattern, immutable after Compile except for the
// per-execution instruction generation stamps Execute resets on entry.
type Program struct {
	prog   *program.Program
	limits vm.Limits
}

// Compile compiles pattern (decoded as Unicode scalars, spec §3 "Code
// point") into a Program. Any parse or compile failure aborts immediately
// with no partial program returned (spec §7).
func Compile(pattern string) (*Program, error) {
	return CompileLimits(pattern, DefaultLimits)
}

// CompileLimits is Compile with caller-supplied Limits.
func CompileLimits(pattern string, limits Limits) (*Program, error) {
	res, err := parser.Parse([]rune(pattern), parser.Limits{
		MaxPatternLen: limits.MaxPatternLen,
		MaxQuantifier: limits.MaxQuantifier,
	})
	if err != nil {
		return nil, err
	}
	prog, err := compiler.Compile(res, compiler.Limits{MaxInstructions: limits.MaxInstructions})
	if err != nil {
		return nil, err
	}
	return &Program{
		prog:   prog,
		limits: vm.Limits{MaxRecursionDepth: limits.MaxRecursionDepth},
	}, nil
}

// GroupNames enumerates the capture-group names in index order; index 0 is
// the whole match, conventionally named "" (spec §6 group_names).
func (p *Program) GroupNames() []string { return p.prog.GroupNames }

// GroupCount returns the number of groups, including the implicit group 0
// (spec §6 group_count).
func (p *Program) GroupCount() int { return len(p.prog.GroupNames) }

// Span is a captured (start, end) code-unit offset pair into the input that
// was executed against. A group that did not participate in the match has
// Matched == false.
type Span struct {
	Start, End int
	Matched    bool
}

// Execute runs the compiled program against a UTF-16 input buffer (spec §3
// "Cursor", §6 execute), returning the capture spans (index 0 is the whole
// match) and whether a match was found. Execution never fails for any
// reason but non-match (spec §7); it may be called repeatedly against the
// same Program, which is why Execute resets every instruction's generation
// stamp on entry (spec §5).
func (p *Program) Execute(input []uint16) ([]Span, bool) {
	p.prog.ResetGenerations()
	m := vm.NewMatcher(p.prog, input, p.limits)
	slots, ok := m.Run(0)
	if !ok {
		return nil, false
	}
	spans := make([]Span, len(slots)/2)
	for i := range spans {
		start, end := slots[2*i], slots[2*i+1]
		if start < 0 || end < 0 {
			continue
		}
		spans[i] = Span{Start: start, End: end, Matched: true}
	}
	return spans, true
}

// ExecuteString is Execute over a Go string, encoding it to UTF-16 first
// (spec §3: the engine executes over "a UTF-16 text").
func (p *Program) ExecuteString(input string) ([]Span, bool) {
	return p.Execute(ucursor.Encode16([]rune(input)))
}

// Print renders the compiled program for diagnostics (spec §4.7, §6
// print); never called on the hot path.
func (p *Program) Print() string { return disasm.Dump(p.prog) }
