// Package ast defines the regex abstract syntax tree (spec §3). Nodes are
// allocated from a single arena sized to the pattern length; the arena's
// lifetime is compile-only, freed once the compiler has lowered the tree to
// a Program.
package ast

import "github.com/sentra-lang/uregex/internal/charclass"

// Kind tags the variant a Node holds. Exactly the kinds spec §3 enumerates.
type Kind int

const (
	KChar Kind = iota
	KSet
	KAny
	KNone
	KBol
	KNBol
	KEol
	KNEol
	KBot
	KNBot
	KEot
	KNEot
	KWbnd
	KNWbnd
	KLookA
	KNLookA
	KLookB
	KNLookB
	KAlt
	KCat
	KGroup
	KQuest
	KPlus
	KStar
	KRepeat
	KBRef
	KNBRef
	KQRef
	KNQRef
	KProc
	KNProc
	KCond
)

// Node is a tagged-variant AST node. Only the fields relevant to Kind are
// populated; the rest are zero.
type Node struct {
	Kind Kind

	Char rune
	Set  *charclass.Set

	Left, Right, Child, Then, Else *Node

	Index   int // group/proc/backref index
	Greedy  bool
	Min,	Max int // Repeat bounds
}

// Arena bump-allocates Nodes so a whole parse's tree lives in one backing
// array, matching the "single arena sized to the pattern length" invariant
// in spec §3 (a pattern of length n produces at most a small constant
// multiple of n nodes).
type Arena struct {
	nodes []Node
}

// NewArena preallocates capacity proportional to the pattern length.
func NewArena(patternLen int) *Arena {
	cap := patternLen*4 + 16
	return &Arena{nodes: make([]Node, 0, cap)}
}

func (a *Arena) alloc(k Kind) *Node {
	a.nodes = append(a.nodes, Node{Kind: k})
	return &a.nodes[len(a.nodes)-1]
}

func (a *Arena) Char(r rune) *Node {
	n := a.alloc(KChar)
	n.Char = r
	return n
}

func (a *Arena) Set(s *charclass.Set) *Node {
	n := a.alloc(KSet)
	n.Set = s
	return n
}

func (a *Arena) Leaf(k Kind) *Node { return a.alloc(k) }

func (a *Arena) Unary(k Kind, child *Node) *Node {
	n := a.alloc(k)
	n.Child = child
	return n
}

func (a *Arena) Binary(k Kind, l, r *Node) *Node {
	n := a.alloc(k)
	n.Left, n.Right = l, r
	return n
}

func (a *Arena) Group(index int, child *Node) *Node {
	n := a.alloc(KGroup)
	n.Index, n.Child = index, child
	return n
}

func (a *Arena) Quant(k Kind, child *Node, greedy bool) *Node {
	n := a.alloc(k)
	n.Child, n.Greedy = child, greedy
	return n
}

func (a *Arena) Repeat(child *Node, min, max int, greedy bool) *Node {
	n := a.alloc(KRepeat)
	n.Child, n.Min, n.Max, n.Greedy = child, min, max, greedy
	return n
}

func (a *Arena) Ref(k Kind, index int) *Node {
	n := a.alloc(k)
	n.Index = index
	return n
}

func (a *Arena) Cond(procIndex int, then, els *Node) *Node {
	n := a.alloc(KCond)
	n.Index, n.Then, n.Else = procIndex, then, els
	return n
}
