// Package hir defines the high-level intermediate representation of a
// regular expression: a strict tree of eight node kinds produced from the
// regexp/syntax parse tree.
//
// The package also converts a tree into a self-describing tagged value
// (Encode) and back (Decode), so that consumers without native sum types can
// inspect a pattern's structure by reading explicit type and variant tags.
//
// Nodes are immutable once built. Build them through the constructors
// (Empty, Literal, NewClass, NewLook, Repeat, Group, Concat, Alternation),
// which keep every tree in canonical form:
//
//   - a Concat never holds two adjacent literals, a nested Concat or an Empty;
//   - Concat and Alternation have at least two children;
//   - a bounded repetition maximum is never below its minimum;
//   - capture indexes start at 1.
package hir

import (
	"bytes"
	"fmt"
	"slices"
)

// Kind identifies the variant of a node.
type Kind uint8

// Node kinds.
const (
	KindEmpty Kind = iota
	KindLiteral
	KindClass
	KindLook
	KindRepetition
	KindCapture
	KindConcat
	KindAlternation
)

var kindNames = [...]string{
	KindEmpty:       "Empty",
	KindLiteral:     "Literal",
	KindClass:       "Class",
	KindLook:        "Look",
	KindRepetition:  "Repetition",
	KindCapture:     "Capture",
	KindConcat:      "Concat",
	KindAlternation: "Alternation",
}

// String returns the variant name used by the tagged encoding.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Unbounded is the Repetition.Max of a repetition without upper bound.
const Unbounded = -1

// Repetition repeats Sub between Min and Max times.
type Repetition struct {
	Min int
	// Max is Unbounded when the repetition has no upper bound.
	Max int
	// Greedy prefers the longest match; otherwise the shortest.
	Greedy bool
	Sub    *Hir
}

// Capture is a capturing group.
type Capture struct {
	// Index is the group number assigned in parse order, starting at 1.
	Index int
	// Name is "" for unnamed groups.
	Name string
	Sub  *Hir
}

// Hir is a node of the tree.
type Hir struct {
	kind  Kind
	lit   []byte
	class Class
	look  Look
	rep   Repetition
	group Capture
	subs  []*Hir
}

var empty = &Hir{kind: KindEmpty}

// Empty returns the node matching the empty string everywhere.
func Empty() *Hir { return empty }

// Literal returns a node matching b verbatim. An empty literal is Empty.
func Literal(b []byte) *Hir {
	if len(b) == 0 {
		return Empty()
	}
	return &Hir{kind: KindLiteral, lit: bytes.Clone(b)}
}

// NewClass returns a node matching one member of c.
func NewClass(c Class) *Hir {
	if c == nil {
		c = ClassBytes{}
	}
	return &Hir{kind: KindClass, class: c}
}

// Fail returns a node that never matches: the empty byte class.
func Fail() *Hir {
	return NewClass(ClassBytes{})
}

// NewLook returns a zero-width assertion node.
func NewLook(l Look) *Hir {
	if !l.Valid() {
		panic(fmt.Sprintf("hir: invalid look %d", l))
	}
	return &Hir{kind: KindLook, look: l}
}

// Repeat returns a repetition node. It panics when r.Max is bounded and
// below r.Min, when r.Min is negative or when r.Sub is nil.
func Repeat(r Repetition) *Hir {
	if r.Min < 0 {
		panic(fmt.Sprintf("hir: repetition minimum %d is negative", r.Min))
	}
	if r.Max != Unbounded && r.Max < r.Min {
		panic(fmt.Sprintf("hir: repetition maximum %d below minimum %d", r.Max, r.Min))
	}
	if r.Sub == nil {
		panic("hir: repetition without sub-expression")
	}
	return &Hir{kind: KindRepetition, rep: r}
}

// Group returns a capture node. It panics when c.Index is below 1 or c.Sub
// is nil.
func Group(c Capture) *Hir {
	if c.Index < 1 {
		panic(fmt.Sprintf("hir: capture index %d, want >= 1", c.Index))
	}
	if c.Sub == nil {
		panic("hir: capture without sub-expression")
	}
	return &Hir{kind: KindCapture, group: c}
}

// Concat returns the concatenation of subs. Nested concatenations are
// flattened, Empty children dropped and adjacent literals merged. Zero
// children yield Empty and a single child is returned as is.
func Concat(subs ...*Hir) *Hir {
	out := make([]*Hir, 0, len(subs))
	var push func(h *Hir)
	push = func(h *Hir) {
		switch h.kind {
		case KindEmpty:
		case KindConcat:
			for _, s := range h.subs {
				push(s)
			}
		case KindLiteral:
			if n := len(out); n > 0 && out[n-1].kind == KindLiteral {
				merged := make([]byte, 0, len(out[n-1].lit)+len(h.lit))
				merged = append(merged, out[n-1].lit...)
				out[n-1] = &Hir{kind: KindLiteral, lit: append(merged, h.lit...)}
				return
			}
			out = append(out, h)
		default:
			out = append(out, h)
		}
	}
	for _, s := range subs {
		push(s)
	}
	switch len(out) {
	case 0:
		return Empty()
	case 1:
		return out[0]
	}
	return &Hir{kind: KindConcat, subs: slices.Clip(out)}
}

// Alternation returns the ordered choice between subs. Nested alternations
// are flattened. Zero children yield Fail and a single child is returned as
// is.
func Alternation(subs ...*Hir) *Hir {
	out := make([]*Hir, 0, len(subs))
	for _, s := range subs {
		if s.kind == KindAlternation {
			out = append(out, s.subs...)
			continue
		}
		out = append(out, s)
	}
	switch len(out) {
	case 0:
		return Fail()
	case 1:
		return out[0]
	}
	return &Hir{kind: KindAlternation, subs: slices.Clip(out)}
}

// Kind returns the variant of h.
func (h *Hir) Kind() Kind { return h.kind }

// Literal returns a copy of the bytes of a Literal node.
func (h *Hir) Literal() []byte {
	if h.kind != KindLiteral {
		return nil
	}
	return bytes.Clone(h.lit)
}

// Class returns the class of a Class node, or nil.
func (h *Hir) Class() Class {
	if h.kind != KindClass {
		return nil
	}
	return h.class
}

// Look returns the assertion of a Look node.
func (h *Hir) Look() Look { return h.look }

// Repetition returns the payload of a Repetition node.
func (h *Hir) Repetition() Repetition { return h.rep }

// Capture returns the payload of a Capture node.
func (h *Hir) Capture() Capture { return h.group }

// Children returns a copy of the children of a Concat or Alternation node.
func (h *Hir) Children() []*Hir {
	return slices.Clone(h.subs)
}

// Sub returns the direct sub-expressions of h: the children of Concat and
// Alternation, the single sub of Repetition and Capture, nothing otherwise.
func (h *Hir) Sub() []*Hir {
	switch h.kind {
	case KindRepetition:
		return []*Hir{h.rep.Sub}
	case KindCapture:
		return []*Hir{h.group.Sub}
	case KindConcat, KindAlternation:
		return slices.Clone(h.subs)
	}
	return nil
}

// Equal reports whether h and o are structurally equal.
func (h *Hir) Equal(o *Hir) bool {
	if h == nil || o == nil {
		return h == o
	}
	if h.kind != o.kind {
		return false
	}
	switch h.kind {
	case KindEmpty:
		return true
	case KindLiteral:
		return bytes.Equal(h.lit, o.lit)
	case KindClass:
		return equalClass(h.class, o.class)
	case KindLook:
		return h.look == o.look
	case KindRepetition:
		return h.rep.Min == o.rep.Min && h.rep.Max == o.rep.Max &&
			h.rep.Greedy == o.rep.Greedy && h.rep.Sub.Equal(o.rep.Sub)
	case KindCapture:
		return h.group.Index == o.group.Index && h.group.Name == o.group.Name &&
			h.group.Sub.Equal(o.group.Sub)
	case KindConcat, KindAlternation:
		return slices.EqualFunc(h.subs, o.subs, (*Hir).Equal)
	}
	return false
}

// Walk visits h and its descendants in pre-order. When fn returns false the
// children of that node are skipped. Walk uses an explicit stack, so deeply
// nested trees do not grow the goroutine stack.
func Walk(h *Hir, fn func(*Hir) bool) {
	stack := []*Hir{h}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		subs := n.Sub()
		for i := len(subs) - 1; i >= 0; i-- {
			stack = append(stack, subs[i])
		}
	}
}

// Stats summarizes a tree.
type Stats struct {
	Nodes    int
	Depth    int
	Captures int
	ByKind   map[Kind]int
}

// Summarize counts the nodes of h by kind and measures its depth.
func Summarize(h *Hir) Stats {
	st := Stats{ByKind: make(map[Kind]int)}
	type frame struct {
		h     *Hir
		depth int
	}
	stack := []frame{{h, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st.Nodes++
		st.ByKind[f.h.kind]++
		st.Depth = max(st.Depth, f.depth)
		if f.h.kind == KindCapture {
			st.Captures++
		}
		for _, s := range f.h.Sub() {
			stack = append(stack, frame{s, f.depth + 1})
		}
	}
	return st
}
