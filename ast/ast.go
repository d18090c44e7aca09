// Package ast defines the annotated value tree produced by the loader and
// consumed by the emitter, plus the separate JSON-like value type used for
// annotation arguments.
package ast

import "github.com/jsona-lang/jsona-go/token"

// Kind identifies which variant of Node is populated.
type Kind int

// Node kinds, one per scalar/composite case named in spec.md §3.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// Node is a single value in the annotated tree. It is a flat tagged struct
// rather than one Go type per kind: every variant shares a position and an
// annotation list, and factoring those into an embedded header plus an
// interface would scatter access to them behind a type switch anyway.
// Only the fields matching Kind are meaningful.
type Node struct {
	Kind        Kind
	Pos         token.Position
	Annotations []Annotation

	Bool  bool
	Int   int64
	Float float64
	Str   string

	Elements   []*Node     // KindArray
	Properties []*Property // KindObject
}

// Property is one key/value pair of an object, in source order. Duplicate
// keys are preserved, never deduplicated.
type Property struct {
	Key   string
	Pos   token.Position
	Value *Node
}

// Annotation is `@name(...)` metadata attached to a Node or to the document
// root. Its Value is an annotation-argument Value, never another Node --
// annotations cannot themselves carry annotations.
type Annotation struct {
	Name  string
	Pos   token.Position
	Value *Value
}

// IsScalar reports whether n is a leaf node (not Array or Object), which
// controls how the emitter places trailing annotations.
func (n *Node) IsScalar() bool {
	return n.Kind != KindArray && n.Kind != KindObject
}

// AddAnnotation appends ann to n's annotation list.
func (n *Node) AddAnnotation(ann Annotation) {
	n.Annotations = append(n.Annotations, ann)
}

func NewNull(pos token.Position) *Node {
	return &Node{Kind: KindNull, Pos: pos}
}

func NewBool(pos token.Position, v bool) *Node {
	return &Node{Kind: KindBool, Pos: pos, Bool: v}
}

func NewInt(pos token.Position, v int64) *Node {
	return &Node{Kind: KindInt, Pos: pos, Int: v}
}

func NewFloat(pos token.Position, v float64) *Node {
	return &Node{Kind: KindFloat, Pos: pos, Float: v}
}

func NewString(pos token.Position, v string) *Node {
	return &Node{Kind: KindString, Pos: pos, Str: v}
}

func NewArray(pos token.Position) *Node {
	return &Node{Kind: KindArray, Pos: pos, Elements: []*Node{}}
}

func NewObject(pos token.Position) *Node {
	return &Node{Kind: KindObject, Pos: pos, Properties: []*Property{}}
}
