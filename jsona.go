// Package jsona provides a public API for reading and writing the jsona
// format: a JSON superset that adds `@name(key = value, …)` annotations on
// values and relaxed JSON lexical rules (unquoted identifier keys, trailing
// commas, comments, single- or double-quoted strings).
//
// The four phases are exposed individually (Tokenize, Parse, Load, Emit)
// and combined behind Load/String for the common case:
//
//	root, header, err := jsona.Load(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := jsona.String(root, header)
package jsona

import (
	"bytes"
	"io"

	"github.com/jsona-lang/jsona-go/ast"
	"github.com/jsona-lang/jsona-go/emitter"
	"github.com/jsona-lang/jsona-go/lexer"
	"github.com/jsona-lang/jsona-go/loader"
	"github.com/jsona-lang/jsona-go/parser"
	"github.com/jsona-lang/jsona-go/token"
)

// Node is the annotated tree produced by Load and consumed by Emit.
type Node = ast.Node

// Value is the recursive JSON-like value carried by an annotation argument.
type Value = ast.Value

// Annotation is `@name(...)` metadata attached to a Node or returned
// separately as a header annotation.
type Annotation = ast.Annotation

// EmitOption configures Emit/String. WithIndent is currently the only one.
type EmitOption = emitter.Option

// WithIndent sets the number of spaces per nesting level (default 2).
func WithIndent(n int) EmitOption {
	return emitter.WithIndent(n)
}

// Tokenize lexes text and returns every token through EOF (or a single
// Error token at the point the input stopped being lexically valid). This
// is the `tokenize` operation of spec.md §6; most callers want Load
// instead.
func Tokenize(text string) []token.Token {
	return lexer.Tokenize(text)
}

// Parse drives recv through text's event stream without building a tree.
// Most callers want Load instead; Parse is exposed for tooling that only
// needs positions or a raw event trace.
func Parse(text string, recv parser.EventReceiver) error {
	return parser.Parse(text, recv)
}

// Load parses text and returns its root value together with any header
// annotations (those preceding the root). Header annotations are not part
// of root's own Annotations field.
func Load(text string) (*Node, []Annotation, error) {
	return loader.Load(text)
}

// Emit pretty-prints root (with header annotations prefixed, one per line)
// to w.
func Emit(w io.Writer, root *Node, header []Annotation, opts ...EmitOption) error {
	return emitter.Emit(w, root, header, opts...)
}

// String pretty-prints root and header to a string, the common case for
// round-tripping a document: root, header, _ := jsona.Load(in); out, _ :=
// jsona.String(root, header).
func String(root *Node, header []Annotation, opts ...EmitOption) (string, error) {
	var buf bytes.Buffer
	if err := emitter.Emit(&buf, root, header, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
