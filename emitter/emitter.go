// Package emitter pretty-prints an ast.Node tree (plus header annotations)
// back to text, grounded on sigoden/jsona's Rust Emitter.
package emitter

import (
	"io"
	"strconv"

	"github.com/jsona-lang/jsona-go/ast"
)

// Option configures an Emitter. The only knob the original exposes is the
// indent width.
type Option func(*Emitter)

// WithIndent sets the number of spaces per nesting level. The default is 2,
// matching the original Emitter::new.
func WithIndent(n int) Option {
	return func(e *Emitter) { e.indent = n }
}

// Emitter holds the writer and indentation state for one emit pass. Not
// safe for concurrent use; scoped to a single Emit call the way the
// loader's stacks are scoped to a single Load call.
type Emitter struct {
	w      io.Writer
	indent int
	level  int
}

// Emit implements the `emit` operation of spec.md §6: it writes header
// annotations, then the root value, to w. header is the separate
// annotation list Load returns alongside the root -- it is not part of
// root.Annotations and is never merged into it.
func Emit(w io.Writer, root *ast.Node, header []ast.Annotation, opts ...Option) error {
	e := &Emitter{w: w, indent: 2}
	for _, opt := range opts {
		opt(e)
	}
	return e.emit(root, header)
}

func (e *Emitter) emit(root *ast.Node, header []ast.Annotation) error {
	if err := e.emitHeaderAnnotations(header); err != nil {
		return err
	}
	if err := e.writeln(); err != nil {
		return err
	}
	if err := e.emitValue(root); err != nil {
		return err
	}
	return e.writeln()
}

// emitHeaderAnnotations writes each header annotation on its own line.
func (e *Emitter) emitHeaderAnnotations(header []ast.Annotation) error {
	for _, a := range header {
		if err := e.writeString("@" + a.Name); err != nil {
			return err
		}
		if err := e.emitAnnotationArgs(a.Value); err != nil {
			return err
		}
		if err := e.writeln(); err != nil {
			return err
		}
	}
	return nil
}

// emitInlineAnnotations writes trailing `@name(...)` forms, each preceded
// by a space, the form used for annotations attached in place (as opposed
// to header annotations, which get their own line).
func (e *Emitter) emitInlineAnnotations(anns []ast.Annotation) error {
	for _, a := range anns {
		if err := e.writeString(" @" + a.Name); err != nil {
			return err
		}
		if err := e.emitAnnotationArgs(a.Value); err != nil {
			return err
		}
	}
	return nil
}

// emitAnnotationArgs writes an annotation's parenthesized argument list.
// The grammar only ever produces an ordered-mapping value (empty for a
// bare `@name`), in which case parens are written only when non-empty; a
// non-object value (only reachable via direct AST construction, never via
// Load) is wrapped in parens as a single bare value.
func (e *Emitter) emitAnnotationArgs(v *ast.Value) error {
	if v == nil {
		return nil
	}
	if v.Kind == ast.ValueObject {
		if len(v.Properties) == 0 {
			return nil
		}
		if err := e.writeString("("); err != nil {
			return err
		}
		for i, p := range v.Properties {
			if err := e.writeIdentOrString(p.Key); err != nil {
				return err
			}
			if err := e.writeString(" = "); err != nil {
				return err
			}
			if err := e.emitAnnotationValue(p.Value); err != nil {
				return err
			}
			if i < len(v.Properties)-1 {
				if err := e.writeString(", "); err != nil {
					return err
				}
			}
		}
		return e.writeString(")")
	}

	if err := e.writeString("("); err != nil {
		return err
	}
	if err := e.emitAnnotationValue(v); err != nil {
		return err
	}
	return e.writeString(")")
}

// emitAnnotationValue writes a single annotation argument value. Nested
// objects use `key = value` pairs (the same syntax as the top-level
// argument list) rather than `key: value`, per the AnnoValue sub-grammar.
func (e *Emitter) emitAnnotationValue(v *ast.Value) error {
	switch v.Kind {
	case ast.ValueNull:
		return e.writeString("null")
	case ast.ValueBool:
		if v.Bool {
			return e.writeString("true")
		}
		return e.writeString("false")
	case ast.ValueInt:
		return e.writeString(strconv.FormatInt(v.Int, 10))
	case ast.ValueFloat:
		return e.writeString(formatFloat(v.Float))
	case ast.ValueString:
		return e.writeQuoted(v.Str, true)
	case ast.ValueArray:
		if err := e.writeString("["); err != nil {
			return err
		}
		for i, el := range v.Elements {
			if err := e.emitAnnotationValue(el); err != nil {
				return err
			}
			if i < len(v.Elements)-1 {
				if err := e.writeString(", "); err != nil {
					return err
				}
			}
		}
		return e.writeString("]")
	case ast.ValueObject:
		if err := e.writeString("{"); err != nil {
			return err
		}
		for i, p := range v.Properties {
			if err := e.writeIdentOrString(p.Key); err != nil {
				return err
			}
			if err := e.writeString(" = "); err != nil {
				return err
			}
			if err := e.emitAnnotationValue(p.Value); err != nil {
				return err
			}
			if i < len(v.Properties)-1 {
				if err := e.writeString(", "); err != nil {
					return err
				}
			}
		}
		return e.writeString("}")
	}
	return nil
}

// emitValue writes the document root, including its trailing inline
// annotations if it is a scalar. Array elements and object member values are
// written by emitArray/emitObject, which place a scalar's annotations after
// its comma. Composite self-annotations are written by
// emitArray/emitObject on the opening bracket line instead.
func (e *Emitter) emitValue(n *ast.Node) error {
	if err := e.emitNode(n, false); err != nil {
		return err
	}
	if n.IsScalar() {
		return e.emitInlineAnnotations(n.Annotations)
	}
	return nil
}

func (e *Emitter) emitNode(n *ast.Node, comma bool) error {
	switch n.Kind {
	case ast.KindNull:
		return e.writeScalar("null", comma)
	case ast.KindBool:
		if n.Bool {
			return e.writeScalar("true", comma)
		}
		return e.writeScalar("false", comma)
	case ast.KindInt:
		return e.writeScalar(strconv.FormatInt(n.Int, 10), comma)
	case ast.KindFloat:
		return e.writeScalar(formatFloat(n.Float), comma)
	case ast.KindString:
		if err := e.writeQuoted(n.Str, true); err != nil {
			return err
		}
		if comma {
			return e.writeString(",")
		}
		return nil
	case ast.KindArray:
		return e.emitArray(n, comma)
	case ast.KindObject:
		return e.emitObject(n, comma)
	}
	return nil
}

func (e *Emitter) writeScalar(s string, comma bool) error {
	if err := e.writeString(s); err != nil {
		return err
	}
	if comma {
		return e.writeString(",")
	}
	return nil
}

func (e *Emitter) emitArray(n *ast.Node, comma bool) error {
	if len(n.Elements) == 0 {
		if err := e.writeString("[]"); err != nil {
			return err
		}
		if comma {
			if err := e.writeString(","); err != nil {
				return err
			}
		}
		return e.emitInlineAnnotations(n.Annotations)
	}

	if err := e.writeString("["); err != nil {
		return err
	}
	if err := e.emitInlineAnnotations(n.Annotations); err != nil {
		return err
	}
	if err := e.writeln(); err != nil {
		return err
	}
	e.level++
	for i, el := range n.Elements {
		if err := e.writeIndent(); err != nil {
			return err
		}
		if err := e.emitNode(el, i < len(n.Elements)-1); err != nil {
			return err
		}
		if el.IsScalar() {
			if err := e.emitInlineAnnotations(el.Annotations); err != nil {
				return err
			}
		}
		if err := e.writeln(); err != nil {
			return err
		}
	}
	e.level--
	if err := e.writeIndent(); err != nil {
		return err
	}
	if err := e.writeString("]"); err != nil {
		return err
	}
	if comma {
		return e.writeString(",")
	}
	return nil
}

func (e *Emitter) emitObject(n *ast.Node, comma bool) error {
	if len(n.Properties) == 0 {
		if err := e.writeString("{}"); err != nil {
			return err
		}
		if comma {
			if err := e.writeString(","); err != nil {
				return err
			}
		}
		return e.emitInlineAnnotations(n.Annotations)
	}

	if err := e.writeString("{"); err != nil {
		return err
	}
	if err := e.emitInlineAnnotations(n.Annotations); err != nil {
		return err
	}
	if err := e.writeln(); err != nil {
		return err
	}
	e.level++
	for i, p := range n.Properties {
		if err := e.writeIndent(); err != nil {
			return err
		}
		if err := e.writeIdentOrString(p.Key); err != nil {
			return err
		}
		if err := e.writeString(": "); err != nil {
			return err
		}
		if err := e.emitNode(p.Value, i < len(n.Properties)-1); err != nil {
			return err
		}
		if p.Value.IsScalar() {
			if err := e.emitInlineAnnotations(p.Value.Annotations); err != nil {
				return err
			}
		}
		if err := e.writeln(); err != nil {
			return err
		}
	}
	e.level--
	if err := e.writeIndent(); err != nil {
		return err
	}
	if err := e.writeString("}"); err != nil {
		return err
	}
	if comma {
		return e.writeString(",")
	}
	return nil
}

func (e *Emitter) writeIndent() error {
	for i := 0; i < e.level*e.indent; i++ {
		if err := e.writeString(" "); err != nil {
			return err
		}
	}
	return nil
}

// writeIdentOrString writes an object/annotation key, quoting only if
// needQuotes requires it.
func (e *Emitter) writeIdentOrString(s string) error {
	return e.writeQuoted(s, false)
}

// writeQuoted writes s as an escaped literal if force is set or needQuotes
// requires it, else writes it bare.
func (e *Emitter) writeQuoted(s string, force bool) error {
	if force || needQuotes(s) {
		return escapeStr(e.w, s)
	}
	return e.writeString(s)
}

func (e *Emitter) writeString(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *Emitter) writeln() error {
	return e.writeString("\n")
}

// formatFloat renders f the way spec.md §9 resolves the format's Open
// Question: the shortest decimal representation that round-trips exactly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
