// Package loader consumes the parser's event stream and assembles it into
// an ast.Node tree, attaching annotations to the node each belongs to.
//
// This is a direct generalization of sigoden/jsona's Rust Loader
// (value_stack / key_stack / annotation_*_stack) to Go's tagged-struct
// dispatch in place of pattern matching.
package loader

import (
	"github.com/jsona-lang/jsona-go/ast"
	"github.com/jsona-lang/jsona-go/parser"
	"github.com/jsona-lang/jsona-go/token"
)

type keySlot struct {
	pos token.Position
	key string
	has bool
}

type annoName struct {
	pos  token.Position
	name string
}

// Loader implements parser.EventReceiver, assembling events into a tree.
// A single Loader is scoped to one Load call; its stacks are scratch state.
type Loader struct {
	valueStack []*ast.Node
	keyStack   []keySlot

	annoValueStack []*ast.Value
	annoKeyStack   []*string

	current *annoName
	header  []ast.Annotation
}

// Load parses text and returns its root value together with any header
// annotations (those preceding the root, per spec.md §3/§4.3), which are
// deliberately not attached to the root node -- spec.md §6's emit operation
// takes them as a separate parameter, mirroring the (root, header) pair the
// original emitter accepts.
func Load(text string) (*ast.Node, []ast.Annotation, error) {
	l := &Loader{}
	if err := parser.Parse(text, l); err != nil {
		return nil, nil, err
	}
	if len(l.valueStack) != 1 {
		panic("jsona/loader: parse finished with an unbalanced value stack; this is a bug in the parser")
	}
	return l.valueStack[0], l.header, nil
}

// OnEvent implements parser.EventReceiver.
func (l *Loader) OnEvent(ev parser.Event) {
	switch ev.Kind {
	case parser.EvAnnotationStart:
		l.current = &annoName{pos: ev.Pos, name: ev.Str}
	case parser.EvAnnotationEnd:
		name := l.current
		l.current = nil
		value := l.popAnnoValue()
		l.attach(ast.Annotation{Name: name.name, Pos: name.pos, Value: value})

	case parser.EvArrayStart:
		if l.inAnnotation() {
			l.annoValueStack = append(l.annoValueStack, ast.NewValueArray())
		} else {
			l.valueStack = append(l.valueStack, ast.NewArray(ev.Pos))
		}
	case parser.EvArrayStop:
		if l.inAnnotation() {
			l.insertAnnoValue(l.popAnnoValue())
		} else {
			l.insertNode(l.popValue())
		}

	case parser.EvObjectStart:
		if l.inAnnotation() {
			l.annoKeyStack = append(l.annoKeyStack, nil)
			l.annoValueStack = append(l.annoValueStack, ast.NewValueObject())
		} else {
			l.keyStack = append(l.keyStack, keySlot{})
			l.valueStack = append(l.valueStack, ast.NewObject(ev.Pos))
		}
	case parser.EvObjectStop:
		if l.inAnnotation() {
			l.annoKeyStack = l.annoKeyStack[:len(l.annoKeyStack)-1]
			l.insertAnnoValue(l.popAnnoValue())
		} else {
			l.keyStack = l.keyStack[:len(l.keyStack)-1]
			l.insertNode(l.popValue())
		}

	case parser.EvNull:
		if l.inAnnotation() {
			l.insertAnnoValue(ast.NewValueNull())
		} else {
			l.insertNode(ast.NewNull(ev.Pos))
		}
	case parser.EvBoolean:
		if l.inAnnotation() {
			l.insertAnnoValue(ast.NewValueBool(ev.Bool))
		} else {
			l.insertNode(ast.NewBool(ev.Pos, ev.Bool))
		}
	case parser.EvInteger:
		if l.inAnnotation() {
			l.insertAnnoValue(ast.NewValueInt(ev.Int))
		} else {
			l.insertNode(ast.NewInt(ev.Pos, ev.Int))
		}
	case parser.EvFloat:
		if l.inAnnotation() {
			l.insertAnnoValue(ast.NewValueFloat(ev.Float))
		} else {
			l.insertNode(ast.NewFloat(ev.Pos, ev.Float))
		}
	case parser.EvString:
		l.onString(ev)
	}
}

func (l *Loader) inAnnotation() bool {
	return l.current != nil
}

// onString implements the scalar-as-key handling of spec.md §4.3: a String
// event arriving while the top of the relevant stack is an Object with no
// pending key is captured as that key rather than inserted as a value.
func (l *Loader) onString(ev parser.Event) {
	if l.inAnnotation() {
		if top := l.topAnnoValue(); top != nil && top.Kind == ast.ValueObject {
			i := len(l.annoKeyStack) - 1
			if l.annoKeyStack[i] == nil {
				key := ev.Str
				l.annoKeyStack[i] = &key
				return
			}
		}
		l.insertAnnoValue(ast.NewValueString(ev.Str))
		return
	}

	if top := l.topValue(); top != nil && top.Kind == ast.KindObject {
		i := len(l.keyStack) - 1
		if !l.keyStack[i].has {
			l.keyStack[i] = keySlot{pos: ev.Pos, key: ev.Str, has: true}
			return
		}
	}
	l.insertNode(ast.NewString(ev.Pos, ev.Str))
}

func (l *Loader) topValue() *ast.Node {
	if len(l.valueStack) == 0 {
		return nil
	}
	return l.valueStack[len(l.valueStack)-1]
}

func (l *Loader) popValue() *ast.Node {
	n := l.valueStack[len(l.valueStack)-1]
	l.valueStack = l.valueStack[:len(l.valueStack)-1]
	return n
}

func (l *Loader) topAnnoValue() *ast.Value {
	if len(l.annoValueStack) == 0 {
		return nil
	}
	return l.annoValueStack[len(l.annoValueStack)-1]
}

func (l *Loader) popAnnoValue() *ast.Value {
	v := l.annoValueStack[len(l.annoValueStack)-1]
	l.annoValueStack = l.annoValueStack[:len(l.annoValueStack)-1]
	return v
}

// insertNode places a completed node into its parent container, or onto an
// empty stack if node is the document root.
func (l *Loader) insertNode(node *ast.Node) {
	if len(l.valueStack) == 0 {
		l.valueStack = append(l.valueStack, node)
		return
	}
	parent := l.valueStack[len(l.valueStack)-1]
	switch parent.Kind {
	case ast.KindArray:
		parent.Elements = append(parent.Elements, node)
	case ast.KindObject:
		i := len(l.keyStack) - 1
		if !l.keyStack[i].has {
			panic("jsona/loader: object value with no pending key; this is a bug in the parser")
		}
		parent.Properties = append(parent.Properties, &ast.Property{
			Key:   l.keyStack[i].key,
			Pos:   l.keyStack[i].pos,
			Value: node,
		})
		l.keyStack[i] = keySlot{}
	default:
		panic("jsona/loader: cannot insert a value into a scalar container; this is a bug in the parser")
	}
}

func (l *Loader) insertAnnoValue(v *ast.Value) {
	if len(l.annoValueStack) == 0 {
		l.annoValueStack = append(l.annoValueStack, v)
		return
	}
	parent := l.annoValueStack[len(l.annoValueStack)-1]
	switch parent.Kind {
	case ast.ValueArray:
		parent.Elements = append(parent.Elements, v)
	case ast.ValueObject:
		i := len(l.annoKeyStack) - 1
		if l.annoKeyStack[i] == nil {
			panic("jsona/loader: annotation object value with no pending key; this is a bug in the parser")
		}
		parent.Properties = append(parent.Properties, &ast.ValueProperty{
			Key:   *l.annoKeyStack[i],
			Value: v,
		})
		l.annoKeyStack[i] = nil
	default:
		panic("jsona/loader: cannot insert a value into a scalar annotation argument; this is a bug in the parser")
	}
}

// attach implements the attachment rule of spec.md §4.3: an annotation
// binds to the most recently completed sibling within the current
// container, or to the container itself if it has no completed sibling
// yet. Before the document root exists, there is no container to consult,
// so the annotation is collected as a header annotation instead.
func (l *Loader) attach(ann ast.Annotation) {
	if len(l.valueStack) == 0 {
		l.header = append(l.header, ann)
		return
	}
	parent := l.valueStack[len(l.valueStack)-1]
	switch parent.Kind {
	case ast.KindArray:
		if n := len(parent.Elements); n > 0 {
			parent.Elements[n-1].AddAnnotation(ann)
		} else {
			parent.AddAnnotation(ann)
		}
	case ast.KindObject:
		if n := len(parent.Properties); n > 0 {
			parent.Properties[n-1].Value.AddAnnotation(ann)
		} else {
			parent.AddAnnotation(ann)
		}
	default:
		// Only reachable for the document root scalar; the grammar never
		// emits a trailing annotation after the root, so this is defensive.
		parent.AddAnnotation(ann)
	}
}
