package parser

import "github.com/jsona-lang/jsona-go/token"

// EventKind identifies the payload carried by an Event, per spec.md §3.
type EventKind int

const (
	EvNull EventKind = iota
	EvBoolean
	EvInteger
	EvFloat
	EvString
	EvArrayStart
	EvArrayStop
	EvObjectStart
	EvObjectStop
	EvAnnotationStart
	EvAnnotationEnd
)

// Event is a single SAX-style notification pushed from the Parser to an
// EventReceiver. Only the payload field matching Kind is meaningful:
//
//	EvBoolean         -> Bool
//	EvInteger         -> Int
//	EvFloat           -> Float
//	EvString          -> Str (also used for object/annotation keys)
//	EvAnnotationStart -> Str (the annotation name)
type Event struct {
	Kind  EventKind
	Pos   token.Position
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

// EventReceiver consumes the event stream produced by Parse. loader.Loader
// is the only implementation in this module, but the interface lets callers
// observe the parse without building a tree (e.g. tooling that only wants
// positions).
type EventReceiver interface {
	OnEvent(Event)
}
