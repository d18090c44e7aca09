// Package parser drives the lexer and pushes a SAX-style event stream to an
// EventReceiver, per the grammar in spec.md §4.2.
package parser

import (
	"fmt"

	"github.com/jsona-lang/jsona-go/lexer"
	"github.com/jsona-lang/jsona-go/token"
)

// Parser is a hand-written recursive-descent driver over a token stream,
// holding one token of lookahead the way a classic curTok/peekTok scanner
// does: cur is the token under consideration and peek is the next one
// already pulled from the lexer. The grammar decides every production from
// cur alone (a trailing comma is recognized by finding the closing bracket
// in cur after the comma is consumed), so it never backtracks.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token
	recv EventReceiver
}

// Parse lexes text and drives recv through the document's event stream, per
// the `parse` operation of spec.md §6. It returns the first SyntaxError (or
// lex Error wrapped as one) encountered; parsing does not resynchronize, so
// no further events are emitted after an error.
func Parse(text string, recv EventReceiver) error {
	p := &Parser{lex: lexer.New(text), recv: recv}
	p.advance()
	p.advance()
	return p.parseDocument()
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) emit(ev Event) {
	p.recv.OnEvent(ev)
}

func (p *Parser) errf(pos token.Position, format string, args ...interface{}) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) checkLexError() error {
	if p.cur.Kind == token.Error {
		return &SyntaxError{
			Pos:        p.cur.Pos,
			Msg:        p.cur.Str,
			Underlying: &lexer.Error{Pos: p.cur.Pos, Msg: p.cur.Str},
		}
	}
	return nil
}

func (p *Parser) expect(k token.Kind) error {
	if err := p.checkLexError(); err != nil {
		return err
	}
	if p.cur.Kind != k {
		return p.errf(p.cur.Pos, "expected %s, got %s", k, p.cur.Kind)
	}
	p.advance()
	return nil
}

// parseDocument implements `Document := AnnotationList? Value EOF`.
func (p *Parser) parseDocument() error {
	if err := p.checkLexError(); err != nil {
		return err
	}
	for p.cur.Kind == token.At {
		if err := p.parseAnnotation(); err != nil {
			return err
		}
	}
	if err := p.parseValue(); err != nil {
		return err
	}
	if err := p.checkLexError(); err != nil {
		return err
	}
	if p.cur.Kind != token.EOF {
		return p.errf(p.cur.Pos, "expected end of input, got %s", p.cur.Kind)
	}
	return nil
}

// parseValue implements `Value := Scalar | Array | Object`.
func (p *Parser) parseValue() error {
	if err := p.checkLexError(); err != nil {
		return err
	}
	switch p.cur.Kind {
	case token.Null:
		p.emit(Event{Kind: EvNull, Pos: p.cur.Pos})
		p.advance()
		return nil
	case token.Boolean:
		p.emit(Event{Kind: EvBoolean, Pos: p.cur.Pos, Bool: p.cur.Bool})
		p.advance()
		return nil
	case token.Integer:
		p.emit(Event{Kind: EvInteger, Pos: p.cur.Pos, Int: p.cur.Int})
		p.advance()
		return nil
	case token.Float:
		p.emit(Event{Kind: EvFloat, Pos: p.cur.Pos, Float: p.cur.Float})
		p.advance()
		return nil
	case token.String:
		p.emit(Event{Kind: EvString, Pos: p.cur.Pos, Str: p.cur.Str})
		p.advance()
		return nil
	case token.LeftBracket:
		return p.parseArray()
	case token.LeftBrace:
		return p.parseObject()
	default:
		return p.errf(p.cur.Pos, "expected a value, got %s", p.cur.Kind)
	}
}

// parseAnnotatedValue parses a Value followed by any trailing annotations,
// the form array elements and object member values take.
func (p *Parser) parseAnnotatedValue() error {
	if err := p.parseValue(); err != nil {
		return err
	}
	return p.parseAnnotationList()
}

// parseAnnotationList consumes zero or more trailing `@name(...)` forms.
func (p *Parser) parseAnnotationList() error {
	for p.cur.Kind == token.At {
		if err := p.parseAnnotation(); err != nil {
			return err
		}
	}
	return nil
}

// parseArray implements:
//
//	Array := '[' AnnotationList? (Value AnnotationList? (',' AnnotationList? Value AnnotationList?)* ','?)? ']'
//
// A trailing annotation may appear either immediately after its value (before
// the comma) or immediately after the comma that follows its value (spec.md
// §4.4: "after the comma if any", the form the emitter itself produces) --
// both attach to the same preceding element via the loader's
// last-completed-sibling rule, so both positions are accepted here.
func (p *Parser) parseArray() error {
	pos := p.cur.Pos
	p.advance() // consume '['
	p.emit(Event{Kind: EvArrayStart, Pos: pos})

	if err := p.parseAnnotationList(); err != nil {
		return err
	}

	for p.cur.Kind != token.RightBracket {
		if err := p.checkLexError(); err != nil {
			return err
		}
		if p.cur.Kind == token.EOF {
			return p.errf(p.cur.Pos, "unexpected end of input in array")
		}
		if err := p.parseAnnotatedValue(); err != nil {
			return err
		}
		if p.cur.Kind != token.Comma {
			break
		}
		p.advance()
		if err := p.parseAnnotationList(); err != nil {
			return err
		}
	}

	if err := p.expect(token.RightBracket); err != nil {
		return err
	}
	p.emit(Event{Kind: EvArrayStop, Pos: pos})
	return nil
}

// parseObject implements:
//
//	Object := '{' AnnotationList? (Member AnnotationList? (',' AnnotationList? Member AnnotationList?)* ','?)? '}'
//	Member := Key ':' Value
//	Key     := Identifier | StringLit
//
// As in parseArray, a trailing annotation on a member's value may appear
// before or after the comma that follows it; both attach to that member's
// value via the loader's last-completed-sibling rule.
func (p *Parser) parseObject() error {
	pos := p.cur.Pos
	p.advance() // consume '{'
	p.emit(Event{Kind: EvObjectStart, Pos: pos})

	if err := p.parseAnnotationList(); err != nil {
		return err
	}

	for p.cur.Kind != token.RightBrace {
		if err := p.checkLexError(); err != nil {
			return err
		}
		if p.cur.Kind == token.EOF {
			return p.errf(p.cur.Pos, "unexpected end of input in object")
		}
		if err := p.parseMember(); err != nil {
			return err
		}
		if p.cur.Kind != token.Comma {
			break
		}
		p.advance()
		if err := p.parseAnnotationList(); err != nil {
			return err
		}
	}

	if err := p.expect(token.RightBrace); err != nil {
		return err
	}
	p.emit(Event{Kind: EvObjectStop, Pos: pos})
	return nil
}

func (p *Parser) parseMember() error {
	if p.cur.Kind != token.Identifier && p.cur.Kind != token.String {
		return p.errf(p.cur.Pos, "expected object key, got %s", p.cur.Kind)
	}
	keyPos := p.cur.Pos
	key := p.cur.Str
	p.advance()
	p.emit(Event{Kind: EvString, Pos: keyPos, Str: key})

	if err := p.expect(token.Colon); err != nil {
		return err
	}
	return p.parseAnnotatedValue()
}

// parseAnnotation implements:
//
//	Annotation := '@' Identifier ( '(' AnnoArgs? ')' )?
//	AnnoArgs    := AnnoArg (',' AnnoArg)* ','?
//	AnnoArg     := AnnoKey '=' AnnoValue
//	AnnoKey     := Identifier | StringLit
//
// With no '(...)' payload, the canonical argument representation is an
// empty ordered mapping: ObjectStart immediately followed by ObjectStop.
func (p *Parser) parseAnnotation() error {
	atPos := p.cur.Pos
	p.advance() // consume '@'

	if p.cur.Kind != token.Identifier {
		return p.errf(p.cur.Pos, "expected annotation name after @, got %s", p.cur.Kind)
	}
	name := p.cur.Str
	p.advance()

	p.emit(Event{Kind: EvAnnotationStart, Pos: atPos, Str: name})

	if p.cur.Kind == token.LeftParen {
		parenPos := p.cur.Pos
		p.advance()
		p.emit(Event{Kind: EvObjectStart, Pos: parenPos})

		for p.cur.Kind != token.RightParen {
			if err := p.checkLexError(); err != nil {
				return err
			}
			if p.cur.Kind == token.EOF {
				return p.errf(p.cur.Pos, "unexpected end of input in annotation arguments")
			}
			if err := p.parseAnnoArg(); err != nil {
				return err
			}
			if p.cur.Kind == token.Comma {
				p.advance()
				continue
			}
			break
		}

		if err := p.expect(token.RightParen); err != nil {
			return err
		}
		p.emit(Event{Kind: EvObjectStop, Pos: parenPos})
	} else {
		p.emit(Event{Kind: EvObjectStart, Pos: atPos})
		p.emit(Event{Kind: EvObjectStop, Pos: atPos})
	}

	p.emit(Event{Kind: EvAnnotationEnd, Pos: atPos})
	return nil
}

// parseAnnoArg implements `AnnoArg := AnnoKey '=' AnnoValue`.
func (p *Parser) parseAnnoArg() error {
	if p.cur.Kind != token.Identifier && p.cur.Kind != token.String {
		return p.errf(p.cur.Pos, "expected annotation argument name, got %s", p.cur.Kind)
	}
	keyPos := p.cur.Pos
	key := p.cur.Str
	p.advance()
	p.emit(Event{Kind: EvString, Pos: keyPos, Str: key})

	if p.cur.Kind != token.Equals {
		return p.errf(p.cur.Pos, "expected '=' in annotation argument, got %s", p.cur.Kind)
	}
	p.advance()

	return p.parseAnnoValue()
}

// parseAnnoValue implements:
//
//	AnnoValue := NullLit | BooleanLit | IntegerLit | FloatLit | StringLit
//	           | '[' (AnnoValue (',' AnnoValue)* ','?)? ']'
//	           | '{' (AnnoArg  (',' AnnoArg )* ','?)? '}'
//
// This sub-grammar never re-enters AnnotationList: annotation arguments
// cannot themselves carry annotations.
func (p *Parser) parseAnnoValue() error {
	if err := p.checkLexError(); err != nil {
		return err
	}
	switch p.cur.Kind {
	case token.Null:
		p.emit(Event{Kind: EvNull, Pos: p.cur.Pos})
		p.advance()
		return nil
	case token.Boolean:
		p.emit(Event{Kind: EvBoolean, Pos: p.cur.Pos, Bool: p.cur.Bool})
		p.advance()
		return nil
	case token.Integer:
		p.emit(Event{Kind: EvInteger, Pos: p.cur.Pos, Int: p.cur.Int})
		p.advance()
		return nil
	case token.Float:
		p.emit(Event{Kind: EvFloat, Pos: p.cur.Pos, Float: p.cur.Float})
		p.advance()
		return nil
	case token.String:
		p.emit(Event{Kind: EvString, Pos: p.cur.Pos, Str: p.cur.Str})
		p.advance()
		return nil
	case token.LeftBracket:
		return p.parseAnnoArray()
	case token.LeftBrace:
		return p.parseAnnoObject()
	default:
		return p.errf(p.cur.Pos, "expected an annotation value, got %s", p.cur.Kind)
	}
}

func (p *Parser) parseAnnoArray() error {
	pos := p.cur.Pos
	p.advance() // consume '['
	p.emit(Event{Kind: EvArrayStart, Pos: pos})

	for p.cur.Kind != token.RightBracket {
		if err := p.checkLexError(); err != nil {
			return err
		}
		if p.cur.Kind == token.EOF {
			return p.errf(p.cur.Pos, "unexpected end of input in annotation array")
		}
		if err := p.parseAnnoValue(); err != nil {
			return err
		}
		if p.cur.Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}

	if err := p.expect(token.RightBracket); err != nil {
		return err
	}
	p.emit(Event{Kind: EvArrayStop, Pos: pos})
	return nil
}

func (p *Parser) parseAnnoObject() error {
	pos := p.cur.Pos
	p.advance() // consume '{'
	p.emit(Event{Kind: EvObjectStart, Pos: pos})

	for p.cur.Kind != token.RightBrace {
		if err := p.checkLexError(); err != nil {
			return err
		}
		if p.cur.Kind == token.EOF {
			return p.errf(p.cur.Pos, "unexpected end of input in annotation object")
		}
		if err := p.parseAnnoArg(); err != nil {
			return err
		}
		if p.cur.Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}

	if err := p.expect(token.RightBrace); err != nil {
		return err
	}
	p.emit(Event{Kind: EvObjectStop, Pos: pos})
	return nil
}
