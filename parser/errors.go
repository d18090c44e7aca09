package parser

import "github.com/jsona-lang/jsona-go/token"

// SyntaxError is a parse-time failure: an unexpected token, unexpected end
// of input, a malformed annotation call, a missing ':' in a member, or a
// missing '=' in an annotation argument. Parsing is not resynchronizing --
// the first SyntaxError aborts the parse.
type SyntaxError struct {
	Pos token.Position
	Msg string

	// Underlying is the lexer.Error that produced this SyntaxError, when
	// the parser is only relaying a lex-time failure (see checkLexError).
	// Nil for syntax errors the parser itself detects.
	Underlying error
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Position implements the same ErrorWithPos shape used by the rest of the
// pipeline, so callers can recover location info without parsing the
// message.
func (e *SyntaxError) Position() token.Position {
	return e.Pos
}

// Unwrap exposes the originating lexer.Error, if any, to errors.Is/As.
func (e *SyntaxError) Unwrap() error {
	return e.Underlying
}
