// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

// Package lexical implements the brace-aware scanner shared by every
// C-family parser in codemetrics.
//
// It knows about five mutually exclusive lexical modes (code, line comment,
// block comment, string literal, character literal) and nothing else. That
// is enough to find where a brace-delimited block ends and to hide literal
// and comment text from keyword matching, without a tokenizer or AST.
//
// All functions are pure and keep their state on the stack, so they are
// safe to call from any number of goroutines.
package lexical

// Mode is the lexical context of the scanner cursor.
type Mode uint8

const (
	ModeCode Mode = iota
	ModeLineComment
	ModeBlockComment
	ModeString
	ModeChar
)

func (m Mode) String() string {
	switch m {
	case ModeCode:
		return "code"
	case ModeLineComment:
		return "line comment"
	case ModeBlockComment:
		return "block comment"
	case ModeString:
		return "string literal"
	case ModeChar:
		return "char literal"
	default:
		return "unknown"
	}
}

// quote returns the closing delimiter of a literal mode, or 0.
func (m Mode) quote() byte {
	switch m {
	case ModeString:
		return '"'
	case ModeChar:
		return '\''
	default:
		return 0
	}
}

// Event says what a single Step did with the bytes it consumed.
type Event uint8

const (
	EventText Event = iota
	EventOpenBrace
	EventCloseBrace
	EventCommentStart
	EventCommentEnd
	EventLiteralStart
	EventLiteralEnd
	EventEscape
	EventEscaped
)

// ScanState is the complete state of one scan. The zero value is a scanner
// positioned in code at depth 0.
//
// Mode replaces four separate in-string/in-char/in-comment flags, so at most
// one of them can ever be set. Depth only moves while Mode is ModeCode.
type ScanState struct {
	Depth      int
	Mode       Mode
	EscapeNext bool
}

func (s *ScanState) InString() bool       { return s.Mode == ModeString }
func (s *ScanState) InChar() bool         { return s.Mode == ModeChar }
func (s *ScanState) InLineComment() bool  { return s.Mode == ModeLineComment }
func (s *ScanState) InBlockComment() bool { return s.Mode == ModeBlockComment }

// Step feeds the byte c (with one byte of lookahead, 0 at end of input) to
// the state machine and reports how many bytes were consumed (1 or 2) and
// what happened.
//
// Transition table:
//
//	escape pending          any          -> consume literally, clear escape
//	line comment            '\n'         -> code
//	block comment           '*' '/'      -> code (2 bytes, first */ wins)
//	string / char           '\\'         -> escape pending
//	string / char           own quote    -> code
//	code                    '/' '/'      -> line comment (2 bytes)
//	code                    '/' '*'      -> block comment (2 bytes)
//	code                    '"' / '\''   -> string / char
//	code                    '{' / '}'    -> depth +1 / -1
//
// Anything not listed is ordinary text in the current mode.
func (s *ScanState) Step(c, next byte) (int, Event) {
	if s.EscapeNext {
		s.EscapeNext = false
		return 1, EventEscaped
	}

	switch s.Mode {
	case ModeLineComment:
		if c == '\n' {
			s.Mode = ModeCode
			return 1, EventCommentEnd
		}
		return 1, EventText

	case ModeBlockComment:
		if c == '*' && next == '/' {
			s.Mode = ModeCode
			return 2, EventCommentEnd
		}
		return 1, EventText

	case ModeString, ModeChar:
		if c == '\\' {
			s.EscapeNext = true
			return 1, EventEscape
		}
		if c == s.Mode.quote() {
			s.Mode = ModeCode
			return 1, EventLiteralEnd
		}
		return 1, EventText
	}

	switch c {
	case '/':
		switch next {
		case '/':
			s.Mode = ModeLineComment
			return 2, EventCommentStart
		case '*':
			s.Mode = ModeBlockComment
			return 2, EventCommentStart
		}
	case '"':
		s.Mode = ModeString
		return 1, EventLiteralStart
	case '\'':
		s.Mode = ModeChar
		return 1, EventLiteralStart
	case '{':
		s.Depth++
		return 1, EventOpenBrace
	case '}':
		if s.Depth > 0 {
			s.Depth--
		}
		return 1, EventCloseBrace
	}

	return 1, EventText
}

// lookahead returns text[i] or 0 past the end.
func lookahead(text string, i int) byte {
	if i < len(text) {
		return text[i]
	}
	return 0
}
