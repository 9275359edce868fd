// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package lexical

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotBlockStart is returned when the start offset does not point at '{'.
	ErrNotBlockStart = errors.New("offset is not an opening brace")

	// ErrUnbalanced is returned when the input ends before the block closes.
	ErrUnbalanced = errors.New("unbalanced braces")
)

// UnbalancedError describes where an unterminated block started and the
// state the scanner was left in at end of input.
type UnbalancedError struct {
	Start int
	Depth int
	Mode  Mode
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("block at offset %d: %v (depth %d, ended in %s)",
		e.Start, ErrUnbalanced, e.Depth, e.Mode)
}

func (e *UnbalancedError) Unwrap() error {
	return ErrUnbalanced
}

// Block is a brace-delimited span of source text. Start and End are the
// offsets of the opening and closing brace, both inclusive.
type Block struct {
	Text  string
	Start int
	End   int
}

func (b Block) Len() int {
	return len(b.Text)
}

// Lines returns the number of physical lines the block spans.
func (b Block) Lines() int {
	if b.Text == "" {
		return 0
	}
	return strings.Count(b.Text, "\n") + 1
}

// ExtractBlock returns the block that opens at text[start] and ends at its
// matching closing brace. Braces inside comments, string literals and
// character literals are ignored.
//
// The caller must point start at a '{'. If the input ends before the block
// closes, the returned error wraps ErrUnbalanced; a truncated block is never
// returned.
func ExtractBlock(text string, start int) (Block, error) {
	if start < 0 || start >= len(text) || text[start] != '{' {
		return Block{}, fmt.Errorf("%w: offset %d", ErrNotBlockStart, start)
	}

	var state ScanState
	for i := start; i < len(text); {
		n, ev := state.Step(text[i], lookahead(text, i+1))
		if ev == EventCloseBrace && state.Depth == 0 {
			return Block{Text: text[start : i+1], Start: start, End: i}, nil
		}
		i += n
	}

	return Block{}, &UnbalancedError{Start: start, Depth: state.Depth, Mode: state.Mode}
}

// LineOf returns the 1-based line number of offset in text. Offsets past
// the end are clamped to the last line.
func LineOf(text string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	return strings.Count(text[:offset], "\n") + 1
}

// NextBrace returns the offset of the first '{' in code at or after from,
// scanning from the beginning of text so that comment and literal context
// is known. It returns -1 if there is none.
func NextBrace(text string, from int) int {
	var state ScanState
	for i := 0; i < len(text); {
		n, ev := state.Step(text[i], lookahead(text, i+1))
		if ev == EventOpenBrace && i >= from {
			return i
		}
		i += n
	}
	return -1
}
