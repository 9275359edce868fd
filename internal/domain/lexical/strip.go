// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package lexical

import "strings"

// Strip removes comments and double-quoted string literals (quotes
// included) from text. Line comments keep their terminating newline.
// Character literals are left in place.
func Strip(text string) string {
	return strip(text, false)
}

// StripComments removes comments only; literals are left in place.
func StripComments(text string) string {
	return strip(text, true)
}

func strip(text string, keepStrings bool) string {
	var b strings.Builder
	b.Grow(len(text))

	var state ScanState
	for i := 0; i < len(text); {
		before := state.Mode
		n, ev := state.Step(text[i], lookahead(text, i+1))

		switch {
		case ev == EventCommentEnd && before == ModeLineComment:
			b.WriteByte('\n')
		case before == ModeCode && (state.Mode == ModeCode || state.Mode == ModeChar):
			b.WriteString(text[i : i+n])
		case before == ModeChar:
			b.WriteString(text[i : i+n])
		case keepStrings && (before == ModeString || state.Mode == ModeString):
			b.WriteString(text[i : i+n])
		}

		i += n
	}

	return b.String()
}

// Mask blanks out comments, string literals and character literals with
// spaces, keeping newlines and every byte offset unchanged. Regular
// expressions run over the mask therefore report offsets that are valid in
// the original text and never match inside comments or literals.
func Mask(text string) string {
	out := []byte(text)

	var state ScanState
	for i := 0; i < len(text); {
		before := state.Mode
		n, _ := state.Step(text[i], lookahead(text, i+1))

		if before != ModeCode || state.Mode != ModeCode {
			for j := i; j < i+n; j++ {
				if out[j] != '\n' {
					out[j] = ' '
				}
			}
		}

		i += n
	}

	return string(out)
}
