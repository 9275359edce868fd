// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"sort"
	"strings"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/lexical"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
)

// countLOC counts non-blank lines once comments are removed. Comment markers
// inside string literals are left alone.
func countLOC(text string) int {
	count := 0
	for _, line := range strings.Split(lexical.StripComments(text), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// blankRanges replaces every byte of text inside the given blocks with a
// space, keeping newlines.
func blankRanges(text string, blocks []lexical.Block) string {
	if len(blocks) == 0 {
		return text
	}
	out := []byte(text)
	for _, b := range blocks {
		for i := b.Start; i <= b.End && i < len(out); i++ {
			if out[i] != '\n' {
				out[i] = ' '
			}
		}
	}
	return string(out)
}

// scoreBlock extracts the block opening at braceOffset and turns it into a
// method record. The error is the one returned by lexical.ExtractBlock.
func scoreBlock(text string, braceOffset int, rec model.MethodRecord) (model.MethodRecord, lexical.Block, error) {
	block, err := lexical.ExtractBlock(text, braceOffset)
	if err != nil {
		return rec, block, err
	}

	rec.EndLine = lexical.LineOf(text, block.End)
	rec.Lines = block.Lines()
	rec.Decisions = lexical.CountDecisions(block.Text)
	rec.Complexity = 1 + rec.Decisions.Total()
	return rec, block, nil
}

func uniqueSorted(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func isControlKeyword(name string) bool {
	switch name {
	case "if", "for", "foreach", "while", "switch", "return", "catch",
		"sizeof", "using", "lock", "fixed":
		return true
	default:
		return false
	}
}

var javaKeywords = map[string]struct{}{
	"if": {}, "while": {}, "for": {}, "switch": {}, "catch": {}, "synchronized": {},
	"try": {}, "else": {}, "return": {}, "break": {}, "continue": {}, "throw": {},
	"throws": {}, "new": {}, "class": {}, "interface": {}, "enum": {}, "extends": {},
	"implements": {}, "package": {}, "import": {}, "abstract": {}, "assert": {},
	"boolean": {}, "byte": {}, "case": {}, "char": {}, "const": {}, "default": {},
	"do": {}, "double": {}, "final": {}, "finally": {}, "float": {}, "goto": {},
	"instanceof": {}, "int": {}, "long": {}, "native": {}, "short": {}, "static": {},
	"strictfp": {}, "super": {}, "this": {}, "transient": {}, "void": {}, "volatile": {},
}

func isJavaKeyword(name string) bool {
	_, ok := javaKeywords[name]
	return ok
}
