// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"regexp"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/lexical"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

const (
	EngineRegex = "regex"
	EngineAST   = "ast"
)

// RegexLocator finds Java method bodies with a declaration pattern. The
// pattern runs over a masked copy of the source, so declarations quoted in
// comments or string literals are never reported.
type RegexLocator struct {
	methodRe *regexp.Regexp
}

func NewRegexLocator() *RegexLocator {
	return &RegexLocator{
		methodRe: regexp.MustCompile(
			`(public|protected|private|static|\s)+([\w<>\[\]]+)\s+(\w+)\s*\([^)]*\)\s*(?:throws\s+[\w\s,]+)?\s*\{`,
		),
	}
}

var _ ports.MethodLocator = (*RegexLocator)(nil)

func (l *RegexLocator) Name() string {
	return EngineRegex
}

func (l *RegexLocator) Locate(src []byte) ([]ports.MethodSite, error) {
	text := string(src)
	masked := lexical.Mask(text)

	var sites []ports.MethodSite
	for _, m := range l.methodRe.FindAllStringSubmatchIndex(masked, -1) {
		returnType := masked[m[4]:m[5]]
		name := masked[m[6]:m[7]]

		if isJavaKeyword(name) || isStatementWord(returnType) {
			continue
		}

		sites = append(sites, ports.MethodSite{
			Name:        name,
			BraceOffset: m[1] - 1,
			Line:        lexical.LineOf(text, m[6]),
		})
	}

	return sites, nil
}

// isStatementWord reports words that can precede "name(...) {" in a
// statement but never as a return type, as in "new Foo() {".
func isStatementWord(word string) bool {
	switch word {
	case "new", "else", "return", "throw", "case":
		return true
	default:
		return false
	}
}
