// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package lexical

import (
	"regexp"
	"strings"
)

var (
	ifPattern    = regexp.MustCompile(`\bif\s*\(`)
	forPattern   = regexp.MustCompile(`\bfor\s*\(`)
	whilePattern = regexp.MustCompile(`\bwhile\s*\(`)
	catchPattern = regexp.MustCompile(`\bcatch\s*\(`)
	casePattern  = regexp.MustCompile(`\bcase\s+`)
)

// Decisions is the per-construct breakdown of the decision points found in
// a block.
type Decisions struct {
	If      int `json:"if"`
	For     int `json:"for"`
	While   int `json:"while"`
	Catch   int `json:"catch"`
	Case    int `json:"case"`
	Ternary int `json:"ternary"`
	And     int `json:"and"`
	Or      int `json:"or"`
}

// Total is the number of decision points, without the entry path.
func (d Decisions) Total() int {
	return d.If + d.For + d.While + d.Catch + d.Case + d.Ternary + d.And + d.Or
}

// CountDecisions strips comments and string literals from block and counts
// each decision-introducing construct.
//
// Every '?' counts as a ternary and every && or || counts once, whether or
// not it sits in a branch condition. else-if chains are not merged.
func CountDecisions(block string) Decisions {
	code := Strip(block)

	return Decisions{
		If:      len(ifPattern.FindAllStringIndex(code, -1)),
		For:     len(forPattern.FindAllStringIndex(code, -1)),
		While:   len(whilePattern.FindAllStringIndex(code, -1)),
		Catch:   len(catchPattern.FindAllStringIndex(code, -1)),
		Case:    len(casePattern.FindAllStringIndex(code, -1)),
		Ternary: strings.Count(code, "?"),
		And:     strings.Count(code, "&&"),
		Or:      strings.Count(code, "||"),
	}
}

// EstimateComplexity returns the approximated cyclomatic complexity of a
// block: 1 for the entry path plus one per decision point. An empty or
// branch-free block scores 1.
func EstimateComplexity(block string) int {
	return 1 + CountDecisions(block).Total()
}
