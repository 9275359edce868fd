// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"strings"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

// DOTRenderer draws the internal package dependency graph for Graphviz.
type DOTRenderer struct{}

func NewDOTRenderer() *DOTRenderer {
	return &DOTRenderer{}
}

var _ ports.OutputRenderer = (*DOTRenderer)(nil)

func (r *DOTRenderer) Format() string {
	return "dot"
}

func (r *DOTRenderer) Render(report *model.ProjectReport) (string, error) {
	var b strings.Builder

	b.WriteString("digraph PackageDependencies {\n")
	b.WriteString("    rankdir=LR;\n")
	b.WriteString("    node [shape=box, style=rounded];\n")
	b.WriteString("    \n")
	b.WriteString("    // Package nodes\n")

	for _, pkg := range sortedKeys(report.Packages) {
		fmt.Fprintf(&b, "    %q [label=%q];\n", pkg, shortenPackage(pkg))
	}

	b.WriteString("    \n")
	b.WriteString("    // Package dependencies\n")

	for _, from := range sortedKeys(report.PackageDependencies) {
		for _, to := range uniqueStrings(report.PackageDependencies[from]) {
			if _, ok := report.Packages[to]; !ok {
				continue
			}
			fmt.Fprintf(&b, "    %q -> %q;\n", from, to)
		}
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// shortenPackage keeps the last two segments of names longer than three,
// joined by "...".
func shortenPackage(pkg string) string {
	parts := strings.Split(pkg, ".")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-2:], "...")
	}
	return pkg
}
