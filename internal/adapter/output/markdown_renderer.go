// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

const (
	couplingRows      = 5
	complexMethodRows = 10
)

// MarkdownRenderer writes the codebase overview document: package layout,
// entry points, class responsibilities from Javadoc, concurrency sites,
// dependencies and hot spots.
type MarkdownRenderer struct{}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

var _ ports.OutputRenderer = (*MarkdownRenderer)(nil)

func (r *MarkdownRenderer) Format() string {
	return "markdown"
}

func (r *MarkdownRenderer) Render(report *model.ProjectReport) (string, error) {
	var b strings.Builder

	b.WriteString("# Codebase Overview\n\n")
	b.WriteString("*Generated by codemetrics*\n\n")

	b.WriteString("## Table of Contents\n\n")
	b.WriteString("1. [Package Structure](#package-structure)\n")
	b.WriteString("2. [Main Classes](#main-classes)\n")
	b.WriteString("3. [Class Responsibilities](#class-responsibilities)\n")
	b.WriteString("4. [Thread Creation Points](#thread-creation-points)\n")
	b.WriteString("5. [External Dependencies](#external-dependencies)\n")
	b.WriteString("6. [Hot Spots](#hot-spots)\n\n")

	classes := make(map[string]model.ClassRecord, len(report.Classes))
	for _, c := range report.Classes {
		classes[c.QualifiedName] = c
	}

	writePackages(&b, report)
	writeMainClasses(&b, report, classes)
	writeResponsibilities(&b, report)
	writeThreadPoints(&b, report)
	writeDependencies(&b, report)
	writeHotSpots(&b, report)

	return b.String(), nil
}

func writePackages(b *strings.Builder, report *model.ProjectReport) {
	b.WriteString("## Package Structure\n\n")
	fmt.Fprintf(b, "The codebase contains **%d packages** with **%d classes**.\n\n",
		len(report.Packages), len(report.Classes))

	for _, pkg := range sortedKeys(report.Packages) {
		names := uniqueStrings(report.Packages[pkg])
		fmt.Fprintf(b, "### `%s`\n\n", pkg)
		fmt.Fprintf(b, "- **Classes**: %d\n", len(report.Packages[pkg]))
		fmt.Fprintf(b, "- **Types**: %s\n\n", strings.Join(names, ", "))
	}
}

func writeMainClasses(b *strings.Builder, report *model.ProjectReport, classes map[string]model.ClassRecord) {
	b.WriteString("## Main Classes\n\n")
	b.WriteString("Classes with `public static void main(String[] args)` methods:\n\n")

	if len(report.MainClasses) == 0 {
		b.WriteString("*No main classes found.*\n\n")
		return
	}

	for _, name := range uniqueStrings(report.MainClasses) {
		info, ok := classes[name]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "### `%s`\n\n", name)
		fmt.Fprintf(b, "- **File**: `%s`\n", info.FilePath)
		if info.Javadoc != "" {
			fmt.Fprintf(b, "- **Description**: %s\n", info.Javadoc)
		}
		b.WriteString("\n")
	}
}

func writeResponsibilities(b *strings.Builder, report *model.ProjectReport) {
	b.WriteString("## Class Responsibilities\n\n")
	b.WriteString("Key classes and their responsibilities (from Javadoc):\n\n")

	byPackage := make(map[string][]model.ClassRecord)
	for _, c := range report.Classes {
		if c.Javadoc != "" {
			byPackage[c.Package] = append(byPackage[c.Package], c)
		}
	}

	for _, pkg := range sortedKeys(byPackage) {
		fmt.Fprintf(b, "### Package: `%s`\n\n", pkg)
		for _, c := range byPackage[pkg] {
			fmt.Fprintf(b, "#### `%s`\n\n%s\n\n", c.Name, c.Javadoc)
		}
	}
}

func writeThreadPoints(b *strings.Builder, report *model.ProjectReport) {
	b.WriteString("## Thread Creation Points\n\n")
	b.WriteString("Locations where threads or concurrent execution is used:\n\n")

	if len(report.ThreadPoints) == 0 {
		b.WriteString("*No explicit thread creation points found.*\n\n")
		return
	}

	byFile := make(map[string][]model.ThreadPoint)
	for _, tp := range report.ThreadPoints {
		byFile[tp.FilePath] = append(byFile[tp.FilePath], tp)
	}

	for _, file := range sortedKeys(byFile) {
		points := byFile[file]
		sort.SliceStable(points, func(i, j int) bool {
			if points[i].Line != points[j].Line {
				return points[i].Line < points[j].Line
			}
			return points[i].Description < points[j].Description
		})

		fmt.Fprintf(b, "### `%s`\n\n", file)
		for _, tp := range points {
			fmt.Fprintf(b, "- Line %d: %s\n", tp.Line, tp.Description)
		}
		b.WriteString("\n")
	}
}

func writeDependencies(b *strings.Builder, report *model.ProjectReport) {
	b.WriteString("## External Dependencies\n\n")
	b.WriteString("External libraries used in the project (from build.gradle):\n\n")

	if len(report.ExternalLibraries) == 0 {
		b.WriteString("*No dependencies found in build.gradle.*\n\n")
		return
	}

	var runtime, test []string
	for _, lib := range report.ExternalLibraries {
		if lib.IsTest() {
			test = append(test, lib.Coordinate())
		} else {
			runtime = append(runtime, lib.Coordinate())
		}
	}

	for _, group := range []struct {
		title string
		deps  []string
	}{
		{"Runtime Dependencies", runtime},
		{"Test Dependencies", test},
	} {
		if len(group.deps) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", group.title)
		for _, dep := range uniqueStrings(group.deps) {
			fmt.Fprintf(b, "- `%s`\n", dep)
		}
		b.WriteString("\n")
	}
}

func writeHotSpots(b *strings.Builder, report *model.ProjectReport) {
	b.WriteString("## Hot Spots\n\n")
	b.WriteString("Potential areas of interest for optimization or careful review:\n\n")

	b.WriteString("### Concurrency\n\n")
	if n := len(report.ThreadPoints); n > 0 {
		files := make(map[string]struct{})
		for _, tp := range report.ThreadPoints {
			files[tp.FilePath] = struct{}{}
		}
		fmt.Fprintf(b, "- **%d** threading-related code locations found across **%d** files\n", n, len(files))
		b.WriteString("- Review thread safety and synchronization mechanisms\n")
	} else {
		b.WriteString("- No explicit threading patterns detected\n")
	}
	b.WriteString("\n")

	b.WriteString("### External Dependencies\n\n")
	if len(report.ExternalLibraries) > 0 {
		coords := make([]string, 0, len(report.ExternalLibraries))
		for _, lib := range report.ExternalLibraries {
			coords = append(coords, lib.Coordinate())
		}
		fmt.Fprintf(b, "- **%d** external dependencies\n", len(uniqueStrings(coords)))
		b.WriteString("- Review for security updates and compatibility\n")
	}
	b.WriteString("\n")

	b.WriteString("### Package Coupling\n\n")
	type coupling struct {
		pkg  string
		deps int
	}
	var rows []coupling
	for pkg, deps := range report.PackageDependencies {
		rows = append(rows, coupling{pkg: pkg, deps: len(deps)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].deps != rows[j].deps {
			return rows[i].deps > rows[j].deps
		}
		return rows[i].pkg < rows[j].pkg
	})

	if len(rows) > 0 {
		fmt.Fprintf(b, "Packages with the most dependencies (top %d):\n\n", min(len(rows), couplingRows))
		for i, row := range rows {
			if i == couplingRows {
				break
			}
			fmt.Fprintf(b, "- `%s`: %d package dependencies\n", row.pkg, row.deps)
		}
	} else {
		b.WriteString("- No inter-package dependencies detected\n")
	}
	b.WriteString("\n")

	if len(report.TopComplexity) > 0 {
		b.WriteString("### Complex Methods\n\n")
		for i, m := range report.TopComplexity {
			if i == complexMethodRows {
				break
			}
			fmt.Fprintf(b, "- `%s` (`%s:%d`): complexity %d\n", m.Name, m.FilePath, m.Line, m.Complexity)
		}
		b.WriteString("\n")
	}
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
