// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"math"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
)

const maxHotspots = 10

type reportInput struct {
	root      string
	engine    string
	topN      int
	prefixes  []string
	files     []model.FileMetrics
	libraries []model.Library
	bugs      model.BugSummary
	warnings  []string
}

// buildProjectReport aggregates per-file metrics. files are read only;
// every derived record is a copy.
func buildProjectReport(in reportInput) *model.ProjectReport {
	report := &model.ProjectReport{
		RunID:               uuid.NewString(),
		RootPath:            in.root,
		GeneratedAt:         time.Now().UTC(),
		Engine:              in.engine,
		LOCPerPackage:       make(map[string]int),
		ThreadsPerClass:     make(map[string]int),
		ExternalLibraries:   in.libraries,
		SpotBugs:            in.bugs,
		Packages:            make(map[string][]string),
		PackageDependencies: make(map[string][]string),
		MetricMetadata:      model.AllMetricSummaries(),
		Warnings:            in.warnings,
	}

	var methods []model.MethodRecord
	s := &report.Summary
	s.TotalFiles = len(in.files)

	for _, f := range in.files {
		pkg := packageOf(f)
		report.LOCPerPackage[pkg] += f.LOC
		s.TotalLOC += f.LOC
		s.SkippedMethods += len(f.SkippedMethods)

		if f.ThreadStarts > 0 {
			report.ThreadsPerClass[fileStem(f.Path)] += f.ThreadStarts
		}

		for _, c := range f.Classes {
			report.Packages[pkg] = append(report.Packages[pkg], c.Name)
			report.Classes = append(report.Classes, c)
			if c.IsMain {
				report.MainClasses = append(report.MainClasses, c.QualifiedName)
			}
		}

		report.ThreadPoints = append(report.ThreadPoints, f.ThreadPoints...)

		factor := math.Log1p(float64(f.Git.Churn()))
		for _, m := range f.Methods {
			m.HotspotScore = float64(m.Complexity) * factor
			methods = append(methods, m)
			if m.Complexity > s.MaxComplexity {
				s.MaxComplexity = m.Complexity
			}
		}

		report.ClassSummaries = append(report.ClassSummaries, summarizeClass(f))
	}

	for pkg := range report.Packages {
		sort.Strings(report.Packages[pkg])
	}
	sort.Slice(report.Classes, func(i, j int) bool {
		return report.Classes[i].QualifiedName < report.Classes[j].QualifiedName
	})
	sort.Strings(report.MainClasses)
	sort.SliceStable(report.ThreadPoints, func(i, j int) bool {
		a, b := report.ThreadPoints[i], report.ThreadPoints[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.Line < b.Line
	})
	sort.SliceStable(report.ClassSummaries, func(i, j int) bool {
		a, b := report.ClassSummaries[i], report.ClassSummaries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Class < b.Class
	})

	report.PackageDependencies = packageDependencies(in.files, report.LOCPerPackage, in.prefixes)
	report.TopComplexity = topComplexity(methods, in.topN)
	report.Hotspots = hotspots(methods)

	s.TotalPackages = len(report.LOCPerPackage)
	s.TotalClasses = len(report.Classes)
	s.MethodsAnalyzed = len(methods)
	s.ClassesWithThreads = len(report.ThreadsPerClass)
	s.ExternalLibraries = len(in.libraries)
	s.BugsFound = in.bugs.TotalBugs

	return report
}

func packageOf(f model.FileMetrics) string {
	if f.Package == "" {
		return model.DefaultPackage
	}
	return f.Package
}

func fileStem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

func qualify(pkg, name string) string {
	if pkg == "" || pkg == model.DefaultPackage {
		return name
	}
	return pkg + "." + name
}

// summarizeClass scores a file as a refactoring candidate.
func summarizeClass(f model.FileMetrics) model.ClassSummary {
	name := f.PrimaryClass
	if name == "" || name == model.UnknownClass {
		name = fileStem(f.Path)
	}

	cs := model.ClassSummary{
		Class:          qualify(f.Package, name),
		FilePath:       f.Path,
		LOC:            f.LOC,
		Methods:        len(f.Methods),
		Fields:         f.Fields,
		Imports:        f.ImportCount,
		ThreadUsages:   f.ThreadUsages,
		ExecutorUsages: f.ExecutorUsages,
		SyncBlocks:     f.SyncBlocks,
	}
	for _, m := range f.Methods {
		if m.Lines > model.LongMethodLines {
			cs.LongMethods = append(cs.LongMethods, m.Method)
		}
	}

	cs.Score = f.LOC/10 +
		len(f.Methods)*3 +
		f.Fields +
		f.ThreadUsages*10 +
		f.ExecutorUsages*5 +
		f.SyncBlocks*5

	if f.ThreadUsages > 0 {
		cs.Indicators = append(cs.Indicators, model.IndicatorManualThreads)
	}
	if f.SyncBlocks > 0 {
		cs.Indicators = append(cs.Indicators, model.IndicatorSynchronization)
	}
	if len(cs.LongMethods) > 0 {
		cs.Indicators = append(cs.Indicators, model.IndicatorLongMethods)
	}
	if cs.Score > model.HighScoreThreshold {
		cs.Indicators = append(cs.Indicators, model.IndicatorHighComplexity)
	}
	return cs
}

// packageDependencies maps each package to the other packages its files
// import. With prefixes, an import counts when it starts with one of them;
// without, when it names a package declared in the project.
func packageDependencies(files []model.FileMetrics, known map[string]int, prefixes []string) map[string][]string {
	internal := func(imp string) bool {
		if len(prefixes) == 0 {
			_, ok := known[imp]
			return ok
		}
		for _, p := range prefixes {
			if strings.HasPrefix(imp, p) {
				return true
			}
		}
		return false
	}

	sets := make(map[string]map[string]struct{})
	for _, f := range files {
		pkg := packageOf(f)
		for _, imp := range f.Imports {
			if imp == pkg || !internal(imp) {
				continue
			}
			if sets[pkg] == nil {
				sets[pkg] = make(map[string]struct{})
			}
			sets[pkg][imp] = struct{}{}
		}
	}

	out := make(map[string][]string, len(sets))
	for pkg, set := range sets {
		deps := make([]string, 0, len(set))
		for d := range set {
			deps = append(deps, d)
		}
		sort.Strings(deps)
		out[pkg] = deps
	}
	return out
}

func sortMethods(ms []model.MethodRecord, less func(a, b model.MethodRecord) bool) {
	sort.SliceStable(ms, func(i, j int) bool { return less(ms[i], ms[j]) })
}

func byLocation(a, b model.MethodRecord) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	return a.Line < b.Line
}

// topComplexity returns the n most complex methods, ties broken by name
// then location.
func topComplexity(methods []model.MethodRecord, n int) []model.MethodRecord {
	out := make([]model.MethodRecord, len(methods))
	copy(out, methods)
	sortMethods(out, func(a, b model.MethodRecord) bool {
		if a.Complexity != b.Complexity {
			return a.Complexity > b.Complexity
		}
		return byLocation(a, b)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// hotspots ranks methods by complexity weighted with file churn.
func hotspots(methods []model.MethodRecord) []model.MethodRecord {
	var out []model.MethodRecord
	for _, m := range methods {
		if m.HotspotScore > 0 {
			out = append(out, m)
		}
	}
	sortMethods(out, func(a, b model.MethodRecord) bool {
		if a.HotspotScore != b.HotspotScore {
			return a.HotspotScore > b.HotspotScore
		}
		return byLocation(a, b)
	})
	if len(out) > maxHotspots {
		out = out[:maxHotspots]
	}
	return out
}
