// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
)

func TestSummarizeClass(t *testing.T) {
	cs := summarizeClass(model.FileMetrics{
		Path:         "src/Worker.java",
		Package:      "com.acme",
		LOC:          100,
		PrimaryClass: "Worker",
		Methods: []model.MethodRecord{
			{Method: "run", Lines: 60},
			{Method: "stop", Lines: 5},
		},
		Fields:         3,
		ImportCount:    4,
		ThreadUsages:   1,
		ExecutorUsages: 1,
		SyncBlocks:     1,
	})

	assert.Equal(t, "com.acme.Worker", cs.Class)
	assert.Equal(t, 10+2*3+3+10+5+5, cs.Score)
	assert.Equal(t, []string{"run"}, cs.LongMethods)
	assert.Equal(t, 4, cs.Imports)
	assert.Equal(t, []string{
		model.IndicatorManualThreads,
		model.IndicatorSynchronization,
		model.IndicatorLongMethods,
		model.IndicatorHighComplexity,
	}, cs.Indicators)
}

func TestSummarizeClassFallsBackToFileStem(t *testing.T) {
	cs := summarizeClass(model.FileMetrics{
		Path:         "native/ring_buffer.c",
		Package:      model.DefaultPackage,
		PrimaryClass: model.UnknownClass,
		LOC:          9,
	})

	assert.Equal(t, "ring_buffer", cs.Class)
	assert.Zero(t, cs.Score)
	assert.Empty(t, cs.Indicators)
}

func TestPackageDependencies(t *testing.T) {
	files := []model.FileMetrics{
		{Package: "com.acme.app", Imports: []string{"com.acme.core", "java.util", "org.slf4j"}},
		{Package: "com.acme.app", Imports: []string{"com.acme.core", "com.acme.util"}},
		{Package: "com.acme.core", Imports: []string{"java.util"}},
	}
	known := map[string]int{"com.acme.app": 1, "com.acme.core": 1}

	assert.Equal(t, map[string][]string{
		"com.acme.app": {"com.acme.core"},
	}, packageDependencies(files, known, nil))

	assert.Equal(t, map[string][]string{
		"com.acme.app": {"com.acme.core", "com.acme.util"},
	}, packageDependencies(files, known, []string{"com.acme."}))
}

func TestTopComplexityOrdering(t *testing.T) {
	methods := []model.MethodRecord{
		{Name: "B.b", Complexity: 3},
		{Name: "A.a", Complexity: 3},
		{Name: "C.c", Complexity: 7},
		{Name: "D.d", Complexity: 1},
	}

	top := topComplexity(methods, 3)
	assert.Equal(t, []string{"C.c", "A.a", "B.b"}, methodNames(top))
	assert.Equal(t, "B.b", methods[0].Name)
}

func TestBuildProjectReportDefaultPackage(t *testing.T) {
	report := buildProjectReport(reportInput{
		topN: DefaultTopN,
		files: []model.FileMetrics{
			{Path: "Main.java", LOC: 5},
			{Path: "Other.java", Package: model.DefaultPackage, LOC: 7},
		},
	})

	assert.Equal(t, map[string]int{model.DefaultPackage: 12}, report.LOCPerPackage)
	assert.Equal(t, 12, report.Summary.TotalLOC)
	assert.Equal(t, 1, report.Summary.TotalPackages)
	assert.Empty(t, report.Hotspots)
}
