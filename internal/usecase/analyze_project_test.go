// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rafaelvolkmer/codemetrics/internal/adapter/parser"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

const mainJava = `package com.acme.app;

import com.acme.core.Engine;
import java.util.List;

/** Entry point. */
public class Main {
    private int count;

    public static void main(String[] args) {
        new Thread(() -> run()).start();
    }

    public int pick(int a, int b) {
        if (a > b && b > 0) {
            return a;
        }
        return b;
    }
}
`

const engineJava = `package com.acme.core;

public class Engine {
    public void go(int n) {
        for (int i = 0; i < n; i++) {
            if (i % 2 == 0 || i > 5) {
                continue;
            }
        }
    }
}
`

type analyzeFixture struct {
	parser  *countingParser
	storage *memStorage
	cache   *memCache
	deps    AnalyzeDependencies
}

func newAnalyzeFixture() *analyzeFixture {
	f := &analyzeFixture{
		parser:  &countingParser{CodeParser: parser.NewJavaParser(nil)},
		storage: &memStorage{},
		cache:   newMemCache(),
	}
	f.deps = AnalyzeDependencies{
		Scanner: &fakeScanner{files: []string{
			"/proj/src/com/acme/app/Main.java",
			"/proj/src/com/acme/core/Engine.java",
		}},
		Reader: mapReader{
			"/proj/src/com/acme/app/Main.java":    mainJava,
			"/proj/src/com/acme/core/Engine.java": engineJava,
		},
		Parsers: []ports.CodeParser{f.parser},
		Manifest: &fakeManifest{libs: []model.Library{
			{Group: "com.google.code.gson", Artifact: "gson", Version: "2.10.1", Scope: "implementation"},
		}},
		Bugs: &fakeBugs{summary: model.BugSummary{Status: model.BugStatusCompleted, TotalBugs: 2}},
		Git: &fakeGit{metrics: map[string]*model.GitFileMetrics{
			"src/com/acme/app/Main.java": {FilePath: "src/com/acme/app/Main.java", LinesAdded: 10},
		}},
		Storage: f.storage,
		Cache:   f.cache,
	}
	return f
}

func (f *analyzeFixture) run(t *testing.T, req AnalyzeProjectRequest) *model.ProjectReport {
	t.Helper()
	if req.RootPath == "" {
		req.RootPath = "/proj"
	}
	report, err := NewAnalyzeProjectUseCase(f.deps, 2, zap.NewNop()).Execute(context.Background(), req)
	require.NoError(t, err)
	return report
}

func methodNames(ms []model.MethodRecord) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func TestAnalyzeProjectBuildsReport(t *testing.T) {
	f := newAnalyzeFixture()
	report := f.run(t, AnalyzeProjectRequest{})

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, DefaultEngine, report.Engine)
	assert.Same(t, report, f.storage.report)

	s := report.Summary
	assert.Equal(t, 2, s.TotalFiles)
	assert.Equal(t, 2, s.TotalPackages)
	assert.Equal(t, 2, s.TotalClasses)
	assert.Equal(t, 3, s.MethodsAnalyzed)
	assert.Equal(t, 4, s.MaxComplexity)
	assert.Equal(t, 1, s.ClassesWithThreads)
	assert.Equal(t, 1, s.ExternalLibraries)
	assert.Equal(t, 2, s.BugsFound)

	assert.Equal(t, []string{"Engine.go", "Main.pick", "Main.main"}, methodNames(report.TopComplexity))
	assert.Equal(t, "src/com/acme/core/Engine.java", report.TopComplexity[0].FilePath)

	assert.Equal(t, map[string]int{"Main": 2}, report.ThreadsPerClass)
	assert.Equal(t, []string{"com.acme.app.Main"}, report.MainClasses)
	assert.Equal(t, map[string][]string{
		"com.acme.app":  {"Main"},
		"com.acme.core": {"Engine"},
	}, report.Packages)
	assert.Equal(t, map[string][]string{"com.acme.app": {"com.acme.core"}}, report.PackageDependencies)
	assert.Contains(t, report.LOCPerPackage, "com.acme.app")
	assert.Contains(t, report.LOCPerPackage, "com.acme.core")

	require.Len(t, report.ThreadPoints, 1)
	assert.Equal(t, "new Thread", report.ThreadPoints[0].Description)

	assert.Equal(t, []string{"Main.pick", "Main.main"}, methodNames(report.Hotspots))
	assert.Greater(t, report.Hotspots[0].HotspotScore, report.Hotspots[1].HotspotScore)

	require.Len(t, report.ClassSummaries, 2)
	assert.Equal(t, "com.acme.app.Main", report.ClassSummaries[0].Class)
	assert.Contains(t, report.ClassSummaries[0].Indicators, model.IndicatorManualThreads)

	assert.Empty(t, report.Warnings)
	assert.Equal(t, 1, f.cache.flushes)
}

func TestAnalyzeProjectDoesNotMutateCachedMetrics(t *testing.T) {
	f := newAnalyzeFixture()
	f.run(t, AnalyzeProjectRequest{})

	for _, fm := range f.cache.entries {
		assert.Nil(t, fm.Git)
		for _, m := range fm.Methods {
			assert.Zero(t, m.HotspotScore, m.Name)
		}
	}
}

func TestAnalyzeProjectUsesCache(t *testing.T) {
	f := newAnalyzeFixture()

	first := f.run(t, AnalyzeProjectRequest{})
	assert.Equal(t, 2, f.parser.calls)

	second := f.run(t, AnalyzeProjectRequest{})
	assert.Equal(t, 2, f.parser.calls)
	assert.Equal(t, first.Summary, second.Summary)
	assert.NotEqual(t, first.RunID, second.RunID)

	f.run(t, AnalyzeProjectRequest{NoCache: true})
	assert.Equal(t, 4, f.parser.calls)

	f.run(t, AnalyzeProjectRequest{Engine: "ast"})
	assert.Equal(t, 6, f.parser.calls)
}

func TestAnalyzeProjectCollectsWarnings(t *testing.T) {
	f := newAnalyzeFixture()
	f.deps.Scanner = &fakeScanner{files: []string{
		"/proj/src/com/acme/app/Main.java",
		"/proj/src/Missing.java",
		"/proj/README.md",
	}}
	f.deps.Manifest = &fakeManifest{err: errBoom}
	f.deps.Git = &fakeGit{err: errBoom}

	report := f.run(t, AnalyzeProjectRequest{})

	assert.Equal(t, 1, report.Summary.TotalFiles)
	require.Len(t, report.Warnings, 3)
	assert.Contains(t, report.Warnings[0], "read src/Missing.java")
	assert.Contains(t, report.Warnings, "read build manifest: boom")
	assert.Contains(t, report.Warnings, "git metrics disabled: boom")
	assert.Empty(t, report.Hotspots)
}

func TestAnalyzeProjectOptionalCollaborators(t *testing.T) {
	f := newAnalyzeFixture()
	f.deps.Manifest = nil
	f.deps.Bugs = nil
	f.deps.Git = nil
	f.deps.Cache = nil

	report := f.run(t, AnalyzeProjectRequest{TopN: 1})

	assert.Equal(t, model.BugStatusNotRun, report.SpotBugs.Status)
	assert.Empty(t, report.ExternalLibraries)
	assert.Equal(t, []string{"Engine.go"}, methodNames(report.TopComplexity))
	assert.Equal(t, 3, report.Summary.MethodsAnalyzed)
}

func TestAnalyzeProjectErrors(t *testing.T) {
	uc := NewAnalyzeProjectUseCase(AnalyzeDependencies{Scanner: &fakeScanner{}}, 1, nil)

	_, err := uc.Execute(context.Background(), AnalyzeProjectRequest{})
	assert.EqualError(t, err, "root path is required")

	_, err = uc.Execute(context.Background(), AnalyzeProjectRequest{RootPath: "/empty"})
	assert.EqualError(t, err, "no source files found under /empty")

	uc = NewAnalyzeProjectUseCase(AnalyzeDependencies{Scanner: &fakeScanner{err: errBoom}}, 1, nil)
	_, err = uc.Execute(context.Background(), AnalyzeProjectRequest{RootPath: "/x"})
	assert.ErrorIs(t, err, errBoom)
}

const appJava = `package a;

public class App {
    public void run() {
        System.out.println("run");
    }
}
`

const appTestJava = `package a;

public class AppTest {
    public void check(int a, Runnable r) {
        if (a > 1 && a < 9 || a == 0) {
            new Thread(r).start();
        }
    }
}
`

func newLayoutFixture() *analyzeFixture {
	f := newAnalyzeFixture()
	f.deps.Scanner = &fakeScanner{files: []string{
		"/proj/src/main/java/a/App.java",
		"/proj/src/test/java/a/AppTest.java",
		"/proj/tools/gen/Gen.java",
	}}
	f.deps.Reader = mapReader{
		"/proj/src/main/java/a/App.java":     appJava,
		"/proj/src/test/java/a/AppTest.java": appTestJava,
		"/proj/tools/gen/Gen.java":           engineJava,
	}
	return f
}

func TestAnalyzeProjectSkipsTestSources(t *testing.T) {
	f := newLayoutFixture()
	report := f.run(t, AnalyzeProjectRequest{})

	assert.Equal(t, 2, report.Summary.TotalFiles)
	assert.Equal(t, []string{"Engine.go", "App.run"}, methodNames(report.TopComplexity))
	assert.Empty(t, report.ThreadsPerClass)
	for _, c := range report.Classes {
		assert.NotEqual(t, "AppTest", c.Name)
	}
}

func TestAnalyzeProjectIncludeTests(t *testing.T) {
	f := newLayoutFixture()
	report := f.run(t, AnalyzeProjectRequest{IncludeTests: true})

	assert.Equal(t, 3, report.Summary.TotalFiles)
	assert.Equal(t, map[string]int{"AppTest": 2}, report.ThreadsPerClass)
}

func TestAnalyzeProjectSourceRoots(t *testing.T) {
	f := newLayoutFixture()
	report := f.run(t, AnalyzeProjectRequest{SourceRoots: []string{"src/main/java/"}})

	assert.Equal(t, 1, report.Summary.TotalFiles)
	assert.Equal(t, []string{"App.run"}, methodNames(report.TopComplexity))
	assert.Equal(t, "src/main/java/a/App.java", report.TopComplexity[0].FilePath)

	_, err := NewAnalyzeProjectUseCase(f.deps, 1, nil).Execute(context.Background(),
		AnalyzeProjectRequest{RootPath: "/proj", SourceRoots: []string{"src/main/kotlin"}})
	assert.ErrorContains(t, err, "no source files found")
}

func TestIsTestSource(t *testing.T) {
	cases := map[string]bool{
		"src/test/java/a/AppTest.java":           true,
		"app/src/integrationTest/java/a/It.java": true,
		"pkg/lexical/block_test.go":              true,
		"src/main/java/a/App.java":               false,
		"src/test.java":                          false,
		"src/main/java/test/Fixture.java":        false,
	}
	for rel, want := range cases {
		assert.Equal(t, want, isTestSource(rel), rel)
	}
}
