// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/lexical"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
)

func sampleReport() *model.ProjectReport {
	return &model.ProjectReport{
		RunID:       "run-1",
		RootPath:    "/repo",
		GeneratedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Engine:      "regex",
		Summary: model.Summary{
			TotalFiles:         2,
			TotalPackages:      2,
			TotalLOC:           120,
			TotalClasses:       2,
			MethodsAnalyzed:    3,
			ClassesWithThreads: 1,
			ExternalLibraries:  2,
			MaxComplexity:      7,
		},
		LOCPerPackage: map[string]int{"com.acme.app": 80, "com.acme.core.engine.impl": 40},
		TopComplexity: []model.MethodRecord{{
			Name:       "Main.run",
			Class:      "Main",
			Method:     "run",
			FilePath:   "src/Main.java",
			Line:       10,
			Lines:      20,
			Complexity: 7,
			Decisions:  lexical.Decisions{If: 3, Ternary: 1, And: 2},
		}},
		ThreadsPerClass: map[string]int{"Main": 2},
		ExternalLibraries: []model.Library{
			{Group: "com.google.code.gson", Artifact: "gson", Version: "2.10.1", Scope: "implementation"},
			{Group: "org.junit.jupiter", Artifact: "junit-jupiter", Version: "5.10.0", Scope: "testImplementation"},
		},
		SpotBugs: model.BugSummary{Status: model.BugStatusNotRun, Note: "SpotBugs disabled"},
		Packages: map[string][]string{
			"com.acme.app":              {"Main"},
			"com.acme.core.engine.impl": {"Engine"},
		},
		Classes: []model.ClassRecord{
			{Name: "Main", Kind: model.KindClass, Package: "com.acme.app", QualifiedName: "com.acme.app.Main",
				FilePath: "src/Main.java", Javadoc: "Entry point.", IsMain: true},
			{Name: "Engine", Kind: model.KindClass, Package: "com.acme.core.engine.impl",
				QualifiedName: "com.acme.core.engine.impl.Engine", FilePath: "src/Engine.java"},
		},
		MainClasses: []string{"com.acme.app.Main"},
		PackageDependencies: map[string][]string{
			"com.acme.app": {"com.acme.core.engine.impl", "java.util"},
		},
		ThreadPoints: []model.ThreadPoint{{FilePath: "src/Main.java", Line: 12, Description: "new Thread"}},
		ClassSummaries: []model.ClassSummary{{
			Class:      "com.acme.app.Main",
			Score:      25,
			Methods:    3,
			Indicators: []string{model.IndicatorManualThreads, model.IndicatorHighComplexity},
		}},
		MetricMetadata: model.AllMetricSummaries(),
		Warnings:       []string{"parse src/Bad.java: boom"},
	}
}

func TestTextRenderer(t *testing.T) {
	out, err := NewTextRenderer().Render(sampleReport())
	require.NoError(t, err)

	for _, want := range []string{
		"codemetrics report",
		"Main.run",
		"if=3 ?=1 &&=2",
		"com.acme.core.engine.impl",
		"com.google.code.gson:gson",
		"not_run (SpotBugs disabled)",
		"uses_manual_threads, high_complexity",
		"parse src/Bad.java: boom",
	} {
		assert.Contains(t, out, want)
	}
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer().Render(sampleReport())
	require.NoError(t, err)

	var decoded model.ProjectReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, 7, decoded.TopComplexity[0].Complexity)
	assert.Equal(t, 2, decoded.TopComplexity[0].Decisions.And)
	assert.Contains(t, out, `"runId": "run-1"`)
}

func TestYAMLRenderer(t *testing.T) {
	out, err := NewYAMLRenderer().Render(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "runId: run-1\n")
	assert.NotContains(t, out, "{\"")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 120, summary["totalLoc"])
}

func TestMarkdownRenderer(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(sampleReport())
	require.NoError(t, err)

	for _, want := range []string{
		"The codebase contains **2 packages** with **2 classes**.",
		"### `com.acme.app.Main`\n\n- **File**: `src/Main.java`\n- **Description**: Entry point.",
		"#### `Main`\n\nEntry point.",
		"### `src/Main.java`\n\n- Line 12: new Thread",
		"### Runtime Dependencies\n\n- `com.google.code.gson:gson:2.10.1`",
		"### Test Dependencies\n\n- `org.junit.jupiter:junit-jupiter:5.10.0`",
		"- `com.acme.app`: 2 package dependencies",
		"- `Main.run` (`src/Main.java:10`): complexity 7",
	} {
		assert.Contains(t, out, want)
	}
}

func TestMarkdownRendererRowCaps(t *testing.T) {
	report := sampleReport()
	report.TopComplexity = nil
	for i := 0; i < 12; i++ {
		report.TopComplexity = append(report.TopComplexity, model.MethodRecord{
			Name: fmt.Sprintf("Main.m%02d", i), FilePath: "src/Main.java", Line: i + 1, Complexity: 20 - i,
		})
	}

	out, err := NewMarkdownRenderer().Render(report)
	require.NoError(t, err)

	assert.Contains(t, out, "Packages with the most dependencies (top 1):")
	assert.Equal(t, complexMethodRows, strings.Count(out, "- `Main.m"))
	assert.Contains(t, out, "- `Main.m09`")
	assert.NotContains(t, out, "- `Main.m10`")
}

func TestMarkdownRendererEmptyReport(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(&model.ProjectReport{})
	require.NoError(t, err)

	assert.Contains(t, out, "*No main classes found.*")
	assert.Contains(t, out, "*No explicit thread creation points found.*")
	assert.Contains(t, out, "*No dependencies found in build.gradle.*")
	assert.Contains(t, out, "- No inter-package dependencies detected")
}

func TestDOTRenderer(t *testing.T) {
	out, err := NewDOTRenderer().Render(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "rankdir=LR;")
	assert.Contains(t, out, `"com.acme.app" [label="com.acme.app"];`)
	assert.Contains(t, out, `"com.acme.core.engine.impl" [label="engine...impl"];`)
	assert.Contains(t, out, `"com.acme.app" -> "com.acme.core.engine.impl";`)
	assert.NotContains(t, out, "java.util")
}

func TestShortenPackage(t *testing.T) {
	assert.Equal(t, "a.b.c", shortenPackage("a.b.c"))
	assert.Equal(t, "c...d", shortenPackage("a.b.c.d"))
}

func TestRendererRegistry(t *testing.T) {
	reg := NewDefaultRegistry()

	assert.Equal(t, []string{"dot", "json", "markdown", "text", "yaml"}, reg.Formats())

	r, ok := reg.Get("MD")
	require.True(t, ok)
	assert.Equal(t, "markdown", r.Format())

	_, ok = reg.Get("sarif")
	assert.False(t, ok)
}
