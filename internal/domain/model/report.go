// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

import "time"

type BugStatus string

const (
	BugStatusNotRun            BugStatus = "not_run"
	BugStatusCompleted         BugStatus = "completed"
	BugStatusNoReport          BugStatus = "no_report"
	BugStatusError             BugStatus = "error"
	BugStatusTimeout           BugStatus = "timeout"
	BugStatusCompilationFailed BugStatus = "compilation_failed"
)

type BugSummary struct {
	Status     BugStatus      `json:"status"`
	TotalBugs  int            `json:"totalBugs"`
	ByPriority map[string]int `json:"byPriority,omitempty"`
	ByCategory map[string]int `json:"byCategory,omitempty"`
	Note       string         `json:"note,omitempty"`
}

const (
	// LongMethodLines is the body length above which a method counts as long.
	LongMethodLines = 50
	// HighScoreThreshold is the refactoring score above which a class is
	// flagged as highly complex.
	HighScoreThreshold = 20
)

// Refactoring indicators attached to a ClassSummary.
const (
	IndicatorManualThreads   = "uses_manual_threads"
	IndicatorSynchronization = "has_synchronization"
	IndicatorLongMethods     = "has_long_methods"
	IndicatorHighComplexity  = "high_complexity"
)

// ClassSummary is the per-class refactoring view.
type ClassSummary struct {
	Class          string   `json:"class"`
	FilePath       string   `json:"filePath"`
	LOC            int      `json:"loc"`
	Methods        int      `json:"methods"`
	LongMethods    []string `json:"longMethods,omitempty"`
	Fields         int      `json:"fields"`
	Imports        int      `json:"imports"`
	ThreadUsages   int      `json:"threadUsages"`
	ExecutorUsages int      `json:"executorUsages"`
	SyncBlocks     int      `json:"syncBlocks"`
	Score          int      `json:"score"`
	Indicators     []string `json:"indicators,omitempty"`
}

type Summary struct {
	TotalFiles         int `json:"totalFiles"`
	TotalPackages      int `json:"totalPackages"`
	TotalLOC           int `json:"totalLoc"`
	TotalClasses       int `json:"totalClasses"`
	MethodsAnalyzed    int `json:"methodsAnalyzed"`
	SkippedMethods     int `json:"skippedMethods"`
	ClassesWithThreads int `json:"classesWithThreads"`
	ExternalLibraries  int `json:"externalLibraries"`
	BugsFound          int `json:"bugsFound"`
	MaxComplexity      int `json:"maxComplexity"`
}

type ProjectReport struct {
	RunID       string    `json:"runId"`
	RootPath    string    `json:"rootPath"`
	GeneratedAt time.Time `json:"generatedAt"`
	Engine      string    `json:"engine"`

	Summary Summary `json:"summary"`

	LOCPerPackage       map[string]int      `json:"locPerPackage"`
	TopComplexity       []MethodRecord      `json:"topComplexity"`
	ThreadsPerClass     map[string]int      `json:"threadsPerClass"`
	ExternalLibraries   []Library           `json:"externalLibraries"`
	SpotBugs            BugSummary          `json:"spotbugs"`
	Packages            map[string][]string `json:"packages"`
	Classes             []ClassRecord       `json:"classes"`
	MainClasses         []string            `json:"mainClasses"`
	PackageDependencies map[string][]string `json:"packageDependencies"`
	ThreadPoints        []ThreadPoint       `json:"threadPoints"`
	ClassSummaries      []ClassSummary      `json:"classSummaries"`
	Hotspots            []MethodRecord      `json:"hotspots,omitempty"`

	MetricMetadata []MetricSummary `json:"metricMetadata"`
	Warnings       []string        `json:"warnings,omitempty"`
}
