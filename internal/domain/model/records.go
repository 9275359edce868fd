// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

import "github.com/rafaelvolkmer/codemetrics/internal/domain/lexical"

// DefaultPackage is used for files without a package declaration.
const DefaultPackage = "(default)"

// UnknownClass names the owner of methods found in a file with no class
// declaration.
const UnknownClass = "Unknown"

type MethodRecord struct {
	Name         string            `json:"name"`
	Class        string            `json:"class"`
	Method       string            `json:"method"`
	FilePath     string            `json:"filePath"`
	Line         int               `json:"line"`
	EndLine      int               `json:"endLine"`
	Lines        int               `json:"lines"`
	Complexity   int               `json:"complexity"`
	Decisions    lexical.Decisions `json:"decisions"`
	HotspotScore float64           `json:"hotspotScore,omitempty"`
}

type ClassKind string

const (
	KindClass     ClassKind = "class"
	KindInterface ClassKind = "interface"
	KindEnum      ClassKind = "enum"
	KindRecord    ClassKind = "record"
)

type ClassRecord struct {
	Name          string    `json:"name"`
	Kind          ClassKind `json:"kind"`
	Package       string    `json:"package"`
	QualifiedName string    `json:"qualifiedName"`
	FilePath      string    `json:"filePath"`
	Javadoc       string    `json:"javadoc,omitempty"`
	IsMain        bool      `json:"isMain,omitempty"`
}

type ThreadPoint struct {
	FilePath    string `json:"filePath"`
	Line        int    `json:"line"`
	Description string `json:"description"`
}

type GitFileMetrics struct {
	FilePath      string `json:"filePath"`
	LinesAdded    int    `json:"linesAdded"`
	LinesDeleted  int    `json:"linesDeleted"`
	Commits       int    `json:"commits"`
	BugfixCommits int    `json:"bugfixCommits"`
	Authors       int    `json:"authors"`
}

// Churn is lines added plus lines deleted.
func (g *GitFileMetrics) Churn() int {
	if g == nil {
		return 0
	}
	return g.LinesAdded + g.LinesDeleted
}

// FileMetrics is everything a parser extracts from one source file. Values
// are cached between runs, so consumers must copy before mutating.
type FileMetrics struct {
	Path     string   `json:"path"`
	Language Language `json:"language"`
	Package  string   `json:"package"`
	LOC      int      `json:"loc"`

	// PrimaryClass owns the file's methods in reports.
	PrimaryClass string         `json:"primaryClass"`
	Classes      []ClassRecord  `json:"classes,omitempty"`
	Methods      []MethodRecord `json:"methods,omitempty"`

	// Imports are the distinct packages imported from outside the file's
	// own package.
	Imports     []string `json:"imports,omitempty"`
	ImportCount int      `json:"importCount"`

	ThreadPoints   []ThreadPoint `json:"threadPoints,omitempty"`
	ThreadStarts   int           `json:"threadStarts"`
	ThreadUsages   int           `json:"threadUsages"`
	ExecutorUsages int           `json:"executorUsages"`
	SyncBlocks     int           `json:"syncBlocks"`
	Fields         int           `json:"fields"`

	SkippedMethods []string        `json:"skippedMethods,omitempty"`
	Git            *GitFileMetrics `json:"git,omitempty"`
}

// Library is one external dependency declared in a build manifest.
type Library struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
	Scope    string `json:"scope"`
}

// Coordinate returns group:artifact:version.
func (l Library) Coordinate() string {
	return l.Group + ":" + l.Artifact + ":" + l.Version
}

// IsTest reports whether the library is only on a test classpath.
func (l Library) IsTest() bool {
	return l.Scope == "testImplementation" || l.Scope == "testRuntimeOnly"
}
