// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package ports

import (
	"context"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
)

type SourceFileScanner interface {
	Scan(ctx context.Context, root string, includeExt []string) ([]string, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type CodeParser interface {
	Name() string
	SupportsFile(path string) bool
	ParseFile(path string, src []byte) (*model.FileMetrics, error)
}

// MethodSite is a method declaration whose body starts at BraceOffset.
type MethodSite struct {
	Name        string
	Class       string
	BraceOffset int
	Line        int
}

// MethodLocator finds method bodies in a source file. Implementations
// only locate; block extraction and scoring happen in the caller.
type MethodLocator interface {
	Name() string
	Locate(src []byte) ([]MethodSite, error)
}

type ManifestReader interface {
	ReadLibraries(ctx context.Context, root string) ([]model.Library, error)
}

// BugAnalyzer never fails: problems are reported through the summary status.
type BugAnalyzer interface {
	Analyze(ctx context.Context, root string) model.BugSummary
}

type GitClient interface {
	CollectFileMetrics(ctx context.Context, root string) (map[string]*model.GitFileMetrics, error)
}

type ReportStorage interface {
	Save(ctx context.Context, root string, report *model.ProjectReport) error
	Load(ctx context.Context, root string) (*model.ProjectReport, error)
}

type AnalysisCache interface {
	Get(key string) (*model.FileMetrics, bool)
	Put(key string, fm *model.FileMetrics)
	Flush() error
}

type OutputRenderer interface {
	Format() string
	Render(report *model.ProjectReport) (string, error)
}

type RendererRegistry interface {
	Get(format string) (OutputRenderer, bool)
	List() []OutputRenderer
}
