// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

const (
	DefaultTopN   = 20
	DefaultEngine = "regex"
)

type AnalyzeProjectRequest struct {
	RootPath   string
	IncludeExt []string
	TopN       int
	Engine     string

	// InternalPrefixes selects which imports count as package
	// dependencies. When empty, only packages declared in the project do.
	InternalPrefixes []string
	NoCache          bool

	// SourceRoots restricts the analysis to these directories, relative
	// to RootPath. Empty means the whole tree.
	SourceRoots []string
	// IncludeTests keeps test sources (src/test trees, _test.go files).
	IncludeTests bool
}

// AnalyzeDependencies are the collaborators of AnalyzeProjectUseCase.
// Manifest, Bugs, Git and Cache are optional.
type AnalyzeDependencies struct {
	Scanner  ports.SourceFileScanner
	Reader   ports.FileReader
	Parsers  []ports.CodeParser
	Manifest ports.ManifestReader
	Bugs     ports.BugAnalyzer
	Git      ports.GitClient
	Storage  ports.ReportStorage
	Cache    ports.AnalysisCache
}

type AnalyzeProjectUseCase struct {
	deps    AnalyzeDependencies
	logger  *zap.Logger
	workers int
}

func NewAnalyzeProjectUseCase(deps AnalyzeDependencies, workers int, logger *zap.Logger) *AnalyzeProjectUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	return &AnalyzeProjectUseCase{
		deps:    deps,
		logger:  logger,
		workers: workers,
	}
}

// collected holds what the project-level collectors found.
type collected struct {
	libraries []model.Library
	bugs      model.BugSummary
	git       map[string]*model.GitFileMetrics
	warnings  []string
}

func (uc *AnalyzeProjectUseCase) Execute(ctx context.Context, req AnalyzeProjectRequest) (*model.ProjectReport, error) {
	if req.RootPath == "" {
		return nil, errors.New("root path is required")
	}
	if req.TopN <= 0 {
		req.TopN = DefaultTopN
	}
	if req.Engine == "" {
		req.Engine = DefaultEngine
	}

	started := time.Now()

	filesList, err := uc.deps.Scanner.Scan(ctx, req.RootPath, req.IncludeExt)
	if err != nil {
		return nil, fmt.Errorf("scan source files: %w", err)
	}
	filesList = selectSources(req, filesList)
	if len(filesList) == 0 {
		return nil, fmt.Errorf("no source files found under %s", req.RootPath)
	}

	uc.logger.Info("analysis started",
		zap.String("root", req.RootPath),
		zap.Int("files", len(filesList)),
		zap.Int("workers", uc.workers),
		zap.String("engine", req.Engine),
	)

	var col collected
	g, gctx := errgroup.WithContext(ctx)
	uc.collect(gctx, g, req.RootPath, &col)

	files, warnings := uc.parseAll(ctx, req, filesList)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect project data: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	warnings = append(warnings, col.warnings...)

	if uc.deps.Cache != nil && !req.NoCache {
		if err := uc.deps.Cache.Flush(); err != nil {
			uc.logger.Warn("cache flush failed", zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("cache flush: %v", err))
		}
	}

	for i := range files {
		if gm, ok := col.git[files[i].Path]; ok {
			files[i].Git = gm
		}
	}

	report := buildProjectReport(reportInput{
		root:      req.RootPath,
		engine:    req.Engine,
		topN:      req.TopN,
		prefixes:  req.InternalPrefixes,
		files:     files,
		libraries: col.libraries,
		bugs:      col.bugs,
		warnings:  warnings,
	})

	if err := uc.deps.Storage.Save(ctx, req.RootPath, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	uc.logger.Info("analysis finished",
		zap.String("run_id", report.RunID),
		zap.Int("files", report.Summary.TotalFiles),
		zap.Int("methods", report.Summary.MethodsAnalyzed),
		zap.Int("warnings", len(report.Warnings)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// collect starts the project-level collectors on g. Their failures are
// recorded as warnings and never fail the group.
func (uc *AnalyzeProjectUseCase) collect(ctx context.Context, g *errgroup.Group, root string, col *collected) {
	var mu sync.Mutex
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		uc.logger.Warn(msg)
		mu.Lock()
		col.warnings = append(col.warnings, msg)
		mu.Unlock()
	}

	col.bugs = model.BugSummary{Status: model.BugStatusNotRun}

	if uc.deps.Manifest != nil {
		g.Go(func() error {
			libs, err := uc.deps.Manifest.ReadLibraries(ctx, root)
			if err != nil {
				warn("read build manifest: %v", err)
				return nil
			}
			col.libraries = libs
			return nil
		})
	}

	if uc.deps.Bugs != nil {
		g.Go(func() error {
			col.bugs = uc.deps.Bugs.Analyze(ctx, root)
			return nil
		})
	}

	if uc.deps.Git != nil {
		g.Go(func() error {
			gm, err := uc.deps.Git.CollectFileMetrics(ctx, root)
			if err != nil {
				warn("git metrics disabled: %v", err)
				return nil
			}
			col.git = gm
			return nil
		})
	}
}

// parseAll runs the worker pool over paths. Files are returned sorted by
// path; read and parse failures become warnings.
func (uc *AnalyzeProjectUseCase) parseAll(ctx context.Context, req AnalyzeProjectRequest, paths []string) ([]model.FileMetrics, []string) {
	jobs := make(chan string)
	results := make(chan *model.FileMetrics)
	errCh := make(chan error, len(paths))

	useCache := uc.deps.Cache != nil && !req.NoCache

	var wg sync.WaitGroup
	for i := 0; i < uc.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				parser := uc.selectParser(path)
				if parser == nil {
					continue
				}

				rel := relativePath(req.RootPath, path)

				src, err := uc.deps.Reader.ReadFile(path)
				if err != nil {
					errCh <- fmt.Errorf("read %s: %w", rel, err)
					continue
				}

				key := fileCacheKey(rel, src, req.Engine)
				if useCache {
					if fm, ok := uc.deps.Cache.Get(key); ok {
						uc.logger.Debug("cache hit", zap.String("file", rel))
						results <- fm
						continue
					}
				}

				fm, err := parser.ParseFile(rel, src)
				if err != nil {
					errCh <- fmt.Errorf("parse %s: %w", rel, err)
					continue
				}
				if useCache {
					uc.deps.Cache.Put(key, fm)
				}

				results <- fm
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
		close(errCh)
	}()

	var files []model.FileMetrics
	for fm := range results {
		if fm != nil {
			files = append(files, *fm)
		}
	}

	var warnings []string
	for e := range errCh {
		uc.logger.Warn("file skipped", zap.Error(e))
		warnings = append(warnings, e.Error())
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	sort.Strings(warnings)
	return files, warnings
}

func (uc *AnalyzeProjectUseCase) selectParser(path string) ports.CodeParser {
	for _, p := range uc.deps.Parsers {
		if p.SupportsFile(path) {
			return p
		}
	}
	return nil
}

// selectSources drops paths outside req.SourceRoots and, unless
// req.IncludeTests is set, test sources.
func selectSources(req AnalyzeProjectRequest, paths []string) []string {
	var roots []string
	for _, r := range req.SourceRoots {
		r = strings.Trim(filepath.ToSlash(filepath.Clean(strings.TrimSpace(r))), "/")
		switch r {
		case "", ".":
			roots = append(roots, "")
		default:
			roots = append(roots, r)
		}
	}

	out := make([]string, 0, len(paths))
	for _, path := range paths {
		rel := relativePath(req.RootPath, path)
		if len(roots) > 0 && !underAny(rel, roots) {
			continue
		}
		if !req.IncludeTests && isTestSource(rel) {
			continue
		}
		out = append(out, path)
	}
	return out
}

func underAny(rel string, roots []string) bool {
	for _, r := range roots {
		if r == "" || rel == r || strings.HasPrefix(rel, r+"/") {
			return true
		}
	}
	return false
}

// isTestSource reports whether rel sits in a Gradle/Maven test source set
// (src/test, src/integrationTest, ...) or is a Go test file.
func isTestSource(rel string) bool {
	if strings.HasSuffix(rel, "_test.go") {
		return true
	}
	parts := strings.Split(rel, "/")
	for i := 0; i+1 < len(parts)-1; i++ {
		if parts[i] != "src" {
			continue
		}
		set := parts[i+1]
		if set == "test" || strings.HasSuffix(set, "Test") {
			return true
		}
	}
	return false
}

// relativePath is path relative to root with forward slashes, the form
// git reports paths in.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// fileCacheKey identifies one parse of src at path with engine.
func fileCacheKey(path string, src []byte, engine string) string {
	sum := sha256.Sum256(src)
	return path + "|" + hex.EncodeToString(sum[:]) + "|" + engine
}
