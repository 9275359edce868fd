// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

type fakeScanner struct {
	files []string
	err   error
}

func (s *fakeScanner) Scan(ctx context.Context, root string, includeExt []string) ([]string, error) {
	return s.files, s.err
}

type mapReader map[string]string

func (r mapReader) ReadFile(path string) ([]byte, error) {
	src, ok := r[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(src), nil
}

type countingParser struct {
	ports.CodeParser
	mu    sync.Mutex
	calls int
}

func (p *countingParser) ParseFile(path string, src []byte) (*model.FileMetrics, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return p.CodeParser.ParseFile(path, src)
}

type fakeManifest struct {
	libs []model.Library
	err  error
}

func (m *fakeManifest) ReadLibraries(ctx context.Context, root string) ([]model.Library, error) {
	return m.libs, m.err
}

type fakeBugs struct {
	summary model.BugSummary
}

func (b *fakeBugs) Analyze(ctx context.Context, root string) model.BugSummary {
	return b.summary
}

type fakeGit struct {
	metrics map[string]*model.GitFileMetrics
	err     error
}

func (g *fakeGit) CollectFileMetrics(ctx context.Context, root string) (map[string]*model.GitFileMetrics, error) {
	return g.metrics, g.err
}

type memStorage struct {
	mu     sync.Mutex
	report *model.ProjectReport
}

func (s *memStorage) Save(ctx context.Context, root string, report *model.ProjectReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
	return nil
}

func (s *memStorage) Load(ctx context.Context, root string) (*model.ProjectReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.report == nil {
		return nil, os.ErrNotExist
	}
	return s.report, nil
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]*model.FileMetrics
	flushes int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*model.FileMetrics)}
}

func (c *memCache) Get(key string) (*model.FileMetrics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fm, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	out := *fm
	return &out, true
}

func (c *memCache) Put(key string, fm *model.FileMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := *fm
	c.entries[key] = &stored
}

func (c *memCache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes++
	return nil
}

var errBoom = errors.New("boom")
