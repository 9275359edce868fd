// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

const (
	cacheFile    = "cache.msgpack"
	cacheVersion = 1
)

// cacheData is the on-disk layout. A version mismatch discards the file.
type cacheData struct {
	Version int                           `json:"version"`
	Entries map[string]*model.FileMetrics `json:"entries"`
}

// MsgpackCache remembers per-file parse results between runs. Keys are
// opaque; callers derive them from path, content hash and engine.
type MsgpackCache struct {
	path   string
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]*model.FileMetrics
	dirty   bool
}

var _ ports.AnalysisCache = (*MsgpackCache)(nil)

// OpenMsgpackCache loads the cache of root. A missing, unreadable or
// corrupt cache file yields an empty cache.
func OpenMsgpackCache(root string, logger *zap.Logger) *MsgpackCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &MsgpackCache{
		path:    filepath.Join(root, StateDir, cacheFile),
		logger:  logger,
		entries: make(map[string]*model.FileMetrics),
	}

	f, err := os.Open(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("cache unreadable, starting empty", zap.String("path", c.path), zap.Error(err))
		}
		return c
	}
	defer f.Close()

	if err := c.load(f); err != nil {
		logger.Warn("cache corrupt, starting empty", zap.String("path", c.path), zap.Error(err))
		c.entries = make(map[string]*model.FileMetrics)
		return c
	}

	logger.Debug("cache loaded", zap.String("path", c.path), zap.Int("entries", len(c.entries)))
	return c
}

func (c *MsgpackCache) load(r io.Reader) error {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")

	var data cacheData
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("decode cache: %w", err)
	}
	if data.Version != cacheVersion {
		return fmt.Errorf("cache version %d, want %d", data.Version, cacheVersion)
	}
	for k, v := range data.Entries {
		if v != nil {
			c.entries[k] = v
		}
	}
	return nil
}

// Get returns a shallow copy of the cached metrics for key.
func (c *MsgpackCache) Get(key string) (*model.FileMetrics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fm, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	out := *fm
	return &out, true
}

// Put stores fm under key. Git metrics change independently of file
// content and are not cached.
func (c *MsgpackCache) Put(key string, fm *model.FileMetrics) {
	if fm == nil {
		return
	}
	stored := *fm
	stored.Git = nil

	c.mu.Lock()
	c.entries[key] = &stored
	c.dirty = true
	c.mu.Unlock()
}

func (c *MsgpackCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush writes the cache to disk if anything was added since it was
// opened or last flushed.
func (c *MsgpackCache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), cacheFile+".*")
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := msgpack.NewEncoder(tmp)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(cacheData{Version: cacheVersion, Entries: c.entries}); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}

	c.dirty = false
	c.logger.Debug("cache flushed", zap.String("path", c.path), zap.Int("entries", len(c.entries)))
	return nil
}
