// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

// StateDir holds everything codemetrics writes inside an analyzed project.
const StateDir = ".codemetrics"

// skippedDirs are never descended into.
var skippedDirs = map[string]struct{}{
	".git":         {},
	"vendor":       {},
	"node_modules": {},
	"build":        {},
	StateDir:       {},
}

type FSScanner struct{}

func NewFSScanner() *FSScanner {
	return &FSScanner{}
}

var _ ports.SourceFileScanner = (*FSScanner)(nil)
var _ ports.FileReader = (*FSScanner)(nil)

// Scan returns every regular file under root whose extension is in
// includeExt (case-insensitive, leading dot optional). An empty includeExt
// accepts all files.
func (s *FSScanner) Scan(ctx context.Context, root string, includeExt []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: not a directory", root)
	}

	allowed := make(map[string]struct{}, len(includeExt))
	for _, e := range includeExt {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = struct{}{}
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if _, skip := skippedDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if len(allowed) > 0 {
			if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

func (s *FSScanner) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
