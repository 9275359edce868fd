// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

const reportFile = "report.json"

// FileStorage keeps the last report of a project under its state dir.
type FileStorage struct{}

func NewFileStorage() *FileStorage {
	return &FileStorage{}
}

var _ ports.ReportStorage = (*FileStorage)(nil)

// ReportPath is where Save writes the report for root.
func ReportPath(root string) string {
	return filepath.Join(root, StateDir, reportFile)
}

func (s *FileStorage) Save(ctx context.Context, root string, report *model.ProjectReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(root, StateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	// Replaced by rename; readers never see a partial report.
	tmp, err := os.CreateTemp(dir, reportFile+".*")
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		tmp.Close()
		return fmt.Errorf("encode report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), ReportPath(root)); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}
	return nil
}

func (s *FileStorage) Load(ctx context.Context, root string) (*model.ProjectReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(ReportPath(root))
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	var report model.ProjectReport
	if err := json.NewDecoder(f).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
