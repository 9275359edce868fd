// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

type GenerateReportRequest struct {
	RootPath string
	Format   string
}

type GenerateReportUseCase struct {
	storage  ports.ReportStorage
	registry ports.RendererRegistry
}

func NewGenerateReportUseCase(storage ports.ReportStorage, registry ports.RendererRegistry) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		storage:  storage,
		registry: registry,
	}
}

// Execute renders the last saved report of req.RootPath.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, req GenerateReportRequest) (string, error) {
	report, err := uc.storage.Load(ctx, req.RootPath)
	if err != nil {
		return "", fmt.Errorf("load report: %w", err)
	}
	return uc.Render(report, req.Format)
}

// Render formats report; an empty format means text.
func (uc *GenerateReportUseCase) Render(report *model.ProjectReport, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "text"
	}

	renderer, ok := uc.registry.Get(format)
	if !ok {
		return "", fmt.Errorf("unknown format %q", format)
	}

	out, err := renderer.Render(report)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", renderer.Format(), err)
	}
	return out, nil
}
