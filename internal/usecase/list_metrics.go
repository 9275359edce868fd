// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"sort"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
)

type ListMetricsUseCase struct{}

func NewListMetricsUseCase() *ListMetricsUseCase {
	return &ListMetricsUseCase{}
}

// Execute returns the metric catalogue grouped by Group, in catalogue
// order within a group.
func (uc *ListMetricsUseCase) Execute(ctx context.Context) []model.MetricSummary {
	_ = ctx
	out := model.AllMetricSummaries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Group < out[j].Group
	})
	return out
}
