// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

// Package spotbugs runs SpotBugs through the project's Gradle wrapper and
// summarises its XML report.
package spotbugs

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

const DefaultTimeout = 5 * time.Minute

var reportPath = filepath.Join("build", "reports", "spotbugs", "main.xml")

// CommandRunner runs name with args inside dir.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

type GradleSpotBugs struct {
	enabled bool
	timeout time.Duration
	run     CommandRunner
	logger  *zap.Logger
}

type Option func(*GradleSpotBugs)

func WithTimeout(d time.Duration) Option {
	return func(g *GradleSpotBugs) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithRunner(run CommandRunner) Option {
	return func(g *GradleSpotBugs) {
		if run != nil {
			g.run = run
		}
	}
}

func NewGradleSpotBugs(enabled bool, logger *zap.Logger, opts ...Option) *GradleSpotBugs {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &GradleSpotBugs{
		enabled: enabled,
		timeout: DefaultTimeout,
		run:     execRunner,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ ports.BugAnalyzer = (*GradleSpotBugs)(nil)

func (g *GradleSpotBugs) Analyze(ctx context.Context, root string) model.BugSummary {
	if !g.enabled {
		return model.BugSummary{Status: model.BugStatusNotRun, Note: "SpotBugs disabled"}
	}

	gradlew := filepath.Join(root, "gradlew")
	if _, err := os.Stat(gradlew); err != nil {
		g.logger.Warn("gradlew not found", zap.String("root", root))
		return model.BugSummary{Status: model.BugStatusNotRun, Note: "gradlew not found in project root"}
	}

	g.logger.Info("compiling classes for SpotBugs", zap.String("root", root))
	if out, err := g.step(ctx, root, gradlew, "compileJava", "--quiet"); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return timedOut()
		}
		g.logger.Warn("compilation failed", zap.Error(err), zap.ByteString("output", out))
		return model.BugSummary{
			Status: model.BugStatusCompilationFailed,
			Note:   "Compilation failed - possibly due to missing dependencies",
		}
	}

	// spotbugsMain exits non-zero when it finds bugs; only the report matters.
	if _, err := g.step(ctx, root, gradlew, "spotbugsMain", "--quiet"); errors.Is(err, context.DeadlineExceeded) {
		return timedOut()
	}

	f, err := os.Open(filepath.Join(root, reportPath))
	if errors.Is(err, fs.ErrNotExist) {
		return model.BugSummary{Status: model.BugStatusNoReport, Note: "SpotBugs ran but no report was generated"}
	}
	if err != nil {
		return model.BugSummary{Status: model.BugStatusError, Note: fmt.Sprintf("open report: %v", err)}
	}
	defer f.Close()

	summary, err := ParseReport(f)
	if err != nil {
		return model.BugSummary{Status: model.BugStatusError, Note: fmt.Sprintf("Error parsing SpotBugs XML: %v", err)}
	}
	summary.Status = model.BugStatusCompleted

	g.logger.Info("SpotBugs analysis complete", zap.Int("bugs", summary.TotalBugs))
	return summary
}

func (g *GradleSpotBugs) step(ctx context.Context, root, gradlew string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.run(ctx, root, gradlew, args...)
	if ctx.Err() != nil {
		return out, ctx.Err()
	}
	return out, err
}

func timedOut() model.BugSummary {
	return model.BugSummary{Status: model.BugStatusTimeout, Note: "SpotBugs analysis timed out"}
}

// ParseReport counts the BugInstance elements of a SpotBugs XML report by
// priority and category. Status is left for the caller to set.
func ParseReport(r io.Reader) (model.BugSummary, error) {
	summary := model.BugSummary{
		ByPriority: make(map[string]int),
		ByCategory: make(map[string]int),
	}

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "BugInstance" {
			continue
		}

		priority, category := "unknown", "unknown"
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "priority":
				priority = attr.Value
			case "category":
				category = attr.Value
			}
		}

		summary.TotalBugs++
		summary.ByPriority[priority]++
		summary.ByCategory[category]++
	}
}
