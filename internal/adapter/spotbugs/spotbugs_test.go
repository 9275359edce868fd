// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package spotbugs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
)

const reportXML = `<?xml version="1.0" encoding="UTF-8"?>
<BugCollection version="4.8.0">
  <BugInstance type="DM_DEFAULT_ENCODING" priority="1" category="I18N"/>
  <BugInstance type="EI_EXPOSE_REP" priority="2" category="MALICIOUS_CODE">
    <Class classname="a.B"/>
  </BugInstance>
  <BugInstance type="URF_UNREAD_FIELD" priority="2"/>
</BugCollection>
`

func TestParseReport(t *testing.T) {
	summary, err := ParseReport(strings.NewReader(reportXML))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalBugs)
	assert.Equal(t, map[string]int{"1": 1, "2": 2}, summary.ByPriority)
	assert.Equal(t, map[string]int{"I18N": 1, "MALICIOUS_CODE": 1, "unknown": 1}, summary.ByCategory)
}

func TestParseReportMalformed(t *testing.T) {
	_, err := ParseReport(strings.NewReader("<BugCollection><BugInstance"))
	assert.Error(t, err)
}

func projectWithWrapper(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gradlew"), []byte("#!/bin/sh\n"), 0o755))
	return dir
}

func TestAnalyzeDisabled(t *testing.T) {
	summary := NewGradleSpotBugs(false, zap.NewNop()).Analyze(context.Background(), t.TempDir())
	assert.Equal(t, model.BugStatusNotRun, summary.Status)
}

func TestAnalyzeWithoutWrapper(t *testing.T) {
	summary := NewGradleSpotBugs(true, zap.NewNop()).Analyze(context.Background(), t.TempDir())
	assert.Equal(t, model.BugStatusNotRun, summary.Status)
	assert.Contains(t, summary.Note, "gradlew")
}

func TestAnalyzeCompilationFailed(t *testing.T) {
	run := func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		return []byte("error: cannot find symbol"), errors.New("exit status 1")
	}

	summary := NewGradleSpotBugs(true, zap.NewNop(), WithRunner(run)).Analyze(context.Background(), projectWithWrapper(t))
	assert.Equal(t, model.BugStatusCompilationFailed, summary.Status)
}

func TestAnalyzeNoReport(t *testing.T) {
	run := func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		return nil, nil
	}

	summary := NewGradleSpotBugs(true, zap.NewNop(), WithRunner(run)).Analyze(context.Background(), projectWithWrapper(t))
	assert.Equal(t, model.BugStatusNoReport, summary.Status)
}

func TestAnalyzeCompleted(t *testing.T) {
	root := projectWithWrapper(t)
	var calls []string

	run := func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		calls = append(calls, args[0])
		if args[0] == "spotbugsMain" {
			path := filepath.Join(dir, reportPath)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(reportXML), 0o644))
			return nil, errors.New("exit status 1")
		}
		return nil, nil
	}

	summary := NewGradleSpotBugs(true, zap.NewNop(), WithRunner(run)).Analyze(context.Background(), root)

	assert.Equal(t, []string{"compileJava", "spotbugsMain"}, calls)
	assert.Equal(t, model.BugStatusCompleted, summary.Status)
	assert.Equal(t, 3, summary.TotalBugs)
}

func TestAnalyzeTimeout(t *testing.T) {
	run := func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	g := NewGradleSpotBugs(true, zap.NewNop(), WithRunner(run), WithTimeout(10*time.Millisecond))
	summary := g.Analyze(context.Background(), projectWithWrapper(t))
	assert.Equal(t, model.BugStatusTimeout, summary.Status)
}
