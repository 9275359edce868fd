// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package gitadapter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

// Commit headers are marked with a leading NUL and split on the unit
// separator, so subjects and author names may contain any printable text.
const (
	commitMark = "\x00"
	fieldSep   = "\x1f"
	logFormat  = "--format=%x00%H%x1f%an%x1f%s"

	maxLogLine = 1024 * 1024
)

// bugfixWords mark a commit subject as a fix.
var bugfixWords = []string{"fix", "bug", "issue"}

// LogRunner returns the output of `git <args>` run in root.
type LogRunner func(ctx context.Context, root string, args ...string) ([]byte, error)

func execGit(ctx context.Context, root string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, "git", append([]string{"-C", root}, args...)...).Output()
}

// GitCLI reads per-file churn from `git log`. Paths in the result are
// relative to the analysed root, with forward slashes.
type GitCLI struct {
	logger *zap.Logger
	run    LogRunner
}

func NewGitCLI(logger *zap.Logger) *GitCLI {
	return NewGitCLIWithRunner(logger, execGit)
}

func NewGitCLIWithRunner(logger *zap.Logger, run LogRunner) *GitCLI {
	if logger == nil {
		logger = zap.NewNop()
	}
	if run == nil {
		run = execGit
	}
	return &GitCLI{logger: logger, run: run}
}

var _ ports.GitClient = (*GitCLI)(nil)

// CollectFileMetrics never fails for a tree without history; it returns an
// empty map instead.
func (g *GitCLI) CollectFileMetrics(ctx context.Context, root string) (map[string]*model.GitFileMetrics, error) {
	out, err := g.run(ctx, root,
		"-c", "core.quotePath=false",
		"log", "--numstat", "--relative", "--no-renames", logFormat)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		g.logger.Debug("git history unavailable", zap.String("root", root), zap.Error(err))
		return map[string]*model.GitFileMetrics{}, nil
	}

	metrics, err := parseNumstat(out)
	if err != nil {
		g.logger.Warn("git history truncated",
			zap.String("root", root), zap.Int("files", len(metrics)), zap.Error(err))
	}
	g.logger.Debug("git history read", zap.String("root", root), zap.Int("files", len(metrics)))
	return metrics, nil
}

type fileHistory struct {
	added, deleted, commits, fixes int
	authors                        map[string]struct{}
}

type commitHeader struct {
	author string
	bugfix bool
}

func parseHeader(line string) commitHeader {
	parts := strings.SplitN(strings.TrimPrefix(line, commitMark), fieldSep, 3)
	var h commitHeader
	if len(parts) > 1 {
		h.author = parts[1]
	}
	if len(parts) > 2 {
		subject := strings.ToLower(parts[2])
		for _, w := range bugfixWords {
			if strings.Contains(subject, w) {
				h.bugfix = true
				break
			}
		}
	}
	return h
}

// parseNumstat aggregates `git log --numstat` output by file. Binary
// entries and rename records are skipped. On a scan error the files
// aggregated so far are returned with it.
func parseNumstat(out []byte) (map[string]*model.GitFileMetrics, error) {
	history := make(map[string]*fileHistory)
	var current commitHeader

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLine)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, commitMark) {
			current = parseHeader(line)
			continue
		}

		// numstat rows are "<added>\t<deleted>\t<path>"; paths may hold spaces.
		cols := strings.SplitN(line, "\t", 3)
		if len(cols) != 3 || strings.Contains(cols[2], "=>") {
			continue
		}
		added, err := strconv.Atoi(cols[0])
		if err != nil {
			continue
		}
		deleted, err := strconv.Atoi(cols[1])
		if err != nil {
			continue
		}

		h := history[cols[2]]
		if h == nil {
			h = &fileHistory{authors: make(map[string]struct{})}
			history[cols[2]] = h
		}
		h.added += added
		h.deleted += deleted
		h.commits++
		if current.author != "" {
			h.authors[current.author] = struct{}{}
		}
		if current.bugfix {
			h.fixes++
		}
	}

	result := make(map[string]*model.GitFileMetrics, len(history))
	for path, h := range history {
		result[path] = &model.GitFileMetrics{
			FilePath:      path,
			LinesAdded:    h.added,
			LinesDeleted:  h.deleted,
			Commits:       h.commits,
			BugfixCommits: h.fixes,
			Authors:       len(h.authors),
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scan git log: %w", err)
	}
	return result, nil
}
