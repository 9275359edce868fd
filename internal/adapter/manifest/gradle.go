// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

// Package manifest reads external library declarations from build files.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/lexical"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

const unknownVersion = "unknown"

var buildFiles = []string{"build.gradle", "build.gradle.kts"}

var (
	dependenciesRe = regexp.MustCompile(`\bdependencies\s*\{`)
	declarationRe  = regexp.MustCompile(
		`(implementation|testImplementation|runtimeOnly|testRuntimeOnly|compileOnly|api)\s*\(?\s*['"]([^'"]+)['"]`,
	)
)

type GradleReader struct {
	logger *zap.Logger
}

func NewGradleReader(logger *zap.Logger) *GradleReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradleReader{logger: logger}
}

var _ ports.ManifestReader = (*GradleReader)(nil)

// ReadLibraries parses the first Gradle build file found in root. A project
// without one has no libraries; that is not an error.
func (r *GradleReader) ReadLibraries(ctx context.Context, root string) ([]model.Library, error) {
	for _, name := range buildFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(root, name)
		src, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		libs, err := ParseGradle(string(src))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		r.logger.Debug("read build file", zap.String("path", path), zap.Int("libraries", len(libs)))
		return libs, nil
	}

	r.logger.Warn("no gradle build file found", zap.String("root", root))
	return nil, nil
}

// ParseGradle returns the libraries declared in the top-level dependencies
// blocks of a Gradle script. Nested blocks such as buildscript.dependencies
// are ignored, and closures inside a dependencies block do not cut it short.
func ParseGradle(text string) ([]model.Library, error) {
	masked := lexical.Mask(text)

	var libs []model.Library
	for _, loc := range dependenciesRe.FindAllStringIndex(masked, -1) {
		brace := loc[1] - 1
		if depthAt(masked, brace) != 0 {
			continue
		}

		block, err := lexical.ExtractBlock(text, brace)
		if err != nil {
			return libs, fmt.Errorf("dependencies block at line %d: %w", lexical.LineOf(text, brace), err)
		}

		for _, m := range declarationRe.FindAllStringSubmatch(lexical.StripComments(block.Text), -1) {
			if lib, ok := parseCoordinate(m[2], m[1]); ok {
				libs = append(libs, lib)
			}
		}
	}
	return libs, nil
}

func parseCoordinate(coord, scope string) (model.Library, bool) {
	parts := strings.Split(coord, ":")
	if len(parts) < 2 {
		return model.Library{}, false
	}

	version := unknownVersion
	if len(parts) > 2 && parts[2] != "" {
		version = parts[2]
	}

	return model.Library{
		Group:    parts[0],
		Artifact: parts[1],
		Version:  version,
		Scope:    scope,
	}, true
}

// depthAt is the brace depth at offset in text that is already masked.
func depthAt(masked string, offset int) int {
	prefix := masked[:offset]
	return strings.Count(prefix, "{") - strings.Count(prefix, "}")
}
