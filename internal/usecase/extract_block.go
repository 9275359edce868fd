// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/lexical"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

// ErrNoBlock is returned when no '{' in code follows the requested position.
var ErrNoBlock = errors.New("no block at or after position")

// ExtractBlockRequest selects a block by byte Offset or, when Line is
// positive, by 1-based Line. The first '{' in code at or after the
// position opens the block.
type ExtractBlockRequest struct {
	Path   string
	Offset int
	Line   int
}

type ExtractBlockResult struct {
	Path       string            `json:"path"`
	Block      lexical.Block     `json:"-"`
	Text       string            `json:"text"`
	StartLine  int               `json:"startLine"`
	EndLine    int               `json:"endLine"`
	Complexity int               `json:"complexity"`
	Decisions  lexical.Decisions `json:"decisions"`
}

type ExtractBlockUseCase struct {
	reader ports.FileReader
}

func NewExtractBlockUseCase(reader ports.FileReader) *ExtractBlockUseCase {
	return &ExtractBlockUseCase{reader: reader}
}

func (uc *ExtractBlockUseCase) Execute(req ExtractBlockRequest) (*ExtractBlockResult, error) {
	if req.Path == "" {
		return nil, errors.New("path is required")
	}

	src, err := uc.reader.ReadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.Path, err)
	}
	text := string(src)

	from := req.Offset
	if req.Line > 0 {
		from, err = lineOffset(text, req.Line)
		if err != nil {
			return nil, err
		}
	}
	if from < 0 || from > len(text) {
		return nil, fmt.Errorf("offset %d outside file of %d bytes", from, len(text))
	}

	start := lexical.NextBrace(text, from)
	if start < 0 {
		return nil, fmt.Errorf("%w %d in %s", ErrNoBlock, from, req.Path)
	}

	block, err := lexical.ExtractBlock(text, start)
	if err != nil {
		return nil, fmt.Errorf("extract block in %s: %w", req.Path, err)
	}

	decisions := lexical.CountDecisions(block.Text)
	return &ExtractBlockResult{
		Path:       req.Path,
		Block:      block,
		Text:       block.Text,
		StartLine:  lexical.LineOf(text, block.Start),
		EndLine:    lexical.LineOf(text, block.End),
		Complexity: 1 + decisions.Total(),
		Decisions:  decisions,
	}, nil
}

// lineOffset returns the offset of the first byte of the 1-based line.
func lineOffset(text string, line int) (int, error) {
	offset := 0
	for n := 1; n < line; n++ {
		i := strings.IndexByte(text[offset:], '\n')
		if i < 0 {
			return 0, fmt.Errorf("line %d past end of file (%d lines)", line, n)
		}
		offset += i + 1
	}
	return offset, nil
}
