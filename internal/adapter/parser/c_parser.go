// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/lexical"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

var (
	cNamespaceRe = regexp.MustCompile(`\bnamespace\s+([\w.:]+)`)
	cClassRe     = regexp.MustCompile(`\b(?:class|struct)\s+(\w+)\s*[:{\n]`)
)

// CParser handles the brace languages without a dedicated parser: C, C++
// and C#. Function headers are recognised line by line outside of function
// bodies; each body is then cut out and scored by the lexical package.
type CParser struct {
	funcHeaderRe *regexp.Regexp
	name         string
	language     model.Language
	extensions   []string
}

func NewCParser() *CParser {
	return newCFamilyParser("c", model.LanguageC, ".c", ".h")
}

func NewCppParser() *CParser {
	return newCFamilyParser("c++", model.LanguageCpp, ".cpp", ".hpp", ".cc", ".hh", ".cxx")
}

func NewCSharpParser() *CParser {
	return newCFamilyParser("c#", model.LanguageCSharp, ".cs")
}

func newCFamilyParser(name string, lang model.Language, exts ...string) *CParser {
	return &CParser{
		funcHeaderRe: regexp.MustCompile(`\b([a-zA-Z_~][\w:~]*)\s*\([^()]*\)\s*(?:(?:const|override|noexcept|final)\s*)*$`),
		name:         name,
		language:     lang,
		extensions:   exts,
	}
}

var _ ports.CodeParser = (*CParser)(nil)

func (p *CParser) Name() string {
	return p.name
}

func (p *CParser) SupportsFile(path string) bool {
	for _, ext := range p.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func (p *CParser) ParseFile(path string, src []byte) (*model.FileMetrics, error) {
	text := string(src)
	masked := lexical.Mask(text)

	fm := &model.FileMetrics{
		Path:         path,
		Language:     p.language,
		Package:      model.DefaultPackage,
		LOC:          countLOC(text),
		PrimaryClass: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
	if m := cNamespaceRe.FindStringSubmatch(masked); m != nil {
		fm.Package = strings.ReplaceAll(m[1], "::", ".")
	}
	if m := cClassRe.FindStringSubmatch(masked); m != nil && p.language != model.LanguageC {
		fm.PrimaryClass = m[1]
	}

	var headerBuf strings.Builder
	headerStart := -1
	skipUntil := -1
	offset := 0

	for i, line := range strings.Split(masked, "\n") {
		lineStart := offset
		offset += len(line) + 1

		if lineStart <= skipUntil {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			headerBuf.Reset()
			headerStart = -1
			continue
		}

		if headerStart == -1 {
			headerStart = i + 1
		}
		if headerBuf.Len() > 0 {
			headerBuf.WriteByte(' ')
		}
		headerBuf.WriteString(trimmed)

		brace := strings.IndexByte(line, '{')
		if brace < 0 {
			if strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}") {
				headerBuf.Reset()
				headerStart = -1
			}
			continue
		}

		candidate := headerBuf.String()
		if idx := strings.Index(candidate, "{"); idx >= 0 {
			candidate = strings.TrimSpace(candidate[:idx])
		}
		declLine := headerStart
		headerBuf.Reset()
		headerStart = -1

		m := p.funcHeaderRe.FindStringSubmatch(candidate)
		if m == nil || isControlKeyword(m[1]) {
			continue
		}

		class, method := fm.PrimaryClass, m[1]
		if idx := strings.LastIndex(m[1], "::"); idx >= 0 {
			class, method = m[1][:idx], m[1][idx+2:]
		}

		rec := model.MethodRecord{
			Name:     class + "." + method,
			Class:    class,
			Method:   method,
			FilePath: path,
			Line:     declLine,
		}

		rec, block, err := scoreBlock(text, lineStart+brace, rec)
		if err != nil {
			fm.SkippedMethods = append(fm.SkippedMethods, rec.Name)
			continue
		}

		fm.Methods = append(fm.Methods, rec)
		skipUntil = block.End
	}

	return fm, nil
}
