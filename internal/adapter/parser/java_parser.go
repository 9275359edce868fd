// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/lexical"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

const javadocMaxGap = 200

var (
	javaPackageRe  = regexp.MustCompile(`package\s+([\w.]+)\s*;`)
	javaTypeDeclRe = regexp.MustCompile(`(?:public\s+)?(?:abstract\s+)?\b(class|interface|enum|record)\s+(\w+)`)
	javaPrimaryRe  = regexp.MustCompile(`(public|private|protected)?\s*(abstract|final|static)?\s*\bclass\s+(\w+)`)
	javaImportRe   = regexp.MustCompile(`import\s+([\w.]+)\s*;`)
	javaMainRe     = regexp.MustCompile(`public\s+static\s+void\s+main\s*\(\s*String`)
	javadocRe      = regexp.MustCompile(`(?s)/\*\*(.*?)\*/`)
	javadocLineRe  = regexp.MustCompile(`^\s*\*\s?`)

	javaFieldRe    = regexp.MustCompile(`^\s*(public|private|protected|static|final|\s)+\s+[\w<>\[\]]+\s+\w+\s*(=|;)`)
	javaSyncRe     = regexp.MustCompile(`synchronized\s*[({]`)
	javaExecutorRe = regexp.MustCompile(`ExecutorService|ScheduledExecutorService|ThreadPoolExecutor`)
	javaNewThread  = regexp.MustCompile(`new\s+Thread\s*\(`)
)

var threadStartPatterns = []*regexp.Regexp{
	javaNewThread,
	regexp.MustCompile(`\.(execute|submit)\s*\(`),
	regexp.MustCompile(`CompletableFuture\.(runAsync|supplyAsync)\s*\(`),
	regexp.MustCompile(`\.start\s*\(\s*\)`),
	regexp.MustCompile(`ForkJoinPool`),
}

type threadPattern struct {
	re          *regexp.Regexp
	description string
}

var threadPointPatterns = []threadPattern{
	{javaNewThread, "new Thread"},
	{regexp.MustCompile(`Executors\.new\w+ThreadPool`), "ExecutorService"},
	{regexp.MustCompile(`ScheduledExecutorService`), "ScheduledExecutorService"},
	{regexp.MustCompile(`ExecutorService`), "ExecutorService"},
	{regexp.MustCompile(`implements\s+Runnable`), "implements Runnable"},
	{regexp.MustCompile(`extends\s+Thread`), "extends Thread"},
	{regexp.MustCompile(`CompletableFuture`), "CompletableFuture"},
	{regexp.MustCompile(`@Async`), "@Async annotation"},
}

// JavaParser extracts package, type, method and concurrency facts from a
// Java source file. Method bodies are found by a MethodLocator and scored
// by the lexical package.
type JavaParser struct {
	locator ports.MethodLocator
}

func NewJavaParser(locator ports.MethodLocator) *JavaParser {
	if locator == nil {
		locator = NewRegexLocator()
	}
	return &JavaParser{locator: locator}
}

var _ ports.CodeParser = (*JavaParser)(nil)

func (p *JavaParser) Name() string {
	return "java"
}

func (p *JavaParser) SupportsFile(path string) bool {
	return strings.HasSuffix(path, ".java")
}

func (p *JavaParser) ParseFile(path string, src []byte) (*model.FileMetrics, error) {
	text := string(src)
	masked := lexical.Mask(text)

	pkg := model.DefaultPackage
	if m := javaPackageRe.FindStringSubmatch(masked); m != nil {
		pkg = m[1]
	}

	fm := &model.FileMetrics{
		Path:         path,
		Language:     model.LanguageJava,
		Package:      pkg,
		LOC:          countLOC(text),
		PrimaryClass: primaryClass(masked),
		Classes:      javaClasses(text, masked, path, pkg),
	}

	sites, err := p.locator.Locate(src)
	if err != nil {
		return nil, fmt.Errorf("locate methods in %s: %w", path, err)
	}

	var bodies []lexical.Block
	for _, site := range sites {
		class := site.Class
		if class == "" {
			class = fm.PrimaryClass
		}

		rec := model.MethodRecord{
			Name:     class + "." + site.Name,
			Class:    class,
			Method:   site.Name,
			FilePath: path,
			Line:     site.Line,
		}

		rec, block, err := scoreBlock(text, site.BraceOffset, rec)
		if err != nil {
			fm.SkippedMethods = append(fm.SkippedMethods, rec.Name)
			continue
		}

		fm.Methods = append(fm.Methods, rec)
		bodies = append(bodies, block)
	}

	lines := strings.Split(masked, "\n")

	var imports []string
	for _, m := range javaImportRe.FindAllStringSubmatch(masked, -1) {
		imported := m[1]
		idx := strings.LastIndex(imported, ".")
		if idx <= 0 {
			continue
		}
		if importedPkg := imported[:idx]; importedPkg != pkg {
			imports = append(imports, importedPkg)
		}
	}
	fm.Imports = uniqueSorted(imports)

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "import ") {
			fm.ImportCount++
		}
		for _, tp := range threadPointPatterns {
			if tp.re.MatchString(line) {
				fm.ThreadPoints = append(fm.ThreadPoints, model.ThreadPoint{
					FilePath:    path,
					Line:        i + 1,
					Description: tp.description,
				})
			}
		}
	}

	for _, re := range threadStartPatterns {
		fm.ThreadStarts += len(re.FindAllStringIndex(masked, -1))
	}
	fm.ThreadUsages = len(javaNewThread.FindAllStringIndex(masked, -1))
	fm.ExecutorUsages = len(javaExecutorRe.FindAllStringIndex(masked, -1))
	fm.SyncBlocks = len(javaSyncRe.FindAllStringIndex(masked, -1))

	// Fields are declarations left at class level once method bodies are gone.
	for _, line := range strings.Split(blankRanges(masked, bodies), "\n") {
		if javaFieldRe.MatchString(line) {
			fm.Fields++
		}
	}

	return fm, nil
}

func primaryClass(masked string) string {
	if m := javaPrimaryRe.FindStringSubmatch(masked); m != nil {
		return m[3]
	}
	return model.UnknownClass
}

func javaClasses(text, masked, path, pkg string) []model.ClassRecord {
	isMain := javaMainRe.MatchString(masked)

	var classes []model.ClassRecord
	for _, m := range javaTypeDeclRe.FindAllStringSubmatchIndex(masked, -1) {
		name := masked[m[4]:m[5]]
		qualified := name
		if pkg != model.DefaultPackage {
			qualified = pkg + "." + name
		}

		classes = append(classes, model.ClassRecord{
			Name:          name,
			Kind:          model.ClassKind(masked[m[2]:m[3]]),
			Package:       pkg,
			QualifiedName: qualified,
			FilePath:      path,
			Javadoc:       javadocBefore(text, m[0]),
			IsMain:        isMain,
		})
	}
	return classes
}

// javadocBefore returns the cleaned text of the last Javadoc comment that
// ends less than javadocMaxGap bytes before pos.
func javadocBefore(text string, pos int) string {
	all := javadocRe.FindAllStringSubmatchIndex(text[:pos], -1)
	if len(all) == 0 {
		return ""
	}
	last := all[len(all)-1]
	if pos-last[1] >= javadocMaxGap {
		return ""
	}

	var cleaned []string
	for _, line := range strings.Split(text[last[2]:last[3]], "\n") {
		line = strings.TrimSpace(javadocLineRe.ReplaceAllString(line, ""))
		if line != "" && !strings.HasPrefix(line, "@") {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, " ")
}
