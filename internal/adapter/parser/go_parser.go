// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/lexical"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

// GoParser scores Go functions from the syntax tree. Go conditions carry no
// parentheses, so the lexical keyword patterns do not apply; decisions are
// counted on the same rule from AST nodes instead.
type GoParser struct{}

func NewGoParser() *GoParser {
	return &GoParser{}
}

var _ ports.CodeParser = (*GoParser)(nil)

func (p *GoParser) Name() string {
	return "go"
}

func (p *GoParser) SupportsFile(path string) bool {
	return strings.HasSuffix(path, ".go")
}

func (p *GoParser) ParseFile(path string, src []byte) (*model.FileMetrics, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	fm := &model.FileMetrics{
		Path:         path,
		Language:     model.LanguageGo,
		Package:      file.Name.Name,
		LOC:          countLOC(string(src)),
		PrimaryClass: file.Name.Name,
	}

	var imports []string
	for _, imp := range file.Imports {
		if ip, err := strconv.Unquote(imp.Path.Value); err == nil {
			imports = append(imports, ip)
		}
	}
	fm.Imports = uniqueSorted(imports)
	fm.ImportCount = len(file.Imports)

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Body == nil {
				continue
			}
			fm.Methods = append(fm.Methods, analyzeGoFunction(path, fset, d, fm.PrimaryClass))
		case *ast.GenDecl:
			if d.Tok == token.VAR {
				fm.Fields += len(d.Specs)
			}
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.GoStmt:
			fm.ThreadStarts++
			fm.ThreadUsages++
			fm.ThreadPoints = append(fm.ThreadPoints, model.ThreadPoint{
				FilePath:    path,
				Line:        fset.Position(x.Pos()).Line,
				Description: "go statement",
			})
		case *ast.SelectorExpr:
			if x.Sel.Name == "Lock" || x.Sel.Name == "RLock" {
				fm.SyncBlocks++
			}
		}
		return true
	})

	return fm, nil
}

func analyzeGoFunction(path string, fset *token.FileSet, fdecl *ast.FuncDecl, pkg string) model.MethodRecord {
	class := pkg
	if recv := receiverType(fdecl); recv != "" {
		class = recv
	}

	start := fset.Position(fdecl.Pos()).Line
	lbrace := fset.Position(fdecl.Body.Lbrace).Line
	end := fset.Position(fdecl.Body.Rbrace).Line

	d := countGoDecisions(fdecl.Body)

	return model.MethodRecord{
		Name:       class + "." + fdecl.Name.Name,
		Class:      class,
		Method:     fdecl.Name.Name,
		FilePath:   path,
		Line:       start,
		EndLine:    end,
		Lines:      end - lbrace + 1,
		Complexity: 1 + d.Total(),
		Decisions:  d,
	}
}

// countGoDecisions applies the branch counting rule to a function body:
// if, loops, non-default cases and each && or ||. Function literals count
// toward the enclosing function.
func countGoDecisions(body *ast.BlockStmt) lexical.Decisions {
	var d lexical.Decisions
	ast.Inspect(body, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.IfStmt:
			d.If++
		case *ast.ForStmt, *ast.RangeStmt:
			d.For++
		case *ast.CaseClause:
			if x.List != nil {
				d.Case++
			}
		case *ast.CommClause:
			if x.Comm != nil {
				d.Case++
			}
		case *ast.BinaryExpr:
			switch x.Op {
			case token.LAND:
				d.And++
			case token.LOR:
				d.Or++
			}
		}
		return true
	})
	return d
}

func receiverType(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}
