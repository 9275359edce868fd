// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

var javaParserPool = sync.Pool{
	New: func() interface{} {
		parser := sitter.NewParser()
		parser.SetLanguage(java.GetLanguage())
		return parser
	},
}

// TreeSitterLocator finds method and constructor bodies from a Java syntax
// tree. Only the brace offsets come from the tree; extraction and scoring
// stay lexical, so both locators produce comparable scores.
type TreeSitterLocator struct{}

func NewTreeSitterLocator() *TreeSitterLocator {
	return &TreeSitterLocator{}
}

var _ ports.MethodLocator = (*TreeSitterLocator)(nil)

func (l *TreeSitterLocator) Name() string {
	return EngineAST
}

func (l *TreeSitterLocator) Locate(src []byte) ([]ports.MethodSite, error) {
	parser := javaParserPool.Get().(*sitter.Parser)
	defer javaParserPool.Put(parser)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse java: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parse java: no syntax tree")
	}
	defer tree.Close()

	var sites []ports.MethodSite
	walkJavaMethods(tree.RootNode(), src, "", &sites)
	return sites, nil
}

func walkJavaMethods(node *sitter.Node, src []byte, class string, sites *[]ports.MethodSite) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			class = name.Content(src)
		}

	case "method_declaration", "constructor_declaration", "compact_constructor_declaration":
		body := node.ChildByFieldName("body")
		name := node.ChildByFieldName("name")
		if body != nil && name != nil {
			*sites = append(*sites, ports.MethodSite{
				Name:        name.Content(src),
				Class:       class,
				BraceOffset: int(body.StartByte()),
				Line:        int(name.StartPoint().Row) + 1,
			})
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		walkJavaMethods(node.NamedChild(i), src, class, sites)
	}
}

// NewMethodLocator returns the locator for an engine name.
func NewMethodLocator(engine string) (ports.MethodLocator, error) {
	switch engine {
	case "", EngineRegex:
		return NewRegexLocator(), nil
	case EngineAST:
		return NewTreeSitterLocator(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want %s or %s)", engine, EngineRegex, EngineAST)
	}
}
