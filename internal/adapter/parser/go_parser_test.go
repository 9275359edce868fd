// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSample = `package sample

import "sync"

var mu sync.Mutex

type Box struct{}

func (b *Box) Get(x int) int {
	if x > 0 && x < 10 {
		return 1
	}
	for i := range 3 {
		_ = i
	}
	switch x {
	case 1:
	default:
	}
	go func() {}()
	mu.Lock()
	return 0
}

func helper() {}
`

func TestGoParser(t *testing.T) {
	fm, err := NewGoParser().ParseFile("sample.go", []byte(goSample))
	require.NoError(t, err)

	assert.Equal(t, "sample", fm.Package)
	assert.Equal(t, []string{"sync"}, fm.Imports)
	assert.Equal(t, 1, fm.Fields)
	assert.Equal(t, 1, fm.ThreadStarts)
	assert.Equal(t, 1, fm.SyncBlocks)

	methods := methodsByName(fm)
	require.Len(t, methods, 2)

	get := methods["Box.Get"]
	assert.Equal(t, 5, get.Complexity)
	assert.Equal(t, 1, get.Decisions.Case)
	assert.Equal(t, 9, get.Line)
	assert.Equal(t, 23, get.EndLine)

	assert.Equal(t, 1, methods["sample.helper"].Complexity)
}

func TestGoParserSyntaxError(t *testing.T) {
	_, err := NewGoParser().ParseFile("bad.go", []byte("package x\nfunc {"))
	assert.Error(t, err)
}
