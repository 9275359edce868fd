// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package lexical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"line comment keeps newline", "a // c\nb", "a \nb"},
		{"block comment", "a /* x */ b", "a  b"},
		{"string removed", `s = "if (x)"; f();`, `s = ; f();`},
		{"escaped quote", `"a\"b" + x`, ` + x`},
		{"char kept", `c = '?';`, `c = '?';`},
		{"comment marker in string", `s = "//"; t();`, `s = ; t();`},
		{"quote in comment", "/* \" */ x", " x"},
		{"no comments", "x = y / z;", "x = y / z;"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Strip(tc.in))
		})
	}
}

func TestStripComments(t *testing.T) {
	assert.Equal(t, `s = "// not"; `, StripComments(`s = "// not"; // yes`))
	assert.Equal(t, "a\nb", StripComments("a/* one\ntwo */\nb"))
	assert.Equal(t, `x = '"';`, StripComments(`x = '"';`))
}

func TestMaskKeepsOffsets(t *testing.T) {
	in := `a /* b */ "c" 'd' e`
	got := Mask(in)

	assert.Len(t, got, len(in))
	assert.Equal(t, "a"+strings.Repeat(" ", len(in)-2)+"e", got)
}

func TestMaskKeepsNewlines(t *testing.T) {
	assert.Equal(t, "x     \ny", Mask("x // c\ny"))
	assert.Equal(t, "  \n  z", Mask("/*\n*/z"))
}
