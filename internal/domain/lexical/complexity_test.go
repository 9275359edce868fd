// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateComplexity(t *testing.T) {
	cases := []struct {
		name  string
		block string
		want  int
	}{
		{"empty", "", 1},
		{"straight line", `{ return 1; }`, 1},
		{"if else", `{ if (a) { x(); } else { y(); } }`, 2},
		{"boolean operators", `{ if (a && b || c) return 1; }`, 4},
		{"keywords in string", `{ String s = "if (x) for (y) while(z)"; }`, 1},
		{"keywords in comments", "{ // if (a)\n /* while (b) */ return 1; }", 1},
		{"loops", `{ for (int i = 0; i < n; i++) { while (x) {} } }`, 3},
		{"switch", `{ switch (x) { case 1: break; case 2: break; default: } }`, 3},
		{"catch", `{ try { f(); } catch (Exception e) { g(); } }`, 2},
		{"ternary", `{ return a ? b : c; }`, 2},
		{"identifiers containing keywords", `{ notify(); forEach(x); whileTrue(); }`, 1},
		{"else if not merged", `{ if (a) {} else if (b) {} else {} }`, 3},
		{"char literal question mark", `{ char q = '?'; }`, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateComplexity(tc.block))
		})
	}
}

func TestCountDecisions(t *testing.T) {
	d := CountDecisions(`{ if (a && b || c) { for (;;) {} } return x ? 1 : 2; }`)

	assert.Equal(t, Decisions{If: 1, For: 1, Ternary: 1, And: 1, Or: 1}, d)
	assert.Equal(t, 5, d.Total())
}

func TestEstimateComplexityMatchesDecisions(t *testing.T) {
	block := `{ while (x) { try { y(); } catch (E e) {} catch (F f) {} } }`

	assert.Equal(t, 1+CountDecisions(block).Total(), EstimateComplexity(block))
	assert.Equal(t, 2, CountDecisions(block).Catch)
}
