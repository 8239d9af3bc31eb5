package fuzz

import (
	"testing"

	"github.com/maxjmartin/seqcontainer/pkg/parser"
)

func FuzzParser(f *testing.F) {
	seeds := []string{
		`[1,2,3]`,
		`$a + $b`,
		`$a + [1,2,3] * 2`,
		`pick($a, [1,0,2])`,
		`-$a << 2`,
		`~[0,1] ^ $x`,
		`1 + 2 * 3`,
		``,
		`(`,
		`[1,`,
		`$`,
		`pick(`,
		`1 < 2`,
		`/* comment */ 1`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		_, _ = parser.Compile(input)
	})
}
