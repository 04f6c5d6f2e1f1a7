package fuzztests

import "testing"

const maxSeedBytes = 64 << 10 // 64 KiB

var sourceSeeds = []string{
	"",
	"var x = 1;\nfoo(x, y.z)",
	"tmp = tmp",
	"function f(a, b) { return a + b; }",
	"if (x) { y = [1, 2, 3]; } else { z = {a: 1}; }",
	"let s = 'single' + \"double\" + `tmpl ${a + `inner ${b}`} end`;",
	"x = /ab+c/gi.test(y) ? 0x1F : 1e-3;",
	"#`foo (bar) baz`",
	"aé = b́;",
	"f(x", "f)x(", "{ ] }", "'unterminated", "/* open comment",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range sourceSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
