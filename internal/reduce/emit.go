package reduce

import "strings"

// emitter joins rendered tokens, breaking lines where the source did.
type emitter struct {
	sb   strings.Builder
	line uint32
	prev string
}

var (
	noSpaceBefore = map[string]bool{",": true, ";": true, ")": true, "]": true, ".": true, "?.": true, "++": true, "--": true}
	noSpaceAfter  = map[string]bool{"(": true, "[": true, ".": true, "?.": true, "!": true, "~": true}
)

func (e *emitter) word(text string, line uint32) {
	switch {
	case e.sb.Len() == 0:
	case line > e.line && e.line != 0:
		e.sb.WriteByte('\n')
	case noSpaceBefore[text] || noSpaceAfter[e.prev]:
	default:
		e.sb.WriteByte(' ')
	}
	e.sb.WriteString(text)
	if line > e.line {
		e.line = line
	}
	e.prev = text
}

func (e *emitter) String() string { return e.sb.String() }
