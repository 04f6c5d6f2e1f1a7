package reader

import (
	"sweet/internal/diag"
	"sweet/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil drops errors; reading continues either way
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
