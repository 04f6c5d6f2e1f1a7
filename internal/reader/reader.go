package reader

import (
	"fmt"
	"strings"

	"sweet/internal/binding"
	"sweet/internal/diag"
	"sweet/internal/source"
	"sweet/internal/syntax"
	"sweet/internal/token"
)

// Result is the output of Read.
type Result struct {
	Items    []*syntax.Syntax // top-level syntax, ending with an EOF leaf
	Bindings *binding.Map     // shared by every node in Items
	Tokens   int              // leaf tokens read, EOF excluded
}

type reader struct {
	lx     *Lexer
	ctx    *syntax.Syntax // carries the shared binding map
	tokens int
}

// Read reads the whole file.
func Read(file *source.File, opts Options) Result {
	r := &reader{
		lx:  New(file, opts),
		ctx: syntax.OfToken(token.Token{}, nil),
	}
	items, _, _ := r.readUntil("")
	return Result{Items: items, Bindings: r.ctx.Bindings(), Tokens: r.tokens}
}

// ReadString registers src as a virtual file and reads it.
func ReadString(fs *source.FileSet, name, src string, opts Options) Result {
	id := fs.AddVirtual(name, []byte(src))
	return Read(fs.Get(id), opts)
}

func (r *reader) leaf(tok token.Token) *syntax.Syntax {
	if tok.Kind != token.EOS {
		r.tokens++
	}
	return syntax.OfToken(tok, r.ctx)
}

// readUntil reads elements until the closer text (a closing delimiter or the
// syntax template backquote) or EOF. The EOF leaf is kept only at top level
// (closer == ""). ok is false when EOF came first.
func (r *reader) readUntil(closer string) (items []*syntax.Syntax, end token.Token, ok bool) {
	items = []*syntax.Syntax{}
	for {
		r.lx.skipTrivia()
		if r.lx.quoteDepth == 0 && r.lx.cursor.Peek() == '`' {
			items = append(items, r.readTemplate())
			continue
		}

		tok := r.lx.Next()
		switch {
		case tok.Kind == token.EOS:
			if closer == "" {
				items = append(items, r.leaf(tok))
			}
			return items, tok, false

		case tok.Kind.Closing() || tok.Value == "`":
			if tok.Value == closer {
				return items, tok, true
			}
			if closer == "" {
				r.lx.errLex(diag.SynUnmatchedCloser, tok.Span, fmt.Sprintf("unexpected %q with no open delimiter", tok.Value))
			} else {
				r.lx.errLex(diag.SynMismatchedDelimiter, tok.Span, fmt.Sprintf("expected %q, found %q", closer, tok.Value))
			}

		case tok.Kind.Opening():
			items = append(items, r.readGroup(tok, delimiterText(tok.Kind.Closer())))

		case tok.Kind == token.Punctuator && tok.Value == syntax.SyntaxTemplateMarker:
			r.lx.quoteDepth++
			items = append(items, r.readGroup(tok, "`"))
			r.lx.quoteDepth--

		case tok.Kind == token.Invalid:
			// already reported by the lexer

		default:
			items = append(items, r.leaf(tok))
		}
	}
}

// readGroup reads the rest of a group opened by open. A missing closer is
// reported at the opener and synthesised at EOF.
func (r *reader) readGroup(open token.Token, closer string) *syntax.Syntax {
	inner, end, ok := r.readUntil(closer)
	if !ok {
		diag.ReportError(r.lx.opts.Reporter, diag.SynUnclosedDelimiter, open.Span, fmt.Sprintf("unclosed %q", open.Value)).
			WithNote(end.Span, fmt.Sprintf("expected %q before end of file", closer)).
			Emit()
		end = token.Token{Kind: token.PunctuatorKind(closer), Value: closer, Span: end.Span, Start: end.Start}
	}
	group := make([]*syntax.Syntax, 0, len(inner)+2)
	group = append(group, r.leaf(open))
	group = append(group, inner...)
	group = append(group, r.leaf(end))
	return syntax.Of(syntax.Token{Group: group}, r.ctx)
}

// readTemplate reads a template literal starting at the backquote. Each
// ${...} becomes a brace group whose opener spans the two bytes "${".
func (r *reader) readTemplate() *syntax.Syntax {
	c := &r.lx.cursor
	start := c.Mark()
	c.Bump() // '`'

	var items []syntax.TemplateElement
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			items = append(items, syntax.TemplateElement{Text: text.String()})
			text.Reset()
		}
	}

	closed := false
	for !closed {
		if c.EOF() {
			r.lx.errLex(diag.LexUnterminatedTemplate, c.SpanFrom(start), "unterminated template literal")
			break
		}
		switch {
		case c.Peek() == '`':
			c.Bump()
			closed = true
		case c.Peek() == '\\':
			text.WriteByte(c.Bump())
			if !c.EOF() {
				text.WriteByte(c.Bump())
			}
		case c.HasPrefix("${"):
			flush()
			m := c.Mark()
			c.Advance(2)
			sp := c.SpanFrom(m)
			pos := r.lx.file.Position(sp.Start)
			open := token.Token{Kind: token.LBrace, Value: "{", Span: sp, Start: &pos}
			r.lx.prev = open
			items = append(items, syntax.TemplateElement{Interp: r.readGroup(open, "}")})
		default:
			text.WriteByte(c.Bump())
		}
	}
	flush()

	sp := c.SpanFrom(start)
	pos := r.lx.file.Position(sp.Start)
	tok := token.Token{Kind: token.Template, Value: r.lx.text(sp), Span: sp, Start: &pos}
	r.lx.prev = tok
	r.tokens++
	return syntax.Of(syntax.Token{Token: tok, Items: items}, r.ctx)
}

func delimiterText(k token.Kind) string {
	switch k {
	case token.RParen:
		return ")"
	case token.RBrace:
		return "}"
	case token.RBrack:
		return "]"
	}
	return ""
}
