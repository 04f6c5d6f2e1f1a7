package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sweet/internal/diag"
	"sweet/internal/source"
)

type palette struct {
	err, warn, info, note, caret, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan, color.Bold),
		note:  color.New(color.FgBlue, color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
		dim:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.caret, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes bag in human-readable form, in bag order (call bag.Sort
// first). Each diagnostic is printed as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with the span underlined ^~~~ and, when
// ShowNotes is set, every note in the same form.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sev := p.severity(d.Severity)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(d.Primary, fs, opts), sev.Sprint(d.Severity.String()), d.Code.ID(), d.Message)
		snippet(w, d.Primary, fs, opts, p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(n.Span, fs, opts), n.Msg)
		}
	}
}

func location(sp source.Span, fs *source.FileSet, opts PrettyOpts) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col)
}

// snippet prints the lines around sp with a caret line under the span.
// Columns are display widths, so wide runes keep the carets aligned.
func snippet(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, max(lines, start.Line))
	gutter := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		fmt.Fprintf(w, "%s %s\n", p.dim.Sprintf("%*d |", gutter, ln), text)
		if ln != start.Line {
			continue
		}
		prefix := columnPrefix(text, start.Col)
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			width = max(runewidth.StringWidth(columnSlice(text, start.Col, end.Col)), 1)
		}
		carets := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.dim.Sprintf("%*s |", gutter, ""), strings.Repeat(" ", runewidth.StringWidth(prefix)), p.caret.Sprint(carets))
	}
}

// columnPrefix returns text before the 1-based byte column col.
func columnPrefix(text string, col uint32) string {
	idx := min(int(col)-1, len(text))
	if idx < 0 {
		return ""
	}
	return text[:idx]
}

func columnSlice(text string, from, to uint32) string {
	a := min(max(int(from)-1, 0), len(text))
	b := min(max(int(to)-1, a), len(text))
	return text[a:b]
}
