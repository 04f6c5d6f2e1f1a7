package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"sweet/internal/source"
)

// FormatShort renders one line per diagnostic ("error HYG3005 a.js:3:7
// message"), with notes on following lines when includeNotes is set. Input
// order is preserved; call Bag.Sort first for stable output.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, shortLine(d.Severity.Label(), d.Code, d.Primary, d.Message, fs))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, shortLine("note", d.Code, n.Span, n.Msg, fs))
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(label string, code Code, span source.Span, msg string, fs *source.FileSet) string {
	path := "<unknown>"
	if f := fs.Get(span.File); f != nil {
		path = normalizePath(f.Path)
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s %s %s:%d:%d %s", label, code.ID(), path, start.Line, start.Col, sanitizeMessage(msg))
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
