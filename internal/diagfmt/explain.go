package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sweet/internal/binding"
	"sweet/internal/syntax"
)

// ExplainOpts configures Explain.
type ExplainOpts struct {
	Color    bool
	Location string // "path:line:col" of the identifier, may be empty
	MaxWidth int    // column width limit; 0 means 48
}

type explainStyles struct {
	title, header, winner, dropped, plain lipgloss.Style
}

func newExplainStyles(enabled bool) explainStyles {
	if !enabled {
		s := lipgloss.NewStyle()
		return explainStyles{s, s, s, s, s}
	}
	return explainStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		header:  lipgloss.NewStyle().Underline(true),
		winner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		dropped: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		plain:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
}

// Explain prints how an identifier resolved: its use-site scopes, every
// record registered for the name, which of them passed the subset filter
// and which won. all holds every record of the name; resolveErr is the
// error Explain or Resolve returned, if any.
func Explain(w io.Writer, r syntax.Resolution, all []binding.Record, resolved string, resolveErr error, opts ExplainOpts) {
	st := newExplainStyles(opts.Color)
	limit := opts.MaxWidth
	if limit <= 0 {
		limit = 48
	}

	title := fmt.Sprintf("%s at phase %d", r.Name, r.Phase)
	if opts.Location != "" {
		title += " (" + opts.Location + ")"
	}
	fmt.Fprintln(w, st.title.Render(title))
	fmt.Fprintf(w, "use-site scopes: %s\n", r.UseSite)

	rows := [][]string{{"#", "scopes", "binding", "status"}}
	for i, rec := range all {
		target := rec.Binding.String()
		if rec.HasAlias() {
			if stx, ok := rec.Alias.(*syntax.Syntax); ok {
				target = "alias " + stx.String()
			} else {
				target = "alias"
			}
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), rec.Scopes.String(), target, recordStatus(r, rec)})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], min(runewidth.StringWidth(cell), limit))
		}
	}
	for i, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			cells[c] = pad(truncate(cell, limit), widths[c])
		}
		line := strings.TrimRight(strings.Join(cells, "  "), " ")
		switch {
		case i == 0:
			line = st.header.Render(line)
		case row[3] == "winner":
			line = st.winner.Render(line)
		case row[3] == "not a subset":
			line = st.dropped.Render(line)
		default:
			line = st.plain.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	if len(all) == 0 {
		fmt.Fprintln(w, "no bindings registered")
	}

	switch {
	case resolveErr != nil:
		fmt.Fprintf(w, "error: %v\n", resolveErr)
	case !r.Bound:
		fmt.Fprintf(w, "unbound: resolves to %s\n", resolved)
	default:
		fmt.Fprintf(w, "resolves to %s\n", resolved)
	}
}

func recordStatus(r syntax.Resolution, rec binding.Record) string {
	if !rec.Scopes.IsSubset(r.UseSite) {
		return "not a subset"
	}
	if r.Bound && rec.Scopes.Equal(r.Winner.Scopes) && rec.Binding == r.Winner.Binding {
		return "winner"
	}
	for _, c := range r.Candidates {
		if c.Scopes.Equal(rec.Scopes) && c.Binding == rec.Binding {
			return "candidate"
		}
	}
	// Resolution stopped before the lookup.
	return "skipped"
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

func pad(value string, width int) string {
	return value + strings.Repeat(" ", max(width-runewidth.StringWidth(value), 0))
}
