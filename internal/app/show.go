package app

import (
	"fmt"
	"io"
	"strings"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/ui/style"
	"go.trai.ch/zerr"
)

func renderTable(w io.Writer, record *domain.ExportRecord, table domain.StateTable) error {
	r := style.Renderer(w)
	muted := r.NewStyle().Foreground(style.Muted)
	accent := r.NewStyle().Foreground(style.Accent).Bold(true)

	var b strings.Builder
	b.WriteString(accent.Render("state table") + "\n")
	if record.Toolchain != "" {
		b.WriteString(muted.Render("  toolchain: "+record.Toolchain) + "\n")
	}
	if !record.Timestamp.IsZero() {
		b.WriteString(muted.Render("  exported:  "+record.Timestamp.Format("2006-01-02 15:04:05 MST")) + "\n")
	}

	if err := table.Err(); err != nil {
		failed := r.NewStyle().Foreground(style.Red)
		msg := strings.TrimPrefix(table.String(), domain.ErrorSentinelPrefix)
		b.WriteString(failed.Render(style.Cross+" "+msg) + "\n")
	} else {
		entries := table.Entries()
		if len(entries) == 0 {
			b.WriteString(muted.Render("  no entries") + "\n")
		}

		width := 0
		for _, e := range entries {
			width = max(width, len(e.Name))
		}
		ok := r.NewStyle().Foreground(style.Green)
		name := r.NewStyle().Width(width)
		for _, e := range entries {
			fmt.Fprintf(&b, "%s %s  %s\n", ok.Render(style.Check), name.Render(e.Name), muted.Render(e.Tag.String()))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write state table")
	}
	return nil
}
