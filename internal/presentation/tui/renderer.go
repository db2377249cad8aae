package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/decompose/pkg/harness"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ReportMarkdown formats an evaluation report as markdown tables.
func ReportMarkdown(r *harness.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s / %s\n\n", r.Dataset, r.Method)

	b.WriteString("| | correct | total | accuracy |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| overall | %d | %d | %.2f%% |\n\n", r.Overall.Correct, r.Overall.Total, r.Overall.Accuracy())

	for _, d := range r.Dimensions {
		fmt.Fprintf(&b, "## By %s\n\n", d.Name)
		fmt.Fprintf(&b, "| %s | correct | total | accuracy |\n", d.Name)
		b.WriteString("|---|---:|---:|---:|\n")
		for _, bucket := range d.Buckets {
			fmt.Fprintf(&b, "| %s | %d | %d | %.2f%% |\n", bucket.Value, bucket.Correct, bucket.Total, bucket.Accuracy())
		}
		b.WriteString("\n")
	}

	if r.Errors > 0 || r.Skipped > 0 {
		fmt.Fprintf(&b, "Errors: %d, skipped: %d\n\n", r.Errors, r.Skipped)
	}
	if r.LogPath != "" {
		fmt.Fprintf(&b, "Results logged to `%s`\n", r.LogPath)
	}
	return b.String()
}

// WriteReport writes the report to w, styled when styled is true.
func WriteReport(w io.Writer, r *harness.Report, styled bool) error {
	md := ReportMarkdown(r)
	if styled {
		out, err := NewRenderer()(md)
		if err == nil {
			md = out
		}
	}
	_, err := io.WriteString(w, md)
	return err
}
