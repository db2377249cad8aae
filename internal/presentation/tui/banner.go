package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the decompose banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"     _                                             ", "#818cf8"},
		{"  __| | ___  ___ ___  _ __ ___  _ __   ___  ___  ___ ", "#a78bfa"},
		{" / _` |/ _ \\/ __/ _ \\| '_ ` _ \\| '_ \\ / _ \\/ __|/ _ \\", "#c084fc"},
		{"| (_| |  __/ (_| (_) | | | | | | |_) | (_) \\__ \\  __/", "#e879f9"},
		{" \\__,_|\\___|\\___\\___/|_| |_| |_| .__/ \\___/|___/\\___|", "#f472b6"},
		{"                               |_|                   ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
