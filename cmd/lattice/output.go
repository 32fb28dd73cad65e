package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/lattice/internal/presentation/tui"
	"github.com/muesli/termenv"
)

// profileFor styles output only when w is a terminal.
func profileFor(w io.Writer) termenv.Profile {
	if f, ok := w.(*os.File); ok {
		return tui.ProfileFor(f)
	}
	return termenv.Ascii
}

// printReport renders markdown with glamour, styled on a terminal.
func printReport(w io.Writer, markdown string) error {
	render, err := tui.NewRenderer(profileFor(w) != termenv.Ascii)
	if err != nil {
		return err
	}
	out, err := render(markdown)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
