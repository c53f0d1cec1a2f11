package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// setupColor turns colour off when asked to or when stdout is not a terminal.
func setupColor(disabled bool) {
	fd := os.Stdout.Fd()
	if disabled || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		color.NoColor = true
	}
}

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", okColor.Sprint("✓"), fmt.Sprintf(format, args...))
}

func printFail(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", errColor.Sprint("✗"), fmt.Sprintf(format, args...))
}

// printIssues lists errors then warnings, one per line.
func printIssues(w io.Writer, errs, warnings []string) {
	for _, e := range errs {
		fmt.Fprintf(w, "  %s %s\n", errColor.Sprint("error:"), e)
	}
	for _, wn := range warnings {
		fmt.Fprintf(w, "  %s %s\n", warnColor.Sprint("warning:"), wn)
	}
}

func printFiles(w io.Writer, files []string) {
	for _, f := range files {
		fmt.Fprintf(w, "  %s\n", dimColor.Sprint(f))
	}
}
