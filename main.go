package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// newLogger writes debug logs to the file named by GRAPHCALC_LOG, or
// discards everything when the variable is unset. Logging to stderr would
// corrupt the alternate screen.
func newLogger() (*log.Logger, func()) {
	path := os.Getenv("GRAPHCALC_LOG")
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

func main() {
	logger, closeLog := newLogger()
	defer closeLog()

	m := initialModel(logger)
	if len(os.Args) > 1 {
		// Start with the equation given on the command line.
		eq := os.Args[1]
		m.input.SetValue(eq)
		m.evaluate(eq)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
