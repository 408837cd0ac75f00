package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// NewLogger writes text to a terminal and JSON otherwise
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	formatter := log.JSONFormatter
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		formatter = log.TextFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "space",
	}), nil
}
