package main

import (
	"bytes"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed)
)

// reportWriter colors the batch report line by line.
type reportWriter struct {
	out     io.Writer
	pending bytes.Buffer
}

func newReportWriter(out io.Writer) *reportWriter {
	return &reportWriter{out: out}
}

func (w *reportWriter) Write(p []byte) (int, error) {
	w.pending.Write(p)
	for {
		line, err := w.pending.ReadString('\n')
		if err != nil {
			// keep the partial line for the next write
			w.pending.Reset()
			w.pending.WriteString(line)
			return len(p), nil
		}
		if _, err := io.WriteString(w.out, colorLine(strings.TrimSuffix(line, "\n"))+"\n"); err != nil {
			return 0, err
		}
	}
}

func colorLine(line string) string {
	switch {
	case line == "":
		return line
	case strings.HasPrefix(line, "PREPARING DISH:"), strings.HasPrefix(line, "All dishes"):
		return headingColor.Sprint(line)
	case strings.Contains(line, "Successfully prepared"), strings.HasSuffix(line, "Ingredients replenished."):
		return successColor.Sprint(line)
	case strings.Contains(line, "Insufficient ingredients"), strings.Contains(line, "Dish not available"):
		return warnColor.Sprint(line)
	case strings.Contains(line, "Unable to"), strings.HasSuffix(line, "was not prepared."):
		return failColor.Sprint(line)
	default:
		return line
	}
}
