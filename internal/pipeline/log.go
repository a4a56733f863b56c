package pipeline

import (
	"fmt"
	"io"
)

// logger splits output the way the CLI does: progress lines for the
// user, diagnostics prefixed with [hextile].
type logger struct {
	progress io.Writer
	log      io.Writer
	verbose  bool
}

func (l *logger) progressf(format string, args ...any) {
	fmt.Fprintf(l.progress, format+"\n", args...)
}

func (l *logger) warnf(format string, args ...any) {
	fmt.Fprintf(l.log, "[hextile] warning: "+format+"\n", args...)
}

// verbosef prints only when verbose output is enabled.
func (l *logger) verbosef(format string, args ...any) {
	if l.verbose {
		fmt.Fprintf(l.log, "[hextile] "+format+"\n", args...)
	}
}
