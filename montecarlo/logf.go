package montecarlo

import (
	"fmt"
	"io"
)

// logWriter is the destination for log output; nil means stdout.
var logWriter io.Writer

// SetOutput redirects Logf's destination.
func SetOutput(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log line, used for cycle-boundary summaries.
// Numeric-edge fallbacks elsewhere are taken silently and are not logged.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}
