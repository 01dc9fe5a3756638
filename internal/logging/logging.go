package logging

import (
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New builds the CLI logger. Verbose switches to debug level and reports
// the calling file.
func New(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
		l.SetReportCaller(true)
	}
	return l
}

// Logf adapts l to the printf-style hook the pipelines accept. Lines starting
// with "warning:" are promoted to warn level.
func Logf(l *log.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		if rest, ok := strings.CutPrefix(format, "warning: "); ok {
			l.Warnf(rest, args...)
			return
		}
		l.Infof(format, args...)
	}
}

// Debugf adapts l to a printf-style hook that only shows with --verbose.
func Debugf(l *log.Logger) func(format string, args ...any) {
	return l.Debugf
}

var bearerRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._~+/-]+=*`)

// SanitizeToken keeps the first and last four characters of a secret.
func SanitizeToken(tok string) string {
	if len(tok) <= 8 {
		return "****"
	}
	return tok[:4] + "..." + tok[len(tok)-4:]
}

// Redact strips bearer tokens and the given secrets from s.
func Redact(s string, secrets ...string) string {
	for _, sec := range secrets {
		if sec != "" {
			s = strings.ReplaceAll(s, sec, "[REDACTED]")
		}
	}
	return bearerRE.ReplaceAllString(s, "Bearer [REDACTED]")
}
