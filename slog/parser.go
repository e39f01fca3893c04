// Package slog provides logging decorators for edgar services.
package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/edgar"
)

// Ensure LoggingParser implements edgar.Parser.
var _ edgar.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with logging of each parsed document.
type LoggingParser struct {
	next   edgar.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next edgar.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) Parse(doc string) (f *edgar.Filing, err error) {
	defer func(begin time.Time) {
		p.log("parse", "", len(doc), f, err, time.Since(begin))
	}(time.Now())
	return p.next.Parse(doc)
}

// ParseFile delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) ParseFile(name string, r io.Reader) (f *edgar.Filing, err error) {
	defer func(begin time.Time) {
		p.log("parse file", name, -1, f, err, time.Since(begin))
	}(time.Now())
	return p.next.ParseFile(name, r)
}

func (p *LoggingParser) log(msg, name string, size int, f *edgar.Filing, err error, d time.Duration) {
	attrs := make([]any, 0, 10)
	if name != "" {
		attrs = append(attrs, "file", name)
	}
	if size >= 0 {
		attrs = append(attrs, "bytes", size)
	}
	formType := "(unknown)"
	if f != nil {
		formType = f.FormType
	}
	attrs = append(attrs, "form", formType, "duration", d)
	if err != nil {
		p.logger.Warn(msg, append(attrs, "code", edgar.ErrorCode(err), "err", err)...)
		return
	}
	p.logger.Debug(msg, attrs...)
}
