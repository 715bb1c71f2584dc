package logsvc

import (
	"fmt"

	"github.com/zenkai/taiji/core"
)

type loggerMock struct {
	Lines []string
}

var _ core.Logger = (*loggerMock)(nil)

// NewLoggerMock returns a logger that records messages instead of reporting them.
func NewLoggerMock() *loggerMock {
	return &loggerMock{}
}

func (l *loggerMock) log(level, msg string) {
	l.Lines = append(l.Lines, fmt.Sprintf("%s: %s", level, msg))
}

func (l *loggerMock) Enable(enabled bool) {}

func (l *loggerMock) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg) }
func (l *loggerMock) Info(msg string, args ...interface{})  { l.log("INFO", msg) }
func (l *loggerMock) Warn(msg string, args ...interface{})  { l.log("WARN", msg) }
func (l *loggerMock) Error(msg string, args ...interface{}) { l.log("ERROR", msg) }
func (l *loggerMock) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg) }
