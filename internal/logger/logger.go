package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

// LogLevel represents the severity of a log message.
// A logger set to INFO shows INFO, WARN, ERROR and SUCCESS, but not DEBUG.
// A logger set to TRACE shows everything, including per-request wire detail.
type LogLevel int

const (
	TRACE   LogLevel = iota // per-request wire detail
	DEBUG                   // detailed debugging information
	INFO                    // general information
	WARN                    // warnings
	ERROR                   // errors
	SUCCESS                 // finding confirmed
)

// Logger holds per-level loggers and a mutex for concurrent writes.
type Logger struct {
	infoLogger    *log.Logger
	warnLogger    *log.Logger
	errorLogger   *log.Logger
	debugLogger   *log.Logger
	traceLogger   *log.Logger
	successLogger *log.Logger
	mu            sync.Mutex
	minLevel      LogLevel
}

// NewLogger creates a Logger writing to stdout/stderr.
func NewLogger(minLevel LogLevel) *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr, minLevel)
}

// NewLoggerTo creates a Logger with explicit writers. Informational levels
// go to out, warnings and errors to errOut. Tests use this to capture output.
func NewLoggerTo(out, errOut io.Writer, minLevel LogLevel) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		infoLogger:    log.New(out, "[INFO] ", flags),
		warnLogger:    log.New(errOut, "[WARN] ", flags),
		errorLogger:   log.New(errOut, "[ERROR] ", flags),
		debugLogger:   log.New(out, "[DEBUG] ", flags),
		traceLogger:   log.New(out, "[TRACE] ", flags),
		successLogger: log.New(out, "[SUCCESS] ", flags),
		minLevel:      minLevel,
	}
}

func (l *Logger) log(level LogLevel, logger *log.Logger, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level >= l.minLevel {
		logger.Printf(format, v...)
	}
}

// Info logs an informational message.
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(INFO, l.infoLogger, format, v...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(WARN, l.warnLogger, format, v...)
}

// Error logs an error message.
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(ERROR, l.errorLogger, format, v...)
}

// Debug logs a debug message. Only active if minLevel is DEBUG or lower.
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(DEBUG, l.debugLogger, format, v...)
}

// Trace logs a trace message. Only active if minLevel is TRACE.
func (l *Logger) Trace(format string, v ...interface{}) {
	l.log(TRACE, l.traceLogger, format, v...)
}

// Success logs a success message, used when a finding is confirmed.
func (l *Logger) Success(format string, v ...interface{}) {
	l.log(SUCCESS, l.successLogger, format, v...)
}

// SetMinLevel sets the minimum logging level.
func (l *Logger) SetMinLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}
