package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LogLevel defines the severity of a log entry.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	FATAL
)

// Logger writes leveled entries to a file and fans them out to subscribers.
type Logger struct {
	filename    string
	file        *os.File
	mu          sync.Mutex
	subscribers []chan string
}

// NewLogger opens (or creates) the log file in append mode.
func NewLogger(filename string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Logger{
		filename: filename,
		file:     file,
	}, nil
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Reopen closes the current file and continues logging into filename.
func (l *Logger) Reopen(filename string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		_ = l.file.Close()
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	l.filename = filename
	l.file = file
	return nil
}

// Log writes one entry: [time] LEVEL: message
func (l *Logger) Log(level LogLevel, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := fmt.Sprintf("[%s] %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		level.String(),
		message)

	l.file.WriteString(entry)

	for _, ch := range l.subscribers {
		select {
		case ch <- entry:
		default: // subscriber is full, skip it
		}
	}
}

// CheckRotate rotates the log file once it grows past maxSize, an
// expression like "10 * 1024 * 1024".
func (l *Logger) CheckRotate(maxSize string) error {
	l.mu.Lock()
	info, err := l.file.Stat()
	l.mu.Unlock()
	if err != nil {
		return err
	}

	if info.Size() > eval(maxSize) {
		return l.rotateLog()
	}
	return nil
}

func (l *Logger) rotateLog() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		rotated := fmt.Sprintf("%s.%s", l.filename, time.Now().Format("20060102150405"))
		if err := os.Rename(l.filename, rotated); err != nil {
			return err
		}
	}

	file, err := os.OpenFile(l.filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	l.file = file
	return nil
}

// Subscribe returns a buffered channel receiving every future log entry.
func (l *Logger) Subscribe() <-chan string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan string, 100)
	l.subscribers = append(l.subscribers, ch)
	return ch
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// eval parses size expressions of the form "a * b * c".
func eval(expr string) int64 {
	parts := strings.Split(expr, " * ")
	var result int64 = 1
	for _, part := range parts {
		num, _ := strconv.Atoi(part)
		result *= int64(num)
	}
	return result
}

// Shortcut methods.
func (l *Logger) Debug(msg string)   { l.Log(DEBUG, msg) }
func (l *Logger) Info(msg string)    { l.Log(INFO, msg) }
func (l *Logger) Warning(msg string) { l.Log(WARNING, msg) }
func (l *Logger) Error(msg string)   { l.Log(ERROR, msg) }
func (l *Logger) Fatal(msg string)   { l.Log(FATAL, msg) }
