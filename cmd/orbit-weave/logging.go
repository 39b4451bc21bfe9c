package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "orbit-weave.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes the standard logger to logs/orbit-weave.log when debug is set
// Logging never touches stdout/stderr, the terminal belongs to the renderer
// Returns the open file for the caller to close, nil when logging is off
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	rotateErr := rotateLog(logPath, time.Now())

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.Printf("logging started pid=%d", os.Getpid())
	if rotateErr != nil {
		log.Printf("log rotation failed, appending to oversized log: %v", rotateErr)
	}
	return f
}

// rotateLog renames an oversized log to a timestamped sibling
func rotateLog(logPath string, now time.Time) error {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	rotated := filepath.Join(filepath.Dir(logPath), fmt.Sprintf("orbit-weave-%s.log", now.Format("20060102-150405")))
	if err := os.Rename(logPath, rotated); err != nil {
		return fmt.Errorf("rotate %s: %w", logPath, err)
	}
	return nil
}
