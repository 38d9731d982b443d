package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogRotator is a log file that keeps roughly its last maxLines lines. Lines
// are appended as they come; once twice that many were written the file is
// compacted to the most recent maxLines.
type LogRotator struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	recent  *ring[string]
	written int
}

// OpenLogRotator opens or creates the log file at path.
func OpenLogRotator(path string, maxLines int) (*LogRotator, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	return &LogRotator{
		file:   file,
		path:   path,
		recent: newRing[string](maxLines),
	}, nil
}

// Write implements io.Writer.
func (w *LogRotator) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}

	for line := range bytes.SplitSeq(bytes.TrimRight(p, "\n"), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.recent.push(string(line))
		w.written++

		if w.written >= 2*len(w.recent.items) {
			if err := w.compact(); err != nil {
				return n, fmt.Errorf("failed to rotate log file: %w", err)
			}
		}
	}

	return n, nil
}

// Sync implements zapcore.WriteSyncer.
func (w *LogRotator) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Sync()
}

// Close closes the underlying file.
func (w *LogRotator) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Close()
}

// compact replaces the file with the kept lines and reopens it for appending.
func (w *LogRotator) compact() error {
	lines := w.recent.values()

	temp, err := os.CreateTemp(filepath.Dir(w.path), "compact-*.log")
	if err != nil {
		return err
	}
	tempPath := temp.Name()

	_, err = temp.WriteString(strings.Join(lines, "\n") + "\n")
	if err == nil {
		err = temp.Sync()
	}
	if closeErr := temp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tempPath)
		return err
	}

	_ = w.file.Close()

	// Windows refuses to rename over an existing file
	_ = os.Remove(w.path)
	if err := os.Rename(tempPath, w.path); err != nil {
		return err
	}

	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w.file = file
	w.written = w.recent.len()

	return nil
}
