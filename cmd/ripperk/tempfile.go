package main

import (
	"fmt"
	"os"
)

// writeTempFile writes content to a new temp file matching pattern and
// returns its path.
func writeTempFile(pattern, content string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	return f.Name(), nil
}

func removeTempFile(path string) {
	_ = os.Remove(path)
}
