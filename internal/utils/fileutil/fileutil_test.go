package fileutil_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/credage/credage/internal/utils/fileutil"
)

// TestAtomicWriteFile tests atomic file writing
func TestAtomicWriteFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	testData := []byte("hello world")

	err := fileutil.AtomicWriteFile(testFile, testData, 0644)
	if err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if !bytes.Equal(content, testData) {
		t.Errorf("Content mismatch: got %s, want %s", string(content), string(testData))
	}

	// Overwrite must replace the old content
	newData := []byte("new content")
	err = fileutil.AtomicWriteFile(testFile, newData, 0644)
	if err != nil {
		t.Fatalf("AtomicWriteFile overwrite failed: %v", err)
	}

	content, err = os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if !bytes.Equal(content, newData) {
		t.Errorf("Content mismatch after overwrite: got %s, want %s", string(content), string(newData))
	}
}

// TestFileExists tests regular-file detection
func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "exists.txt")
	if fileutil.FileExists(testFile) {
		t.Error("FileExists should be false before creation")
	}

	if err := os.WriteFile(testFile, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !fileutil.FileExists(testFile) {
		t.Error("FileExists should be true after creation")
	}

	if fileutil.FileExists(tmpDir) {
		t.Error("FileExists should be false for a directory")
	}
}
