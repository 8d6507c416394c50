package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunFileExecutesScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.pebble")
	if err := os.WriteFile(path, []byte("print 1 + 2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	stdout := captureStdout(t, func() {
		if err := runFile(path); err != nil {
			t.Fatalf("runFile: %v", err)
		}
	})
	if stdout != "3\n" {
		t.Fatalf("got %q, want %q", stdout, "3\n")
	}
}

func TestRunFileMissingFile(t *testing.T) {
	if err := runFile(filepath.Join(t.TempDir(), "missing.pebble")); err == nil {
		t.Fatal("expected an error for a missing script file")
	}
}

func TestRunReaderExecutesStdinLikeSource(t *testing.T) {
	stdout := captureStdout(t, func() {
		if err := runReader(bytes.NewBufferString("x = 5\nprint x * x\n")); err != nil {
			t.Fatalf("runReader: %v", err)
		}
	})
	if stdout != "25\n" {
		t.Fatalf("got %q, want %q", stdout, "25\n")
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	saved := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = saved }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}
