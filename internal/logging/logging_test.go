package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_StderrRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: slog.LevelWarn, Stderr: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "key=value") {
		t.Fatalf("expected text handler output, got %q", out)
	}
}

func TestNew_FileCreatedWithSecurePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "iconwin.log")
	logger, closer, err := New(Options{Level: slog.LevelInfo, FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("window created", "width", 200)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("expected mode 0600, got %o", perm)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "width=200") {
		t.Fatalf("expected log line in file, got %q", data)
	}
}

func TestRotatingFile_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	r, err := OpenRotatingFile(path, 1, 2)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	r.maxBytes = 10

	for _, line := range []string{"first-line\n", "second-line\n", "third-line\n"} {
		if _, err := r.Write([]byte(line)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	cur, _ := os.ReadFile(path)
	if string(cur) != "third-line\n" {
		t.Fatalf("expected current file to hold the last line, got %q", cur)
	}
	one, _ := os.ReadFile(path + ".1")
	if string(one) != "second-line\n" {
		t.Fatalf("expected .1 to hold second-line, got %q", one)
	}
	two, _ := os.ReadFile(path + ".2")
	if string(two) != "first-line\n" {
		t.Fatalf("expected .2 to hold first-line, got %q", two)
	}
}

func TestRotatingFile_WriteAfterClose(t *testing.T) {
	r, err := OpenRotatingFile(filepath.Join(t.TempDir(), "app.log"), 0, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if r.maxFiles != DefaultMaxFiles {
		t.Fatalf("expected default max files %d, got %d", DefaultMaxFiles, r.maxFiles)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := r.Write([]byte("x")); err == nil {
		t.Fatalf("expected write after close to fail")
	}
}

func TestRotatingFile_DefaultKeepsThreeRolledFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	r, err := OpenRotatingFile(path, 1, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	r.maxBytes = 4

	for _, line := range []string{"aaaa\n", "bbbb\n", "cccc\n", "dddd\n", "eeee\n"} {
		if _, err := r.Write([]byte(line)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	want := map[string]string{"": "eeee\n", ".1": "dddd\n", ".2": "cccc\n", ".3": "bbbb\n"}
	for suffix, content := range want {
		got, err := os.ReadFile(path + suffix)
		if err != nil {
			t.Fatalf("read %q: %v", path+suffix, err)
		}
		if string(got) != content {
			t.Fatalf("expected %q in %s, got %q", content, path+suffix, got)
		}
	}
	if _, err := os.Stat(path + ".4"); !os.IsNotExist(err) {
		t.Fatalf("expected no .4 file, got %v", err)
	}
}
