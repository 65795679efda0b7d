package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestOSFileSystem_RoundTrip(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := fsys.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	path := filepath.Join(dir, "x.txt")
	if err := fsys.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected %q, got %q", "hello", data)
	}
	info, err := fsys.Stat(path)
	if err != nil || info.Size() != 5 {
		t.Errorf("Stat = %v, %v; want size 5", info, err)
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("/test.txt", []byte("hello, world"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := mfs.ReadFile("/test.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello, world" {
		t.Errorf("expected %q, got %q", "hello, world", data)
	}

	// returned slice is a copy
	data[0] = 'J'
	again, _ := mfs.ReadFile("/test.txt")
	if string(again) != "hello, world" {
		t.Errorf("ReadFile leaked internal buffer: %q", again)
	}
}

func TestMemoryFileSystem_CreateNeedsDirectory(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.Create("plots/z0.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist before MkdirAll, got %v", err)
	}
	if err := mfs.MkdirAll("plots/run1", os.ModePerm); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	w, err := mfs.Create("plots/run1/z0.png")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("abc")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	info, err := mfs.Stat("plots/run1/z0.png")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 3 || info.IsDir() {
		t.Errorf("unexpected file info: size=%d dir=%v", info.Size(), info.IsDir())
	}
	if info, err := mfs.Stat("plots"); err != nil || !info.IsDir() {
		t.Errorf("expected parent directory to exist, got %v, %v", info, err)
	}

	files := mfs.Files()
	sort.Strings(files)
	if len(files) != 1 || files[0] != filepath.Clean("plots/run1/z0.png") {
		t.Errorf("Files() = %v", files)
	}
}

func TestMemoryFileSystem_Missing(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if _, err := mfs.ReadFile("nope.json"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile: expected ErrNotExist, got %v", err)
	}
	if _, err := mfs.Stat("nope.json"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat: expected ErrNotExist, got %v", err)
	}
}
