package mmap

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapped.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenAndBytes(t *testing.T) {
	want := []byte("0123456789abcdef")
	m, err := Open(writeTempFile(t, want))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	if m.Size() != len(want) {
		t.Errorf("Size = %d, want %d", m.Size(), len(want))
	}
	if !bytes.Equal(m.Bytes(), want) {
		t.Errorf("Bytes = %q, want %q", m.Bytes(), want)
	}

	if err := m.Advise(AccessRandom); err != nil {
		t.Errorf("Advise failed: %v", err)
	}
}

func TestReadAt(t *testing.T) {
	m, err := Open(writeTempFile(t, []byte("hello world")))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 6)
	if err != nil || n != 5 {
		t.Fatalf("ReadAt = %d, %v", n, err)
	}
	if string(buf) != "world" {
		t.Errorf("ReadAt got %q", buf)
	}

	if _, err := m.ReadAt(buf, 100); err != io.EOF {
		t.Errorf("ReadAt past end: got %v, want io.EOF", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	m, err := Open(writeTempFile(t, []byte("x")))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if m.Bytes() != nil {
		t.Error("Bytes after Close should be nil")
	}
	if _, err := m.ReadAt(make([]byte, 1), 0); err != ErrClosed {
		t.Errorf("ReadAt after Close: got %v, want ErrClosed", err)
	}
}

func TestEmptyFile(t *testing.T) {
	m, err := Open(writeTempFile(t, nil))
	if err != nil {
		t.Fatalf("Open of empty file failed: %v", err)
	}
	defer m.Close()
	if m.Size() != 0 || m.Bytes() != nil {
		t.Errorf("empty file: Size=%d Bytes=%v", m.Size(), m.Bytes())
	}
}
