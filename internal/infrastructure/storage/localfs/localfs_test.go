package localfs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureFolders(t *testing.T) {
	inbound := t.TempDir()

	folders, err := EnsureFolders(inbound)
	if err != nil {
		t.Fatalf("EnsureFolders: %v", err)
	}

	if folders.Inbound != inbound {
		t.Errorf("inbound = %q", folders.Inbound)
	}
	for _, dir := range []string{folders.Archive, folders.Filed, folders.Errors} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("missing working folder %s: %v", dir, err)
		}
	}
	if filepath.Base(folders.Archive) != "Archiv" ||
		filepath.Base(folders.Filed) != "Umbenannt" ||
		filepath.Base(folders.Errors) != "Fehler" {
		t.Errorf("unexpected folder names: %+v", folders)
	}

	// Idempotent on existing folders.
	if _, err := EnsureFolders(inbound); err != nil {
		t.Fatalf("second EnsureFolders: %v", err)
	}
}

func TestEnsureFoldersMissingRoot(t *testing.T) {
	if _, err := EnsureFolders(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for a missing inbound root")
	}
}

func TestEnsureFoldersRootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureFolders(path); err == nil {
		t.Fatal("expected error when the inbound root is a file")
	}
}

func TestListPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt", "c.pdf.bak"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := NewStore().ListPDFs(dir)
	if err != nil {
		t.Fatalf("ListPDFs: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
	if filepath.Base(paths[0]) != "a.PDF" || filepath.Base(paths[1]) != "b.pdf" {
		t.Fatalf("paths = %v, want sorted case-insensitive match", paths)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.pdf")
	dst := filepath.Join(dir, "dst.pdf")
	if err := os.WriteFile(src, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "content" {
		t.Fatalf("dst content = %q, err %v", got, err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatal("source must remain after copy")
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.pdf")

	if err := CopyFile(filepath.Join(dir, "absent.pdf"), dst); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatal("no partial destination may remain")
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.pdf")
	dst := filepath.Join(dir, "moved.pdf")
	if err := os.WriteFile(src, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source must be gone after move")
	}
	if got, err := os.ReadFile(dst); err != nil || string(got) != "content" {
		t.Fatalf("dst content = %q, err %v", got, err)
	}
}
