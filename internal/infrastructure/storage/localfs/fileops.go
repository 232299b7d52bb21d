package localfs

import (
	"fmt"
	"io"
	"os"
)

// CopyFile duplicates src at dst, leaving src untouched. Used for the
// immutable archive copies.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy contents: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("flush destination: %w", err)
	}
	return nil
}

// MoveFile relocates src to dst. Rename first; across filesystems it falls
// back to copy-then-remove. On any failure the partial destination is removed
// so the file remains in exactly one location, never both and never neither.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		os.Remove(dst)
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
