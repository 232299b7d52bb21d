package localfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

// Subdirectory names under the inbound root.
const (
	ArchiveDirName = "Archiv"
	FiledDirName   = "Umbenannt"
	ErrorsDirName  = "Fehler"
)

// EnsureFolders derives the folder set from the inbound root and creates the
// subdirectories. Creating an already-existing directory is a no-op.
func EnsureFolders(inbound string) (domain.FolderSet, error) {
	info, err := os.Stat(inbound)
	if err != nil {
		return domain.FolderSet{}, fmt.Errorf("inbound folder: %w", err)
	}
	if !info.IsDir() {
		return domain.FolderSet{}, fmt.Errorf("inbound folder %s is not a directory", inbound)
	}

	folders := domain.FolderSet{
		Inbound: inbound,
		Archive: filepath.Join(inbound, ArchiveDirName),
		Filed:   filepath.Join(inbound, FiledDirName),
		Errors:  filepath.Join(inbound, ErrorsDirName),
	}
	for _, dir := range []string{folders.Archive, folders.Filed, folders.Errors} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.FolderSet{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return folders, nil
}

// Store implements the pipeline's filesystem operations on a local disk.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// ListPDFs enumerates the PDFs sitting directly in dir (no recursion),
// sorted by filename.
func (s *Store) ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Copy duplicates src at dst, leaving src untouched.
func (s *Store) Copy(src, dst string) error {
	return CopyFile(src, dst)
}

// Move relocates src to dst.
func (s *Store) Move(src, dst string) error {
	return MoveFile(src, dst)
}
