package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupfind/pkg/hasher"
)

// faultyFs 对指定路径的 Open/Stat 注入错误
type faultyFs struct {
	afero.Fs
	openErr map[string]error
	statErr map[string]error
}

func (f *faultyFs) Open(name string) (afero.File, error) {
	if err, ok := f.openErr[name]; ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Open(name)
}

func (f *faultyFs) Stat(name string) (os.FileInfo, error) {
	if err, ok := f.statErr[name]; ok {
		return nil, &os.PathError{Op: "stat", Path: name, Err: err}
	}
	return f.Fs.Stat(name)
}

func createTree(t *testing.T, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		fullPath := filepath.Join(root, name)
		if err := fsys.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := afero.WriteFile(fsys, fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
}

func newWalker(fsys afero.Fs, opts Options) *FileWalker {
	algo, _ := hasher.Lookup("sha256")
	if opts.Detector == nil {
		opts.Detector = DotPrefixDetector{}
	}
	return NewFileWalker(fsys, hasher.New(fsys, algo, 0), opts)
}

func filePaths(listing Listing) []string {
	paths := make([]string, 0, len(listing.Files))
	for _, f := range listing.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFileWalker_Walk(t *testing.T) {
	fsys := afero.NewMemMapFs()
	createTree(t, fsys, "/data", map[string]string{
		"file2.txt":                 "test content",
		"file1.txt":                 "test content",
		".hidden_file":              "secret",
		"subdir/file3.txt":          "nested",
		".hidden_dir/.hidden_file2": "secret",
	})

	listing, err := newWalker(fsys, Options{}).Walk("/data")
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	expectedFiles := []string{"/data/file1.txt", "/data/file2.txt"}
	if got := filePaths(listing); !equalStrings(got, expectedFiles) {
		t.Errorf("Expected files %v, got %v", expectedFiles, got)
	}

	expectedDirs := []string{"/data/subdir"}
	if !equalStrings(listing.Subdirs, expectedDirs) {
		t.Errorf("Expected subdirs %v, got %v", expectedDirs, listing.Subdirs)
	}

	if listing.Files[0].Fingerprint != listing.Files[1].Fingerprint {
		t.Error("Identical files should share a fingerprint")
	}

	if len(listing.Skipped) != 0 {
		t.Errorf("Expected no skipped entries, got %v", listing.Skipped)
	}
}

func TestFileWalker_Walk_IncludeHidden(t *testing.T) {
	fsys := afero.NewMemMapFs()
	createTree(t, fsys, "/data", map[string]string{
		"file1.txt":                 "a",
		".hidden_file":              "b",
		".hidden_dir/.hidden_file2": "c",
	})

	listing, err := newWalker(fsys, Options{IncludeHidden: true}).Walk("/data")
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	expectedFiles := []string{"/data/.hidden_file", "/data/file1.txt"}
	if got := filePaths(listing); !equalStrings(got, expectedFiles) {
		t.Errorf("Expected files %v, got %v", expectedFiles, got)
	}

	expectedDirs := []string{"/data/.hidden_dir"}
	if !equalStrings(listing.Subdirs, expectedDirs) {
		t.Errorf("Expected subdirs %v, got %v", expectedDirs, listing.Subdirs)
	}
}

func TestFileWalker_Walk_EmptyDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/empty", 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	listing, err := newWalker(fsys, Options{}).Walk("/empty")
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(listing.Files) != 0 || len(listing.Subdirs) != 0 {
		t.Errorf("Expected empty listing, got %+v", listing)
	}
}

func TestFileWalker_Walk_NonExistentDir(t *testing.T) {
	_, err := newWalker(afero.NewMemMapFs(), Options{}).Walk("/non/existent/directory")
	if err == nil {
		t.Fatal("Expected error for non-existent directory")
	}

	var walkErr *WalkError
	if !errors.As(err, &walkErr) {
		t.Fatalf("Expected *WalkError, got %T", err)
	}
	if walkErr.Path != "/non/existent/directory" {
		t.Errorf("Expected path /non/existent/directory, got %s", walkErr.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestFileWalker_Walk_NotADirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	createTree(t, fsys, "/data", map[string]string{"file.txt": "x"})

	if _, err := newWalker(fsys, Options{}).Walk("/data/file.txt"); err == nil {
		t.Error("Expected error when walking a regular file")
	}
}

func TestFileWalker_Walk_HashFailureIsSoft(t *testing.T) {
	base := afero.NewMemMapFs()
	createTree(t, base, "/data", map[string]string{
		"a.txt": "a",
		"b.txt": "b",
		"c.txt": "c",
	})
	fsys := &faultyFs{Fs: base, openErr: map[string]error{"/data/b.txt": fs.ErrPermission}}

	listing, err := newWalker(fsys, Options{}).Walk("/data")
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	expectedFiles := []string{"/data/a.txt", "/data/c.txt"}
	if got := filePaths(listing); !equalStrings(got, expectedFiles) {
		t.Errorf("Expected files %v, got %v", expectedFiles, got)
	}

	if len(listing.Skipped) != 1 {
		t.Fatalf("Expected 1 skipped entry, got %d", len(listing.Skipped))
	}
	skipped := listing.Skipped[0]
	if skipped.Op != "hash" || skipped.Path != "/data/b.txt" {
		t.Errorf("Unexpected skipped entry: %+v", skipped)
	}
	var readErr *hasher.ReadError
	if !errors.As(skipped, &readErr) {
		t.Errorf("Expected *hasher.ReadError, got %T", skipped.Err)
	}
}

func TestFileWalker_Walk_VanishedEntry(t *testing.T) {
	base := afero.NewMemMapFs()
	createTree(t, base, "/data", map[string]string{
		"gone.txt": "x",
		"kept.txt": "y",
	})
	fsys := &faultyFs{Fs: base, statErr: map[string]error{"/data/gone.txt": fs.ErrNotExist}}

	listing, err := newWalker(fsys, Options{}).Walk("/data")
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if got := filePaths(listing); !equalStrings(got, []string{"/data/kept.txt"}) {
		t.Errorf("Expected only kept.txt, got %v", got)
	}
	if len(listing.Skipped) != 1 || listing.Skipped[0].Op != "stat" {
		t.Errorf("Expected one stat skip, got %+v", listing.Skipped)
	}
}

func TestFileWalker_Walk_DirectoryOpenFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	createTree(t, base, "/data", map[string]string{"locked/a.txt": "a"})
	fsys := &faultyFs{Fs: base, openErr: map[string]error{"/data/locked": fs.ErrPermission}}

	_, err := newWalker(fsys, Options{}).Walk("/data/locked")
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Expected fs.ErrPermission, got %v", err)
	}
}

func TestFileWalker_Walk_WithSymlinks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping symlink test in short mode")
	}

	tempDir := t.TempDir()

	filePath := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tempDir, "dir"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	linkPath := filepath.Join(tempDir, "link.txt")
	if err := os.Symlink(filePath, linkPath); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}
	dirLink := filepath.Join(tempDir, "dirlink")
	if err := os.Symlink(filepath.Join(tempDir, "dir"), dirLink); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	fsys := afero.NewOsFs()

	listing, err := newWalker(fsys, Options{}).Walk(tempDir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(listing.Files) != 1 {
		t.Errorf("Expected 1 file without following symlinks, got %d", len(listing.Files))
	}
	if len(listing.Subdirs) != 1 {
		t.Errorf("Expected 1 subdir without following symlinks, got %d", len(listing.Subdirs))
	}

	listing, err = newWalker(fsys, Options{FollowSymlinks: true}).Walk(tempDir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(listing.Files) != 2 {
		t.Errorf("Expected 2 files (original + symlink), got %d", len(listing.Files))
	}
	if len(listing.Subdirs) != 2 {
		t.Errorf("Expected 2 subdirs (dir + dirlink), got %d", len(listing.Subdirs))
	}
}

func TestFileWalker_Identity(t *testing.T) {
	tempDir := t.TempDir()
	dir := filepath.Join(tempDir, "dir")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	link := filepath.Join(tempDir, "link")
	if err := os.Symlink(dir, link); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	w := newWalker(afero.NewOsFs(), Options{})
	id1, ok1 := w.Identity(dir)
	id2, ok2 := w.Identity(link)
	if !ok1 || !ok2 {
		t.Skip("Directory identity not supported on this platform")
	}
	if id1 != id2 {
		t.Errorf("Expected symlink and target to share identity, got %s and %s", id1, id2)
	}
}
