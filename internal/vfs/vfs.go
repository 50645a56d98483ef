// Package vfs assembles a project in memory as a tree of files and
// directories without touching the real disk.
package vfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrInvalidPath is returned for empty paths or paths that climb with "..".
	ErrInvalidPath = errors.New("vfs: invalid path")

	// ErrPathConflict is returned when a file would shadow a directory or
	// a directory would be created under a file.
	ErrPathConflict = errors.New("vfs: path conflict")
)

// NodeType distinguishes files from directories.
type NodeType string

const (
	TypeFile      NodeType = "file"
	TypeDirectory NodeType = "directory"
)

// Node is one entry of a materialized tree. Content is set only on files
// and Children only on directories.
type Node struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Type     NodeType `json:"type"`
	Content  *string  `json:"content,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// IsDir reports whether n is a directory.
func (n *Node) IsDir() bool {
	return n.Type == TypeDirectory
}

// File is a flat (path, content) pair.
type File struct {
	Path    string
	Content string
}

// FS records writes keyed by normalized path. Directories are inferred
// from path segments. An FS is not safe for concurrent writes.
type FS struct {
	files map[string]string
	dirs  map[string]struct{}
}

// New returns an empty file system.
func New() *FS {
	return &FS{
		files: make(map[string]string),
		dirs:  make(map[string]struct{}),
	}
}

// Clean normalizes a slash-separated path: surrounding and repeated
// slashes and "." segments are dropped. The result has no leading slash.
func Clean(p string) (string, error) {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return strings.Join(out, "/"), nil
}

// Write records content at path, creating ancestors as needed. Writing
// the same path again overwrites it. On error the FS is unchanged.
func (fs *FS) Write(path, content string) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	if _, isDir := fs.dirs[p]; isDir {
		return fmt.Errorf("%w: %s is a directory", ErrPathConflict, p)
	}

	ancestors := parents(p)
	for _, a := range ancestors {
		if _, isFile := fs.files[a]; isFile {
			return fmt.Errorf("%w: %s is a file", ErrPathConflict, a)
		}
	}

	for _, a := range ancestors {
		fs.dirs[a] = struct{}{}
	}
	fs.files[p] = content
	return nil
}

// parents lists every ancestor directory of p, nearest to the root first.
func parents(p string) []string {
	var out []string
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			out = append(out, p[:i])
		}
	}
	return out
}

// Read returns the content at path.
func (fs *FS) Read(path string) (string, bool) {
	p, err := Clean(path)
	if err != nil {
		return "", false
	}
	c, ok := fs.files[p]
	return c, ok
}

// Exists reports whether path is a file or directory.
func (fs *FS) Exists(path string) bool {
	p, err := Clean(path)
	if err != nil {
		return path == "/" || path == ""
	}
	if _, ok := fs.files[p]; ok {
		return true
	}
	_, ok := fs.dirs[p]
	return ok
}

// Len returns the number of files.
func (fs *FS) Len() int {
	return len(fs.files)
}

// DirCount returns the number of directories, excluding the root.
func (fs *FS) DirCount() int {
	return len(fs.dirs)
}

// Paths returns every file path in lexical order.
func (fs *FS) Paths() []string {
	out := make([]string, 0, len(fs.files))
	for p := range fs.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Files returns every file in lexical path order.
func (fs *FS) Files() []File {
	paths := fs.Paths()
	out := make([]File, len(paths))
	for i, p := range paths {
		out[i] = File{Path: p, Content: fs.files[p]}
	}
	return out
}

// WriteTo materializes the files under dir on the real disk.
func (fs *FS) WriteTo(dir string) error {
	for _, f := range fs.Files() {
		if err := WriteFile(dir, f); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes a single file under dir, creating parent directories.
func WriteFile(dir string, f File) error {
	full := filepath.Join(dir, filepath.FromSlash(f.Path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", full, err)
	}
	if err := os.WriteFile(full, []byte(f.Content), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", full, err)
	}
	return nil
}
