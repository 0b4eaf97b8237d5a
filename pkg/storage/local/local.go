package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoSidecar      = errors.New("no metadata sidecar")
	ErrInvalidSidecar = errors.New("invalid metadata sidecar")
)

// Source enumerates the files of a local directory tree for upload
type Source struct {
	root       string
	sidecarExt string
}

// Level holds the files found directly inside one directory
type Level struct {
	Dir   string
	Files []File
}

// File describes a regular file on disk
type File struct {
	Name string // Base name, used as the object key
	Path string // Full path on disk
}

// New creates a source rooted at root. sidecarExt (e.g. ".JSON") marks
// metadata files, matched case-sensitively.
func New(root, sidecarExt string) (*Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", root)
	}

	return &Source{
		root:       root,
		sidecarExt: sidecarExt,
	}, nil
}

func (s *Source) Root() string { return s.root }

// Levels walks the tree top-down: a directory comes before its
// subdirectories, and files within a level are in lexical order.
func (s *Source) Levels() ([]Level, error) {
	var levels []Level
	if err := s.walk(s.root, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

func (s *Source) walk(dir string, levels *[]Level) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	level := Level{Dir: dir}
	var subdirs []string

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			subdirs = append(subdirs, path)
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue // Skip entries that vanished
		}

		// Symlinks count when they point at a regular file
		if info.Mode()&fs.ModeSymlink != 0 {
			if info, err = os.Stat(path); err != nil {
				continue
			}
		}
		if !info.Mode().IsRegular() {
			continue
		}

		level.Files = append(level.Files, File{
			Name: entry.Name(),
			Path: path,
		})
	}

	*levels = append(*levels, level)

	for _, sub := range subdirs {
		if err := s.walk(sub, levels); err != nil {
			return err
		}
	}

	return nil
}

// ext is filepath.Ext of name, except that leading dots never start an
// extension: ".env" has none, ".env.JSON" has ".JSON".
func ext(name string) string {
	return filepath.Ext(strings.TrimLeft(name, "."))
}

// IsSidecar reports whether the file is a metadata sidecar
func (s *Source) IsSidecar(f File) bool {
	return ext(f.Name) == s.sidecarExt
}

// SidecarPath returns where the sidecar of f is expected
func (s *Source) SidecarPath(f File) string {
	base := strings.TrimSuffix(f.Name, ext(f.Name))
	return filepath.Join(filepath.Dir(f.Path), base+s.sidecarExt)
}

// ReadSidecar loads the flat string map stored next to f
func (s *Source) ReadSidecar(f File) (map[string]string, error) {
	path := s.SidecarPath(f)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSidecar, path)
		}
		return nil, fmt.Errorf("failed to read sidecar %s: %w", path, err)
	}

	var metadata map[string]string
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSidecar, path, err)
	}
	if metadata == nil {
		return nil, fmt.Errorf("%w: %s: not a JSON object", ErrInvalidSidecar, path)
	}

	return metadata, nil
}
