package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Set manages check files loaded from disk, keyed by name.
type Set struct {
	mu      sync.RWMutex
	files   map[string]*File
	sources []string
}

// NewSet creates a new empty Set.
func NewSet() *Set {
	return &Set{
		files: make(map[string]*File),
	}
}

// LoadFile loads one check file. A file whose name is already loaded
// replaces the earlier one.
func (s *Set) LoadFile(path string) error {
	file, err := ParseFile(path)
	if err != nil {
		return err
	}
	for i, c := range file.Checks {
		if c.ID == "" {
			return fmt.Errorf("check at index %d in %s has no ID", i, path)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[file.Name] = file
	s.sources = append(s.sources, path)
	return nil
}

// LoadDir loads all .yaml, .yml and .json files from a directory.
func (s *Set) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read check directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !IsCheckFile(entry.Name()) {
			continue
		}
		if err := s.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Load loads each path as a directory or a single file.
func (s *Set) Load(paths ...string) error {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			err = s.LoadDir(p)
		} else {
			err = s.LoadFile(p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a check file by name.
func (s *Set) Get(name string) (*File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[name]
	return f, ok
}

// All returns all loaded files sorted by name.
func (s *Set) All() []*File {
	s.mu.RLock()
	result := make([]*File, 0, len(s.files))
	for _, f := range s.files {
		result = append(result, f)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Count returns the number of loaded files.
func (s *Set) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Sources returns the list of loaded file paths.
func (s *Set) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.sources))
	copy(result, s.sources)
	return result
}

// Discover expands paths into check files. Directories are walked
// recursively; files are kept in the order found.
func Discover(paths ...string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", p, err)
		}
		if !info.IsDir() {
			if IsCheckFile(p) {
				files = append(files, p)
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsCheckFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
