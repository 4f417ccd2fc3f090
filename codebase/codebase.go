package codebase

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dhamidi/pl0/parser"
	"github.com/dhamidi/pl0/source"
	"github.com/dhamidi/pl0/syms"
	"github.com/dhamidi/pl0/tree"
)

// Codebase keeps the latest parse of every tracked source file. Editors
// push content through UpdateFile; consumers read the per-file results.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path        string
	Content     []byte
	Program     *tree.Program
	Table       *syms.Table
	Diagnostics []source.Diagnostic
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every .pl0 file below the root directory.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".pl0" {
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile reparses the given content and replaces the tracked state
// for path. Diagnostics render nowhere; they are kept structured for
// the caller. A fatal parse leaves Program nil but keeps the
// diagnostics that led up to it.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	buf := source.NewBuffer(filepath.Base(path), content)

	result, err := parser.ParseProgram(buf, parser.WithOutput(io.Discard))

	info := &FileInfo{
		Path:    path,
		Content: content,
	}
	if err == nil {
		info.Program = result.Program
		info.Table = result.Table
		info.Diagnostics = result.Errors.All()
	} else if result != nil {
		info.Diagnostics = result.Errors.All()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return nil
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the paths of all tracked files.
func (c *Codebase) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	return paths
}
