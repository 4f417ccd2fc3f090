package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the name of the project manifest looked up by Load.
const ConfigFile = "pl0.toml"

// Project describes a directory of PL/0 sources together with the
// settings from its pl0.toml manifest.
type Project struct {
	Name      string `toml:"name"`
	SrcDir    string `toml:"src"`
	Trace     bool   `toml:"trace"`
	MaxErrors int    `toml:"max_errors"`

	RootDir string `toml:"-"`
}

// Load reads the project manifest from the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads pl0.toml from the given directory. A directory without
// a manifest is still a valid project: every .pl0 file below it counts
// as a source, and the defaults apply.
func LoadFrom(rootDir string) (*Project, error) {
	proj := &Project{
		Name:    filepath.Base(absOrSelf(rootDir)),
		RootDir: rootDir,
	}

	path := filepath.Join(rootDir, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, proj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if proj.SrcDir == "" {
		proj.SrcDir = "."
	}
	if proj.MaxErrors < 0 {
		return nil, fmt.Errorf("%s: max_errors must not be negative", path)
	}

	return proj, nil
}

func absOrSelf(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// SourceFiles returns all .pl0 files below the project's source
// directory, sorted by path.
func (p *Project) SourceFiles() ([]string, error) {
	root := filepath.Join(p.RootDir, p.SrcDir)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Source discovery never descends into hidden directories.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".pl0") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan sources in %s: %w", root, err)
	}

	return files, nil
}
