// Package config locates and reads the project configuration governing an
// analysis workspace: the module-resolution base URL and the include and
// exclude patterns filtering which files belong to the program.
//
// Two spellings are accepted: trellis.yaml, and a tsconfig.json whose
// compilerOptions carry the same information. JSON is a YAML subset, so one
// decoder reads both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// configNames are probed in order in each directory while walking upward.
var configNames = []string{"trellis.yaml", "tsconfig.json"}

// ErrNoConfigRoot reports that no configuration file exists in the start
// directory or any parent. Callers that require a project root treat this
// as fatal for the current request: there is no meaningful fallback.
var ErrNoConfigRoot = errors.New("no trellis.yaml or tsconfig.json found in any parent directory")

// Project is the resolved project configuration.
type Project struct {
	// Path is the configuration file this was read from; empty for a
	// default-constructed Project.
	Path string
	// RootDir is the directory containing the configuration file.
	RootDir string
	// BaseURL is the module-resolution base for non-relative import
	// specifiers, absolute after loading.
	BaseURL string
	// Include and Exclude are doublestar patterns over root-relative
	// paths. An empty Include admits everything.
	Include []string
	Exclude []string
}

// rawConfig covers both accepted spellings.
type rawConfig struct {
	BaseURL         string `yaml:"baseUrl"`
	CompilerOptions struct {
		BaseURL string `yaml:"baseUrl"`
	} `yaml:"compilerOptions"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Find walks from startDir toward the filesystem root looking for the
// nearest configuration file and loads it. Returns ErrNoConfigRoot when the
// walk exhausts every parent.
func Find(startDir string) (*Project, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", startDir, err)
	}
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoConfigRoot
		}
		dir = parent
	}
}

// Load reads one configuration file.
func Load(path string) (*Project, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var raw rawConfig
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	p := &Project{
		Path:    path,
		RootDir: filepath.Dir(path),
		BaseURL: raw.BaseURL,
		Include: raw.Include,
		Exclude: raw.Exclude,
	}
	if p.BaseURL == "" {
		p.BaseURL = raw.CompilerOptions.BaseURL
	}
	if p.BaseURL != "" && !filepath.IsAbs(p.BaseURL) {
		p.BaseURL = filepath.Join(p.RootDir, p.BaseURL)
	}
	return p, nil
}

// Default returns the configuration used when no file is wanted: everything
// under rootDir included, no base URL.
func Default(rootDir string) *Project {
	return &Project{RootDir: rootDir}
}

// Match reports whether a root-relative path belongs to the project
// according to the include and exclude patterns.
func (p *Project) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	if len(p.Include) > 0 {
		included := false
		for _, pattern := range p.Include {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, pattern := range p.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}
