package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	Name   string // for default
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // YAML-path -> last writer source (file only)
	Files   []string          // all loaded files, in load order
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "iconwin", "config.yaml"), nil
}

// LoadWithSources loads config and returns file-level sources for introspection.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes. A missing file yields defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	var top layer
	if _, err := os.Stat(path); err == nil {
		l := &loader{seen: make(map[string]bool)}
		if top, err = l.load(path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if top.sources == nil {
		top.sources = map[string]Source{}
	}

	cfg := BuildEffectiveConfig(top.raw)
	if err := cfg.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			if src, ok := top.sources[verr.Path]; ok {
				verr.Source = src
			}
		}
		return nil, err
	}

	return &LoadResult{
		Config:  cfg,
		Sources: top.sources,
		Files:   top.files,
	}, nil
}

// ValidationError names the offending YAML path and, when known, the file
// position that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// layer is one file merged with everything it includes.
type layer struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
}

// absorb merges o over l.
func (l *layer) absorb(o layer) {
	l.raw = l.raw.merge(o.raw)
	if l.sources == nil {
		l.sources = map[string]Source{}
	}
	for p, src := range o.sources {
		l.sources[p] = src
	}
	l.files = append(l.files, o.files...)
}

// loader walks the include graph. stack holds the files currently being
// loaded; seen holds every file already merged, so diamonds load once.
type loader struct {
	seen  map[string]bool
	stack []string
}

func (l *loader) load(path string) (layer, error) {
	file, err := canonicalPath(path)
	if err != nil {
		return layer{}, err
	}
	for _, open := range l.stack {
		if open == file {
			return layer{}, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.stack, " -> "), file)
		}
	}
	if l.seen[file] {
		return layer{}, nil
	}
	l.seen[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return layer{}, fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return layer{}, fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	var own RawConfig
	if err := decodeStrict(data, &own); err != nil {
		return layer{}, fmt.Errorf("%s: %w", file, err)
	}
	sources, includes := scanDocument(&doc, file)

	// Includes apply first, in order; this file's own keys override them.
	var out layer
	l.stack = append(l.stack, file)
	for _, inc := range includes {
		paths, err := expandInclude(file, inc.value)
		if err != nil {
			return layer{}, fmt.Errorf("%s:%d:%d: include %q: %w", inc.src.File, inc.src.Line, inc.src.Column, inc.value, err)
		}
		for _, p := range paths {
			sub, err := l.load(p)
			if err != nil {
				return layer{}, err
			}
			out.absorb(sub)
		}
	}
	l.stack = l.stack[:len(l.stack)-1]

	out.absorb(layer{raw: own, sources: sources, files: []string{file}})
	return out, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// canonicalPath resolves path to an absolute path with symlinks evaluated
// where possible, so one file reached two ways is recognised.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

// expandInclude resolves an include entry against the including file. A
// directory expands to its .yaml/.yml files in name order.
func expandInclude(baseFile, include string) ([]string, error) {
	if include == "" {
		return nil, fmt.Errorf("path is empty")
	}
	path := include
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(baseFile), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		ext := strings.ToLower(filepath.Ext(ent.Name()))
		if !ent.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, filepath.Join(path, ent.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

type includeEntry struct {
	value string
	src   Source
}

func nodeSource(file string, n *yaml.Node) Source {
	return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
}

// scanDocument records the position of every mapping key path (dotted) and
// of each top-level include entry. Sequences are recorded as a whole.
func scanDocument(doc *yaml.Node, file string) (map[string]Source, []includeEntry) {
	sources := make(map[string]Source)
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var walk func(n *yaml.Node, prefix string)
	walk = func(n *yaml.Node, prefix string) {
		if n.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i].Value, n.Content[i+1]
			if prefix != "" {
				key = prefix + "." + key
			}
			sources[key] = nodeSource(file, val)
			walk(val, key)
		}
	}
	walk(root, "")

	var includes []includeEntry
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value != "include" {
				continue
			}
			val := root.Content[i+1]
			items := []*yaml.Node{val}
			if val.Kind == yaml.SequenceNode {
				items = val.Content
			}
			for _, item := range items {
				if item.Kind == yaml.ScalarNode {
					includes = append(includes, includeEntry{value: item.Value, src: nodeSource(file, item)})
				}
			}
		}
	}
	return sources, includes
}
