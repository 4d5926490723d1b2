package board

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPattern = errors.New("unknown pattern")
	ErrInvalidPattern = errors.New("invalid pattern")
)

//go:embed patterns.yaml
var builtinPatterns []byte

// Pattern is a named seed shape. Cells rows use 'O' for live and '.' for dead
type Pattern struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Cells       []string `yaml:"cells"`
}

// Size returns the pattern bounding box
func (p Pattern) Size() (rows, cols int) {
	rows = len(p.Cells)
	for _, line := range p.Cells {
		cols = max(cols, len(line))
	}
	return rows, cols
}

type patternFile struct {
	Patterns []Pattern `yaml:"patterns"`
}

// PatternLibrary indexes patterns by name
type PatternLibrary struct {
	patterns map[string]Pattern
}

// ParsePatterns decodes a YAML pattern list
func ParsePatterns(data []byte) (*PatternLibrary, error) {
	var f patternFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	lib := &PatternLibrary{patterns: make(map[string]Pattern, len(f.Patterns))}
	for _, p := range f.Patterns {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: missing name", ErrInvalidPattern)
		}
		if err := p.validate(); err != nil {
			return nil, err
		}
		lib.patterns[p.Name] = p
	}
	return lib, nil
}

// LoadPatterns reads a YAML pattern file and merges it over the built-in library
func LoadPatterns(path string) (*PatternLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns %s: %w", path, err)
	}
	custom, err := ParsePatterns(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lib := BuiltinPatterns()
	for name, p := range custom.patterns {
		lib.patterns[name] = p
	}
	return lib, nil
}

// BuiltinPatterns returns the embedded library
func BuiltinPatterns() *PatternLibrary {
	lib, err := ParsePatterns(builtinPatterns)
	if err != nil {
		panic(fmt.Sprintf("builtin patterns: %v", err))
	}
	return lib
}

// Get returns a pattern by name
func (l *PatternLibrary) Get(name string) (Pattern, error) {
	p, ok := l.patterns[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return p, nil
}

// Names lists pattern names sorted
func (l *PatternLibrary) Names() []string {
	names := make([]string, 0, len(l.patterns))
	for name := range l.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Pattern) validate() error {
	for i, line := range p.Cells {
		for j, ch := range line {
			if ch != 'O' && ch != '.' {
				return fmt.Errorf("%w: %s row %d col %d: %q", ErrInvalidPattern, p.Name, i, j, ch)
			}
		}
	}
	return nil
}

// Stamp writes live pattern cells with the pattern's top-left at (row, col).
// Cells falling off the board are skipped. Returns the number of cells set
func (l *Life) Stamp(p Pattern, row, col int) int {
	n := 0
	for i, line := range p.Cells {
		for j, ch := range line {
			if ch == 'O' && l.SetCell(row+i, col+j, 1) {
				n++
			}
		}
	}
	return n
}

// StampCentered stamps p in the middle of the board
func (l *Life) StampCentered(p Pattern) int {
	pr, pc := p.Size()
	return l.Stamp(p, (l.rows-pr)/2, (l.cols-pc)/2)
}
