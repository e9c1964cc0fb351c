package theme

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Loader finds themes by name.
type Loader struct {
	ConfigDir string
}

// NewLoader returns a Loader reading from ~/.config/easel/themes.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{ConfigDir: filepath.Join(home, ".config", "easel", "themes")}
}

// Load resolves name as a built-in theme, a file path, or a file in
// ConfigDir, in that order. An empty name is the default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if t, ok := Builtin(name); ok {
		return t, nil
	}
	if _, err := os.Stat(name); err == nil {
		return loadFile(name)
	}
	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	path := filepath.Join(l.ConfigDir, filename)
	if _, err := os.Stat(path); err == nil {
		return loadFile(path)
	}
	return nil, fmt.Errorf("theme '%s' not found", name)
}

func loadFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("close %s: %v", path, cerr)
		}
	}()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}
