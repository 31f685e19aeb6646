package source

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vanehq/vane/internal/core"
)

const (
	localePrefix = "lang-"
	localeExt    = ".yaml"
)

// Locale resolves localized strings from lang-<code>.yaml files in a
// directory. Lookups try the primary language, then the fallback language,
// then the declared default. Missing language files count as empty.
type Locale struct {
	mu       sync.RWMutex
	dir      string
	language string
	fallback string
	primary  map[string]any
	second   map[string]any
	defaults map[string]any
}

// NewLocale loads the language files for language and fallback from dir.
// An empty fallback, or one equal to language, disables the fallback.
func NewLocale(dir, language, fallback string) (*Locale, error) {
	if language == "" {
		return nil, errors.New("locale requires a language")
	}
	if fallback == language {
		fallback = ""
	}
	l := &Locale{
		dir:      dir,
		language: language,
		fallback: fallback,
		defaults: make(map[string]any),
	}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// LocaleFile returns the path of the language file for code in dir.
func LocaleFile(dir, code string) string {
	return filepath.Join(dir, localePrefix+code+localeExt)
}

// Language returns the primary language code.
func (l *Locale) Language() string {
	return l.language
}

// Languages lists the language codes that have a file in dir, sorted.
func (l *Locale) Languages() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	var codes []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeExt) {
			continue
		}
		codes = append(codes, strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeExt))
	}
	slices.Sort(codes)
	return codes, nil
}

func (l *Locale) Resolve(key string) (any, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if v, ok := l.primary[key]; ok {
		return v, nil
	}
	if v, ok := l.second[key]; ok {
		return v, nil
	}
	if v, ok := l.defaults[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s (language %s)", core.ErrMissingKey, key, l.language)
}

// Declare records the field default as the last resort for key.
func (l *Locale) Declare(key string, f core.Field) {
	if f.Default == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.defaults[key] = f.Default
}

// Reload re-reads both language files.
func (l *Locale) Reload() error {
	primary, err := readLocaleFile(LocaleFile(l.dir, l.language))
	if err != nil {
		return err
	}
	var second map[string]any
	if l.fallback != "" {
		if second, err = readLocaleFile(LocaleFile(l.dir, l.fallback)); err != nil {
			return err
		}
	}

	l.mu.Lock()
	l.primary, l.second = primary, second
	l.mu.Unlock()
	return nil
}

func readLocaleFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading language file %s: %w", path, err)
	}
	entries := map[string]any{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing language file %s: %w", path, err)
	}
	return entries, nil
}

// Snapshot renders the effective table: defaults overlaid by the fallback
// language overlaid by the primary language.
func (l *Locale) Snapshot() ([]byte, error) {
	l.mu.RLock()
	merged := maps.Clone(l.defaults)
	maps.Copy(merged, l.second)
	maps.Copy(merged, l.primary)
	l.mu.RUnlock()
	return yaml.Marshal(merged)
}

func (l *Locale) Files() []string {
	files := []string{LocaleFile(l.dir, l.language)}
	if l.fallback != "" {
		files = append(files, LocaleFile(l.dir, l.fallback))
	}
	return files
}
