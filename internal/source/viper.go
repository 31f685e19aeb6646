package source

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vanehq/vane/internal/core"
)

// Viper resolves keys through spf13/viper. Environment overrides win over the
// values file, which wins over declared defaults.
type Viper struct {
	mu        sync.RWMutex
	v         *viper.Viper
	path      string
	envPrefix string
	defaults  map[string]any
}

// NewViper loads path (yaml, json or toml, by extension). A missing file is
// not an error. With a non-empty envPrefix, key "a_b" is overridden by
// PREFIX_A_B.
func NewViper(path, envPrefix string) (*Viper, error) {
	s := &Viper{
		path:      path,
		envPrefix: envPrefix,
		defaults:  make(map[string]any),
	}
	v, err := s.load()
	if err != nil {
		return nil, err
	}
	s.v = v
	return s, nil
}

func (s *Viper) load() (*viper.Viper, error) {
	v := viper.New()
	if s.envPrefix != "" {
		v.SetEnvPrefix(s.envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	for key, def := range s.defaults {
		v.SetDefault(key, def)
	}

	if s.path == "" {
		return v, nil
	}
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("reading values file %s: %w", s.path, err)
	}
	return v, nil
}

func (s *Viper) Resolve(key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.v.IsSet(key) {
		return nil, missing(key)
	}
	return s.v.Get(key), nil
}

// Declare registers the field default with viper.
func (s *Viper) Declare(key string, f core.Field) {
	if f.Default == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults[key] = f.Default
	s.v.SetDefault(key, f.Default)
}

// Reload re-reads the values file.
func (s *Viper) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.load()
	if err != nil {
		return err
	}
	s.v = v
	return nil
}

func (s *Viper) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return yaml.Marshal(s.v.AllSettings())
}

func (s *Viper) Files() []string {
	if s.path == "" {
		return nil
	}
	return []string{s.path}
}

// WriteDefaults writes every declared default to path, formatted by its
// extension.
func (s *Viper) WriteDefaults(path string) error {
	s.mu.RLock()
	defaults := maps.Clone(s.defaults)
	s.mu.RUnlock()

	out := viper.New()
	for key, def := range defaults {
		if d, ok := def.(time.Duration); ok {
			def = d.String()
		}
		out.Set(key, def)
	}
	if err := out.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing defaults to %s: %w", path, err)
	}
	return nil
}
