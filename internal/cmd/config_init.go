package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/vanehq/vane/internal/config"
	"github.com/vanehq/vane/internal/core"
	oerrors "github.com/vanehq/vane/internal/errors"
	"github.com/vanehq/vane/internal/output"
	"github.com/vanehq/vane/internal/sample"
	"github.com/vanehq/vane/internal/source"
)

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the vane configuration.

Creates the following files under ~/.vane/ unless --config, --values or
--language point elsewhere:
  vane.yaml         Host configuration
  values.yaml       Every declared config default of the scope tree
  lang/lang-en.yaml Every declared lang default of the scope tree

Existing values and language files are kept unless --force is given.

Examples:
  # Initialize configuration
  vane config init

  # Overwrite existing configuration
  vane config init --force`,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile, err := currentConfigPath()
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}
	configFile, err = config.ExpandPath(configFile)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(configFile); err == nil && !configInitForce {
		return exitError(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: configFile,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		})
	}

	cfg := currentSettings().Config
	valuesFile, err := config.ExpandPath(cfg.Values)
	if err != nil {
		return err
	}
	localeDir, err := config.ExpandPath(cfg.LocaleDir)
	if err != nil {
		return err
	}
	langFile := source.LocaleFile(localeDir, cfg.Language)

	hostCfg := config.DefaultConfig()
	hostCfg.Values = cfg.Values
	hostCfg.Language = cfg.Language
	hostData, err := sigsyaml.Marshal(hostCfg)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	if err := writeSecure(configFile, hostData); err != nil {
		return err
	}

	m, values, err := declaredDefaults(cfg.Name)
	if err != nil {
		return exitError(err)
	}

	out := cmd.OutOrStdout()
	created := []string{configFile}

	if writable(valuesFile) {
		if err := writeValues(valuesFile, m, values); err != nil {
			return err
		}
		created = append(created, valuesFile)
	}
	if writable(langFile) {
		data, err := yaml.Marshal(defaultsFor(m, core.TagLang))
		if err != nil {
			return fmt.Errorf("rendering language file: %w", err)
		}
		if err := writeSecure(langFile, data); err != nil {
			return err
		}
		created = append(created, langFile)
	}

	fmt.Fprintln(out, output.FormatCheckmark("Configuration initialized"))
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Created files:")
	for _, f := range created {
		fmt.Fprintln(out, "  "+f)
	}
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Validate with: vane config vet")

	return nil
}

// declaredDefaults builds the scope tree against empty sources so that every
// field default gets declared.
func declaredDefaults(name string) (*core.Module, *source.Viper, error) {
	values, err := source.NewViper("", "")
	if err != nil {
		return nil, nil, err
	}
	m, err := core.NewModule(name, values, source.NewMap(nil))
	if err != nil {
		return nil, nil, err
	}
	if _, err := sample.Build(m, io.Discard); err != nil {
		return nil, nil, oerrors.FromWiring(err)
	}
	return m, values, nil
}

// writeValues writes the config defaults to path. CUE files get JSON, which
// CUE reads as is.
func writeValues(path string, m *core.Module, values *source.Viper) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(path))
	}
	if !strings.EqualFold(filepath.Ext(path), ".cue") {
		return values.WriteDefaults(path)
	}
	data, err := json.MarshalIndent(defaultsFor(m, core.TagConfig), "", "  ")
	if err != nil {
		return fmt.Errorf("rendering values: %w", err)
	}
	return writeSecure(path, append(data, '\n'))
}

// defaultsFor collects the declared defaults of every key with tag.
func defaultsFor(m *core.Module, tag core.Tag) map[string]any {
	out := make(map[string]any)
	for _, k := range m.Keys() {
		if k.Tag != tag || k.Default == nil {
			continue
		}
		def := k.Default
		if d, ok := def.(time.Duration); ok {
			def = d.String()
		}
		out[k.Key] = def
	}
	return out
}

func writable(path string) bool {
	if configInitForce {
		return true
	}
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

// writeSecure writes data with 0600 permissions, creating the parent
// directory with 0700.
func writeSecure(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+path)
	}
	return nil
}
