package cmd

import (
	"fmt"
	"io"

	"github.com/vanehq/vane/internal/config"
	"github.com/vanehq/vane/internal/core"
	oerrors "github.com/vanehq/vane/internal/errors"
	"github.com/vanehq/vane/internal/host"
	"github.com/vanehq/vane/internal/output"
	"github.com/vanehq/vane/internal/sample"
	"github.com/vanehq/vane/internal/source"
)

// sources holds the opened configuration and localization sources.
type sources struct {
	values source.File
	lang   *source.Locale
}

// openSources opens the values file and the language files named by cfg.
func openSources(cfg *config.Config) (*sources, error) {
	valuesPath, err := config.ExpandPath(cfg.Values)
	if err != nil {
		return nil, fmt.Errorf("expanding values path: %w", err)
	}
	localeDir, err := config.ExpandPath(cfg.LocaleDir)
	if err != nil {
		return nil, fmt.Errorf("expanding locale dir: %w", err)
	}

	values, err := source.Open(valuesPath, cfg.EnvPrefix)
	if err != nil {
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "could not load values file",
			Location: valuesPath,
			Hint:     "Check the file syntax, or remove it to run on declared defaults.",
			Cause:    fmt.Errorf("%w: %w", oerrors.ErrValidation, err),
		}
	}
	lang, err := source.NewLocale(localeDir, cfg.Language, cfg.FallbackLanguage)
	if err != nil {
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "could not load language files",
			Location: localeDir,
			Cause:    fmt.Errorf("%w: %w", oerrors.ErrValidation, err),
		}
	}

	output.Debug("sources opened", "values", valuesPath, "locale", localeDir, "language", cfg.Language)
	return &sources{values: values, lang: lang}, nil
}

// newRunner opens the sources of cfg and builds the sample tree on them.
// Component output goes to out.
func newRunner(cfg *config.Config, out io.Writer) (*host.Runner, *sources, error) {
	src, err := openSources(cfg)
	if err != nil {
		return nil, nil, err
	}

	runner, err := host.New(host.Options{
		Name:   cfg.Name,
		Config: src.values,
		Lang:   src.lang,
		Logger: output.Logger(),
		Color:  output.IsTTY(),
	}, func(m *core.Module) error {
		_, err := sample.Build(m, out)
		return err
	})
	if err != nil {
		return nil, nil, oerrors.FromWiring(err)
	}
	return runner, src, nil
}

// exitError attaches the exit code matching err.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
}
