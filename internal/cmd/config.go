package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hephbuild/hsize/internal/bench"
	"github.com/hephbuild/hsize/internal/hlog"
)

var configPath string

// loadConfig layers the config files over the defaults. Without an explicit
// path, the config file and its .local variant are read from the working
// directory when present.
func loadConfig(ctx context.Context) (bench.Config, error) {
	cfg := bench.DefaultConfig()

	paths := []string{bench.ConfigFileName, bench.ConfigFileName + ".local"}
	if configPath != "" {
		paths = []string{configPath}
	}

	for _, p := range paths {
		yamlCfg, err := bench.ParseYAMLConfig(p)
		if err != nil {
			if configPath == "" && errors.Is(err, os.ErrNotExist) {
				continue
			}

			return bench.Config{}, fmt.Errorf("config: %w", err)
		}

		hlog.From(ctx).Debug("loaded config", "path", p)

		cfg, err = bench.ApplyYAMLConfig(cfg, yamlCfg)
		if err != nil {
			return bench.Config{}, fmt.Errorf("config: %v: %w", p, err)
		}
	}

	return cfg, nil
}
