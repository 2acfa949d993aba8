// Command ivy wires the demo application with an ivy registry and either
// prints the result or serves the registry's introspection endpoints.
//
//	ivy demo
//	ivy serve --env-file .env
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ARTM2000/ivy"
	"github.com/ARTM2000/ivy/internal/config"
	"github.com/ARTM2000/ivy/internal/demo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:          "ivy",
		Short:        "Inspect an ivy registry wired with the demo application",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env)")

	root.AddCommand(newDemoCmd(&envFiles), newServeCmd(&envFiles))
	return root
}

// setup loads configuration and returns a registry with the demo module
// installed and validated.
func setup(envFiles []string) (*config.Config, *zap.Logger, *ivy.Registry, error) {
	cfg := config.Load(envFiles...)

	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, nil, err
	}

	r := ivy.New(ivy.WithLogger(logger.Named("registry")))
	if err := r.Install(demo.Module(demo.Settings{DatabaseURL: cfg.DatabaseURL}, logger)); err != nil {
		return nil, nil, nil, fmt.Errorf("installing demo module: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("validating registry: %w", err)
	}
	return cfg, logger, r, nil
}
